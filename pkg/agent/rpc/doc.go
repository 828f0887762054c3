// Package rpc holds the wire contract between the agent and the aggregator.
// The generated code is checked in; regenerate after editing netflow.proto.
package rpc

//go:generate protoc --go_out=plugins=grpc:. --go_opt=paths=source_relative netflow.proto
