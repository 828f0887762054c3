//go:build linux
// +build linux

package main

import (
	"github.com/conntrail/conntrail/pkg/agent/cmd"
)

func main() {
	cmd.Execute()
}
