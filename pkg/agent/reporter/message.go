package reporter

import (
	"time"

	"github.com/golang/protobuf/ptypes/timestamp"
	log "github.com/sirupsen/logrus"

	"github.com/conntrail/conntrail/pkg/agent/conntrack"
	"github.com/conntrail/conntrail/pkg/agent/netaddr"
	"github.com/conntrail/conntrail/pkg/agent/rpc"
)

func microsToProto(micros int64) *timestamp.Timestamp {
	return &timestamp.Timestamp{
		Seconds: micros / 1_000_000,
		Nanos:   int32(micros%1_000_000) * 1000,
	}
}

func translateL4Proto(proto netaddr.L4Proto) rpc.L4Protocol {
	switch proto {
	case netaddr.L4ProtoTCP:
		return rpc.L4Protocol_L4_PROTOCOL_TCP
	case netaddr.L4ProtoUDP:
		return rpc.L4Protocol_L4_PROTOCOL_UDP
	case netaddr.L4ProtoICMP:
		return rpc.L4Protocol_L4_PROTOCOL_ICMP
	}
	return rpc.L4Protocol_L4_PROTOCOL_UNKNOWN
}

func translateFamily(family netaddr.Family) rpc.SocketFamily {
	switch family {
	case netaddr.FamilyIPv4:
		return rpc.SocketFamily_SOCKET_FAMILY_IPV4
	case netaddr.FamilyIPv6:
		return rpc.SocketFamily_SOCKET_FAMILY_IPV6
	}
	return rpc.SocketFamily_SOCKET_FAMILY_UNKNOWN
}

// endpointToProto emits the dual address/network encoding: raw bytes when
// the endpoint is a concrete address, plus the network it belongs to as base
// bytes followed by one prefix byte. A null endpoint maps to nil.
func endpointToProto(ep netaddr.Endpoint) *rpc.NetworkAddress {
	if ep.IsNull() {
		return nil
	}
	addr := &rpc.NetworkAddress{Port: uint32(ep.Port)}
	if ep.Network.IsAddress() {
		addr.AddressData = ep.Addr.Data()
	}
	if bits := ep.Network.Bits(); bits > 0 {
		base := ep.Network.Address().Data()
		addr.IpNetwork = append(append(make([]byte, 0, len(base)+1), base...), bits)
	}
	return addr
}

func connToProto(conn conntrack.Connection) *rpc.NetworkConnection {
	role := rpc.Role_ROLE_CLIENT
	if conn.IsServer {
		role = rpc.Role_ROLE_SERVER
	}
	return &rpc.NetworkConnection{
		ContainerId:   conn.ContainerID,
		Role:          role,
		Protocol:      translateL4Proto(conn.L4Proto),
		SocketFamily:  translateFamily(conn.Local.Family()),
		LocalAddress:  endpointToProto(conn.Local),
		RemoteAddress: endpointToProto(conn.Remote),
	}
}

func containerEndpointToProto(cep conntrack.ContainerEndpoint) *rpc.NetworkEndpoint {
	ep := &rpc.NetworkEndpoint{
		ContainerId:   cep.ContainerID,
		Protocol:      translateL4Proto(cep.L4Proto),
		SocketFamily:  translateFamily(cep.Endpoint.Family()),
		ListenAddress: endpointToProto(cep.Endpoint),
	}
	if !cep.Originator.IsZero() {
		ep.Originator = &rpc.ProcessOriginator{
			ProcessName:         cep.Originator.Name,
			ProcessExecFilePath: cep.Originator.ExePath,
			ProcessArgs:         cep.Originator.Args,
		}
	}
	return ep
}

// buildInfoMessage turns the two deltas into one update message, applying
// the per-container rate limit to open events at the last moment. Close
// events are never dropped: suppressing one would orphan the connection on
// the receiver forever. Returns nil when there is nothing to report.
func buildInfoMessage(connDelta conntrack.ConnMap, epDelta conntrack.EndpointMap,
	now time.Time, limit int64, window time.Duration) *rpc.NetworkConnectionInfoMessage {
	if len(connDelta) == 0 && len(epDelta) == 0 {
		return nil
	}

	info := &rpc.NetworkConnectionInfo{
		Time: microsToProto(now.UnixMicro()),
	}

	limiter := newCountLimiter(limit, window)
	rateLimited := make(map[string]int)

	for conn, status := range connDelta {
		proto := connToProto(conn)
		if !status.Active {
			proto.CloseTimestamp = microsToProto(status.LastActive)
			connectionEventsTotal.WithLabelValues("close").Inc()
		} else {
			if !limiter.Allow(conn.ContainerID) {
				rateLimited[conn.ContainerID]++
				rateLimitedTotal.Inc()
				continue
			}
			connectionEventsTotal.WithLabelValues("open").Inc()
		}
		info.UpdatedConnections = append(info.UpdatedConnections, proto)
	}

	for id, dropped := range rateLimited {
		log.Infof("rate limited %d connections from container %s (limit: %d)", dropped, id, limit)
	}

	for cep, status := range epDelta {
		proto := containerEndpointToProto(cep)
		if !status.Active {
			proto.CloseTimestamp = microsToProto(status.LastActive)
		}
		info.UpdatedEndpoints = append(info.UpdatedEndpoints, proto)
	}

	return &rpc.NetworkConnectionInfoMessage{Info: info}
}
