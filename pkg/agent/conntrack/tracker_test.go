package conntrack

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conntrail/conntrail/pkg/agent/netaddr"
)

func addr(t *testing.T, s string) netaddr.Address {
	t.Helper()
	a := netaddr.AddrFromNetIP(net.ParseIP(s))
	require.True(t, a.IsValid())
	return a
}

func rawConn(t *testing.T, containerID, localAddr string, localPort uint16, remoteAddr string, remotePort uint16, server bool) Connection {
	return Connection{
		ContainerID: containerID,
		Local:       netaddr.NewEndpoint(addr(t, localAddr), localPort),
		Remote:      netaddr.NewEndpoint(addr(t, remoteAddr), remotePort),
		L4Proto:     netaddr.L4ProtoTCP,
		IsServer:    server,
	}
}

func TestUpdateTransitions(t *testing.T) {
	tr := NewTracker(NewNormalizer())
	a := rawConn(t, "c1", "10.0.0.1", 8080, "10.0.0.2", 54321, true)

	tr.Update([]Connection{a}, nil, 100)
	state := tr.FetchConnState(false, false, 100)
	assert.Equal(t, Status{LastActive: 100, Active: true}, state[a])

	// absent from the next scrape: inactive, previous activity time kept
	tr.Update(nil, nil, 200)
	state = tr.FetchConnState(false, false, 200)
	assert.Equal(t, Status{LastActive: 100, Active: false}, state[a])

	// clearing drops it (afterglow off)
	state = tr.FetchConnState(true, false, 300)
	assert.Empty(t, state)
	assert.Empty(t, tr.FetchConnState(false, false, 300))
}

func TestFetchRetainsWindowedConns(t *testing.T) {
	tr := NewTracker(NewNormalizer())
	tr.SetAfterglowPeriod(1_000_000)
	a := rawConn(t, "c1", "10.0.0.1", 8080, "10.0.0.2", 54321, true)

	tr.Update([]Connection{a}, nil, 0)
	tr.Update(nil, nil, 500_000)

	// inside the window the inactive entry survives the clearing fetch
	state := tr.FetchConnState(true, false, 500_000)
	require.Len(t, state, 1)

	// after expiry it is gone
	state = tr.FetchConnState(true, false, 2_000_000)
	assert.Empty(t, state)
}

func TestFetchNormalizesAndMerges(t *testing.T) {
	tr := NewTracker(NewNormalizer())

	// same server socket seen via two local interfaces
	a := rawConn(t, "c1", "10.0.0.1", 8080, "10.0.0.9", 54321, true)
	b := rawConn(t, "c1", "192.168.3.7", 8080, "10.0.0.9", 54321, true)
	tr.Update([]Connection{a, b}, nil, 100)

	state := tr.FetchConnState(false, true, 100)
	require.Len(t, state, 1)
	for c := range state {
		assert.True(t, c.Local.Addr.IsNull())
		assert.Equal(t, uint16(8080), c.Local.Port)
	}
}

func TestFetchCollapsesUnknownExternal(t *testing.T) {
	tr := NewTracker(NewNormalizer())
	a := rawConn(t, "c1", "10.0.0.1", 40000, "198.51.100.7", 443, false)
	tr.Update([]Connection{a}, nil, 100)

	state := tr.FetchConnState(false, true, 100)
	require.Len(t, state, 1)
	for c := range state {
		assert.True(t, c.Remote.Addr.IsNull())
		assert.EqualValues(t, 0, c.Remote.Network.Bits())
		assert.Equal(t, uint16(443), c.Remote.Port)
		// client connections do not report a local endpoint
		assert.True(t, c.Local.IsNull())
	}
}

func TestExternalIPToggleClosesOldForms(t *testing.T) {
	normalizer := NewNormalizer()
	extNet := netaddr.NewIPNet(addr(t, "203.0.113.0"), 24)
	normalizer.UpdateKnownIPNetworks(map[netaddr.Family][]netaddr.IPNet{
		netaddr.FamilyIPv4: {extNet},
	})

	tr := NewTracker(normalizer)
	a := rawConn(t, "c1", "10.0.0.1", 40000, "203.0.113.5", 443, false)
	tr.Update([]Connection{a}, nil, 100)

	// previous published state, normalized with external IPs off
	tr.EnableExternalIPs(false)
	old := tr.FetchConnState(false, true, 100)
	require.Len(t, old, 1)
	for c := range old {
		assert.Equal(t, extNet, c.Remote.Network)
		assert.Equal(t, addr(t, "203.0.113.0"), c.Remote.Addr)
	}

	// flip to raw reporting
	tr.EnableExternalIPs(true)
	current := tr.FetchConnState(false, true, 200)
	delta := ComputeDeltaAfterglow(current, old, 200, 100, 1_000_000_000)
	tr.CloseConnectionsOnRuntimeConfigChange(old, delta, true)

	require.Len(t, delta, 2)
	var opens, closes int
	for c, st := range delta {
		if st.Active {
			opens++
			assert.Equal(t, addr(t, "203.0.113.5"), c.Remote.Addr)
		} else {
			closes++
			assert.Equal(t, addr(t, "203.0.113.0"), c.Remote.Addr)
		}
	}
	assert.Equal(t, 1, opens)
	assert.Equal(t, 1, closes)
	assert.Empty(t, old)
}

func TestStatsClassification(t *testing.T) {
	tr := NewTracker(NewNormalizer())
	conns := []Connection{
		rawConn(t, "c1", "10.0.0.1", 8080, "10.0.0.2", 54321, true),    // inbound private
		rawConn(t, "c1", "10.0.0.1", 40000, "8.8.8.8", 53, false),      // outbound public
		rawConn(t, "c2", "10.0.0.3", 40001, "192.168.0.9", 443, false), // outbound private
	}
	tr.Update(conns, nil, 100)

	stored := tr.StoredConnectionStats()
	assert.EqualValues(t, 1, stored.Inbound.Private)
	assert.EqualValues(t, 0, stored.Inbound.Public)
	assert.EqualValues(t, 1, stored.Outbound.Private)
	assert.EqualValues(t, 1, stored.Outbound.Public)

	// counters are cumulative and only move on first sight
	tr.Update(conns, nil, 200)
	assert.Equal(t, stored, tr.NewConnectionCounters())
}
