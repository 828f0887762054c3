package conntrack

import (
	log "github.com/sirupsen/logrus"

	"github.com/conntrail/conntrail/pkg/agent/netaddr"
)

// Tracker holds the canonical view of the containers' connections and
// listening endpoints. All map state is owned by the reporter goroutine; the
// only cross-goroutine hand-off is the normalizer snapshot, which the
// control-stream receiver swaps atomically.
type Tracker struct {
	normalizer *Normalizer

	conns     ConnMap
	endpoints EndpointMap

	enableExternalIPs bool
	afterglowPeriod   int64 // microseconds; 0 disables retention of inactive keys

	stats statsCounters
}

func NewTracker(normalizer *Normalizer) *Tracker {
	return &Tracker{
		normalizer: normalizer,
		conns:      make(ConnMap),
		endpoints:  make(EndpointMap),
	}
}

// EnableExternalIPs switches between reporting raw external addresses and
// collapsing them into known networks. Takes effect on the next fetch.
func (t *Tracker) EnableExternalIPs(enable bool) {
	t.enableExternalIPs = enable
}

// SetAfterglowPeriod controls how long inactive keys are retained.
func (t *Tracker) SetAfterglowPeriod(periodMicros int64) {
	t.afterglowPeriod = periodMicros
}

// UpdateKnownPublicIPs forwards to the normalizer; safe to call from the
// receive goroutine while a scrape is running.
func (t *Tracker) UpdateKnownPublicIPs(addrs []netaddr.Address) {
	t.normalizer.UpdateKnownPublicIPs(addrs)
}

// UpdateKnownIPNetworks forwards to the normalizer; same safety as above.
func (t *Tracker) UpdateKnownIPNetworks(nets map[netaddr.Family][]netaddr.IPNet) {
	t.normalizer.UpdateKnownIPNetworks(nets)
}

// Update merges one scrape into the tracker: every observed key becomes
// active with the scrape timestamp; every tracked key missing from the
// scrape transitions to inactive, keeping its previous activity time.
func (t *Tracker) Update(conns []Connection, endpoints []ContainerEndpoint, nowMicros int64) {
	seen := make(map[Connection]struct{}, len(conns))
	for _, c := range conns {
		if _, tracked := t.conns[c]; !tracked {
			t.stats.countNew(c)
		}
		t.conns[c] = Status{LastActive: nowMicros, Active: true}
		seen[c] = struct{}{}
	}
	for c, status := range t.conns {
		if _, ok := seen[c]; ok || !status.Active {
			continue
		}
		t.conns[c] = Status{LastActive: status.LastActive, Active: false}
	}

	seenEps := make(map[ContainerEndpoint]struct{}, len(endpoints))
	for _, ep := range endpoints {
		t.endpoints[ep] = Status{LastActive: nowMicros, Active: true}
		seenEps[ep] = struct{}{}
	}
	for ep, status := range t.endpoints {
		if _, ok := seenEps[ep]; ok || !status.Active {
			continue
		}
		t.endpoints[ep] = Status{LastActive: status.LastActive, Active: false}
	}

	log.Debugf("tracker update: %d connections, %d endpoints observed", len(conns), len(endpoints))
}

// FetchConnState returns a snapshot of the tracked connections. With
// normalize set, keys are canonicalized and colliding entries merged (any
// active wins, latest activity wins). With clearInactive set, inactive
// entries whose afterglow window has expired are dropped from the tracker as
// a side effect; the returned snapshot excludes them as well.
func (t *Tracker) FetchConnState(clearInactive, normalize bool, nowMicros int64) ConnMap {
	out := make(ConnMap, len(t.conns))
	for c, status := range t.conns {
		if clearInactive && !isInWindow(status, nowMicros, t.afterglowPeriod) {
			delete(t.conns, c)
			continue
		}
		if normalize {
			c = t.normalizer.normalizeConnection(c, t.enableExternalIPs)
		}
		out[c] = mergeStatus(out[c], status)
	}
	return out
}

// FetchEndpointState is FetchConnState for listening endpoints.
func (t *Tracker) FetchEndpointState(clearInactive, normalize bool, nowMicros int64) EndpointMap {
	out := make(EndpointMap, len(t.endpoints))
	for ep, status := range t.endpoints {
		if clearInactive && !isInWindow(status, nowMicros, t.afterglowPeriod) {
			delete(t.endpoints, ep)
			continue
		}
		if normalize {
			ep = t.normalizer.normalizeEndpoint(ep)
		}
		out[ep] = mergeStatus(out[ep], status)
	}
	return out
}

func mergeStatus(a, b Status) Status {
	merged := b
	if a.Active {
		merged.Active = true
	}
	if a.LastActive > merged.LastActive {
		merged.LastActive = a.LastActive
	}
	return merged
}

// CloseConnectionsOnRuntimeConfigChange repairs the delta when the
// external-IP toggle flips: every key of the previous published state that
// would normalize differently under the new setting is forcibly closed under
// its old form. The matching open under the new form arrives through the
// regular delta of the new snapshot.
func (t *Tracker) CloseConnectionsOnRuntimeConfigChange(old, delta ConnMap, newEnableExternalIPs bool) {
	closed := 0
	for c, status := range old {
		if !t.remoteNormalizesDifferently(c.Remote, newEnableExternalIPs) {
			continue
		}
		delta[c] = Status{LastActive: status.LastActive, Active: false}
		delete(old, c)
		closed++
	}
	if closed > 0 {
		log.Infof("external IP reporting switched to %t, closed %d connections under their previous form", newEnableExternalIPs, closed)
	}
}

// remoteNormalizesDifferently decides whether a remote endpoint of the
// previously published state would take another canonical form under the new
// external-IP setting. Published keys are already normalized, so when raw
// reporting turns on, exactly the folded forms (networks and the wildcard
// aggregate) change; when it turns off, re-running normalization on the raw
// address tells.
func (t *Tracker) remoteNormalizesDifferently(remote netaddr.Endpoint, newEnableExternalIPs bool) bool {
	if remote.IsNull() {
		return false
	}
	if newEnableExternalIPs {
		return !remote.Network.IsAddress()
	}
	return t.normalizer.NormalizeRemote(remote, false) != remote
}
