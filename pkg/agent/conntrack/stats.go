package conntrack

// StatsBucket counts connections by peer visibility.
type StatsBucket struct {
	Private uint64
	Public  uint64
}

func (b *StatsBucket) count(public bool) {
	if public {
		b.Public++
	} else {
		b.Private++
	}
}

// Stats breaks connection counts down by direction and peer visibility.
type Stats struct {
	Inbound  StatsBucket
	Outbound StatsBucket
}

func (s *Stats) count(c Connection) {
	public := c.Remote.Addr.IsPublic()
	if c.IsServer {
		s.Inbound.count(public)
	} else {
		s.Outbound.count(public)
	}
}

type statsCounters struct {
	newConns Stats
}

func (s *statsCounters) countNew(c Connection) {
	s.newConns.count(c)
}

// StoredConnectionStats counts the connections currently tracked.
func (t *Tracker) StoredConnectionStats() Stats {
	var stats Stats
	for c := range t.conns {
		stats.count(c)
	}
	return stats
}

// NewConnectionCounters returns the cumulative counters of connections first
// seen by Update. Rates are derived by the caller from successive readings.
func (t *Tracker) NewConnectionCounters() Stats {
	return t.stats.newConns
}
