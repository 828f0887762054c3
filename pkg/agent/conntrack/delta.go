package conntrack

// windowOpen reports whether the afterglow window of a status is still open
// at time now, judged by its last activity alone.
func windowOpen(status Status, now, period int64) bool {
	return now-status.LastActive < period
}

// isInWindow reports whether a status counts as active from the receiver's
// perspective at time now: either genuinely active, or closed but still
// inside its afterglow window. A zero period means no hysteresis at all.
func isInWindow(status Status, now, period int64) bool {
	return status.Active || windowOpen(status, now, period)
}

// ComputeDelta folds two successive snapshots into the minimal set of status
// transitions that takes a receiver knowing old to current. The caller
// replaces old with current afterwards.
func ComputeDelta[K comparable](current, old map[K]Status) map[K]Status {
	delta := make(map[K]Status)
	for k, cur := range current {
		prev, ok := old[k]
		if !ok || prev.Active != cur.Active {
			delta[k] = cur
		}
	}
	for k, prev := range old {
		if _, ok := current[k]; !ok {
			delta[k] = Status{LastActive: prev.LastActive, Active: false}
		}
	}
	return delta
}

// ComputeDeltaAfterglow is the hysteresis variant of ComputeDelta. A
// connection that disappears is reported as closed only once its afterglow
// window has expired; one that reappears within the window refreshes
// silently. lastScrape is the time the old snapshot was taken at.
func ComputeDeltaAfterglow[K comparable](current, old map[K]Status, now, lastScrape, period int64) map[K]Status {
	delta := make(map[K]Status)
	for k, cur := range current {
		curActive := isInWindow(cur, now, period)
		if prev, ok := old[k]; ok {
			if isInWindow(prev, lastScrape, period) == curActive {
				continue
			}
		}
		delta[k] = Status{LastActive: cur.LastActive, Active: curActive}
	}
	for k, prev := range old {
		if _, ok := current[k]; ok {
			continue
		}
		// Absent from the tracker, so only the timestamp can tell: emit the
		// close once the window is over. Entries that were already published
		// as closed have left old via UpdateOldState.
		if !windowOpen(prev, now, period) && isInWindow(prev, lastScrape, period) {
			delta[k] = Status{LastActive: prev.LastActive, Active: false}
		}
	}
	return delta
}

// UpdateOldState builds the state the receiver believes in after the
// afterglow delta has been applied: the current snapshot, plus the
// disappeared connections whose window is still open.
func UpdateOldState[K comparable](current, old map[K]Status, now, period int64) map[K]Status {
	next := make(map[K]Status, len(current))
	for k, st := range current {
		next[k] = st
	}
	for k, st := range old {
		if _, ok := current[k]; ok {
			continue
		}
		if windowOpen(st, now, period) {
			next[k] = st
		}
	}
	return next
}
