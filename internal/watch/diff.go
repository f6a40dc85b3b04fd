package watch

// Delta is the outcome of comparing one poll against the previous one.
type Delta struct {
	// Appeared holds keys that qualify now but were not tracked before.
	Appeared Set

	// Disappeared holds keys that were tracked but no longer qualify,
	// whether capacity vanished or the key stopped matching the filter.
	Disappeared Set

	// Next is the watched set to carry into the following cycle. It is
	// always exactly the qualifying set, never an incremental merge, so
	// the tracked state can never accumulate stale entries and recovers
	// from any transient inconsistency within one cycle.
	Next Set
}

// Diff computes the edge-triggered transitions between the previously
// watched set and the current qualifying set.
//
// Re-applying Diff with an unchanged qualifying set yields empty Appeared
// and Disappeared sets: every transition is reported exactly once.
func Diff(previous, qualifying Set) Delta {
	appeared := make(Set)
	for k := range qualifying {
		if !previous.Contains(k) {
			appeared.Add(k)
		}
	}

	disappeared := make(Set)
	for k := range previous {
		if !qualifying.Contains(k) {
			disappeared.Add(k)
		}
	}

	next := make(Set, len(qualifying))
	for k := range qualifying {
		next.Add(k)
	}

	return Delta{Appeared: appeared, Disappeared: disappeared, Next: next}
}
