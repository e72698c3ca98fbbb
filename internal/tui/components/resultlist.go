package components

// ResultEntry is one settled entity for rendering.
type ResultEntry struct {
	ID      string
	Success bool
	Message string
}

// ResultList keeps the most recent entries plus every failure.
type ResultList struct {
	entries []ResultEntry
	hidden  int
}

// NewResultList keeps at most limit entries. Failures are never dropped, so
// the list can exceed limit when more than limit entities failed. A limit of
// zero or less keeps everything.
func NewResultList(all []ResultEntry, limit int) ResultList {
	if limit <= 0 || len(all) <= limit {
		return ResultList{entries: append([]ResultEntry(nil), all...)}
	}

	failures := 0
	for _, e := range all {
		if !e.Success {
			failures++
		}
	}
	successBudget := max(0, limit-failures)

	keep := make([]bool, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		if !all[i].Success {
			keep[i] = true
			continue
		}
		if successBudget > 0 {
			keep[i] = true
			successBudget--
		}
	}

	list := ResultList{entries: make([]ResultEntry, 0, limit)}
	for i, e := range all {
		if keep[i] {
			list.entries = append(list.entries, e)
		} else {
			list.hidden++
		}
	}
	return list
}

// Entries returns the kept entries in settle order.
func (l ResultList) Entries() []ResultEntry {
	clone := make([]ResultEntry, len(l.entries))
	copy(clone, l.entries)
	return clone
}

// Hidden returns how many successes were dropped.
func (l ResultList) Hidden() int {
	return l.hidden
}
