package stage

// Transition records the age at which a stage was entered.
type Transition struct {
	AgeYears float64
	Stage    Stage
}

// History is a diagnostic log of stage transitions.
type History struct {
	entries []Transition
}

// Record appends a transition when s differs from the last recorded stage and
// reports whether it did.
func (h *History) Record(ageYears float64, s Stage) bool {
	if n := len(h.entries); n > 0 && h.entries[n-1].Stage == s {
		return false
	}
	h.entries = append(h.entries, Transition{AgeYears: ageYears, Stage: s})
	return true
}

// Transitions returns a copy of the log.
func (h *History) Transitions() []Transition {
	return append([]Transition(nil), h.entries...)
}
