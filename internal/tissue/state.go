package tissue

// State aggregates the regenerative potential of one niche. Values are
// relative to a young organism and lie in [0, 1] except MeanCentrioleAge.
type State struct {
	Type               Type
	StemCellPool       float64
	RegenerationTempo  float64
	SenescentFraction  float64
	MeanCentrioleAge   float64 // divisions templated by the mother centriole
	FunctionalCapacity float64
}

// NewState returns a full, young tissue.
func NewState(t Type) State {
	return State{
		Type:               t,
		StemCellPool:       1,
		RegenerationTempo:  1,
		FunctionalCapacity: 1,
	}
}

// UpdateFunctionalCapacity recomputes capacity from pool, tempo and the
// senescent burden.
func (s *State) UpdateFunctionalCapacity() {
	c := s.StemCellPool * s.RegenerationTempo * (1 - 0.8*s.SenescentFraction)
	switch {
	case c < 0:
		c = 0
	case c > 1:
		c = 1
	}
	s.FunctionalCapacity = c
}
