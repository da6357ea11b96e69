package damage

import "math"

// State is the centriolar damage state of one stem-cell niche. Molecular
// damage only grows, appendage integrity only shrinks, and IsSenescent never
// reverts once set.
type State struct {
	ProteinCarbonylation         float64
	TubulinHyperacetylation      float64
	ProteinAggregates            float64
	PhosphorylationDysregulation float64

	CEP164Integrity float64
	CEP89Integrity  float64
	NineinIntegrity float64
	CEP170Integrity float64

	// CiliaryFunction is the primary-cilium signalling capacity (Track A).
	CiliaryFunction float64
	// SpindleFidelity is the mitotic spindle orientation accuracy (Track B).
	SpindleFidelity float64
	ROSLevel        float64

	TotalDivisions uint32
	IsSenescent    bool
}

// Pristine returns an undamaged centriole.
func Pristine() State {
	return State{
		CEP164Integrity: 1,
		CEP89Integrity:  1,
		NineinIntegrity: 1,
		CEP170Integrity: 1,
		CiliaryFunction: 1,
		SpindleFidelity: 1,
		ROSLevel:        0.05,
	}
}

func (s State) molecularMean() float64 {
	return (s.ProteinCarbonylation + s.TubulinHyperacetylation + s.ProteinAggregates + s.PhosphorylationDysregulation) / 4
}

func (s State) appendageMean() float64 {
	return (s.CEP164Integrity + s.CEP89Integrity + s.NineinIntegrity + s.CEP170Integrity) / 4
}

// TotalDamageScore averages molecular damage and appendage loss into [0, 1].
func (s State) TotalDamageScore() float64 {
	return (s.molecularMean() + (1 - s.appendageMean())) / 2
}

// SymmetricDivisionProbability grows as spindle fidelity decays.
func (s State) SymmetricDivisionProbability() float64 {
	return math.Pow(1-s.SpindleFidelity, 1.5)
}

// PoolExhaustionProbability is the share of symmetric divisions in which both
// daughters differentiate.
func (s State) PoolExhaustionProbability() float64 {
	return 0.6 * s.SymmetricDivisionProbability()
}

func (s *State) updateFunctionalMetrics(threshold float64) {
	s.CiliaryFunction = s.appendageMean() * (1 - s.ProteinAggregates*0.5)

	structural := (s.ProteinCarbonylation + s.ProteinAggregates) / 2
	s.SpindleFidelity = math.Max(0, 1-structural) * (1 - s.PhosphorylationDysregulation*0.3)

	s.IsSenescent = s.IsSenescent || s.TotalDamageScore() > threshold
}
