// Package tissue simulates stem-cell niches with tissue-specific damage
// scaling and derives pool depletion, regeneration tempo and senescence.
package tissue

import (
	"math"

	"cdata/internal/damage"
	"cdata/internal/inducers"
	"cdata/internal/stage"
	"cdata/pkg/core"
)

// Simulator is one stem-cell niche of a tissue. A Simulator is owned by a
// single goroutine during Step; distinct simulators share no state.
type Simulator struct {
	Type     Type
	State    State
	Damage   damage.State
	Inducers inducers.Ledger
	Stage    stage.Fine

	profile    Profile
	phenotypes []Phenotype
	rng        *core.RNG
}

// New creates a pristine niche drawing from its own random stream.
func New(t Type, ledger inducers.Ledger, rng *core.RNG) *Simulator {
	return &Simulator{
		Type:     t,
		State:    NewState(t),
		Damage:   damage.Pristine(),
		Inducers: ledger,
		Stage:    stage.FineZygote,
		profile:  ProfileFor(t),
		rng:      rng,
	}
}

// Profile returns the tissue profile in use.
func (s *Simulator) Profile() Profile { return s.profile }

// Step advances the niche by dtYears at the given organism age and stage.
func (s *Simulator) Step(ageYears, dtYears float64, orgStage stage.Stage, p damage.Params) {
	scaled := p.Scaled(s.profile.DamageMultiplier, s.profile.AppendageVulnerability)
	d := damage.Accumulate(s.Damage, scaled, ageYears, dtYears)

	st := s.State
	poolLoss := d.PoolExhaustionProbability() * DivisionRate(s.Type) * dtYears
	st.StemCellPool = math.Max(0, st.StemCellPool-poolLoss)

	ciliarySignaling := math.Pow(d.CiliaryFunction, 1/s.profile.CiliarySensitivity)
	st.RegenerationTempo = math.Max(0, st.StemCellPool*ciliarySignaling*d.SpindleFidelity)

	score := d.TotalDamageScore()
	st.SenescentFraction = math.Min(1, st.SenescentFraction+score*score*0.4*dtYears)
	st.MeanCentrioleAge += DivisionRate(s.Type) * dtYears
	st.UpdateFunctionalCapacity()

	ledger := s.Inducers
	if inducers.ConsumeForStep(&ledger, d, stage.DivisionRatePerYear(orgStage), dtYears, s.rng) {
		s.inductiveDivision(&d, &ledger)
	}

	s.Damage = d
	s.State = st
	s.Inducers = ledger
	s.Stage = stage.FineForAge(ageYears)
	s.phenotypes = detectPhenotypes(st, d, ledger, ageYears, p.SASPOnsetAge)
}

// Divide resolves one mitosis of the niche's stem cell at cell granularity.
func (s *Simulator) Divide() inducers.Outcome {
	faithful := inducers.SpindleFaithful(s.Damage, s.rng)
	out := inducers.Divide(&s.Inducers, faithful, s.rng)
	if out.InducerSpent {
		s.inductiveDivision(&s.Damage, &s.Inducers)
	}
	return out
}

// inductiveDivision books a division that spent an S inducer. Germline
// niches also spend an H inducer on each one until meiosis is due.
func (s *Simulator) inductiveDivision(d *damage.State, l *inducers.Ledger) {
	d.TotalDivisions++
	if s.Type == Germline {
		l.ConsumeH()
	}
}

// Phenotypes returns the active aging phenotypes.
func (s *Simulator) Phenotypes() []Phenotype {
	return append([]Phenotype(nil), s.phenotypes...)
}
