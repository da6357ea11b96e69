// Package organism integrates tissue states into organism-wide aging metrics
// and decides death.
package organism

import (
	"math"

	"github.com/montanaflynn/stats"

	"cdata/internal/stage"
	"cdata/internal/tissue"
)

// State is the organism-level aging state. IsAlive never flips back to true.
type State struct {
	AgeYears          float64
	Stage             stage.Stage
	InflammagingScore float64
	FrailtyIndex      float64
	CognitiveIndex    float64
	ImmuneReserve     float64
	MuscleMass        float64
	IsAlive           bool
}

// NewState returns a zygote.
func NewState() State {
	return State{
		Stage:          stage.Zygote,
		CognitiveIndex: 1,
		ImmuneReserve:  1,
		MuscleMass:     1,
		IsAlive:        true,
	}
}

// Params configures the two death criteria.
type Params struct {
	MaxLifespanYears       float64 `yaml:"max_lifespan_years"`
	SenescenceDeathFrailty float64 `yaml:"senescence_death_frailty"`
}

// DefaultParams returns a 120-year lifespan cap and 0.95 frailty threshold.
func DefaultParams() Params {
	return Params{MaxLifespanYears: 120, SenescenceDeathFrailty: 0.95}
}

// Cause names the criterion that ended a life.
type Cause uint8

const (
	Alive Cause = iota
	MaxLifespan
	Frailty
)

func (c Cause) String() string {
	switch c {
	case MaxLifespan:
		return "max_lifespan"
	case Frailty:
		return "frailty"
	default:
		return "alive"
	}
}

// Integrator owns the organism state.
type Integrator struct {
	State State

	params  Params
	cause   Cause
	history stage.History
}

// NewIntegrator returns an integrator for a newly conceived organism.
func NewIntegrator(p Params) *Integrator {
	in := &Integrator{State: NewState(), params: p}
	in.history.Record(0, in.State.Stage)
	return in
}

// Cause reports why the organism died, or Alive.
func (in *Integrator) Cause() Cause { return in.cause }

// History returns the stage transition log.
func (in *Integrator) History() []stage.Transition { return in.history.Transitions() }

// Advance ages the organism by dtYears and relabels its stage.
func (in *Integrator) Advance(dtYears float64) {
	if !in.State.IsAlive {
		return
	}
	if dtYears > 0 {
		in.State.AgeYears += dtYears
	}
	in.State.Stage = stage.ForAge(in.State.AgeYears)
	if in.State.AgeYears >= in.params.MaxLifespanYears {
		in.die(MaxLifespan)
		return
	}
	in.history.Record(in.State.AgeYears, in.State.Stage)
}

// IntegrateTissueMetrics folds tissue states into the organism indices. A
// missing tissue leaves its dependent index unchanged.
func (in *Integrator) IntegrateTissueMetrics(tissues []*tissue.Simulator) {
	if !in.State.IsAlive || len(tissues) == 0 {
		return
	}

	neural := find(tissues, tissue.Neural)
	hsc := find(tissues, tissue.Hematopoietic)
	muscle := find(tissues, tissue.Muscle)
	gut := find(tissues, tissue.IntestinalCrypt)

	if neural != nil {
		in.State.CognitiveIndex = math.Max(0, 0.7*neural.State.FunctionalCapacity+0.3*neural.Damage.CiliaryFunction)
	}
	if hsc != nil {
		in.State.ImmuneReserve = math.Max(0, 0.8*hsc.State.FunctionalCapacity+0.2*(1-hsc.State.SenescentFraction))
	}
	if muscle != nil {
		in.State.MuscleMass = math.Max(0, muscle.State.FunctionalCapacity)
	}

	var gutSen, hscSen float64
	if gut != nil {
		gutSen = gut.State.SenescentFraction
	}
	if hsc != nil {
		hscSen = hsc.State.SenescentFraction
	}
	in.State.InflammagingScore = math.Min(1, (gutSen+hscSen)/2)

	capacities := make(stats.Float64Data, 0, len(tissues))
	for _, t := range tissues {
		capacities = append(capacities, t.State.FunctionalCapacity)
	}
	mean, err := stats.Mean(capacities)
	if err != nil {
		return
	}
	in.State.FrailtyIndex = math.Max(0, 1-mean)

	if in.State.FrailtyIndex >= in.params.SenescenceDeathFrailty {
		in.die(Frailty)
	}
}

func (in *Integrator) die(c Cause) {
	in.State.IsAlive = false
	in.State.Stage = stage.Death
	in.cause = c
	in.history.Record(in.State.AgeYears, stage.Death)
}

func find(tissues []*tissue.Simulator, t tissue.Type) *tissue.Simulator {
	for _, s := range tissues {
		if s.Type == t {
			return s
		}
	}
	return nil
}
