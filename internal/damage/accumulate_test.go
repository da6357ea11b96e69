package damage

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccumulatePristineMidlife(t *testing.T) {
	p := DefaultParams()
	next := Accumulate(Pristine(), p, 45, 1)

	assert.InDelta(t, 0.0076*0.05*1.6, next.ProteinCarbonylation, 1e-12)
	assert.InDelta(t, 0.0059*1.6, next.TubulinHyperacetylation, 1e-12)
	assert.InDelta(t, 1-0.0113*1.6, next.CEP164Integrity, 1e-12)
	assert.False(t, next.IsSenescent)
}

func TestAccumulateYoungHasNoMidlifeMultiplier(t *testing.T) {
	next := Accumulate(Pristine(), DefaultParams(), 40, 1)
	assert.InDelta(t, 0.0059, next.ProteinAggregates, 1e-12)
}

func TestAccumulateFeedbackBoostUsesPriorScore(t *testing.T) {
	p := DefaultParams()
	s := Pristine()
	s.TubulinHyperacetylation = 0.4
	prior := s.TotalDamageScore()
	require.Greater(t, prior, 0.0)

	next := Accumulate(s, p, 10, 0.5)
	want := 0.4 + p.AcetylationRate*0.5*(1+p.ROSFeedbackCoefficient*prior)
	assert.InDelta(t, want, next.TubulinHyperacetylation, 1e-12)
}

func TestAccumulateROSReadsUpdatedScore(t *testing.T) {
	p := DefaultParams()
	next := Accumulate(Pristine(), p, 30, 2)
	want := BaseROS(30) + p.ROSFeedbackCoefficient*next.TotalDamageScore()
	assert.InDelta(t, want, next.ROSLevel, 1e-12)
}

func TestAccumulateBoundedAndMonotonic(t *testing.T) {
	p := ProgeriaParams()
	s := Pristine()
	for step := 0; step < 2000; step++ {
		age := float64(step) * 0.1
		next := Accumulate(s, p, age, 0.1)

		for name, v := range map[string]float64{
			"carbonylation": next.ProteinCarbonylation,
			"acetylation":   next.TubulinHyperacetylation,
			"aggregates":    next.ProteinAggregates,
			"phospho":       next.PhosphorylationDysregulation,
			"cep164":        next.CEP164Integrity,
			"cep89":         next.CEP89Integrity,
			"ninein":        next.NineinIntegrity,
			"cep170":        next.CEP170Integrity,
			"cilia":         next.CiliaryFunction,
			"spindle":       next.SpindleFidelity,
			"ros":           next.ROSLevel,
			"total":         next.TotalDamageScore(),
		} {
			if v < 0 || v > 1 || math.IsNaN(v) {
				t.Fatalf("step %d: %s out of bounds: %f", step, name, v)
			}
		}

		if next.ProteinCarbonylation < s.ProteinCarbonylation ||
			next.TubulinHyperacetylation < s.TubulinHyperacetylation ||
			next.ProteinAggregates < s.ProteinAggregates ||
			next.PhosphorylationDysregulation < s.PhosphorylationDysregulation {
			t.Fatalf("step %d: molecular damage decreased", step)
		}
		if next.CEP164Integrity > s.CEP164Integrity ||
			next.CEP89Integrity > s.CEP89Integrity ||
			next.NineinIntegrity > s.NineinIntegrity ||
			next.CEP170Integrity > s.CEP170Integrity {
			t.Fatalf("step %d: appendage integrity increased", step)
		}
		if s.IsSenescent && !next.IsSenescent {
			t.Fatalf("step %d: senescence reverted", step)
		}
		s = next
	}
	assert.True(t, s.IsSenescent, "progeria rates should reach senescence within 200 years")
}

func TestAccumulateSenescenceSticky(t *testing.T) {
	s := Pristine()
	s.IsSenescent = true
	next := Accumulate(s, DefaultParams(), 1, 0)
	assert.True(t, next.IsSenescent)
}

func TestAccumulateNegativeInputsSaturate(t *testing.T) {
	s := Pristine()
	next := Accumulate(s, DefaultParams(), -5, -1)
	assert.Equal(t, s.ProteinAggregates, next.ProteinAggregates)
	assert.Equal(t, s.CEP164Integrity, next.CEP164Integrity)
}

func TestPoolExhaustionIdentity(t *testing.T) {
	s := Pristine()
	for i := 0; i < 50; i++ {
		s = Accumulate(s, ProgeriaParams(), 50, 1)
		assert.Equal(t, 0.6*s.SymmetricDivisionProbability(), s.PoolExhaustionProbability())
	}
}

func TestPristineProbabilities(t *testing.T) {
	s := Pristine()
	assert.Zero(t, s.TotalDamageScore())
	assert.Zero(t, s.SymmetricDivisionProbability())
}

func TestScaledDoesNotMutate(t *testing.T) {
	base := DefaultParams()
	scaled := base.Scaled(2, 3)
	assert.Equal(t, DefaultParams(), base)
	assert.InDelta(t, base.AggregationRate*2, scaled.AggregationRate, 1e-12)
	assert.InDelta(t, base.CEP89LossRate*3, scaled.CEP89LossRate, 1e-12)
	assert.Equal(t, base.ROSFeedbackCoefficient, scaled.ROSFeedbackCoefficient)
}

func TestPresets(t *testing.T) {
	def := DefaultParams()
	prog, ok := Preset("progeria")
	require.True(t, ok)
	assert.InDelta(t, def.CEP164LossRate*5, prog.CEP164LossRate, 1e-12)
	assert.Equal(t, 3.0, prog.MidlifeDamageMultiplier)

	lon, ok := Preset("longevity")
	require.True(t, ok)
	assert.InDelta(t, def.BaseROSDamageRate*0.6, lon.BaseROSDamageRate, 1e-12)
	assert.Equal(t, 1.2, lon.MidlifeDamageMultiplier)

	_, ok = Preset("immortal")
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	require.NoError(t, DefaultParams().Validate())

	p := DefaultParams()
	p.AcetylationRate = -1
	p.SenescenceThreshold = 0
	err := p.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidParams))
	assert.Contains(t, err.Error(), "acetylation_rate")
	assert.Contains(t, err.Error(), "senescence_threshold")
}
