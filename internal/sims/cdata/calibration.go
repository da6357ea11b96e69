package cdata

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"cdata/internal/damage"
	"cdata/pkg/core"
)

// CalibrationResult captures how closely a parameter set hits the target
// median senescence onset.
type CalibrationResult struct {
	// MedianOnset is the median age at which an organism's first niche
	// turned senescent, over the organisms that got there.
	MedianOnset float64
	// Senescent counts organisms that turned senescent before dying.
	Senescent int
	// MedianLifespan is the median age at death.
	MedianLifespan float64
	// Error is the distance between MedianOnset and the target. It is +Inf
	// when no organism turned senescent.
	Error float64
}

// SweepRecord documents a single improvement encountered while exploring the
// parameter space.
type SweepRecord struct {
	Pass      int
	Parameter string
	Value     string
	Result    CalibrationResult
	Params    damage.Params
}

// Calibrate runs a cohort with the given damage parameters and scores it
// against target.
func Calibrate(ctx context.Context, cfg Config, p damage.Params, target float64, organisms int) (CalibrationResult, error) {
	cfg.Damage = p
	cohort, err := RunCohort(ctx, cfg, organisms, 1)
	if err != nil {
		return CalibrationResult{}, err
	}
	res := CalibrationResult{
		MedianOnset:    cohort.MedianOnset,
		Senescent:      cohort.SenescentCount,
		MedianLifespan: cohort.MedianLifespan,
		Error:          math.Inf(1),
	}
	if cohort.SenescentCount > 0 {
		res.Error = math.Abs(cohort.MedianOnset - target)
	}
	return res, nil
}

type floatSpec struct {
	name    string
	factors []float64
	getter  func(damage.Params) float64
	setter  func(*damage.Params, float64)
}

// SweepOptions bounds a calibration sweep.
type SweepOptions struct {
	Target    float64
	Organisms int
	Passes    int
	Workers   int
	// RandomSamples is the number of random rate rescalings tried before the
	// coordinate descent.
	RandomSamples int
}

// CalibrationSweep performs a coarse coordinate-descent search over the
// damage rates and returns the best parameter set discovered along with its
// score and an improvement trace.
func CalibrationSweep(ctx context.Context, base Config, opts SweepOptions) (damage.Params, CalibrationResult, []SweepRecord, error) {
	if opts.Target <= 0 {
		opts.Target = 78
	}
	if opts.Organisms <= 0 {
		opts.Organisms = 8
	}
	if opts.Passes <= 0 {
		opts.Passes = 1
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}

	currentParams := base.Damage
	currentResult, err := Calibrate(ctx, base, currentParams, opts.Target, opts.Organisms)
	if err != nil {
		return currentParams, currentResult, nil, err
	}

	records := []SweepRecord{{
		Pass:      0,
		Parameter: "baseline",
		Result:    currentResult,
		Params:    currentParams,
	}}

	rng := core.NewStream(base.Seed, core.StreamKey("calibration"))
	for i := 0; i < opts.RandomSamples; i++ {
		candidate := randomizeParams(rng, base.Damage)
		res, err := Calibrate(ctx, base, candidate, opts.Target, opts.Organisms)
		if err != nil {
			return currentParams, currentResult, records, err
		}
		if betterResult(res, currentResult) {
			currentParams = candidate
			currentResult = res
			records = append(records, SweepRecord{
				Pass:      0,
				Parameter: fmt.Sprintf("random#%d", i+1),
				Result:    res,
				Params:    candidate,
			})
		}
	}

	specs := sweepSpecs()
	for pass := 1; pass <= opts.Passes; pass++ {
		improved := false
		for _, spec := range specs {
			bestParams, bestResult, changed, rec, err := evaluateFloatSpec(ctx, base, currentParams, currentResult, spec, opts, pass)
			if err != nil {
				return currentParams, currentResult, records, err
			}
			if changed {
				currentParams = bestParams
				currentResult = bestResult
				records = append(records, rec...)
				improved = true
			}
		}
		if !improved {
			break
		}
	}

	return currentParams, currentResult, records, nil
}

func sweepSpecs() []floatSpec {
	factors := []float64{0.7, 0.85, 1.15, 1.3}
	return []floatSpec{
		{
			name:    "acetylation_rate",
			factors: factors,
			getter:  func(p damage.Params) float64 { return p.AcetylationRate },
			setter:  func(p *damage.Params, v float64) { p.AcetylationRate = v },
		},
		{
			name:    "aggregation_rate",
			factors: factors,
			getter:  func(p damage.Params) float64 { return p.AggregationRate },
			setter:  func(p *damage.Params, v float64) { p.AggregationRate = v },
		},
		{
			name:    "phospho_dysregulation_rate",
			factors: factors,
			getter:  func(p damage.Params) float64 { return p.PhosphoDysregulationRate },
			setter:  func(p *damage.Params, v float64) { p.PhosphoDysregulationRate = v },
		},
		{
			name:    "cep164_loss_rate",
			factors: factors,
			getter:  func(p damage.Params) float64 { return p.CEP164LossRate },
			setter:  func(p *damage.Params, v float64) { p.CEP164LossRate = v },
		},
		{
			name:    "cep170_loss_rate",
			factors: factors,
			getter:  func(p damage.Params) float64 { return p.CEP170LossRate },
			setter:  func(p *damage.Params, v float64) { p.CEP170LossRate = v },
		},
		{
			name:    "midlife_damage_multiplier",
			factors: []float64{0.8, 0.9, 1.1, 1.25},
			getter:  func(p damage.Params) float64 { return p.MidlifeDamageMultiplier },
			setter:  func(p *damage.Params, v float64) { p.MidlifeDamageMultiplier = v },
		},
	}
}

func evaluateFloatSpec(ctx context.Context, base Config, params damage.Params, baseline CalibrationResult, spec floatSpec, opts SweepOptions, pass int) (damage.Params, CalibrationResult, bool, []SweepRecord, error) {
	bestParams := params
	bestResult := baseline
	changed := false
	records := make([]SweepRecord, 0)

	type candidate struct {
		value  float64
		result CalibrationResult
	}

	current := spec.getter(params)
	candidates := make([]candidate, len(spec.factors))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for idx, f := range spec.factors {
		v := current * f
		g.Go(func() error {
			candidateParams := params
			spec.setter(&candidateParams, v)
			res, err := Calibrate(gctx, base, candidateParams, opts.Target, opts.Organisms)
			if err != nil {
				return err
			}
			candidates[idx] = candidate{value: v, result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return bestParams, bestResult, false, nil, err
	}

	for _, cand := range candidates {
		if almostEqual(cand.value, current) {
			continue
		}
		if betterResult(cand.result, bestResult) {
			candidateParams := params
			spec.setter(&candidateParams, cand.value)
			bestParams = candidateParams
			bestResult = cand.result
			changed = true
			records = append(records, SweepRecord{
				Pass:      pass,
				Parameter: spec.name,
				Value:     fmt.Sprintf("%.5f", cand.value),
				Result:    cand.result,
				Params:    candidateParams,
			})
		}
	}

	return bestParams, bestResult, changed, records, nil
}

func betterResult(a, b CalibrationResult) bool {
	if a.Error < b.Error {
		return true
	}
	if a.Error > b.Error {
		return false
	}
	return a.Senescent > b.Senescent
}

func almostEqual(a, b float64) bool {
	const eps = 1e-12
	return math.Abs(a-b) <= eps
}

// randomizeParams rescales the molecular and appendage rate groups by
// independent factors in [0.6, 1.4).
func randomizeParams(rng *core.RNG, base damage.Params) damage.Params {
	return base.Scaled(randomFloatRange(rng, 0.6, 1.4), randomFloatRange(rng, 0.6, 1.4))
}

func randomFloatRange(rng *core.RNG, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + rng.Float64()*(max-min)
}
