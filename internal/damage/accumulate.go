package damage

import "math"

// MidlifeAge is the age after which the midlife multiplier applies.
const MidlifeAge = 40.0

// BaseROS is the age-driven ROS floor before the damage feedback term.
func BaseROS(ageYears float64) float64 {
	return 0.05 + ageYears*0.005
}

// Accumulate advances s by dtYears at the given organism age and returns the
// new state. It never fails; every field saturates in [0, 1].
//
// The ROS boost on the time increment reads the damage score before the
// update while the ROS level recompute reads it after. The calibration of the
// default rates depends on that ordering.
func Accumulate(s State, p Params, ageYears, dtYears float64) State {
	if dtYears < 0 {
		dtYears = 0
	}
	if ageYears < 0 {
		ageYears = 0
	}

	ageMultiplier := 1.0
	if ageYears > MidlifeAge {
		ageMultiplier = p.MidlifeDamageMultiplier
	}
	rosBoost := 1 + p.ROSFeedbackCoefficient*s.TotalDamageScore()
	effectiveDT := dtYears * ageMultiplier * rosBoost

	out := s
	out.ProteinCarbonylation = grow(s.ProteinCarbonylation, p.BaseROSDamageRate*s.ROSLevel*effectiveDT)
	out.TubulinHyperacetylation = grow(s.TubulinHyperacetylation, p.AcetylationRate*effectiveDT)
	out.ProteinAggregates = grow(s.ProteinAggregates, p.AggregationRate*effectiveDT)
	out.PhosphorylationDysregulation = grow(s.PhosphorylationDysregulation, p.PhosphoDysregulationRate*effectiveDT)

	out.CEP164Integrity = shrink(s.CEP164Integrity, p.CEP164LossRate*effectiveDT)
	out.CEP89Integrity = shrink(s.CEP89Integrity, p.CEP89LossRate*effectiveDT)
	out.NineinIntegrity = shrink(s.NineinIntegrity, p.NineinLossRate*effectiveDT)
	out.CEP170Integrity = shrink(s.CEP170Integrity, p.CEP170LossRate*effectiveDT)

	out.ROSLevel = clamp01(BaseROS(ageYears) + p.ROSFeedbackCoefficient*out.TotalDamageScore())

	out.updateFunctionalMetrics(p.SenescenceThreshold)
	return out
}

func grow(v, delta float64) float64 {
	return math.Min(1, v+math.Max(0, delta))
}

func shrink(v, delta float64) float64 {
	return math.Max(0, v-math.Max(0, delta))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
