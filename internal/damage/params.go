package damage

import (
	"errors"
	"fmt"
)

// ErrInvalidParams reports a rate-constant bundle that cannot drive the model.
var ErrInvalidParams = errors.New("invalid damage params")

// Params holds the rate constants of the centriolar damage model. Rates are
// expressed per year. Params values are copied, never mutated in place.
type Params struct {
	// Molecular damage accumulation rates.
	BaseROSDamageRate        float64 `yaml:"base_ros_damage_rate"`
	AcetylationRate          float64 `yaml:"acetylation_rate"`
	AggregationRate          float64 `yaml:"aggregation_rate"`
	PhosphoDysregulationRate float64 `yaml:"phospho_dysregulation_rate"`

	// Distal appendage loss rates.
	CEP164LossRate float64 `yaml:"cep164_loss_rate"`
	CEP89LossRate  float64 `yaml:"cep89_loss_rate"`
	NineinLossRate float64 `yaml:"ninein_loss_rate"`
	CEP170LossRate float64 `yaml:"cep170_loss_rate"`

	// ROSFeedbackCoefficient couples accumulated damage back into ROS.
	ROSFeedbackCoefficient float64 `yaml:"ros_feedback_coefficient"`
	// SASPOnsetAge is the age (years) after which senescent niches secrete SASP.
	SASPOnsetAge float64 `yaml:"sasp_onset_age"`
	// SenescenceThreshold is the total damage score above which a niche
	// becomes senescent.
	SenescenceThreshold float64 `yaml:"senescence_threshold"`
	// MidlifeDamageMultiplier scales the time increment after age 40.
	MidlifeDamageMultiplier float64 `yaml:"midlife_damage_multiplier"`
}

// DefaultParams returns the calibrated rates, which put the median niche
// senescence onset near 78 years.
func DefaultParams() Params {
	return Params{
		BaseROSDamageRate:        0.0076,
		AcetylationRate:          0.0059,
		AggregationRate:          0.0059,
		PhosphoDysregulationRate: 0.0042,

		CEP164LossRate: 0.0113,
		CEP89LossRate:  0.0084,
		NineinLossRate: 0.0084,
		CEP170LossRate: 0.0067,

		ROSFeedbackCoefficient:  0.12,
		SASPOnsetAge:            45,
		SenescenceThreshold:     0.75,
		MidlifeDamageMultiplier: 1.6,
	}
}

// ProgeriaParams returns the accelerated-aging preset: every rate ×5.
func ProgeriaParams() Params {
	p := DefaultParams().Scaled(5, 5)
	p.MidlifeDamageMultiplier = 3.0
	return p
}

// LongevityParams returns the slowed-aging preset: every rate ×0.6.
func LongevityParams() Params {
	p := DefaultParams().Scaled(0.6, 0.6)
	p.MidlifeDamageMultiplier = 1.2
	return p
}

// Preset resolves a named preset ("normal", "progeria", "longevity").
func Preset(name string) (Params, bool) {
	switch name {
	case "", "normal", "default":
		return DefaultParams(), true
	case "progeria":
		return ProgeriaParams(), true
	case "longevity":
		return LongevityParams(), true
	default:
		return Params{}, false
	}
}

// Scaled returns a copy with the four molecular rates multiplied by molecular
// and the four appendage-loss rates multiplied by appendage.
func (p Params) Scaled(molecular, appendage float64) Params {
	out := p
	out.BaseROSDamageRate *= molecular
	out.AcetylationRate *= molecular
	out.AggregationRate *= molecular
	out.PhosphoDysregulationRate *= molecular
	out.CEP164LossRate *= appendage
	out.CEP89LossRate *= appendage
	out.NineinLossRate *= appendage
	out.CEP170LossRate *= appendage
	return out
}

// Validate rejects negative rates and out-of-range thresholds.
func (p Params) Validate() error {
	var errs []error
	rates := []struct {
		key   string
		value float64
	}{
		{"base_ros_damage_rate", p.BaseROSDamageRate},
		{"acetylation_rate", p.AcetylationRate},
		{"aggregation_rate", p.AggregationRate},
		{"phospho_dysregulation_rate", p.PhosphoDysregulationRate},
		{"cep164_loss_rate", p.CEP164LossRate},
		{"cep89_loss_rate", p.CEP89LossRate},
		{"ninein_loss_rate", p.NineinLossRate},
		{"cep170_loss_rate", p.CEP170LossRate},
		{"ros_feedback_coefficient", p.ROSFeedbackCoefficient},
		{"sasp_onset_age", p.SASPOnsetAge},
		{"midlife_damage_multiplier", p.MidlifeDamageMultiplier},
	}
	for _, r := range rates {
		if r.value < 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be non-negative, got %g", ErrInvalidParams, r.key, r.value))
		}
	}
	if p.SenescenceThreshold <= 0 || p.SenescenceThreshold > 1 {
		errs = append(errs, fmt.Errorf("%w: senescence_threshold must be in (0, 1], got %g", ErrInvalidParams, p.SenescenceThreshold))
	}
	return errors.Join(errs...)
}
