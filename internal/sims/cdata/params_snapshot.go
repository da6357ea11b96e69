package cdata

import (
	"math"
	"strconv"

	"go.uber.org/zap"

	"cdata/internal/core"
)

var _ core.ParameterControlsProvider = (*Module)(nil)

func (m *Module) Parameters() core.ParameterSnapshot {
	c := m.cfg
	d := c.Damage
	tissues := ""
	for i, t := range c.Tissues {
		if i > 0 {
			tissues += ","
		}
		tissues += t.String()
	}
	groups := []core.ParameterGroup{
		{
			Name: "Run",
			Params: []core.Parameter{
				int64Param("seed", "Seed", c.Seed),
				stringParam("mode", "Mode", c.Mode),
				boolParam("parallel", "Parallel niches", c.Parallel),
				stringParam("tissues", "Tissues", tissues),
				floatParam("steps_per_year", "Steps per year", c.Time.StepsPerYear),
				floatParam("time_acceleration", "Time acceleration", c.Time.TimeAcceleration),
			},
		},
		{
			Name:    "Molecular damage",
			Summary: "Accumulation rates per year",
			Params: []core.Parameter{
				floatParam("base_ros_damage_rate", "Carbonylation rate", d.BaseROSDamageRate),
				floatParam("acetylation_rate", "Hyperacetylation rate", d.AcetylationRate),
				floatParam("aggregation_rate", "Aggregation rate", d.AggregationRate),
				floatParam("phospho_dysregulation_rate", "Phospho dysregulation rate", d.PhosphoDysregulationRate),
			},
		},
		{
			Name:    "Appendages",
			Summary: "Integrity loss rates per year",
			Params: []core.Parameter{
				floatParam("cep164_loss_rate", "CEP164 loss rate", d.CEP164LossRate),
				floatParam("cep89_loss_rate", "CEP89 loss rate", d.CEP89LossRate),
				floatParam("ninein_loss_rate", "Ninein loss rate", d.NineinLossRate),
				floatParam("cep170_loss_rate", "CEP170 loss rate", d.CEP170LossRate),
			},
		},
		{
			Name: "Feedback",
			Params: []core.Parameter{
				floatParam("ros_feedback_coefficient", "ROS feedback", d.ROSFeedbackCoefficient),
				floatParam("sasp_onset_age", "SASP onset age", d.SASPOnsetAge),
				floatParam("senescence_threshold", "Senescence threshold", d.SenescenceThreshold),
				floatParam("midlife_damage_multiplier", "Midlife multiplier", d.MidlifeDamageMultiplier),
			},
		},
		{
			Name:    "Development",
			Summary: "Applied when an organism is initialized",
			Params: []core.Parameter{
				intParam("s_inducers_initial", "S inducers", int(c.Development.SInducersInitial)),
				intParam("h_inducers_initial", "H inducers", int(c.Development.HInducersInitial)),
				floatParam("max_lifespan_years", "Max lifespan (years)", c.Development.MaxLifespanYears),
				floatParam("senescence_death_frailty", "Death frailty", c.Development.SenescenceDeathFrailty),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the adjustable numeric parameters with bounds.
func (m *Module) ParameterControls() []core.ParameterControl {
	rate := func(key, label string) core.ParameterControl {
		return core.ParameterControl{Key: key, Label: label, Type: core.ParamTypeFloat, Step: 0.0005, Min: 0, HasMin: true}
	}
	return []core.ParameterControl{
		rate("base_ros_damage_rate", "Carbonylation rate"),
		rate("acetylation_rate", "Hyperacetylation rate"),
		rate("aggregation_rate", "Aggregation rate"),
		rate("phospho_dysregulation_rate", "Phospho dysregulation rate"),
		rate("cep164_loss_rate", "CEP164 loss rate"),
		rate("cep89_loss_rate", "CEP89 loss rate"),
		rate("ninein_loss_rate", "Ninein loss rate"),
		rate("cep170_loss_rate", "CEP170 loss rate"),
		{Key: "ros_feedback_coefficient", Label: "ROS feedback", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, HasMin: true},
		{Key: "sasp_onset_age", Label: "SASP onset age", Type: core.ParamTypeFloat, Step: 1, Min: 0, HasMin: true},
		{Key: "senescence_threshold", Label: "Senescence threshold", Type: core.ParamTypeFloat, Step: 0.01, Min: 0.01, Max: 1, HasMin: true, HasMax: true},
		{Key: "midlife_damage_multiplier", Label: "Midlife multiplier", Type: core.ParamTypeFloat, Step: 0.1, Min: 0, HasMin: true},
		{Key: "steps_per_year", Label: "Steps per year", Type: core.ParamTypeFloat, Step: 1, Min: 1, HasMin: true},
		{Key: "time_acceleration", Label: "Time acceleration", Type: core.ParamTypeFloat, Step: 0.1, Min: 0.01, HasMin: true},
		{Key: "max_lifespan_years", Label: "Max lifespan (years)", Type: core.ParamTypeFloat, Step: 1, Min: 1, HasMin: true},
		{Key: "senescence_death_frailty", Label: "Death frailty", Type: core.ParamTypeFloat, Step: 0.01, Min: 0.01, HasMin: true},
		{Key: "s_inducers_initial", Label: "S inducers", Type: core.ParamTypeInt, Step: 1, Min: 1, HasMin: true},
		{Key: "h_inducers_initial", Label: "H inducers", Type: core.ParamTypeInt, Step: 1, Min: 1, HasMin: true},
	}
}

// SetFloatParameter clamps value to the control bounds and applies it.
// Damage rates take effect on the next step; development settings on the
// next Initialize.
func (m *Module) SetFloatParameter(key string, value float64) bool {
	var ctrl core.ParameterControl
	found := false
	for _, c := range m.ParameterControls() {
		if c.Key == key {
			ctrl, found = c, true
			break
		}
	}
	if !found || math.IsNaN(value) {
		return false
	}
	value = ctrl.Clamp(value)

	next := m.cfg
	if f, ok := next.floatFields()[key]; ok {
		*f = value
	} else if u, ok := next.uintFields()[key]; ok {
		*u = uint32(math.Round(value))
	} else {
		return false
	}
	m.cfg = next
	if m.org != nil {
		m.org.SetDamageParams(m.cfg.Damage)
	}
	m.log.Debug("parameter updated", zap.String("key", key), zap.Float64("value", value))
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{Key: key, Label: label, Value: value}
}
