package core

import "math"

// TimeScale converts scheduler ticks into simulated years.
type TimeScale struct {
	StepsPerYear     float64 `yaml:"steps_per_year"`
	TimeAcceleration float64 `yaml:"time_acceleration"`
}

// Years converts a scheduler delta into years. A non-positive StepsPerYear
// yields 0 rather than an infinite step.
func (t TimeScale) Years(dt float64) float64 {
	if t.StepsPerYear <= 0 || dt <= 0 {
		return 0
	}
	accel := t.TimeAcceleration
	if accel <= 0 {
		accel = 1
	}
	return dt * accel / t.StepsPerYear
}

// StepsFor returns how many unit ticks cover the given span of years.
func (t TimeScale) StepsFor(years float64) int {
	per := t.Years(1)
	if per <= 0 || years <= 0 {
		return 0
	}
	const eps = 1e-9
	n := int(math.Floor(years/per + eps))
	if float64(n)*per < years-eps {
		n++
	}
	return n
}
