// Package stage maps organism age onto developmental stages.
//
// Stage is the organism-level classification and is authoritative. Fine is a
// more granular per-niche view whose thresholds nest inside Stage's, so
// FineForAge(a).Coarse() == ForAge(a) for every age.
package stage

// DaysPerYear converts between the embryonic (day) and postnatal (year) scales.
const DaysPerYear = 365.25

// Stage is the organism developmental stage. Transitions are strictly forward
// and derived from age.
type Stage uint8

const (
	Zygote Stage = iota
	Cleavage
	Blastocyst
	Gastrulation
	Organogenesis
	Fetal
	Postnatal
	Adult
	MiddleAge
	Senescent
	Death
)

var stageNames = [...]string{
	Zygote:        "Zygote",
	Cleavage:      "Cleavage",
	Blastocyst:    "Blastocyst",
	Gastrulation:  "Gastrulation",
	Organogenesis: "Organogenesis",
	Fetal:         "Fetal",
	Postnatal:     "Postnatal",
	Adult:         "Adult",
	MiddleAge:     "MiddleAge",
	Senescent:     "Senescent",
	Death:         "Death",
}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "Unknown"
}

// Next returns the following stage; Death has none.
func (s Stage) Next() (Stage, bool) {
	if s >= Death {
		return Death, false
	}
	return s + 1, true
}

// ForAge classifies an age in years. Death is never returned; it is a modeled
// outcome, not an age bracket.
func ForAge(ageYears float64) Stage {
	days := ageYears * DaysPerYear
	switch {
	case days < 1:
		return Zygote
	case days < 4:
		return Cleavage
	case days < 14:
		return Blastocyst
	case days < 28:
		return Gastrulation
	case days < 56:
		return Organogenesis
	case ageYears < 0.75:
		return Fetal
	case ageYears < 18:
		return Postnatal
	case ageYears < 40:
		return Adult
	case ageYears < 65:
		return MiddleAge
	default:
		return Senescent
	}
}

// DivisionRatePerYear is the differentiating-division tempo of a stem cell
// at the given stage.
func DivisionRatePerYear(s Stage) float64 {
	switch s {
	case Zygote:
		return 365 * 2
	case Cleavage:
		return 365 * 1.5
	case Blastocyst:
		return 365
	case Gastrulation:
		return 365 * 0.5
	case Organogenesis:
		return 365 * 0.3
	case Fetal:
		return 52
	case Postnatal:
		return 24
	case Adult:
		return 12
	case MiddleAge:
		return 6
	case Senescent:
		return 2
	default:
		return 0
	}
}

// BaseROSLevel is the stage-typical ROS baseline in relative units.
func BaseROSLevel(s Stage) float64 {
	switch s {
	case Zygote, Cleavage, Blastocyst:
		return 0.02
	case Gastrulation, Organogenesis:
		return 0.04
	case Fetal:
		return 0.05
	case Postnatal:
		return 0.06
	case Adult:
		return 0.08
	case MiddleAge:
		return 0.12
	case Senescent:
		return 0.20
	default:
		return 1
	}
}
