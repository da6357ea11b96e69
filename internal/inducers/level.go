package inducers

// Level is the potency class implied by the remaining S inducers.
type Level uint8

const (
	Null Level = iota
	Pluripotent
	Multipotent
	Oligopotent
	Unipotent
	Terminal
)

var levelNames = [...]string{
	Null:        "Null",
	Pluripotent: "Pluripotent",
	Multipotent: "Multipotent",
	Oligopotent: "Oligopotent",
	Unipotent:   "Unipotent",
	Terminal:    "Terminal",
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "Unknown"
}

func (l Level) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// MorphogeneticLevel classifies the ledger by its S fill ratio.
func (l Ledger) MorphogeneticLevel() Level {
	if l.SMax == 0 {
		return Terminal
	}
	ratio := float64(l.SCount) / float64(l.SMax)
	switch {
	case ratio >= 1:
		return Null
	case ratio > 0.75:
		return Pluripotent
	case ratio > 0.50:
		return Multipotent
	case ratio > 0.25:
		return Oligopotent
	case ratio > 0:
		return Unipotent
	default:
		return Terminal
	}
}
