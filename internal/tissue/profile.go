package tissue

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTissue is returned when a tissue name cannot be parsed.
var ErrUnknownTissue = errors.New("unknown tissue type")

// Type identifies a stem-cell niche family.
type Type uint8

const (
	Neural Type = iota
	Hematopoietic
	IntestinalCrypt
	Muscle
	Skin
	Germline
)

var typeNames = [...]string{
	Neural:          "neural",
	Hematopoietic:   "hematopoietic",
	IntestinalCrypt: "intestinal_crypt",
	Muscle:          "muscle",
	Skin:            "skin",
	Germline:        "germline",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// ParseType resolves a tissue name as produced by String.
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range typeNames {
		if n == name {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTissue, name)
}

// MarshalText implements encoding.TextMarshaler so tissue lists round-trip
// through YAML config files.
func (t Type) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(b []byte) error {
	parsed, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// AllTypes lists every tissue type.
func AllTypes() []Type {
	return []Type{Neural, Hematopoietic, IntestinalCrypt, Muscle, Skin, Germline}
}

// DefaultTypes lists the somatic tissues an organism carries by default.
func DefaultTypes() []Type {
	return []Type{Neural, Hematopoietic, Muscle, IntestinalCrypt, Skin}
}

// Profile scales the damage model for one tissue.
type Profile struct {
	DamageMultiplier       float64
	CiliarySensitivity     float64
	AppendageVulnerability float64
}

// ProfileFor returns the fixed profile of a tissue.
func ProfileFor(t Type) Profile {
	switch t {
	case Hematopoietic:
		// Highly damage-sensitive; drives myeloid skew and immunosenescence.
		return Profile{DamageMultiplier: 1.3, CiliarySensitivity: 0.9, AppendageVulnerability: 1.2}
	case Neural:
		// Strong Shh-cilium dependence, slow pool loss.
		return Profile{DamageMultiplier: 0.8, CiliarySensitivity: 1.3, AppendageVulnerability: 1.1}
	case IntestinalCrypt:
		return Profile{DamageMultiplier: 1.2, CiliarySensitivity: 0.7, AppendageVulnerability: 1.0}
	case Muscle:
		return Profile{DamageMultiplier: 0.9, CiliarySensitivity: 0.8, AppendageVulnerability: 0.9}
	case Skin:
		return Profile{DamageMultiplier: 1.1, CiliarySensitivity: 0.6, AppendageVulnerability: 1.0}
	case Germline:
		return Profile{DamageMultiplier: 0.5, CiliarySensitivity: 1.0, AppendageVulnerability: 0.8}
	default:
		return Profile{DamageMultiplier: 1, CiliarySensitivity: 1, AppendageVulnerability: 1}
	}
}

// DivisionRate is the stem-cell division tempo of a tissue in divisions/year.
func DivisionRate(t Type) float64 {
	switch t {
	case IntestinalCrypt:
		return 10
	case Hematopoietic:
		return 7
	case Skin:
		return 5
	case Germline:
		return 3
	case Muscle:
		return 2
	case Neural:
		return 0.8
	default:
		return 0
	}
}
