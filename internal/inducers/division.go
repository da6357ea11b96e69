package inducers

import "cdata/internal/damage"

// Source is the random stream a niche draws from. *core.RNG satisfies it.
type Source interface {
	Float64() float64
}

// ConsumeForStep draws once and spends an S inducer when the draw falls under
// the expected number of pool-exhausting divisions for this increment.
func ConsumeForStep(l *Ledger, d damage.State, divisionsPerYear, dtYears float64, rng Source) bool {
	expected := d.PoolExhaustionProbability() * divisionsPerYear * dtYears
	r := rng.Float64()
	if r < expected && l.SCount > 0 {
		return l.ConsumeS()
	}
	return false
}

// OutcomeKind tags the result of one stem-cell mitosis.
type OutcomeKind uint8

const (
	// Asymmetric yields one stem daughter and one differentiating daughter.
	Asymmetric OutcomeKind = iota
	// SymmetricDifferentiation sends both daughters out of the stem pool.
	SymmetricDifferentiation
	// SymmetricSelfRenewal keeps both daughters in the stem pool.
	SymmetricSelfRenewal
	// TerminalDifferentiation happens once the S inducers are exhausted.
	TerminalDifferentiation
)

func (k OutcomeKind) String() string {
	switch k {
	case Asymmetric:
		return "Asymmetric"
	case SymmetricDifferentiation:
		return "SymmetricDifferentiation"
	case SymmetricSelfRenewal:
		return "SymmetricSelfRenewal"
	case TerminalDifferentiation:
		return "TerminalDifferentiation"
	default:
		return "Unknown"
	}
}

// Outcome describes the daughters produced by a division.
type Outcome struct {
	Kind OutcomeKind
	// StemDaughters stay in the niche; DifferentiatedDaughters leave it.
	StemDaughters           int
	DifferentiatedDaughters int
	// InducerSpent is true when the division consumed an S inducer.
	InducerSpent bool
}

// PoolDelta is the change in stem-cell count relative to the mother cell,
// which leaves the pool when it divides: 0 for asymmetric, -1 for symmetric
// or terminal differentiation, +1 for self-renewal. Counted against the two
// daughters a self-renewing division keeps, symmetric differentiation loses
// two.
func (o Outcome) PoolDelta() int { return o.StemDaughters - 1 }

// SpindleFaithful judges whether the spindle orients correctly for this
// mitosis; the chance of failure is the symmetric-division probability.
func SpindleFaithful(d damage.State, rng Source) bool {
	return rng.Float64() >= d.SymmetricDivisionProbability()
}

// Divide resolves one mitosis at cell granularity.
func Divide(l *Ledger, faithful bool, rng Source) Outcome {
	if l.IsTerminallyDifferentiated() {
		return Outcome{Kind: TerminalDifferentiation, DifferentiatedDaughters: 2}
	}
	if faithful {
		return Outcome{
			Kind:                    Asymmetric,
			StemDaughters:           1,
			DifferentiatedDaughters: 1,
			InducerSpent:            l.ConsumeS(),
		}
	}
	if rng.Float64() < 0.5 {
		return Outcome{
			Kind:                    SymmetricDifferentiation,
			DifferentiatedDaughters: 2,
			InducerSpent:            l.ConsumeS(),
		}
	}
	return Outcome{Kind: SymmetricSelfRenewal, StemDaughters: 2}
}
