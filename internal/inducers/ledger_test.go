package inducers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cdata/internal/damage"
	"cdata/pkg/core"
)

// fixedSource replays a fixed sequence of draws.
type fixedSource struct {
	vals []float64
	i    int
}

func (f *fixedSource) Float64() float64 {
	v := f.vals[f.i%len(f.vals)]
	f.i++
	return v
}

func TestConsumeUntilTerminal(t *testing.T) {
	l := Zygote(5, 2)
	for i := 0; i < 5; i++ {
		require.True(t, l.ConsumeS(), "consume %d", i)
	}
	assert.Zero(t, l.SCount)
	assert.True(t, l.IsTerminallyDifferentiated())
	assert.Equal(t, uint32(5), l.DifferentiationDivisions)

	assert.False(t, l.ConsumeS())
	assert.Zero(t, l.SCount)
	assert.Equal(t, uint32(5), l.DifferentiationDivisions)
}

func TestConsumeH(t *testing.T) {
	l := Zygote(5, 2)
	assert.False(t, l.IsReadyForMeiosis())
	require.True(t, l.ConsumeH())
	require.True(t, l.ConsumeH())
	assert.False(t, l.ConsumeH())
	assert.True(t, l.IsReadyForMeiosis())
	assert.Equal(t, 1.0, l.HStatus())

	empty := Zygote(5, 0)
	assert.False(t, empty.IsReadyForMeiosis())
}

func TestStatusGuardsZeroMax(t *testing.T) {
	l := Zygote(0, 0)
	assert.Equal(t, 1.0, l.SStatus())
	assert.Equal(t, 1.0, l.HStatus())
	assert.Equal(t, Terminal, l.MorphogeneticLevel())
}

func TestMorphogeneticLevelBoundaries(t *testing.T) {
	cases := []struct {
		count uint32
		want  Level
	}{
		{100, Null},
		{99, Pluripotent},
		{76, Pluripotent},
		{75, Multipotent},
		{51, Multipotent},
		{50, Oligopotent},
		{26, Oligopotent},
		{25, Unipotent},
		{1, Unipotent},
		{0, Terminal},
	}
	for _, tc := range cases {
		l := Ledger{SCount: tc.count, SMax: 100}
		assert.Equal(t, tc.want, l.MorphogeneticLevel(), "s_count=%d", tc.count)
	}
}

func TestConsumeForStepUsesExpectedEvents(t *testing.T) {
	d := damage.Pristine()
	d.SpindleFidelity = 0.2
	expected := d.PoolExhaustionProbability() * 12 * 0.1
	require.Greater(t, expected, 0.0)

	l := Zygote(3, 0)
	assert.True(t, ConsumeForStep(&l, d, 12, 0.1, &fixedSource{vals: []float64{expected / 2}}))
	assert.Equal(t, uint32(2), l.SCount)

	assert.False(t, ConsumeForStep(&l, d, 12, 0.1, &fixedSource{vals: []float64{expected}}))
	assert.Equal(t, uint32(2), l.SCount)
}

func TestConsumeForStepStopsAtTerminal(t *testing.T) {
	d := damage.Pristine()
	d.SpindleFidelity = 0
	l := Zygote(2, 0)
	rng := core.NewRNG(1)
	for i := 0; i < 100; i++ {
		before := l.SCount
		ConsumeForStep(&l, d, 365, 1, rng)
		assert.LessOrEqual(t, l.SCount, before)
	}
	assert.Zero(t, l.SCount)
	assert.Equal(t, uint32(2), l.DifferentiationDivisions)
}

func TestConsumeForStepPristineNeverConsumes(t *testing.T) {
	l := Zygote(10, 0)
	rng := core.NewRNG(3)
	for i := 0; i < 1000; i++ {
		ConsumeForStep(&l, damage.Pristine(), 730, 1, rng)
	}
	assert.Equal(t, uint32(10), l.SCount)
}

func TestDivideOutcomes(t *testing.T) {
	l := Zygote(3, 0)

	out := Divide(&l, true, &fixedSource{vals: []float64{0.9}})
	assert.Equal(t, Asymmetric, out.Kind)
	assert.Equal(t, 0, out.PoolDelta())
	assert.True(t, out.InducerSpent)
	assert.Equal(t, uint32(2), l.SCount)

	out = Divide(&l, false, &fixedSource{vals: []float64{0.1}})
	assert.Equal(t, SymmetricDifferentiation, out.Kind)
	assert.Equal(t, 2, out.DifferentiatedDaughters)
	assert.Equal(t, -1, out.PoolDelta())
	assert.Equal(t, uint32(1), l.SCount)

	out = Divide(&l, false, &fixedSource{vals: []float64{0.9}})
	assert.Equal(t, SymmetricSelfRenewal, out.Kind)
	assert.Equal(t, 1, out.PoolDelta())
	assert.False(t, out.InducerSpent)
	assert.Equal(t, uint32(1), l.SCount)

	require.True(t, l.ConsumeS())
	out = Divide(&l, true, &fixedSource{vals: []float64{0.5}})
	assert.Equal(t, TerminalDifferentiation, out.Kind)
	assert.Zero(t, out.StemDaughters)
	assert.Zero(t, l.SCount)
}

func TestUnfaithfulDivisionIsFairCoinFlip(t *testing.T) {
	rng := core.NewRNG(7)
	const n = 100000
	differentiated := 0
	for i := 0; i < n; i++ {
		l := Zygote(1, 0)
		switch out := Divide(&l, false, rng); out.Kind {
		case SymmetricDifferentiation:
			differentiated++
			assert.True(t, out.InducerSpent)
		case SymmetricSelfRenewal:
			assert.False(t, out.InducerSpent)
		default:
			t.Fatalf("unexpected outcome %s", out.Kind)
		}
	}
	assert.InDelta(t, 0.5, float64(differentiated)/n, 0.01)
}

func TestSpindleFaithful(t *testing.T) {
	assert.True(t, SpindleFaithful(damage.Pristine(), &fixedSource{vals: []float64{0}}))

	broken := damage.Pristine()
	broken.SpindleFidelity = 0
	assert.False(t, SpindleFaithful(broken, &fixedSource{vals: []float64{0.999}}))
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "Oligopotent", Oligopotent.String())
	text, err := Unipotent.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Unipotent", string(text))
	assert.Equal(t, "SymmetricSelfRenewal", SymmetricSelfRenewal.String())
}
