package stage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForAgeThresholds(t *testing.T) {
	day := 1 / DaysPerYear
	cases := []struct {
		age  float64
		want Stage
	}{
		{0, Zygote},
		{0.5 * day, Zygote},
		{2 * day, Cleavage},
		{10 * day, Blastocyst},
		{20 * day, Gastrulation},
		{40 * day, Organogenesis},
		{0.5, Fetal},
		{0.75, Postnatal},
		{17.99, Postnatal},
		{18, Adult},
		{39.9, Adult},
		{40, MiddleAge},
		{64.9, MiddleAge},
		{65, Senescent},
		{150, Senescent},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ForAge(tc.age), "age %f", tc.age)
	}
}

func TestForAgeMonotonic(t *testing.T) {
	prev := ForAge(0)
	for age := 0.0; age < 120; age += 0.001 {
		s := ForAge(age)
		if s < prev {
			t.Fatalf("stage moved backwards at age %f: %s -> %s", age, prev, s)
		}
		prev = s
	}
}

func TestFineNestsInsideCoarse(t *testing.T) {
	for age := 0.0; age < 100; age += 0.0005 {
		if got, want := FineForAge(age).Coarse(), ForAge(age); got != want {
			t.Fatalf("age %f: fine %s projects to %s, coarse is %s", age, FineForAge(age), got, want)
		}
	}
}

func TestFineCoversAllValues(t *testing.T) {
	seen := map[Fine]bool{}
	for age := 0.0; age < 100; age += 0.0005 {
		seen[FineForAge(age)] = true
	}
	assert.Len(t, seen, 15)
}

func TestNext(t *testing.T) {
	s, ok := Senescent.Next()
	require.True(t, ok)
	assert.Equal(t, Death, s)
	_, ok = Death.Next()
	assert.False(t, ok)
}

func TestDivisionRateDeclines(t *testing.T) {
	assert.Greater(t, DivisionRatePerYear(Adult), DivisionRatePerYear(MiddleAge))
	assert.Greater(t, DivisionRatePerYear(MiddleAge), DivisionRatePerYear(Senescent))
	assert.Zero(t, DivisionRatePerYear(Death))
	assert.Equal(t, 1.0, BaseROSLevel(Death))
}

func TestHistoryRecordsOnlyChanges(t *testing.T) {
	var h History
	assert.True(t, h.Record(0, Zygote))
	assert.False(t, h.Record(0.001, Zygote))
	assert.True(t, h.Record(0.01, Cleavage))

	log := h.Transitions()
	require.Len(t, log, 2)
	log[0].Stage = Death
	assert.Equal(t, Zygote, h.Transitions()[0].Stage, "Transitions must return a copy")
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "MiddleAge", MiddleAge.String())
	assert.Equal(t, "Morula", FineMorula.String())
	assert.Equal(t, "Unknown", Stage(99).String())

	text, err := FineAdolescence.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Adolescence", string(text))
}
