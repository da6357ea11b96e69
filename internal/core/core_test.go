package core

import (
	"context"
	"testing"
)

func TestTimeScaleYears(t *testing.T) {
	ts := TimeScale{StepsPerYear: 10, TimeAcceleration: 1}
	if got := ts.Years(1); got != 0.1 {
		t.Fatalf("expected 0.1 years per tick, got %v", got)
	}
	ts.TimeAcceleration = 4
	if got := ts.Years(2.5); got != 1 {
		t.Fatalf("expected 1 year, got %v", got)
	}
	if got := (TimeScale{}).Years(1); got != 0 {
		t.Fatalf("zero steps per year must yield 0, got %v", got)
	}
	if got := ts.Years(-1); got != 0 {
		t.Fatalf("negative dt must yield 0, got %v", got)
	}
}

func TestTimeScaleStepsFor(t *testing.T) {
	ts := TimeScale{StepsPerYear: 10, TimeAcceleration: 1}
	if got := ts.StepsFor(120); got != 1200 {
		t.Fatalf("expected 1200 steps, got %d", got)
	}
	if got := ts.StepsFor(0.05); got != 1 {
		t.Fatalf("partial step must round up, got %d", got)
	}
}

func TestParameterControlClamp(t *testing.T) {
	c := ParameterControl{Min: 0, Max: 1, HasMin: true, HasMax: true}
	if got := c.Clamp(-3); got != 0 {
		t.Fatalf("expected clamp to 0, got %v", got)
	}
	if got := c.Clamp(7); got != 1 {
		t.Fatalf("expected clamp to 1, got %v", got)
	}
	open := ParameterControl{Min: 0, HasMin: true}
	if got := open.Clamp(7); got != 7 {
		t.Fatalf("unbounded max must pass through, got %v", got)
	}
}

func TestParameterSnapshotLookup(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "A", Params: []Parameter{{Key: "x", Value: "1"}}},
		{Name: "B", Params: []Parameter{{Key: "y", Value: "2"}}},
	}}
	p, ok := snap.Lookup("y")
	if !ok || p.Value != "2" {
		t.Fatalf("expected y=2, got %+v ok=%v", p, ok)
	}
	if _, ok := snap.Lookup("z"); ok {
		t.Fatalf("unexpected hit for missing key")
	}
}

type stubModule struct{}

func (stubModule) Name() string                           { return "stub" }
func (stubModule) Initialize(context.Context) error       { return nil }
func (stubModule) Step(context.Context, float64) error    { return nil }
func (stubModule) Parameters() ParameterSnapshot          { return ParameterSnapshot{} }
func (stubModule) SetFloatParameter(string, float64) bool { return false }

func TestRegisterIgnoresInvalidEntries(t *testing.T) {
	before := len(Modules())
	Register("", func(map[string]string) (Module, error) { return stubModule{}, nil })
	Register("nil_factory", nil)
	if len(Modules()) != before {
		t.Fatalf("invalid registrations must be ignored")
	}

	Register("zz_stub", func(map[string]string) (Module, error) { return stubModule{}, nil })
	defer delete(modules, "zz_stub")
	names := ModuleNames()
	if names[len(names)-1] != "zz_stub" {
		t.Fatalf("expected sorted names ending with zz_stub, got %v", names)
	}
	m, err := Modules()["zz_stub"](nil)
	if err != nil || m.Name() != "stub" {
		t.Fatalf("factory returned %v, %v", m, err)
	}
}
