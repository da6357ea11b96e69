package organism

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"cdata/internal/damage"
	"cdata/internal/inducers"
	"cdata/internal/stage"
	"cdata/internal/tissue"
	"cdata/pkg/core"
)

// Config describes one organism.
type Config struct {
	Seed      int64
	Index     int
	Tissues   []tissue.Type
	Damage    damage.Params
	Lifespan  Params
	SInducers uint32
	HInducers uint32
	Parallel  bool
}

// Organism owns its niches and the integrator reading them.
type Organism struct {
	ID string

	integrator *Integrator
	tissues    []*tissue.Simulator
	damage     damage.Params
	parallel   bool

	senescenceOnset float64
}

// New builds an organism with one niche per configured tissue. Each niche
// draws from a stream keyed by organism index and tissue type, so results
// do not depend on scheduling.
func New(cfg Config) *Organism {
	types := cfg.Tissues
	if len(types) == 0 {
		types = tissue.DefaultTypes()
	}
	o := &Organism{
		ID:              uuid.NewString(),
		integrator:      NewIntegrator(cfg.Lifespan),
		damage:          cfg.Damage,
		parallel:        cfg.Parallel,
		senescenceOnset: -1,
	}
	idx := strconv.Itoa(cfg.Index)
	for _, t := range types {
		rng := core.NewStream(cfg.Seed, core.StreamKey(idx, t.String()))
		o.tissues = append(o.tissues, tissue.New(t, inducers.Zygote(cfg.SInducers, cfg.HInducers), rng))
	}
	return o
}

// State returns the organism-level state.
func (o *Organism) State() State { return o.integrator.State }

// Alive reports whether the organism is still alive.
func (o *Organism) Alive() bool { return o.integrator.State.IsAlive }

// Cause reports why the organism died.
func (o *Organism) Cause() Cause { return o.integrator.Cause() }

// History returns the stage transition log.
func (o *Organism) History() []stage.Transition { return o.integrator.History() }

// Tissues returns the niches in configuration order.
func (o *Organism) Tissues() []*tissue.Simulator { return o.tissues }

// SenescenceOnset returns the age at which the first niche turned senescent.
func (o *Organism) SenescenceOnset() (float64, bool) {
	return o.senescenceOnset, o.senescenceOnset >= 0
}

// SetDamageParams replaces the damage parameters used from the next step.
func (o *Organism) SetDamageParams(p damage.Params) { o.damage = p }

// Step advances the organism by dtYears. Niches update independently and
// the integrator runs once all of them have finished. Step is a no-op after
// death and only fails when ctx is done before the step starts.
func (o *Organism) Step(ctx context.Context, dtYears float64) error {
	if !o.Alive() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	o.integrator.Advance(dtYears)
	if !o.Alive() {
		return nil
	}
	age := o.integrator.State.AgeYears
	orgStage := o.integrator.State.Stage
	p := o.damage

	if o.parallel {
		var g errgroup.Group
		for _, sim := range o.tissues {
			g.Go(func() error {
				sim.Step(age, dtYears, orgStage, p)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	} else {
		for _, sim := range o.tissues {
			sim.Step(age, dtYears, orgStage, p)
		}
	}

	if o.senescenceOnset < 0 {
		for _, sim := range o.tissues {
			if sim.Damage.IsSenescent {
				o.senescenceOnset = age
				break
			}
		}
	}

	o.integrator.IntegrateTissueMetrics(o.tissues)
	return nil
}

// Run steps the organism until it dies, maxSteps is reached, or ctx is done.
func (o *Organism) Run(ctx context.Context, dtYears float64, maxSteps int) (int, error) {
	for i := 0; i < maxSteps; i++ {
		if !o.Alive() {
			return i, nil
		}
		if err := o.Step(ctx, dtYears); err != nil {
			return i, err
		}
	}
	return maxSteps, nil
}
