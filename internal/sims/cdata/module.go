// Package cdata wires the centriolar damage model into a schedulable module
// and provides cohort and calibration runs on top of it.
package cdata

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"cdata/internal/core"
	"cdata/internal/logging"
	"cdata/internal/organism"
	"cdata/internal/stage"
)

// ModuleName is the registry name of the module.
const ModuleName = "human_development"

// Module simulates one human organism from zygote to death.
type Module struct {
	cfg   Config
	index int
	log   *zap.Logger

	org       *organism.Organism
	lastStage stage.Stage
	steps     int
}

// Option customises a Module.
type Option func(*Module)

// WithLogger sets the module logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Module) { m.log = logging.OrNop(l) }
}

// WithIndex selects which organism of the seed's population the module
// simulates.
func WithIndex(i int) Option {
	return func(m *Module) { m.index = i }
}

// New validates cfg and returns an uninitialised module.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := &Module{cfg: cfg, log: zap.NewNop()}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Name returns the registry name.
func (m *Module) Name() string { return ModuleName }

// Config returns a copy of the active configuration.
func (m *Module) Config() Config { return m.cfg }

// Initialize conceives a fresh organism.
func (m *Module) Initialize(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.org = organism.New(m.cfg.OrganismConfig(m.index))
	m.lastStage = m.org.State().Stage
	m.steps = 0
	m.log.Info("organism initialized",
		zap.String("id", m.org.ID),
		zap.Int64("seed", m.cfg.Seed),
		zap.String("mode", m.cfg.Mode),
		zap.Int("tissues", len(m.cfg.Tissues)),
	)
	return nil
}

// Step advances the organism by dt scheduler ticks.
func (m *Module) Step(ctx context.Context, dt float64) error {
	if m.org == nil {
		if err := m.Initialize(ctx); err != nil {
			return err
		}
	}
	if !m.org.Alive() {
		return nil
	}
	if err := m.org.Step(ctx, m.cfg.Time.Years(dt)); err != nil {
		return fmt.Errorf("step organism %s: %w", m.org.ID, err)
	}
	m.steps++

	st := m.org.State()
	if st.Stage != m.lastStage {
		m.log.Debug("stage transition",
			zap.String("id", m.org.ID),
			zap.String("from", m.lastStage.String()),
			zap.String("to", st.Stage.String()),
			zap.Float64("age_years", st.AgeYears),
		)
		m.lastStage = st.Stage
	}
	if !st.IsAlive {
		onset, senescent := m.org.SenescenceOnset()
		m.log.Info("organism died",
			zap.String("id", m.org.ID),
			zap.String("cause", m.org.Cause().String()),
			zap.Float64("age_years", st.AgeYears),
			zap.Float64("frailty", st.FrailtyIndex),
			zap.Bool("senescent", senescent),
			zap.Float64("senescence_onset", onset),
			zap.Int("steps", m.steps),
		)
	}
	return nil
}

// Alive reports whether the organism is alive. An uninitialised module is
// considered alive.
func (m *Module) Alive() bool { return m.org == nil || m.org.Alive() }

// Organism exposes the simulated organism, or nil before Initialize.
func (m *Module) Organism() *organism.Organism { return m.org }

// Snapshot returns the read-only organism view.
func (m *Module) Snapshot() organism.Snapshot {
	if m.org == nil {
		return organism.Snapshot{}
	}
	return m.org.Snapshot()
}

func init() {
	core.Register(ModuleName, func(kv map[string]string) (core.Module, error) {
		cfg, err := FromMap(kv)
		if err != nil {
			return nil, err
		}
		m, err := New(cfg)
		if err != nil {
			return nil, err
		}
		return m, nil
	})
}
