package cdata

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"cdata/internal/organism"
)

// Member summarises one organism of a cohort.
type Member struct {
	Index           int     `json:"index"`
	ID              string  `json:"id"`
	LifespanYears   float64 `json:"lifespan_years"`
	Cause           string  `json:"cause"`
	Senescent       bool    `json:"senescent"`
	SenescenceOnset float64 `json:"senescence_onset"`
	FinalFrailty    float64 `json:"final_frailty"`
}

// Cohort aggregates a population of organisms sharing one configuration.
type Cohort struct {
	RunID     string   `json:"run_id"`
	Organisms int      `json:"organisms"`
	Members   []Member `json:"members"`

	MedianLifespan float64 `json:"median_lifespan"`
	MeanLifespan   float64 `json:"mean_lifespan"`
	SenescentCount int     `json:"senescent_count"`
	MedianOnset    float64 `json:"median_onset"`
	MeanOnset      float64 `json:"mean_onset"`
}

// LifeResult runs one organism from conception to death.
func LifeResult(ctx context.Context, cfg Config, index int) (Member, error) {
	org := organism.New(cfg.OrganismConfig(index))
	dt := cfg.Time.Years(1)
	if _, err := org.Run(ctx, dt, cfg.MaxSteps()); err != nil {
		return Member{}, err
	}
	st := org.State()
	onset, senescent := org.SenescenceOnset()
	return Member{
		Index:           index,
		ID:              org.ID,
		LifespanYears:   st.AgeYears,
		Cause:           org.Cause().String(),
		Senescent:       senescent,
		SenescenceOnset: onset,
		FinalFrailty:    st.FrailtyIndex,
	}, nil
}

// RunCohort simulates n organisms on up to workers goroutines. Organism i
// draws from the streams of index i, so the result does not depend on
// workers.
func RunCohort(ctx context.Context, cfg Config, n, workers int) (Cohort, error) {
	if err := cfg.Validate(); err != nil {
		return Cohort{}, err
	}
	if n <= 0 {
		return Cohort{}, fmt.Errorf("%w: cohort size must be positive, got %d", ErrInvalidConfig, n)
	}
	if workers <= 0 {
		workers = 1
	}

	members := make([]Member, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			m, err := LifeResult(gctx, cfg, i)
			if err != nil {
				return fmt.Errorf("organism %d: %w", i, err)
			}
			members[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Cohort{}, err
	}
	return summarize(uuid.NewString(), members), nil
}

func summarize(runID string, members []Member) Cohort {
	c := Cohort{RunID: runID, Organisms: len(members), Members: members}

	lifespans := make(stats.Float64Data, 0, len(members))
	onsets := make(stats.Float64Data, 0, len(members))
	for _, m := range members {
		lifespans = append(lifespans, m.LifespanYears)
		if m.Senescent {
			onsets = append(onsets, m.SenescenceOnset)
		}
	}
	c.SenescentCount = len(onsets)

	if v, err := lifespans.Median(); err == nil {
		c.MedianLifespan = v
	}
	if v, err := lifespans.Mean(); err == nil {
		c.MeanLifespan = v
	}
	if v, err := onsets.Median(); err == nil {
		c.MedianOnset = v
	}
	if v, err := onsets.Mean(); err == nil {
		c.MeanOnset = v
	}
	return c
}
