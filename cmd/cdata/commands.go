package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"runtime"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"cdata/internal/organism"
	"cdata/internal/sims/cdata"
)

var (
	reportEvery float64
	runJSON     bool

	cohortSize    int
	cohortWorkers int
	cohortJSON    bool

	tuneTarget    float64
	tuneOrganisms int
	tunePasses    int
	tuneWorkers   int
	tuneSamples   int
	tuneManual    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate one lifecycle and print a table of organism metrics",
	RunE:  runLifecycle,
}

var cohortCmd = &cobra.Command{
	Use:   "cohort",
	Short: "Simulate a cohort of organisms and summarise lifespan and senescence onset",
	RunE:  runCohort,
}

var tuneCmd = &cobra.Command{
	Use:   "tune",
	Short: "Search damage rates that hit a target median senescence onset",
	RunE:  runTune,
}

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Print the resolved parameter set",
	RunE:  printParameters,
}

func init() {
	runCmd.Flags().Float64Var(&reportEvery, "every", 5, "report interval in simulated years")
	runCmd.Flags().BoolVar(&runJSON, "json", false, "emit the final snapshot as JSON")

	cohortCmd.Flags().IntVarP(&cohortSize, "size", "n", 32, "number of organisms")
	cohortCmd.Flags().IntVar(&cohortWorkers, "workers", runtime.NumCPU(), "organisms simulated in parallel")
	cohortCmd.Flags().BoolVar(&cohortJSON, "json", false, "emit the cohort as JSON")

	tuneCmd.Flags().Float64Var(&tuneTarget, "target", 78, "target median senescence onset (years)")
	tuneCmd.Flags().IntVar(&tuneOrganisms, "organisms", 8, "organisms per candidate evaluation")
	tuneCmd.Flags().IntVar(&tunePasses, "passes", 3, "coordinate-descent passes to execute")
	tuneCmd.Flags().IntVar(&tuneWorkers, "workers", runtime.NumCPU(), "parallel candidate evaluations")
	tuneCmd.Flags().IntVar(&tuneSamples, "samples", 16, "random rescalings tried before the descent")
	tuneCmd.Flags().BoolVar(&tuneManual, "manual", false, "skip sweeping and only evaluate the resolved parameters")
}

func runLifecycle(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	m, err := cdata.New(cfg, cdata.WithLogger(logger))
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if err := m.Initialize(ctx); err != nil {
		return err
	}

	if reportEvery <= 0 {
		reportEvery = 1
	}
	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if !runJSON {
		fmt.Fprintln(tw, "AGE\tSTAGE\tFRAILTY\tCOGNITION\tIMMUNE\tMUSCLE\tINFLAMMAGING")
	}
	nextReport := 0.0
	for i := 0; i < cfg.MaxSteps() && m.Alive(); i++ {
		if err := m.Step(ctx, 1); err != nil {
			return err
		}
		snap := m.Snapshot()
		if !runJSON && (snap.AgeYears >= nextReport || !snap.IsAlive) {
			writeRow(tw, snap)
			nextReport = math.Floor(snap.AgeYears/reportEvery+1) * reportEvery
		}
	}

	snap := m.Snapshot()
	if runJSON {
		return writeJSON(out, snap)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nOrganism %s died at %.1f years (%s).\n", snap.ID, snap.AgeYears, snap.Cause)
	if onset, ok := m.Organism().SenescenceOnset(); ok {
		fmt.Fprintf(out, "First senescent niche at %.1f years.\n", onset)
	}
	for _, h := range m.Organism().History() {
		fmt.Fprintf(out, "  %-14s from %.3f years\n", h.Stage, h.AgeYears)
	}
	return nil
}

func writeRow(w io.Writer, s organism.Snapshot) {
	fmt.Fprintf(w, "%.1f\t%s\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\n",
		s.AgeYears, s.Stage, s.FrailtyIndex, s.CognitiveIndex, s.ImmuneReserve, s.MuscleMass, s.InflammagingScore)
}

func runCohort(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cohort, err := cdata.RunCohort(cmd.Context(), cfg, cohortSize, cohortWorkers)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if cohortJSON {
		return writeJSON(out, cohort)
	}
	fmt.Fprintf(out, "Cohort %s: %d organisms (mode %s, seed %d)\n", cohort.RunID, cohort.Organisms, cfg.Mode, cfg.Seed)
	fmt.Fprintf(out, "  lifespan: median %.1f, mean %.1f years\n", cohort.MedianLifespan, cohort.MeanLifespan)
	fmt.Fprintf(out, "  senescence onset: %d/%d organisms, median %.1f, mean %.1f years\n",
		cohort.SenescentCount, cohort.Organisms, cohort.MedianOnset, cohort.MeanOnset)
	return nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	baseline, err := cdata.Calibrate(ctx, cfg, cfg.Damage, tuneTarget, tuneOrganisms)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Baseline: %s\n", describe(baseline))
	if tuneManual {
		fmt.Fprintln(out, "Manual evaluation requested; skipping sweep.")
		return printDamage(out, cfg)
	}

	params, result, trace, err := cdata.CalibrationSweep(ctx, cfg, cdata.SweepOptions{
		Target:        tuneTarget,
		Organisms:     tuneOrganisms,
		Passes:        tunePasses,
		Workers:       tuneWorkers,
		RandomSamples: tuneSamples,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nBest found: %s\n", describe(result))
	cfg.Damage = params
	if err := printDamage(out, cfg); err != nil {
		return err
	}
	if len(trace) > 1 {
		fmt.Fprintln(out, "\nImprovements:")
		for _, rec := range trace[1:] {
			fmt.Fprintf(out, "  pass %d: %s=%s -> %s\n", rec.Pass, rec.Parameter, rec.Value, describe(rec.Result))
		}
	}
	return nil
}

func describe(r cdata.CalibrationResult) string {
	return fmt.Sprintf("median onset %.1f years (error %.2f, %d senescent), median lifespan %.1f years",
		r.MedianOnset, r.Error, r.Senescent, r.MedianLifespan)
}

func printDamage(w io.Writer, cfg cdata.Config) error {
	m, err := cdata.New(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Parameters:")
	for _, g := range m.Parameters().Groups {
		if g.Name == "Run" || g.Name == "Development" {
			continue
		}
		for _, p := range g.Params {
			fmt.Fprintf(w, "  %s=%s\n", p.Key, p.Value)
		}
	}
	return nil
}

func printParameters(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	m, err := cdata.New(cfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, g := range m.Parameters().Groups {
		fmt.Fprintf(out, "%s\n", g.Name)
		if g.Summary != "" {
			fmt.Fprintf(out, "  # %s\n", g.Summary)
		}
		for _, p := range g.Params {
			fmt.Fprintf(out, "  %s=%s\n", p.Key, p.Value)
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
