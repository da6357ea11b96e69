// Command cdata runs the centriolar damage aging model from the command line.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cdata/internal/logging"
	"cdata/internal/sims/cdata"
)

var (
	configPath string
	envFiles   []string
	verbose    bool
	seed       int64
	mode       string
	overrides  []string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cdata",
	Short: "Centriolar damage accumulation model of human aging",
	Long: `cdata advances a simulated human from zygote to death. Centriolar damage
accumulates per stem-cell niche, depletes tissue regeneration and is
integrated into organism-level frailty.

Configuration is layered: defaults, --config YAML file, CDATA_* environment
variables (optionally from a .env file), --mode, --seed, then --set key=value.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	pf.StringSliceVar(&envFiles, "env-file", nil, "dotenv files to load before reading CDATA_* variables (default .env)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	pf.Int64Var(&seed, "seed", 0, "random seed (overrides config)")
	pf.StringVar(&mode, "mode", "", "damage preset: normal, progeria or longevity")
	pf.StringArrayVar(&overrides, "set", nil, "parameter override in key=value form (repeatable)")

	rootCmd.AddCommand(runCmd, cohortCmd, tuneCmd, paramsCmd)
}

// loadConfig resolves the layered configuration for cmd.
func loadConfig(cmd *cobra.Command) (cdata.Config, error) {
	cfg := cdata.DefaultConfig()
	if configPath != "" {
		loaded, err := cdata.LoadFile(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(envFiles...); err != nil {
		return cfg, err
	}
	if mode != "" {
		if err := cfg.SetMode(mode); err != nil {
			return cfg, err
		}
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	kv := make(map[string]string, len(overrides))
	for _, o := range overrides {
		key, value, ok := strings.Cut(o, "=")
		if !ok {
			return cfg, fmt.Errorf("%w: override %q is not key=value", cdata.ErrInvalidConfig, o)
		}
		kv[strings.TrimSpace(key)] = value
	}
	if err := cfg.Apply(kv); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
