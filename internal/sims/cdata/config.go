package cdata

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"cdata/internal/core"
	"cdata/internal/damage"
	"cdata/internal/organism"
	"cdata/internal/tissue"
)

// ErrInvalidConfig reports a configuration that cannot start a simulation.
var ErrInvalidConfig = errors.New("invalid config")

// EnvPrefix prefixes every environment override, e.g. CDATA_SEED.
const EnvPrefix = "CDATA_"

// Development holds the lineage and lifespan settings.
type Development struct {
	SInducersInitial       uint32  `yaml:"s_inducers_initial"`
	HInducersInitial       uint32  `yaml:"h_inducers_initial"`
	MaxLifespanYears       float64 `yaml:"max_lifespan_years"`
	SenescenceDeathFrailty float64 `yaml:"senescence_death_frailty"`
}

// Config controls the human development module.
type Config struct {
	Seed     int64         `yaml:"seed"`
	Mode     string        `yaml:"mode"`
	Parallel bool          `yaml:"parallel"`
	Tissues  []tissue.Type `yaml:"tissues"`

	Time        core.TimeScale `yaml:",inline"`
	Damage      damage.Params  `yaml:"damage"`
	Development Development    `yaml:"development"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Seed:    42,
		Mode:    "normal",
		Tissues: tissue.DefaultTypes(),
		Time: core.TimeScale{
			StepsPerYear:     10,
			TimeAcceleration: 1,
		},
		Damage: damage.DefaultParams(),
		Development: Development{
			SInducersInitial:       50,
			HInducersInitial:       4,
			MaxLifespanYears:       120,
			SenescenceDeathFrailty: 0.95,
		},
	}
}

// ForMode returns the default configuration with the named damage preset.
func ForMode(mode string) (Config, error) {
	c := DefaultConfig()
	if err := c.SetMode(mode); err != nil {
		return Config{}, err
	}
	return c, nil
}

// SetMode switches the damage parameters to the named preset.
func (c *Config) SetMode(mode string) error {
	mode = strings.ToLower(strings.TrimSpace(mode))
	p, ok := damage.Preset(mode)
	if !ok {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, mode)
	}
	if mode == "" {
		mode = "normal"
	}
	c.Mode = mode
	c.Damage = p
	return nil
}

// floatFields maps every numeric option onto its field.
func (c *Config) floatFields() map[string]*float64 {
	d := &c.Damage
	return map[string]*float64{
		"base_ros_damage_rate":       &d.BaseROSDamageRate,
		"acetylation_rate":           &d.AcetylationRate,
		"aggregation_rate":           &d.AggregationRate,
		"phospho_dysregulation_rate": &d.PhosphoDysregulationRate,
		"cep164_loss_rate":           &d.CEP164LossRate,
		"cep89_loss_rate":            &d.CEP89LossRate,
		"ninein_loss_rate":           &d.NineinLossRate,
		"cep170_loss_rate":           &d.CEP170LossRate,
		"ros_feedback_coefficient":   &d.ROSFeedbackCoefficient,
		"sasp_onset_age":             &d.SASPOnsetAge,
		"senescence_threshold":       &d.SenescenceThreshold,
		"midlife_damage_multiplier":  &d.MidlifeDamageMultiplier,
		"max_lifespan_years":         &c.Development.MaxLifespanYears,
		"senescence_death_frailty":   &c.Development.SenescenceDeathFrailty,
		"steps_per_year":             &c.Time.StepsPerYear,
		"time_acceleration":          &c.Time.TimeAcceleration,
	}
}

func (c *Config) uintFields() map[string]*uint32 {
	return map[string]*uint32{
		"s_inducers_initial": &c.Development.SInducersInitial,
		"h_inducers_initial": &c.Development.HInducersInitial,
	}
}

// Keys lists every option Set accepts, sorted.
func Keys() []string {
	var c Config
	keys := []string{"seed", "mode", "parallel", "tissues"}
	for k := range c.floatFields() {
		keys = append(keys, k)
	}
	for k := range c.uintFields() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set applies one key/value option. Setting mode replaces the damage
// parameters with the preset, so it should precede individual rates.
func (c *Config) Set(key, value string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.TrimSpace(value)
	switch key {
	case "seed":
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: seed: %v", ErrInvalidConfig, err)
		}
		c.Seed = v
		return nil
	case "mode":
		return c.SetMode(value)
	case "parallel":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: parallel: %v", ErrInvalidConfig, err)
		}
		c.Parallel = v
		return nil
	case "tissues":
		types, err := parseTissues(value)
		if err != nil {
			return fmt.Errorf("%w: tissues: %w", ErrInvalidConfig, err)
		}
		c.Tissues = types
		return nil
	}
	if f, ok := c.floatFields()[key]; ok {
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
		}
		*f = v
		return nil
	}
	if f, ok := c.uintFields()[key]; ok {
		v, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
		}
		*f = uint32(v)
		return nil
	}
	return fmt.Errorf("%w: unknown option %q", ErrInvalidConfig, key)
}

func parseTissues(value string) ([]tissue.Type, error) {
	var out []tissue.Type
	for _, part := range strings.Split(value, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		t, err := tissue.ParseType(part)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Apply sets every option of kv. The mode is applied first; the rest follow
// in key order so results do not depend on map iteration.
func (c *Config) Apply(kv map[string]string) error {
	var errs []error
	if mode, ok := kv["mode"]; ok {
		errs = append(errs, c.SetMode(mode))
	}
	keys := make([]string, 0, len(kv))
	for k := range kv {
		if k != "mode" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		errs = append(errs, c.Set(k, kv[k]))
	}
	return errors.Join(errs...)
}

// FromMap populates the config from a string map (flag-style key/value
// pairs) on top of the defaults.
func FromMap(kv map[string]string) (Config, error) {
	c := DefaultConfig()
	if kv == nil {
		return c, nil
	}
	if err := c.Apply(kv); err != nil {
		return c, err
	}
	return c, nil
}

// LoadFile loads configuration from a YAML file. A missing file yields the
// defaults. The file's mode selects the damage preset its explicit damage
// keys are layered on.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	var head struct {
		Mode string `yaml:"mode"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if head.Mode != "" {
		if err := cfg.SetMode(head.Mode); err != nil {
			return cfg, err
		}
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// ApplyEnv loads the given dotenv files (or .env) when present and then
// applies every CDATA_<OPTION> variable.
func (c *Config) ApplyEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	kv := map[string]string{}
	for _, key := range Keys() {
		if v, ok := os.LookupEnv(EnvPrefix + strings.ToUpper(key)); ok && v != "" {
			kv[key] = v
		}
	}
	return c.Apply(kv)
}

// Validate rejects settings the model cannot run with.
func (c Config) Validate() error {
	var errs []error
	if err := c.Damage.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidConfig, err))
	}
	if c.Time.StepsPerYear <= 0 {
		errs = append(errs, fmt.Errorf("%w: steps_per_year must be positive, got %g", ErrInvalidConfig, c.Time.StepsPerYear))
	}
	if c.Time.TimeAcceleration <= 0 {
		errs = append(errs, fmt.Errorf("%w: time_acceleration must be positive, got %g", ErrInvalidConfig, c.Time.TimeAcceleration))
	}
	if c.Development.SInducersInitial == 0 {
		errs = append(errs, fmt.Errorf("%w: s_inducers_initial must be positive", ErrInvalidConfig))
	}
	if c.Development.HInducersInitial == 0 {
		errs = append(errs, fmt.Errorf("%w: h_inducers_initial must be positive", ErrInvalidConfig))
	}
	if c.Development.MaxLifespanYears <= 0 {
		errs = append(errs, fmt.Errorf("%w: max_lifespan_years must be positive, got %g", ErrInvalidConfig, c.Development.MaxLifespanYears))
	}
	if c.Development.SenescenceDeathFrailty <= 0 {
		errs = append(errs, fmt.Errorf("%w: senescence_death_frailty must be positive, got %g", ErrInvalidConfig, c.Development.SenescenceDeathFrailty))
	}
	if len(c.Tissues) == 0 {
		errs = append(errs, fmt.Errorf("%w: at least one tissue is required", ErrInvalidConfig))
	}
	seen := map[tissue.Type]bool{}
	for _, t := range c.Tissues {
		if seen[t] {
			errs = append(errs, fmt.Errorf("%w: duplicate tissue %s", ErrInvalidConfig, t))
		}
		seen[t] = true
	}
	return errors.Join(errs...)
}

// OrganismConfig derives the settings of the index-th organism.
func (c Config) OrganismConfig(index int) organism.Config {
	return organism.Config{
		Seed:    c.Seed,
		Index:   index,
		Tissues: append([]tissue.Type(nil), c.Tissues...),
		Damage:  c.Damage,
		Lifespan: organism.Params{
			MaxLifespanYears:       c.Development.MaxLifespanYears,
			SenescenceDeathFrailty: c.Development.SenescenceDeathFrailty,
		},
		SInducers: c.Development.SInducersInitial,
		HInducers: c.Development.HInducersInitial,
		Parallel:  c.Parallel,
	}
}

// MaxSteps bounds a single lifecycle in scheduler ticks.
func (c Config) MaxSteps() int {
	return c.Time.StepsFor(c.Development.MaxLifespanYears) + 2
}
