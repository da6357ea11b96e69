package cdata

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cdata/internal/damage"
	"cdata/internal/tissue"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, tissue.DefaultTypes(), cfg.Tissues)
	assert.Equal(t, 0.1, cfg.Time.Years(1))
	assert.Equal(t, damage.DefaultParams(), cfg.Damage)
}

func TestFromMapAppliesModeBeforeOverrides(t *testing.T) {
	cfg, err := FromMap(map[string]string{
		"acetylation_rate":   "0.5",
		"mode":               "progeria",
		"seed":               "7",
		"parallel":           "true",
		"tissues":            "neural, germline",
		"s_inducers_initial": "12",
	})
	require.NoError(t, err)

	want := damage.ProgeriaParams()
	want.AcetylationRate = 0.5
	assert.Equal(t, want, cfg.Damage)
	assert.Equal(t, "progeria", cfg.Mode)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.True(t, cfg.Parallel)
	assert.Equal(t, []tissue.Type{tissue.Neural, tissue.Germline}, cfg.Tissues)
	assert.Equal(t, uint32(12), cfg.Development.SInducersInitial)
}

func TestFromMapRejectsBadInput(t *testing.T) {
	_, err := FromMap(map[string]string{"seed": "abc"})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = FromMap(map[string]string{"warp_factor": "9"})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = FromMap(map[string]string{"mode": "immortal"})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = FromMap(map[string]string{"tissues": "neural,liver"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorIs(t, err, tissue.ErrUnknownTissue)
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Damage.AcetylationRate = -1
	cfg.Development.SInducersInitial = 0
	cfg.Development.MaxLifespanYears = 0
	cfg.Time.StepsPerYear = 0
	cfg.Tissues = []tissue.Type{tissue.Skin, tissue.Skin}

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorIs(t, err, damage.ErrInvalidParams)
	for _, key := range []string{"acetylation_rate", "s_inducers_initial", "max_lifespan_years", "steps_per_year", "duplicate tissue"} {
		assert.Contains(t, err.Error(), key)
	}
}

func TestLoadFileLayersOnModePreset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cdata.yaml")
	data := []byte(`mode: longevity
seed: 99
steps_per_year: 20
tissues: [neural, germline]
damage:
  acetylation_rate: 0.01
development:
  max_lifespan_years: 100
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	want := damage.LongevityParams()
	want.AcetylationRate = 0.01
	assert.Equal(t, want, cfg.Damage)
	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, 20.0, cfg.Time.StepsPerYear)
	assert.Equal(t, 1.0, cfg.Time.TimeAcceleration)
	assert.Equal(t, []tissue.Type{tissue.Neural, tissue.Germline}, cfg.Tissues)
	assert.Equal(t, 100.0, cfg.Development.MaxLifespanYears)
	assert.Equal(t, uint32(50), cfg.Development.SInducersInitial)
	require.NoError(t, cfg.Validate())
}

func TestLoadFileMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")
	cfg, err := ForMode("progeria")
	require.NoError(t, err)
	cfg.Tissues = []tissue.Type{tissue.Muscle}
	require.NoError(t, cfg.Save(path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("CDATA_SEED", "123")
	t.Setenv("CDATA_MAX_LIFESPAN_YEARS", "90")

	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("CDATA_SASP_ONSET_AGE=50\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("CDATA_SASP_ONSET_AGE") })

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv(envFile, filepath.Join(dir, "missing.env")))
	assert.Equal(t, int64(123), cfg.Seed)
	assert.Equal(t, 90.0, cfg.Development.MaxLifespanYears)
	assert.Equal(t, 50.0, cfg.Damage.SASPOnsetAge)
}

func TestApplyEnvReportsBadValues(t *testing.T) {
	t.Setenv("CDATA_PARALLEL", "sometimes")
	cfg := DefaultConfig()
	err := cfg.ApplyEnv(filepath.Join(t.TempDir(), "none.env"))
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestKeysCoverEveryOption(t *testing.T) {
	keys := Keys()
	for _, k := range []string{
		"base_ros_damage_rate", "acetylation_rate", "aggregation_rate", "phospho_dysregulation_rate",
		"cep164_loss_rate", "cep89_loss_rate", "ninein_loss_rate", "cep170_loss_rate",
		"ros_feedback_coefficient", "sasp_onset_age", "senescence_threshold", "midlife_damage_multiplier",
		"s_inducers_initial", "h_inducers_initial", "max_lifespan_years", "senescence_death_frailty",
		"steps_per_year", "time_acceleration",
	} {
		assert.Contains(t, keys, k)
	}
}
