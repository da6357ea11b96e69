package tissue

import (
	"cdata/internal/inducers"
	"cdata/internal/stage"
)

// Diagnostics is a read-only per-niche record for exporters and CLIs.
type Diagnostics struct {
	Type  Type       `json:"type" yaml:"type"`
	Stage stage.Fine `json:"stage" yaml:"stage"`

	ProteinCarbonylation         float64 `json:"protein_carbonylation" yaml:"protein_carbonylation"`
	TubulinHyperacetylation      float64 `json:"tubulin_hyperacetylation" yaml:"tubulin_hyperacetylation"`
	ProteinAggregates            float64 `json:"protein_aggregates" yaml:"protein_aggregates"`
	PhosphorylationDysregulation float64 `json:"phosphorylation_dysregulation" yaml:"phosphorylation_dysregulation"`
	CEP164Integrity              float64 `json:"cep164_integrity" yaml:"cep164_integrity"`
	CEP89Integrity               float64 `json:"cep89_integrity" yaml:"cep89_integrity"`
	NineinIntegrity              float64 `json:"ninein_integrity" yaml:"ninein_integrity"`
	CEP170Integrity              float64 `json:"cep170_integrity" yaml:"cep170_integrity"`

	ROSLevel         float64 `json:"ros_level" yaml:"ros_level"`
	BaselineROS      float64 `json:"baseline_ros" yaml:"baseline_ros"`
	CiliaryFunction  float64 `json:"ciliary_function" yaml:"ciliary_function"`
	SpindleFidelity  float64 `json:"spindle_fidelity" yaml:"spindle_fidelity"`
	TotalDamageScore float64 `json:"total_damage_score" yaml:"total_damage_score"`
	TotalDivisions   uint32  `json:"total_divisions" yaml:"total_divisions"`
	IsSenescent      bool    `json:"is_senescent" yaml:"is_senescent"`

	SCount          uint32         `json:"s_count" yaml:"s_count"`
	SMax            uint32         `json:"s_max" yaml:"s_max"`
	HCount          uint32         `json:"h_count" yaml:"h_count"`
	HMax            uint32         `json:"h_max" yaml:"h_max"`
	Level           inducers.Level `json:"level" yaml:"level"`
	ReadyForMeiosis bool           `json:"ready_for_meiosis" yaml:"ready_for_meiosis"`

	Phenotypes []string `json:"phenotypes" yaml:"phenotypes"`
}

// Diagnostics captures the current niche state.
func (s *Simulator) Diagnostics() Diagnostics {
	d := s.Damage
	names := make([]string, 0, len(s.phenotypes))
	for _, p := range s.phenotypes {
		names = append(names, p.String())
	}
	return Diagnostics{
		Type:  s.Type,
		Stage: s.Stage,

		ProteinCarbonylation:         d.ProteinCarbonylation,
		TubulinHyperacetylation:      d.TubulinHyperacetylation,
		ProteinAggregates:            d.ProteinAggregates,
		PhosphorylationDysregulation: d.PhosphorylationDysregulation,
		CEP164Integrity:              d.CEP164Integrity,
		CEP89Integrity:               d.CEP89Integrity,
		NineinIntegrity:              d.NineinIntegrity,
		CEP170Integrity:              d.CEP170Integrity,

		ROSLevel:         d.ROSLevel,
		BaselineROS:      stage.BaseROSLevel(s.Stage.Coarse()),
		CiliaryFunction:  d.CiliaryFunction,
		SpindleFidelity:  d.SpindleFidelity,
		TotalDamageScore: d.TotalDamageScore(),
		TotalDivisions:   d.TotalDivisions,
		IsSenescent:      d.IsSenescent,

		SCount:          s.Inducers.SCount,
		SMax:            s.Inducers.SMax,
		HCount:          s.Inducers.HCount,
		HMax:            s.Inducers.HMax,
		Level:           s.Inducers.MorphogeneticLevel(),
		ReadyForMeiosis: s.Inducers.IsReadyForMeiosis(),

		Phenotypes: names,
	}
}
