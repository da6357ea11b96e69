package organism

import "cdata/internal/tissue"

// TissueSnapshot is the per-tissue part of a Snapshot.
type TissueSnapshot struct {
	Type               tissue.Type `json:"type" yaml:"type"`
	StemCellPool       float64     `json:"stem_cell_pool" yaml:"stem_cell_pool"`
	RegenerationTempo  float64     `json:"regeneration_tempo" yaml:"regeneration_tempo"`
	SenescentFraction  float64     `json:"senescent_fraction" yaml:"senescent_fraction"`
	FunctionalCapacity float64     `json:"functional_capacity" yaml:"functional_capacity"`
}

// Snapshot is a read-only view of an organism for exporters and CLIs.
type Snapshot struct {
	ID                string  `json:"id" yaml:"id"`
	AgeYears          float64 `json:"age_years" yaml:"age_years"`
	Stage             string  `json:"stage" yaml:"stage"`
	FrailtyIndex      float64 `json:"frailty_index" yaml:"frailty_index"`
	CognitiveIndex    float64 `json:"cognitive_index" yaml:"cognitive_index"`
	ImmuneReserve     float64 `json:"immune_reserve" yaml:"immune_reserve"`
	MuscleMass        float64 `json:"muscle_mass" yaml:"muscle_mass"`
	InflammagingScore float64 `json:"inflammaging_score" yaml:"inflammaging_score"`
	IsAlive           bool    `json:"is_alive" yaml:"is_alive"`
	Cause             string  `json:"cause" yaml:"cause"`

	Tissues []TissueSnapshot     `json:"tissues" yaml:"tissues"`
	Niches  []tissue.Diagnostics `json:"niches" yaml:"niches"`
}

// Snapshot captures the organism and all of its niches.
func (o *Organism) Snapshot() Snapshot {
	st := o.integrator.State
	snap := Snapshot{
		ID:                o.ID,
		AgeYears:          st.AgeYears,
		Stage:             st.Stage.String(),
		FrailtyIndex:      st.FrailtyIndex,
		CognitiveIndex:    st.CognitiveIndex,
		ImmuneReserve:     st.ImmuneReserve,
		MuscleMass:        st.MuscleMass,
		InflammagingScore: st.InflammagingScore,
		IsAlive:           st.IsAlive,
		Cause:             o.integrator.Cause().String(),
		Tissues:           make([]TissueSnapshot, 0, len(o.tissues)),
		Niches:            make([]tissue.Diagnostics, 0, len(o.tissues)),
	}
	for _, sim := range o.tissues {
		snap.Tissues = append(snap.Tissues, TissueSnapshot{
			Type:               sim.Type,
			StemCellPool:       sim.State.StemCellPool,
			RegenerationTempo:  sim.State.RegenerationTempo,
			SenescentFraction:  sim.State.SenescentFraction,
			FunctionalCapacity: sim.State.FunctionalCapacity,
		})
		snap.Niches = append(snap.Niches, sim.Diagnostics())
	}
	return snap
}
