package tissue

import (
	"cdata/internal/damage"
	"cdata/internal/inducers"
)

// Phenotype tags an age-related change visible in a niche.
type Phenotype uint8

const (
	ReducedProliferation Phenotype = iota
	ProteinAggregation
	MitochondrialDysfunction
	TelomereShortening
	EpigeneticChanges
	SenescentAccumulation
	SignalingDysregulation
	ProteostasisLoss
	StemCellExhaustion
	AlteredCommunication
)

var phenotypeNames = [...]string{
	ReducedProliferation:     "reduced_proliferation",
	ProteinAggregation:       "protein_aggregation",
	MitochondrialDysfunction: "mitochondrial_dysfunction",
	TelomereShortening:       "telomere_shortening",
	EpigeneticChanges:        "epigenetic_changes",
	SenescentAccumulation:    "senescent_accumulation",
	SignalingDysregulation:   "signaling_dysregulation",
	ProteostasisLoss:         "proteostasis_loss",
	StemCellExhaustion:       "stem_cell_exhaustion",
	AlteredCommunication:     "altered_communication",
}

func (p Phenotype) String() string {
	if int(p) < len(phenotypeNames) {
		return phenotypeNames[p]
	}
	return "unknown"
}

// detectPhenotypes lists active phenotypes in ascending order.
func detectPhenotypes(st State, d damage.State, l inducers.Ledger, ageYears, saspOnset float64) []Phenotype {
	var out []Phenotype
	add := func(p Phenotype, active bool) {
		if active {
			out = append(out, p)
		}
	}
	add(ReducedProliferation, st.RegenerationTempo < 0.5)
	add(ProteinAggregation, d.ProteinAggregates > 0.3)
	add(MitochondrialDysfunction, d.ROSLevel > 0.3)
	add(TelomereShortening, l.SStatus() >= 0.5)
	add(EpigeneticChanges, d.TubulinHyperacetylation > 0.3)
	add(SenescentAccumulation, st.SenescentFraction > 0.2)
	add(SignalingDysregulation, d.CiliaryFunction < 0.5)
	add(ProteostasisLoss, (d.ProteinCarbonylation+d.ProteinAggregates)/2 > 0.3)
	add(StemCellExhaustion, st.StemCellPool < 0.5 || l.IsTerminallyDifferentiated())
	// SASP only spreads once the organism is past onset age.
	add(AlteredCommunication, ageYears >= saspOnset && st.SenescentFraction > 0.1)
	return out
}
