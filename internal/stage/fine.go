package stage

// Fine is the per-niche developmental stage.
type Fine uint8

const (
	FineZygote Fine = iota
	FineCleavage
	FineMorula
	FineBlastocyst
	FineImplantation
	FineGastrulation
	FineNeurulation
	FineOrganogenesis
	FineFetal
	FineNewborn
	FineChildhood
	FineAdolescence
	FineAdult
	FineMiddleAge
	FineElderly
)

var fineInfo = [...]struct {
	name   string
	coarse Stage
}{
	FineZygote:        {"Zygote", Zygote},
	FineCleavage:      {"Cleavage", Cleavage},
	FineMorula:        {"Morula", Cleavage},
	FineBlastocyst:    {"Blastocyst", Blastocyst},
	FineImplantation:  {"Implantation", Blastocyst},
	FineGastrulation:  {"Gastrulation", Gastrulation},
	FineNeurulation:   {"Neurulation", Gastrulation},
	FineOrganogenesis: {"Organogenesis", Organogenesis},
	FineFetal:         {"Fetal", Fetal},
	FineNewborn:       {"Newborn", Postnatal},
	FineChildhood:     {"Childhood", Postnatal},
	FineAdolescence:   {"Adolescence", Postnatal},
	FineAdult:         {"Adult", Adult},
	FineMiddleAge:     {"MiddleAge", MiddleAge},
	FineElderly:       {"Elderly", Senescent},
}

func (f Fine) String() string {
	if int(f) < len(fineInfo) {
		return fineInfo[f].name
	}
	return "Unknown"
}

func (f Fine) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// Coarse projects the fine stage onto the organism stage.
func (f Fine) Coarse() Stage {
	if int(f) < len(fineInfo) {
		return fineInfo[f].coarse
	}
	return Senescent
}

// FineForAge classifies an age in years at niche granularity.
func FineForAge(ageYears float64) Fine {
	days := ageYears * DaysPerYear
	switch {
	case days < 1:
		return FineZygote
	case days < 3:
		return FineCleavage
	case days < 4:
		return FineMorula
	case days < 7:
		return FineBlastocyst
	case days < 14:
		return FineImplantation
	case days < 21:
		return FineGastrulation
	case days < 28:
		return FineNeurulation
	case days < 56:
		return FineOrganogenesis
	case ageYears < 0.75:
		return FineFetal
	case ageYears < 1.75:
		return FineNewborn
	case ageYears < 12:
		return FineChildhood
	case ageYears < 18:
		return FineAdolescence
	case ageYears < 40:
		return FineAdult
	case ageYears < 65:
		return FineMiddleAge
	default:
		return FineElderly
	}
}
