// Package inducers tracks the S/H centriolar inducer ledger of a niche.
//
// Every differentiating division spends one S inducer. When the S pool is
// empty the niche is terminally differentiated and can no longer self-renew.
package inducers

// Ledger holds the remaining somatic (S) and germline (H) inducers.
type Ledger struct {
	SCount uint32
	SMax   uint32
	HCount uint32
	HMax   uint32

	DifferentiationDivisions uint32
}

// Zygote returns a full ledger.
func Zygote(sMax, hMax uint32) Ledger {
	return Ledger{SCount: sMax, SMax: sMax, HCount: hMax, HMax: hMax}
}

// SStatus is 0 for a totipotent ledger and 1 once the S pool is spent.
func (l Ledger) SStatus() float64 {
	if l.SMax == 0 {
		return 1
	}
	return 1 - float64(l.SCount)/float64(l.SMax)
}

// HStatus is 0 before any germline division and 1 when meiosis is due.
func (l Ledger) HStatus() float64 {
	if l.HMax == 0 {
		return 1
	}
	return 1 - float64(l.HCount)/float64(l.HMax)
}

// ConsumeS spends one S inducer. It reports false, leaving the ledger
// untouched, when none remain.
func (l *Ledger) ConsumeS() bool {
	if l.SCount == 0 {
		return false
	}
	l.SCount--
	l.DifferentiationDivisions++
	return true
}

// ConsumeH spends one H inducer.
func (l *Ledger) ConsumeH() bool {
	if l.HCount == 0 {
		return false
	}
	l.HCount--
	return true
}

func (l Ledger) IsTerminallyDifferentiated() bool { return l.SCount == 0 }

func (l Ledger) IsReadyForMeiosis() bool { return l.HCount == 0 && l.HMax > 0 }
