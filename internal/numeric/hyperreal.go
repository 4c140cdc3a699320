package numeric

import "fmt"

// Hyperreal is finite + ε·infinitesimal, where ε² ≈ 0 (spec §4.9, §GLOSSARY).
type Hyperreal struct {
	Finite       float64
	Infinitesimal float64
}

func NewHyperreal(finite, infinitesimal float64) *Hyperreal {
	return &Hyperreal{Finite: finite, Infinitesimal: infinitesimal}
}

func (h *Hyperreal) VariantName() string { return "hyperreal" }
func (h *Hyperreal) String() string {
	return fmt.Sprintf("hyperreal(%g, %gε)", h.Finite, h.Infinitesimal)
}

// Add is componentwise (spec §4.9).
func (h *Hyperreal) Add(o *Hyperreal) *Hyperreal {
	return &Hyperreal{Finite: h.Finite + o.Finite, Infinitesimal: h.Infinitesimal + o.Infinitesimal}
}

// Mul drops ε² terms (spec §4.9): (a+bε)(c+dε) = ac + (ad+bc)ε + bd·ε²,
// and the ε² term is discarded rather than approximated as zero-but-kept.
func (h *Hyperreal) Mul(o *Hyperreal) *Hyperreal {
	return &Hyperreal{
		Finite:        h.Finite * o.Finite,
		Infinitesimal: h.Finite*o.Infinitesimal + h.Infinitesimal*o.Finite,
	}
}

// StandardPart returns the finite part, discarding the infinitesimal
// (spec §4.9/§GLOSSARY).
func (h *Hyperreal) StandardPart() float64 { return h.Finite }
