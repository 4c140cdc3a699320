package numeric

import (
	"fmt"
	"math"
	"strings"
)

// SurrealAdv is a Conway surreal number: a pair of left/right option
// sets, every l ∈ L strictly less than every r ∈ R under surreal ≤
// (spec §4.9). Leaving both sets empty represents the simplest number,
// zero.
type SurrealAdv struct {
	L, R []*SurrealAdv
}

// NewSurrealAdv validates the defining invariant (every left option is
// less than every right option) before constructing the number.
func NewSurrealAdv(l, r []*SurrealAdv) (*SurrealAdv, error) {
	for _, lv := range l {
		for _, rv := range r {
			if !LE(lv, rv) || LE(rv, lv) {
				return nil, fmt.Errorf("surreal-adv: every left option must be strictly less than every right option")
			}
		}
	}
	return &SurrealAdv{L: l, R: r}, nil
}

func (s *SurrealAdv) VariantName() string { return "surreal-adv" }

func (s *SurrealAdv) String() string {
	var lb, rb strings.Builder
	for i, l := range s.L {
		if i > 0 {
			lb.WriteString(", ")
		}
		lb.WriteString(l.String())
	}
	for i, r := range s.R {
		if i > 0 {
			rb.WriteString(", ")
		}
		rb.WriteString(r.String())
	}
	return fmt.Sprintf("{%s | %s}", lb.String(), rb.String())
}

// LE implements the Conway recursive order: x ≤ y iff no element of
// x's left set is ≥ y, and no element of y's right set is ≤ x (spec §4.9).
func LE(x, y *SurrealAdv) bool {
	for _, xl := range x.L {
		if LE(y, xl) {
			return false
		}
	}
	for _, yr := range y.R {
		if LE(yr, x) {
			return false
		}
	}
	return true
}

// Add follows Conway's recursive sum rule:
// x + y = { x_L+y, x+y_L | x_R+y, x+y_R } (spec §4.9).
func Add(x, y *SurrealAdv) *SurrealAdv {
	var l, r []*SurrealAdv
	for _, xl := range x.L {
		l = append(l, Add(xl, y))
	}
	for _, yl := range y.L {
		l = append(l, Add(x, yl))
	}
	for _, xr := range x.R {
		r = append(r, Add(xr, y))
	}
	for _, yr := range y.R {
		r = append(r, Add(x, yr))
	}
	return &SurrealAdv{L: l, R: r}
}

// ToReal is a depth-limited midpoint approximation converging on dyadic
// rationals (spec §4.9/§9): the simplest-number construction collapsed
// to "midpoint between the best real approximations of L and R so far",
// bottoming out at 0 for the empty number or at depth 0.
func (s *SurrealAdv) ToReal(depth int) float64 {
	if depth <= 0 || (len(s.L) == 0 && len(s.R) == 0) {
		return 0
	}

	lo := math.Inf(-1)
	for _, l := range s.L {
		if v := l.ToReal(depth - 1); v > lo {
			lo = v
		}
	}
	hi := math.Inf(1)
	for _, r := range s.R {
		if v := r.ToReal(depth - 1); v < hi {
			hi = v
		}
	}

	switch {
	case math.IsInf(lo, -1) && math.IsInf(hi, 1):
		return 0
	case math.IsInf(lo, -1):
		return hi - 1
	case math.IsInf(hi, 1):
		return lo + 1
	default:
		return (lo + hi) / 2
	}
}
