package numeric

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-set/v3"
)

// DempsterShafer is (focal-elements, masses): Σ masses = 1 ± tol,
// masses ≥ 0 (spec §4.9). Focal elements are subsets of a frame of
// discernment named by string labels; membership/intersection uses
// hashicorp/go-set's Collection rather than a hand-rolled set, the same
// library cottand-ile uses for its own type-set bookkeeping.
type DempsterShafer struct {
	Focal []*set.Set[string]
	Mass  []float64
}

const tolerance = 1e-9

// NewFocalSet builds a focal-element set from labels, the constructor
// internal/eval and tests use rather than touching the go-set package
// directly.
func NewFocalSet(labels []string) *set.Set[string] {
	s := set.New[string](len(labels))
	for _, l := range labels {
		s.Insert(l)
	}
	return s
}

func NewDempsterShafer(focal []*set.Set[string], mass []float64) (*DempsterShafer, error) {
	if len(focal) != len(mass) {
		return nil, fmt.Errorf("dempster-shafer: focal elements and masses must have equal length")
	}
	var total float64
	for _, m := range mass {
		if m < 0 {
			return nil, fmt.Errorf("dempster-shafer: masses must be non-negative, got %g", m)
		}
		total += m
	}
	if total < 1-tolerance || total > 1+tolerance {
		return nil, fmt.Errorf("dempster-shafer: masses must sum to 1 (±%g), got %g", tolerance, total)
	}
	return &DempsterShafer{Focal: focal, Mass: mass}, nil
}

func (d *DempsterShafer) VariantName() string { return "dempster-shafer" }
func (d *DempsterShafer) String() string {
	return fmt.Sprintf("dempster-shafer(n=%d focal elements)", len(d.Focal))
}

// Belief(H) = Σ m(F) over F ⊆ H (spec §4.9).
func (d *DempsterShafer) Belief(h *set.Set[string]) float64 {
	var sum float64
	for i, f := range d.Focal {
		if f.Subset(h) {
			sum += d.Mass[i]
		}
	}
	return sum
}

// Plausibility(H) = Σ m(F) over F ∩ H ≠ ∅ (spec §4.9).
func (d *DempsterShafer) Plausibility(h *set.Set[string]) float64 {
	var sum float64
	for i, f := range d.Focal {
		if !f.Intersect(h).Empty() {
			sum += d.Mass[i]
		}
	}
	return sum
}

// setKey returns a canonical string key for deduplicating identical
// focal sets produced by different (F, G) pairs during combination.
func setKey(s *set.Set[string]) string {
	items := s.Slice()
	sort.Strings(items)
	return strings.Join(items, ",")
}

// Combine applies Dempster's combination rule against o: intersect focal
// sets pairwise, multiply masses, and renormalize over the non-empty
// intersections. Fails if the conflict (total mass on empty
// intersections) is total, i.e. the evidence is fully contradictory
// (spec §4.9).
func (d *DempsterShafer) Combine(o *DempsterShafer) (*DempsterShafer, error) {
	combined := make(map[string]*set.Set[string])
	rawMass := make(map[string]float64)
	var conflict float64

	for i, f := range d.Focal {
		for j, g := range o.Focal {
			inter := f.Intersect(g).(*set.Set[string])
			m := d.Mass[i] * o.Mass[j]
			if inter.Empty() {
				conflict += m
				continue
			}
			key := setKey(inter)
			combined[key] = inter
			rawMass[key] += m
		}
	}

	normalization := 1 - conflict
	if normalization <= tolerance {
		return nil, fmt.Errorf("dempster-shafer: combination failed, total conflict (%g)", conflict)
	}

	var focal []*set.Set[string]
	var mass []float64
	for key, s := range combined {
		focal = append(focal, s)
		mass = append(mass, rawMass[key]/normalization)
	}
	return &DempsterShafer{Focal: focal, Mass: mass}, nil
}
