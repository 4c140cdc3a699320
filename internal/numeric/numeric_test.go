package numeric

import (
	"math"
	"testing"

	"github.com/hashicorp/go-set/v3"

	"github.com/hyperpolymath/betlang/internal/rng"
)

func TestAffineContainmentUnderAdd(t *testing.T) {
	x, _ := NewAffine(1, 2)
	y, _ := NewAffine(3, 5)
	sum := x.Add(y)
	vx, vy := 1.5, 4.0
	if !x.Contains(vx) || !y.Contains(vy) {
		t.Fatalf("setup invariant violated")
	}
	if !sum.Contains(vx + vy) {
		t.Fatalf("affine-add containment violated: sum=%v does not contain %g", sum, vx+vy)
	}
}

func TestAffineMulCorners(t *testing.T) {
	x, _ := NewAffine(-1, 2)
	y, _ := NewAffine(-3, 4)
	p := x.Mul(y)
	if p.Lo != -6 || p.Hi != 8 {
		t.Fatalf("expected [-6, 8], got [%g, %g]", p.Lo, p.Hi)
	}
}

func TestRiskVaRMonotonic(t *testing.T) {
	samples := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	r, _ := NewRisk(samples)
	low := r.VaR(0.5)
	high := r.VaR(0.99)
	if high > low {
		t.Fatalf("expected VaR at higher confidence (99%%) to not exceed VaR at 50%%: got VaR(0.5)=%g VaR(0.99)=%g", low, high)
	}
}

func TestRiskCVaRBoundedByVaR(t *testing.T) {
	samples := []float64{10, 20, 30, 40, 50}
	r, _ := NewRisk(samples)
	v := r.VaR(0.8)
	c := r.CVaR(0.8)
	if c > v {
		t.Fatalf("expected CVaR <= VaR, got CVaR=%g VaR=%g", c, v)
	}
}

func TestDempsterShaferNormalizesToOne(t *testing.T) {
	a := NewFocalSet([]string{"x"})
	b := NewFocalSet([]string{"y"})
	_, err := NewDempsterShafer([]*set.Set[string]{a, b}, []float64{0.6, 0.5})
	if err == nil {
		t.Fatalf("expected mass-sum validation to reject masses summing to 1.1")
	}

	ds, err := NewDempsterShafer([]*set.Set[string]{a, b}, []float64{0.6, 0.4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var total float64
	for _, m := range ds.Mass {
		total += m
	}
	if math.Abs(total-1) > 1e-9 {
		t.Fatalf("expected masses to sum to 1, got %g", total)
	}
}

func TestDempsterShaferCombineTotalConflictFails(t *testing.T) {
	a := NewFocalSet([]string{"x"})
	b := NewFocalSet([]string{"y"})
	ds1, _ := NewDempsterShafer([]*set.Set[string]{a}, []float64{1})
	ds2, _ := NewDempsterShafer([]*set.Set[string]{b}, []float64{1})
	if _, err := ds1.Combine(ds2); err == nil {
		t.Fatalf("expected total-conflict combination to fail")
	}
}

func TestLotteryExpectation(t *testing.T) {
	l, err := NewLottery([]float64{1, 2}, []float64{1, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := l.Expectation(); got != 1.5 {
		t.Fatalf("expected expectation 1.5, got %g", got)
	}
}

func TestLotterySampleWithinOutcomes(t *testing.T) {
	l, _ := NewLottery([]float64{10, 20, 30}, []float64{1, 1, 1})
	src := rng.NewSource(5)
	for i := 0; i < 1000; i++ {
		v := l.Sample(src)
		if v != 10 && v != 20 && v != 30 {
			t.Fatalf("sample %g not among declared outcomes", v)
		}
	}
}

func TestPAdicProbRealValue(t *testing.T) {
	p, err := NewPAdicProb(2, []int64{1, 0, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 1*2^-1 + 0*2^-2 + 1*2^-3 = 0.5 + 0 + 0.125 = 0.625
	if math.Abs(p.RealValue()-0.625) > 1e-9 {
		t.Fatalf("expected 0.625, got %g", p.RealValue())
	}
}

func TestPAdicAdvAddCarries(t *testing.T) {
	x, _ := NewPAdicAdv(3, []int64{2}, 0) // 2 * 3^0 = 2
	y, _ := NewPAdicAdv(3, []int64{2}, 0) // 2 * 3^0 = 2
	sum, err := AddPAdicAdv(x, y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 2 + 2 = 4 = 1*3^0 + 1*3^1, carry produces digits [1,1] at valuation 0.
	if len(sum.Digits) < 2 || sum.Digits[0] != 1 || sum.Digits[1] != 1 {
		t.Fatalf("expected carry to produce digits [1,1], got %v (valuation %d)", sum.Digits, sum.Valuation)
	}
}

func TestSurrealAdvZeroLessThanOne(t *testing.T) {
	zero := &SurrealAdv{}
	one, err := NewSurrealAdv([]*SurrealAdv{zero}, nil)
	if err != nil {
		t.Fatalf("unexpected error constructing one: %v", err)
	}
	if !LE(zero, one) {
		t.Fatalf("expected 0 <= 1")
	}
	if LE(one, zero) {
		t.Fatalf("expected NOT 1 <= 0")
	}
}

func TestSurrealAdvToRealConverges(t *testing.T) {
	zero := &SurrealAdv{}
	one, _ := NewSurrealAdv([]*SurrealAdv{zero}, nil)
	half, err := NewSurrealAdv([]*SurrealAdv{zero}, []*SurrealAdv{one})
	if err != nil {
		t.Fatalf("unexpected error constructing one-half: %v", err)
	}
	got := half.ToReal(5)
	if math.Abs(got-0.5) > 0.3 {
		t.Fatalf("expected to_real to approximate 0.5, got %g", got)
	}
}

func TestNormalAddSumsMeanAndVariance(t *testing.T) {
	a, _ := NewNormal(1, 2)
	b, _ := NewNormal(3, 4)
	sum := a.Add(b)
	if sum.Mean() != 4 {
		t.Fatalf("expected mean 4, got %g", sum.Mean())
	}
	wantVar := 2*2 + 4*4
	if math.Abs(sum.Variance()-float64(wantVar)) > 1e-9 {
		t.Fatalf("expected variance %d, got %g", wantVar, sum.Variance())
	}
}

func TestBayesianPosteriorClamped(t *testing.T) {
	b, err := NewBayesian(0.9, 0.9, 0.1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Posterior < 0 || b.Posterior > 1 {
		t.Fatalf("posterior out of [0,1]: %g", b.Posterior)
	}
}

func TestImpreciseComplement(t *testing.T) {
	i, _ := NewImprecise(0.2, 0.4)
	c := i.Complement()
	if math.Abs(c.Lo-0.6) > 1e-9 || math.Abs(c.Hi-0.8) > 1e-9 {
		t.Fatalf("expected complement [0.6, 0.8], got [%g, %g]", c.Lo, c.Hi)
	}
}
