package numeric

import "fmt"

// PAdicAdv is the valuation-carrying p-adic representation:
// (prime, digits, valuation), prime is prime, digits in [0, prime)
// (spec §4.9). Digits are little-endian: value = Σ digits[i] · prime^(valuation+i).
type PAdicAdv struct {
	Prime     int64
	Digits    []int64
	Valuation int64
}

func NewPAdicAdv(prime int64, digits []int64, valuation int64) (*PAdicAdv, error) {
	if !isPrime(prime) {
		return nil, fmt.Errorf("padic-adv: %d is not prime", prime)
	}
	for _, d := range digits {
		if d < 0 || d >= prime {
			return nil, fmt.Errorf("padic-adv: digit %d out of range [0, %d)", d, prime)
		}
	}
	p := &PAdicAdv{Prime: prime, Digits: append([]int64{}, digits...), Valuation: valuation}
	p.normalize()
	return p, nil
}

func isPrime(n int64) bool {
	if n < 2 {
		return false
	}
	for i := int64(2); i*i <= n; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// normalize strips leading (least-significant) zero digits, bumping
// Valuation accordingly, so two numerically-equal values compare equal
// structurally.
func (p *PAdicAdv) normalize() {
	i := 0
	for i < len(p.Digits)-1 && p.Digits[i] == 0 {
		i++
		p.Valuation++
	}
	p.Digits = p.Digits[i:]
}

func (p *PAdicAdv) VariantName() string { return "padic-adv" }
func (p *PAdicAdv) String() string {
	return fmt.Sprintf("padic-adv(prime=%d, digits=%v, valuation=%d)", p.Prime, p.Digits, p.Valuation)
}

// AddPAdicAdv aligns the two operands by valuation, carries mod the
// shared prime, then normalizes leading zeros (spec §4.9). x and y must
// share the same prime.
func AddPAdicAdv(x, y *PAdicAdv) (*PAdicAdv, error) {
	if x.Prime != y.Prime {
		return nil, fmt.Errorf("padic-adv: cannot add values with different primes %d and %d", x.Prime, y.Prime)
	}
	prime := x.Prime

	valuation := x.Valuation
	if y.Valuation < valuation {
		valuation = y.Valuation
	}

	xOff := int(x.Valuation - valuation)
	yOff := int(y.Valuation - valuation)

	length := xOff + len(x.Digits)
	if yl := yOff + len(y.Digits); yl > length {
		length = yl
	}
	length++ // room for a final carry digit

	digitAt := func(digits []int64, offset, i int) int64 {
		j := i - offset
		if j < 0 || j >= len(digits) {
			return 0
		}
		return digits[j]
	}

	sum := make([]int64, length)
	var carry int64
	for i := 0; i < length; i++ {
		total := digitAt(x.Digits, xOff, i) + digitAt(y.Digits, yOff, i) + carry
		sum[i] = total % prime
		carry = total / prime
	}

	return NewPAdicAdv(prime, sum, valuation)
}
