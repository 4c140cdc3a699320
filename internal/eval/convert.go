package eval

import "github.com/hyperpolymath/betlang/internal/value"

// asFloat64 widens any of BetLang's three numeric value kinds to a
// float64, for primitives (weights, seeds, distribution parameters)
// that spec §4.9 defines in terms of reals rather than exact rationals.
func asFloat64(v value.Value) (float64, bool) {
	switch n := v.(type) {
	case value.Int:
		return float64(n.V), true
	case value.Rat:
		f, _ := n.V.Float64()
		return f, true
	case value.Dec:
		return n.V, true
	default:
		return 0, false
	}
}

// asInt64 narrows an exact-integer-valued number to an int64, used for
// counts (parallel's n, a p-adic base/prime) rather than measurements.
func asInt64(v value.Value) (int64, bool) {
	switch n := v.(type) {
	case value.Int:
		return n.V, true
	case value.Rat:
		if !n.V.IsInt() {
			return 0, false
		}
		return n.V.Num().Int64(), true
	default:
		return 0, false
	}
}

func asString(v value.Value) (string, bool) {
	switch n := v.(type) {
	case value.Str:
		return n.V, true
	case value.Symbol:
		return n.V, true
	default:
		return "", false
	}
}

func asBool(v value.Value) (bool, bool) {
	b, ok := v.(value.Bool)
	return b.V, ok
}
