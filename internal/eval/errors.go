package eval

import (
	"fmt"

	"github.com/hyperpolymath/betlang/internal/diagnostic"
	"github.com/hyperpolymath/betlang/internal/position"
)

func probabilityNegativeWeight(w float64) error {
	return diagnostic.New(diagnostic.KindProbabilityNegativeW, position.Span{},
		fmt.Sprintf("bet-weighted: weights must be non-negative, got %g", w)).Build()
}

func probabilityZeroTotal() error {
	return diagnostic.New(diagnostic.KindProbabilityZeroTotal, position.Span{},
		"bet-weighted: total weight must be > 0").Build()
}

func probabilityOutOfRange(format string, args ...interface{}) error {
	return diagnostic.New(diagnostic.KindProbabilityOutOfRange, position.Span{}, fmt.Sprintf(format, args...)).Build()
}
