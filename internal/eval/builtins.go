// Arithmetic, comparison, boolean, list, and tag builtins (spec §4.6's
// primitive table). Numeric-kernel constructors/queries live in
// numeric_builtins.go; safety-kernel entry points live in
// safety_builtins.go. Kept separate because each group has a distinct
// grounding/flavor even though all three are reached through the same
// applyBuiltin dispatch.
package eval

import (
	"math/big"

	"github.com/hyperpolymath/betlang/internal/value"
)

func (ev *Evaluator) applyBuiltin(name string, args []value.Value, env *value.Env) (value.Value, error) {
	switch name {
	case "+", "-", "*", "/":
		return ev.applyArith(name, args)
	case "neg":
		return applyNeg(args)
	case "=", "<", ">", "<=", ">=":
		return applyCompare(name, args)
	case "and", "or":
		return applyBoolOp(name, args)
	case "not":
		return applyNot(args)

	case "list":
		return value.List{Elements: args}, nil
	case "cons":
		return applyCons(args)
	case "head":
		return applyHead(args)
	case "tail":
		return applyTail(args)
	case "length":
		return applyLength(args)
	case "nil?", "empty":
		return applyNilCheck(args)

	case "some":
		if len(args) != 1 {
			return nil, arityMismatch("some", 1, len(args))
		}
		return value.Tag{Name: "some", Fields: args}, nil
	case "none":
		if len(args) != 0 {
			return nil, arityMismatch("none", 0, len(args))
		}
		return value.Tag{Name: "none"}, nil
	case "tag":
		return applyTagConstructor(args)
	}

	return ev.applyNumericBuiltin(name, args, env)
}

// --- arithmetic ---

// arithRank orders the three numeric kinds so mixed-kind operations
// promote to the wider representation (int < rational < decimal),
// mirroring the promotion akamikado-EZ's interpreter applies before
// any math/big operation.
func arithRank(v value.Value) int {
	switch v.(type) {
	case value.Int:
		return 0
	case value.Rat:
		return 1
	case value.Dec:
		return 2
	default:
		return -1
	}
}

func (ev *Evaluator) applyArith(op string, args []value.Value) (value.Value, error) {
	if len(args) < 2 {
		return nil, arityMismatch(op, 2, len(args))
	}
	acc := args[0]
	if arithRank(acc) < 0 {
		return nil, typeMismatch("%s: operand must be numeric, got %s", op, acc.Kind())
	}
	for _, next := range args[1:] {
		if arithRank(next) < 0 {
			return nil, typeMismatch("%s: operand must be numeric, got %s", op, next.Kind())
		}
		var err error
		acc, err = arith2(op, acc, next)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func arith2(op string, a, b value.Value) (value.Value, error) {
	rank := arithRank(a)
	if r := arithRank(b); r > rank {
		rank = r
	}
	switch rank {
	case 0:
		x, y := a.(value.Int).V, b.(value.Int).V
		switch op {
		case "+":
			return value.Int{V: x + y}, nil
		case "-":
			return value.Int{V: x - y}, nil
		case "*":
			return value.Int{V: x * y}, nil
		case "/":
			if y == 0 {
				return nil, domainError("/: division by zero")
			}
			return value.Rat{V: new(big.Rat).SetFrac64(x, y)}, nil
		}
	case 1:
		x, y := toRat(a), toRat(b)
		switch op {
		case "+":
			return value.Rat{V: new(big.Rat).Add(x, y)}, nil
		case "-":
			return value.Rat{V: new(big.Rat).Sub(x, y)}, nil
		case "*":
			return value.Rat{V: new(big.Rat).Mul(x, y)}, nil
		case "/":
			if y.Sign() == 0 {
				return nil, domainError("/: division by zero")
			}
			return value.Rat{V: new(big.Rat).Quo(x, y)}, nil
		}
	default:
		x, _ := asFloat64(a)
		y, _ := asFloat64(b)
		switch op {
		case "+":
			return value.Dec{V: x + y}, nil
		case "-":
			return value.Dec{V: x - y}, nil
		case "*":
			return value.Dec{V: x * y}, nil
		case "/":
			if y == 0 {
				return nil, domainError("/: division by zero")
			}
			return value.Dec{V: x / y}, nil
		}
	}
	return nil, typeMismatch("%s: unsupported operand kinds", op)
}

func toRat(v value.Value) *big.Rat {
	switch n := v.(type) {
	case value.Int:
		return new(big.Rat).SetInt64(n.V)
	case value.Rat:
		return n.V
	default:
		f, _ := asFloat64(v)
		r := new(big.Rat)
		r.SetFloat64(f)
		return r
	}
}

func applyNeg(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityMismatch("neg", 1, len(args))
	}
	switch n := args[0].(type) {
	case value.Int:
		return value.Int{V: -n.V}, nil
	case value.Rat:
		return value.Rat{V: new(big.Rat).Neg(n.V)}, nil
	case value.Dec:
		return value.Dec{V: -n.V}, nil
	default:
		return nil, typeMismatch("neg: operand must be numeric, got %s", n.Kind())
	}
}

// --- comparison ---

func applyCompare(op string, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, arityMismatch(op, 2, len(args))
	}
	a, b := args[0], args[1]
	if op == "=" {
		return value.Bool{V: valuesEqual(a, b)}, nil
	}
	af, aok := asFloat64(a)
	bf, bok := asFloat64(b)
	if !aok || !bok {
		return nil, typeMismatch("%s: operands must be numeric", op)
	}
	switch op {
	case "<":
		return value.Bool{V: af < bf}, nil
	case ">":
		return value.Bool{V: af > bf}, nil
	case "<=":
		return value.Bool{V: af <= bf}, nil
	case ">=":
		return value.Bool{V: af >= bf}, nil
	}
	return nil, typeMismatch("%s: unknown comparison", op)
}

// --- boolean ---

func applyBoolOp(op string, args []value.Value) (value.Value, error) {
	if len(args) < 1 {
		return nil, arityMismatch(op, 1, len(args))
	}
	result := op == "and"
	for _, a := range args {
		b, ok := asBool(a)
		if !ok {
			return nil, typeMismatch("%s: operand must be a bool, got %s", op, a.Kind())
		}
		if op == "and" {
			result = result && b
		} else {
			result = result || b
		}
	}
	return value.Bool{V: result}, nil
}

func applyNot(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityMismatch("not", 1, len(args))
	}
	b, ok := asBool(args[0])
	if !ok {
		return nil, typeMismatch("not: operand must be a bool, got %s", args[0].Kind())
	}
	return value.Bool{V: !b}, nil
}

// --- lists ---

func applyCons(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, arityMismatch("cons", 2, len(args))
	}
	lst, ok := args[1].(value.List)
	if !ok {
		return nil, typeMismatch("cons: second argument must be a list, got %s", args[1].Kind())
	}
	out := make([]value.Value, 0, len(lst.Elements)+1)
	out = append(out, args[0])
	out = append(out, lst.Elements...)
	return value.List{Elements: out}, nil
}

func applyHead(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityMismatch("head", 1, len(args))
	}
	lst, ok := args[0].(value.List)
	if !ok || len(lst.Elements) == 0 {
		return nil, domainError("head: empty list")
	}
	return lst.Elements[0], nil
}

func applyTail(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityMismatch("tail", 1, len(args))
	}
	lst, ok := args[0].(value.List)
	if !ok || len(lst.Elements) == 0 {
		return nil, domainError("tail: empty list")
	}
	return value.List{Elements: lst.Elements[1:]}, nil
}

func applyLength(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityMismatch("length", 1, len(args))
	}
	lst, ok := args[0].(value.List)
	if !ok {
		return nil, typeMismatch("length: argument must be a list, got %s", args[0].Kind())
	}
	return value.Int{V: int64(len(lst.Elements))}, nil
}

func applyNilCheck(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityMismatch("nil?", 1, len(args))
	}
	lst, ok := args[0].(value.List)
	if !ok {
		return nil, typeMismatch("nil?: argument must be a list, got %s", args[0].Kind())
	}
	return value.Bool{V: len(lst.Elements) == 0}, nil
}

// --- tags ---

func applyTagConstructor(args []value.Value) (value.Value, error) {
	if len(args) < 1 {
		return nil, arityMismatch("tag", 1, len(args))
	}
	name, ok := asString(args[0])
	if !ok {
		return nil, typeMismatch("tag: first argument must name the constructor, got %s", args[0].Kind())
	}
	return value.Tag{Name: name, Fields: args[1:]}, nil
}
