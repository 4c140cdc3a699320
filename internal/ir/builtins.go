package ir

// Builtins is the closed set of primitive names the evaluator provides
// natively (spec §4.6 arithmetic/comparison/list table plus §4.9's
// fourteen numeric-kernel constructors and §4.8's safety-kernel entry
// points). internal/elaborate resolves any identifier matching one of
// these to a BuiltinRef instead of reporting Name.Unbound; internal/eval
// dispatches BuiltinRef application against the same name.
var Builtins = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "neg": true,
	"=": true, "<": true, ">": true, "<=": true, ">=": true,
	"and": true, "or": true, "not": true,

	"list": true, "cons": true, "head": true, "tail": true,
	"length": true, "nil?": true, "empty": true,

	"dist-normal":       true,
	"dist-beta":         true,
	"affine":            true,
	"fuzzy-triangular":  true,
	"surreal-fuzzy":     true,
	"bayesian":          true,
	"risk":              true,
	"padic-prob":        true,
	"lottery":           true,
	"hyperreal":         true,
	"surreal-adv":       true,
	"padic-adv":         true,
	"imprecise":         true,
	"dempster-shafer":   true,

	"expectation": true,
	"variance":    true,
	"quantile":    true,
	"var":         true, // value-at-risk
	"cvar":        true,

	"kelly-fraction":     true,
	"risk-of-ruin":       true,
	"risk-of-ruin-monte": true,
	"dutch-book-check":   true,
	"cool-off-check":     true,
	"validated-bet":      true,

	"some": true, "none": true, "tag": true,
}
