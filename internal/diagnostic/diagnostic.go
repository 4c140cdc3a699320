// Package diagnostic implements BetLang's structured, span-carrying error
// reporting bus (component C1). Every later stage — lexer, parser,
// elaborator, evaluator, safety kernel — reports through a Diagnostic
// rather than a bare error string, so the driver and any embedding tool
// (editor, LSP, CLI) can render a consistent, position-anchored message.
package diagnostic

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/hyperpolymath/betlang/internal/position"
)

// Severity is one of the three levels named in spec §7.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	default:
		return "unknown"
	}
}

// Kind is a namespaced diagnostic tag from the closed set in spec §7
// (Lex.*, Parse.*, Name.Unbound, Arity.Mismatch, DutchBook.Violation, ...).
type Kind string

const (
	KindLexUnterminatedString Kind = "Lex.UnterminatedString"
	KindLexBadEscape          Kind = "Lex.BadEscape"
	KindLexInvalidChar        Kind = "Lex.InvalidChar"

	KindParseUnexpectedToken Kind = "Parse.UnexpectedToken"
	KindParseExpectedEnd     Kind = "Parse.ExpectedEnd"

	KindNameUnbound           Kind = "Name.Unbound"
	KindArityMismatch         Kind = "Arity.Mismatch"
	KindTypeMismatch          Kind = "Type.Mismatch"
	KindPatternNonExhaustive  Kind = "Pattern.NonExhaustive"
	KindPatternDuplicateArm   Kind = "Pattern.DuplicateArm"
	KindDutchBookViolation    Kind = "DutchBook.Violation"
	KindProbabilityOutOfRange Kind = "Probability.OutOfRange"
	KindProbabilityNegativeW  Kind = "Probability.NegativeWeight"
	KindProbabilityZeroTotal  Kind = "Probability.ZeroTotal"
	KindRiskStakeUnsafe       Kind = "Risk.StakeUnsafe"
	KindRiskKellyExceeded     Kind = "Risk.KellyExceeded"
	KindCoolOffActive         Kind = "CoolOff.Active"
	KindNumericDomainError    Kind = "Numeric.DomainError"
	KindNumericTotalConflict  Kind = "Numeric.TotalConflict"
	KindEvalAborted           Kind = "Eval.Aborted"
	KindDriverVersionMismatch Kind = "Driver.VersionMismatch"
	KindDriverUsage           Kind = "Driver.Usage"
)

// RelatedInfo is a secondary span attached to a diagnostic for extra
// context (e.g. "weight declared here").
type RelatedInfo struct {
	Message string
	Span    position.Span
}

// Diagnostic is a single structured message.
type Diagnostic struct {
	Kind        Kind
	Message     string
	Remediation string // optional remediation hint, e.g. remaining cool-off seconds
	Span        position.Span
	Related     []RelatedInfo
	Severity    Severity
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s [%s]", d.Span, d.Severity, d.Message, d.Kind)
}

// Error implements the error interface so a Diagnostic can be returned
// directly from runtime stages (§7: runtime errors are a single diagnostic).
func (d Diagnostic) Error() string { return d.String() }

// Builder constructs a Diagnostic with a fluent API, mirroring the
// teacher's DiagnosticBuilder.
type Builder struct {
	d Diagnostic
}

// New starts building a diagnostic of the given kind at the given span.
func New(kind Kind, span position.Span, message string) *Builder {
	return &Builder{d: Diagnostic{Kind: kind, Span: span, Message: message, Severity: SeverityError}}
}

func (b *Builder) Warning() *Builder { b.d.Severity = SeverityWarning; return b }
func (b *Builder) Note() *Builder    { b.d.Severity = SeverityNote; return b }

func (b *Builder) Remediation(hint string) *Builder {
	b.d.Remediation = hint
	return b
}

func (b *Builder) RelatedAt(span position.Span, message string) *Builder {
	b.d.Related = append(b.d.Related, RelatedInfo{Message: message, Span: span})
	return b
}

func (b *Builder) Build() Diagnostic { return b.d }

// Bag accumulates diagnostics across a pipeline stage that does not stop
// on the first error (lexer/parser/elaborator, per spec §7).
type Bag struct {
	items []Diagnostic
}

// NewBag returns an empty Bag.
func NewBag() *Bag { return &Bag{} }

// Add appends a diagnostic to the bag.
func (b *Bag) Add(d Diagnostic) { b.items = append(b.items, d) }

// Addf is a convenience for Add(New(kind, span, fmt.Sprintf(...)).Build()).
func (b *Bag) Addf(kind Kind, span position.Span, format string, args ...interface{}) {
	b.Add(New(kind, span, fmt.Sprintf(format, args...)).Build())
}

// HasErrors reports whether any diagnostic in the bag is error-severity.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Items returns the diagnostics in source order.
func (b *Bag) Items() []Diagnostic {
	sorted := make([]Diagnostic, len(b.items))
	copy(sorted, b.items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Span.Start.Before(sorted[j].Span.Start)
	})
	return sorted
}

// Len returns the number of accumulated diagnostics.
func (b *Bag) Len() int { return len(b.items) }

// Format selects the CLI's rendering mode (spec §6).
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// jsonDiagnostic is the wire shape for --format=json (one object per line).
type jsonDiagnostic struct {
	Severity    string `json:"severity"`
	Kind        string `json:"kind"`
	Message     string `json:"message"`
	Span        string `json:"span"`
	Remediation string `json:"remediation,omitempty"`
}

// Write renders diagnostics to w in source order, per spec §6/§7.
func Write(w io.Writer, diags []Diagnostic, format Format, color bool) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		for _, d := range diags {
			if err := enc.Encode(jsonDiagnostic{
				Severity:    d.Severity.String(),
				Kind:        string(d.Kind),
				Message:     d.Message,
				Span:        d.Span.String(),
				Remediation: d.Remediation,
			}); err != nil {
				return err
			}
		}
		return nil
	default:
		for _, d := range diags {
			prefix := d.Severity.String()
			if color {
				prefix = colorize(d.Severity, prefix)
			}
			if _, err := fmt.Fprintf(w, "%s: %s: %s [%s]\n", d.Span, prefix, d.Message, d.Kind); err != nil {
				return err
			}
			if d.Remediation != "" {
				if _, err := fmt.Fprintf(w, "  hint: %s\n", d.Remediation); err != nil {
					return err
				}
			}
			for _, r := range d.Related {
				if _, err := fmt.Fprintf(w, "  %s: %s\n", r.Span, r.Message); err != nil {
					return err
				}
			}
		}
		return nil
	}
}

func colorize(sev Severity, text string) string {
	const (
		red    = "\033[31m"
		yellow = "\033[33m"
		cyan   = "\033[36m"
		reset  = "\033[0m"
	)
	switch sev {
	case SeverityError:
		return red + text + reset
	case SeverityWarning:
		return yellow + text + reset
	default:
		return cyan + text + reset
	}
}
