package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hyperpolymath/betlang/internal/config"
	"github.com/hyperpolymath/betlang/internal/diagnostic"
	"github.com/hyperpolymath/betlang/internal/driver"
	"github.com/hyperpolymath/betlang/internal/elaborate"
	"github.com/hyperpolymath/betlang/internal/eval"
	"github.com/hyperpolymath/betlang/internal/rng"
	"github.com/hyperpolymath/betlang/internal/value"
)

// repl holds one interactive session's running state: the evaluator
// (and the single PRNG stream it owns), the accumulated top-level
// environment, a long-lived Elaborator so a name one line defines
// resolves as a global on a later line, and the seed a :reset or
// :seed returns to. Grounded on cmd/orizon-repl/main.go's REPL struct,
// adapted to drive internal/driver instead of a placeholder Evaluate
// stub.
type repl struct {
	ev   *eval.Evaluator
	env  *value.Env
	elab *elaborate.Elaborator
	seed uint64
	out  io.Writer
}

func newREPL(seed uint64, out io.Writer) *repl {
	r := &repl{seed: seed, out: out}
	r.reset()
	return r
}

func (r *repl) reset() {
	r.ev = eval.New(rng.NewSource(r.seed))
	r.env = value.NewEnv()
	r.elab = elaborate.New()
}

func (r *repl) setSeed(seed uint64) {
	r.seed = seed
	r.reset()
}

// evalLine parses and elaborates one line as a standalone top-level
// program, folds any defines into the session's running environment,
// and evaluates any bare expressions against it. It returns the
// printable result and whether evaluation succeeded.
func (r *repl) evalLine(line string) (string, bool) {
	prog, diags := driver.Parse(line, "<repl>")
	if len(diags) != 0 {
		return renderDiagnostics(diags), false
	}
	irProg, diags := r.elab.ElaborateProgram(prog)
	if len(diags) != 0 {
		return renderDiagnostics(diags), false
	}

	for _, d := range irProg.Defines {
		v, err := r.ev.Eval(d.Value, r.env)
		if err != nil {
			return err.Error(), false
		}
		r.env.Set(d.Name, v)
	}

	var last value.Value
	for _, e := range irProg.Body {
		v, err := r.ev.Eval(e, r.env)
		if err != nil {
			return err.Error(), false
		}
		last = v
	}
	if last == nil {
		return "", true
	}
	return last.String(), true
}

func renderDiagnostics(diags []diagnostic.Diagnostic) string {
	var sb strings.Builder
	_ = diagnostic.Write(&sb, diags, diagnostic.FormatText, false)
	return strings.TrimRight(sb.String(), "\n")
}

func replCommand(args []string) int {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: betlang repl\n\n")
		fmt.Fprintf(os.Stderr, "Meta-commands:\n")
		fmt.Fprintf(os.Stderr, "  :help         show this message\n")
		fmt.Fprintf(os.Stderr, "  :quit         exit the REPL\n")
		fmt.Fprintf(os.Stderr, "  :seed N       reseed the PRNG and reset the environment\n")
		fmt.Fprintf(os.Stderr, "  :reset        reset the environment, keeping the current seed\n")
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}

	r := newREPL(cfg.Seed, os.Stdout)
	fmt.Fprintln(r.out, "betlang repl — :help for commands, :quit to exit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(r.out, "betlang> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if r.handleMeta(line) {
				break
			}
			continue
		}
		result, ok := r.evalLine(line)
		if !ok {
			fmt.Fprintln(r.out, result)
			continue
		}
		if result != "" {
			fmt.Fprintln(r.out, "=> "+result)
		}
	}
	return exitSuccess
}

// handleMeta dispatches a ":"-prefixed line and reports whether the
// REPL should exit.
func (r *repl) handleMeta(line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":help":
		fmt.Fprintln(r.out, "commands: :help :quit :seed N :reset")
	case ":quit":
		return true
	case ":reset":
		r.reset()
		fmt.Fprintln(r.out, "environment reset")
	case ":seed":
		if len(fields) != 2 {
			fmt.Fprintln(r.out, ":seed requires a numeric argument")
			return false
		}
		v, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			fmt.Fprintf(r.out, ":seed: %v\n", err)
			return false
		}
		r.setSeed(v)
		fmt.Fprintf(r.out, "seed set to %d, environment reset\n", v)
	default:
		fmt.Fprintf(r.out, "unknown command %s (try :help)\n", fields[0])
	}
	return false
}
