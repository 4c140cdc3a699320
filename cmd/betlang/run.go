package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hyperpolymath/betlang/internal/config"
	"github.com/hyperpolymath/betlang/internal/diagnostic"
	"github.com/hyperpolymath/betlang/internal/driver"
	"github.com/hyperpolymath/betlang/internal/safety"
)

func runCommand(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var (
		seedText   string
		limit      int
		safetyMode string
		format     string
		watch      bool
	)
	fs.StringVar(&seedText, "seed", "", "PRNG seed (default: BETLANG_SEED or 0)")
	fs.IntVar(&limit, "limit", 0, "abort evaluation after this many eval steps (0 = unlimited)")
	fs.StringVar(&safetyMode, "safety", "on", "safety kernel gating for validated-bet: on|off")
	fs.StringVar(&format, "format", "text", "diagnostic output format: text|json")
	fs.BoolVar(&watch, "watch", false, "re-run whenever FILE changes on disk")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: betlang run FILE [--seed N] [--limit STEPS] [--safety=on|off] [--format=text|json] [--watch]\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return exitUsage
	}
	path := fs.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}
	if seedText != "" {
		v, err := strconv.ParseUint(seedText, 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "betlang run: --seed: %v\n", err)
			return exitUsage
		}
		cfg = cfg.WithSeed(&v)
	}

	var coolOff *safety.CoolOffState
	switch safetyMode {
	case "on":
		coolOff = safety.NewCoolOffState(true, time.Duration(cfg.CoolOffSeconds)*time.Second)
	case "off":
		coolOff = nil
	default:
		fmt.Fprintf(os.Stderr, "betlang run: --safety must be \"on\" or \"off\", got %q\n", safetyMode)
		return exitUsage
	}

	var outFormat diagnostic.Format
	switch format {
	case "text":
		outFormat = diagnostic.FormatText
	case "json":
		outFormat = diagnostic.FormatJSON
	default:
		fmt.Fprintf(os.Stderr, "betlang run: --format must be \"text\" or \"json\", got %q\n", format)
		return exitUsage
	}

	runOnce := func() int { return runFile(path, cfg, coolOff, limit, outFormat) }
	if !watch {
		return runOnce()
	}
	return watchAndRun(path, runOnce)
}

// runFile executes the full parse -> elaborate -> evaluate pipeline
// for a single source file, printing the value of its last top-level
// expression on success (spec §6 "print the result of the last
// top-level expression").
func runFile(path string, cfg config.Config, coolOff *safety.CoolOffState, limit int, format diagnostic.Format) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}
	source := string(data)

	if d := driver.CheckVersionPragma(source); d != nil {
		_ = diagnostic.Write(os.Stderr, []diagnostic.Diagnostic{*d}, format, true)
		return exitFrontEnd
	}

	prog, diags := driver.Parse(source, path)
	if len(diags) != 0 {
		_ = diagnostic.Write(os.Stderr, diags, format, true)
		return exitFrontEnd
	}
	irProg, diags := driver.Elaborate(prog)
	if len(diags) != 0 {
		_ = diagnostic.Write(os.Stderr, diags, format, true)
		return exitFrontEnd
	}

	vals, d := driver.Evaluate(irProg, driver.EvalOptions{
		Seed:      cfg.Seed,
		StepLimit: limit,
		CoolOff:   coolOff,
	})
	if d != nil {
		_ = diagnostic.Write(os.Stderr, []diagnostic.Diagnostic{*d}, format, true)
		return exitEvalError
	}
	if len(vals) > 0 {
		fmt.Println(vals[len(vals)-1].String())
	}
	return exitSuccess
}
