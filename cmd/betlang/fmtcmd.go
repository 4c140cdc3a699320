package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hyperpolymath/betlang/internal/diagnostic"
	"github.com/hyperpolymath/betlang/internal/driver"
	"github.com/hyperpolymath/betlang/internal/parser"
)

func fmtCommand(args []string) int {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var (
		writeInPlace bool
		checkOnly    bool
	)
	fs.BoolVar(&writeInPlace, "w", false, "write the formatted result back to FILE instead of stdout")
	fs.BoolVar(&checkOnly, "check", false, "exit nonzero if FILE is not already formatted, without writing it")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: betlang fmt FILE [-w] [-check]\n\n")
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

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}
	source := string(data)

	prog, diags := driver.Parse(source, path)
	if len(diags) != 0 {
		_ = diagnostic.Write(os.Stderr, diags, diagnostic.FormatText, true)
		return exitFrontEnd
	}
	out := parser.Print(prog)

	switch {
	case checkOnly:
		if out != source {
			fmt.Fprintln(os.Stdout, path)
			return exitEvalError
		}
		return exitSuccess
	case writeInPlace:
		if out != source {
			if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return exitUsage
			}
		}
		return exitSuccess
	default:
		fmt.Print(out)
		return exitSuccess
	}
}
