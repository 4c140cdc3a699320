package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hyperpolymath/betlang/internal/diagnostic"
	"github.com/hyperpolymath/betlang/internal/driver"
)

func checkCommand(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var format string
	fs.StringVar(&format, "format", "text", "diagnostic output format: text|json")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: betlang check FILE [--format=text|json]\n\n")
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

	var outFormat diagnostic.Format
	switch format {
	case "text":
		outFormat = diagnostic.FormatText
	case "json":
		outFormat = diagnostic.FormatJSON
	default:
		fmt.Fprintf(os.Stderr, "betlang check: --format must be \"text\" or \"json\", got %q\n", format)
		return exitUsage
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}
	source := string(data)

	if d := driver.CheckVersionPragma(source); d != nil {
		_ = diagnostic.Write(os.Stderr, []diagnostic.Diagnostic{*d}, outFormat, true)
		return exitFrontEnd
	}

	prog, diags := driver.Parse(source, path)
	if len(diags) != 0 {
		_ = diagnostic.Write(os.Stderr, diags, outFormat, true)
		return exitFrontEnd
	}
	_, diags = driver.Elaborate(prog)
	if len(diags) != 0 {
		_ = diagnostic.Write(os.Stderr, diags, outFormat, true)
		return exitFrontEnd
	}
	return exitSuccess
}
