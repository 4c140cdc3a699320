package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestReplEvalLineArithmetic(t *testing.T) {
	var buf bytes.Buffer
	r := newREPL(1, &buf)
	result, ok := r.evalLine("1 + 2")
	if !ok {
		t.Fatalf("unexpected failure: %s", result)
	}
	if result != "3" {
		t.Fatalf("result = %q, want %q", result, "3")
	}
}

func TestReplEvalLineDefinePersistsAcrossLines(t *testing.T) {
	var buf bytes.Buffer
	r := newREPL(1, &buf)
	if _, ok := r.evalLine("(define x 41)"); !ok {
		t.Fatalf("define failed")
	}
	result, ok := r.evalLine("x + 1")
	if !ok {
		t.Fatalf("unexpected failure: %s", result)
	}
	if result != "42" {
		t.Fatalf("result = %q, want %q", result, "42")
	}
}

func TestReplEvalLineParseErrorReported(t *testing.T) {
	var buf bytes.Buffer
	r := newREPL(1, &buf)
	result, ok := r.evalLine("(+ 1")
	if ok {
		t.Fatalf("expected a parse error")
	}
	if result == "" {
		t.Fatalf("expected a non-empty diagnostic rendering")
	}
}

func TestReplResetClearsEnvironment(t *testing.T) {
	var buf bytes.Buffer
	r := newREPL(1, &buf)
	if _, ok := r.evalLine("(define x 1)"); !ok {
		t.Fatalf("define failed")
	}
	r.reset()
	result, ok := r.evalLine("x")
	if ok {
		t.Fatalf("expected an unbound-name error after reset, got %q", result)
	}
}

func TestReplSetSeedResetsEnvironmentToo(t *testing.T) {
	var buf bytes.Buffer
	r := newREPL(1, &buf)
	if _, ok := r.evalLine("(define x 1)"); !ok {
		t.Fatalf("define failed")
	}
	r.setSeed(99)
	if _, ok := r.evalLine("x"); ok {
		t.Fatalf("expected x to be unbound after :seed reset the environment")
	}
}

func TestReplHandleMetaQuit(t *testing.T) {
	var buf bytes.Buffer
	r := newREPL(1, &buf)
	if !r.handleMeta(":quit") {
		t.Fatalf(":quit must report the REPL should exit")
	}
}

func TestReplHandleMetaSeedRequiresArgument(t *testing.T) {
	var buf bytes.Buffer
	r := newREPL(1, &buf)
	if r.handleMeta(":seed") {
		t.Fatalf(":seed with no argument must not exit the REPL")
	}
	if !strings.Contains(buf.String(), "requires a numeric argument") {
		t.Fatalf("expected a usage message, got %q", buf.String())
	}
}

func TestReplHandleMetaHelpAndUnknown(t *testing.T) {
	var buf bytes.Buffer
	r := newREPL(1, &buf)
	if r.handleMeta(":help") {
		t.Fatalf(":help must not exit the REPL")
	}
	if r.handleMeta(":bogus") {
		t.Fatalf("an unknown meta-command must not exit the REPL")
	}
}
