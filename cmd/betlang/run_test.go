package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempSource(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.bet")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write temp source: %v", err)
	}
	return path
}

func TestRunCommandSuccessPrintsLastValue(t *testing.T) {
	path := writeTempSource(t, "1 + 2")
	code := runCommand([]string{path})
	if code != exitSuccess {
		t.Fatalf("runCommand() = %d, want exitSuccess", code)
	}
}

func TestRunCommandParseErrorExitsFrontEnd(t *testing.T) {
	path := writeTempSource(t, "(+ 1")
	code := runCommand([]string{path})
	if code != exitFrontEnd {
		t.Fatalf("runCommand() = %d, want exitFrontEnd", code)
	}
}

func TestRunCommandMissingFileExitsUsage(t *testing.T) {
	code := runCommand([]string{filepath.Join(t.TempDir(), "does-not-exist.bet")})
	if code != exitUsage {
		t.Fatalf("runCommand() = %d, want exitUsage", code)
	}
}

func TestRunCommandNoArgsExitsUsage(t *testing.T) {
	if code := runCommand(nil); code != exitUsage {
		t.Fatalf("runCommand() = %d, want exitUsage", code)
	}
}

func TestRunCommandBadSafetyFlagExitsUsage(t *testing.T) {
	path := writeTempSource(t, "1 + 2")
	code := runCommand([]string{"--safety=sideways", path})
	if code != exitUsage {
		t.Fatalf("runCommand() = %d, want exitUsage", code)
	}
}

func TestRunCommandStepLimitAbortsAsEvalError(t *testing.T) {
	path := writeTempSource(t, "(list 1 2 3 4 5 6 7 8 9 10)")
	code := runCommand([]string{"--limit=1", path})
	if code != exitEvalError {
		t.Fatalf("runCommand() = %d, want exitEvalError", code)
	}
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w
	fn()
	os.Stdout = orig
	w.Close()
	buf := make([]byte, 4096)
	n, _ := r.Read(buf)
	return string(buf[:n])
}

func TestRunCommandDeterministicUnderSameSeed(t *testing.T) {
	path := writeTempSource(t, "(bet 0 1 2)")
	var out1, out2 string
	out1 = captureStdout(t, func() {
		if code := runCommand([]string{"--seed=7", path}); code != exitSuccess {
			t.Fatalf("runCommand() = %d, want exitSuccess", code)
		}
	})
	out2 = captureStdout(t, func() {
		if code := runCommand([]string{"--seed=7", path}); code != exitSuccess {
			t.Fatalf("runCommand() = %d, want exitSuccess", code)
		}
	})
	if out1 != out2 {
		t.Fatalf("same seed produced different output: %q vs %q", out1, out2)
	}
}
