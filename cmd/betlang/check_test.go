package main

import "testing"

func TestCheckCommandValidSourceSucceeds(t *testing.T) {
	path := writeTempSource(t, "1 + 2")
	if code := checkCommand([]string{path}); code != exitSuccess {
		t.Fatalf("checkCommand() = %d, want exitSuccess", code)
	}
}

func TestCheckCommandParseErrorExitsFrontEnd(t *testing.T) {
	path := writeTempSource(t, "(+ 1")
	if code := checkCommand([]string{path}); code != exitFrontEnd {
		t.Fatalf("checkCommand() = %d, want exitFrontEnd", code)
	}
}

func TestCheckCommandUnboundNameExitsFrontEnd(t *testing.T) {
	path := writeTempSource(t, "undefined_name")
	if code := checkCommand([]string{path}); code != exitFrontEnd {
		t.Fatalf("checkCommand() = %d, want exitFrontEnd", code)
	}
}

func TestCheckCommandNoArgsExitsUsage(t *testing.T) {
	if code := checkCommand(nil); code != exitUsage {
		t.Fatalf("checkCommand() = %d, want exitUsage", code)
	}
}
