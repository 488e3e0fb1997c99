package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configPath, logLevel = "", ""
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestActionsCommand(t *testing.T) {
	out, err := execute(t, "actions")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Execute", "ToggleMaximize", "ForEach"} {
		if !strings.Contains(out, want+"\n") {
			t.Errorf("output lacks %s", want)
		}
	}
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "rc.toml")
	if err := os.WriteFile(good, []byte("[input]\nnatural_scroll = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "check", "--config", good)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, "ok") {
		t.Errorf("output = %q", out)
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[input]\nscroll_factor = -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "check", "-c", bad); err == nil || !strings.Contains(err.Error(), "scroll_factor") {
		t.Errorf("check of a rejected setting = %v", err)
	}

	missing := filepath.Join(dir, "none.toml")
	out, err = execute(t, "check", "-c", missing)
	if err != nil || !strings.Contains(out, "using defaults") {
		t.Errorf("check of a missing file = %q, %v", out, err)
	}
}

func TestValidLogLevel(t *testing.T) {
	for _, ok := range []string{"", "debug", "warn", "error"} {
		if err := validLogLevel(ok); err != nil {
			t.Errorf("validLogLevel(%q) = %v", ok, err)
		}
	}
	if validLogLevel("loud") == nil {
		t.Error("unknown level accepted")
	}
}
