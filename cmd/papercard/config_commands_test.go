package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestConfigValidateHonorsConfigFlag(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"config", "validate", "--config", configPath})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config validate failed: %v\n%s", err, out.String())
	}

	if !strings.Contains(out.String(), configPath) {
		t.Fatalf("validate must report the path given via --config, got:\n%s", out.String())
	}
	if strings.Contains(out.String(), "did not exist") {
		t.Fatalf("flagged config exists and must be loaded:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Configuration valid") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}
