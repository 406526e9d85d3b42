package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mkrall/crowdctl/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	if om != nil {
		t.Fatal("expected nil manager for empty dir")
	}

	// All operations are no-ops on the nil manager.
	if err := om.WriteRound(RoundStats{}); err != nil {
		t.Errorf("WriteRound on nil manager: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("Close on nil manager: %v", err)
	}
}

func TestOutputManagerHeaderWrittenOnce(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	defer om.Close()

	if err := om.WriteRound(RoundStats{Round: 1, Winner: 0}); err != nil {
		t.Fatalf("first WriteRound: %v", err)
	}
	if err := om.WriteRound(RoundStats{Round: 2, Winner: 1}); err != nil {
		t.Fatalf("second WriteRound: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "rounds.csv"))
	if err != nil {
		t.Fatalf("reading rounds.csv: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want header + 2 records", len(lines))
	}
	if !strings.Contains(lines[0], "round") {
		t.Errorf("first line is not a header: %q", lines[0])
	}
	if strings.Contains(lines[1], "round") || strings.Contains(lines[2], "round") {
		t.Error("header repeated in record lines")
	}
}

func TestOutputManagerWritesConfigSnapshot(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	defer om.Close()

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config snapshot missing: %v", err)
	}
}
