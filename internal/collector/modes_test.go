package collector

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/InfostatusAu/ai-olympics-charmander-sub000/internal/model"
)

func TestLoadModeOverridesMissingFile(t *testing.T) {
	ov, err := LoadModeOverrides("")
	if err != nil || ov != nil {
		t.Errorf("empty path: got %v, %v", ov, err)
	}

	ov, err = LoadModeOverrides("/nonexistent/params.yaml")
	if err != nil || ov != nil {
		t.Errorf("missing file: got %v, %v", ov, err)
	}
}

func TestLoadModeOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	content := `
comprehensive:
  serper:
    results: 15
deep:
  news:
    lookback_days: 90
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	ov, err := LoadModeOverrides(path)
	if err != nil {
		t.Fatalf("LoadModeOverrides: %v", err)
	}

	if n := ov[model.ModeComprehensive]["serper"].Int("results", 0); n != 15 {
		t.Errorf("comprehensive serper results = %d, want 15", n)
	}
	if n := ov[model.ModeDeep]["news"].Int("lookback_days", 0); n != 90 {
		t.Errorf("deep news lookback_days = %d, want 90", n)
	}
}

func TestLoadModeOverridesRejectsUnknownMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	if err := os.WriteFile(path, []byte("turbo:\n  serper:\n    results: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadModeOverrides(path); err == nil {
		t.Error("expected error for unknown mode name")
	}
}

func TestDefaultModeParamsDeepSupersetOfComprehensive(t *testing.T) {
	comp := defaultModeParams[model.ModeComprehensive]
	deep := defaultModeParams[model.ModeDeep]

	for name := range comp {
		if _, ok := deep[name]; !ok {
			t.Errorf("deep mode missing params for %s", name)
		}
	}
}
