package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "LOG_LEVEL", "LOG_FILE", "LOG_CONSOLE", "STORE_DRIVER", "STORE_PATH",
		"DEFAULT_SPOT", "DEFAULT_STRIKE", "DEFAULT_VOLATILITY", "DEFAULT_RISK_FREE_RATE",
		"DEFAULT_DIVIDEND_YIELD", "DEFAULT_DAYS", "DEFAULT_SIDE", "DEFAULT_PCT_CHANGE",
		"DEFAULT_LATTICE_STEPS", "RATE_SOURCE", "ALPACA_API_KEY", "ALPACA_SECRET_KEY",
	} {
		t.Setenv(key, "")
	}
	ConfigFile = filepath.Join(t.TempDir(), "missing.yaml")
	t.Cleanup(func() { ConfigFile = "config.yaml" })
}

func TestDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.Store.Driver != "memory" {
		t.Errorf("Expected memory store by default, got %s", cfg.Store.Driver)
	}
	d := cfg.Defaults
	if d.Spot != 100 || d.Strike != 100 || d.Volatility != 0.2 || d.DividendYield != 0 {
		t.Errorf("Unexpected contract defaults: %+v", d)
	}
	if d.Days != 30 || d.Side != "call" {
		t.Errorf("Expected 30 day call defaults, got %d %s", d.Days, d.Side)
	}
	if cfg.Rates.Source != "fixed" || cfg.Rates.FixedRate != 0.01 {
		t.Errorf("Unexpected rate defaults: %+v", cfg.Rates)
	}
}

func TestEnvOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEFAULT_VOLATILITY", "0.35")
	t.Setenv("DEFAULT_DAYS", "90")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("LOG_CONSOLE", "true")

	cfg := Load()

	if cfg.Defaults.Volatility != 0.35 {
		t.Errorf("Expected volatility 0.35 from env, got %v", cfg.Defaults.Volatility)
	}
	if cfg.Defaults.Days != 90 {
		t.Errorf("Expected 90 days from env, got %d", cfg.Defaults.Days)
	}
	if cfg.Store.Driver != "sqlite" {
		t.Errorf("Expected sqlite store from env, got %s", cfg.Store.Driver)
	}
	if !cfg.Logging.Console {
		t.Errorf("Expected console logging enabled from env")
	}
}

func TestInvalidEnvFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEFAULT_STRIKE", "not-a-number")

	if got := Load().Defaults.Strike; got != 100 {
		t.Errorf("Expected fallback strike 100, got %v", got)
	}
}

func TestYAMLOverlay(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlData := []byte(`
port: "9090"
logging:
  log_level: debug
store:
  driver: sqlite
  path: /tmp/scenarios.db
defaults:
  strike: 105
  side: put
rates:
  source: treasury
`)
	if err := os.WriteFile(path, yamlData, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	ConfigFile = path

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Expected port from YAML, got %s", cfg.Port)
	}
	if cfg.Logging.LogLevel != "debug" {
		t.Errorf("Expected debug log level, got %s", cfg.Logging.LogLevel)
	}
	if cfg.Store.Driver != "sqlite" || cfg.Store.Path != "/tmp/scenarios.db" {
		t.Errorf("Unexpected store config: %+v", cfg.Store)
	}
	if cfg.Defaults.Strike != 105 || cfg.Defaults.Side != "put" {
		t.Errorf("Unexpected defaults from YAML: %+v", cfg.Defaults)
	}
	if cfg.Defaults.Spot != 100 {
		t.Errorf("Fields missing from YAML should keep defaults, got spot %v", cfg.Defaults.Spot)
	}
	if cfg.Rates.Source != "treasury" {
		t.Errorf("Expected treasury rate source, got %s", cfg.Rates.Source)
	}
}

func writeConfig(t *testing.T, body string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	ConfigFile = path
}

func TestYAMLRiskFreeRateFeedsRateSource(t *testing.T) {
	clearEnv(t)
	writeConfig(t, "defaults:\n  risk_free_rate: 0.05\n")

	if got := Load().Rates.FixedRate; got != 0.05 {
		t.Errorf("Expected defaults.risk_free_rate to set the fixed rate, got %v", got)
	}

	writeConfig(t, "defaults:\n  risk_free_rate: 0.05\nrates:\n  fixed_rate: 0.03\n")
	if got := Load().Rates.FixedRate; got != 0.03 {
		t.Errorf("Expected rates.fixed_rate to win, got %v", got)
	}
}

func TestYAMLExplicitZeroOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEFAULT_DAYS", "45")
	t.Setenv("DEFAULT_VOLATILITY", "0.3")
	t.Setenv("DEFAULT_PCT_CHANGE", "0.1")
	t.Setenv("DEFAULT_RISK_FREE_RATE", "0.02")
	writeConfig(t, `
defaults:
  days: 0
  volatility: 0
  pct_change: 0
rates:
  fixed_rate: 0
`)

	cfg := Load()

	d := cfg.Defaults
	if d.Days != 0 || d.Volatility != 0 || d.PctChange != 0 {
		t.Errorf("Expected explicit zeros from YAML, got %+v", d)
	}
	if cfg.Rates.FixedRate != 0 {
		t.Errorf("Expected explicit zero fixed rate, got %v", cfg.Rates.FixedRate)
	}
	if d.Strike != 100 {
		t.Errorf("Keys missing from YAML should keep defaults, got strike %v", d.Strike)
	}
}
