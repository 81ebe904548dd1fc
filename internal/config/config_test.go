package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := cfg.StartDate.Format("2006-01-02"); got != "2023-04-28" {
		t.Errorf("StartDate = %s", got)
	}
	if got := cfg.EndDate.Format("2006-01-02"); got != "2025-10-28" {
		t.Errorf("EndDate = %s", got)
	}
	if cfg.CompanyLimit != 15 || cfg.SectorLimit != 30 {
		t.Errorf("limits = %d/%d, want 15/30", cfg.CompanyLimit, cfg.SectorLimit)
	}
	if cfg.RequestDelay != 15*time.Second {
		t.Errorf("RequestDelay = %s, want 15s", cfg.RequestDelay)
	}
	if cfg.OutputFile != "historical_news_hdfc_bank_filtered.csv" {
		t.Errorf("OutputFile = %s", cfg.OutputFile)
	}
	if cfg.GDELT.MaxRecords != 250 {
		t.Errorf("GDELT.MaxRecords = %d, want 250", cfg.GDELT.MaxRecords)
	}
	if len(cfg.Keywords) == 0 {
		t.Error("Keywords should default to the finance vocabulary")
	}
	if cfg.Enrich.Enabled {
		t.Error("enrichment must be disabled by default")
	}
	if cfg.Archive.Path != "" {
		t.Error("archive must be disabled by default")
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "harvester.yaml")
	content := `
start_date: "2024-01-01"
end_date: "2024-01-31"
request_delay: 2s
output_file: out.csv
company_limit: 5
sector_limit: 10
gdelt:
  max_records: 100
  timeout: 5s
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.StartDate.Format("2006-01-02"); got != "2024-01-01" {
		t.Errorf("StartDate = %s", got)
	}
	if cfg.RequestDelay != 2*time.Second {
		t.Errorf("RequestDelay = %s", cfg.RequestDelay)
	}
	if cfg.CompanyLimit != 5 || cfg.SectorLimit != 10 {
		t.Errorf("limits = %d/%d", cfg.CompanyLimit, cfg.SectorLimit)
	}
	if cfg.GDELT.MaxRecords != 100 || cfg.GDELT.Timeout != 5*time.Second {
		t.Errorf("gdelt = %+v", cfg.GDELT)
	}
	// Unset fields keep their defaults.
	if cfg.CompanyQuery == "" || cfg.SectorQuery == "" {
		t.Error("queries should fall back to defaults")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HARVESTER_OUTPUT_FILE", "env_override.csv")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OutputFile != "env_override.csv" {
		t.Errorf("OutputFile = %s, want env override", cfg.OutputFile)
	}
}

func TestLoadRejectsInvertedRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "harvester.yaml")
	content := `
start_date: "2024-02-01"
end_date: "2024-01-01"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for end before start")
	}
}

func TestLoadRejectsBadDate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "harvester.yaml")
	if err := os.WriteFile(path, []byte("start_date: \"28-04-2023\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestLoadRejectsZeroLimits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "harvester.yaml")
	if err := os.WriteFile(path, []byte("company_limit: 0\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for zero company_limit")
	}
}
