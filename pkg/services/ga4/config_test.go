package ga4

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_ValidYAML_PopulatesAllFields(t *testing.T) {
	// Given
	dir := t.TempDir()
	path := filepath.Join(dir, "valid.yaml")
	// No indentation inside the backtick block to avoid YAML parsing errors
	content := `property_id: "272846783"
auth_mode: "service_account"
credentials_file: "creds.json"
organic_sources:
- "google / organic"
current_start: "2026-01-01"
current_end: "2026-01-15"
previous_start: "2025-01-01"
previous_end: "2025-01-15"
output_dir: "out"
snapshot_db: "snaps.db"`
	err := os.WriteFile(path, []byte(content), 0o644)
	if err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// When
	cfg, err := LoadConfig(path)

	// Then
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.PropertyID != "272846783" {
		t.Errorf("expected PropertyID=272846783, got %s", cfg.PropertyID)
	}
	if cfg.AuthMode != AuthModeServiceAccount {
		t.Errorf("expected AuthMode=service_account, got %s", cfg.AuthMode)
	}
	if cfg.CredentialsFile != "creds.json" {
		t.Errorf("expected CredentialsFile=creds.json, got %s", cfg.CredentialsFile)
	}
	if len(cfg.OrganicSources) != 1 || cfg.OrganicSources[0] != "google / organic" {
		t.Errorf("expected a single organic source, got %v", cfg.OrganicSources)
	}
	if cfg.CurrentStart != "2026-01-01" || cfg.CurrentEnd != "2026-01-15" {
		t.Errorf("unexpected current period: %s to %s", cfg.CurrentStart, cfg.CurrentEnd)
	}
	if cfg.OutputDir != "out" {
		t.Errorf("expected OutputDir=out, got %s", cfg.OutputDir)
	}
	if cfg.SnapshotDB != "snaps.db" {
		t.Errorf("expected SnapshotDB=snaps.db, got %s", cfg.SnapshotDB)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "minimal.yaml")
	err := os.WriteFile(path, []byte(`property_id: "272846783"`), 0o644)
	if err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.AuthMode != AuthModeOAuth {
		t.Errorf("expected default AuthMode=oauth, got %s", cfg.AuthMode)
	}
	if cfg.TokenFile != "token.json" {
		t.Errorf("expected default TokenFile=token.json, got %s", cfg.TokenFile)
	}
	if cfg.OutputDir != "reports" {
		t.Errorf("expected default OutputDir=reports, got %s", cfg.OutputDir)
	}
	if len(cfg.OrganicSources) != len(DefaultOrganicSources) {
		t.Errorf("expected default organic sources, got %v", cfg.OrganicSources)
	}
}

func TestLoadConfig_MissingPropertyID_ReturnsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nopid.yaml")
	err := os.WriteFile(path, []byte(`output_dir: "out"`), 0o644)
	if err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err = LoadConfig(path)
	if err == nil {
		t.Error("expected error for missing property_id, got nil")
	}
}

func TestLoadConfig_UnknownAuthMode_ReturnsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "badauth.yaml")
	content := `property_id: "272846783"
auth_mode: "magic"`
	err := os.WriteFile(path, []byte(content), 0o644)
	if err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err = LoadConfig(path)
	if err == nil {
		t.Error("expected error for unknown auth_mode, got nil")
	}
}

func TestLoadConfig_InvalidYAML_ReturnsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	err := os.WriteFile(path, []byte("property_id: a:443: bad"), 0o644)
	if err != nil {
		t.Fatalf("failed to write bad config: %v", err)
	}

	_, err = LoadConfig(path)
	if err == nil {
		t.Error("expected error for invalid YAML, got nil")
	}
}
