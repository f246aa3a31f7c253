package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempCSV(t *testing.T, root string) string {
	t.Helper()
	path := filepath.Join(root, "sales.csv")
	requireNoError(t, os.WriteFile(path, []byte("ORDERNUMBER,SALES\n"), 0o644))
	return path
}

func TestLoad_ValidCSVConfig(t *testing.T) {
	root := t.TempDir()
	csvPath := writeTempCSV(t, root)

	cfgPath := filepath.Join(root, "salescope.yaml")
	requireNoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf(`
server:
  port: 8080
  host: "127.0.0.1"
  mode: "release"
dataset:
  source_type: "csv"
  csv_path: "%s"
cache:
  ttl: "5m"
`, csvPath)), 0o644))

	cfg, err := Load(cfgPath)
	requireNoError(t, err)
	if cfg.Dataset.SourceType != "csv" {
		t.Fatalf("expected csv source, got %q", cfg.Dataset.SourceType)
	}
	ttl, err := cfg.Cache.TTLDuration()
	requireNoError(t, err)
	if ttl.Minutes() != 5 {
		t.Fatalf("expected 5m ttl, got %v", ttl)
	}
}

func TestLoad_PostgresRequiresDSN(t *testing.T) {
	root := t.TempDir()
	cfgPath := filepath.Join(root, "salescope.yaml")
	requireNoError(t, os.WriteFile(cfgPath, []byte(`
dataset:
  source_type: "postgres"
`), 0o644))

	_, err := Load(cfgPath)
	if err == nil || !strings.Contains(err.Error(), "database.dsn is required") {
		t.Fatalf("expected missing dsn error, got %v", err)
	}
}

func TestLoad_UnknownSourceTypeFailsStartup(t *testing.T) {
	root := t.TempDir()
	cfgPath := filepath.Join(root, "salescope.yaml")
	requireNoError(t, os.WriteFile(cfgPath, []byte(`
dataset:
  source_type: "sqlite"
`), 0o644))

	_, err := Load(cfgPath)
	if err == nil || !strings.Contains(err.Error(), "unsupported dataset.source_type") {
		t.Fatalf("expected unsupported source type error, got %v", err)
	}
}

func TestLoad_InvalidCacheTTLFailsStartup(t *testing.T) {
	root := t.TempDir()
	csvPath := writeTempCSV(t, root)
	cfgPath := filepath.Join(root, "salescope.yaml")
	requireNoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf(`
dataset:
  source_type: "csv"
  csv_path: "%s"
cache:
  ttl: "often"
`, csvPath)), 0o644))

	_, err := Load(cfgPath)
	if err == nil || !strings.Contains(err.Error(), "invalid cache.ttl") {
		t.Fatalf("expected invalid ttl error, got %v", err)
	}
}

func requireNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
