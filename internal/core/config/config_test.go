package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const sampleFile = `default:
  connection:
    url: localhost
    port: 6334
    collection: test-collection
production:
  connection:
    url: qdrant.example.com
    port: 6334
    api_key: ${TEST_QDRANT_KEY}
    collection: prod-collection
`

type testConnection struct {
	URL        string `yaml:"url"`
	Port       int    `yaml:"port"`
	APIKey     string `yaml:"api_key"`
	Collection string `yaml:"collection"`
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadDefaultProfile(t *testing.T) {
	path := writeConfig(t, sampleFile)

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	p, err := f.Profile("")
	if err != nil {
		t.Fatalf("Profile lookup failed: %v", err)
	}
	if p.Name != DefaultProfile {
		t.Errorf("Expected profile %q, got %q", DefaultProfile, p.Name)
	}

	var conn testConnection
	if err := p.Connection(&conn); err != nil {
		t.Fatalf("Connection decode failed: %v", err)
	}
	if conn.URL != "localhost" || conn.Port != 6334 || conn.Collection != "test-collection" {
		t.Errorf("Unexpected connection: %+v", conn)
	}
}

func TestLoadNamedProfileWithEnvExpansion(t *testing.T) {
	t.Setenv("TEST_QDRANT_KEY", "secret-key")
	path := writeConfig(t, sampleFile)

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	p, err := f.Profile("production")
	if err != nil {
		t.Fatalf("Profile lookup failed: %v", err)
	}

	var conn testConnection
	if err := p.Connection(&conn); err != nil {
		t.Fatalf("Connection decode failed: %v", err)
	}
	if conn.APIKey != "secret-key" {
		t.Errorf("Expected expanded api_key 'secret-key', got %q", conn.APIKey)
	}
}

func TestProfileNotFound(t *testing.T) {
	path := writeConfig(t, sampleFile)

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	_, err = f.Profile("staging")
	if err == nil {
		t.Fatal("Expected error for unknown profile")
	}
	if !strings.Contains(err.Error(), "default, production") {
		t.Errorf("Error should list available profiles, got: %v", err)
	}
}

func TestProfileMissingConnection(t *testing.T) {
	path := writeConfig(t, "default:\n  comment: no connection here\n")

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if _, err := f.Profile("default"); err == nil {
		t.Fatal("Expected error for profile without connection section")
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "default: [unclosed"},
		{"empty file", ""},
		{"scalar document", "just a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := Load(path); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestNames(t *testing.T) {
	path := writeConfig(t, sampleFile)

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := []string{"default", "production"}
	if got := f.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestProfilesMissingFile(t *testing.T) {
	names, err := Profiles(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Profiles failed: %v", err)
	}
	if !reflect.DeepEqual(names, []string{DefaultProfile}) {
		t.Errorf("Expected [%s], got %v", DefaultProfile, names)
	}
}

func TestFindPathExplicit(t *testing.T) {
	path := writeConfig(t, sampleFile)

	got, err := FindPath("qdrant-manager", path)
	if err != nil {
		t.Fatalf("FindPath failed: %v", err)
	}
	if got != path {
		t.Errorf("Expected %s, got %s", path, got)
	}

	if _, err := FindPath("qdrant-manager", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing explicit config")
	}
}

func TestEnsureDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path, created, err := EnsureDefault("solr-manager", sampleFile)
	if err != nil {
		t.Fatalf("EnsureDefault failed: %v", err)
	}
	if !created {
		t.Error("Expected sample config to be created")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read created config: %v", err)
	}
	if string(data) != sampleFile {
		t.Error("Created config does not match sample")
	}

	// Second call must not overwrite.
	_, created, err = EnsureDefault("solr-manager", "other: content\n")
	if err != nil {
		t.Fatalf("EnsureDefault second call failed: %v", err)
	}
	if created {
		t.Error("Expected existing config to be left alone")
	}
}
