package app

import (
	"os"
	"path/filepath"
	"testing"
)

// LoadEnvFiles reads KEY=VALUE pairs and populates os.Environ.
func TestLoadEnvFiles_LoadsKeyValues(t *testing.T) {
	t.Setenv("GRIDCHECK_TEST_FOO", "")
	t.Setenv("GRIDCHECK_TEST_BAR", "")

	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env.test")
	content := "\n# sample dotenv file\nGRIDCHECK_TEST_FOO=alpha\nGRIDCHECK_TEST_BAR=\"quoted beta\"\nmalformed line\n"
	if err := os.WriteFile(envPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}

	if err := LoadEnvFiles(envPath); err != nil {
		t.Fatalf("LoadEnvFiles error: %v", err)
	}

	if got := os.Getenv("GRIDCHECK_TEST_FOO"); got != "alpha" {
		t.Fatalf("GRIDCHECK_TEST_FOO=%q, want alpha", got)
	}
	if got := os.Getenv("GRIDCHECK_TEST_BAR"); got != "quoted beta" {
		t.Fatalf("GRIDCHECK_TEST_BAR=%q, want quoted beta", got)
	}
}

// Later files override earlier ones when loading multiple dotenv files.
func TestLoadEnvFiles_OverrideOrder(t *testing.T) {
	t.Setenv("GRIDCHECK_TEST_K", "")
	dir := t.TempDir()
	a := filepath.Join(dir, ".env.a")
	b := filepath.Join(dir, ".env.b")
	if err := os.WriteFile(a, []byte("GRIDCHECK_TEST_K=first\n"), 0o600); err != nil {
		t.Fatalf("write a: %v", err)
	}
	if err := os.WriteFile(b, []byte("GRIDCHECK_TEST_K=second\n"), 0o600); err != nil {
		t.Fatalf("write b: %v", err)
	}

	if err := LoadEnvFiles(a, b); err != nil {
		t.Fatalf("LoadEnvFiles error: %v", err)
	}
	if got := os.Getenv("GRIDCHECK_TEST_K"); got != "second" {
		t.Fatalf("override order failed: got %q, want second", got)
	}
}

// Missing dotenv files are skipped without error.
func TestLoadEnvFiles_MissingFileIgnored(t *testing.T) {
	if err := LoadEnvFiles(filepath.Join(t.TempDir(), ".env.absent")); err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
}
