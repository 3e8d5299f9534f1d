package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	apppkg "github.com/damwatch/gridcheck/internal/app"
	"github.com/damwatch/gridcheck/internal/htmltable"
)

// Smoke test: run writes the Markdown artifact for a minimal saved page.
func TestRun_WritesReport(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "page.html")
	out := filepath.Join(dir, "report.md")
	html := `<table id="GridView1">
	  <tr><th>Time</th><th>MW</th></tr>
	  <tr><td>10:00</td><td>75.2</td></tr>
	</table>`
	if err := os.WriteFile(in, []byte(html), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	cfg := apppkg.Config{
		InputPath:   in,
		TableID:     apppkg.DefaultTableID,
		SourceLabel: apppkg.DefaultSourceLabel,
		SampleCount: apppkg.DefaultSampleCount,
		OutputPath:  out,
	}
	if err := run(cfg); err != nil {
		t.Fatalf("run error: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil || len(b) == 0 {
		t.Fatalf("expected report file, err=%v", err)
	}
}

// Ensures the exit-code policy condition surfaces as a sentinel from run().
func TestRun_MissingTable_Error(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "page.html")
	if err := os.WriteFile(in, []byte(`<html><body><p>no tables</p></body></html>`), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	cfg := apppkg.Config{
		InputPath:   in,
		TableID:     apppkg.DefaultTableID,
		SourceLabel: apppkg.DefaultSourceLabel,
	}
	err := run(cfg)
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !errors.Is(err, htmltable.ErrTableNotFound) {
		t.Fatalf("expected ErrTableNotFound, got %v", err)
	}
}
