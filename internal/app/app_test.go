package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/damwatch/gridcheck/internal/htmltable"
	"github.com/damwatch/gridcheck/internal/record"
)

const fixtureHTML = `<!doctype html>
<html>
  <head><title>Hourly Generation</title></head>
  <body>
    <table id="nav"><tr><td>menu</td></tr></table>
    <table id="GridView1" border="1">
      <caption>Hourly generation schedule</caption>
      <tr><th>Time</th><th>Generation (MW)</th></tr>
      <tr><td>10:00</td><td><b>75.2</b></td></tr>
      <tr><td>10:15</td><td>abc</td></tr>
      <tr><td>10:30</td><td>42.5</td></tr>
    </table>
  </body>
</html>`

func writeFixture(t *testing.T, html string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestRun_ExtractsRecordsAndReports(t *testing.T) {
	cfg := Config{
		InputPath:   writeFixture(t, fixtureHTML),
		TableID:     DefaultTableID,
		SourceLabel: DefaultSourceLabel,
		SampleCount: DefaultSampleCount,
	}
	a := New(cfg)
	defer a.Close()
	var out bytes.Buffer
	a.SetOutput(&out)

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"rows: 4 (first row treated as header)",
		"records: 2 (peak 1, active 1, base 0)",
		"skipped rows: 1 (short 0, empty time 0, bad generation 1)",
		"10:00  75.2 MW  (peak)",
		"result: SUCCESS (2 record(s) extracted)",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected report to contain %q, got:\n%s", want, got)
		}
	}
	if strings.Contains(got, "menu") {
		t.Fatalf("sibling table leaked into the report:\n%s", got)
	}
}

func TestRun_TableNotFoundIsSentinel(t *testing.T) {
	cfg := Config{
		InputPath:   writeFixture(t, `<html><body><table id="other"><tr><td>x</td></tr></table></body></html>`),
		TableID:     DefaultTableID,
		SourceLabel: DefaultSourceLabel,
	}
	a := New(cfg)
	defer a.Close()
	a.SetOutput(&bytes.Buffer{})

	err := a.Run(context.Background())
	if !errors.Is(err, htmltable.ErrTableNotFound) {
		t.Fatalf("expected ErrTableNotFound, got %v", err)
	}
}

func TestRun_ZeroRecordsIsFailureVerdictNotError(t *testing.T) {
	html := `<table id="GridView1">
	  <tr><th>Time</th><th>MW</th></tr>
	  <tr><td>10:00</td><td>n/a</td></tr>
	</table>`
	cfg := Config{
		InputPath:   writeFixture(t, html),
		TableID:     DefaultTableID,
		SourceLabel: DefaultSourceLabel,
		SampleCount: DefaultSampleCount,
	}
	a := New(cfg)
	defer a.Close()
	var out bytes.Buffer
	a.SetOutput(&out)

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("zero records must not be an error, got %v", err)
	}
	if !strings.Contains(out.String(), "result: FAILURE (no records extracted)") {
		t.Fatalf("expected failure verdict, got:\n%s", out.String())
	}
}

func TestRun_InspectOnlyPrintsOverview(t *testing.T) {
	cfg := Config{
		InputPath:   writeFixture(t, fixtureHTML),
		TableID:     DefaultTableID,
		InspectOnly: true,
	}
	a := New(cfg)
	defer a.Close()
	var out bytes.Buffer
	a.SetOutput(&out)

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	for _, want := range []string{`title: "Hourly Generation"`, "tables: 2 (ids: nav, GridView1)"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected overview to contain %q, got:\n%s", want, got)
		}
	}
	if strings.Contains(got, "result:") {
		t.Fatalf("inspect mode must not run extraction:\n%s", got)
	}
}

func TestRun_VerboseAddsDocumentLine(t *testing.T) {
	cfg := Config{
		InputPath:   writeFixture(t, fixtureHTML),
		TableID:     DefaultTableID,
		SourceLabel: DefaultSourceLabel,
		SampleCount: DefaultSampleCount,
		Verbose:     true,
	}
	a := New(cfg)
	defer a.Close()
	var out bytes.Buffer
	a.SetOutput(&out)

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), `document: title "Hourly Generation", 2 table(s)`) {
		t.Fatalf("expected document overview line in verbose report, got:\n%s", out.String())
	}
}

func TestRun_WritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		InputPath:   writeFixture(t, fixtureHTML),
		TableID:     DefaultTableID,
		SourceLabel: DefaultSourceLabel,
		SampleCount: DefaultSampleCount,
		OutputPath:  filepath.Join(dir, "out", "report.md"),
		RecordsPath: filepath.Join(dir, "out", "records.json"),
	}
	a := New(cfg)
	defer a.Close()
	a.SetOutput(&bytes.Buffer{})

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	md, err := os.ReadFile(cfg.OutputPath)
	if err != nil {
		t.Fatalf("read markdown artifact: %v", err)
	}
	if !strings.Contains(string(md), "# gridcheck report") || !strings.Contains(string(md), "| 1 | 10:00 | 75.2 | peak |") {
		t.Fatalf("unexpected markdown artifact:\n%s", md)
	}

	raw, err := os.ReadFile(cfg.RecordsPath)
	if err != nil {
		t.Fatalf("read records artifact: %v", err)
	}
	var recs []record.Record
	if err := json.Unmarshal(raw, &recs); err != nil {
		t.Fatalf("parse records artifact: %v", err)
	}
	if len(recs) != 2 || recs[0].Time != "10:00" || recs[0].Status != record.StatusPeak {
		t.Fatalf("unexpected records artifact: %+v", recs)
	}
	if recs[0].Source != DefaultSourceLabel {
		t.Fatalf("expected source label in artifact, got %q", recs[0].Source)
	}
}

func TestRun_RecordsArtifactIsArrayEvenWhenEmpty(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		InputPath:   writeFixture(t, `<table id="GridView1"><tr><th>h</th></tr></table>`),
		TableID:     DefaultTableID,
		SourceLabel: DefaultSourceLabel,
		RecordsPath: filepath.Join(dir, "records.json"),
	}
	a := New(cfg)
	defer a.Close()
	a.SetOutput(&bytes.Buffer{})

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	raw, err := os.ReadFile(cfg.RecordsPath)
	if err != nil {
		t.Fatalf("read records artifact: %v", err)
	}
	if strings.TrimSpace(string(raw)) != "[]" {
		t.Fatalf("expected empty JSON array, got %q", raw)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := New(Config{InputPath: "unused.html", TableID: DefaultTableID})
	defer a.Close()
	if err := a.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRun_Idempotent(t *testing.T) {
	cfg := Config{
		InputPath:   writeFixture(t, fixtureHTML),
		TableID:     DefaultTableID,
		SourceLabel: DefaultSourceLabel,
		SampleCount: DefaultSampleCount,
	}

	var first, second bytes.Buffer
	for i, out := range []*bytes.Buffer{&first, &second} {
		a := New(cfg)
		a.SetOutput(out)
		if err := a.Run(context.Background()); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		a.Close()
	}
	if first.String() != second.String() {
		t.Fatalf("expected identical reports across runs:\n%s\n---\n%s", first.String(), second.String())
	}
}
