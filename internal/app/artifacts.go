package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/damwatch/gridcheck/internal/record"
	"github.com/damwatch/gridcheck/internal/report"
)

// exportArtifacts writes the optional run artifacts: a Markdown copy of the
// report, a JSON sidecar with the extracted records, and a PDF rendering.
// Each artifact is written only when its path is configured.
func (a *App) exportArtifacts(sum report.Summary) error {
	if p := strings.TrimSpace(a.cfg.OutputPath); p != "" {
		if err := writeFile(p, []byte(sum.Markdown(a.cfg.SampleCount))); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	if p := strings.TrimSpace(a.cfg.RecordsPath); p != "" {
		recs := sum.Records
		if recs == nil {
			// Keep the sidecar a JSON array even when nothing was extracted.
			recs = []record.Record{}
		}
		if err := writeJSON(p, recs); err != nil {
			return fmt.Errorf("write records: %w", err)
		}
	}
	if p := strings.TrimSpace(a.cfg.PDFPath); p != "" {
		if err := ensureParentDir(p); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
		if err := writeReportPDF(sum.Markdown(a.cfg.SampleCount), p); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
	}
	return nil
}

func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return writeFile(path, append(b, '\n'))
}

func writeFile(path string, data []byte) error {
	if err := ensureParentDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
