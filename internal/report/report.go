package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/damwatch/gridcheck/internal/inspect"
	"github.com/damwatch/gridcheck/internal/record"
)

// Summary carries everything the reporter needs to describe one extraction
// run: where the document came from, what each pipeline stage produced, and
// the records that survived validation. It is assembled by the app and
// rendered here; rendering never changes extraction semantics.
type Summary struct {
	InputPath     string
	Charset       string
	DocumentBytes int

	TableID       string
	FragmentChars int
	StrippedChars int
	Rows          int

	Records []record.Record
	Stats   record.Stats

	// Overview is optional document-level context for verbose runs.
	Overview *inspect.Overview
}

// Succeeded reports whether the run produced any records. A zero count is
// the signal that extraction went wrong end to end, even though no stage
// raised an error.
func (s *Summary) Succeeded() bool {
	return len(s.Records) > 0
}

// StatusCounts tallies records per status in peak, active, base order.
func (s *Summary) StatusCounts() (peak, active, base int) {
	for _, r := range s.Records {
		switch r.Status {
		case record.StatusPeak:
			peak++
		case record.StatusActive:
			active++
		case record.StatusBase:
			base++
		}
	}
	return
}

// Text renders the console report: one line per pipeline stage, a sample of
// up to samples records, and a final verdict line.
func (s *Summary) Text(samples int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "input: %s (%s, %d bytes)\n", s.InputPath, s.Charset, s.DocumentBytes)
	if s.Overview != nil {
		fmt.Fprintf(&b, "document: title %q, %d table(s)%s\n", s.Overview.Title, s.Overview.Tables, idList(s.Overview.TableIDs))
	}
	fmt.Fprintf(&b, "table %q: found, %d chars (%d after caption removal)\n", s.TableID, s.FragmentChars, s.StrippedChars)
	fmt.Fprintf(&b, "rows: %d (first row treated as header)\n", s.Rows)

	peak, active, base := s.StatusCounts()
	fmt.Fprintf(&b, "records: %d (peak %d, active %d, base %d)\n", len(s.Records), peak, active, base)
	if skipped := s.Stats.Skipped(); skipped > 0 {
		fmt.Fprintf(&b, "skipped rows: %d (short %d, empty time %d, bad generation %d)\n",
			skipped, s.Stats.ShortRows, s.Stats.EmptyTime, s.Stats.BadGeneration)
	}

	if n := min(samples, len(s.Records)); n > 0 {
		fmt.Fprintf(&b, "\nfirst %d record(s):\n", n)
		for i, r := range s.Records[:n] {
			fmt.Fprintf(&b, "  %d. %s  %s MW  (%s)\n", i+1, r.Time, formatGeneration(r.Generation), r.Status)
		}
	}

	b.WriteString("\n")
	if s.Succeeded() {
		fmt.Fprintf(&b, "result: SUCCESS (%d record(s) extracted)\n", len(s.Records))
	} else {
		b.WriteString("result: FAILURE (no records extracted)\n")
	}
	return b.String()
}

// Markdown renders the report as a standalone artifact with a sample table,
// suitable for attaching to an issue or archiving next to the input file.
func (s *Summary) Markdown(samples int) string {
	var b strings.Builder
	b.WriteString("# gridcheck report\n\n")
	fmt.Fprintf(&b, "- Input: `%s` (%s, %d bytes)\n", s.InputPath, s.Charset, s.DocumentBytes)
	if s.Overview != nil {
		fmt.Fprintf(&b, "- Document: title %q, %d table(s)%s\n", s.Overview.Title, s.Overview.Tables, idList(s.Overview.TableIDs))
	}
	fmt.Fprintf(&b, "- Table: `%s`, found, %d chars (%d after caption removal)\n", s.TableID, s.FragmentChars, s.StrippedChars)
	fmt.Fprintf(&b, "- Rows: %d (first row treated as header)\n", s.Rows)
	peak, active, base := s.StatusCounts()
	fmt.Fprintf(&b, "- Records: %d (peak %d, active %d, base %d)\n", len(s.Records), peak, active, base)
	fmt.Fprintf(&b, "- Skipped rows: %d (short %d, empty time %d, bad generation %d)\n",
		s.Stats.Skipped(), s.Stats.ShortRows, s.Stats.EmptyTime, s.Stats.BadGeneration)

	if n := min(samples, len(s.Records)); n > 0 {
		b.WriteString("\n## Samples\n\n")
		b.WriteString("| # | Time | Generation (MW) | Status | Source |\n")
		b.WriteString("|---|------|-----------------|--------|--------|\n")
		for i, r := range s.Records[:n] {
			fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n", i+1, mdCell(r.Time), formatGeneration(r.Generation), r.Status, mdCell(r.Source))
		}
	}

	b.WriteString("\n")
	if s.Succeeded() {
		fmt.Fprintf(&b, "Result: **SUCCESS**, %d record(s) extracted.\n", len(s.Records))
	} else {
		b.WriteString("Result: **FAILURE**, no records extracted.\n")
	}
	return b.String()
}

// OverviewText renders a standalone document overview for inspect-only runs
// and for the not-found diagnostic.
func OverviewText(path string, ov inspect.Overview) string {
	var b strings.Builder
	fmt.Fprintf(&b, "input: %s\n", path)
	fmt.Fprintf(&b, "title: %q\n", ov.Title)
	fmt.Fprintf(&b, "tables: %d%s\n", ov.Tables, idList(ov.TableIDs))
	return b.String()
}

func idList(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	return " (ids: " + strings.Join(ids, ", ") + ")"
}

func formatGeneration(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func mdCell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
}
