package record

import (
	"regexp"
	"strconv"

	"github.com/damwatch/gridcheck/internal/htmltable"
)

// Status classifies a generation reading by magnitude.
type Status string

const (
	// StatusPeak marks generation above 50 MW.
	StatusPeak Status = "peak"
	// StatusActive marks generation above 10 MW up to and including 50 MW.
	StatusActive Status = "active"
	// StatusBase marks generation of 10 MW or less.
	StatusBase Status = "base"
)

const (
	peakThresholdMW   = 50
	activeThresholdMW = 10
)

// Classify derives the status for a generation value. The boundaries are
// exclusive on the high side: exactly 50 is active, exactly 10 is base.
func Classify(generation float64) Status {
	switch {
	case generation > peakThresholdMW:
		return StatusPeak
	case generation > activeThresholdMW:
		return StatusActive
	default:
		return StatusBase
	}
}

// Record is one validated generation reading extracted from a table row.
// Records are never mutated after creation and keep the row order of the
// document they came from.
type Record struct {
	Time       string  `json:"time"`
	Generation float64 `json:"generation"`
	Status     Status  `json:"status"`
	Source     string  `json:"source"`
}

// genRe is the pure numeric gate for the generation cell: digits with at
// most one decimal point, no sign, no exponent, never empty.
var genRe = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// Stats counts the rows a Build call saw and why any were skipped. Skips
// are a normal part of extraction, not errors; the report uses the counts
// to say where rows went.
type Stats struct {
	RowsSeen      int `json:"rowsSeen"`
	ShortRows     int `json:"shortRows"`
	EmptyTime     int `json:"emptyTime"`
	BadGeneration int `json:"badGeneration"`
}

// Skipped is the total number of rows that produced no record.
func (s Stats) Skipped() int {
	return s.ShortRows + s.EmptyTime + s.BadGeneration
}

// Builder converts row fragments into Records, stamping each with a fixed
// source label.
type Builder struct {
	Source string
}

// Build extracts cells from each row fragment and emits a Record per row
// that passes validation: at least two cells, a non-empty time text in
// cell 0, and a pure numeric generation text in cell 1. Rows that fail any
// check are skipped silently and tallied in Stats. The caller decides which
// rows are data rows (conventionally everything after the header at
// index 0).
func (b *Builder) Build(rows []string) ([]Record, Stats) {
	var stats Stats
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		stats.RowsSeen++
		cells := htmltable.Cells(row)
		if len(cells) < 2 {
			stats.ShortRows++
			continue
		}
		timeText, genText := cells[0], cells[1]
		if timeText == "" {
			stats.EmptyTime++
			continue
		}
		if !genRe.MatchString(genText) {
			stats.BadGeneration++
			continue
		}
		generation, err := strconv.ParseFloat(genText, 64)
		if err != nil {
			// Unreachable for strings passing genRe, but never emit a
			// half-built record.
			stats.BadGeneration++
			continue
		}
		records = append(records, Record{
			Time:       timeText,
			Generation: generation,
			Status:     Classify(generation),
			Source:     b.Source,
		})
	}
	return records, stats
}
