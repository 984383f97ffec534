// Package dataset loads per-neighborhood vacancy data from CSV.
//
// Rows whose numeric fields cannot be coerced, or that violate the model's
// non-negativity assumptions, are dropped and reported rather than failing
// the load.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/soskin/vacancy-shadow-liability/pkg/validation"
	"github.com/soskin/vacancy-shadow-liability/pkg/vsl"
)

// Column names required in the input header.
const (
	ColNeighborhood     = "neighborhood"
	ColVacantUnits      = "vacant_units"
	ColAvgAssessedValue = "avg_assessed_value"
	ColYearsVacantAvg   = "years_vacant_avg"
)

// RequiredColumns lists the header columns every input must carry.
var RequiredColumns = []string{
	ColNeighborhood,
	ColVacantUnits,
	ColAvgAssessedValue,
	ColYearsVacantAvg,
}

// MissingColumnsError reports required columns absent from the header.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
}

// Dataset is the cleaned neighborhood table plus a record of what was dropped.
type Dataset struct {
	Rows    []vsl.Neighborhood
	Dropped int
	Report  *validation.Report
}

// Load reads and cleans a neighborhood CSV file.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input data: %w", err)
	}
	defer f.Close()

	ds, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ds, nil
}

// Parse reads and cleans neighborhood CSV data. Extra columns are ignored.
func Parse(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &MissingColumnsError{Columns: RequiredColumns}
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}
	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	ds := &Dataset{Report: validation.NewReport()}
	line := 1
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		n, col, reason := parseRow(record, index)
		if reason != "" {
			ds.Dropped++
			ds.Report.AddWarning(validation.Result{
				Level:   validation.LevelDataset,
				Message: fmt.Sprintf("line %d: dropped row, %s %s", line, col, reason),
				Key:     col,
				Line:    line,
				Value:   field(record, index[col]),
			})
			continue
		}
		ds.Rows = append(ds.Rows, n)
	}

	if ds.Dropped > 0 {
		ds.Report.AddInfo(validation.Result{
			Level:   validation.LevelDataset,
			Message: fmt.Sprintf("Dropped %d rows with missing/invalid data", ds.Dropped),
			Value:   ds.Dropped,
		})
	}
	return ds, nil
}

// parseRow returns the coerced row, or the offending column and a reason.
func parseRow(record []string, index map[string]int) (vsl.Neighborhood, string, string) {
	var n vsl.Neighborhood

	n.Name = strings.TrimSpace(field(record, index[ColNeighborhood]))
	if n.Name == "" {
		return n, ColNeighborhood, "is blank"
	}

	targets := []struct {
		col string
		dst *float64
	}{
		{ColVacantUnits, &n.VacantUnits},
		{ColAvgAssessedValue, &n.AvgAssessedValue},
		{ColYearsVacantAvg, &n.YearsVacantAvg},
	}
	for _, t := range targets {
		raw := strings.TrimSpace(field(record, index[t.col]))
		if raw == "" {
			return n, t.col, "is blank"
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return n, t.col, "is not a number"
		}
		if v < 0 {
			return n, t.col, "is negative"
		}
		*t.dst = v
	}
	return n, "", ""
}

func field(record []string, i int) string {
	if i < len(record) {
		return record[i]
	}
	return ""
}
