// Package report writes model runs to disk: the per-neighborhood and citywide
// CSV tables, a stacked bar chart, and a JSON bundle for downstream tools.
package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/soskin/vacancy-shadow-liability/pkg/validation"
	"github.com/soskin/vacancy-shadow-liability/pkg/vsl"
)

// Output file names inside the output directory.
const (
	NeighborhoodFile = "vsl_neighborhood.csv"
	SummaryFile      = "vsl_citywide_summary.csv"
	ChartFile        = "vsl_by_neighborhood.png"
	BundleFile       = "vsl_run.json"
	ComparisonFile   = "vsl_scenario_comparison.csv"
)

const (
	dirPermissions  os.FileMode = 0o755
	filePermissions os.FileMode = 0o644
)

// Bundle is the JSON form of one run.
type Bundle struct {
	RunID       string             `json:"run_id"`
	GeneratedAt time.Time          `json:"generated_at"`
	Input       string             `json:"input,omitempty"`
	Outcome     *vsl.Outcome       `json:"outcome"`
	Validation  *validation.Report `json:"validation,omitempty"`
}

// Options controls which artifacts WriteRun produces.
type Options struct {
	Chart     bool
	ChartSize ChartSize
}

// Written lists the files produced by WriteRun, in write order.
type Written struct {
	Paths []string
}

// WriteRun writes every artifact of a completed run into dir. All files are
// rendered to temporary siblings first and only renamed into place once every
// one of them succeeded. A chart left over from an earlier run is removed
// when charts are disabled.
func WriteRun(dir string, b *Bundle, opts Options) (*Written, error) {
	if b == nil || b.Outcome == nil {
		return nil, fmt.Errorf("nothing to write")
	}
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	artifacts := []artifact{
		{NeighborhoodFile, func(w io.Writer) error {
			return WriteNeighborhoodCSV(w, b.Outcome.Results)
		}},
		{SummaryFile, func(w io.Writer) error {
			return WriteSummaryCSV(w, b.Outcome.Summary)
		}},
		{BundleFile, func(w io.Writer) error {
			return WriteJSON(w, b)
		}},
	}
	if opts.Chart {
		size := opts.ChartSize
		if size.WidthIn <= 0 || size.HeightIn <= 0 {
			size = DefaultChartSize
		}
		artifacts = append(artifacts, artifact{ChartFile, func(w io.Writer) error {
			return RenderChart(w, b.Outcome.Results, b.Outcome.Parameters.Scenario, size)
		}})
	}

	paths, err := writeAllAtomic(dir, artifacts)
	if err != nil {
		return nil, err
	}

	if !opts.Chart {
		if err := os.Remove(filepath.Join(dir, ChartFile)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("removing stale chart: %w", err)
		}
	}
	return &Written{Paths: paths}, nil
}

type artifact struct {
	name   string
	render func(io.Writer) error
}

// writeAllAtomic stages every artifact as a .tmp file in dir and renames
// them into place only after all of them were written. On failure the
// staged files are removed and no target is touched.
func writeAllAtomic(dir string, artifacts []artifact) ([]string, error) {
	staged := make([]string, 0, len(artifacts))
	cleanup := func() {
		for _, tmp := range staged {
			_ = os.Remove(tmp)
		}
	}

	for _, a := range artifacts {
		path := filepath.Join(dir, a.name)
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			cleanup()
			return nil, fmt.Errorf("writing %s: %s is a directory", a.name, path)
		}
		tmp, err := stageFile(path, a.render)
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("writing %s: %w", a.name, err)
		}
		staged = append(staged, tmp)
	}

	paths := make([]string, 0, len(artifacts))
	for i, a := range artifacts {
		path := filepath.Join(dir, a.name)
		if err := os.Rename(staged[i], path); err != nil {
			staged = staged[i:]
			cleanup()
			return nil, fmt.Errorf("writing %s: failed to rename file: %w", a.name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// WriteComparison writes one summary row per scenario into dir.
func WriteComparison(dir string, summaries []*vsl.Summary) (string, error) {
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, ComparisonFile)
	err := writeFileAtomic(path, func(w io.Writer) error {
		return WriteSummaryCSV(w, summaries...)
	})
	if err != nil {
		return "", fmt.Errorf("writing %s: %w", ComparisonFile, err)
	}
	return path, nil
}

// ScheduleFileName is the file WriteSchedule uses for a neighborhood.
func ScheduleFileName(neighborhood string) string {
	slug := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return '_'
	}, strings.TrimSpace(neighborhood))
	return "vsl_schedule_" + slug + ".csv"
}

// WriteSchedule writes one neighborhood's per-unit projection into dir.
func WriteSchedule(dir, neighborhood string, schedule []vsl.YearProjection) (string, error) {
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	name := ScheduleFileName(neighborhood)
	path := filepath.Join(dir, name)
	err := writeFileAtomic(path, func(w io.Writer) error {
		return WriteScheduleCSV(w, schedule)
	})
	if err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	return path, nil
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeFileAtomic(path string, render func(io.Writer) error) error {
	tmp, err := stageFile(path, render)
	if err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}

// stageFile renders into memory and writes the result next to path with a
// .tmp suffix, returning the temporary path.
func stageFile(path string, render func(io.Writer) error) (string, error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return "", err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), filePermissions); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return tmp, nil
}
