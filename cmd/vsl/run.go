package main

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/soskin/vacancy-shadow-liability/internal/config"
	"github.com/soskin/vacancy-shadow-liability/internal/logger"
	"github.com/soskin/vacancy-shadow-liability/pkg/dataset"
	"github.com/soskin/vacancy-shadow-liability/pkg/report"
	"github.com/soskin/vacancy-shadow-liability/pkg/scenario"
	"github.com/soskin/vacancy-shadow-liability/pkg/validation"
	"github.com/soskin/vacancy-shadow-liability/pkg/vsl"
)

// loadInputs reads the scenario book and the neighborhood data.
func loadInputs(cfg *config.Config, input string) (*scenario.Book, *dataset.Dataset, error) {
	logger.Info("Loading config from: %s", cfg.ConfigPath)
	book, err := scenario.Load(cfg.ConfigPath)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Loading data from: %s", input)
	ds, err := dataset.Load(input)
	if err != nil {
		return nil, nil, fmt.Errorf("loading data: %w", err)
	}
	for _, w := range ds.Report.Warnings {
		logger.Debug("%s", w.Message)
	}
	if ds.Dropped > 0 {
		logger.Warn("Dropped %d rows with missing/invalid data", ds.Dropped)
	}
	logger.Info("Loaded %d neighborhoods", len(ds.Rows))
	return book, ds, nil
}

func runModel(w io.Writer, cfg *config.Config, input string) error {
	book, ds, err := loadInputs(cfg, input)
	if err != nil {
		return err
	}
	params, err := book.Parameters(cfg.Scenario)
	if err != nil {
		return err
	}

	logger.Info("Running VSL model with '%s' scenario...", cfg.Scenario)
	out, err := vsl.Run(ds.Rows, params)
	if err != nil {
		return err
	}

	bundle := &report.Bundle{
		RunID:       uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Input:       input,
		Outcome:     out,
		Validation:  ds.Report,
	}
	written, err := report.WriteRun(cfg.OutputDir, bundle, report.Options{
		Chart: cfg.Chart.Enabled,
		ChartSize: report.ChartSize{
			WidthIn:  cfg.Chart.WidthIn,
			HeightIn: cfg.Chart.HeightIn,
		},
	})
	if err != nil {
		return err
	}
	for _, p := range written.Paths {
		logger.Info("Saved %s", p)
	}
	logger.Debug("run %s complete", bundle.RunID)

	printSummary(w, out.Summary)
	return nil
}

func runValidate(w io.Writer, cfg *config.Config, input string) error {
	book, ds, err := loadInputs(cfg, input)
	if err != nil {
		return err
	}

	r := validation.NewReport()
	for _, name := range book.Names() {
		raw, err := book.Raw(name)
		if err != nil {
			return err
		}
		r.Merge(validation.ValidateScenario(name, raw))
	}
	r.Merge(ds.Report)
	r.Merge(validation.ValidateDataset(ds.Rows))

	printValidationReport(w, r)

	if err := r.Err(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

func runCompare(w io.Writer, cfg *config.Config, input, outDir string) error {
	book, ds, err := loadInputs(cfg, input)
	if err != nil {
		return err
	}

	// Resolve every scenario first so a bad one aborts before any run.
	names := book.Names()
	params := make([]vsl.Parameters, len(names))
	for i, name := range names {
		p, err := book.Parameters(name)
		if err != nil {
			return err
		}
		params[i] = p
	}

	summaries := make([]*vsl.Summary, len(params))
	for i, p := range params {
		out, err := vsl.Run(ds.Rows, p)
		if err != nil {
			return err
		}
		summaries[i] = out.Summary
	}

	if outDir != "" {
		path, err := report.WriteComparison(outDir, summaries)
		if err != nil {
			return err
		}
		logger.Info("Scenario comparison saved to: %s", path)
	}

	printComparison(w, summaries)
	return nil
}

func runExplain(w io.Writer, cfg *config.Config, input, name, outDir string) error {
	book, ds, err := loadInputs(cfg, input)
	if err != nil {
		return err
	}
	params, err := book.Parameters(cfg.Scenario)
	if err != nil {
		return err
	}

	for _, n := range ds.Rows {
		if n.Name != name {
			continue
		}
		if outDir != "" {
			path, err := report.WriteSchedule(outDir, n.Name, vsl.ForegoneTaxSchedule(n, params))
			if err != nil {
				return err
			}
			logger.Info("Schedule saved to: %s", path)
		}
		printSchedule(w, n, params)
		return nil
	}
	return fmt.Errorf("neighborhood %q not found in %s", name, input)
}

func runScenarios(w io.Writer, cfg *config.Config) error {
	book, err := scenario.Load(cfg.ConfigPath)
	if err != nil {
		return err
	}
	for _, name := range book.Names() {
		marker := " "
		if name == cfg.Scenario {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s\n", marker, name)
	}
	return nil
}
