package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/soskin/vacancy-shadow-liability/pkg/report"
	"github.com/soskin/vacancy-shadow-liability/pkg/validation"
	"github.com/soskin/vacancy-shadow-liability/pkg/vsl"
)

func printSummary(w io.Writer, s *vsl.Summary) {
	rule := strings.Repeat("=", 50)
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "CITYWIDE SUMMARY")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Scenario: %s\n", strings.ToUpper(s.Scenario))
	fmt.Fprintf(w, "Total Vacant Units: %s\n", report.Grouped(s.TotalVacantUnits))
	fmt.Fprintf(w, "Total Direct Costs: %s\n", report.Dollars(s.TotalDirectCosts))
	fmt.Fprintf(w, "Total Foregone Tax (PV): %s\n", report.Dollars(s.TotalForegoneTaxPV))
	fmt.Fprintf(w, "Total VSL: %s\n", report.Dollars(s.TotalVSL))
	fmt.Fprintf(w, "Average VSL per Unit: %s\n", report.Dollars(s.AvgVSLPerUnit))
	fmt.Fprintf(w, "Highest Liability: %s\n", s.MaxNeighborhoodName)
	fmt.Fprintln(w, rule)
}

func printValidationReport(w io.Writer, r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Fprintf(w, "ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			printResult(w, e)
		}
		fmt.Fprintln(w)
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintf(w, "WARNINGS (%d):\n", len(r.Warnings))
		for _, e := range r.Warnings {
			printResult(w, e)
		}
		fmt.Fprintln(w)
	}

	if len(r.Info) > 0 {
		fmt.Fprintf(w, "INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Fprintf(w, "  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Fprintln(w)
	}

	if r.Valid {
		fmt.Fprintf(w, "Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Fprintf(w, "Result: INVALID (%s)\n", r.Summary)
	}
}

func printResult(w io.Writer, e validation.Result) {
	fmt.Fprintf(w, "  [%s] %s\n", e.Level, e.Message)
	if e.Key != "" && e.Value != nil {
		fmt.Fprintf(w, "    -> %s = %v\n", e.Key, e.Value)
	}
	if e.Constraint != "" {
		fmt.Fprintf(w, "    expected: %s\n", e.Constraint)
	}
}

func printComparison(w io.Writer, summaries []*vsl.Summary) {
	fmt.Fprintf(w, "%-24s", "Metric")
	for _, s := range summaries {
		fmt.Fprintf(w, " %14s", s.Scenario)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-24s", strings.Repeat("-", 24))
	for range summaries {
		fmt.Fprintf(w, " %14s", strings.Repeat("-", 14))
	}
	fmt.Fprintln(w)

	rows := []struct {
		label string
		value func(*vsl.Summary) string
	}{
		{"Vacant units", func(s *vsl.Summary) string { return report.Grouped(s.TotalVacantUnits) }},
		{"Direct costs", func(s *vsl.Summary) string { return report.Compact(s.TotalDirectCosts) }},
		{"Foregone tax (PV)", func(s *vsl.Summary) string { return report.Compact(s.TotalForegoneTaxPV) }},
		{"Total VSL", func(s *vsl.Summary) string { return report.Compact(s.TotalVSL) }},
		{"Avg VSL per unit", func(s *vsl.Summary) string { return report.Compact(s.AvgVSLPerUnit) }},
		{"Highest liability", func(s *vsl.Summary) string { return s.MaxNeighborhoodName }},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%-24s", row.label)
		for _, s := range summaries {
			fmt.Fprintf(w, " %14s", row.value(s))
		}
		fmt.Fprintln(w)
	}
}

func printSchedule(w io.Writer, n vsl.Neighborhood, p vsl.Parameters) {
	fmt.Fprintf(w, "Foregone tax projection: %s (%s scenario)\n", n.Name, p.Scenario)
	fmt.Fprintf(w, "  Assessed value:  %s\n", report.Dollars(n.AvgAssessedValue))
	fmt.Fprintf(w, "  Years vacant:    %s\n", report.Number(n.YearsVacantAvg))
	fmt.Fprintf(w, "  Current value:   %s\n", report.Dollars(vsl.CurrentValue(n, p)))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%6s %16s %14s %10s %14s\n", "Year", "Projected value", "Annual tax", "PV factor", "Discounted")
	fmt.Fprintf(w, "%6s %16s %14s %10s %14s\n", "------", "----------------", "--------------", "----------", "--------------")
	perUnit := 0.0
	for _, y := range vsl.ForegoneTaxSchedule(n, p) {
		perUnit += y.PresentValue
		fmt.Fprintf(w, "%6d %16s %14s %10.6f %14s\n",
			y.Year, report.Dollars(y.ProjectedValue), report.Dollars(y.AnnualTax), y.PVFactor, report.Dollars(y.PresentValue))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  PV per unit:     %s\n", report.Dollars(perUnit))
	fmt.Fprintf(w, "  Vacant units:    %s\n", report.Number(n.VacantUnits))
	fmt.Fprintf(w, "  Foregone tax PV: %s\n", report.Dollars(vsl.ForegoneTaxPV(n, p)))
}
