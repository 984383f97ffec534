package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/soskin/vacancy-shadow-liability/pkg/vsl"
)

// NeighborhoodColumns is the header of the per-neighborhood table.
var NeighborhoodColumns = []string{
	"neighborhood",
	"vacant_units",
	"avg_assessed_value",
	"years_vacant_avg",
	"direct_cost_per_unit",
	"direct_cost_total",
	"foregone_tax_pv",
	"total_vsl",
	"vsl_per_unit",
}

// SummaryColumns is the header of the citywide summary table.
var SummaryColumns = []string{
	"scenario",
	"total_neighborhoods",
	"total_vacant_units",
	"total_direct_costs",
	"total_foregone_tax_pv",
	"total_vsl",
	"avg_vsl_per_unit",
	"max_neighborhood_vsl",
	"max_neighborhood_name",
}

// WriteNeighborhoodCSV writes one row per result. Money columns are rounded
// to cents; an undefined vsl_per_unit is left empty.
func WriteNeighborhoodCSV(w io.Writer, results []vsl.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(NeighborhoodColumns); err != nil {
		return err
	}
	for _, r := range results {
		rec := []string{
			r.Name,
			Number(r.VacantUnits),
			Fixed(r.AvgAssessedValue, 2),
			Number(r.YearsVacantAvg),
			Fixed(r.DirectCostPerUnit, 2),
			Fixed(r.DirectCostTotal, 2),
			Fixed(r.ForegoneTaxPV, 2),
			Fixed(r.TotalVSL, 2),
			Fixed(r.VSLPerUnit, 2),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing %s: %w", r.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummaryCSV writes one row per summary, so a single run yields a
// one-row table and a scenario comparison yields one row per scenario.
func WriteSummaryCSV(w io.Writer, summaries ...*vsl.Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SummaryColumns); err != nil {
		return err
	}
	for _, s := range summaries {
		rec := []string{
			s.Scenario,
			strconv.Itoa(s.TotalNeighborhoods),
			Number(s.TotalVacantUnits),
			Fixed(s.TotalDirectCosts, 2),
			Fixed(s.TotalForegoneTaxPV, 2),
			Fixed(s.TotalVSL, 2),
			Fixed(s.AvgVSLPerUnit, 2),
			Fixed(s.MaxNeighborhoodVSL, 2),
			s.MaxNeighborhoodName,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing summary %s: %w", s.Scenario, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteScheduleCSV writes a per-year foregone-tax schedule for one unit.
func WriteScheduleCSV(w io.Writer, schedule []vsl.YearProjection) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"year", "projected_value", "annual_tax", "pv_factor", "present_value"}); err != nil {
		return err
	}
	for _, y := range schedule {
		rec := []string{
			strconv.Itoa(y.Year),
			Fixed(y.ProjectedValue, 2),
			Fixed(y.AnnualTax, 2),
			Fixed(y.PVFactor, 6),
			Fixed(y.PresentValue, 2),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
