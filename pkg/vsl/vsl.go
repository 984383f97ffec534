// Package vsl computes Vacancy Shadow Liability: the direct public cost of
// vacant residential units plus the present value of property tax foregone as
// their assessed values decay, per neighborhood and citywide.
//
// All functions are pure. Parameters are passed explicitly and never mutated.
package vsl

import (
	"encoding/json"
	"math"
)

// Result is a Neighborhood enriched with its liability figures.
type Result struct {
	Neighborhood

	DirectCostPerUnit float64 `json:"direct_cost_per_unit"`
	DirectCostTotal   float64 `json:"direct_cost_total"`
	ForegoneTaxPV     float64 `json:"foregone_tax_pv"`
	TotalVSL          float64 `json:"total_vsl"`

	// VSLPerUnit is NaN when VacantUnits is zero.
	VSLPerUnit float64 `json:"vsl_per_unit"`
}

// HasPerUnit reports whether VSLPerUnit is defined for this row.
func (r Result) HasPerUnit() bool {
	return !math.IsNaN(r.VSLPerUnit)
}

// MarshalJSON renders an undefined per-unit figure as null.
func (r Result) MarshalJSON() ([]byte, error) {
	type plain Result
	out := struct {
		plain
		VSLPerUnit *float64 `json:"vsl_per_unit"`
	}{plain: plain(r)}
	if r.HasPerUnit() {
		v := r.VSLPerUnit
		out.VSLPerUnit = &v
	}
	return json.Marshal(out)
}

// Outcome bundles one full model run.
type Outcome struct {
	Parameters Parameters `json:"parameters"`
	Results    []Result   `json:"neighborhoods"`
	Summary    *Summary   `json:"summary"`
}

// Calculate runs both calculators over rows and merges them by position.
// A row with zero vacant units keeps valid totals and a NaN per-unit figure.
func Calculate(rows []Neighborhood, p Parameters) ([]Result, error) {
	direct, err := CalculateDirectCosts(rows, p)
	if err != nil {
		return nil, err
	}
	foregone, err := CalculateForegoneTax(rows, p)
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(rows))
	for i, n := range rows {
		total := direct[i].Total + foregone[i]
		results[i] = Result{
			Neighborhood:      n,
			DirectCostPerUnit: direct[i].PerUnit,
			DirectCostTotal:   direct[i].Total,
			ForegoneTaxPV:     foregone[i],
			TotalVSL:          total,
			VSLPerUnit:        perUnit(total, n.VacantUnits),
		}
	}
	return results, nil
}

// Run executes the full pipeline for one scenario: calculation followed by
// the citywide summary. Nothing is returned unless every stage succeeds.
func Run(rows []Neighborhood, p Parameters) (*Outcome, error) {
	results, err := Calculate(rows, p)
	if err != nil {
		return nil, err
	}
	summary, err := Summarize(results, p.Scenario)
	if err != nil {
		return nil, err
	}
	return &Outcome{Parameters: p, Results: results, Summary: summary}, nil
}

func perUnit(total, units float64) float64 {
	if units == 0 {
		return math.NaN()
	}
	return total / units
}
