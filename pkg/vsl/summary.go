package vsl

import (
	"encoding/json"
	"math"
)

// Summary is the single citywide row of a run.
type Summary struct {
	Scenario            string  `json:"scenario"`
	TotalNeighborhoods  int     `json:"total_neighborhoods"`
	TotalVacantUnits    float64 `json:"total_vacant_units"`
	TotalDirectCosts    float64 `json:"total_direct_costs"`
	TotalForegoneTaxPV  float64 `json:"total_foregone_tax_pv"`
	TotalVSL            float64 `json:"total_vsl"`
	AvgVSLPerUnit       float64 `json:"avg_vsl_per_unit"`
	MaxNeighborhoodVSL  float64 `json:"max_neighborhood_vsl"`
	MaxNeighborhoodName string  `json:"max_neighborhood_name"`
}

// Summarize reduces results to one citywide row.
//
// AvgVSLPerUnit is weighted by units: sum(total_vsl) / sum(vacant_units). It
// is NaN when no row has vacant units. The highest-liability neighborhood is
// the first row reaching the maximum, in input order.
func Summarize(results []Result, scenario string) (*Summary, error) {
	if len(results) == 0 {
		return nil, &EmptyDatasetError{Scenario: scenario}
	}

	s := &Summary{
		Scenario:            scenario,
		TotalNeighborhoods:  len(results),
		MaxNeighborhoodVSL:  results[0].TotalVSL,
		MaxNeighborhoodName: results[0].Name,
	}
	for _, r := range results {
		s.TotalVacantUnits += r.VacantUnits
		s.TotalDirectCosts += r.DirectCostTotal
		s.TotalForegoneTaxPV += r.ForegoneTaxPV
		s.TotalVSL += r.TotalVSL

		// Strict comparison keeps the first maximum.
		if r.TotalVSL > s.MaxNeighborhoodVSL {
			s.MaxNeighborhoodVSL = r.TotalVSL
			s.MaxNeighborhoodName = r.Name
		}
	}
	s.AvgVSLPerUnit = perUnit(s.TotalVSL, s.TotalVacantUnits)

	return s, nil
}

// MarshalJSON renders an undefined average as null.
func (s Summary) MarshalJSON() ([]byte, error) {
	type plain Summary
	out := struct {
		plain
		AvgVSLPerUnit *float64 `json:"avg_vsl_per_unit"`
	}{plain: plain(s)}
	if !math.IsNaN(s.AvgVSLPerUnit) {
		v := s.AvgVSLPerUnit
		out.AvgVSLPerUnit = &v
	}
	return json.Marshal(out)
}
