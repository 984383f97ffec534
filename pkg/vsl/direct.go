package vsl

// DirectCost holds the direct public cost figures for one neighborhood.
type DirectCost struct {
	PerUnit float64 `json:"direct_cost_per_unit"`
	Total   float64 `json:"direct_cost_total"`
}

// DirectCostPerUnit returns the annual public cost of one vacant unit:
// the sum of the five service costs scaled by the spillover multiplier.
// It depends only on the scenario, never on row data.
func DirectCostPerUnit(p Parameters) float64 {
	perUnit := p.FireResponseCost +
		p.PoliceResponseCost +
		p.CodeEnforcementCost +
		p.DemolitionAmortizedCost +
		p.BlightRemediationCost
	return perUnit * p.SpilloverMultiplier
}

// CalculateDirectCosts computes direct costs for each row, in input order.
func CalculateDirectCosts(rows []Neighborhood, p Parameters) ([]DirectCost, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	perUnit := DirectCostPerUnit(p)
	out := make([]DirectCost, len(rows))
	for i, n := range rows {
		out[i] = DirectCost{
			PerUnit: perUnit,
			Total:   n.VacantUnits * perUnit,
		}
	}
	return out, nil
}
