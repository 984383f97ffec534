package vsl

import "math"

// YearProjection is one year of a neighborhood's foregone-tax schedule,
// expressed per vacant unit.
type YearProjection struct {
	Year           int     `json:"year"`
	ProjectedValue float64 `json:"projected_value"`
	AnnualTax      float64 `json:"annual_tax"`
	PVFactor       float64 `json:"pv_factor"`
	PresentValue   float64 `json:"present_value"`
}

// CurrentValue returns the already-decayed assessed value of one unit after
// YearsVacantAvg years of vacancy. Fractional years are allowed.
func CurrentValue(n Neighborhood, p Parameters) float64 {
	return n.AvgAssessedValue * math.Pow(1-p.AssessmentDecayRate, n.YearsVacantAvg)
}

// ForegoneTaxSchedule projects years 1..ProjectionYears for one unit.
//
// Every year decays from the current value directly, value(t) =
// current * (1-decay)^t. Chaining from year t-1 gives the same value up to
// rounding.
func ForegoneTaxSchedule(n Neighborhood, p Parameters) []YearProjection {
	if p.ProjectionYears <= 0 {
		return nil
	}

	current := CurrentValue(n, p)
	schedule := make([]YearProjection, 0, p.ProjectionYears)
	for year := 1; year <= p.ProjectionYears; year++ {
		t := float64(year)
		projected := current * math.Pow(1-p.AssessmentDecayRate, t)
		tax := projected * p.TaxRate
		factor := 1 / math.Pow(1+p.DiscountRate, t)
		schedule = append(schedule, YearProjection{
			Year:           year,
			ProjectedValue: projected,
			AnnualTax:      tax,
			PVFactor:       factor,
			PresentValue:   tax * factor,
		})
	}
	return schedule
}

// ForegoneTaxPV returns the present value of tax revenue foregone across all
// vacant units of the neighborhood over the projection horizon.
func ForegoneTaxPV(n Neighborhood, p Parameters) float64 {
	pvTotal := 0.0
	for _, y := range ForegoneTaxSchedule(n, p) {
		pvTotal += y.PresentValue
	}
	return pvTotal * n.VacantUnits
}

// CalculateForegoneTax computes ForegoneTaxPV for each row, in input order.
// Parameters are validated before any row is processed.
func CalculateForegoneTax(rows []Neighborhood, p Parameters) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	out := make([]float64, len(rows))
	for i, n := range rows {
		out[i] = ForegoneTaxPV(n, p)
	}
	return out, nil
}
