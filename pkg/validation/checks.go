package validation

import (
	"errors"
	"fmt"

	"github.com/soskin/vacancy-shadow-liability/pkg/vsl"
)

// ValidateScenario checks one raw scenario mapping from the scenario book.
// Every absent key is reported, then domain errors, then advisory warnings.
func ValidateScenario(name string, raw map[string]any) *Report {
	r := NewReport()

	missing := false
	for _, key := range vsl.RequiredKeys {
		if v, ok := raw[key]; !ok || v == nil {
			missing = true
			r.AddError(Result{
				Level:      LevelConfig,
				Message:    fmt.Sprintf("scenario %q: missing required parameter %q", name, key),
				Scenario:   name,
				Key:        key,
				Constraint: "a number",
			})
		}
	}
	if missing {
		return r
	}

	p, err := vsl.ParametersFromMap(name, raw)
	if err != nil {
		res := Result{
			Level:    LevelConfig,
			Message:  err.Error(),
			Scenario: name,
		}
		var inv *vsl.InvalidConfigurationError
		if errors.As(err, &inv) {
			res.Key = inv.Key
			res.Value = inv.Value
			res.Constraint = inv.Reason
		}
		r.AddError(res)
		return r
	}

	checkAdvisory(name, p, r)
	return r
}

func checkAdvisory(name string, p vsl.Parameters, r *Report) {
	if p.SpilloverMultiplier < 1 {
		r.AddWarning(Result{
			Level:      LevelConfig,
			Message:    fmt.Sprintf("scenario %q: spillover_multiplier %.2f reduces direct costs below their itemized sum", name, p.SpilloverMultiplier),
			Scenario:   name,
			Key:        "spillover_multiplier",
			Value:      p.SpilloverMultiplier,
			Constraint: ">= 1.0",
		})
	}
	if p.DiscountRate > 0.15 {
		r.AddWarning(Result{
			Level:      LevelConfig,
			Message:    fmt.Sprintf("scenario %q: discount_rate %.3f is unusually high for public finance", name, p.DiscountRate),
			Scenario:   name,
			Key:        "discount_rate",
			Value:      p.DiscountRate,
			Constraint: "0.00-0.15",
		})
	}
	if p.TaxRate > 0.1 {
		r.AddWarning(Result{
			Level:      LevelConfig,
			Message:    fmt.Sprintf("scenario %q: tax_rate %.3f exceeds 10%% of assessed value per year", name, p.TaxRate),
			Scenario:   name,
			Key:        "tax_rate",
			Value:      p.TaxRate,
			Constraint: "a fraction such as 0.02, not a mill rate",
		})
	}
	if p.ProjectionYears > 50 {
		r.AddWarning(Result{
			Level:      LevelConfig,
			Message:    fmt.Sprintf("scenario %q: projection horizon of %d years is longer than typical", name, p.ProjectionYears),
			Scenario:   name,
			Key:        "projection_years",
			Value:      p.ProjectionYears,
			Constraint: "<= 50",
		})
	}
}

// ValidateDataset checks loaded neighborhood rows for conditions the model
// tolerates but a reader should know about.
func ValidateDataset(rows []vsl.Neighborhood) *Report {
	r := NewReport()

	if len(rows) == 0 {
		r.AddError(Result{
			Level:      LevelDataset,
			Message:    "dataset contains no usable neighborhood rows",
			Key:        "neighborhood",
			Constraint: "at least 1 row",
		})
		return r
	}

	seen := make(map[string]int, len(rows))
	units := 0.0
	for i, n := range rows {
		units += n.VacantUnits

		if first, dup := seen[n.Name]; dup {
			r.AddWarning(Result{
				Level:      LevelDataset,
				Message:    fmt.Sprintf("row %d: neighborhood %q duplicates row %d", i+1, n.Name, first+1),
				Key:        "neighborhood",
				Value:      n.Name,
				Constraint: "unique names",
			})
		} else {
			seen[n.Name] = i
		}

		if n.VacantUnits == 0 {
			r.AddWarning(Result{
				Level:   LevelDataset,
				Message: fmt.Sprintf("row %d: %s has no vacant units; vsl_per_unit will be undefined", i+1, n.Name),
				Key:     "vacant_units",
				Value:   n.VacantUnits,
			})
		}
	}

	r.AddInfo(Result{
		Level:   LevelDataset,
		Message: fmt.Sprintf("%d neighborhoods, %.0f vacant units", len(rows), units),
		Key:     "vacant_units",
		Value:   units,
	})
	return r
}
