package validation

import (
	"strings"
	"testing"

	"github.com/soskin/vacancy-shadow-liability/pkg/vsl"
)

func baseScenario() map[string]any {
	return map[string]any{
		"fire_response_cost":        1500,
		"police_response_cost":      1000,
		"code_enforcement_cost":     800,
		"demolition_amortized_cost": 1200,
		"blight_remediation_cost":   500,
		"spillover_multiplier":      1.2,
		"tax_rate":                  0.02,
		"assessment_decay_rate":     0.05,
		"discount_rate":             0.03,
		"projection_years":          10,
	}
}

func TestValidateScenarioClean(t *testing.T) {
	r := ValidateScenario("base", baseScenario())
	if !r.Valid {
		t.Fatalf("expected valid report, got %+v", r.Errors)
	}
	if len(r.Warnings) != 0 {
		t.Errorf("expected no warnings, got %+v", r.Warnings)
	}
}

func TestValidateScenarioReportsEveryMissingKey(t *testing.T) {
	raw := baseScenario()
	delete(raw, "tax_rate")
	delete(raw, "discount_rate")

	r := ValidateScenario("low", raw)
	if r.Valid {
		t.Fatal("expected invalid report")
	}
	if len(r.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d: %+v", len(r.Errors), r.Errors)
	}
	if r.Errors[0].Scenario != "low" || r.Errors[0].Key != "tax_rate" {
		t.Errorf("first error = %+v, want low/tax_rate", r.Errors[0])
	}
	if r.Errors[1].Key != "discount_rate" {
		t.Errorf("second key = %q, want discount_rate", r.Errors[1].Key)
	}
}

func TestValidateScenarioDomainError(t *testing.T) {
	raw := baseScenario()
	raw["projection_years"] = 0

	r := ValidateScenario("high", raw)
	if r.Valid {
		t.Fatal("expected invalid report")
	}
	if r.Errors[0].Scenario != "high" || r.Errors[0].Key != "projection_years" {
		t.Errorf("error = %+v, want high/projection_years", r.Errors[0])
	}
	if r.Errors[0].Constraint == "" {
		t.Error("domain error should carry its constraint")
	}
	if !strings.Contains(r.Errors[0].Message, "high") {
		t.Errorf("message should name the scenario: %s", r.Errors[0].Message)
	}
}

func TestValidateScenarioWarnings(t *testing.T) {
	raw := baseScenario()
	raw["spillover_multiplier"] = 0.8
	raw["discount_rate"] = 0.2
	raw["tax_rate"] = 0.25
	raw["projection_years"] = 80

	r := ValidateScenario("base", raw)
	if !r.Valid {
		t.Fatalf("advisories should not invalidate: %+v", r.Errors)
	}
	if len(r.Warnings) != 4 {
		t.Errorf("expected 4 warnings, got %d: %+v", len(r.Warnings), r.Warnings)
	}
}

func TestValidateDataset(t *testing.T) {
	rows := []vsl.Neighborhood{
		{Name: "Eastside", VacantUnits: 10, AvgAssessedValue: 90000, YearsVacantAvg: 2},
		{Name: "Westside", VacantUnits: 0, AvgAssessedValue: 120000, YearsVacantAvg: 1},
		{Name: "Eastside", VacantUnits: 5, AvgAssessedValue: 95000, YearsVacantAvg: 3},
	}
	r := ValidateDataset(rows)
	if !r.Valid {
		t.Fatalf("expected valid report, got %+v", r.Errors)
	}
	if len(r.Warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d: %+v", len(r.Warnings), r.Warnings)
	}
	if !strings.Contains(r.Warnings[0].Message, "Westside") {
		t.Errorf("first warning should concern Westside: %s", r.Warnings[0].Message)
	}
	if !strings.Contains(r.Warnings[1].Message, "duplicates row 1") {
		t.Errorf("second warning should flag the duplicate: %s", r.Warnings[1].Message)
	}
	if len(r.Info) != 1 || !strings.Contains(r.Info[0].Message, "3 neighborhoods, 15 vacant units") {
		t.Errorf("unexpected info: %+v", r.Info)
	}
}

func TestValidateDatasetEmpty(t *testing.T) {
	r := ValidateDataset(nil)
	if r.Valid {
		t.Error("empty dataset should be invalid")
	}
}
