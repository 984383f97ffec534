package scenario

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soskin/vacancy-shadow-liability/pkg/vsl"
)

const sampleBook = `
scenarios:
  low:
    fire_response_cost: 800
    police_response_cost: 600
    code_enforcement_cost: 400
    demolition_amortized_cost: 700
    blight_remediation_cost: 300
    spillover_multiplier: 1.0
    tax_rate: 0.015
    assessment_decay_rate: 0.02
    discount_rate: 0.05
    projection_years: 10
  base:
    fire_response_cost: 1500
    police_response_cost: 1000
    code_enforcement_cost: 800
    demolition_amortized_cost: 1200
    blight_remediation_cost: 500
    spillover_multiplier: 1.2
    tax_rate: 0.02
    assessment_decay_rate: 0.05
    discount_rate: 0.03
    projection_years: 10
  high:
    fire_response_cost: 2500
    police_response_cost: 1800
    code_enforcement_cost: 1200
    demolition_amortized_cost: 2000
    blight_remediation_cost: 900
    spillover_multiplier: 1.5
    tax_rate: 0.025
    assessment_decay_rate: 0.08
    discount_rate: 0.02
`

func writeBook(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	book, err := Load(writeBook(t, sampleBook))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	names := book.Names()
	if strings.Join(names, ",") != "low,base,high" {
		t.Errorf("names = %v, want [low base high]", names)
	}

	p, err := book.Parameters("base")
	if err != nil {
		t.Fatalf("Parameters(base): %v", err)
	}
	if p.Scenario != "base" {
		t.Errorf("scenario = %q, want base", p.Scenario)
	}
	if p.FireResponseCost != 1500 || p.SpilloverMultiplier != 1.2 || p.ProjectionYears != 10 {
		t.Errorf("unexpected params: %+v", p)
	}
}

func TestParametersMissingKey(t *testing.T) {
	book, err := Parse([]byte(sampleBook))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	_, err = book.Parameters("high")
	var missing *vsl.MissingParameterError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingParameterError, got %v", err)
	}
	if missing.Key != "projection_years" || missing.Scenario != "high" {
		t.Errorf("got %+v, want projection_years in high", missing)
	}
}

func TestUnknownScenario(t *testing.T) {
	book, err := Parse([]byte(sampleBook))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	_, err = book.Parameters("extreme")
	if !errors.Is(err, ErrUnknownScenario) {
		t.Fatalf("expected ErrUnknownScenario, got %v", err)
	}
	if !strings.Contains(err.Error(), "extreme") || !strings.Contains(err.Error(), "low, base, high") {
		t.Errorf("message should name the scenario and the valid options: %v", err)
	}
}

func TestRawReturnsCopy(t *testing.T) {
	book, err := Parse([]byte(sampleBook))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	raw, err := book.Raw("low")
	if err != nil {
		t.Fatalf("Raw: %v", err)
	}
	delete(raw, "tax_rate")

	if _, err := book.Parameters("low"); err != nil {
		t.Errorf("mutating Raw result changed the book: %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"no scenarios", "logging:\n  level: info\n", "missing scenarios"},
		{"not a mapping", "scenarios: [a, b]\n", "must be a mapping"},
		{"empty", "scenarios: {}\n", "empty"},
		{"scalar root", "just text\n", "top level"},
		{"duplicate", "scenarios:\n  base: {tax_rate: 1}\n  base: {tax_rate: 2}\n", "defined"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want substring %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
