package vsl

import (
	"math"
	"testing"
)

func TestForegoneTaxScheduleLength(t *testing.T) {
	p := baseParams()
	p.ProjectionYears = 10
	s := ForegoneTaxSchedule(Neighborhood{Name: "a", VacantUnits: 1, AvgAssessedValue: 100000}, p)
	if len(s) != 10 {
		t.Fatalf("schedule length = %d, want 10", len(s))
	}
	for i, y := range s {
		if y.Year != i+1 {
			t.Errorf("schedule[%d].Year = %d, want %d", i, y.Year, i+1)
		}
		if y.PresentValue != y.AnnualTax*y.PVFactor {
			t.Errorf("year %d present value %v != %v * %v", y.Year, y.PresentValue, y.AnnualTax, y.PVFactor)
		}
	}
}

// Each year decays from the current value rather than from the prior year.
// Both forms agree numerically; this checks the documented single-compounding form.
func TestForegoneTaxScheduleDecaysFromCurrentValue(t *testing.T) {
	p := baseParams()
	p.ProjectionYears = 5
	n := Neighborhood{Name: "a", VacantUnits: 1, AvgAssessedValue: 100000, YearsVacantAvg: 1.5}

	current := CurrentValue(n, p)
	for _, y := range ForegoneTaxSchedule(n, p) {
		want := current * math.Pow(1-p.AssessmentDecayRate, float64(y.Year))
		if y.ProjectedValue != want {
			t.Errorf("year %d projected = %v, want %v", y.Year, y.ProjectedValue, want)
		}
	}
}

func TestForegoneTaxZeroDecayIgnoresYearsVacant(t *testing.T) {
	p := baseParams()
	p.AssessmentDecayRate = 0
	p.ProjectionYears = 20

	a := ForegoneTaxPV(Neighborhood{Name: "a", VacantUnits: 50, AvgAssessedValue: 180000, YearsVacantAvg: 0}, p)
	b := ForegoneTaxPV(Neighborhood{Name: "b", VacantUnits: 50, AvgAssessedValue: 180000, YearsVacantAvg: 7.25}, p)
	if a != b {
		t.Errorf("zero decay PV differs with years vacant: %v vs %v", a, b)
	}

	// Annuity of 3600/yr at 3% for 20 years, times 50 units.
	want := 3600 * (1 - math.Pow(1.03, -20)) / 0.03 * 50
	if math.Abs(a-want) > 1e-6 {
		t.Errorf("zero decay PV = %v, want %v", a, want)
	}
}

func TestForegoneTaxZeroDiscountIsNominalSum(t *testing.T) {
	p := baseParams()
	p.DiscountRate = 0
	p.ProjectionYears = 6
	n := Neighborhood{Name: "a", VacantUnits: 1, AvgAssessedValue: 250000, YearsVacantAvg: 2}

	nominal := 0.0
	for _, y := range ForegoneTaxSchedule(n, p) {
		if y.PVFactor != 1 {
			t.Errorf("year %d pv factor = %v, want 1", y.Year, y.PVFactor)
		}
		nominal += y.AnnualTax
	}
	if got := ForegoneTaxPV(n, p); math.Abs(got-nominal) > 1e-9 {
		t.Errorf("zero discount PV = %v, want nominal sum %v", got, nominal)
	}
}

func TestForegoneTaxZeroUnits(t *testing.T) {
	got := ForegoneTaxPV(Neighborhood{Name: "a", AvgAssessedValue: 300000, YearsVacantAvg: 1}, baseParams())
	if got != 0 {
		t.Errorf("zero units PV = %v, want 0", got)
	}
}

func TestForegoneTaxFractionalYears(t *testing.T) {
	p := baseParams()
	n := Neighborhood{Name: "a", VacantUnits: 1, AvgAssessedValue: 100000, YearsVacantAvg: 0.5}
	want := 100000 * math.Sqrt(0.95)
	if got := CurrentValue(n, p); math.Abs(got-want) > 1e-9 {
		t.Errorf("current value = %v, want %v", got, want)
	}
}

func TestForegoneTaxScalesWithUnits(t *testing.T) {
	p := baseParams()
	one := ForegoneTaxPV(Neighborhood{Name: "a", VacantUnits: 1, AvgAssessedValue: 90000, YearsVacantAvg: 3}, p)
	many := ForegoneTaxPV(Neighborhood{Name: "a", VacantUnits: 40, AvgAssessedValue: 90000, YearsVacantAvg: 3}, p)
	if math.Abs(many-40*one) > 1e-6 {
		t.Errorf("PV for 40 units = %v, want %v", many, 40*one)
	}
}

func TestCalculateForegoneTaxRejectsInvalidHorizon(t *testing.T) {
	for _, years := range []int{0, -5} {
		p := baseParams()
		p.ProjectionYears = years
		if _, err := CalculateForegoneTax(sampleRows(), p); err == nil {
			t.Errorf("projection_years=%d: expected error", years)
		}
		if s := ForegoneTaxSchedule(sampleRows()[0], p); s != nil {
			t.Errorf("projection_years=%d: expected nil schedule, got %d years", years, len(s))
		}
	}
}
