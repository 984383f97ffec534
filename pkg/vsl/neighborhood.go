package vsl

// Neighborhood is one row of the vacancy dataset.
type Neighborhood struct {
	Name             string  `json:"neighborhood"`
	VacantUnits      float64 `json:"vacant_units"`
	AvgAssessedValue float64 `json:"avg_assessed_value"`
	YearsVacantAvg   float64 `json:"years_vacant_avg"`
}
