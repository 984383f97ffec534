package vsl

import (
	"fmt"
	"math"
	"strconv"
)

// Scenario parameter keys as they appear in the scenario book.
const (
	KeyFireResponseCost        = "fire_response_cost"
	KeyPoliceResponseCost      = "police_response_cost"
	KeyCodeEnforcementCost     = "code_enforcement_cost"
	KeyDemolitionAmortizedCost = "demolition_amortized_cost"
	KeyBlightRemediationCost   = "blight_remediation_cost"
	KeySpilloverMultiplier     = "spillover_multiplier"
	KeyTaxRate                 = "tax_rate"
	KeyAssessmentDecayRate     = "assessment_decay_rate"
	KeyDiscountRate            = "discount_rate"
	KeyProjectionYears         = "projection_years"
)

// MaxProjectionYears caps the projection horizon.
const MaxProjectionYears = 1000

// RequiredKeys lists every scenario key in canonical order.
var RequiredKeys = []string{
	KeyFireResponseCost,
	KeyPoliceResponseCost,
	KeyCodeEnforcementCost,
	KeyDemolitionAmortizedCost,
	KeyBlightRemediationCost,
	KeySpilloverMultiplier,
	KeyTaxRate,
	KeyAssessmentDecayRate,
	KeyDiscountRate,
	KeyProjectionYears,
}

// Parameters is one resolved scenario. Values are annual and per unit.
type Parameters struct {
	Scenario string `json:"scenario"`

	FireResponseCost        float64 `json:"fire_response_cost"`
	PoliceResponseCost      float64 `json:"police_response_cost"`
	CodeEnforcementCost     float64 `json:"code_enforcement_cost"`
	DemolitionAmortizedCost float64 `json:"demolition_amortized_cost"`
	BlightRemediationCost   float64 `json:"blight_remediation_cost"`

	SpilloverMultiplier float64 `json:"spillover_multiplier"`
	TaxRate             float64 `json:"tax_rate"`
	AssessmentDecayRate float64 `json:"assessment_decay_rate"`
	DiscountRate        float64 `json:"discount_rate"`
	ProjectionYears     int     `json:"projection_years"`
}

// ParametersFromMap resolves a raw scenario mapping into Parameters.
// The first absent key in RequiredKeys order yields a MissingParameterError.
// The result is validated before it is returned.
func ParametersFromMap(scenario string, raw map[string]any) (Parameters, error) {
	for _, key := range RequiredKeys {
		v, ok := raw[key]
		if !ok || v == nil {
			return Parameters{}, &MissingParameterError{Scenario: scenario, Key: key}
		}
	}

	vals := make(map[string]float64, len(RequiredKeys))
	for _, key := range RequiredKeys {
		f, err := toFloat(raw[key])
		if err != nil {
			return Parameters{}, &InvalidConfigurationError{
				Scenario: scenario,
				Key:      key,
				Value:    raw[key],
				Reason:   "must be a number",
			}
		}
		vals[key] = f
	}

	years := vals[KeyProjectionYears]
	if years != math.Trunc(years) || math.IsInf(years, 0) {
		return Parameters{}, &InvalidConfigurationError{
			Scenario: scenario,
			Key:      KeyProjectionYears,
			Value:    raw[KeyProjectionYears],
			Reason:   "must be a whole number of years",
		}
	}
	if years > MaxProjectionYears {
		return Parameters{}, &InvalidConfigurationError{
			Scenario: scenario,
			Key:      KeyProjectionYears,
			Value:    raw[KeyProjectionYears],
			Reason:   fmt.Sprintf("must be at most %d", MaxProjectionYears),
		}
	}

	p := Parameters{
		Scenario:                scenario,
		FireResponseCost:        vals[KeyFireResponseCost],
		PoliceResponseCost:      vals[KeyPoliceResponseCost],
		CodeEnforcementCost:     vals[KeyCodeEnforcementCost],
		DemolitionAmortizedCost: vals[KeyDemolitionAmortizedCost],
		BlightRemediationCost:   vals[KeyBlightRemediationCost],
		SpilloverMultiplier:     vals[KeySpilloverMultiplier],
		TaxRate:                 vals[KeyTaxRate],
		AssessmentDecayRate:     vals[KeyAssessmentDecayRate],
		DiscountRate:            vals[KeyDiscountRate],
		ProjectionYears:         int(years),
	}
	if err := p.Validate(); err != nil {
		return Parameters{}, err
	}
	return p, nil
}

// Validate checks every parameter against its domain and returns the first
// violation as an InvalidConfigurationError.
func (p Parameters) Validate() error {
	costs := []struct {
		key string
		val float64
	}{
		{KeyFireResponseCost, p.FireResponseCost},
		{KeyPoliceResponseCost, p.PoliceResponseCost},
		{KeyCodeEnforcementCost, p.CodeEnforcementCost},
		{KeyDemolitionAmortizedCost, p.DemolitionAmortizedCost},
		{KeyBlightRemediationCost, p.BlightRemediationCost},
		{KeySpilloverMultiplier, p.SpilloverMultiplier},
		{KeyDiscountRate, p.DiscountRate},
	}
	for _, c := range costs {
		if math.IsNaN(c.val) || math.IsInf(c.val, 0) || c.val < 0 {
			return p.invalid(c.key, c.val, "must be a finite non-negative number")
		}
	}

	if math.IsNaN(p.TaxRate) || p.TaxRate < 0 || p.TaxRate > 1 {
		return p.invalid(KeyTaxRate, p.TaxRate, "must be within [0, 1]")
	}
	if math.IsNaN(p.AssessmentDecayRate) || p.AssessmentDecayRate < 0 || p.AssessmentDecayRate >= 1 {
		return p.invalid(KeyAssessmentDecayRate, p.AssessmentDecayRate, "must be within [0, 1)")
	}
	if p.ProjectionYears <= 0 {
		return p.invalid(KeyProjectionYears, p.ProjectionYears, "must be a positive integer")
	}
	if p.ProjectionYears > MaxProjectionYears {
		return p.invalid(KeyProjectionYears, p.ProjectionYears, fmt.Sprintf("must be at most %d", MaxProjectionYears))
	}
	return nil
}

func (p Parameters) invalid(key string, value any, reason string) error {
	return &InvalidConfigurationError{Scenario: p.Scenario, Key: key, Value: value, Reason: reason}
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case string:
		return strconv.ParseFloat(n, 64)
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}
