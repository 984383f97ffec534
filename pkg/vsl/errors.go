package vsl

import "fmt"

// MissingParameterError reports a required scenario key that is absent.
type MissingParameterError struct {
	Scenario string
	Key      string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("scenario %q: missing required parameter %q", e.Scenario, e.Key)
}

// InvalidConfigurationError reports a scenario parameter outside its valid domain.
type InvalidConfigurationError struct {
	Scenario string
	Key      string
	Value    any
	Reason   string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("scenario %q: invalid %s = %v: %s", e.Scenario, e.Key, e.Value, e.Reason)
}

// EmptyDatasetError is returned when there are no neighborhoods to summarize.
type EmptyDatasetError struct {
	Scenario string
}

func (e *EmptyDatasetError) Error() string {
	return fmt.Sprintf("scenario %q: cannot summarize an empty neighborhood dataset", e.Scenario)
}
