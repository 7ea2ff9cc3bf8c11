package scenario

import "fmt"

// UnknownScenarioError is returned when the requested scenario name is not registered.
type UnknownScenarioError struct {
	Name string
}

func (e *UnknownScenarioError) Error() string {
	return fmt.Sprintf("unknown scenario: %s", e.Name)
}

// StatusError is returned when the gateway answers a step with an unexpected status code.
type StatusError struct {
	Step string
	Got  int
	Want int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: status=%d, want %d", e.Step, e.Got, e.Want)
	}
	return fmt.Sprintf("%s: status=%d, want %d (body: %s)", e.Step, e.Got, e.Want, e.Body)
}
