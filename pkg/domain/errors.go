package domain

import (
	"errors"
	"fmt"
)

// ErrRecipeNotFound is returned by stores when a fitted recipe ID does
// not exist.
var ErrRecipeNotFound = errors.New("recipe not found")

// SchemaError reports a missing or wrongly typed column.
type SchemaError struct {
	Column string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema: column %q: %s", e.Column, e.Reason)
}

// UnresolvedSelectorError reports a step whose selector matched no
// columns at fit time.
type UnresolvedSelectorError struct {
	Step     string
	Selector string
}

func (e *UnresolvedSelectorError) Error() string {
	return fmt.Sprintf("step %s: selector %s matched no columns", e.Step, e.Selector)
}

// FitError reports a step that could not compute its statistics from
// the training data.
type FitError struct {
	Step   string
	Column string
	Reason string
}

func (e *FitError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("step %s: %s", e.Step, e.Reason)
	}
	return fmt.Sprintf("step %s: column %q: %s", e.Step, e.Column, e.Reason)
}

// DomainError reports a value outside a step's valid input domain,
// e.g. a non-positive value fed to a log transform.
type DomainError struct {
	Step   string
	Column string
	Row    int
	Value  float64
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("step %s: column %q row %d: %s (got %v)", e.Step, e.Column, e.Row, e.Reason, e.Value)
}
