package recipe

import (
	"github.com/aretw0/espalier/internal/engine"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/steps"
)

// Fitted is an immutable snapshot of an estimated recipe: the role
// assignment plus each step's captured statistics. It is read-only
// after Fit returns and safe for concurrent Apply calls, provided
// callers treat datasets as immutable once passed in.
type Fitted struct {
	roles domain.Roles
	steps []steps.FittedStep
}

// Apply replays the fitted steps in their fixed order against ds,
// using only statistics captured during Fit. It returns a new dataset;
// neither ds nor the snapshot is mutated. Fails with SchemaError if ds
// lacks a column a step matched at fit time.
func (f *Fitted) Apply(ds *domain.Dataset) (*domain.Dataset, error) {
	return engine.Apply(ds, f.steps)
}

// Steps returns the fitted steps in order.
func (f *Fitted) Steps() []steps.FittedStep {
	out := make([]steps.FittedStep, len(f.steps))
	copy(out, f.steps)
	return out
}

// Roles returns the role assignment captured at fit time.
func (f *Fitted) Roles() domain.Roles { return f.roles }

// Outcome returns the outcome column name.
func (f *Fitted) Outcome() string { return f.roles.Outcome }
