package steps

import (
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/selector"
)

// Step kind identifiers. These are stable: they tag serialized fitted
// state and appear in recipe YAML definitions.
const (
	KindLog      = "log"
	KindOther    = "other"
	KindDummy    = "dummy"
	KindInteract = "interact"
	KindSpline   = "ns"
	KindCenter   = "center"
	KindScale    = "scale"
)

// Context is the resolution snapshot a step fits against: the working
// schema at the step's position in the recipe plus the role assignment.
type Context struct {
	Schema domain.Schema
	Roles  domain.Roles
}

// Step is a declared, unfitted transformation.
type Step interface {
	// Kind returns the step kind identifier.
	Kind() string
	// Describe returns a short human-readable form for summaries.
	Describe() string
	// Fit resolves the step's selector against ctx, learns the step's
	// statistics from ds, and returns the fitted form. It must not
	// mutate ds or the step itself.
	Fit(ds *domain.Dataset, ctx Context) (FittedStep, error)
}

// FittedStep is a fitted transformation: captured statistics plus a
// pure apply function. Safe for concurrent Apply calls.
type FittedStep interface {
	// Kind returns the step kind identifier.
	Kind() string
	// Describe returns a short human-readable form for summaries.
	Describe() string
	// Columns returns the input columns the selector matched at fit
	// time. Apply fails with SchemaError if any is missing.
	Columns() []string
	// Apply transforms ds using the fitted state, returning a new
	// dataset. It never recomputes statistics from ds.
	Apply(ds *domain.Dataset) (*domain.Dataset, error)
}

// resolve evaluates sel for a step, failing with
// UnresolvedSelectorError when nothing matches.
func resolve(kind string, sel selector.Selector, ctx Context) ([]string, error) {
	cols := selector.Resolve(sel, ctx.Schema, ctx.Roles)
	if len(cols) == 0 {
		return nil, &domain.UnresolvedSelectorError{Step: kind, Selector: sel.Describe()}
	}
	return cols, nil
}
