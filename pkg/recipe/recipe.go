// Package recipe provides the public two-phase builder API: declare an
// ordered sequence of transformation steps, fit them once against
// training data, then apply the fitted result to any compatible
// dataset.
//
// A Recipe is a specification; nothing executes until Fit. The fluent
// step methods mutate the builder in place and return it for chaining.
// Fit never mutates the builder: each call produces an independent,
// immutable Fitted snapshot computed from scratch.
package recipe

import (
	"log/slog"

	"github.com/aretw0/espalier/internal/engine"
	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/selector"
	"github.com/aretw0/espalier/pkg/steps"
)

// Recipe is an unfitted, ordered step specification with a resolved
// role assignment. Construct with New or Formula.
type Recipe struct {
	schema domain.Schema
	roles  domain.Roles
	steps  []steps.Step
	logger *slog.Logger
}

// New defines a recipe against a schema: one outcome column, the given
// predictors (all other columns when none are listed). Fails with
// SchemaError if the outcome is missing from the schema or the
// predictor specification resolves to zero columns.
func New(schema domain.Schema, outcome string, predictors ...string) (*Recipe, error) {
	roles, err := domain.NewRoles(schema, outcome, predictors...)
	if err != nil {
		return nil, err
	}
	return &Recipe{
		schema: schema,
		roles:  roles,
		logger: logging.NewNop(),
	}, nil
}

// WithLogger sets the structured logger used during Fit.
func (r *Recipe) WithLogger(logger *slog.Logger) *Recipe {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// Step appends an arbitrary step. The fluent methods below cover the
// built-in kinds; Step is the extension point for custom ones.
func (r *Recipe) Step(st steps.Step) *Recipe {
	r.steps = append(r.steps, st)
	return r
}

// Log appends a log transform with the given base (0 for natural log).
func (r *Recipe) Log(sel selector.Selector, base float64) *Recipe {
	return r.Step(steps.Log{Sel: sel, Base: base})
}

// Other appends rare-level lumping with the given frequency threshold.
func (r *Recipe) Other(sel selector.Selector, threshold float64) *Recipe {
	return r.Step(steps.Other{Sel: sel, Threshold: threshold})
}

// Dummy appends one-hot encoding of nominal columns.
func (r *Recipe) Dummy(sel selector.Selector) *Recipe {
	return r.Step(steps.Dummy{Sel: sel})
}

// Interact appends pairwise products of the columns matched by left
// and right.
func (r *Recipe) Interact(left, right selector.Selector) *Recipe {
	return r.Step(steps.Interact{Left: left, Right: right})
}

// NaturalSpline appends a natural cubic spline expansion with df basis
// columns per matched column.
func (r *Recipe) NaturalSpline(sel selector.Selector, df int) *Recipe {
	return r.Step(steps.NaturalSpline{Sel: sel, DF: df})
}

// Center appends mean-centering of numeric columns.
func (r *Recipe) Center(sel selector.Selector) *Recipe {
	return r.Step(steps.Center{Sel: sel})
}

// Scale appends standard-deviation scaling of numeric columns.
func (r *Recipe) Scale(sel selector.Selector) *Recipe {
	return r.Step(steps.Scale{Sel: sel})
}

// Steps returns the declared steps in order.
func (r *Recipe) Steps() []steps.Step {
	out := make([]steps.Step, len(r.steps))
	copy(out, r.steps)
	return out
}

// Roles returns the recipe's role assignment.
func (r *Recipe) Roles() domain.Roles { return r.roles }

// Schema returns the schema the recipe was defined against.
func (r *Recipe) Schema() domain.Schema { return r.schema }

// Fit estimates every step in declaration order against train and
// returns an immutable Fitted snapshot. Fitting is all-or-nothing: any
// step failure aborts the whole call and no snapshot is produced.
func (r *Recipe) Fit(train *domain.Dataset) (*Fitted, error) {
	fitted, _, err := engine.Fit(train, r.roles, r.steps, r.logger)
	if err != nil {
		return nil, err
	}
	return &Fitted{roles: r.roles, steps: fitted}, nil
}
