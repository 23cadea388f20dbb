// Package engine executes recipes: it drives the fit loop over a step
// sequence and replays fitted steps during apply. The public API lives
// in pkg/recipe; this package is the shared executor behind it.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/steps"
)

// Fit runs each step in declaration order against train.
//
// Per step: the selector is resolved against the working schema at that
// point (reflecting outputs of all previously fitted steps), the step's
// statistics are computed, and the step's output columns are
// materialized into the working dataset so later steps see them.
//
// Fitting is all-or-nothing: the first failing step aborts, no fitted
// steps are returned, and train is never mutated. On success it returns
// the fitted steps and the fully transformed training dataset.
func Fit(train *domain.Dataset, roles domain.Roles, list []steps.Step, logger *slog.Logger) ([]steps.FittedStep, *domain.Dataset, error) {
	if _, ok := train.Column(roles.Outcome); !ok {
		return nil, nil, &domain.SchemaError{Column: roles.Outcome, Reason: "outcome column not in training data"}
	}
	if train.Rows() == 0 {
		return nil, nil, fmt.Errorf("engine: training data has no rows")
	}

	work := train
	fitted := make([]steps.FittedStep, 0, len(list))
	for i, st := range list {
		ctx := steps.Context{Schema: work.Schema(), Roles: roles}
		fs, err := st.Fit(work, ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("fit step %d (%s): %w", i+1, st.Kind(), err)
		}
		work, err = fs.Apply(work)
		if err != nil {
			return nil, nil, fmt.Errorf("fit step %d (%s): %w", i+1, st.Kind(), err)
		}
		logger.Debug("fitted step",
			"index", i+1,
			"kind", st.Kind(),
			"columns", fs.Columns(),
			"width", work.Cols())
		fitted = append(fitted, fs)
	}
	return fitted, work, nil
}

// Apply replays fitted steps in order against ds, using only the
// statistics captured during Fit. ds is never mutated.
func Apply(ds *domain.Dataset, fitted []steps.FittedStep) (*domain.Dataset, error) {
	work := ds
	for i, fs := range fitted {
		var err error
		work, err = fs.Apply(work)
		if err != nil {
			return nil, fmt.Errorf("apply step %d (%s): %w", i+1, fs.Kind(), err)
		}
	}
	return work, nil
}
