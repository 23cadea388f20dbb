// Package domain defines the core vocabulary of espalier: datasets,
// columns, schemas, variable roles, and the typed errors raised by the
// fit/apply lifecycle.
//
// A Dataset is an ordered collection of named, typed columns. Columns are
// either numeric (float64 values) or nominal (string levels). Datasets are
// treated as logically immutable: every transforming operation returns a
// new Dataset and shares untouched column storage with its input. Callers
// must not mutate value slices after handing them to a Dataset.
//
// Roles classify columns for recipe purposes: exactly one outcome, any
// number of predictors, and an optional ignored set. Roles are resolved
// when a recipe is defined; selectors consult them when it is fitted.
package domain
