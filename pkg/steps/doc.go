// Package steps defines the transformation step kinds a recipe can
// carry and their two-phase fit/apply contract.
//
// A Step is a declarative descriptor: a selector plus configuration,
// with nothing computed. Fitting a step against a training dataset
// resolves its selector against the working schema at that point in the
// recipe, learns whatever statistics the step needs, and returns an
// immutable FittedStep. Applying a FittedStep replays those statistics
// against any schema-compatible dataset; it never recomputes them.
//
// Every Apply implementation is pure: given the same fitted state and
// input dataset it produces the same output, and it mutates neither.
package steps
