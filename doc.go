/*
Package espalier is a declarative feature-engineering library for
tabular data: an ordered sequence of transformation steps ("a recipe")
with a two-phase fit/apply lifecycle.

# Concept

A recipe separates what to do from when it is computed. Steps are
declared up front against a schema and a role assignment (one outcome
column, the rest predictors); nothing executes until the recipe is
fitted against training data. Fitting walks the steps in order, learns
each step's statistics from the columns its selector matches at that
point, and materializes the step's outputs so later steps see the
evolving column set. The result is an immutable fitted snapshot that
replays those statistics, unchanged, against any schema-compatible
dataset.

That split is the correctness contract: category sets, spline knots and
scaling constants come from the training fit only, so held-out data is
transformed exactly as the training data was, with no leakage.

# Usage

	train, test, _ := sample.Split(ds, 0.8, sample.WithSeed(502))

	r, err := recipe.Formula(train.Schema(), "Sale_Price ~ .")
	if err != nil {
		log.Fatal(err)
	}
	r.Log(selector.Cols("Gr_Liv_Area"), 10).
		Other(selector.Cols("Neighborhood"), 0.01).
		Dummy(selector.AllNominal()).
		Interact(selector.Cols("Gr_Liv_Area"), selector.StartsWith("Bldg_Type_")).
		NaturalSpline(selector.Cols("Latitude"), 20)

	fitted, err := r.Fit(train)
	if err != nil {
		log.Fatal(err)
	}
	baked, err := fitted.Apply(test)

Fitted recipes serialize to JSON, persist through the memory or redis
stores, and can be served over HTTP (see pkg/adapters). The espalier
CLI wraps the same operations for CSV files and YAML recipe
definitions.
*/
package espalier
