package domain

// Role classifies a column for recipe purposes.
type Role string

const (
	// RoleOutcome marks the single response column.
	RoleOutcome Role = "outcome"
	// RolePredictor marks columns that steps may transform.
	RolePredictor Role = "predictor"
	// RoleIgnored marks columns carried through untouched and never
	// matched by role-aware selectors.
	RoleIgnored Role = "ignored"
)

// Roles is the resolved role assignment of a recipe.
// Columns created by steps inherit RolePredictor.
type Roles struct {
	Outcome string
	byName  map[string]Role
}

// NewRoles resolves a role assignment against a schema.
// outcome must name a column in the schema. predictors lists the
// predictor columns; when empty, every non-outcome column is a
// predictor. Columns in the schema that are neither outcome nor listed
// predictors are ignored.
func NewRoles(schema Schema, outcome string, predictors ...string) (Roles, error) {
	if !schema.Has(outcome) {
		return Roles{}, &SchemaError{Column: outcome, Reason: "outcome column not in schema"}
	}
	r := Roles{Outcome: outcome, byName: make(map[string]Role, len(schema))}
	r.byName[outcome] = RoleOutcome

	if len(predictors) == 0 {
		for _, f := range schema {
			if f.Name != outcome {
				r.byName[f.Name] = RolePredictor
			}
		}
	} else {
		for _, p := range predictors {
			if !schema.Has(p) {
				return Roles{}, &SchemaError{Column: p, Reason: "predictor column not in schema"}
			}
			if p == outcome {
				return Roles{}, &SchemaError{Column: p, Reason: "column cannot be both outcome and predictor"}
			}
			r.byName[p] = RolePredictor
		}
		for _, f := range schema {
			if _, assigned := r.byName[f.Name]; !assigned {
				r.byName[f.Name] = RoleIgnored
			}
		}
	}
	if len(r.byName) < 2 {
		return Roles{}, &SchemaError{Column: outcome, Reason: "predictor specification resolves to zero columns"}
	}
	return r, nil
}

// Of returns the role of a column. Columns unknown to the assignment
// (created by steps after definition) are predictors.
func (r Roles) Of(name string) Role {
	if role, ok := r.byName[name]; ok {
		return role
	}
	return RolePredictor
}

// Predictors returns the defined predictor columns in schema-independent
// map order; callers needing determinism should intersect with a schema.
func (r Roles) Predictors() []string {
	out := make([]string, 0, len(r.byName))
	for name, role := range r.byName {
		if role == RolePredictor {
			out = append(out, name)
		}
	}
	return out
}

// Map returns a copy of the full name-to-role mapping.
func (r Roles) Map() map[string]Role {
	out := make(map[string]Role, len(r.byName))
	for k, v := range r.byName {
		out[k] = v
	}
	return out
}

// FromMap rebuilds a role assignment from a serialized mapping.
func FromMap(outcome string, m map[string]Role) Roles {
	byName := make(map[string]Role, len(m))
	for k, v := range m {
		byName[k] = v
	}
	return Roles{Outcome: outcome, byName: byName}
}
