// Package selector provides pure predicates over column metadata.
//
// Selectors never touch column values; they decide, from a snapshot of
// the working schema and the role assignment, which columns a step acts
// on. The engine re-evaluates each step's selector against the evolving
// column set at the moment that step fits, so selectors like AllNominal
// see columns created or replaced by earlier steps.
package selector

import (
	"fmt"
	"strings"

	"github.com/aretw0/espalier/pkg/domain"
)

// Info is the metadata snapshot a selector sees for one column.
type Info struct {
	Name string
	Type domain.ColumnType
	Role domain.Role
}

// Selector decides which columns a step acts on.
// Implementations must be pure: same Info in, same answer out.
type Selector interface {
	// Matches reports whether the column should be selected.
	Matches(info Info) bool
	// Describe returns a short human-readable form for error messages
	// and recipe summaries, e.g. `all_nominal` or `cols(Gr_Liv_Area)`.
	Describe() string
}

// Resolve evaluates sel against a schema and role assignment, returning
// matched column names in schema order.
func Resolve(sel Selector, schema domain.Schema, roles domain.Roles) []string {
	var out []string
	for _, f := range schema {
		info := Info{Name: f.Name, Type: f.Type, Role: roles.Of(f.Name)}
		if sel.Matches(info) {
			out = append(out, f.Name)
		}
	}
	return out
}

type funcSelector struct {
	desc string
	fn   func(Info) bool
}

func (s funcSelector) Matches(info Info) bool { return s.fn(info) }
func (s funcSelector) Describe() string       { return s.desc }

// Func wraps a predicate function as a Selector.
func Func(desc string, fn func(Info) bool) Selector {
	return funcSelector{desc: desc, fn: fn}
}

// Cols selects columns by exact name, regardless of type or role.
func Cols(names ...string) Selector {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return Func(fmt.Sprintf("cols(%s)", strings.Join(names, ",")), func(info Info) bool {
		return set[info.Name]
	})
}

// AllNominal selects every nominal column that is not ignored.
func AllNominal() Selector {
	return Func("all_nominal", func(info Info) bool {
		return info.Type == domain.Nominal && info.Role != domain.RoleIgnored
	})
}

// AllNumeric selects every numeric column that is not ignored,
// including the outcome.
func AllNumeric() Selector {
	return Func("all_numeric", func(info Info) bool {
		return info.Type == domain.Numeric && info.Role != domain.RoleIgnored
	})
}

// AllPredictors selects every predictor column of any type.
func AllPredictors() Selector {
	return Func("all_predictors", func(info Info) bool {
		return info.Role == domain.RolePredictor
	})
}

// StartsWith selects columns whose name begins with prefix. Useful for
// matching indicator columns created by an upstream encoding step.
func StartsWith(prefix string) Selector {
	return Func(fmt.Sprintf("starts_with(%q)", prefix), func(info Info) bool {
		return strings.HasPrefix(info.Name, prefix)
	})
}

// Not inverts a selector.
func Not(sel Selector) Selector {
	return Func(fmt.Sprintf("not(%s)", sel.Describe()), func(info Info) bool {
		return !sel.Matches(info)
	})
}

// And selects columns matched by every given selector.
func And(sels ...Selector) Selector {
	descs := make([]string, len(sels))
	for i, s := range sels {
		descs[i] = s.Describe()
	}
	return Func(strings.Join(descs, " & "), func(info Info) bool {
		for _, s := range sels {
			if !s.Matches(info) {
				return false
			}
		}
		return true
	})
}
