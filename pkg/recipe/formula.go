package recipe

import (
	"fmt"
	"strings"

	"github.com/aretw0/espalier/pkg/domain"
)

// Formula defines a recipe from a formula-like specification:
//
//	"Sale_Price ~ ."                    every other column is a predictor
//	"Sale_Price ~ Longitude + Latitude" only the listed columns
//	"Sale_Price ~ . - Misc_Feature"     all but the subtracted columns
//
// The left side names the outcome; the right side selects predictors.
func Formula(schema domain.Schema, formula string) (*Recipe, error) {
	parts := strings.SplitN(formula, "~", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("formula %q: expected outcome ~ predictors", formula)
	}
	outcome := strings.TrimSpace(parts[0])
	if outcome == "" {
		return nil, fmt.Errorf("formula %q: missing outcome", formula)
	}

	include, exclude, dot, err := parseTerms(parts[1])
	if err != nil {
		return nil, fmt.Errorf("formula %q: %w", formula, err)
	}

	var predictors []string
	switch {
	case dot && len(exclude) == 0:
		// "y ~ ." is the default role assignment.
	case dot:
		for _, f := range schema {
			if f.Name == outcome || exclude[f.Name] {
				continue
			}
			predictors = append(predictors, f.Name)
		}
		if len(predictors) == 0 {
			return nil, &domain.SchemaError{Column: outcome, Reason: "predictor specification resolves to zero columns"}
		}
	default:
		predictors = include
	}
	return New(schema, outcome, predictors...)
}

// parseTerms splits the right side of a formula into included names,
// excluded names, and whether the "." wildcard appeared.
func parseTerms(rhs string) (include []string, exclude map[string]bool, dot bool, err error) {
	exclude = make(map[string]bool)
	sign := "+"
	for _, tok := range strings.Fields(rhs) {
		switch tok {
		case "+", "-":
			sign = tok
			continue
		}
		// Allow "a+b" without spaces.
		for _, piece := range splitSigned(tok) {
			name := piece.name
			if piece.sign != "" {
				sign = piece.sign
			}
			if name == "" {
				continue
			}
			if name == "." {
				if sign == "-" {
					return nil, nil, false, fmt.Errorf("cannot subtract %q", ".")
				}
				dot = true
				continue
			}
			if sign == "-" {
				exclude[name] = true
			} else {
				include = append(include, name)
			}
		}
		sign = "+"
	}
	if !dot && len(exclude) > 0 {
		return nil, nil, false, fmt.Errorf("subtraction requires the %q wildcard", ".")
	}
	if !dot && len(include) == 0 {
		return nil, nil, false, fmt.Errorf("no predictor terms")
	}
	return include, exclude, dot, nil
}

type signedTerm struct {
	sign string
	name string
}

func splitSigned(tok string) []signedTerm {
	var out []signedTerm
	cur := signedTerm{}
	for _, r := range tok {
		switch r {
		case '+', '-':
			out = append(out, cur)
			cur = signedTerm{sign: string(r)}
		default:
			cur.name += string(r)
		}
	}
	out = append(out, cur)
	return out
}
