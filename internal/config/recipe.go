// Package config loads declarative recipe definitions from YAML.
//
// A definition names the roles and the ordered step list:
//
//	version: 1
//	roles:
//	  outcome: Sale_Price
//	steps:
//	  - kind: log
//	    columns: [Gr_Liv_Area, Sale_Price]
//	    base: 10
//	  - kind: other
//	    select: all_nominal
//	    threshold: 0.01
//	  - kind: dummy
//	    select: all_nominal
//	  - kind: interact
//	    left: {columns: [Gr_Liv_Area]}
//	    right: {starts_with: "Bldg_Type_"}
//	  - kind: ns
//	    columns: [Latitude, Longitude]
//	    df: 20
package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/recipe"
	"github.com/aretw0/espalier/pkg/selector"
	"github.com/aretw0/espalier/pkg/steps"
)

const supportedVersion = 1

// File is the top-level YAML document.
type File struct {
	Version int        `yaml:"version"`
	Roles   RolesSpec  `yaml:"roles"`
	Formula string     `yaml:"formula"`
	Steps   []StepSpec `yaml:"steps"`
}

// RolesSpec declares the outcome and optional explicit predictor list.
type RolesSpec struct {
	Outcome    string   `yaml:"outcome"`
	Predictors []string `yaml:"predictors"`
}

// StepSpec is one step entry: a kind plus its kind-specific keys.
type StepSpec struct {
	Kind   string         `yaml:"kind"`
	Config map[string]any `yaml:",inline"`
}

// LoadFile reads and parses a recipe definition.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if f.Version != supportedVersion {
		return nil, fmt.Errorf("%s: unsupported recipe version %d", path, f.Version)
	}
	if f.Formula == "" && f.Roles.Outcome == "" {
		return nil, fmt.Errorf("%s: missing roles.outcome or formula", path)
	}
	return &f, nil
}

// Build resolves the definition against a dataset schema into an
// unfitted recipe.
func (f *File) Build(schema domain.Schema) (*recipe.Recipe, error) {
	var r *recipe.Recipe
	var err error
	if f.Formula != "" {
		r, err = recipe.Formula(schema, f.Formula)
	} else {
		r, err = recipe.New(schema, f.Roles.Outcome, f.Roles.Predictors...)
	}
	if err != nil {
		return nil, err
	}
	for i, spec := range f.Steps {
		st, err := buildStep(spec)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		r.Step(st)
	}
	return r, nil
}

// selectorSpec is the YAML form of a column selector. Exactly one of
// the fields should be set; columns wins when several are.
type selectorSpec struct {
	Columns    []string `mapstructure:"columns"`
	StartsWith string   `mapstructure:"starts_with"`
	Select     string   `mapstructure:"select"`
}

func (s selectorSpec) build() (selector.Selector, error) {
	switch {
	case len(s.Columns) > 0:
		return selector.Cols(s.Columns...), nil
	case s.StartsWith != "":
		return selector.StartsWith(s.StartsWith), nil
	case s.Select != "":
		switch s.Select {
		case "all_nominal":
			return selector.AllNominal(), nil
		case "all_numeric":
			return selector.AllNumeric(), nil
		case "all_predictors":
			return selector.AllPredictors(), nil
		case "all_nominal_predictors":
			return selector.And(selector.AllNominal(), selector.AllPredictors()), nil
		case "all_numeric_predictors":
			return selector.And(selector.AllNumeric(), selector.AllPredictors()), nil
		default:
			return nil, fmt.Errorf("unknown selector %q", s.Select)
		}
	default:
		return nil, fmt.Errorf("missing selector (columns, starts_with or select)")
	}
}

func decodeConfig(raw map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

func buildStep(spec StepSpec) (steps.Step, error) {
	switch spec.Kind {
	case steps.KindLog:
		var cfg struct {
			selectorSpec `mapstructure:",squash"`
			Base         float64 `mapstructure:"base"`
		}
		if err := decodeConfig(spec.Config, &cfg); err != nil {
			return nil, err
		}
		sel, err := cfg.build()
		if err != nil {
			return nil, err
		}
		return steps.Log{Sel: sel, Base: cfg.Base}, nil

	case steps.KindOther:
		var cfg struct {
			selectorSpec `mapstructure:",squash"`
			Threshold    float64 `mapstructure:"threshold"`
			Label        string  `mapstructure:"label"`
		}
		if err := decodeConfig(spec.Config, &cfg); err != nil {
			return nil, err
		}
		sel, err := cfg.build()
		if err != nil {
			return nil, err
		}
		return steps.Other{Sel: sel, Threshold: cfg.Threshold, Label: cfg.Label}, nil

	case steps.KindDummy:
		var cfg selectorSpec
		if err := decodeConfig(spec.Config, &cfg); err != nil {
			return nil, err
		}
		sel, err := cfg.build()
		if err != nil {
			return nil, err
		}
		return steps.Dummy{Sel: sel}, nil

	case steps.KindInteract:
		var cfg struct {
			Left  selectorSpec `mapstructure:"left"`
			Right selectorSpec `mapstructure:"right"`
		}
		if err := decodeConfig(spec.Config, &cfg); err != nil {
			return nil, err
		}
		left, err := cfg.Left.build()
		if err != nil {
			return nil, fmt.Errorf("left: %w", err)
		}
		right, err := cfg.Right.build()
		if err != nil {
			return nil, fmt.Errorf("right: %w", err)
		}
		return steps.Interact{Left: left, Right: right}, nil

	case steps.KindSpline:
		var cfg struct {
			selectorSpec `mapstructure:",squash"`
			DF           int `mapstructure:"df"`
		}
		if err := decodeConfig(spec.Config, &cfg); err != nil {
			return nil, err
		}
		sel, err := cfg.build()
		if err != nil {
			return nil, err
		}
		return steps.NaturalSpline{Sel: sel, DF: cfg.DF}, nil

	case steps.KindCenter:
		var cfg selectorSpec
		if err := decodeConfig(spec.Config, &cfg); err != nil {
			return nil, err
		}
		sel, err := cfg.build()
		if err != nil {
			return nil, err
		}
		return steps.Center{Sel: sel}, nil

	case steps.KindScale:
		var cfg selectorSpec
		if err := decodeConfig(spec.Config, &cfg); err != nil {
			return nil, err
		}
		sel, err := cfg.build()
		if err != nil {
			return nil, err
		}
		return steps.Scale{Sel: sel}, nil

	default:
		return nil, fmt.Errorf("unsupported step kind %q", spec.Kind)
	}
}
