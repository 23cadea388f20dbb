package espalier

import (
	"log/slog"

	"github.com/aretw0/espalier/internal/config"
	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/loader"
	"github.com/aretw0/espalier/pkg/recipe"
)

// Option configures the high-level loaders.
type Option func(*options)

type options struct {
	logger    *slog.Logger
	naStrings []string
}

// WithLogger sets the structured logger attached to loaded recipes.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithNAStrings overrides the CSV NA markers used by LoadCSV.
func WithNAStrings(markers ...string) Option {
	return func(o *options) { o.naStrings = markers }
}

func buildOptions(opts []Option) options {
	o := options{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// LoadCSV reads a CSV file into a dataset with inferred column types.
func LoadCSV(path string, opts ...Option) (*domain.Dataset, error) {
	o := buildOptions(opts)
	var lopts []loader.Option
	if o.naStrings != nil {
		lopts = append(lopts, loader.WithNAStrings(o.naStrings...))
	}
	return loader.ReadFile(path, lopts...)
}

// LoadRecipe reads a YAML recipe definition and resolves it against a
// dataset schema, returning the unfitted recipe.
func LoadRecipe(path string, schema domain.Schema, opts ...Option) (*recipe.Recipe, error) {
	o := buildOptions(opts)
	f, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}
	r, err := f.Build(schema)
	if err != nil {
		return nil, err
	}
	return r.WithLogger(o.logger), nil
}
