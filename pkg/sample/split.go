// Package sample provides train/test splitting of datasets.
package sample

import (
	"fmt"
	"math/rand"

	"github.com/aretw0/espalier/pkg/domain"
)

type config struct {
	seed     int64
	seeded   bool
	stratify string
}

// Option configures a split.
type Option func(*config)

// WithSeed makes the split reproducible.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.seed = seed
		c.seeded = true
	}
}

// WithStratify splits within each level of the named nominal column,
// so train and test keep roughly the level proportions of the input.
// The tail of a skewed outcome is the usual reason to want this.
func WithStratify(column string) Option {
	return func(c *config) {
		c.stratify = column
	}
}

// Split partitions ds into train and test by row, with trainFraction
// of rows (rounded down per stratum) going to train. Rows are copied;
// the input dataset is not mutated.
func Split(ds *domain.Dataset, trainFraction float64, opts ...Option) (train, test *domain.Dataset, err error) {
	if trainFraction <= 0 || trainFraction >= 1 {
		return nil, nil, fmt.Errorf("sample: train fraction %g outside (0,1)", trainFraction)
	}
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	rng := rand.New(rand.NewSource(cfg.seed))
	if !cfg.seeded {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	strata, err := strataIndices(ds, cfg.stratify)
	if err != nil {
		return nil, nil, err
	}

	var trainRows, testRows []int
	for _, rows := range strata {
		rng.Shuffle(len(rows), func(i, j int) {
			rows[i], rows[j] = rows[j], rows[i]
		})
		cut := int(trainFraction * float64(len(rows)))
		trainRows = append(trainRows, rows[:cut]...)
		testRows = append(testRows, rows[cut:]...)
	}

	train, err = ds.Subset(trainRows)
	if err != nil {
		return nil, nil, err
	}
	test, err = ds.Subset(testRows)
	if err != nil {
		return nil, nil, err
	}
	return train, test, nil
}

// strataIndices groups row indices by stratification level, or returns
// a single stratum with every row when no column is given.
func strataIndices(ds *domain.Dataset, column string) ([][]int, error) {
	n := ds.Rows()
	if column == "" {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return [][]int{all}, nil
	}
	vals, err := ds.Nominal(column)
	if err != nil {
		return nil, err
	}
	byLevel := make(map[string][]int)
	var order []string
	for i, v := range vals {
		if _, seen := byLevel[v]; !seen {
			order = append(order, v)
		}
		byLevel[v] = append(byLevel[v], i)
	}
	out := make([][]int, len(order))
	for i, level := range order {
		out[i] = byLevel[level]
	}
	return out, nil
}
