package domain

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Dataset is an ordered table of named, typed columns.
// The zero value is not usable; construct with New.
type Dataset struct {
	cols  []Column
	index map[string]int
}

// New builds a dataset from the given columns.
// Column names must be unique and all columns must have the same length.
func New(cols ...Column) (*Dataset, error) {
	ds := &Dataset{
		cols:  make([]Column, 0, len(cols)),
		index: make(map[string]int, len(cols)),
	}
	rows := -1
	for _, c := range cols {
		if c.Name == "" {
			return nil, fmt.Errorf("dataset: column with empty name")
		}
		if _, dup := ds.index[c.Name]; dup {
			return nil, fmt.Errorf("dataset: duplicate column %q", c.Name)
		}
		if rows == -1 {
			rows = c.Len()
		} else if c.Len() != rows {
			return nil, fmt.Errorf("dataset: column %q has %d rows, want %d", c.Name, c.Len(), rows)
		}
		ds.index[c.Name] = len(ds.cols)
		ds.cols = append(ds.cols, c)
	}
	return ds, nil
}

// MustNew is New that panics on error. Intended for tests and examples.
func MustNew(cols ...Column) *Dataset {
	ds, err := New(cols...)
	if err != nil {
		panic(err)
	}
	return ds
}

// Rows returns the number of observations.
func (d *Dataset) Rows() int {
	if len(d.cols) == 0 {
		return 0
	}
	return d.cols[0].Len()
}

// Cols returns the number of columns.
func (d *Dataset) Cols() int { return len(d.cols) }

// Names returns the column names in order.
func (d *Dataset) Names() []string {
	names := make([]string, len(d.cols))
	for i, c := range d.cols {
		names[i] = c.Name
	}
	return names
}

// Schema returns the ordered name/type pairs of the dataset.
func (d *Dataset) Schema() Schema {
	s := make(Schema, len(d.cols))
	for i, c := range d.cols {
		s[i] = Field{Name: c.Name, Type: c.Type}
	}
	return s
}

// Column returns the named column.
func (d *Dataset) Column(name string) (Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return Column{}, false
	}
	return d.cols[i], true
}

// Numeric returns the values of a numeric column.
func (d *Dataset) Numeric(name string) ([]float64, error) {
	c, ok := d.Column(name)
	if !ok {
		return nil, &SchemaError{Column: name, Reason: "column not found"}
	}
	if c.Type != Numeric {
		return nil, &SchemaError{Column: name, Reason: fmt.Sprintf("expected numeric, got %s", c.Type)}
	}
	return c.Float, nil
}

// Nominal returns the values of a nominal column.
func (d *Dataset) Nominal(name string) ([]string, error) {
	c, ok := d.Column(name)
	if !ok {
		return nil, &SchemaError{Column: name, Reason: "column not found"}
	}
	if c.Type != Nominal {
		return nil, &SchemaError{Column: name, Reason: fmt.Sprintf("expected nominal, got %s", c.Type)}
	}
	return c.Str, nil
}

// clone returns a shallow copy sharing column storage.
func (d *Dataset) clone() *Dataset {
	out := &Dataset{
		cols:  make([]Column, len(d.cols)),
		index: make(map[string]int, len(d.cols)),
	}
	copy(out.cols, d.cols)
	for k, v := range d.index {
		out.index[k] = v
	}
	return out
}

// WithColumn returns a new dataset with col replacing the same-named
// column in place, or appended if no column with that name exists.
func (d *Dataset) WithColumn(col Column) (*Dataset, error) {
	if col.Len() != d.Rows() && d.Cols() > 0 {
		return nil, fmt.Errorf("dataset: column %q has %d rows, want %d", col.Name, col.Len(), d.Rows())
	}
	out := d.clone()
	if i, ok := out.index[col.Name]; ok {
		out.cols[i] = col
		return out, nil
	}
	out.index[col.Name] = len(out.cols)
	out.cols = append(out.cols, col)
	return out, nil
}

// Splice returns a new dataset with the named column replaced by the
// given columns at its position. Used by steps that expand one input
// column into several output columns (e.g. indicator or spline bases).
func (d *Dataset) Splice(name string, cols ...Column) (*Dataset, error) {
	i, ok := d.index[name]
	if !ok {
		return nil, &SchemaError{Column: name, Reason: "column not found"}
	}
	for _, c := range cols {
		if c.Len() != d.Rows() {
			return nil, fmt.Errorf("dataset: column %q has %d rows, want %d", c.Name, c.Len(), d.Rows())
		}
		if j, exists := d.index[c.Name]; exists && j != i {
			return nil, fmt.Errorf("dataset: duplicate column %q", c.Name)
		}
	}
	next := make([]Column, 0, len(d.cols)-1+len(cols))
	next = append(next, d.cols[:i]...)
	next = append(next, cols...)
	next = append(next, d.cols[i+1:]...)
	return New(next...)
}

// Drop returns a new dataset without the named columns.
// Unknown names are ignored.
func (d *Dataset) Drop(names ...string) *Dataset {
	skip := make(map[string]bool, len(names))
	for _, n := range names {
		skip[n] = true
	}
	kept := make([]Column, 0, len(d.cols))
	for _, c := range d.cols {
		if !skip[c.Name] {
			kept = append(kept, c)
		}
	}
	out, _ := New(kept...)
	return out
}

// Subset returns a new dataset containing only the given row indices,
// in the given order. Column storage is copied, not shared.
func (d *Dataset) Subset(rows []int) (*Dataset, error) {
	n := d.Rows()
	cols := make([]Column, len(d.cols))
	for i, c := range d.cols {
		out := Column{Name: c.Name, Type: c.Type}
		switch c.Type {
		case Numeric:
			out.Float = make([]float64, len(rows))
			for j, r := range rows {
				if r < 0 || r >= n {
					return nil, fmt.Errorf("dataset: row index %d out of range [0,%d)", r, n)
				}
				out.Float[j] = c.Float[r]
			}
		case Nominal:
			out.Str = make([]string, len(rows))
			for j, r := range rows {
				if r < 0 || r >= n {
					return nil, fmt.Errorf("dataset: row index %d out of range [0,%d)", r, n)
				}
				out.Str[j] = c.Str[r]
			}
		}
		cols[i] = out
	}
	return New(cols...)
}

// Matrix exports the named numeric columns as a dense row-major matrix,
// one dataset row per matrix row. With no names it exports every numeric
// column in dataset order. This is the hand-off point to downstream
// modeling code built on gonum.
func (d *Dataset) Matrix(names ...string) (*mat.Dense, error) {
	if len(names) == 0 {
		for _, c := range d.cols {
			if c.Type == Numeric {
				names = append(names, c.Name)
			}
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("dataset: no numeric columns to export")
	}
	rows := d.Rows()
	m := mat.NewDense(rows, len(names), nil)
	for j, name := range names {
		vals, err := d.Numeric(name)
		if err != nil {
			return nil, err
		}
		for i := 0; i < rows; i++ {
			m.Set(i, j, vals[i])
		}
	}
	return m, nil
}
