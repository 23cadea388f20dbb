package domain

import (
	"encoding/json"
	"fmt"
)

// columnJSON is the wire form of a Column: type tag plus one value list.
type columnJSON struct {
	Name    string    `json:"name"`
	Type    string    `json:"type"`
	Numeric []float64 `json:"numeric,omitempty"`
	Nominal []string  `json:"nominal,omitempty"`
}

// MarshalJSON serializes the dataset as an ordered list of typed columns.
func (d *Dataset) MarshalJSON() ([]byte, error) {
	out := make([]columnJSON, len(d.cols))
	for i, c := range d.cols {
		cj := columnJSON{Name: c.Name, Type: string(c.Type)}
		switch c.Type {
		case Numeric:
			cj.Numeric = c.Float
		case Nominal:
			cj.Nominal = c.Str
		}
		out[i] = cj
	}
	return json.Marshal(struct {
		Columns []columnJSON `json:"columns"`
	}{Columns: out})
}

// UnmarshalJSON deserializes a dataset from its column list form.
func (d *Dataset) UnmarshalJSON(data []byte) error {
	var raw struct {
		Columns []columnJSON `json:"columns"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	cols := make([]Column, 0, len(raw.Columns))
	for _, cj := range raw.Columns {
		typ, err := ParseColumnType(cj.Type)
		if err != nil {
			return fmt.Errorf("column %s: %w", cj.Name, err)
		}
		switch typ {
		case Numeric:
			cols = append(cols, NumCol(cj.Name, cj.Numeric))
		case Nominal:
			cols = append(cols, StrCol(cj.Name, cj.Nominal))
		}
	}
	parsed, err := New(cols...)
	if err != nil {
		return err
	}
	*d = *parsed
	return nil
}
