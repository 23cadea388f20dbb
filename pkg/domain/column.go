package domain

import "fmt"

// ColumnType identifies the value kind of a column.
type ColumnType string

const (
	// Numeric columns hold float64 values.
	Numeric ColumnType = "numeric"
	// Nominal columns hold string levels (categorical data).
	Nominal ColumnType = "nominal"
)

// ParseColumnType converts a type name into a ColumnType.
func ParseColumnType(s string) (ColumnType, error) {
	switch ColumnType(s) {
	case Numeric, Nominal:
		return ColumnType(s), nil
	default:
		return "", fmt.Errorf("unsupported column type: %s", s)
	}
}

// Column is a single named, typed column of values.
// Exactly one of Float/Str is populated, matching Type.
type Column struct {
	Name  string
	Type  ColumnType
	Float []float64
	Str   []string
}

// NumCol builds a numeric column.
func NumCol(name string, values []float64) Column {
	return Column{Name: name, Type: Numeric, Float: values}
}

// StrCol builds a nominal column.
func StrCol(name string, values []string) Column {
	return Column{Name: name, Type: Nominal, Str: values}
}

// Len returns the number of observations in the column.
func (c Column) Len() int {
	if c.Type == Numeric {
		return len(c.Float)
	}
	return len(c.Str)
}

// Field is the schema entry for a column: its name and type, without values.
type Field struct {
	Name string
	Type ColumnType
}

// Schema is the ordered list of fields of a dataset.
type Schema []Field

// Has reports whether the schema contains a field with the given name.
func (s Schema) Has(name string) bool {
	_, ok := s.Type(name)
	return ok
}

// Type returns the type of the named field.
func (s Schema) Type(name string) (ColumnType, bool) {
	for _, f := range s {
		if f.Name == name {
			return f.Type, true
		}
	}
	return "", false
}

// Names returns the field names in schema order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}
