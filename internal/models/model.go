package models

// Kind enumerates the primitive column types the catalog schema uses.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindBool
)

// Field describes one column of an entity: its name, primitive type,
// whether create payloads must carry it, and an optional validator/v10 tag
// expression applied to the coerced value.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	Rules    string
}

// Model is the explicit field-descriptor table for one entity. The generic
// service, repository and schema are all parameterized by it; nothing in the
// dispatch path uses reflection.
type Model struct {
	Table       string
	Fields      []Field
	SearchField string
}

// Record is a row keyed by column name.
type Record map[string]any

const IDColumn = "id"

// Columns returns the declared column names, id first, in declaration order.
func (m *Model) Columns() []string {
	cols := make([]string, 0, len(m.Fields)+1)
	cols = append(cols, IDColumn)

	for _, f := range m.Fields {
		cols = append(cols, f.Name)
	}

	return cols
}

// Field looks up a declared field by column name.
func (m *Model) Field(name string) (Field, bool) {
	for _, f := range m.Fields {
		if f.Name == name {
			return f, true
		}
	}

	return Field{}, false
}

// HasColumn reports whether name is a declared column, including id.
func (m *Model) HasColumn(name string) bool {
	if name == IDColumn {
		return true
	}

	_, ok := m.Field(name)

	return ok
}

// Project restricts rec to the requested columns. With no field list every
// declared column is returned; with one, exactly the requested declared
// columns are returned. Unknown names are dropped. This is the single
// serialization primitive shared by every response path.
func (m *Model) Project(rec Record, fields []string) Record {
	if len(fields) == 0 {
		fields = m.Columns()
	}

	out := make(Record, len(fields))

	for _, name := range fields {
		if !m.HasColumn(name) {
			continue
		}

		out[name] = rec[name]
	}

	return out
}
