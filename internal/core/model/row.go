package model

// RawRow maps a column name to its cell value. A missing key means the value
// is absent.
type RawRow map[string]string

// Clone returns a shallow copy of the row.
func (r RawRow) Clone() RawRow {
	out := make(RawRow, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Has reports whether the row carries a non-empty value for column.
func (r RawRow) Has(column string) bool {
	v, ok := r[column]
	return ok && v != ""
}

// NormalizedRow is a row whose Date holds an epoch-millisecond string and
// whose value column uses the canonical metric name.
type NormalizedRow struct {
	Row     RawRow     `json:"row"`
	Columns []string   `json:"columns"`
	Type    MetricKind `json:"type"`
}

// Value returns the row's metric value and whether it was present.
func (n NormalizedRow) Value() (string, bool) {
	v, ok := n.Row[n.Type.Column()]
	return v, ok
}

// CloneColumns returns a copy of a column list.
func CloneColumns(columns []string) []string {
	out := make([]string, len(columns))
	copy(out, columns)
	return out
}
