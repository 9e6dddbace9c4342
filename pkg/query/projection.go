// Package query builds parameterized Postgres SELECT statements from
// field-name projections, so handlers never splice user input into SQL.
package query

import "strings"

// ProjectionMap ties the exported field names of a domain type to the
// qualified columns of one table. Column order follows Project calls and
// must match the scan order of the row mapper.
type ProjectionMap struct {
	table   string
	alias   string
	byField map[string]string
	ordered []string
}

// NewProjectionMap starts a projection over schema.table aliased as alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		table:   schema + "." + table,
		alias:   alias,
		byField: make(map[string]string),
	}
}

// Project maps field to column.
func (p *ProjectionMap) Project(column, field string) *ProjectionMap {
	qualified := p.alias + "." + column
	p.byField[field] = qualified
	p.ordered = append(p.ordered, qualified)
	return p
}

func (p *ProjectionMap) Alias() string {
	return p.alias
}

// Table returns "schema.table alias".
func (p *ProjectionMap) Table() string {
	return p.table + " " + p.alias
}

// Column returns the qualified column for field. Unmapped names come back
// unchanged, so callers must only pass names they control.
func (p *ProjectionMap) Column(field string) string {
	if col, ok := p.byField[field]; ok {
		return col
	}
	return field
}

// Lookup reports the qualified column for field, if mapped. Use it for
// client-supplied names.
func (p *ProjectionMap) Lookup(field string) (string, bool) {
	col, ok := p.byField[field]
	return col, ok
}

// Columns lists every projected column in declaration order.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.ordered, ", ")
}
