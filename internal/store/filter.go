package store

import (
	"fmt"
	"strings"
)

// Query builds a parameterized list query from optional filters. Each present
// filter appends one AND clause with the next placeholder index; absent
// (empty) values contribute nothing. Values only ever travel through the
// args slice, never into the SQL text.
type Query struct {
	sql  strings.Builder
	args []any
}

// NewQuery starts from a base SELECT that already ends in a WHERE clause
// (e.g. `... WHERE 1=1` or `... WHERE a.user_id = $1`). Any args bound by
// the base are passed here so placeholder numbering continues after them.
func NewQuery(base string, args ...any) *Query {
	q := &Query{args: args}
	q.sql.WriteString(base)
	return q
}

// Eq appends an equality filter when val is present. The column name must be
// a literal, never caller input.
func (q *Query) Eq(column, val string) *Query {
	if val == "" {
		return q
	}
	q.args = append(q.args, val)
	fmt.Fprintf(&q.sql, " AND %s = $%d", column, len(q.args))
	return q
}

// Search appends a case-insensitive substring match of term against one or
// more columns, all sharing a single bound parameter.
func (q *Query) Search(term string, columns ...string) *Query {
	if term == "" || len(columns) == 0 {
		return q
	}
	q.args = append(q.args, "%"+term+"%")
	n := len(q.args)
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = fmt.Sprintf("%s ILIKE $%d", col, n)
	}
	q.sql.WriteString(" AND (" + strings.Join(parts, " OR ") + ")")
	return q
}

// Suffix appends a raw trailing clause (GROUP BY / ORDER BY / LIMIT), fixed
// per endpoint. Always last.
func (q *Query) Suffix(clause string) *Query {
	q.sql.WriteString(" " + clause)
	return q
}

func (q *Query) SQL() string {
	return q.sql.String()
}

func (q *Query) Args() []any {
	return q.args
}
