package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// Condition renders one WHERE predicate. Implementations append their SQL
// and bind arguments through the shared writer.
type Condition interface {
	render(w *writer)
}

type writer struct {
	buf  strings.Builder
	args []any
}

func (w *writer) str(s string) {
	w.buf.WriteString(s)
}

func (w *writer) arg(value any) {
	w.args = append(w.args, value)
	w.buf.WriteString("$")
	w.buf.WriteString(strconv.Itoa(len(w.args)))
}

type eq struct {
	column string
	value  any
}

func Eq(column string, value any) Condition { return eq{column: column, value: value} }

func (c eq) render(w *writer) {
	w.str(c.column)
	w.str(" = ")
	w.arg(c.value)
}

type in struct {
	column string
	values []any
}

func In(column string, values []any) Condition {
	return in{column: column, values: values}
}

func InStrings(column string, values []string) Condition {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return in{column: column, values: out}
}

func (c in) render(w *writer) {
	if len(c.values) == 0 {
		w.str("1=0")
		return
	}
	w.str(c.column)
	w.str(" IN (")
	for i, v := range c.values {
		if i > 0 {
			w.str(", ")
		}
		w.arg(v)
	}
	w.str(")")
}

type isNull struct{ column string }

func IsNull(column string) Condition { return isNull{column: column} }

func (c isNull) render(w *writer) {
	w.str(c.column)
	w.str(" IS NULL")
}

type notNull struct{ column string }

func NotNull(column string) Condition { return notNull{column: column} }

func (c notNull) render(w *writer) {
	w.str(c.column)
	w.str(" IS NOT NULL")
}

type expr struct {
	sql  string
	args []any
}

// Expr injects a raw predicate; ? placeholders bind args in order.
func Expr(sql string, args ...any) Condition { return expr{sql: sql, args: args} }

func (c expr) render(w *writer) {
	next := 0
	for i := 0; i < len(c.sql); i++ {
		if c.sql[i] == '?' && next < len(c.args) {
			w.arg(c.args[next])
			next++
			continue
		}
		w.buf.WriteByte(c.sql[i])
	}
}

func renderWhere(w *writer, conditions []Condition) {
	if len(conditions) == 0 {
		return
	}
	w.str(" WHERE ")
	for i, c := range conditions {
		if i > 0 {
			w.str(" AND ")
		}
		c.render(w)
	}
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	groupBy []string
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) GroupBy(parts ...string) *SelectBuilder {
	b.groupBy = append(b.groupBy, parts...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	w := &writer{}
	w.str("SELECT ")
	w.str(strings.Join(b.columns, ", "))
	w.str(" FROM ")
	w.str(b.table)
	renderWhere(w, b.where)
	if len(b.groupBy) > 0 {
		w.str(" GROUP BY ")
		w.str(strings.Join(b.groupBy, ", "))
	}
	if len(b.orderBy) > 0 {
		w.str(" ORDER BY ")
		w.str(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		w.str(" LIMIT ")
		w.str(strconv.Itoa(b.limit))
	}

	return w.buf.String(), w.args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix appends raw SQL after the VALUES list, e.g. an ON CONFLICT clause.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert values are required")
	}

	w := &writer{}
	w.str("INSERT INTO ")
	w.str(b.table)
	w.str(" (")
	w.str(strings.Join(b.columns, ", "))
	w.str(") VALUES ")
	for rowIdx, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", rowIdx, len(row), len(b.columns))
		}
		if rowIdx > 0 {
			w.str(", ")
		}
		w.str("(")
		for colIdx, value := range row {
			if colIdx > 0 {
				w.str(", ")
			}
			w.arg(value)
		}
		w.str(")")
	}
	if b.suffix != "" {
		w.str(" ")
		w.str(b.suffix)
	}

	return w.buf.String(), w.args, nil
}

type UpdateBuilder struct {
	table string
	sets  []Condition
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, eq{column: column, value: value})
	return b
}

func (b *UpdateBuilder) SetExpr(column, sql string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, expr{sql: column + " = " + sql, args: args})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update table is required")
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update sets are required")
	}

	w := &writer{}
	w.str("UPDATE ")
	w.str(b.table)
	w.str(" SET ")
	for i, s := range b.sets {
		if i > 0 {
			w.str(", ")
		}
		s.render(w)
	}
	renderWhere(w, b.where)

	return w.buf.String(), w.args, nil
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("delete table is required")
	}
	if len(b.where) == 0 {
		return "", nil, fmt.Errorf("delete requires at least one condition")
	}

	w := &writer{}
	w.str("DELETE FROM ")
	w.str(b.table)
	renderWhere(w, b.where)

	return w.buf.String(), w.args, nil
}
