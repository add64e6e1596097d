package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// args accumulates bind values and hands out $n placeholders in order.
type args struct {
	values []any
}

func (a *args) bind(v any) string {
	a.values = append(a.values, v)
	return "$" + strconv.Itoa(len(a.values))
}

// Condition renders one predicate of a WHERE clause.
type Condition interface {
	render(buf *strings.Builder, a *args)
}

type conditionFunc func(buf *strings.Builder, a *args)

func (f conditionFunc) render(buf *strings.Builder, a *args) { f(buf, a) }

func Eq(column string, value any) Condition {
	return conditionFunc(func(buf *strings.Builder, a *args) {
		buf.WriteString(column + " = " + a.bind(value))
	})
}

// Any matches column against a driver array value, e.g. pq.Array(ids).
func Any(column string, array any) Condition {
	return conditionFunc(func(buf *strings.Builder, a *args) {
		buf.WriteString(column + " = ANY(" + a.bind(array) + ")")
	})
}

func In(column string, values []any) Condition {
	return conditionFunc(func(buf *strings.Builder, a *args) {
		if len(values) == 0 {
			buf.WriteString("1=0")
			return
		}
		marks := make([]string, 0, len(values))
		for _, v := range values {
			marks = append(marks, a.bind(v))
		}
		buf.WriteString(column + " IN (" + strings.Join(marks, ", ") + ")")
	})
}

func IsNull(column string) Condition {
	return conditionFunc(func(buf *strings.Builder, _ *args) {
		buf.WriteString(column + " IS NULL")
	})
}

// Expr renders raw SQL where every '?' is replaced by the next bind value.
func Expr(expr string, values ...any) Condition {
	return conditionFunc(func(buf *strings.Builder, a *args) {
		buf.WriteString(expand(expr, values, a))
	})
}

type SelectBuilder struct {
	columns []string
	table   string
	joins   []string
	where   []Condition
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

func (b *SelectBuilder) Join(clause string) *SelectBuilder {
	b.joins = append(b.joins, clause)
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
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

	var (
		buf strings.Builder
		a   args
	)
	buf.WriteString("SELECT " + strings.Join(b.columns, ", ") + " FROM " + b.table)
	for _, join := range b.joins {
		buf.WriteString(" " + join)
	}
	writeWhere(&buf, b.where, &a)
	if len(b.orderBy) > 0 {
		buf.WriteString(" ORDER BY " + strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		buf.WriteString(" LIMIT " + strconv.Itoa(b.limit))
	}

	return buf.String(), a.values, nil
}

type InsertBuilder struct {
	table     string
	columns   []string
	values    []any
	returning []string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

// Set adds one column/value pair.
func (b *InsertBuilder) Set(column string, value any) *InsertBuilder {
	b.columns = append(b.columns, column)
	b.values = append(b.values, value)
	return b
}

func (b *InsertBuilder) Returning(columns ...string) *InsertBuilder {
	b.returning = append(b.returning, columns...)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}

	var a args
	marks := make([]string, 0, len(b.values))
	for _, v := range b.values {
		marks = append(marks, a.bind(v))
	}

	query := "INSERT INTO " + b.table + " (" + strings.Join(b.columns, ", ") + ") VALUES (" + strings.Join(marks, ", ") + ")"
	if len(b.returning) > 0 {
		query += " RETURNING " + strings.Join(b.returning, ", ")
	}
	return query, a.values, nil
}

type assignment struct {
	column string
	expr   string
	values []any
}

type UpdateBuilder struct {
	table string
	sets  []assignment
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, expr: "?", values: []any{value}})
	return b
}

func (b *UpdateBuilder) SetExpr(column, expr string, values ...any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, expr: expr, values: values})
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

	var (
		buf strings.Builder
		a   args
	)
	buf.WriteString("UPDATE " + b.table + " SET ")
	for i, set := range b.sets {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(set.column + " = " + expand(set.expr, set.values, &a))
	}
	writeWhere(&buf, b.where, &a)

	return buf.String(), a.values, nil
}

func writeWhere(buf *strings.Builder, conditions []Condition, a *args) {
	for i, c := range conditions {
		if i == 0 {
			buf.WriteString(" WHERE ")
		} else {
			buf.WriteString(" AND ")
		}
		c.render(buf, a)
	}
}

func expand(expr string, values []any, a *args) string {
	if len(values) == 0 {
		return expr
	}

	var out strings.Builder
	next := 0
	for _, r := range expr {
		if r == '?' && next < len(values) {
			out.WriteString(a.bind(values[next]))
			next++
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}
