package querybuilder

import (
	"strconv"
	"strings"
)

// Condition renders one WHERE predicate, appending bound arguments.
type Condition interface {
	appendSQL(w *writer)
}

type writer struct {
	buf  strings.Builder
	args []any
	next int
}

func newWriter() *writer {
	return &writer{next: 1}
}

func (w *writer) bind(value any) {
	w.buf.WriteString("$")
	w.buf.WriteString(strconv.Itoa(w.next))
	w.args = append(w.args, value)
	w.next++
}

// expr writes raw SQL, replacing each '?' with the next bound argument.
func (w *writer) expr(sql string, args []any) {
	used := 0
	for i := 0; i < len(sql); i++ {
		if sql[i] == '?' && used < len(args) {
			w.bind(args[used])
			used++
			continue
		}
		w.buf.WriteByte(sql[i])
	}
}

type compare struct {
	column string
	op     string
	value  any
}

func (c compare) appendSQL(w *writer) {
	w.buf.WriteString(c.column)
	w.buf.WriteString(" ")
	w.buf.WriteString(c.op)
	w.buf.WriteString(" ")
	w.bind(c.value)
}

func Eq(column string, value any) Condition  { return compare{column: column, op: "=", value: value} }
func Lte(column string, value any) Condition { return compare{column: column, op: "<=", value: value} }
func Gte(column string, value any) Condition { return compare{column: column, op: ">=", value: value} }

// ILike matches case-insensitively with a %value% pattern.
func ILike(column, value string) Condition {
	escaped := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(value)
	return compare{column: column, op: "ILIKE", value: "%" + escaped + "%"}
}

type in struct {
	column string
	values []any
}

func In(column string, values []any) Condition {
	return in{column: column, values: values}
}

// InStrings is In for string slices.
func InStrings(column string, values []string) Condition {
	items := make([]any, 0, len(values))
	for _, v := range values {
		items = append(items, v)
	}
	return in{column: column, values: items}
}

func (c in) appendSQL(w *writer) {
	if len(c.values) == 0 {
		w.buf.WriteString("1=0")
		return
	}
	w.buf.WriteString(c.column)
	w.buf.WriteString(" IN (")
	for i, v := range c.values {
		if i > 0 {
			w.buf.WriteString(", ")
		}
		w.bind(v)
	}
	w.buf.WriteString(")")
}

type isNull struct {
	column string
}

func IsNull(column string) Condition {
	return isNull{column: column}
}

func (c isNull) appendSQL(w *writer) {
	w.buf.WriteString(c.column)
	w.buf.WriteString(" IS NULL")
}

type rawExpr struct {
	sql  string
	args []any
}

// Expr is a raw predicate using '?' placeholders.
func Expr(sql string, args ...any) Condition {
	return rawExpr{sql: sql, args: args}
}

func (c rawExpr) appendSQL(w *writer) {
	w.expr(c.sql, c.args)
}

func writeWhere(w *writer, conditions []Condition) {
	if len(conditions) == 0 {
		return
	}
	w.buf.WriteString(" WHERE ")
	for i, c := range conditions {
		if i > 0 {
			w.buf.WriteString(" AND ")
		}
		c.appendSQL(w)
	}
}
