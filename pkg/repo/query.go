package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Tx is the subset of pgx.Tx repositories rely on. Both pgxpool.Pool and
// pgx.Tx satisfy it, so the same repository code runs inside and outside
// explicit transactions.
type Tx interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Join concatenates non-empty SQL fragments with a single space.
func Join(parts ...string) string {
	filtered := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			filtered = append(filtered, p)
		}
	}
	return strings.Join(filtered, " ")
}

// JoinWhere builds a WHERE clause AND-ing the given conditions. Returns ""
// when there are no conditions.
func JoinWhere(conditions ...string) string {
	if len(conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(conditions, " AND ")
}

func FormatLimitOffset(limit, offset int) string {
	if limit > 0 && offset > 0 {
		return fmt.Sprintf("LIMIT %d OFFSET %d", limit, offset)
	}
	if limit > 0 {
		return fmt.Sprintf("LIMIT %d", limit)
	}
	if offset > 0 {
		return fmt.Sprintf("OFFSET %d", offset)
	}
	return ""
}

// Insert builds an INSERT statement with positional placeholders for the
// given columns, optionally returning a column.
func Insert(table string, fields []string, returning ...string) string {
	placeholders := make([]string, len(fields))
	for i := range fields {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	q := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
	)
	if len(returning) > 0 {
		q += " RETURNING " + strings.Join(returning, ", ")
	}
	return q
}

// Update builds an UPDATE statement assigning positional placeholders to the
// given columns. The where clause may reference placeholders after the last
// field placeholder.
func Update(table string, fields []string, where string) string {
	assignments := make([]string, len(fields))
	for i, f := range fields {
		assignments[i] = fmt.Sprintf("%s = $%d", f, i+1)
	}
	q := fmt.Sprintf("UPDATE %s SET %s", table, strings.Join(assignments, ", "))
	if where != "" {
		q += " WHERE " + where
	}
	return q
}

func Exists(base string) string {
	return fmt.Sprintf("SELECT EXISTS (%s)", base)
}

// BatchInsertQueryN appends N value tuples to an "INSERT INTO ... VALUES"
// prefix and flattens the tuples into a single argument slice.
func BatchInsertQueryN(prefix string, values [][]any) (string, []any) {
	if len(values) == 0 {
		return prefix, nil
	}
	width := len(values[0])
	tuples := make([]string, 0, len(values))
	args := make([]any, 0, len(values)*width)
	for i, row := range values {
		placeholders := make([]string, width)
		for j := range row {
			placeholders[j] = fmt.Sprintf("$%d", i*width+j+1)
		}
		tuples = append(tuples, "("+strings.Join(placeholders, ", ")+")")
		args = append(args, row...)
	}
	return prefix + " " + strings.Join(tuples, ", "), args
}
