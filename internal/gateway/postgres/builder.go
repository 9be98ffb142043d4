package postgres

import (
	"fmt"
	"strings"

	"github.com/quickdesk/quickdesk/internal/gateway"
)

// buildWhere turns a predicate into a WHERE clause with positional args.
// Unknown keys are rejected rather than silently dropped, so a bad predicate
// cannot widen a result set. A nil predicate value matches SQL NULL.
func buildWhere(predicate gateway.Fields, columns map[string]struct{}) (string, []any, error) {
	if len(predicate) == 0 {
		return "", nil, nil
	}
	clauses := make([]string, 0, len(predicate))
	args := make([]any, 0, len(predicate))
	for key, value := range predicate {
		if _, ok := columns[key]; !ok {
			return "", nil, fmt.Errorf("unknown predicate field %q", key)
		}
		if value == nil {
			clauses = append(clauses, key+" IS NULL")
			continue
		}
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf("%s=$%d", key, len(args)))
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

// buildSet turns an update payload into a SET clause with positional args
// starting after offset existing args.
func buildSet(fields gateway.Fields, columns map[string]struct{}) (string, []any, error) {
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("empty update payload")
	}
	clauses := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields))
	for key, value := range fields {
		if _, ok := columns[key]; !ok {
			return "", nil, fmt.Errorf("unknown update field %q", key)
		}
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf("%s=$%d", key, len(args)))
	}
	return strings.Join(clauses, ", "), args, nil
}

// buildInsert turns a creation payload into column and placeholder lists with
// positional args.
func buildInsert(fields gateway.Fields, columns map[string]struct{}) (string, string, []any, error) {
	if len(fields) == 0 {
		return "", "", nil, fmt.Errorf("empty creation payload")
	}
	cols := make([]string, 0, len(fields))
	placeholders := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields))
	for key, value := range fields {
		if _, ok := columns[key]; !ok {
			return "", "", nil, fmt.Errorf("unknown creation field %q", key)
		}
		args = append(args, value)
		cols = append(cols, key)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}
	return strings.Join(cols, ", "), strings.Join(placeholders, ", "), args, nil
}

// orderBy maps a sort key to an ORDER BY clause. Empty keys produce no
// ordering; unknown keys are ignored the same way.
func orderBy(sortKey string, columns map[string]struct{}) string {
	if sortKey == "" {
		return ""
	}
	direction := "ASC"
	column := sortKey
	if strings.HasPrefix(sortKey, "-") {
		direction = "DESC"
		column = sortKey[1:]
	}
	if _, ok := columns[column]; !ok {
		return ""
	}
	return " ORDER BY " + column + " " + direction
}
