package stdb

import (
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"github.com/samber/lo"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// QuoteIdent leaves plain identifiers untouched and double-quotes anything else.
func QuoteIdent(name string) string {
	if identifierPattern.MatchString(name) {
		return name
	}
	return pq.QuoteIdentifier(name)
}

// sortedKeys gives map-driven statements a stable column order.
func sortedKeys(m map[string]any) []string {
	keys := lo.Keys(m)
	slices.Sort(keys)
	return keys
}

func assignments(m map[string]any) ([]string, []any) {
	keys := sortedKeys(m)
	pairs := make([]string, 0, len(keys))
	params := make([]any, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, QuoteIdent(k)+" = ?")
		params = append(params, m[k])
	}
	return pairs, params
}

// BuildSelect returns a paged SELECT over a whole table.
func BuildSelect(table string, limit, offset int) (string, error) {
	if strings.TrimSpace(table) == "" {
		return "", ErrTableRequired
	}
	return fmt.Sprintf("SELECT * FROM %s LIMIT %d OFFSET %d", QuoteIdent(table), limit, offset), nil
}

// BuildSelectWhere returns a SELECT of the rows matching every where column.
func BuildSelectWhere(table string, where map[string]any, limit int) (string, []any, error) {
	if strings.TrimSpace(table) == "" {
		return "", nil, ErrTableRequired
	}
	if len(where) == 0 {
		return "", nil, ErrEmptyWhere
	}

	pairs, params := assignments(where)
	sql := "SELECT * FROM " + QuoteIdent(table) + " WHERE " + strings.Join(pairs, " AND ")
	if limit > 0 {
		sql += " LIMIT " + strconv.Itoa(limit)
	}
	return sql, params, nil
}

// BuildInsert returns an INSERT with one placeholder per column.
func BuildInsert(table string, data map[string]any) (string, []any, error) {
	if strings.TrimSpace(table) == "" {
		return "", nil, ErrTableRequired
	}
	if len(data) == 0 {
		return "", nil, ErrEmptyData
	}

	keys := sortedKeys(data)
	columns := lo.Map(keys, func(k string, _ int) string { return QuoteIdent(k) })
	placeholders := lo.Map(keys, func(string, int) string { return "?" })
	params := lo.Map(keys, func(k string, _ int) any { return data[k] })

	sql := "INSERT INTO " + QuoteIdent(table) +
		" (" + strings.Join(columns, ", ") + ")" +
		" VALUES (" + strings.Join(placeholders, ", ") + ")"
	return sql, params, nil
}

// BuildUpdate returns an UPDATE; params are the SET values followed by the WHERE values.
func BuildUpdate(table string, data, where map[string]any) (string, []any, error) {
	if strings.TrimSpace(table) == "" {
		return "", nil, ErrTableRequired
	}
	if len(data) == 0 {
		return "", nil, ErrEmptyData
	}
	if len(where) == 0 {
		return "", nil, ErrEmptyWhere
	}

	setPairs, setParams := assignments(data)
	wherePairs, whereParams := assignments(where)

	sql := "UPDATE " + QuoteIdent(table) +
		" SET " + strings.Join(setPairs, ", ") +
		" WHERE " + strings.Join(wherePairs, " AND ")
	return sql, append(setParams, whereParams...), nil
}

// BuildDelete returns a DELETE restricted by every where column.
func BuildDelete(table string, where map[string]any) (string, []any, error) {
	if strings.TrimSpace(table) == "" {
		return "", nil, ErrTableRequired
	}
	if len(where) == 0 {
		return "", nil, ErrEmptyWhere
	}

	pairs, params := assignments(where)
	return "DELETE FROM " + QuoteIdent(table) + " WHERE " + strings.Join(pairs, " AND "), params, nil
}

// RenderLiteral renders a parameter value as a SQL literal.
func RenderLiteral(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	case string:
		return pq.QuoteLiteral(val)
	case json.Number:
		return val.String()
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return pq.QuoteLiteral(fmt.Sprint(val))
		}
		return pq.QuoteLiteral(string(b))
	}
}

// Inline substitutes every ? placeholder outside string literals with the
// matching parameter. It is used for previews only; statements sent to the
// service always carry their params separately.
func Inline(sql string, params []any) string {
	var b strings.Builder
	inString := false
	next := 0

	for _, r := range sql {
		switch {
		case r == '\'':
			inString = !inString
			b.WriteRune(r)
		case r == '?' && !inString && next < len(params):
			b.WriteString(RenderLiteral(params[next]))
			next++
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
