package stdb

import (
	"strings"
	"unicode"

	"github.com/samber/lo"
)

var (
	readOnlyKeywords    = []string{"select", "show", "explain", "describe"}
	destructiveKeywords = []string{"drop", "alter", "truncate"}
	mutatingKeywords    = []string{"insert", "update", "delete", "merge", "upsert", "create", "grant", "revoke", "drop", "alter", "truncate"}
)

type word struct {
	text  string
	depth int
}

// scan walks sql outside string literals, quoted identifiers and comments.
// It returns the lower-cased words with their parenthesis depth and the
// offsets of top-level semicolons.
func scan(sql string) (words []word, splits []int) {
	depth := 0
	for i := 0; i < len(sql); {
		c := sql[i]
		switch {
		case c == '-' && i+1 < len(sql) && sql[i+1] == '-':
			end := strings.IndexByte(sql[i:], '\n')
			if end < 0 {
				return words, splits
			}
			i += end + 1
		case c == '/' && i+1 < len(sql) && sql[i+1] == '*':
			end := strings.Index(sql[i+2:], "*/")
			if end < 0 {
				return words, splits
			}
			i += end + 4
		case c == '\'' || c == '"':
			i = skipQuoted(sql, i, c)
		case c == '(':
			depth++
			i++
		case c == ')':
			if depth > 0 {
				depth--
			}
			i++
		case c == ';':
			if depth == 0 {
				splits = append(splits, i)
			}
			i++
		case isWordByte(c):
			start := i
			for i < len(sql) && isWordByte(sql[i]) {
				i++
			}
			words = append(words, word{text: strings.ToLower(sql[start:i]), depth: depth})
		default:
			i++
		}
	}
	return words, splits
}

// skipQuoted returns the offset just past the quoted span opening at i. A
// doubled quote is an escaped quote.
func skipQuoted(sql string, i int, quote byte) int {
	for j := i + 1; j < len(sql); j++ {
		if sql[j] != quote {
			continue
		}
		if j+1 < len(sql) && sql[j+1] == quote {
			j++
			continue
		}
		return j + 1
	}
	return len(sql)
}

func isWordByte(c byte) bool {
	return c == '_' || c >= 0x80 || unicode.IsLetter(rune(c)) || unicode.IsDigit(rune(c))
}

// Keyword returns the lower-cased leading keyword of a statement, skipping
// whitespace and comments.
func Keyword(sql string) string {
	words, _ := scan(sql)
	if len(words) == 0 {
		return ""
	}
	return words[0].text
}

// mainKeyword is Keyword, except that a WITH statement is classified by the
// first statement keyword after its common table expressions.
func mainKeyword(words []word) string {
	if len(words) == 0 {
		return ""
	}
	if words[0].text != "with" {
		return words[0].text
	}
	for _, w := range words[1:] {
		if w.depth == 0 && (w.text == "select" || lo.Contains(mutatingKeywords, w.text)) {
			return w.text
		}
	}
	return "with"
}

// Statements splits a script on semicolons outside string literals and
// comments and drops empty statements.
func Statements(sql string) []string {
	_, splits := scan(sql)

	var out []string
	start := 0
	for _, at := range splits {
		out = append(out, sql[start:at])
		start = at + 1
	}
	out = append(out, sql[start:])

	return lo.Filter(lo.Map(out, func(s string, _ int) string { return strings.TrimSpace(s) }),
		func(s string, _ int) bool { return Keyword(s) != "" })
}

// IsReadOnly reports whether every statement of sql only reads data.
func IsReadOnly(sql string) bool {
	stmts := Statements(sql)
	if len(stmts) == 0 {
		return false
	}
	return lo.EveryBy(stmts, func(s string) bool {
		words, _ := scan(s)
		if !lo.Contains(readOnlyKeywords, mainKeyword(words)) {
			return false
		}
		if words[0].text != "with" {
			return true
		}
		// a data-modifying CTE can hide inside the parentheses
		return !lo.SomeBy(words, func(w word) bool { return lo.Contains(mutatingKeywords, w.text) })
	})
}

// IsDestructive reports whether any statement of sql drops or alters schema.
func IsDestructive(sql string) bool {
	return lo.SomeBy(Statements(sql), func(s string) bool {
		words, _ := scan(s)
		return lo.Contains(destructiveKeywords, mainKeyword(words))
	})
}
