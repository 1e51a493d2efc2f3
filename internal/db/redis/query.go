package redis

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/moviedex/internal/domain/query"
)

var errEmptyClause = errors.New("empty clause")

// renderClause translates a query clause into FT.SEARCH DIALECT 2 syntax.
// A nil clause matches everything.
func renderClause(c query.Clause) (string, error) {
	switch v := c.(type) {
	case nil, query.MatchAll:
		return "*", nil
	case query.Match:
		return renderMatch(v)
	case query.NestedFilter:
		return renderNested(v)
	case query.FuzzyMultiMatch:
		return renderFuzzy(v)
	case query.AnyOf:
		return renderGroup(v.Clauses, " | ")
	case query.AllOf:
		return renderGroup(v.Clauses, " ")
	default:
		return "", fmt.Errorf("unsupported clause %T", c)
	}
}

func renderMatch(m query.Match) (string, error) {
	if m.Field == "" || strings.TrimSpace(m.Value) == "" {
		return "", fmt.Errorf("match: %w", errEmptyClause)
	}
	return fmt.Sprintf("@%s:(%s)", m.Field, escapeQuery(m.Value)), nil
}

func renderNested(f query.NestedFilter) (string, error) {
	if f.Path == "" || f.Field == "" || f.Value == "" {
		return "", fmt.Errorf("nested filter: %w", errEmptyClause)
	}
	return buildTagFilter(f.Alias(), f.Value), nil
}

// renderFuzzy ORs the query terms inside each field and unions the fields,
// wrapping boosted fields in a $weight attribute.
func renderFuzzy(m query.FuzzyMultiMatch) (string, error) {
	terms := query.Terms(m.Query)
	if len(terms) == 0 || len(m.Fields) == 0 {
		return "", fmt.Errorf("fuzzy match: %w", errEmptyClause)
	}

	fuzzed := make([]string, len(terms))
	for i, t := range terms {
		fuzzed[i] = fuzzTerm(t, m.Fuzziness.Edits(t))
	}
	disjunction := strings.Join(fuzzed, "|")

	parts := make([]string, 0, len(m.Fields))
	for _, f := range m.Fields {
		if f.Name == "" {
			return "", fmt.Errorf("fuzzy match: %w", errEmptyClause)
		}
		part := fmt.Sprintf("(@%s:(%s))", f.Name, disjunction)
		if f.Weight > 0 && f.Weight != 1 {
			part = fmt.Sprintf("(%s => { $weight: %s; })", part, strconv.FormatFloat(f.Weight, 'f', -1, 64))
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " | "), nil
}

// renderGroup parenthesizes each clause and joins them with sep:
// " | " is a union, " " an intersection.
func renderGroup(clauses []query.Clause, sep string) (string, error) {
	if len(clauses) == 0 {
		return "", fmt.Errorf("clause group: %w", errEmptyClause)
	}
	parts := make([]string, 0, len(clauses))
	for _, c := range clauses {
		s, err := renderClause(c)
		if err != nil {
			return "", err
		}
		parts = append(parts, "("+s+")")
	}
	return strings.Join(parts, sep), nil
}

// fuzzTerm wraps term in one pair of % per allowed edit.
// Terms are letters and digits only, so they need no escaping.
func fuzzTerm(term string, edits int) string {
	if edits <= 0 {
		return term
	}
	pad := strings.Repeat("%", edits)
	return pad + term + pad
}

func buildTagFilter(key, value string) string {
	return fmt.Sprintf("@%s:{%s}", key, tagEscaper.Replace(value))
}

// --- Escaping ---

var tagEscaper = strings.NewReplacer(
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	"|", "\\|",
	" ", "\\ ",
)

func escapeQuery(s string) string {
	return queryEscaper.Replace(s)
}

var queryEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	`@`, `\@`,
	`{`, `\{`,
	`}`, `\}`,
	`(`, `\(`,
	`)`, `\)`,
	`|`, `\|`,
	`-`, `\-`,
	`~`, `\~`,
	`*`, `\*`,
	`[`, `\[`,
	`]`, `\]`,
	`!`, `\!`,
	`%`, `\%`,
	`^`, `\^`,
	`$`, `\$`,
	`<`, `\<`,
	`>`, `\>`,
	`=`, `\=`,
	`;`, `\;`,
	`+`, `\+`,
	`:`, `\:`,
)
