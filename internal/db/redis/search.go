package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/sitesearch/internal/db"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/instruction"
)

// Search runs a full-text instruction via FT.SEARCH WITHSCORES.
// Only the first sort directive is applied: FT.SEARCH accepts a single SORTBY.
func (s *Store) Search(ctx context.Context, q *db.InstructionQuery) (*db.SearchResult, error) {
	if q.IndexName == "" {
		return nil, fmt.Errorf("index name is required")
	}
	if q.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}

	args := []string{q.IndexName, buildQuery(q), "WITHSCORES"}

	if len(q.ReturnFields) > 0 {
		args = append(args, "RETURN", strconv.Itoa(len(q.ReturnFields)))
		args = append(args, q.ReturnFields...)
	}

	if q.Explain {
		args = append(args, "EXPLAINSCORE")
	}

	if sorts := q.Instruction.Sorts(); len(sorts) > 0 {
		dir := "ASC"
		if sorts[0].Descending {
			dir = "DESC"
		}
		args = append(args, "SORTBY", sorts[0].Field, dir)
	}

	args = append(args,
		"LIMIT", "0", strconv.Itoa(q.Limit),
		"DIALECT", "2",
	)

	cmd := s.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		if isRedisErr(err, "no such index") || isRedisErr(err, "unknown index name") {
			return nil, &db.Error{Op: db.OpSearch, Err: db.ErrIndexNotFound}
		}
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	return parseScoredResult(raw)
}

// --- Result parsing ---

func parseScoredResult(raw []rueidis.RedisMessage) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return &db.SearchResult{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return &db.SearchResult{}, nil
	}

	entries := make([]db.SearchEntry, 0, (len(raw)-1)/3)
	// 3-stride: [total, key1, score1, fields1, key2, score2, fields2, ...]
	for i := 1; i+2 < len(raw); i += 3 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}

		score, explain, ok := parseScore(raw[i+1])
		if !ok {
			continue
		}

		fields, err := raw[i+2].ToArray()
		if err != nil {
			continue
		}

		entries = append(entries, db.SearchEntry{
			Key:         key,
			Score:       score,
			Explanation: explain,
			Fields:      parseFieldPairs(fields),
		})
	}

	return &db.SearchResult{Total: int(total), Entries: entries}, nil
}

// parseScore reads a plain score or, with EXPLAINSCORE, a [score, explanation] pair.
func parseScore(msg rueidis.RedisMessage) (score float64, explain string, ok bool) {
	if pair, err := msg.ToArray(); err == nil {
		if len(pair) == 0 {
			return 0, "", false
		}
		score, _, ok = parseScore(pair[0])
		if len(pair) > 1 {
			explain = flattenExplain(pair[1])
		}
		return score, explain, ok
	}

	str, err := msg.ToString()
	if err != nil {
		return 0, "", false
	}
	score, err = strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, "", false
	}
	return score, "", true
}

// flattenExplain joins the nested EXPLAINSCORE tree into a single line.
func flattenExplain(msg rueidis.RedisMessage) string {
	if s, err := msg.ToString(); err == nil {
		return s
	}
	arr, err := msg.ToArray()
	if err != nil {
		return ""
	}
	parts := make([]string, 0, len(arr))
	for _, m := range arr {
		if p := flattenExplain(m); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "; ")
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}

// --- Query building ---

// buildQuery translates an instruction into an FT.SEARCH query string.
// MUST clauses are intersected, SHOULD clauses form one OR group, MUST_NOT
// clauses are negated. An instruction that constrains nothing matches everything.
func buildQuery(q *db.InstructionQuery) string {
	ins := q.Instruction
	var parts []string

	for _, c := range ins.ByOccur(instruction.Must) {
		if p := buildClause(q, c); p != "" {
			parts = append(parts, p)
		}
	}

	if should := buildShouldGroup(q, ins.ByOccur(instruction.Should)); should != "" {
		parts = append(parts, should)
	}

	for _, c := range ins.ByOccur(instruction.MustNot) {
		if p := buildClause(q, c); p != "" {
			parts = append(parts, "-"+p)
		}
	}

	if len(parts) == 0 {
		return "*"
	}
	return strings.Join(parts, " ")
}

func buildShouldGroup(q *db.InstructionQuery, clauses []instruction.Clause) string {
	parts := make([]string, 0, len(clauses))
	for _, c := range clauses {
		if p := buildClause(q, c); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " | ") + ")"
}

func buildClause(q *db.InstructionQuery, c instruction.Clause) string {
	values := c.Values()
	if len(values) == 0 {
		return ""
	}

	if c.Kind() == instruction.KindFullText {
		terms := make([]string, 0, len(values))
		for _, v := range values {
			terms = append(terms, escapeQuery(v))
		}
		// Whitespace-separated terms are intersected by the query parser.
		return "(" + strings.Join(terms, " ") + ")"
	}

	return buildTagFilter(q.FieldFor(c.Kind()), c.Operator(), values)
}

func buildTagFilter(key string, op instruction.Operator, values []string) string {
	escaped := make([]string, len(values))
	for i, v := range values {
		escaped[i] = tagEscaper.Replace(v)
	}

	if op == instruction.And && len(escaped) > 1 {
		parts := make([]string, len(escaped))
		for i, v := range escaped {
			parts[i] = fmt.Sprintf("@%s:{%s}", key, v)
		}
		return "(" + strings.Join(parts, " ") + ")"
	}

	return fmt.Sprintf("@%s:{%s}", key, strings.Join(escaped, " | "))
}

// --- Query helpers ---

var tagEscaper = strings.NewReplacer(
	`\`, `\\`,
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"[", "\\[",
	"]", "\\]",
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
