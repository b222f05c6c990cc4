package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/bizdex/internal/db"
	"github.com/kailas-cloud/bizdex/internal/domain/search/filter"
)

// SearchList pages through indexed hashes that match q.Filters.
func (s *Store) SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error) {
	if q.IndexName == "" {
		return nil, errors.New("index name is required")
	}
	if q.Limit <= 0 {
		return nil, errors.New("limit must be positive")
	}

	args := searchArgs(q, q.Offset, q.Limit)
	if len(q.ReturnFields) > 0 {
		args = append(args, "RETURN", strconv.Itoa(len(q.ReturnFields)))
		args = append(args, q.ReturnFields...)
	}
	args = append(args, "DIALECT", "2")

	reply, err := s.do(ctx, s.b().Arbitrary("FT.SEARCH").Args(args...).Build()).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Key: q.IndexName, Err: err}
	}
	return parseListReply(reply)
}

// SearchCount asks for the match total only (LIMIT 0 0).
func (s *Store) SearchCount(ctx context.Context, q *db.ListQuery) (int, error) {
	args := append(searchArgs(q, 0, 0), "DIALECT", "2")
	reply, err := s.do(ctx, s.b().Arbitrary("FT.SEARCH").Args(args...).Build()).ToArray()
	if err != nil {
		return 0, &db.Error{Op: db.OpSearch, Key: q.IndexName, Err: err}
	}
	if len(reply) == 0 {
		return 0, nil
	}
	total, err := reply[0].AsInt64()
	if err != nil {
		return 0, fmt.Errorf("parse count: %w", err)
	}
	return int(total), nil
}

func searchArgs(q *db.ListQuery, offset, limit int) []string {
	return []string{q.IndexName, BuildQuery(q.Filters),
		"LIMIT", strconv.Itoa(offset), strconv.Itoa(limit)}
}

// parseListReply decodes [total, key1, [f, v, ...], key2, [...], ...].
// Malformed entries are skipped.
func parseListReply(reply []rueidis.RedisMessage) (*db.SearchResult, error) {
	if len(reply) == 0 {
		return &db.SearchResult{}, nil
	}
	total, err := reply[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}

	res := &db.SearchResult{Total: int(total)}
	for i := 1; i+1 < len(reply); i += 2 {
		key, err := reply[i].ToString()
		if err != nil {
			continue
		}
		pairs, err := reply[i+1].ToArray()
		if err != nil {
			continue
		}
		res.Entries = append(res.Entries, db.SearchEntry{Key: key, Fields: pairMap(pairs)})
	}
	return res, nil
}

func pairMap(pairs []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(pairs)/2)
	for j := 0; j+1 < len(pairs); j += 2 {
		name, nerr := pairs[j].ToString()
		value, verr := pairs[j+1].ToString()
		if nerr != nil || verr != nil {
			continue
		}
		m[name] = value
	}
	return m
}

// BuildQuery renders a filter as an FT.SEARCH query of tag clauses joined
// by spaces (intersection). The empty filter becomes "*".
func BuildQuery(expr filter.Expression) string {
	if expr.IsEmpty() {
		return "*"
	}
	clauses := make([]string, 0, len(expr.Must()))
	for _, c := range expr.Must() {
		clauses = append(clauses, "@"+c.Key()+":{"+escapeTag(c.Match())+"}")
	}
	return strings.Join(clauses, " ")
}

// escapeTag backslash-escapes every byte that is punctuation or whitespace
// in the tag query grammar.
func escapeTag(v string) string {
	var b strings.Builder
	b.Grow(len(v))
	for i := 0; i < len(v); i++ {
		c := v[i]
		if strings.IndexByte(tagSpecials, c) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}

const tagSpecials = ",.<>{}\"':;!@#$%^&*()-+=~|[]/\\ "
