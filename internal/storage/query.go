package storage

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/odiseo153/FeedBack-zone-sub001/internal/apperrors"
)

const (
	DefaultPerPage = 100
	MaxPerPage     = 1000
)

// FilterClause is one validated filter: field, its configured match kind and
// the raw caller value.
type FilterClause struct {
	Field string
	Kind  FilterKind
	Value string
}

// SortClause is one validated sort key.
type SortClause struct {
	Field string
	Desc  bool
}

// Query is the validated input of Repository.GetAll.
type Query struct {
	Page     int
	PerPage  int
	Filters  []FilterClause
	Sorts    []SortClause
	Includes []string
}

// Page is a bounded slice of an ordered result set plus metadata.
type Page[T any] struct {
	Items   []T   `json:"items"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
}

// ClampPerPage bounds a caller-supplied page size to [1, MaxPerPage],
// falling back to def when unset.
func ClampPerPage(n, def int) int {
	if n == 0 {
		n = def
	}
	if n < 1 {
		return 1
	}
	if n > MaxPerPage {
		return MaxPerPage
	}
	return n
}

// ParseQuery validates raw query-string values against the Spec's
// allow-lists. Filters arrive as filter[field]=value, sorts as a
// comma-separated sort= expression with a leading '-' for descending, and
// includes as include=a,b. Unknown keys are rejected, not ignored.
func ParseQuery(spec Spec, values url.Values, defaultPerPage int) (Query, error) {
	q := Query{Page: 1, PerPage: defaultPerPage}

	if raw := values.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return Query{}, apperrors.BadRequest("page", "invalid page %q", raw)
		}
		q.Page = n
	}

	if raw := values.Get("per_page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Query{}, apperrors.BadRequest("per_page", "invalid per_page %q", raw)
		}
		// an explicit value below 1 clamps to 1; only an absent
		// parameter falls back to the default
		if n < 1 {
			n = 1
		}
		q.PerPage = ClampPerPage(n, defaultPerPage)
	}
	q.PerPage = ClampPerPage(q.PerPage, DefaultPerPage)

	// filter[...] keys come out of url.Values in map order; sort them so
	// the generated SQL is deterministic.
	filterKeys := make([]string, 0, 4)
	for key := range values {
		if strings.HasPrefix(key, "filter[") && strings.HasSuffix(key, "]") {
			filterKeys = append(filterKeys, key)
		}
	}
	sort.Strings(filterKeys)
	for _, key := range filterKeys {
		field := key[len("filter[") : len(key)-1]
		kind, ok := spec.Filterable[field]
		if !ok {
			return Query{}, apperrors.BadRequest("filter", "cannot filter by %q", field)
		}
		q.Filters = append(q.Filters, FilterClause{Field: field, Kind: kind, Value: values.Get(key)})
	}

	if raw := values.Get("sort"); raw != "" {
		sorts, err := ParseSort(spec, raw)
		if err != nil {
			return Query{}, err
		}
		q.Sorts = sorts
	}

	if raw := values.Get("include"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if !spec.Includable[name] {
				return Query{}, apperrors.BadRequest("include", "cannot include %q", name)
			}
			q.Includes = append(q.Includes, name)
		}
	}

	return q, nil
}

// ParseSort validates a comma-separated sort expression against the Spec.
func ParseSort(spec Spec, raw string) ([]SortClause, error) {
	parts := strings.Split(raw, ",")
	out := make([]SortClause, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		desc := strings.HasPrefix(part, "-")
		field := strings.TrimPrefix(part, "-")
		if !spec.Sortable[field] {
			return nil, apperrors.BadRequest("sort", "cannot sort by %q", field)
		}
		out = append(out, SortClause{Field: field, Desc: desc})
	}
	return out, nil
}

// escapeLike escapes LIKE wildcards in caller input so a partial filter
// matches the literal text.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
