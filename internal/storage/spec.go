// Package storage implements the generic resource engine: a per-resource
// Spec describing the table and its filter/sort/include allow-lists, query
// parsing against that Spec, and a Repository parameterized by it.
package storage

// FilterKind tags how a filterable field matches caller input.
type FilterKind int

const (
	// FilterExact matches the whole value.
	FilterExact FilterKind = iota
	// FilterPartial matches a case-insensitive substring.
	FilterPartial
)

// Spec is the declarative configuration of one resource. It is the only
// place where behavior varies between resources.
type Spec struct {
	// Resource is the singular name used in errors ("project").
	Resource string
	// Table is the backing table name.
	Table string
	// Columns is the full select/returning list. Must contain "id".
	Columns []string
	// Writable are the columns create/update may set. id and timestamps
	// stay out of this set and are owned by the store.
	Writable map[string]bool
	// Filterable maps caller-filterable fields to their match kind.
	Filterable map[string]FilterKind
	// Sortable are the fields a caller may sort by.
	Sortable map[string]bool
	// Includable are the relation names a caller may request.
	Includable map[string]bool
	// DefaultSort applies when the caller sends no sort expression,
	// e.g. "-created_at".
	DefaultSort string
	// TouchUpdatedAt makes Update set updated_at = now().
	TouchUpdatedAt bool
}

// Set builds a string set, shorthand for Spec literals.
func Set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}
