// Package rest holds the generic HTTP controller and the wire shapes it
// serializes: one Doc per entity and a paged collection envelope.
package rest

// Links carries the optional self link of a Doc.
type Links struct {
	Self string `json:"self,omitempty"`
}

// Doc is the external shape of one entity: selected attributes plus one
// entry per includable relation. A relation that was not loaded renders as
// null; a loaded relation renders as {"data": ...}, so absence is always a
// recognizable marker and never a silently missing key.
type Doc struct {
	ID            int64          `json:"id"`
	Attributes    map[string]any `json:"attributes"`
	Relationships map[string]any `json:"relationships"`
	Links         *Links         `json:"links,omitempty"`
}

// Shaper projects an entity into its Doc. It must tolerate partially loaded
// relations and stay deterministic for a given entity and load state.
type Shaper[T any] func(T) Doc

// RelOne wraps a loaded to-one relation payload. A loaded but absent
// relation (nullable reference) renders as {"data": null}.
func RelOne(loaded bool, doc any) any {
	if !loaded {
		return nil
	}
	return map[string]any{"data": doc}
}

// RelMany wraps a loaded to-many relation payload.
func RelMany(loaded bool, docs []Doc) any {
	if !loaded {
		return nil
	}
	if docs == nil {
		docs = []Doc{}
	}
	return map[string]any{"data": docs}
}

// Meta is the pagination block of collection responses.
type Meta struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
}
