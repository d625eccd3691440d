package diseases

import "fmt"

// Registry is an immutable index of disease records keyed by canonical id.
// It is safe for concurrent use; every record it returns is a private copy.
type Registry struct {
	records map[string]Record
	order   []string
}

// NewRegistry builds a Registry from records. A healthy record is required,
// ids must be non-empty and unique.
func NewRegistry(records ...Record) (*Registry, error) {
	r := &Registry{
		records: make(map[string]Record, len(records)),
		order:   make([]string, 0, len(records)),
	}

	for _, rec := range records {
		if rec.ID == "" {
			return nil, fmt.Errorf("%w: empty id", ErrInvalidRecord)
		}
		if _, exists := r.records[rec.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate id %s", ErrInvalidRecord, rec.ID)
		}
		r.records[rec.ID] = rec.clone()
		r.order = append(r.order, rec.ID)
	}

	if _, ok := r.records[HealthyID]; !ok {
		return nil, ErrNoDefault
	}

	return r, nil
}

// Default returns a Registry over the built-in catalog.
func Default() *Registry {
	r, err := NewRegistry(catalog...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the record for id, or the healthy record when id is unknown.
func (r *Registry) Lookup(id string) Record {
	if rec, ok := r.records[id]; ok {
		return rec.clone()
	}
	return r.records[HealthyID].clone()
}

// Find returns the record for id and whether it exists.
func (r *Registry) Find(id string) (Record, bool) {
	rec, ok := r.records[id]
	if !ok {
		return Record{}, false
	}
	return rec.clone(), true
}

// Contains reports whether id is a registered key.
func (r *Registry) Contains(id string) bool {
	_, ok := r.records[id]
	return ok
}

// List returns summaries of every record in registration order.
func (r *Registry) List() []Summary {
	out := make([]Summary, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.records[id].summary())
	}
	return out
}

// Resolve canonicalizes a raw classifier label and looks it up.
// The returned id is the canonical key, which may be absent from the
// registry; the record is then the healthy default.
func (r *Registry) Resolve(label any) (string, Record) {
	id := Canonicalize(label)
	return id, r.Lookup(id)
}
