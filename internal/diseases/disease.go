// Package diseases implements the canonical disease vocabulary for canopy.
// It owns the read-only disease knowledge base, the normalization of
// classifier labels into registry keys, and the HTTP endpoints that
// expose disease information.
package diseases

// HealthyID is the universal default record returned on lookup misses.
const HealthyID = "healthy"

// Record describes a single disease in the knowledge base.
type Record struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	ScientificName *string  `json:"scientificName"`
	Description    string   `json:"description"`
	Symptoms       []string `json:"symptoms"`
	Causes         []string `json:"causes"`
	Treatment      []string `json:"treatment"`
	Prevention     []string `json:"prevention"`
}

// Summary is the list projection of a Record.
type Summary struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	ScientificName *string `json:"scientificName"`
	Description    string  `json:"description"`
}

// ListResult is the response body of the disease list endpoint.
type ListResult struct {
	Diseases []Summary `json:"diseases"`
	Total    int       `json:"total"`
}

func (r Record) clone() Record {
	c := r
	if r.ScientificName != nil {
		c.ScientificName = ptr(*r.ScientificName)
	}
	c.Symptoms = cloneStrings(r.Symptoms)
	c.Causes = cloneStrings(r.Causes)
	c.Treatment = cloneStrings(r.Treatment)
	c.Prevention = cloneStrings(r.Prevention)
	return c
}

func (r Record) summary() Summary {
	s := Summary{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
	}
	if r.ScientificName != nil {
		s.ScientificName = ptr(*r.ScientificName)
	}
	return s
}

func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func ptr[T any](v T) *T {
	return &v
}
