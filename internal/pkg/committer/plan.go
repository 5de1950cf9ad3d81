// Package committer batches the Spanner mutations of one usecase and applies
// them in a single read-write transaction.
package committer

import "cloud.google.com/go/spanner"

type Plan struct {
	tag       string
	mutations []*spanner.Mutation
}

// NewPlan starts an empty plan. tag names the usecase; it is sent to Spanner
// as the transaction tag and shows up in its query and lock statistics.
func NewPlan(tag string) *Plan {
	return &Plan{tag: tag, mutations: make([]*spanner.Mutation, 0, 4)}
}

// Add appends m. A nil mutation means "nothing to write" and is skipped.
func (p *Plan) Add(m *spanner.Mutation) {
	if m != nil {
		p.mutations = append(p.mutations, m)
	}
}

// AddAll appends every non-nil mutation in ms, in order.
func (p *Plan) AddAll(ms []*spanner.Mutation) {
	for _, m := range ms {
		p.Add(m)
	}
}

func (p *Plan) Tag() string                    { return p.tag }
func (p *Plan) Len() int                       { return len(p.mutations) }
func (p *Plan) IsEmpty() bool                  { return len(p.mutations) == 0 }
func (p *Plan) Mutations() []*spanner.Mutation { return p.mutations }
