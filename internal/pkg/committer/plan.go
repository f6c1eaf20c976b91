// Package committer collects Spanner mutations into a plan and applies the
// plan atomically.
//
// Repositories build mutations without touching the database; the caller adds
// them to a Plan and hands the Plan to a Committer once every row is known.
// Nothing is sent to Spanner before Apply, so slow work such as translation
// can run first without holding a transaction open.
//
//	plan := committer.NewPlan()
//	plan.Add(productMut)
//	plan.AddMultiple(translationMuts)
//	err := c.Apply(ctx, plan)
package committer

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
)

// Plan is an ordered list of mutations applied together.
type Plan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty Plan.
func NewPlan() *Plan {
	return &Plan{mutations: make([]*spanner.Mutation, 0)}
}

// Add adds a mutation to the plan. Nil mutations are ignored.
func (p *Plan) Add(mut *spanner.Mutation) {
	if mut != nil {
		p.mutations = append(p.mutations, mut)
	}
}

// AddMultiple adds several mutations in order.
func (p *Plan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		p.Add(mut)
	}
}

// Mutations returns all collected mutations.
func (p *Plan) Mutations() []*spanner.Mutation {
	return p.mutations
}

// IsEmpty returns true if the plan has no mutations.
func (p *Plan) IsEmpty() bool {
	return len(p.mutations) == 0
}

// Count returns the number of mutations in the plan.
func (p *Plan) Count() int {
	return len(p.mutations)
}

// Committer applies plans inside a single read-write transaction.
type Committer struct {
	client *spanner.Client
}

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply buffers every mutation of plan in one read-write transaction.
// The returned error keeps the Spanner status so callers can inspect it
// with spanner.ErrCode.
func (c *Committer) Apply(ctx context.Context, plan *Plan) error {
	if plan == nil || plan.IsEmpty() {
		return nil
	}
	if c.client == nil {
		return fmt.Errorf("committer: spanner client is nil")
	}

	_, err := c.client.ReadWriteTransaction(ctx, func(ctx context.Context, tx *spanner.ReadWriteTransaction) error {
		return tx.BufferWrite(plan.Mutations())
	})
	if err != nil {
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}
	return nil
}
