package memberkit

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultEnrichConcurrency bounds parallel user lookups per page.
const DefaultEnrichConcurrency = 8

// Enricher joins pages of memberships with their users' public
// projections. Enrichment always works on a single page, never the whole
// collection.
type Enricher struct {
	users       UserLookup
	concurrency int
}

// EnricherOption configures an Enricher.
type EnricherOption func(*Enricher)

// WithEnrichConcurrency bounds the number of user lookups in flight per
// page.
func WithEnrichConcurrency(n int) EnricherOption {
	return func(e *Enricher) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// NewEnricher creates an enrichment pipeline over the user lookup
// collaborator.
func NewEnricher(users UserLookup, opts ...EnricherOption) *Enricher {
	e := &Enricher{
		users:       users,
		concurrency: DefaultEnrichConcurrency,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enrich attaches each membership's user projection, preserving page order
// and cursors. A membership whose user no longer exists is a
// referential-integrity violation upstream: the whole page fails with
// ErrIntegrityViolation rather than silently dropping the row.
//
// Example:
//
//	page, err := store.List(ctx, projectID, cursor, limit)
//	if err != nil {
//	    return nil, err
//	}
//	return enricher.Enrich(ctx, page)
func (e *Enricher) Enrich(ctx context.Context, page *Page[Membership]) (*Page[MembershipWithUser], error) {
	out := &Page[MembershipWithUser]{
		Data:     make([]MembershipWithUser, len(page.Data)),
		Next:     page.Next,
		Previous: page.Previous,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, m := range page.Data {
		g.Go(func() error {
			user, err := e.users.GetUser(ctx, m.UserID)
			if err != nil {
				if IsNotFound(err) {
					return NewError(ErrIntegrityViolation, "membership references a missing user").
						WithMembership(m.ID).
						WithProject(m.ProjectID).
						WithUser(m.UserID)
				}
				return err
			}
			out.Data[i] = MembershipWithUser{Membership: m, User: user.Public()}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
