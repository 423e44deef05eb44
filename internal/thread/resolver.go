// Package thread resolves a ticket's message thread, either stored inline or
// synthesized from category templates.
package thread

import (
	"context"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
)

// TicketReader is the slice of the store the resolver needs.
type TicketReader interface {
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
}

// Resolver returns chronological threads. The seed is fixed at construction so
// synthesized threads never change for the lifetime of the process.
type Resolver struct {
	tickets TicketReader
	catalog Catalog
	seed    int64
}

// NewResolver builds a resolver over the store. A nil catalog uses DefaultCatalog.
func NewResolver(tickets TicketReader, catalog Catalog, seed int64) *Resolver {
	if catalog == nil {
		catalog = DefaultCatalog
	}
	return &Resolver{tickets: tickets, catalog: catalog, seed: seed}
}

// Get looks up the ticket and returns its thread. Unknown ids fail with
// domain.ErrTicketNotFound; a ticket without messages yields an empty slice.
func (r *Resolver) Get(ctx context.Context, id string) ([]domain.Message, error) {
	ticket, err := r.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.Thread(ticket), nil
}

// Thread resolves the thread of an already loaded ticket.
func (r *Resolver) Thread(ticket *domain.Ticket) []domain.Message {
	if ticket.ThreadMode == domain.ThreadModeSynthesized {
		return r.catalog.Synthesize(ticket, r.seed)
	}
	msgs := domain.CloneMessages(ticket.Messages)
	if msgs == nil {
		return []domain.Message{}
	}
	return msgs
}
