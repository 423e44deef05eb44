// Package seed provides the data sources the ticket store is filled from at
// startup.
package seed

import (
	"context"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
)

// Source loads the initial ticket collection.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]domain.Ticket, error)
}

// EmptySource starts the dashboard with no tickets.
type EmptySource struct{}

func (EmptySource) Name() string { return "empty" }

func (EmptySource) Load(context.Context) ([]domain.Ticket, error) {
	return []domain.Ticket{}, nil
}

// StaticSource serves a fixed slice, mainly for tests and fixtures.
type StaticSource struct {
	Tickets []domain.Ticket
}

func (s StaticSource) Name() string { return "static" }

func (s StaticSource) Load(context.Context) ([]domain.Ticket, error) {
	out := make([]domain.Ticket, len(s.Tickets))
	for i := range s.Tickets {
		out[i] = s.Tickets[i].Clone()
	}
	return out, nil
}
