package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
)

// TicketRepository encapsulates ticket storage.
type TicketRepository interface {
	Append(ctx context.Context, ticket domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	List(ctx context.Context) ([]domain.Ticket, error)
	Count(ctx context.Context) (int, error)
}

type memoryTicketRepository struct {
	mu      sync.RWMutex
	tickets []domain.Ticket
	index   map[string]int
}

// NewMemoryTicketRepository instantiates an empty in-memory repository.
func NewMemoryTicketRepository() TicketRepository {
	return &memoryTicketRepository{index: make(map[string]int)}
}

// Append stores a copy of the ticket at the end of the collection.
func (r *memoryTicketRepository) Append(ctx context.Context, ticket domain.Ticket) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.index[ticket.ID]; exists {
		return fmt.Errorf("append %s: %w", ticket.ID, domain.ErrDuplicateTicket)
	}
	r.index[ticket.ID] = len(r.tickets)
	r.tickets = append(r.tickets, ticket.Clone())
	return nil
}

func (r *memoryTicketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	pos, ok := r.index[id]
	if !ok {
		return nil, domain.ErrTicketNotFound
	}
	ticket := r.tickets[pos].Clone()
	return &ticket, nil
}

// List returns a snapshot in insertion order.
func (r *memoryTicketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.Ticket, len(r.tickets))
	for i := range r.tickets {
		result[i] = r.tickets[i].Clone()
	}
	return result, nil
}

func (r *memoryTicketRepository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tickets), nil
}
