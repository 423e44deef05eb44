package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
	"github.com/spec-kit/ticket-dashboard/internal/repository"
	"github.com/spec-kit/ticket-dashboard/internal/seed"
)

// Bootstrap fills the store from source. Records that fail validation or
// collide with an existing id are logged and skipped. It returns the number
// of tickets appended.
func Bootstrap(ctx context.Context, source seed.Source, repo repository.TicketRepository, logger *zap.Logger) (int, error) {
	tickets, err := source.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load %s source: %w", source.Name(), err)
	}

	loaded := 0
	for i := range tickets {
		t := tickets[i]
		if err := t.Validate(); err != nil {
			logger.Warn("skipping invalid ticket", zap.String("ticket_id", t.ID), zap.Error(err))
			continue
		}
		if err := repo.Append(ctx, t); err != nil {
			if errors.Is(err, domain.ErrDuplicateTicket) {
				logger.Warn("skipping duplicate ticket", zap.String("ticket_id", t.ID))
				continue
			}
			return loaded, err
		}
		loaded++
	}

	logger.Info("ticket store bootstrapped",
		zap.String("source", source.Name()),
		zap.Int("loaded", loaded),
		zap.Int("skipped", len(tickets)-loaded))
	return loaded, nil
}
