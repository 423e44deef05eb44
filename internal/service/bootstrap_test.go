package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
	"github.com/spec-kit/ticket-dashboard/internal/repository"
	"github.com/spec-kit/ticket-dashboard/internal/seed"
)

type failingSource struct{}

func (failingSource) Name() string { return "failing" }

func (failingSource) Load(context.Context) ([]domain.Ticket, error) {
	return nil, errors.New("connection refused")
}

func TestBootstrap_SkipsInvalidAndDuplicate(t *testing.T) {
	invalid := closedTicket("TK-002", time.Hour, 0)
	invalid.Category = "billing"

	core, logs := observer.New(zap.WarnLevel)
	repo := repository.NewMemoryTicketRepository()
	src := seed.StaticSource{Tickets: []domain.Ticket{
		closedTicket("TK-001", 4*time.Hour, 2*time.Hour),
		invalid,
		closedTicket("TK-001", 3*time.Hour, time.Hour),
		closedTicket("TK-003", 2*time.Hour, time.Hour),
	}}

	loaded, err := Bootstrap(context.Background(), src, repo, zap.New(core))
	require.NoError(t, err)
	assert.Equal(t, 2, loaded)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	assert.Equal(t, 1, logs.FilterMessage("skipping invalid ticket").Len())
	assert.Equal(t, 1, logs.FilterMessage("skipping duplicate ticket").Len())
}

func TestBootstrap_SourceError(t *testing.T) {
	_, err := Bootstrap(context.Background(), failingSource{}, repository.NewMemoryTicketRepository(), zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load failing source")
}

func TestBootstrap_DemoSourceLoadsEverything(t *testing.T) {
	repo := repository.NewMemoryTicketRepository()
	src := seed.DemoSource{Seed: 7, Count: 25, Now: func() time.Time { return now }}

	loaded, err := Bootstrap(context.Background(), src, repo, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 25, loaded)
}
