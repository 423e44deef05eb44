package thread

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
	"github.com/spec-kit/ticket-dashboard/internal/repository"
)

var created = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

func demoTicket(id string, category domain.TicketCategory, status domain.TicketStatus) domain.Ticket {
	t := domain.Ticket{
		ID:         id,
		Requester:  domain.Requester{Name: "Maria Santos", Avatar: "https://cdn.discordapp.com/embed/avatars/1.png", PlatformID: "42"},
		Category:   category,
		Status:     status,
		Priority:   domain.TicketPriorityMedium,
		CreatedAt:  created,
		ThreadMode: domain.ThreadModeSynthesized,
	}
	if status == domain.TicketStatusClosed {
		closedAt := created.Add(2 * time.Hour)
		t.ClosedAt = &closedAt
		officer := "Cap. Rodriguez"
		t.AssignedOfficer = &officer
	}
	return t
}

func TestDefaultCatalog_CoversEveryCategory(t *testing.T) {
	for _, category := range domain.TicketCategories {
		assert.NotEmpty(t, DefaultCatalog[category], "category %s", category)
	}
}

func TestSynthesize_EveryTemplate(t *testing.T) {
	for _, category := range domain.TicketCategories {
		for i, tpl := range DefaultCatalog[category] {
			single := Catalog{category: {tpl}}
			for _, status := range domain.TicketStatuses {
				t.Run(fmt.Sprintf("%s/%d/%s", category, i, status), func(t *testing.T) {
					ticket := demoTicket("TK-100", category, status)
					msgs := single.Synthesize(&ticket, 7)

					require.NotEmpty(t, msgs)
					assert.False(t, msgs[0].Author.IsStaff)
					assert.Equal(t, ticket.CreatedAt, msgs[0].Timestamp)
					assert.Equal(t, "msg-1", msgs[0].ID)
					for _, staffMsg := range msgs[1 : 1+len(tpl.Responses)] {
						assert.True(t, staffMsg.Author.IsStaff)
						assert.NotContains(t, staffMsg.Content, "{requester}")
					}

					if status == domain.TicketStatusClosed {
						require.Len(t, msgs, len(tpl.Responses)+2)
						last := msgs[len(msgs)-1]
						assert.False(t, last.Author.IsStaff)
						assert.True(t, last.Timestamp.Before(*ticket.ClosedAt))
						assert.NotContains(t, last.Content, "{officer}")
					} else {
						assert.Len(t, msgs, len(tpl.Responses)+1)
					}

					ticket.Messages = msgs
					ticket.ThreadMode = domain.ThreadModeInline
					assert.NoError(t, ticket.Validate(), "synthesized thread must satisfy invariants")
				})
			}
		}
	}
}

func TestSynthesize_StrictlyIncreasingOffsets(t *testing.T) {
	ticket := demoTicket("TK-200", domain.CategoryInternalAffairs, domain.TicketStatusClosed)
	msgs := DefaultCatalog.Synthesize(&ticket, 1)

	for i := 1; i < len(msgs); i++ {
		assert.True(t, msgs[i].Timestamp.After(msgs[i-1].Timestamp))
	}
}

func TestSynthesize_ClosingMessageJustBeforeClosure(t *testing.T) {
	ticket := demoTicket("TK-210", domain.CategoryPromotionRequest, domain.TicketStatusClosed)
	msgs := DefaultCatalog.Synthesize(&ticket, 5)

	require.GreaterOrEqual(t, len(msgs), 3)
	last := msgs[len(msgs)-1]
	assert.False(t, last.Author.IsStaff)
	assert.Equal(t, ticket.ClosedAt.Add(-ClosingLead), last.Timestamp)
	assert.True(t, last.Timestamp.After(msgs[len(msgs)-2].Timestamp))
}

func TestSynthesize_ShortTicketClosingStaysOrdered(t *testing.T) {
	ticket := demoTicket("TK-220", domain.CategoryGeneralQuestion, domain.TicketStatusClosed)
	closedAt := ticket.CreatedAt.Add(4 * time.Minute)
	ticket.ClosedAt = &closedAt
	msgs := DefaultCatalog.Synthesize(&ticket, 5)

	last := msgs[len(msgs)-1]
	assert.True(t, last.Timestamp.Before(closedAt))
	for i := 1; i < len(msgs); i++ {
		assert.True(t, msgs[i].Timestamp.After(msgs[i-1].Timestamp), "message %d", i)
	}
	ticket.Messages = msgs
	ticket.ThreadMode = domain.ThreadModeInline
	assert.NoError(t, ticket.Validate())
}

func TestSynthesize_UnassignedUsesDefaultStaff(t *testing.T) {
	ticket := demoTicket("TK-300", domain.CategoryGeneralQuestion, domain.TicketStatusOpen)
	msgs := DefaultCatalog.Synthesize(&ticket, 3)

	require.Greater(t, len(msgs), 1)
	assert.Equal(t, DefaultStaffName, msgs[1].Author.Name)
	assert.Equal(t, created.Add(OpenTicketStep), msgs[1].Timestamp)
}

func TestSynthesize_UnknownCategory(t *testing.T) {
	ticket := demoTicket("TK-400", "billing", domain.TicketStatusOpen)
	msgs := DefaultCatalog.Synthesize(&ticket, 3)

	assert.NotNil(t, msgs)
	assert.Empty(t, msgs)
}

func TestSelectIndex_Deterministic(t *testing.T) {
	for _, id := range []string{"TK-001", "TK-002", "TK-050"} {
		first := selectIndex(id, 99, 3)
		assert.Equal(t, first, selectIndex(id, 99, 3))
		assert.GreaterOrEqual(t, first, 0)
		assert.Less(t, first, 3)
	}
	assert.Equal(t, 0, selectIndex("TK-001", 1, 0))
}

func newStore(t *testing.T, tickets ...domain.Ticket) repository.TicketRepository {
	t.Helper()
	repo := repository.NewMemoryTicketRepository()
	for _, ticket := range tickets {
		require.NoError(t, repo.Append(context.Background(), ticket))
	}
	return repo
}

func TestResolver_NotFoundIsDistinctFromEmpty(t *testing.T) {
	empty := demoTicket("TK-001", domain.CategoryGeneralQuestion, domain.TicketStatusOpen)
	empty.ThreadMode = domain.ThreadModeInline
	resolver := NewResolver(newStore(t, empty), nil, 1)

	msgs, err := resolver.Get(context.Background(), "TK-001")
	require.NoError(t, err)
	assert.NotNil(t, msgs)
	assert.Empty(t, msgs)

	_, err = resolver.Get(context.Background(), "TK-999")
	assert.ErrorIs(t, err, domain.ErrTicketNotFound)
}

func TestResolver_InlineReturnedVerbatim(t *testing.T) {
	ticket := demoTicket("TK-001", domain.CategoryGeneralQuestion, domain.TicketStatusOpen)
	ticket.ThreadMode = domain.ThreadModeInline
	ticket.Messages = []domain.Message{
		{ID: "a", Author: domain.MessageAuthor{Name: "Maria Santos"}, Content: "first", Timestamp: created},
		{ID: "b", Author: domain.MessageAuthor{Name: "Cap. Rodriguez", IsStaff: true}, Content: "second", Timestamp: created.Add(time.Minute),
			Attachments: []domain.Attachment{{Name: "manual.pdf", URL: "#", Kind: domain.AttachmentKindFile}}},
	}
	resolver := NewResolver(newStore(t, ticket), nil, 1)

	msgs, err := resolver.Get(context.Background(), "TK-001")
	require.NoError(t, err)
	assert.Equal(t, ticket.Messages, msgs)
}

func TestResolver_Idempotent(t *testing.T) {
	store := newStore(t,
		demoTicket("TK-001", domain.CategoryPromotionRequest, domain.TicketStatusClosed),
		demoTicket("TK-002", domain.CategoryInternalAffairs, domain.TicketStatusPending),
	)
	resolver := NewResolver(store, nil, 12345)

	for _, id := range []string{"TK-001", "TK-002"} {
		first, err := resolver.Get(context.Background(), id)
		require.NoError(t, err)
		second, err := resolver.Get(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}
