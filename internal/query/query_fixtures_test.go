package query

import (
	"fmt"
	"time"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
)

var refTime = time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC)

func openTicket(id string, created time.Time) domain.Ticket {
	return domain.Ticket{
		ID:         id,
		Requester:  domain.Requester{Name: "Requester " + id, PlatformID: "100200300"},
		Category:   domain.CategoryGeneralQuestion,
		Status:     domain.TicketStatusOpen,
		Priority:   domain.TicketPriorityMedium,
		CreatedAt:  created,
		ThreadMode: domain.ThreadModeSynthesized,
	}
}

func closed(id string, created, closedAt time.Time, rating int) domain.Ticket {
	t := openTicket(id, created)
	t.Status = domain.TicketStatusClosed
	t.ClosedAt = &closedAt
	t.SatisfactionRating = rating
	return t
}

func ids(summaries []Summary) []string {
	out := make([]string, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, s.ID)
	}
	return out
}

func numbered(n int) []domain.Ticket {
	out := make([]domain.Ticket, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, openTicket(fmt.Sprintf("TK-%03d", i), refTime.Add(-time.Duration(i)*time.Hour)))
	}
	return out
}
