package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
)

func TestList_MostRecentFirst(t *testing.T) {
	tickets := []domain.Ticket{
		closed("TK-001", refTime.Add(-4*time.Hour), refTime.Add(-2*time.Hour), 5),
		closed("TK-002", refTime.Add(-2*time.Hour), refTime.Add(-1*time.Hour), 4),
	}

	result := List(tickets, Options{})

	assert.Equal(t, []string{"TK-002", "TK-001"}, ids(result.Tickets))
	assert.Equal(t, 2, result.Total)
}

func TestList_StableOnTies(t *testing.T) {
	tickets := []domain.Ticket{
		openTicket("TK-B", refTime),
		openTicket("TK-A", refTime),
		openTicket("TK-C", refTime.Add(time.Minute)),
		openTicket("TK-D", refTime),
	}

	result := List(tickets, Options{SortBy: SortByCreatedAt})

	assert.Equal(t, []string{"TK-C", "TK-B", "TK-A", "TK-D"}, ids(result.Tickets))
}

func TestList_NonIncreasingOrder(t *testing.T) {
	tickets := numbered(30)
	// shuffle deterministically
	tickets[0], tickets[17] = tickets[17], tickets[0]
	tickets[5], tickets[29] = tickets[29], tickets[5]

	result := List(tickets, Options{})

	for i := 1; i < len(result.Tickets); i++ {
		assert.False(t, result.Tickets[i].CreatedAt.After(result.Tickets[i-1].CreatedAt))
	}
}

func TestList_DoesNotMutateInput(t *testing.T) {
	tickets := []domain.Ticket{
		openTicket("TK-001", refTime.Add(-time.Hour)),
		openTicket("TK-002", refTime),
	}

	_ = List(tickets, Options{})

	assert.Equal(t, "TK-001", tickets[0].ID)
	assert.Equal(t, "TK-002", tickets[1].ID)
}

func TestList_ClosedVariantSortsByClosedAt(t *testing.T) {
	tickets := []domain.Ticket{
		closed("TK-001", refTime.Add(-10*time.Hour), refTime.Add(-1*time.Hour), 5),
		closed("TK-002", refTime.Add(-2*time.Hour), refTime.Add(-90*time.Minute), 4),
		openTicket("TK-003", refTime),
	}

	result := List(tickets, Options{
		Filter: Filter{Statuses: []domain.TicketStatus{domain.TicketStatusClosed}},
		SortBy: SortByClosedAt,
	})

	assert.Equal(t, []string{"TK-001", "TK-002"}, ids(result.Tickets))
}

func TestList_MissingClosedAtSortsLast(t *testing.T) {
	tickets := []domain.Ticket{
		openTicket("TK-open", refTime),
		closed("TK-closed", refTime.Add(-2*time.Hour), refTime.Add(-time.Hour), 0),
	}

	result := List(tickets, Options{SortBy: SortByClosedAt})

	assert.Equal(t, []string{"TK-closed", "TK-open"}, ids(result.Tickets))
}

func TestList_Filters(t *testing.T) {
	a := openTicket("TK-001", refTime)
	a.Category = domain.CategoryInternalAffairs
	a.Priority = domain.TicketPriorityCritical
	b := openTicket("TK-002", refTime.Add(-time.Hour))
	b.Status = domain.TicketStatusPending
	officer := "Ten. Silva"
	b.AssignedOfficer = &officer
	c := closed("TK-003", refTime.Add(-3*time.Hour), refTime.Add(-2*time.Hour), 3)
	tickets := []domain.Ticket{a, b, c}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{name: "no filter", filter: Filter{}, want: []string{"TK-001", "TK-002", "TK-003"}},
		{name: "status any-of", filter: Filter{Statuses: []domain.TicketStatus{"pending", "closed"}}, want: []string{"TK-002", "TK-003"}},
		{name: "category", filter: Filter{Categories: []domain.TicketCategory{domain.CategoryInternalAffairs}}, want: []string{"TK-001"}},
		{name: "priority and status", filter: Filter{Statuses: []domain.TicketStatus{"open"}, Priorities: []domain.TicketPriority{"medium"}}, want: []string{}},
		{name: "search officer", filter: Filter{Search: "silva"}, want: []string{"TK-002"}},
		{name: "search id", filter: Filter{Search: "tk-003"}, want: []string{"TK-003"}},
		{name: "unknown status", filter: Filter{Statuses: []domain.TicketStatus{"archived"}}, want: []string{}},
		{name: "unknown category", filter: Filter{Categories: []domain.TicketCategory{"billing"}}, want: []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := List(tickets, Options{Filter: tc.filter})
			assert.Equal(t, tc.want, ids(result.Tickets))
			assert.Equal(t, len(tc.want), result.Total)
		})
	}
}

func TestList_EmptyStore(t *testing.T) {
	result := List(nil, Options{})

	require.NotNil(t, result.Tickets)
	assert.Empty(t, result.Tickets)
	assert.Zero(t, result.Total)
}

func TestSummarize_DropsThread(t *testing.T) {
	ticket := openTicket("TK-001", refTime)
	ticket.Messages = []domain.Message{{ID: "msg-1", Author: domain.MessageAuthor{Name: "x"}, Timestamp: refTime}}

	summary := Summarize(ticket)

	assert.Equal(t, 1, summary.MessageCount)
	assert.Equal(t, "TK-001", summary.ID)
}
