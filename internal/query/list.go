// Package query answers list, page and stats requests over a ticket snapshot.
// Every function is pure: inputs are never reordered or mutated.
package query

import (
	"slices"
	"strings"
	"time"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
)

// SortKey selects the timestamp tickets are ordered by, most recent first.
type SortKey string

const (
	SortByCreatedAt SortKey = "createdAt"
	SortByClosedAt  SortKey = "closedAt"
)

// Valid reports whether the key is supported.
func (k SortKey) Valid() bool {
	return k == SortByCreatedAt || k == SortByClosedAt
}

// Filter restricts a listing. Within a dimension values are OR-ed; dimensions
// are AND-ed. Empty dimensions match everything.
type Filter struct {
	Statuses   []domain.TicketStatus
	Categories []domain.TicketCategory
	Priorities []domain.TicketPriority
	Search     string
}

// Options describes a List request.
type Options struct {
	Filter Filter
	SortBy SortKey
}

// Summary is a ticket without its thread body.
type Summary struct {
	ID                 string
	Requester          domain.Requester
	Category           domain.TicketCategory
	Status             domain.TicketStatus
	Priority           domain.TicketPriority
	CreatedAt          time.Time
	ClosedAt           *time.Time
	AssignedOfficer    *string
	SatisfactionRating int
	MessageCount       int
}

// Result is an ordered listing and its size.
type Result struct {
	Tickets []Summary
	Total   int
}

// Summarize strips the thread from a ticket.
func Summarize(t domain.Ticket) Summary {
	c := t.Clone()
	return Summary{
		ID:                 c.ID,
		Requester:          c.Requester,
		Category:           c.Category,
		Status:             c.Status,
		Priority:           c.Priority,
		CreatedAt:          c.CreatedAt,
		ClosedAt:           c.ClosedAt,
		AssignedOfficer:    c.AssignedOfficer,
		SatisfactionRating: c.SatisfactionRating,
		MessageCount:       len(c.Messages),
	}
}

// List filters and orders tickets, returning summaries. Ties on the sort key
// keep the input order.
func List(tickets []domain.Ticket, opts Options) Result {
	sortBy := opts.SortBy
	if !sortBy.Valid() {
		sortBy = SortByCreatedAt
	}

	matched := make([]domain.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if opts.Filter.Matches(&t) {
			matched = append(matched, t)
		}
	}

	sorted := Sort(matched, sortBy)
	summaries := make([]Summary, 0, len(sorted))
	for _, t := range sorted {
		summaries = append(summaries, Summarize(t))
	}
	return Result{Tickets: summaries, Total: len(summaries)}
}

// Sort returns a new slice ordered by key descending. Tickets without the key
// timestamp sort last.
func Sort(tickets []domain.Ticket, key SortKey) []domain.Ticket {
	out := slices.Clone(tickets)
	slices.SortStableFunc(out, func(a, b domain.Ticket) int {
		ta, okA := sortTime(&a, key)
		tb, okB := sortTime(&b, key)
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return 1
		case !okB:
			return -1
		}
		return tb.Compare(ta)
	})
	return out
}

func sortTime(t *domain.Ticket, key SortKey) (time.Time, bool) {
	if key == SortByClosedAt {
		if t.ClosedAt == nil {
			return time.Time{}, false
		}
		return *t.ClosedAt, true
	}
	return t.CreatedAt, true
}

// Matches reports whether the ticket passes every filter dimension.
func (f Filter) Matches(t *domain.Ticket) bool {
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, t.Status) {
		return false
	}
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, t.Category) {
		return false
	}
	if len(f.Priorities) > 0 && !slices.Contains(f.Priorities, t.Priority) {
		return false
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		return matchesSearch(t, term)
	}
	return true
}

func matchesSearch(t *domain.Ticket, term string) bool {
	if strings.Contains(strings.ToLower(t.ID), term) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Requester.Name), term) {
		return true
	}
	return t.AssignedOfficer != nil && strings.Contains(strings.ToLower(*t.AssignedOfficer), term)
}
