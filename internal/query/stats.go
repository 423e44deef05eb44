package query

import (
	"fmt"
	"math"
	"time"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
)

// Stats aggregates the store at query time. Nothing here is cached.
type Stats struct {
	Total                int
	Open                 int
	Pending              int
	Closed               int
	TodayClosed          int
	ByCategory           map[domain.TicketCategory]int
	ByPriority           map[domain.TicketPriority]int
	RatedCount           int
	AvgRating            float64
	AvgResolution        string
	AvgResolutionMinutes int
	Excluded             int
}

// ComputeStats aggregates tickets. Records failing validation are left out of
// every aggregate and counted in Excluded. Averages over empty sets are zero.
func ComputeStats(tickets []domain.Ticket, now time.Time) Stats {
	stats := Stats{
		ByCategory: make(map[domain.TicketCategory]int, len(domain.TicketCategories)),
		ByPriority: make(map[domain.TicketPriority]int, len(domain.TicketPriorities)),
	}
	for _, c := range domain.TicketCategories {
		stats.ByCategory[c] = 0
	}
	for _, p := range domain.TicketPriorities {
		stats.ByPriority[p] = 0
	}

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	ratingSum := 0
	var resolutionSum time.Duration
	resolved := 0

	for i := range tickets {
		t := &tickets[i]
		if err := t.Validate(); err != nil {
			stats.Excluded++
			continue
		}
		stats.Total++
		stats.ByCategory[t.Category]++
		stats.ByPriority[t.Priority]++

		switch t.Status {
		case domain.TicketStatusOpen:
			stats.Open++
		case domain.TicketStatusPending:
			stats.Pending++
		case domain.TicketStatusClosed:
			stats.Closed++
			if !t.ClosedAt.Before(startOfDay) {
				stats.TodayClosed++
			}
		}

		if t.IsRated() {
			stats.RatedCount++
			ratingSum += t.SatisfactionRating
		}
		if d, ok := t.ResolutionTime(); ok {
			resolutionSum += d
			resolved++
		}
	}

	if stats.RatedCount > 0 {
		avg := float64(ratingSum) / float64(stats.RatedCount)
		stats.AvgRating = math.Round(avg*10) / 10
	}
	if resolved > 0 {
		stats.AvgResolutionMinutes = int((resolutionSum / time.Duration(resolved)) / time.Minute)
	}
	stats.AvgResolution = FormatDuration(time.Duration(stats.AvgResolutionMinutes) * time.Minute)
	return stats
}

// FormatDuration renders whole hours plus remaining minutes, e.g. "2h 15m".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d / time.Minute)
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
