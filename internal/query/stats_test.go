package query

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
)

func TestComputeStats_EmptyStore(t *testing.T) {
	stats := ComputeStats(nil, refTime)

	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.Open)
	assert.Zero(t, stats.Closed)
	assert.Zero(t, stats.AvgRating)
	assert.False(t, math.IsNaN(stats.AvgRating))
	assert.Equal(t, "0h 0m", stats.AvgResolution)
	assert.Equal(t, 0, stats.ByCategory[domain.CategoryGeneralQuestion])
}

func TestComputeStats_NoRatedTickets(t *testing.T) {
	tickets := []domain.Ticket{
		closed("TK-001", refTime.Add(-4*time.Hour), refTime.Add(-2*time.Hour), 0),
		openTicket("TK-002", refTime),
	}

	stats := ComputeStats(tickets, refTime)

	assert.Zero(t, stats.AvgRating)
	assert.Zero(t, stats.RatedCount)
}

func TestComputeStats_Aggregates(t *testing.T) {
	pending := openTicket("TK-004", refTime.Add(-time.Hour))
	pending.Status = domain.TicketStatusPending
	pending.Priority = domain.TicketPriorityHigh
	tickets := []domain.Ticket{
		// 2h15m, closed today
		closed("TK-001", refTime.Add(-4*time.Hour), refTime.Add(-105*time.Minute), 5),
		// 45m, closed yesterday
		closed("TK-002", refTime.Add(-30*time.Hour), refTime.Add(-29*time.Hour-15*time.Minute), 4),
		// unrated, 1h30m
		closed("TK-003", refTime.Add(-2*time.Hour), refTime.Add(-30*time.Minute), 0),
		openTicket("TK-005", refTime),
		pending,
	}

	stats := ComputeStats(tickets, refTime)

	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 1, stats.Open)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 3, stats.Closed)
	assert.Equal(t, 2, stats.TodayClosed)
	assert.Equal(t, 2, stats.RatedCount)
	assert.Equal(t, 4.5, stats.AvgRating)
	// (135 + 45 + 90) / 3 = 90
	assert.Equal(t, 90, stats.AvgResolutionMinutes)
	assert.Equal(t, "1h 30m", stats.AvgResolution)
	assert.Equal(t, 5, stats.ByCategory[domain.CategoryGeneralQuestion])
	assert.Equal(t, 0, stats.ByCategory[domain.CategoryInternalAffairs])
	assert.Equal(t, 1, stats.ByPriority[domain.TicketPriorityHigh])
	assert.Equal(t, 4, stats.ByPriority[domain.TicketPriorityMedium])
	assert.Zero(t, stats.Excluded)
}

func TestComputeStats_RoundsRatingToOneDecimal(t *testing.T) {
	tickets := []domain.Ticket{
		closed("TK-001", refTime.Add(-3*time.Hour), refTime.Add(-2*time.Hour), 5),
		closed("TK-002", refTime.Add(-3*time.Hour), refTime.Add(-2*time.Hour), 4),
		closed("TK-003", refTime.Add(-3*time.Hour), refTime.Add(-2*time.Hour), 4),
	}

	stats := ComputeStats(tickets, refTime)

	assert.Equal(t, 4.3, stats.AvgRating)
}

func TestComputeStats_ExcludesMalformedRecords(t *testing.T) {
	broken := closed("TK-bad", refTime.Add(-time.Hour), refTime.Add(-2*time.Hour), 5)
	tickets := []domain.Ticket{
		closed("TK-001", refTime.Add(-3*time.Hour), refTime.Add(-2*time.Hour), 3),
		broken,
	}

	stats := ComputeStats(tickets, refTime)

	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Excluded)
	assert.Equal(t, 3.0, stats.AvgRating)
	assert.Equal(t, "1h 0m", stats.AvgResolution)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "2h 15m", FormatDuration(135*time.Minute))
	assert.Equal(t, "0h 45m", FormatDuration(45*time.Minute+59*time.Second))
	assert.Equal(t, "0h 0m", FormatDuration(-time.Minute))
}
