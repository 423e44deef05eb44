package domain

import (
	"errors"
	"time"
)

// ErrTicketNotFound is returned when no ticket carries the requested id.
var ErrTicketNotFound = errors.New("ticket not found")

// ErrDuplicateTicket is returned when a ticket id is already present in the store.
var ErrDuplicateTicket = errors.New("ticket already exists")

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen    TicketStatus = "open"
	TicketStatusPending TicketStatus = "pending"
	TicketStatusClosed  TicketStatus = "closed"
)

// TicketStatuses lists every known status in display order.
var TicketStatuses = []TicketStatus{TicketStatusOpen, TicketStatusPending, TicketStatusClosed}

// Valid reports whether the status is a known value.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusPending, TicketStatusClosed:
		return true
	}
	return false
}

// Label is the badge text for the status.
func (s TicketStatus) Label() string {
	switch s {
	case TicketStatusOpen:
		return "Open"
	case TicketStatusPending:
		return "Pending"
	case TicketStatusClosed:
		return "Closed"
	}
	return string(s)
}

// TicketPriority enumerates urgency.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "low"
	TicketPriorityMedium   TicketPriority = "medium"
	TicketPriorityHigh     TicketPriority = "high"
	TicketPriorityCritical TicketPriority = "critical"
)

// TicketPriorities lists every known priority from least to most urgent.
var TicketPriorities = []TicketPriority{TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityCritical}

// Valid reports whether the priority is a known value.
func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityCritical:
		return true
	}
	return false
}

// Label is the badge text for the priority.
func (p TicketPriority) Label() string {
	switch p {
	case TicketPriorityLow:
		return "Low"
	case TicketPriorityMedium:
		return "Medium"
	case TicketPriorityHigh:
		return "High"
	case TicketPriorityCritical:
		return "Critical"
	}
	return string(p)
}

// TicketCategory is the request type chosen when the ticket was opened.
type TicketCategory string

const (
	CategoryPromotionRequest TicketCategory = "promotion-request"
	CategoryGeneralQuestion  TicketCategory = "general-question"
	CategoryInternalAffairs  TicketCategory = "internal-affairs"
)

// TicketCategories lists every known category.
var TicketCategories = []TicketCategory{CategoryPromotionRequest, CategoryGeneralQuestion, CategoryInternalAffairs}

// Valid reports whether the category is a known value.
func (c TicketCategory) Valid() bool {
	switch c {
	case CategoryPromotionRequest, CategoryGeneralQuestion, CategoryInternalAffairs:
		return true
	}
	return false
}

// Label is the display name for the category.
func (c TicketCategory) Label() string {
	switch c {
	case CategoryPromotionRequest:
		return "Promotion Request"
	case CategoryGeneralQuestion:
		return "General Question"
	case CategoryInternalAffairs:
		return "Internal Affairs"
	}
	return string(c)
}

// ThreadMode tells the thread resolver where a ticket's messages come from.
type ThreadMode string

const (
	// ThreadModeInline tickets carry their messages verbatim.
	ThreadModeInline ThreadMode = "inline"
	// ThreadModeSynthesized tickets get a placeholder thread built from category templates.
	ThreadModeSynthesized ThreadMode = "synthesized"
)

// Requester identifies the member who opened the ticket.
type Requester struct {
	Name       string
	Avatar     string
	PlatformID string
}

// Ticket is the aggregate for support requests.
type Ticket struct {
	ID                 string
	Requester          Requester
	Category           TicketCategory
	Status             TicketStatus
	Priority           TicketPriority
	CreatedAt          time.Time
	ClosedAt           *time.Time
	AssignedOfficer    *string
	SatisfactionRating int
	ThreadMode         ThreadMode
	Messages           []Message
}

// IsClosed reports whether the ticket reached the closed status.
func (t *Ticket) IsClosed() bool {
	return t.Status == TicketStatusClosed
}

// IsRated reports whether the requester left a satisfaction rating.
func (t *Ticket) IsRated() bool {
	return t.SatisfactionRating > 0
}

// ResolutionTime is closedAt minus createdAt. ok is false when the ticket is
// not closed or has no closure timestamp.
func (t *Ticket) ResolutionTime() (d time.Duration, ok bool) {
	if !t.IsClosed() || t.ClosedAt == nil {
		return 0, false
	}
	return t.ClosedAt.Sub(t.CreatedAt), true
}

// Clone returns a deep copy so callers can never alias store state.
func (t Ticket) Clone() Ticket {
	out := t
	if t.ClosedAt != nil {
		closed := *t.ClosedAt
		out.ClosedAt = &closed
	}
	if t.AssignedOfficer != nil {
		officer := *t.AssignedOfficer
		out.AssignedOfficer = &officer
	}
	out.Messages = CloneMessages(t.Messages)
	return out
}
