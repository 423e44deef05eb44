package dto

import (
	"time"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
)

// RequesterResponse identifies the member who opened a ticket.
type RequesterResponse struct {
	Name       string `json:"name"`
	Avatar     string `json:"avatar"`
	PlatformID string `json:"platformId,omitempty"`
}

// TicketSummary is a list row. Labels are derived from the enums on every
// request.
type TicketSummary struct {
	ID                 string                `json:"id"`
	Requester          RequesterResponse     `json:"requester"`
	Category           domain.TicketCategory `json:"category"`
	CategoryLabel      string                `json:"categoryLabel"`
	Status             domain.TicketStatus   `json:"status"`
	StatusLabel        string                `json:"statusLabel"`
	Priority           domain.TicketPriority `json:"priority"`
	PriorityLabel      string                `json:"priorityLabel"`
	CreatedAt          time.Time             `json:"createdAt"`
	ClosedAt           *time.Time            `json:"closedAt,omitempty"`
	Duration           string                `json:"duration,omitempty"`
	AssignedOfficer    *string               `json:"assignedOfficer,omitempty"`
	SatisfactionRating int                   `json:"satisfactionRating"`
}

// TicketDetailResponse is a summary plus the resolved thread.
type TicketDetailResponse struct {
	TicketSummary
	ThreadMode domain.ThreadMode `json:"threadMode"`
	Messages   []MessageResponse `json:"messages"`
}

// MessageAuthorResponse describes who wrote a message.
type MessageAuthorResponse struct {
	Name    string `json:"name"`
	Avatar  string `json:"avatar"`
	IsStaff bool   `json:"isStaff"`
}

// MessageResponse represents a thread message.
type MessageResponse struct {
	ID          string                `json:"id"`
	Author      MessageAuthorResponse `json:"author"`
	Content     string                `json:"content"`
	Timestamp   time.Time             `json:"timestamp"`
	Attachments []AttachmentResponse  `json:"attachments"`
}

// AttachmentResponse describes an attached file.
type AttachmentResponse struct {
	Name string                `json:"name"`
	URL  string                `json:"url"`
	Type domain.AttachmentKind `json:"type"`
}

// PaginationResponse mirrors the dashboard pager.
type PaginationResponse struct {
	Page             int   `json:"page"`
	PageSize         int   `json:"pageSize"`
	TotalItems       int   `json:"totalItems"`
	TotalPages       int   `json:"totalPages"`
	HasPrev          bool  `json:"hasPrev"`
	HasNext          bool  `json:"hasNext"`
	Pages            []int `json:"pages"`
	ShowFirst        bool  `json:"showFirst"`
	LeadingEllipsis  bool  `json:"leadingEllipsis"`
	ShowLast         bool  `json:"showLast"`
	TrailingEllipsis bool  `json:"trailingEllipsis"`
	StartItem        int   `json:"startItem"`
	EndItem          int   `json:"endItem"`
}

// TicketListResponse is the GET /api/tickets body.
type TicketListResponse struct {
	Success    bool                `json:"success"`
	Tickets    []TicketSummary     `json:"tickets"`
	Total      int                 `json:"total"`
	Pagination *PaginationResponse `json:"pagination,omitempty"`
}

// StatsResponse carries dashboard aggregates. totalClosed, todayClosed,
// avgResolutionTime and satisfactionRate keep the names the dashboard cards
// read.
type StatsResponse struct {
	Total                int                           `json:"total"`
	Open                 int                           `json:"open"`
	Pending              int                           `json:"pending"`
	TotalClosed          int                           `json:"totalClosed"`
	TodayClosed          int                           `json:"todayClosed"`
	ByCategory           map[domain.TicketCategory]int `json:"byCategory"`
	ByPriority           map[domain.TicketPriority]int `json:"byPriority"`
	RatedCount           int                           `json:"ratedCount"`
	SatisfactionRate     float64                       `json:"satisfactionRate"`
	AvgResolutionTime    string                        `json:"avgResolutionTime"`
	AvgResolutionMinutes int                           `json:"avgResolutionMinutes"`
	Excluded             int                           `json:"excluded"`
}

// IngestTicketRequest is the POST /api/tickets/add payload.
type IngestTicketRequest struct {
	ID                 string                 `json:"id"`
	Requester          IngestRequester        `json:"requester"`
	Category           string                 `json:"category"`
	Status             string                 `json:"status"`
	Priority           string                 `json:"priority"`
	CreatedAt          *time.Time             `json:"createdAt"`
	ClosedAt           *time.Time             `json:"closedAt"`
	AssignedOfficer    *string                `json:"assignedOfficer"`
	SatisfactionRating int                    `json:"satisfactionRating"`
	Messages           []IngestMessageRequest `json:"messages"`
}

// IngestRequester payload.
type IngestRequester struct {
	Name       string `json:"name"`
	Avatar     string `json:"avatar"`
	PlatformID string `json:"platformId"`
}

// IngestMessageRequest payload.
type IngestMessageRequest struct {
	ID          string                    `json:"id"`
	Author      MessageAuthorResponse     `json:"author"`
	Content     string                    `json:"content"`
	Timestamp   time.Time                 `json:"timestamp"`
	Attachments []IngestAttachmentRequest `json:"attachments"`
}

// IngestAttachmentRequest payload.
type IngestAttachmentRequest struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

// IngestTicketResponse acknowledges an appended ticket.
type IngestTicketResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}
