package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
	"github.com/spec-kit/ticket-dashboard/internal/events"
	"github.com/spec-kit/ticket-dashboard/internal/query"
	"github.com/spec-kit/ticket-dashboard/internal/repository"
	"github.com/spec-kit/ticket-dashboard/internal/thread"
	apperrors "github.com/spec-kit/ticket-dashboard/pkg/util/errorutil"
)

// StoreMetrics receives store level counters. *observability.Metrics
// satisfies it.
type StoreMetrics interface {
	SetTicketsStored(n int)
	RecordIngested()
}

// TicketService coordinates dashboard reads and ticket ingestion.
type TicketService struct {
	tickets    repository.TicketRepository
	threads    *thread.Resolver
	dispatcher events.Dispatcher
	metrics    StoreMetrics
	now        func() time.Time
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Threads    *thread.Resolver
	Dispatcher events.Dispatcher
	Metrics    StoreMetrics
	Clock      func() time.Time
}

// TicketDetail is a ticket together with its resolved thread.
type TicketDetail struct {
	Ticket   domain.Ticket
	Messages []domain.Message
}

// TicketIngestInput describes a ticket submitted for ingestion. Enum fields
// are free text and normalized before validation.
type TicketIngestInput struct {
	ID                  string
	RequesterName       string
	RequesterAvatar     string
	RequesterPlatformID string
	Category            string
	Status              string
	Priority            string
	CreatedAt           *time.Time
	ClosedAt            *time.Time
	AssignedOfficer     *string
	SatisfactionRating  int
	Messages            []MessageIngestInput
}

// MessageIngestInput describes one message of an ingested thread.
type MessageIngestInput struct {
	ID           string
	AuthorName   string
	AuthorAvatar string
	IsStaff      bool
	Content      string
	Timestamp    time.Time
	Attachments  []AttachmentIngestInput
}

// AttachmentIngestInput defines attachment metadata.
type AttachmentIngestInput struct {
	Name string
	URL  string
	Kind string
}

// NewTicketService wires dependencies.
func NewTicketService(deps TicketDependencies) *TicketService {
	threads := deps.Threads
	if threads == nil {
		threads = thread.NewResolver(deps.TicketRepo, nil, 0)
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &TicketService{
		tickets:    deps.TicketRepo,
		threads:    threads,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		now:        clock,
	}
}

// List filters and sorts the store.
func (s *TicketService) List(ctx context.Context, opts query.Options) (query.Result, error) {
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return query.Result{}, err
	}
	return query.List(tickets, opts), nil
}

// ListClosed returns closed tickets, most recently closed first.
func (s *TicketService) ListClosed(ctx context.Context) ([]query.Summary, error) {
	res, err := s.List(ctx, query.Options{
		Filter: query.Filter{Statuses: []domain.TicketStatus{domain.TicketStatusClosed}},
		SortBy: query.SortByClosedAt,
	})
	if err != nil {
		return nil, err
	}
	return res.Tickets, nil
}

// Stats aggregates the whole store at the current instant.
func (s *TicketService) Stats(ctx context.Context) (query.Stats, error) {
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return query.Stats{}, err
	}
	return query.ComputeStats(tickets, s.now()), nil
}

// GetTicket returns the ticket and its resolved thread.
func (s *TicketService) GetTicket(ctx context.Context, id string) (*TicketDetail, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(id, err)
	}
	return &TicketDetail{Ticket: *ticket, Messages: s.threads.Thread(ticket)}, nil
}

// Messages returns only the resolved thread.
func (s *TicketService) Messages(ctx context.Context, id string) ([]domain.Message, error) {
	msgs, err := s.threads.Get(ctx, id)
	if err != nil {
		return nil, s.lookupError(id, err)
	}
	return msgs, nil
}

// Ingest normalizes, validates and appends a new ticket, then publishes
// ticket_ingested.
func (s *TicketService) Ingest(ctx context.Context, input TicketIngestInput) (*domain.Ticket, error) {
	ticket := s.normalize(input)

	if err := ticket.Validate(); err != nil {
		var verrs domain.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, apperrors.NewValidationError("invalid ticket", verrs.Details())
		}
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}

	if err := s.tickets.Append(ctx, ticket); err != nil {
		if errors.Is(err, domain.ErrDuplicateTicket) {
			return nil, apperrors.NewConflict(
				fmt.Sprintf("ticket %s already exists", ticket.ID),
				map[string]any{"ticket_id": ticket.ID},
			)
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordIngested()
		if n, err := s.tickets.Count(ctx); err == nil {
			s.metrics.SetTicketsStored(n)
		}
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketIngested,
		TicketID: ticket.ID,
		Payload: events.TicketIngestedPayload{
			Requester:    ticket.Requester.Name,
			Category:     ticket.Category,
			Status:       ticket.Status,
			Priority:     ticket.Priority,
			MessageCount: len(ticket.Messages),
		},
	})
	return &ticket, nil
}

func (s *TicketService) normalize(input TicketIngestInput) domain.Ticket {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		id = generateTicketKey()
	}
	name := strings.TrimSpace(input.RequesterName)
	avatar := strings.TrimSpace(input.RequesterAvatar)
	if avatar == "" && name != "" {
		avatar = thread.AvatarURL(name)
	}

	status := domain.TicketStatus(normalizeEnum(input.Status))
	if status == "" {
		status = domain.TicketStatusOpen
	}
	priority := domain.TicketPriority(normalizeEnum(input.Priority))
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}

	createdAt := s.now()
	if input.CreatedAt != nil {
		createdAt = *input.CreatedAt
	}

	ticket := domain.Ticket{
		ID: id,
		Requester: domain.Requester{
			Name:       name,
			Avatar:     avatar,
			PlatformID: strings.TrimSpace(input.RequesterPlatformID),
		},
		Category:           domain.TicketCategory(normalizeEnum(input.Category)),
		Status:             status,
		Priority:           priority,
		CreatedAt:          createdAt,
		SatisfactionRating: input.SatisfactionRating,
		ThreadMode:         domain.ThreadModeInline,
		Messages:           make([]domain.Message, 0, len(input.Messages)),
	}
	if input.ClosedAt != nil {
		closed := *input.ClosedAt
		ticket.ClosedAt = &closed
	}
	if input.AssignedOfficer != nil {
		if officer := strings.TrimSpace(*input.AssignedOfficer); officer != "" {
			ticket.AssignedOfficer = &officer
		}
	}

	for _, m := range input.Messages {
		msgID := strings.TrimSpace(m.ID)
		if msgID == "" {
			msgID = uuid.NewString()
		}
		author := strings.TrimSpace(m.AuthorName)
		authorAvatar := strings.TrimSpace(m.AuthorAvatar)
		if authorAvatar == "" && author != "" {
			authorAvatar = thread.AvatarURL(author)
		}
		msg := domain.Message{
			ID:        msgID,
			Author:    domain.MessageAuthor{Name: author, Avatar: authorAvatar, IsStaff: m.IsStaff},
			Content:   strings.TrimSpace(m.Content),
			Timestamp: m.Timestamp,
		}
		for _, a := range m.Attachments {
			msg.Attachments = append(msg.Attachments, domain.Attachment{
				Name: strings.TrimSpace(a.Name),
				URL:  strings.TrimSpace(a.URL),
				Kind: domain.AttachmentKind(normalizeEnum(a.Kind)),
			})
		}
		ticket.Messages = append(ticket.Messages, msg)
	}
	return ticket
}

func (s *TicketService) lookupError(id string, err error) error {
	if errors.Is(err, domain.ErrTicketNotFound) {
		return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
	}
	return err
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func generateTicketKey() string {
	return "TK-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func normalizeEnum(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
