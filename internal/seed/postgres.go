package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
)

// Querier is satisfied by *pgxpool.Pool and pgx.Conn.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresSource imports tickets from the dashboard_tickets table. It only
// reads; the store never writes back.
type PostgresSource struct {
	db     Querier
	logger *zap.Logger
}

// NewPostgresSource builds a source over a pool or connection. A nil logger
// discards warnings about skipped rows.
func NewPostgresSource(db Querier, logger *zap.Logger) *PostgresSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostgresSource{db: db, logger: logger}
}

func (s *PostgresSource) Name() string { return "postgres" }

type ticketRow struct {
	ID                  string     `db:"id"`
	RequesterName       string     `db:"requester_name"`
	RequesterAvatar     string     `db:"requester_avatar"`
	RequesterPlatformID string     `db:"requester_platform_id"`
	Category            string     `db:"category"`
	Status              string     `db:"status"`
	Priority            string     `db:"priority"`
	CreatedAt           time.Time  `db:"created_at"`
	ClosedAt            *time.Time `db:"closed_at"`
	AssignedOfficer     *string    `db:"assigned_officer"`
	SatisfactionRating  int32      `db:"satisfaction_rating"`
	Messages            []byte     `db:"messages"`
}

type messageRecord struct {
	ID     string `json:"id"`
	Author struct {
		Name    string `json:"name"`
		Avatar  string `json:"avatar"`
		IsStaff bool   `json:"isStaff"`
	} `json:"author"`
	Content     string             `json:"content"`
	Timestamp   time.Time          `json:"timestamp"`
	Attachments []attachmentRecord `json:"attachments"`
}

type attachmentRecord struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Kind string `json:"kind"`
}

// Load reads every row ordered by insertion sequence. Rows whose messages
// column cannot be decoded are logged and skipped.
func (s *PostgresSource) Load(ctx context.Context) ([]domain.Ticket, error) {
	if s.db == nil {
		return nil, fmt.Errorf("postgres source: no database configured")
	}
	const query = `
        SELECT id, requester_name, requester_avatar, requester_platform_id, category, status, priority,
               created_at, closed_at, assigned_officer, satisfaction_rating, messages
        FROM dashboard_tickets ORDER BY seq ASC`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query dashboard_tickets: %w", err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[ticketRow])
	if err != nil {
		return nil, fmt.Errorf("scan dashboard_tickets: %w", err)
	}

	tickets := make([]domain.Ticket, 0, len(records))
	for _, rec := range records {
		ticket, err := rec.toDomain()
		if err != nil {
			s.logger.Warn("skipping undecodable ticket row", zap.String("ticket_id", rec.ID), zap.Error(err))
			continue
		}
		tickets = append(tickets, ticket)
	}
	return tickets, nil
}

// toDomain converts a row. A NULL messages column means the thread is
// synthesized; an empty JSON array is an inline, empty thread.
func (r ticketRow) toDomain() (domain.Ticket, error) {
	ticket := domain.Ticket{
		ID: r.ID,
		Requester: domain.Requester{
			Name:       r.RequesterName,
			Avatar:     r.RequesterAvatar,
			PlatformID: r.RequesterPlatformID,
		},
		Category:           domain.TicketCategory(r.Category),
		Status:             domain.TicketStatus(r.Status),
		Priority:           domain.TicketPriority(r.Priority),
		CreatedAt:          r.CreatedAt,
		ClosedAt:           r.ClosedAt,
		AssignedOfficer:    r.AssignedOfficer,
		SatisfactionRating: int(r.SatisfactionRating),
		ThreadMode:         domain.ThreadModeSynthesized,
	}
	if r.Messages == nil {
		return ticket, nil
	}

	var records []messageRecord
	if err := json.Unmarshal(r.Messages, &records); err != nil {
		return domain.Ticket{}, err
	}
	ticket.ThreadMode = domain.ThreadModeInline
	ticket.Messages = make([]domain.Message, 0, len(records))
	for _, rec := range records {
		msg := domain.Message{
			ID: rec.ID,
			Author: domain.MessageAuthor{
				Name:    rec.Author.Name,
				Avatar:  rec.Author.Avatar,
				IsStaff: rec.Author.IsStaff,
			},
			Content:     rec.Content,
			Timestamp:   rec.Timestamp,
			Attachments: make([]domain.Attachment, 0, len(rec.Attachments)),
		}
		for _, att := range rec.Attachments {
			msg.Attachments = append(msg.Attachments, domain.Attachment{
				Name: att.Name,
				URL:  att.URL,
				Kind: domain.AttachmentKind(att.Kind),
			})
		}
		ticket.Messages = append(ticket.Messages, msg)
	}
	return ticket, nil
}
