package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-dashboard/internal/api/dto"
	"github.com/spec-kit/ticket-dashboard/internal/domain"
	"github.com/spec-kit/ticket-dashboard/internal/query"
	"github.com/spec-kit/ticket-dashboard/internal/service"
	apperrors "github.com/spec-kit/ticket-dashboard/pkg/util/errorutil"
)

// MaxPageSize caps the page_size query parameter.
const MaxPageSize = 100

// TicketsHandler serves the dashboard ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// ListTickets GET /api/tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	opts, err := parseListQuery(c)
	if err != nil {
		return err
	}
	res, err := h.service.List(c.UserContext(), opts)
	if err != nil {
		return err
	}

	resp := dto.TicketListResponse{Success: true, Total: res.Total}
	rows := res.Tickets

	if c.Query("page") != "" {
		page, err := parsePositiveInt(c.Query("page"), "page")
		if err != nil {
			return err
		}
		size := query.DefaultPageSize
		if raw := c.Query("page_size"); raw != "" {
			if size, err = parsePositiveInt(raw, "page_size"); err != nil {
				return err
			}
			size = min(size, MaxPageSize)
		}
		if err := query.ValidatePage(page, res.Total, size); err != nil {
			return apperrors.NewValidationError("page out of range", map[string]any{
				"page":       page,
				"totalPages": query.PageCount(res.Total, size),
			})
		}
		rows = query.Page(rows, page, size)
		pagination := paginationResponse(query.Window(res.Total, page, size))
		resp.Pagination = &pagination
	}

	resp.Tickets = make([]dto.TicketSummary, 0, len(rows))
	for i := range rows {
		resp.Tickets = append(resp.Tickets, ticketSummary(&rows[i]))
	}
	return c.JSON(resp)
}

// ListClosed GET /api/tickets/closed.
func (h *TicketsHandler) ListClosed(c *fiber.Ctx) error {
	rows, err := h.service.ListClosed(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.TicketSummary, 0, len(rows))
	for i := range rows {
		items = append(items, ticketSummary(&rows[i]))
	}
	return c.JSON(items)
}

// Stats GET /api/tickets/stats and /api/stats.
func (h *TicketsHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.StatsResponse{
		Total:                stats.Total,
		Open:                 stats.Open,
		Pending:              stats.Pending,
		TotalClosed:          stats.Closed,
		TodayClosed:          stats.TodayClosed,
		ByCategory:           stats.ByCategory,
		ByPriority:           stats.ByPriority,
		RatedCount:           stats.RatedCount,
		SatisfactionRate:     stats.AvgRating,
		AvgResolutionTime:    stats.AvgResolution,
		AvgResolutionMinutes: stats.AvgResolutionMinutes,
		Excluded:             stats.Excluded,
	})
}

// GetTicket GET /api/tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	detail, err := h.service.GetTicket(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	summary := query.Summarize(detail.Ticket)
	return c.JSON(fiber.Map{
		"success": true,
		"ticket": dto.TicketDetailResponse{
			TicketSummary: ticketSummary(&summary),
			ThreadMode:    detail.Ticket.ThreadMode,
			Messages:      messageResponses(detail.Messages),
		},
	})
}

// Messages GET /api/tickets/:ticketId/messages.
func (h *TicketsHandler) Messages(c *fiber.Ctx) error {
	msgs, err := h.service.Messages(c.UserContext(), c.Params("ticketId"))
	if err != nil {
		return err
	}
	return c.JSON(messageResponses(msgs))
}

// AddTicket POST /api/tickets/add.
func (h *TicketsHandler) AddTicket(c *fiber.Ctx) error {
	var req dto.IngestTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.TicketIngestInput{
		ID:                  req.ID,
		RequesterName:       req.Requester.Name,
		RequesterAvatar:     req.Requester.Avatar,
		RequesterPlatformID: req.Requester.PlatformID,
		Category:            req.Category,
		Status:              req.Status,
		Priority:            req.Priority,
		CreatedAt:           req.CreatedAt,
		ClosedAt:            req.ClosedAt,
		AssignedOfficer:     req.AssignedOfficer,
		SatisfactionRating:  req.SatisfactionRating,
	}
	for _, m := range req.Messages {
		msg := service.MessageIngestInput{
			ID:           m.ID,
			AuthorName:   m.Author.Name,
			AuthorAvatar: m.Author.Avatar,
			IsStaff:      m.Author.IsStaff,
			Content:      m.Content,
			Timestamp:    m.Timestamp,
		}
		for _, a := range m.Attachments {
			msg.Attachments = append(msg.Attachments, service.AttachmentIngestInput{Name: a.Name, URL: a.URL, Kind: a.Type})
		}
		input.Messages = append(input.Messages, msg)
	}

	ticket, err := h.service.Ingest(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.IngestTicketResponse{
		Success: true,
		Message: "ticket added",
		ID:      ticket.ID,
	})
}

// parseListQuery passes enum filters through unchecked; a value no ticket can
// carry simply matches nothing.
func parseListQuery(c *fiber.Ctx) (query.Options, error) {
	opts := query.Options{}
	for _, part := range splitList(c.Query("status")) {
		opts.Filter.Statuses = append(opts.Filter.Statuses, domain.TicketStatus(part))
	}
	for _, part := range splitList(c.Query("category")) {
		opts.Filter.Categories = append(opts.Filter.Categories, domain.TicketCategory(part))
	}
	for _, part := range splitList(c.Query("priority")) {
		opts.Filter.Priorities = append(opts.Filter.Priorities, domain.TicketPriority(part))
	}
	opts.Filter.Search = strings.TrimSpace(c.Query("search"))

	if raw := strings.TrimSpace(c.Query("sort")); raw != "" {
		key := query.SortKey(raw)
		if !key.Valid() {
			return opts, invalidParam("sort", raw)
		}
		opts.SortBy = key
	}
	return opts, nil
}

func splitList(val string) []string {
	if val == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parsePositiveInt(val, param string) (int, error) {
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed < 1 {
		return 0, invalidParam(param, val)
	}
	return parsed, nil
}

func invalidParam(param, value string) error {
	return apperrors.NewValidationError("invalid "+param, map[string]any{param: value})
}

func ticketSummary(s *query.Summary) dto.TicketSummary {
	out := dto.TicketSummary{
		ID: s.ID,
		Requester: dto.RequesterResponse{
			Name:       s.Requester.Name,
			Avatar:     s.Requester.Avatar,
			PlatformID: s.Requester.PlatformID,
		},
		Category:           s.Category,
		CategoryLabel:      s.Category.Label(),
		Status:             s.Status,
		StatusLabel:        s.Status.Label(),
		Priority:           s.Priority,
		PriorityLabel:      s.Priority.Label(),
		CreatedAt:          s.CreatedAt,
		ClosedAt:           s.ClosedAt,
		AssignedOfficer:    s.AssignedOfficer,
		SatisfactionRating: s.SatisfactionRating,
	}
	if s.Status == domain.TicketStatusClosed && s.ClosedAt != nil {
		out.Duration = query.FormatDuration(s.ClosedAt.Sub(s.CreatedAt))
	}
	return out
}

func messageResponses(msgs []domain.Message) []dto.MessageResponse {
	out := make([]dto.MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		attachments := make([]dto.AttachmentResponse, 0, len(m.Attachments))
		for _, a := range m.Attachments {
			attachments = append(attachments, dto.AttachmentResponse{Name: a.Name, URL: a.URL, Type: a.Kind})
		}
		out = append(out, dto.MessageResponse{
			ID: m.ID,
			Author: dto.MessageAuthorResponse{
				Name:    m.Author.Name,
				Avatar:  m.Author.Avatar,
				IsStaff: m.Author.IsStaff,
			},
			Content:     m.Content,
			Timestamp:   m.Timestamp,
			Attachments: attachments,
		})
	}
	return out
}

func paginationResponse(p query.Pagination) dto.PaginationResponse {
	pages := p.Pages
	if pages == nil {
		pages = []int{}
	}
	return dto.PaginationResponse{
		Page:             p.Page,
		PageSize:         p.PageSize,
		TotalItems:       p.TotalItems,
		TotalPages:       p.TotalPages,
		HasPrev:          p.HasPrev,
		HasNext:          p.HasNext,
		Pages:            pages,
		ShowFirst:        p.ShowFirst,
		LeadingEllipsis:  p.LeadingEllipsis,
		ShowLast:         p.ShowLast,
		TrailingEllipsis: p.TrailingEllipsis,
		StartItem:        p.StartItem,
		EndItem:          p.EndItem,
	}
}
