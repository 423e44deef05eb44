package thread

import (
	"fmt"
	"strings"
	"time"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
)

// DefaultStaffName signs staff messages on tickets nobody was assigned to.
const DefaultStaffName = "Support Staff"

// OpenTicketStep spaces messages on tickets that have no closure timestamp.
const OpenTicketStep = 20 * time.Minute

// ClosingLead is how long before closure the requester acknowledges it.
const ClosingLead = 5 * time.Minute

const avatarCount = 6

// Synthesize builds a placeholder thread for the ticket from the catalog.
// The result depends only on the ticket and seed, so repeated calls agree.
// Categories without templates get an empty thread.
func (c Catalog) Synthesize(ticket *domain.Ticket, seed int64) []domain.Message {
	variants := c[ticket.Category]
	if len(variants) == 0 {
		return []domain.Message{}
	}
	tpl := variants[selectIndex(ticket.ID, seed, len(variants))]

	officer := DefaultStaffName
	if ticket.AssignedOfficer != nil && strings.TrimSpace(*ticket.AssignedOfficer) != "" {
		officer = *ticket.AssignedOfficer
	}
	replacer := strings.NewReplacer(
		"{requester}", firstName(ticket.Requester.Name),
		"{officer}", officer,
	)
	requester := domain.MessageAuthor{Name: ticket.Requester.Name, Avatar: ticket.Requester.Avatar}
	staff := domain.MessageAuthor{Name: officer, Avatar: AvatarURL(officer), IsStaff: true}

	closing := ticket.IsClosed() && ticket.ClosedAt != nil && tpl.Closing != ""
	at := timeline(ticket, len(tpl.Responses), closing)

	msgs := make([]domain.Message, 0, len(tpl.Responses)+2)
	msgs = append(msgs, domain.Message{
		Author:      requester,
		Content:     replacer.Replace(tpl.Opening),
		Timestamp:   ticket.CreatedAt,
		Attachments: append([]domain.Attachment{}, tpl.OpeningAttachments...),
	})
	for i, body := range tpl.Responses {
		msgs = append(msgs, domain.Message{
			Author:      staff,
			Content:     replacer.Replace(body),
			Timestamp:   at(i + 1),
			Attachments: []domain.Attachment{},
		})
	}
	if closing {
		msgs = append(msgs, domain.Message{
			Author:      requester,
			Content:     replacer.Replace(tpl.Closing),
			Timestamp:   at(len(tpl.Responses) + 1),
			Attachments: []domain.Attachment{},
		})
	}
	for i := range msgs {
		msgs[i].ID = fmt.Sprintf("msg-%d", i+1)
	}
	return msgs
}

// timeline returns the timestamp of the nth message after the opening one.
// On closed tickets the requester's closing message lands ClosingLead before
// closedAt (less on very short tickets) and the staff responses are spread
// evenly before it; other tickets step by OpenTicketStep.
func timeline(ticket *domain.Ticket, responses int, closing bool) func(n int) time.Time {
	if ticket.ClosedAt == nil {
		return func(n int) time.Time {
			return ticket.CreatedAt.Add(time.Duration(n) * OpenTicketStep)
		}
	}
	end := *ticket.ClosedAt
	if closing {
		span := end.Sub(ticket.CreatedAt)
		end = end.Add(-min(ClosingLead, span/time.Duration(responses+2)))
	}
	slot := end.Sub(ticket.CreatedAt) / time.Duration(responses+1)
	return func(n int) time.Time {
		if n > responses {
			return end
		}
		return ticket.CreatedAt.Add(time.Duration(n) * slot)
	}
}

// selectIndex maps a ticket id and seed onto [0, length).
func selectIndex(key string, seed int64, length int) int {
	if length <= 0 {
		return 0
	}
	sum := uint64(seed)
	for _, ch := range key {
		sum = sum*31 + uint64(ch)
	}
	return int(sum % uint64(length))
}

// AvatarURL picks one of the platform's default avatars for a display name.
func AvatarURL(name string) string {
	return fmt.Sprintf("https://cdn.discordapp.com/embed/avatars/%d.png", selectIndex(name, 0, avatarCount))
}

func firstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "there"
	}
	return fields[0]
}
