package seed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
)

var (
	firstNames = []string{"Ana", "Carlos", "Beatriz", "Diego", "Elena", "Fernando", "Gabriela", "Hugo", "Isabel", "Jorge"}
	surnames   = []string{"Silva", "Santos", "Costa", "Oliveira", "Pereira", "Lima", "Alves", "Ferreira", "Rodrigues", "Martins"}
	officers   = []string{"Sgt. Martinez", "Cap. Rodriguez", "Ten. Silva", "Cb. Santos", "Sd. Oliveira"}
)

// DemoSource generates a reproducible mock collection. The same Seed, Count
// and Now always produce the same tickets.
type DemoSource struct {
	Seed  int64
	Count int
	Now   func() time.Time
}

func (s DemoSource) Name() string { return "demo" }

// Load returns the three curated tickets (with stored threads) followed by
// generated tickets whose threads are synthesized on demand.
func (s DemoSource) Load(ctx context.Context) ([]domain.Ticket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Count <= 0 {
		return []domain.Ticket{}, nil
	}
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	rng := rand.New(rand.NewPCG(uint64(s.Seed), uint64(s.Seed)^0x9e3779b97f4a7c15))

	curated := curatedTickets(now)
	if s.Count <= len(curated) {
		return curated[:s.Count], nil
	}
	tickets := make([]domain.Ticket, 0, s.Count)
	tickets = append(tickets, curated...)
	for i := len(curated) + 1; i <= s.Count; i++ {
		tickets = append(tickets, generateTicket(rng, i, now))
	}
	return tickets, nil
}

func generateTicket(rng *rand.Rand, n int, now time.Time) domain.Ticket {
	hoursAgo := time.Duration(rng.IntN(48)+1) * time.Hour
	duration := time.Duration(rng.IntN(180)+15) * time.Minute

	ticket := domain.Ticket{
		ID: fmt.Sprintf("TK-%03d", n),
		Requester: domain.Requester{
			Name:       firstNames[rng.IntN(len(firstNames))] + " " + surnames[rng.IntN(len(surnames))],
			Avatar:     avatar(rng.IntN(6)),
			PlatformID: fmt.Sprintf("%d", 100000000000000000+rng.Int64N(900000000000000000)),
		},
		Category:   domain.TicketCategories[rng.IntN(len(domain.TicketCategories))],
		Priority:   domain.TicketPriorities[rng.IntN(len(domain.TicketPriorities))],
		ThreadMode: domain.ThreadModeSynthesized,
	}

	switch roll := rng.IntN(10); {
	case roll < 6:
		ticket.Status = domain.TicketStatusClosed
	case roll < 8:
		ticket.Status = domain.TicketStatusPending
	default:
		ticket.Status = domain.TicketStatusOpen
	}

	if ticket.Status == domain.TicketStatusClosed {
		closedAt := now.Add(-hoursAgo)
		ticket.ClosedAt = &closedAt
		ticket.CreatedAt = closedAt.Add(-duration)
		if rng.IntN(5) > 0 {
			ticket.SatisfactionRating = rng.IntN(2) + 4
		}
	} else {
		ticket.CreatedAt = now.Add(-hoursAgo).Add(-time.Duration(rng.IntN(60)) * time.Minute)
	}

	if ticket.Status != domain.TicketStatusOpen || rng.IntN(2) == 0 {
		officer := officers[rng.IntN(len(officers))]
		ticket.AssignedOfficer = &officer
	}
	return ticket
}

func avatar(n int) string {
	return fmt.Sprintf("https://cdn.discordapp.com/embed/avatars/%d.png", n)
}

func curatedTickets(now time.Time) []domain.Ticket {
	ago := func(d time.Duration) time.Time { return now.Add(-d) }
	ptr := func(v string) *string { return &v }
	at := func(v time.Time) *time.Time { return &v }

	requester := func(name string, n int) domain.MessageAuthor {
		return domain.MessageAuthor{Name: name, Avatar: avatar(n)}
	}
	staff := func(name string, n int) domain.MessageAuthor {
		return domain.MessageAuthor{Name: name, Avatar: avatar(n), IsStaff: true}
	}
	none := []domain.Attachment{}

	joao := requester("Joao Silva", 0)
	martinez := staff("Sgt. Martinez", 3)
	maria := requester("Maria Santos", 1)
	rodriguez := staff("Cap. Rodriguez", 4)
	pedro := requester("Pedro Costa", 2)
	silva := staff("Ten. Silva", 5)

	return []domain.Ticket{
		{
			ID:                 "TK-001",
			Requester:          domain.Requester{Name: joao.Name, Avatar: joao.Avatar, PlatformID: "123456789"},
			Category:           domain.CategoryPromotionRequest,
			Status:             domain.TicketStatusClosed,
			Priority:           domain.TicketPriorityHigh,
			CreatedAt:          ago(4 * time.Hour),
			ClosedAt:           at(ago(2 * time.Hour)),
			AssignedOfficer:    ptr(martinez.Name),
			SatisfactionRating: 5,
			ThreadMode:         domain.ThreadModeInline,
			Messages: []domain.Message{
				{ID: "msg-1", Author: joao, Timestamp: ago(4 * time.Hour), Attachments: none,
					Content: "Hi! I'd like to request my promotion to Corporal. I've been on the server for 3 months and met every requirement."},
				{ID: "msg-2", Author: martinez, Timestamp: ago(210 * time.Minute), Attachments: none,
					Content: "Hello Joao! I'll review your request. Can you send me a screenshot of your service time?"},
				{ID: "msg-3", Author: joao, Timestamp: ago(3 * time.Hour),
					Content: "Sure! Here is the screenshot of my service time.",
					Attachments: []domain.Attachment{
						{Name: "service-time.png", URL: "https://via.placeholder.com/400x200/4F46E5/FFFFFF?text=Service+Time", Kind: domain.AttachmentKindImage},
					}},
				{ID: "msg-4", Author: martinez, Timestamp: ago(2 * time.Hour), Attachments: none,
					Content: "Perfect! Your paperwork is in order. Promotion approved, congratulations Corporal Joao!"},
			},
		},
		{
			ID:                 "TK-002",
			Requester:          domain.Requester{Name: maria.Name, Avatar: maria.Avatar, PlatformID: "123456790"},
			Category:           domain.CategoryGeneralQuestion,
			Status:             domain.TicketStatusClosed,
			Priority:           domain.TicketPriorityMedium,
			CreatedAt:          ago(2 * time.Hour),
			ClosedAt:           at(ago(1 * time.Hour)),
			AssignedOfficer:    ptr(rodriguez.Name),
			SatisfactionRating: 4,
			ThreadMode:         domain.ThreadModeInline,
			Messages: []domain.Message{
				{ID: "msg-1", Author: maria, Timestamp: ago(2 * time.Hour), Attachments: none,
					Content: "Hi! I'm new on the server and have a few questions about the patrol rules."},
				{ID: "msg-2", Author: rodriguez, Timestamp: ago(108 * time.Minute), Attachments: none,
					Content: "Hello Maria, welcome! What are your specific questions about patrols?"},
				{ID: "msg-3", Author: maria, Timestamp: ago(90 * time.Minute), Attachments: none,
					Content: "I'd like to know the patrol hours and how to report incidents."},
				{ID: "msg-4", Author: rodriguez, Timestamp: ago(1 * time.Hour),
					Content: "Patrols run 24/7, you can join whenever you like. To report, use the #reports channel. I'm sending you the full handbook!",
					Attachments: []domain.Attachment{
						{Name: "patrol-handbook.pdf", URL: "#", Kind: domain.AttachmentKindFile},
					}},
			},
		},
		{
			ID:                 "TK-003",
			Requester:          domain.Requester{Name: pedro.Name, Avatar: pedro.Avatar, PlatformID: "123456791"},
			Category:           domain.CategoryInternalAffairs,
			Status:             domain.TicketStatusClosed,
			Priority:           domain.TicketPriorityCritical,
			CreatedAt:          ago(2 * time.Hour),
			ClosedAt:           at(ago(30 * time.Minute)),
			AssignedOfficer:    ptr(silva.Name),
			SatisfactionRating: 5,
			ThreadMode:         domain.ThreadModeInline,
			Messages: []domain.Message{
				{ID: "msg-1", Author: pedro, Timestamp: ago(2 * time.Hour), Attachments: none,
					Content: "I need to report inappropriate conduct by an officer during a stop."},
				{ID: "msg-2", Author: silva, Timestamp: ago(108 * time.Minute), Attachments: none,
					Content: "I understand how serious this is. Can you give me specific details and evidence?"},
				{ID: "msg-3", Author: pedro, Timestamp: ago(90 * time.Minute),
					Content: "I have screenshots of the conversation and a video of the stop. The officer was aggressive for no reason.",
					Attachments: []domain.Attachment{
						{Name: "conversation-evidence.png", URL: "https://via.placeholder.com/600x400/DC2626/FFFFFF?text=Evidence", Kind: domain.AttachmentKindImage},
						{Name: "stop-recording.mp4", URL: "#", Kind: domain.AttachmentKindFile},
					}},
				{ID: "msg-4", Author: silva, Timestamp: ago(1 * time.Hour), Attachments: none,
					Content: "Thank you for the evidence. I'm forwarding this for immediate investigation; the officer is suspended in the meantime."},
				{ID: "msg-5", Author: silva, Timestamp: ago(30 * time.Minute), Attachments: none,
					Content: "Case resolved. The officer was disciplined accordingly. Thanks for reporting!"},
			},
		},
	}
}
