package thread

import "github.com/spec-kit/ticket-dashboard/internal/domain"

// Template is one canned exchange. {requester} and {officer} are replaced
// with the requester's first name and the handling officer.
type Template struct {
	Opening            string
	OpeningAttachments []domain.Attachment
	Responses          []string
	Closing            string
}

// Catalog maps a category to its template variants.
type Catalog map[domain.TicketCategory][]Template

// DefaultCatalog holds the placeholder conversations used for demo tickets.
var DefaultCatalog = Catalog{
	domain.CategoryPromotionRequest: {
		{
			Opening: "Hi! I'd like to request my promotion. I've been on the server for three months and met every requirement.",
			Responses: []string{
				"Hello {requester}! I'll review your request. Can you send a screenshot of your service time?",
				"Your paperwork is in order. Promotion approved, congratulations!",
			},
			Closing: "Thank you {officer}, much appreciated!",
		},
		{
			Opening: "Good evening. I completed the sergeant course last week and would like my rank updated.",
			OpeningAttachments: []domain.Attachment{
				{Name: "course-certificate.png", URL: "https://via.placeholder.com/400x200?text=Certificate", Kind: domain.AttachmentKindImage},
			},
			Responses: []string{
				"Thanks {requester}, I can see the certificate. Checking the course roster now.",
				"Confirmed with the instructors. Your rank has been updated.",
			},
			Closing: "Great, thanks for the quick turnaround.",
		},
	},
	domain.CategoryGeneralQuestion: {
		{
			Opening: "Hi! I'm new here and have a few questions about the patrol rules.",
			Responses: []string{
				"Welcome {requester}! What would you like to know about patrols?",
				"Patrols run around the clock and incidents go in the #reports channel. I'm sending you the full handbook.",
			},
			Closing: "That answers everything, thank you!",
		},
		{
			Opening: "Where can I find the schedule for the next training session?",
			Responses: []string{
				"Hi {requester}, the schedule is pinned in #announcements. The next session is this weekend.",
			},
			Closing: "Found it, thanks!",
		},
	},
	domain.CategoryInternalAffairs: {
		{
			Opening: "I need to report inappropriate conduct by an officer during a stop.",
			Responses: []string{
				"I understand how serious this is. Can you share specific details and any evidence?",
				"Thank you for the evidence. This is going to investigation right away.",
				"The case has been resolved and the officer was disciplined accordingly.",
			},
			Closing: "Thanks for handling it so quickly.",
		},
		{
			Opening: "I want to file a complaint about abuse of authority in yesterday's event.",
			OpeningAttachments: []domain.Attachment{
				{Name: "event-recording.mp4", URL: "#", Kind: domain.AttachmentKindFile},
			},
			Responses: []string{
				"Received, {requester}. I'm reviewing the recording now.",
				"We've opened a formal inquiry. You'll be notified of the outcome.",
			},
			Closing: "Understood, thank you {officer}.",
		},
	},
}
