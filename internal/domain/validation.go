package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// reservedIDChars cannot appear in ids because they would break the
// /api/tickets/:id path segment.
const reservedIDChars = "/?#% \t\n"

const (
	MinSatisfactionRating = 0
	MaxSatisfactionRating = 5
)

// ValidationErrors maps a field path to the reason it was rejected.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v[k])
	}
	return "invalid ticket: " + strings.Join(parts, "; ")
}

// Details converts the violations into a generic map for error envelopes.
func (v ValidationErrors) Details() map[string]any {
	out := make(map[string]any, len(v))
	for k, msg := range v {
		out[k] = msg
	}
	return out
}

// Validate checks every data-model invariant and returns ValidationErrors
// listing all violations, or nil.
func (t *Ticket) Validate() error {
	errs := ValidationErrors{}

	if strings.TrimSpace(t.ID) == "" {
		errs["id"] = "required"
	} else if strings.ContainsAny(t.ID, reservedIDChars) {
		errs["id"] = "must not contain any of " + strconv.Quote(reservedIDChars)
	}
	if strings.TrimSpace(t.Requester.Name) == "" {
		errs["requester.name"] = "required"
	}
	if t.Requester.PlatformID != "" && !isDigits(t.Requester.PlatformID) {
		errs["requester.platformId"] = "must be numeric"
	}
	if !t.Category.Valid() {
		errs["category"] = fmt.Sprintf("unknown category %q", t.Category)
	}
	if !t.Status.Valid() {
		errs["status"] = fmt.Sprintf("unknown status %q", t.Status)
	}
	if !t.Priority.Valid() {
		errs["priority"] = fmt.Sprintf("unknown priority %q", t.Priority)
	}
	if t.CreatedAt.IsZero() {
		errs["createdAt"] = "required"
	}
	if t.Status == TicketStatusClosed && t.ClosedAt == nil {
		errs["closedAt"] = "required for closed tickets"
	}
	if t.ClosedAt != nil && !t.CreatedAt.IsZero() && t.ClosedAt.Before(t.CreatedAt) {
		errs["closedAt"] = "must not be before createdAt"
	}
	if t.SatisfactionRating < MinSatisfactionRating || t.SatisfactionRating > MaxSatisfactionRating {
		errs["satisfactionRating"] = fmt.Sprintf("must be between %d and %d", MinSatisfactionRating, MaxSatisfactionRating)
	} else if t.SatisfactionRating > 0 && t.Status != TicketStatusClosed {
		errs["satisfactionRating"] = "only closed tickets can be rated"
	}
	if t.ThreadMode != ThreadModeInline && t.ThreadMode != ThreadModeSynthesized {
		errs["threadMode"] = fmt.Sprintf("unknown thread mode %q", t.ThreadMode)
	}

	t.validateMessages(errs)

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (t *Ticket) validateMessages(errs ValidationErrors) {
	for i, msg := range t.Messages {
		prefix := fmt.Sprintf("messages[%d]", i)
		if strings.TrimSpace(msg.Author.Name) == "" {
			errs[prefix+".author.name"] = "required"
		}
		if msg.Timestamp.IsZero() {
			errs[prefix+".timestamp"] = "required"
			continue
		}
		if !t.CreatedAt.IsZero() && msg.Timestamp.Before(t.CreatedAt) {
			errs[prefix+".timestamp"] = "must not be before ticket createdAt"
		} else if t.IsClosed() && t.ClosedAt != nil && msg.Timestamp.After(*t.ClosedAt) {
			errs[prefix+".timestamp"] = "must not be after ticket closedAt"
		} else if i > 0 && msg.Timestamp.Before(t.Messages[i-1].Timestamp) {
			errs[prefix+".timestamp"] = "messages must be in chronological order"
		}
		for j, att := range msg.Attachments {
			attPrefix := fmt.Sprintf("%s.attachments[%d]", prefix, j)
			if strings.TrimSpace(att.Name) == "" {
				errs[attPrefix+".name"] = "required"
			}
			if !att.Kind.Valid() {
				errs[attPrefix+".kind"] = fmt.Sprintf("unknown attachment kind %q", att.Kind)
			}
		}
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
