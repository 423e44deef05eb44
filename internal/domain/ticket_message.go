package domain

import "time"

// AttachmentKind tells the front end how to render an attachment link.
type AttachmentKind string

const (
	AttachmentKindImage AttachmentKind = "image"
	AttachmentKindFile  AttachmentKind = "file"
)

// Valid reports whether the kind is a known value.
func (k AttachmentKind) Valid() bool {
	return k == AttachmentKindImage || k == AttachmentKindFile
}

// MessageAuthor is the display identity of a message author.
type MessageAuthor struct {
	Name    string
	Avatar  string
	IsStaff bool
}

// Message captures one entry in a ticket thread.
type Message struct {
	ID          string
	Author      MessageAuthor
	Content     string
	Timestamp   time.Time
	Attachments []Attachment
}

// Attachment references a file shared in a message.
type Attachment struct {
	Name string
	URL  string
	Kind AttachmentKind
}

// CloneMessages deep-copies a thread. A nil thread stays nil.
func CloneMessages(msgs []Message) []Message {
	if msgs == nil {
		return nil
	}
	out := make([]Message, len(msgs))
	for i, msg := range msgs {
		out[i] = msg
		if msg.Attachments != nil {
			out[i].Attachments = append([]Attachment(nil), msg.Attachments...)
		}
	}
	return out
}
