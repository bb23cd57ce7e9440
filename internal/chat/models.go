package chat

import (
	"encoding/json"
	"time"
)

const DefaultTitle = "New Chat"

// Session is an in-memory conversation: ordered message history plus
// metadata. Messages are never reordered; updates replace the whole slice.
type Session struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SessionSummary is the list view of a session.
type SessionSummary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	MessageCount int       `json:"messageCount"`
}

// Message is immutable once appended to a session.
// CodeContext is stored opaquely; only the generation endpoint interprets it.
type Message struct {
	ID          string          `json:"id"`
	Role        string          `json:"role"`
	Content     string          `json:"content"`
	Timestamp   time.Time       `json:"timestamp"`
	CodeContext json.RawMessage `json:"codeContext,omitempty"`
	Attachments []Attachment    `json:"attachments,omitempty"`
}

type Attachment struct {
	Type     string `json:"type"` // "image" or "file"
	Name     string `json:"name"`
	Data     string `json:"data"` // base64 for images, raw text for files
	MimeType string `json:"mimeType,omitempty"`
}

// CodeContext is the typed form used when a generation request carries
// code for the assistant to look at.
type CodeContext struct {
	FileName        string `json:"fileName"`
	Language        string `json:"language"`
	Code            string `json:"code"`
	HighlightedCode string `json:"highlightedCode,omitempty"`
	InitialMessage  string `json:"initialMessage,omitempty"`
}

// CreateSession is the normalized create-session input.
type CreateSession struct {
	Title    string
	Messages []Message
}

// SessionPatch is the normalized update input; nil fields are left untouched.
type SessionPatch struct {
	Title    *string
	Messages *[]Message
}

// GenerateRequest is the normalized generation input.
type GenerateRequest struct {
	Messages    []Message
	Model       string
	CodeContext *CodeContext
	Stream      bool
}
