package chat

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxAttachmentBytes caps attachment payloads server-side. Oversized
// entries take the same best-effort drop path as malformed ones.
const maxAttachmentBytes = 10 * 1024 * 1024

var validRoles = map[string]bool{
	"user":      true,
	"assistant": true,
	"system":    true,
}

var validAttachmentTypes = map[string]bool{
	"image": true,
	"file":  true,
}

// ValidateCreate normalizes a decoded create-session body.
// Rules apply in order; the first failure wins.
func ValidateCreate(raw any) (*CreateSession, error) {
	body, ok := raw.(map[string]any)
	if !ok || body == nil {
		return nil, fmt.Errorf("request body must be an object")
	}

	out := &CreateSession{}

	if v, present := body["title"]; present {
		title, err := normalizeTitle(v)
		if err != nil {
			return nil, err
		}
		out.Title = title
	}

	if v, present := body["messages"]; present {
		msgs, err := normalizeMessages(v)
		if err != nil {
			return nil, err
		}
		out.Messages = msgs
	}

	return out, nil
}

// ValidateUpdate normalizes a decoded update-session body. Absent fields
// stay nil and leave the stored value untouched.
func ValidateUpdate(raw any) (*SessionPatch, error) {
	body, ok := raw.(map[string]any)
	if !ok || body == nil {
		return nil, fmt.Errorf("request body must be an object")
	}

	out := &SessionPatch{}

	if v, present := body["title"]; present {
		title, err := normalizeTitle(v)
		if err != nil {
			return nil, err
		}
		out.Title = &title
	}

	if v, present := body["messages"]; present {
		msgs, err := normalizeMessages(v)
		if err != nil {
			return nil, err
		}
		out.Messages = &msgs
	}

	return out, nil
}

// ValidateGenerate normalizes a decoded generation body. Model membership
// in the catalog is checked by the handler, not here.
func ValidateGenerate(raw any) (*GenerateRequest, error) {
	body, ok := raw.(map[string]any)
	if !ok || body == nil {
		return nil, fmt.Errorf("request body must be an object")
	}

	out := &GenerateRequest{Stream: true}

	v, present := body["messages"]
	if !present {
		return nil, fmt.Errorf("messages is required")
	}
	msgs, err := normalizeMessages(v)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, fmt.Errorf("messages must not be empty")
	}
	out.Messages = msgs

	mv, present := body["model"]
	if !present {
		return nil, fmt.Errorf("model is required")
	}
	model, ok := mv.(string)
	if !ok || strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("model must be a non-empty string")
	}
	out.Model = strings.TrimSpace(model)

	if cv, present := body["codeContext"]; present && cv != nil {
		obj, ok := cv.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("codeContext must be an object")
		}
		cc, err := decodeCodeContext(obj)
		if err != nil {
			return nil, err
		}
		out.CodeContext = cc
	}

	if sv, present := body["stream"]; present {
		b, ok := sv.(bool)
		if !ok {
			return nil, fmt.Errorf("stream must be a boolean")
		}
		out.Stream = b
	}

	return out, nil
}

func normalizeTitle(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("title must be a string")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		s = DefaultTitle
	}
	return s, nil
}

func normalizeMessages(v any) ([]Message, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("messages must be an array")
	}

	out := make([]Message, 0, len(arr))
	for i, el := range arr {
		msg, err := normalizeMessage(el, i)
		if err != nil {
			return nil, err
		}
		out = append(out, msg)
	}
	return out, nil
}

func normalizeMessage(v any, idx int) (Message, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return Message{}, fmt.Errorf("messages[%d] must be an object", idx)
	}

	role, ok := obj["role"].(string)
	if !ok || !validRoles[role] {
		return Message{}, fmt.Errorf("messages[%d].role must be one of user, assistant, system", idx)
	}

	content, ok := obj["content"].(string)
	if !ok {
		return Message{}, fmt.Errorf("messages[%d].content must be a string", idx)
	}

	msg := Message{Role: role, Content: content}

	if id, ok := obj["id"].(string); ok && id != "" {
		msg.ID = id
	} else {
		msg.ID = uuid.NewString()
	}

	msg.Timestamp = time.Now()
	if ts, ok := obj["timestamp"].(string); ok {
		if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
			msg.Timestamp = parsed
		}
	}

	// Code context is carried opaquely as long as it is an object.
	if cc, ok := obj["codeContext"].(map[string]any); ok {
		if blob, err := json.Marshal(cc); err == nil {
			msg.CodeContext = blob
		}
	}

	// Attachments are best-effort: malformed entries are dropped, never
	// rejected, while well-formed siblings survive.
	if atts, ok := obj["attachments"].([]any); ok {
		msg.Attachments = filterAttachments(atts)
	}

	return msg, nil
}

func filterAttachments(arr []any) []Attachment {
	out := make([]Attachment, 0, len(arr))
	for _, el := range arr {
		obj, ok := el.(map[string]any)
		if !ok {
			continue
		}
		typ, ok := obj["type"].(string)
		if !ok || !validAttachmentTypes[typ] {
			continue
		}
		name, ok := obj["name"].(string)
		if !ok {
			continue
		}
		data, ok := obj["data"].(string)
		if !ok || len(data) > maxAttachmentBytes {
			continue
		}
		att := Attachment{Type: typ, Name: name, Data: data}
		if mime, ok := obj["mimeType"].(string); ok {
			att.MimeType = mime
		}
		out = append(out, att)
	}
	return out
}

func decodeCodeContext(obj map[string]any) (*CodeContext, error) {
	blob, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("codeContext is not valid")
	}
	var cc CodeContext
	if err := json.Unmarshal(blob, &cc); err != nil {
		return nil, fmt.Errorf("codeContext is not valid")
	}
	return &cc, nil
}
