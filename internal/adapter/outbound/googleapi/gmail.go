package googleapi

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Header is one RFC 822 header of a Gmail message payload.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// MessagePartBody carries base64url-encoded part content.
type MessagePartBody struct {
	Data string `json:"data"`
}

// MessagePart is one node of a Gmail message's MIME tree.
type MessagePart struct {
	MimeType string          `json:"mimeType"`
	Headers  []Header        `json:"headers"`
	Body     MessagePartBody `json:"body"`
	Parts    []MessagePart   `json:"parts"`
}

// Message is the subset of the Gmail message resource the tools use.
type Message struct {
	ID      string      `json:"id"`
	Payload MessagePart `json:"payload"`
}

// HeaderOr returns the value of the named payload header, or fallback when
// the header is absent.
func (m *Message) HeaderOr(name, fallback string) string {
	for _, h := range m.Payload.Headers {
		if h.Name == name {
			return h.Value
		}
	}
	return fallback
}

// PlainTextBody decodes the first text/plain body found, preferring a
// multipart "parts" list over a flat payload. It returns "" when the message
// has no plain-text part.
func (m *Message) PlainTextBody() (string, error) {
	if len(m.Payload.Parts) > 0 {
		for _, part := range m.Payload.Parts {
			if part.MimeType == "text/plain" {
				return decodeBase64URL(part.Body.Data)
			}
		}
		return "", nil
	}
	if m.Payload.MimeType == "text/plain" {
		return decodeBase64URL(m.Payload.Body.Data)
	}
	return "", nil
}

// ListMessages returns up to maxResults messages, newest first, optionally
// filtered by a Gmail search query. Each listed id is fetched individually so
// callers get headers, matching the messages.list/messages.get split of the API.
func (c *Client) ListMessages(ctx context.Context, maxResults int, query string) ([]*Message, error) {
	u := c.gmailURL + "/users/me/messages?maxResults=" + strconv.Itoa(maxResults)
	if query != "" {
		u += "&q=" + url.QueryEscape(query)
	}

	var listing struct {
		Messages []struct {
			ID string `json:"id"`
		} `json:"messages"`
	}
	if err := c.doJSON(ctx, http.MethodGet, u, nil, &listing); err != nil {
		return nil, err
	}

	messages := make([]*Message, 0, len(listing.Messages))
	for _, ref := range listing.Messages {
		msg, err := c.GetMessage(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// GetMessage fetches one message by its opaque identifier.
func (c *Client) GetMessage(ctx context.Context, id string) (*Message, error) {
	u := c.gmailURL + "/users/me/messages/" + url.PathEscape(id)

	var msg Message
	if err := c.doJSON(ctx, http.MethodGet, u, nil, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// SendMessage builds a plain-text MIME message, base64url-encodes it, and
// submits it as a raw payload. It returns the sent message's id.
func (c *Client) SendMessage(ctx context.Context, to, subject, body string) (string, error) {
	raw := base64.URLEncoding.EncodeToString([]byte(buildMIMEMessage(to, subject, body)))

	var sent struct {
		ID string `json:"id"`
	}
	payload := map[string]string{"raw": raw}
	if err := c.doJSON(ctx, http.MethodPost, c.gmailURL+"/users/me/messages/send", payload, &sent); err != nil {
		return "", err
	}
	return sent.ID, nil
}

// DeleteMessage permanently removes the message identified by id.
func (c *Client) DeleteMessage(ctx context.Context, id string) error {
	u := c.gmailURL + "/users/me/messages/" + url.PathEscape(id)
	return c.doJSON(ctx, http.MethodDelete, u, nil, nil)
}

// buildMIMEMessage assembles a minimal text/plain RFC 822 message.
func buildMIMEMessage(to, subject, body string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return b.String()
}

// decodeBase64URL decodes base64url data with or without padding; the Gmail
// API omits padding.
func decodeBase64URL(data string) (string, error) {
	decoded, err := base64.URLEncoding.WithPadding(base64.NoPadding).DecodeString(strings.TrimRight(data, "="))
	if err != nil {
		return "", fmt.Errorf("failed to decode message body: %w", err)
	}
	return string(decoded), nil
}
