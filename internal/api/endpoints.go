package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ContactEmail returns the contact address of the Tacomail instance.
func (c *Client) ContactEmail(ctx context.Context) (string, error) {
	var result struct {
		Email string `json:"email"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v2/contactEmail", nil, nil, &result); err != nil {
		return "", err
	}
	return result.Email, nil
}

// RandomUsername returns a server-generated random username.
func (c *Client) RandomUsername(ctx context.Context) (string, error) {
	var result struct {
		Username string `json:"username"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v2/randomUsername", nil, nil, &result); err != nil {
		return "", err
	}
	return result.Username, nil
}

// Domains returns the domains the instance accepts mail for.
func (c *Client) Domains(ctx context.Context) ([]string, error) {
	var result []string
	if err := c.do(ctx, http.MethodGet, "/api/v2/domains", nil, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateSession registers (or renews) a session for username@domain.
// Re-invoking with the same identity replaces the expiry.
func (c *Client) CreateSession(ctx context.Context, username, domain string) (*Session, error) {
	req := sessionRequest{Username: username, Domain: domain}
	var result Session
	if err := c.do(ctx, http.MethodPost, "/api/v2/session", nil, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteSession removes the session for username@domain. Mail already
// stored for the address is kept.
func (c *Client) DeleteSession(ctx context.Context, username, domain string) error {
	req := sessionRequest{Username: username, Domain: domain}
	return c.do(ctx, http.MethodDelete, "/api/v2/session", nil, req, nil)
}

// ListMail fetches the inbox listing for an address, newest first.
// limit is advisory; the server caps the count at 10 regardless.
// limit <= 0 omits the parameter.
func (c *Client) ListMail(ctx context.Context, address string, limit int) ([]Message, error) {
	path := fmt.Sprintf("/api/v2/mail/%s", url.PathEscape(address))
	var query url.Values
	if limit > 0 {
		query = url.Values{"limit": {strconv.Itoa(limit)}}
	}
	var result []Message
	if err := c.do(ctx, http.MethodGet, path, query, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetMail fetches a single message by ID.
func (c *Client) GetMail(ctx context.Context, address, mailID string) (*Message, error) {
	path := fmt.Sprintf("/api/v2/mail/%s/%s", url.PathEscape(address), url.PathEscape(mailID))
	var result Message
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListAttachments fetches attachment metadata for a message.
func (c *Client) ListAttachments(ctx context.Context, address, mailID string) ([]Attachment, error) {
	path := fmt.Sprintf("/api/v2/mail/%s/%s/attachments", url.PathEscape(address), url.PathEscape(mailID))
	var result []Attachment
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// DownloadAttachment fetches the raw content of an attachment.
func (c *Client) DownloadAttachment(ctx context.Context, address, mailID, attachmentID string) ([]byte, error) {
	path := fmt.Sprintf("/api/v2/mail/%s/%s/attachments/%s",
		url.PathEscape(address), url.PathEscape(mailID), url.PathEscape(attachmentID))
	return c.doRaw(ctx, http.MethodGet, path, nil)
}

// DeleteMail deletes a single message.
func (c *Client) DeleteMail(ctx context.Context, address, mailID string) error {
	path := fmt.Sprintf("/api/v2/mail/%s/%s", url.PathEscape(address), url.PathEscape(mailID))
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// DeleteInbox deletes all messages stored for an address.
func (c *Client) DeleteInbox(ctx context.Context, address string) error {
	path := fmt.Sprintf("/api/v2/mail/%s", url.PathEscape(address))
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
