package tacomail

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tacomail/client-go/internal/api"
)

// AsyncClient is the cooperative Tacomail client. Every method takes a
// context; requests and wait sleeps are suspension points that abort when
// the context is cancelled. RandomAddress overlaps its two round trips.
//
// Like [Client], an AsyncClient owns its transport exclusively.
type AsyncClient struct {
	api *api.Client
}

// NewAsync creates a cooperative client. Close releases the transport.
func NewAsync(opts ...Option) *AsyncClient {
	return &AsyncClient{api: newAPIClient(opts)}
}

// Close releases idle connections held by the transport.
func (c *AsyncClient) Close() {
	c.api.Close()
}

// ContactEmail returns the contact address of the Tacomail instance.
func (c *AsyncClient) ContactEmail(ctx context.Context) (string, error) {
	email, err := c.api.ContactEmail(ctx)
	return email, wrapError(err)
}

// RandomUsername returns a server-generated random username.
func (c *AsyncClient) RandomUsername(ctx context.Context) (string, error) {
	username, err := c.api.RandomUsername(ctx)
	return username, wrapError(err)
}

// Domains returns the domains the instance accepts mail for.
func (c *AsyncClient) Domains(ctx context.Context) ([]string, error) {
	domains, err := c.api.Domains(ctx)
	return domains, wrapError(err)
}

// RandomAddress composes a random username with a uniformly chosen domain.
// The username and domain-list requests are issued concurrently, saving one
// round trip of latency over the blocking client.
func (c *AsyncClient) RandomAddress(ctx context.Context) (string, error) {
	var username string
	var domains []string

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := c.api.RandomUsername(ctx)
		username = u
		return wrapError(err)
	})
	g.Go(func() error {
		d, err := c.api.Domains(ctx)
		domains = d
		return wrapError(err)
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	return composeAddress(username, domains)
}

// CreateSession registers username@domain so incoming mail is retained.
// Idempotent: re-invoking with the same identity renews the expiry.
func (c *AsyncClient) CreateSession(ctx context.Context, username, domain string) (*Session, error) {
	s, err := c.api.CreateSession(ctx, username, domain)
	if err != nil {
		return nil, wrapError(err)
	}
	return sessionFromAPI(s), nil
}

// DeleteSession stops acceptance of new mail for username@domain. Mail
// already stored is kept.
func (c *AsyncClient) DeleteSession(ctx context.Context, username, domain string) error {
	return wrapError(c.api.DeleteSession(ctx, username, domain))
}

// GetInbox lists the inbox for an address, newest first. limit is advisory;
// the server caps the count at 10 regardless. limit <= 0 requests the
// server default. An empty inbox is an empty slice, not an error.
func (c *AsyncClient) GetInbox(ctx context.Context, address string, limit int) ([]*Email, error) {
	msgs, err := c.api.ListMail(ctx, address, limit)
	if err != nil {
		return nil, wrapError(err)
	}
	return emailsFromAPI(msgs)
}

// GetEmail fetches a single message by ID. A missing ID yields an error
// matching [ErrEmailNotFound].
func (c *AsyncClient) GetEmail(ctx context.Context, address, mailID string) (*Email, error) {
	msg, err := c.api.GetMail(ctx, address, mailID)
	if err != nil {
		return nil, wrapError(err)
	}
	return emailFromAPI(msg)
}

// GetAttachments lists attachment metadata for a message.
func (c *AsyncClient) GetAttachments(ctx context.Context, address, mailID string) ([]Attachment, error) {
	atts, err := c.api.ListAttachments(ctx, address, mailID)
	if err != nil {
		return nil, wrapError(err)
	}
	return attachmentsFromAPI(atts), nil
}

// DownloadAttachment fetches the raw content of a single attachment.
func (c *AsyncClient) DownloadAttachment(ctx context.Context, address, mailID, attachmentID string) ([]byte, error) {
	data, err := c.api.DownloadAttachment(ctx, address, mailID, attachmentID)
	return data, wrapError(err)
}

// DeleteEmail deletes a single message.
func (c *AsyncClient) DeleteEmail(ctx context.Context, address, mailID string) error {
	return wrapError(c.api.DeleteMail(ctx, address, mailID))
}

// DeleteInbox deletes all messages stored for an address.
func (c *AsyncClient) DeleteInbox(ctx context.Context, address string) error {
	return wrapError(c.api.DeleteInbox(ctx, address))
}

// WaitForEmail polls the inbox until it holds at least the expected number
// of messages (default 1) and returns the most recent one. Reaching the
// timeout without a match returns (nil, nil); cancelling ctx aborts the
// wait with ctx.Err().
func (c *AsyncClient) WaitForEmail(ctx context.Context, address string, opts ...WaitOption) (*Email, error) {
	cfg := newWaitConfig(opts)
	return waitForEmail(
		c.pollInbox(ctx, address),
		contextSleep(ctx),
		countCondition(cfg.expectedCount),
		cfg.timeout, cfg.interval,
	)
}

// WaitForEmailFiltered polls the inbox until some message is accepted by
// the filter and returns the first match in listing order. Reaching the
// timeout without a match returns (nil, nil); cancelling ctx aborts the
// wait with ctx.Err().
func (c *AsyncClient) WaitForEmailFiltered(ctx context.Context, address string, filter EmailFilter, opts ...WaitOption) (*Email, error) {
	cfg := newWaitConfig(opts)
	return waitForEmail(
		c.pollInbox(ctx, address),
		contextSleep(ctx),
		filterCondition(filter),
		cfg.timeout, cfg.interval,
	)
}

// pollInbox fetches the whole visible inbox; waits never pass a limit.
func (c *AsyncClient) pollInbox(ctx context.Context, address string) pollFunc {
	return func() ([]*Email, error) {
		return c.GetInbox(ctx, address, 0)
	}
}

// contextSleep suspends for d but wakes early when ctx is cancelled,
// returning ctx.Err().
func contextSleep(ctx context.Context) sleepFunc {
	return func(d time.Duration) error {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return nil
		}
	}
}
