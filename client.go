package tacomail

import (
	"context"
	"math/rand"
	"time"

	"github.com/tacomail/client-go/internal/api"
)

// Client is the blocking Tacomail client. Every call occupies the calling
// goroutine until the round trip (or, for waits, the whole poll loop)
// completes; suspension is a plain time.Sleep and cannot be interrupted.
//
// A Client owns its transport exclusively. Concurrent use from multiple
// goroutines expecting independent timeouts should create one Client each;
// for cooperative scheduling and cancellation use [AsyncClient] instead.
type Client struct {
	api *api.Client
}

// New creates a blocking client. Close releases the transport when done.
func New(opts ...Option) *Client {
	return &Client{api: newAPIClient(opts)}
}

func newAPIClient(opts []Option) *api.Client {
	cfg := &clientConfig{
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	apiOpts := []api.Option{api.WithBaseURL(cfg.baseURL)}
	if cfg.httpClient != nil {
		apiOpts = append(apiOpts, api.WithHTTPClient(cfg.httpClient))
	}
	if cfg.timeout > 0 {
		apiOpts = append(apiOpts, api.WithTimeout(cfg.timeout))
	}
	return api.New(apiOpts...)
}

// Close releases idle connections held by the transport.
func (c *Client) Close() {
	c.api.Close()
}

// ContactEmail returns the contact address of the Tacomail instance.
func (c *Client) ContactEmail() (string, error) {
	email, err := c.api.ContactEmail(context.Background())
	return email, wrapError(err)
}

// RandomUsername returns a server-generated random username.
func (c *Client) RandomUsername() (string, error) {
	username, err := c.api.RandomUsername(context.Background())
	return username, wrapError(err)
}

// Domains returns the domains the instance accepts mail for.
func (c *Client) Domains() ([]string, error) {
	domains, err := c.api.Domains(context.Background())
	return domains, wrapError(err)
}

// RandomAddress composes a random username with a uniformly chosen domain.
// Two sequential round trips; not atomic with respect to server-side domain
// list changes, which change rarely enough not to matter.
func (c *Client) RandomAddress() (string, error) {
	username, err := c.RandomUsername()
	if err != nil {
		return "", err
	}
	domains, err := c.Domains()
	if err != nil {
		return "", err
	}
	return composeAddress(username, domains)
}

func composeAddress(username string, domains []string) (string, error) {
	if len(domains) == 0 {
		return "", ErrNoDomains
	}
	return username + "@" + domains[rand.Intn(len(domains))], nil
}

// CreateSession registers username@domain so incoming mail is retained.
// Idempotent: re-invoking with the same identity renews the expiry.
func (c *Client) CreateSession(username, domain string) (*Session, error) {
	s, err := c.api.CreateSession(context.Background(), username, domain)
	if err != nil {
		return nil, wrapError(err)
	}
	return sessionFromAPI(s), nil
}

// DeleteSession stops acceptance of new mail for username@domain. Mail
// already stored is kept.
func (c *Client) DeleteSession(username, domain string) error {
	return wrapError(c.api.DeleteSession(context.Background(), username, domain))
}

// GetInbox lists the inbox for an address, newest first. limit is advisory;
// the server caps the count at 10 regardless. limit <= 0 requests the
// server default. An empty inbox is an empty slice, not an error.
func (c *Client) GetInbox(address string, limit int) ([]*Email, error) {
	msgs, err := c.api.ListMail(context.Background(), address, limit)
	if err != nil {
		return nil, wrapError(err)
	}
	return emailsFromAPI(msgs)
}

// GetEmail fetches a single message by ID. A missing ID yields an error
// matching [ErrEmailNotFound].
func (c *Client) GetEmail(address, mailID string) (*Email, error) {
	msg, err := c.api.GetMail(context.Background(), address, mailID)
	if err != nil {
		return nil, wrapError(err)
	}
	return emailFromAPI(msg)
}

// GetAttachments lists attachment metadata for a message.
func (c *Client) GetAttachments(address, mailID string) ([]Attachment, error) {
	atts, err := c.api.ListAttachments(context.Background(), address, mailID)
	if err != nil {
		return nil, wrapError(err)
	}
	return attachmentsFromAPI(atts), nil
}

// DownloadAttachment fetches the raw content of a single attachment.
func (c *Client) DownloadAttachment(address, mailID, attachmentID string) ([]byte, error) {
	data, err := c.api.DownloadAttachment(context.Background(), address, mailID, attachmentID)
	return data, wrapError(err)
}

// DeleteEmail deletes a single message.
func (c *Client) DeleteEmail(address, mailID string) error {
	return wrapError(c.api.DeleteMail(context.Background(), address, mailID))
}

// DeleteInbox deletes all messages stored for an address.
func (c *Client) DeleteInbox(address string) error {
	return wrapError(c.api.DeleteInbox(context.Background(), address))
}

// WaitForEmail polls the inbox until it holds at least the expected number
// of messages (default 1) and returns the most recent one. Reaching the
// timeout without a match returns (nil, nil); see [WithWaitTimeout],
// [WithPollInterval] and [WithExpectedCount].
func (c *Client) WaitForEmail(address string, opts ...WaitOption) (*Email, error) {
	cfg := newWaitConfig(opts)
	return waitForEmail(
		c.pollInbox(address),
		blockingSleep,
		countCondition(cfg.expectedCount),
		cfg.timeout, cfg.interval,
	)
}

// WaitForEmailFiltered polls the inbox until some message is accepted by
// the filter and returns the first match in listing order. Reaching the
// timeout without a match returns (nil, nil).
func (c *Client) WaitForEmailFiltered(address string, filter EmailFilter, opts ...WaitOption) (*Email, error) {
	cfg := newWaitConfig(opts)
	return waitForEmail(
		c.pollInbox(address),
		blockingSleep,
		filterCondition(filter),
		cfg.timeout, cfg.interval,
	)
}

// pollInbox fetches the whole visible inbox; waits never pass a limit.
func (c *Client) pollInbox(address string) pollFunc {
	return func() ([]*Email, error) {
		return c.GetInbox(address, 0)
	}
}

func blockingSleep(d time.Duration) error {
	time.Sleep(d)
	return nil
}
