package main

import (
	"context"

	tacomail "github.com/tacomail/client-go"
)

// mailer is the operation set shared by both client variants. The
// context-aware AsyncClient satisfies it directly; the blocking Client is
// adapted below. Commands only ever see this interface, so tests can swap
// in a fake.
type mailer interface {
	ContactEmail(ctx context.Context) (string, error)
	RandomUsername(ctx context.Context) (string, error)
	Domains(ctx context.Context) ([]string, error)
	RandomAddress(ctx context.Context) (string, error)
	CreateSession(ctx context.Context, username, domain string) (*tacomail.Session, error)
	DeleteSession(ctx context.Context, username, domain string) error
	GetInbox(ctx context.Context, address string, limit int) ([]*tacomail.Email, error)
	GetEmail(ctx context.Context, address, mailID string) (*tacomail.Email, error)
	GetAttachments(ctx context.Context, address, mailID string) ([]tacomail.Attachment, error)
	DownloadAttachment(ctx context.Context, address, mailID, attachmentID string) ([]byte, error)
	DeleteEmail(ctx context.Context, address, mailID string) error
	DeleteInbox(ctx context.Context, address string) error
	WaitForEmail(ctx context.Context, address string, opts ...tacomail.WaitOption) (*tacomail.Email, error)
	WaitForEmailFiltered(ctx context.Context, address string, filter tacomail.EmailFilter, opts ...tacomail.WaitOption) (*tacomail.Email, error)
	Close()
}

// newMailer builds the client variant selected by the config.
func newMailer(cfg *cliConfig) mailer {
	opts := []tacomail.Option{tacomail.WithBaseURL(cfg.BaseURL)}
	if cfg.RequestTimeout > 0 {
		opts = append(opts, tacomail.WithTimeout(cfg.RequestTimeout))
	}
	if cfg.Async {
		return tacomail.NewAsync(opts...)
	}
	return &blockingMailer{client: tacomail.New(opts...)}
}

// blockingMailer adapts the blocking Client to the mailer interface.
// The context is ignored: blocking calls cannot be interrupted.
type blockingMailer struct {
	client *tacomail.Client
}

func (b *blockingMailer) ContactEmail(context.Context) (string, error) {
	return b.client.ContactEmail()
}

func (b *blockingMailer) RandomUsername(context.Context) (string, error) {
	return b.client.RandomUsername()
}

func (b *blockingMailer) Domains(context.Context) ([]string, error) {
	return b.client.Domains()
}

func (b *blockingMailer) RandomAddress(context.Context) (string, error) {
	return b.client.RandomAddress()
}

func (b *blockingMailer) CreateSession(_ context.Context, username, domain string) (*tacomail.Session, error) {
	return b.client.CreateSession(username, domain)
}

func (b *blockingMailer) DeleteSession(_ context.Context, username, domain string) error {
	return b.client.DeleteSession(username, domain)
}

func (b *blockingMailer) GetInbox(_ context.Context, address string, limit int) ([]*tacomail.Email, error) {
	return b.client.GetInbox(address, limit)
}

func (b *blockingMailer) GetEmail(_ context.Context, address, mailID string) (*tacomail.Email, error) {
	return b.client.GetEmail(address, mailID)
}

func (b *blockingMailer) GetAttachments(_ context.Context, address, mailID string) ([]tacomail.Attachment, error) {
	return b.client.GetAttachments(address, mailID)
}

func (b *blockingMailer) DownloadAttachment(_ context.Context, address, mailID, attachmentID string) ([]byte, error) {
	return b.client.DownloadAttachment(address, mailID, attachmentID)
}

func (b *blockingMailer) DeleteEmail(_ context.Context, address, mailID string) error {
	return b.client.DeleteEmail(address, mailID)
}

func (b *blockingMailer) DeleteInbox(_ context.Context, address string) error {
	return b.client.DeleteInbox(address)
}

func (b *blockingMailer) WaitForEmail(_ context.Context, address string, opts ...tacomail.WaitOption) (*tacomail.Email, error) {
	return b.client.WaitForEmail(address, opts...)
}

func (b *blockingMailer) WaitForEmailFiltered(_ context.Context, address string, filter tacomail.EmailFilter, opts ...tacomail.WaitOption) (*tacomail.Email, error) {
	return b.client.WaitForEmailFiltered(address, filter, opts...)
}

func (b *blockingMailer) Close() {
	b.client.Close()
}
