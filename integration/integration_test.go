//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"

	tacomail "github.com/tacomail/client-go"
	"github.com/tacomail/client-go/internal/smtptest"
)

var (
	baseURL  string
	smtpAddr string
)

func TestMain(m *testing.M) {
	// Load .env file if it exists (won't error if missing)
	if err := godotenv.Load("../.env"); err != nil {
		os.Stderr.WriteString("Note: .env file not found at project root\n")
	}

	baseURL = os.Getenv("TACOMAIL_URL")
	smtpAddr = os.Getenv("TACOMAIL_SMTP_ADDR")

	if baseURL == "" {
		os.Stderr.WriteString("Skipping integration tests: TACOMAIL_URL not set\n")
		os.Exit(0)
	}

	os.Stderr.WriteString("Running integration tests...\n")
	os.Stderr.WriteString("API URL: " + baseURL + "\n")

	os.Exit(m.Run())
}

func newClient(t *testing.T) *tacomail.Client {
	t.Helper()

	client := tacomail.New(
		tacomail.WithBaseURL(baseURL),
		tacomail.WithTimeout(30*time.Second),
	)
	t.Cleanup(client.Close)
	return client
}

// newSessionAddress registers a fresh random inbox and tears the session
// down when the test finishes.
func newSessionAddress(t *testing.T, client *tacomail.Client) string {
	t.Helper()

	address, err := client.RandomAddress()
	if err != nil {
		t.Fatalf("RandomAddress() error = %v", err)
	}
	username, domain, err := tacomail.SplitAddress(address)
	if err != nil {
		t.Fatalf("SplitAddress(%q) error = %v", address, err)
	}
	if _, err := client.CreateSession(username, domain); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	t.Cleanup(func() {
		client.DeleteSession(username, domain)
		client.DeleteInbox(address)
	})
	return address
}

func sendTestEmail(t *testing.T, to, subject, body string) {
	t.Helper()

	if smtpAddr == "" {
		t.Skip("TACOMAIL_SMTP_ADDR not set")
	}
	err := smtptest.Send(smtpAddr, smtptest.Message{
		To:      to,
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		t.Fatalf("smtptest.Send() error = %v", err)
	}
}

func TestIntegration_DomainsAndContact(t *testing.T) {
	client := newClient(t)

	domains, err := client.Domains()
	if err != nil {
		t.Fatalf("Domains() error = %v", err)
	}
	if len(domains) == 0 {
		t.Fatal("Domains() returned no domains")
	}
	t.Logf("Domains: %v", domains)

	contact, err := client.ContactEmail()
	if err != nil {
		t.Fatalf("ContactEmail() error = %v", err)
	}
	if !strings.Contains(contact, "@") {
		t.Errorf("ContactEmail() = %q, want an email address", contact)
	}
}

func TestIntegration_RandomAddress(t *testing.T) {
	client := newClient(t)

	address, err := client.RandomAddress()
	if err != nil {
		t.Fatalf("RandomAddress() error = %v", err)
	}
	if _, _, err := tacomail.SplitAddress(address); err != nil {
		t.Errorf("RandomAddress() = %q, not a valid address: %v", address, err)
	}
}

func TestIntegration_SessionLifecycle(t *testing.T) {
	client := newClient(t)

	address, err := client.RandomAddress()
	if err != nil {
		t.Fatalf("RandomAddress() error = %v", err)
	}
	username, domain, err := tacomail.SplitAddress(address)
	if err != nil {
		t.Fatalf("SplitAddress() error = %v", err)
	}

	first, err := client.CreateSession(username, domain)
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	defer client.DeleteSession(username, domain)

	if first.Address() != address {
		t.Errorf("Session.Address() = %q, want %q", first.Address(), address)
	}
	if !first.Expires.After(time.Now()) {
		t.Errorf("Expires = %v, want future", first.Expires)
	}

	// Re-creating renews: expiry must not move backwards.
	renewed, err := client.CreateSession(username, domain)
	if err != nil {
		t.Fatalf("CreateSession() renewal error = %v", err)
	}
	if renewed.Expires.Before(first.Expires) {
		t.Errorf("renewed Expires = %v, before first %v", renewed.Expires, first.Expires)
	}

	// A fresh inbox is empty.
	emails, err := client.GetInbox(address, 0)
	if err != nil {
		t.Fatalf("GetInbox() error = %v", err)
	}
	if len(emails) != 0 {
		t.Errorf("fresh inbox has %d emails, want 0", len(emails))
	}
}

func TestIntegration_SendAndWait(t *testing.T) {
	client := newClient(t)
	address := newSessionAddress(t, client)

	subject := fmt.Sprintf("Hello %d", time.Now().UnixNano())
	sendTestEmail(t, address, subject, "integration ping")

	email, err := client.WaitForEmail(address,
		tacomail.WithWaitTimeout(60*time.Second),
		tacomail.WithPollInterval(2*time.Second),
	)
	if err != nil {
		t.Fatalf("WaitForEmail() error = %v", err)
	}
	if email == nil {
		t.Fatal("WaitForEmail() timed out")
	}
	if email.Subject != subject {
		t.Errorf("Subject = %q, want %q", email.Subject, subject)
	}

	// The full message is retrievable by ID.
	got, err := client.GetEmail(address, email.ID)
	if err != nil {
		t.Fatalf("GetEmail() error = %v", err)
	}
	if !strings.Contains(got.Body.Text, "integration ping") {
		t.Errorf("Body.Text = %q, want it to contain %q", got.Body.Text, "integration ping")
	}
}

func TestIntegration_WaitFiltered(t *testing.T) {
	client := newClient(t)
	address := newSessionAddress(t, client)

	sendTestEmail(t, address, "noise", "ignore me")
	sendTestEmail(t, address, "signal", "match me")

	email, err := client.WaitForEmailFiltered(address, func(e *tacomail.Email) bool {
		return e.Subject == "signal"
	}, tacomail.WithWaitTimeout(60*time.Second))
	if err != nil {
		t.Fatalf("WaitForEmailFiltered() error = %v", err)
	}
	if email == nil {
		t.Fatal("WaitForEmailFiltered() timed out")
	}
	if email.Subject != "signal" {
		t.Errorf("Subject = %q, want %q", email.Subject, "signal")
	}
}

func TestIntegration_DeleteInbox(t *testing.T) {
	client := newClient(t)
	address := newSessionAddress(t, client)

	sendTestEmail(t, address, "to be deleted", "bye")

	email, err := client.WaitForEmail(address, tacomail.WithWaitTimeout(60*time.Second))
	if err != nil {
		t.Fatalf("WaitForEmail() error = %v", err)
	}
	if email == nil {
		t.Fatal("WaitForEmail() timed out")
	}

	if err := client.DeleteInbox(address); err != nil {
		t.Fatalf("DeleteInbox() error = %v", err)
	}
	emails, err := client.GetInbox(address, 0)
	if err != nil {
		t.Fatalf("GetInbox() error = %v", err)
	}
	if len(emails) != 0 {
		t.Errorf("inbox has %d emails after DeleteInbox, want 0", len(emails))
	}
}

func TestIntegration_AsyncClient(t *testing.T) {
	client := tacomail.NewAsync(
		tacomail.WithBaseURL(baseURL),
		tacomail.WithTimeout(30*time.Second),
	)
	defer client.Close()
	ctx := context.Background()

	address, err := client.RandomAddress(ctx)
	if err != nil {
		t.Fatalf("RandomAddress() error = %v", err)
	}
	username, domain, err := tacomail.SplitAddress(address)
	if err != nil {
		t.Fatalf("SplitAddress() error = %v", err)
	}
	if _, err := client.CreateSession(ctx, username, domain); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	defer client.DeleteSession(ctx, username, domain)

	// A cancelled context aborts a long wait promptly.
	waitCtx, cancel := context.WithCancel(ctx)
	go func() {
		time.Sleep(500 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err = client.WaitForEmail(waitCtx, address,
		tacomail.WithWaitTimeout(60*time.Second),
		tacomail.WithPollInterval(30*time.Second),
	)
	if err == nil {
		t.Fatal("WaitForEmail() with cancelled context returned no error")
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Errorf("cancellation took %v, want prompt abort", elapsed)
	}
}
