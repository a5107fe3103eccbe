package tacomail

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestAsyncClient(t *testing.T) (*fakeService, *AsyncClient) {
	t.Helper()
	service := newFakeService()
	server := newFakeServer(t, service)
	client := NewAsync(WithBaseURL(server.URL))
	t.Cleanup(client.Close)
	return service, client
}

func TestAsyncClient_RandomAddress(t *testing.T) {
	service, client := newTestAsyncClient(t)
	service.domains = []string{"tacomail.de"}

	address, err := client.RandomAddress(context.Background())
	if err != nil {
		t.Fatalf("RandomAddress() error = %v", err)
	}
	if address != "grumpy-taco@tacomail.de" {
		t.Errorf("address = %q, want grumpy-taco@tacomail.de", address)
	}

	// Both sub-requests must have been issued exactly once.
	if got := service.count("GET", "/api/v2/randomUsername"); got != 1 {
		t.Errorf("randomUsername calls = %d, want 1", got)
	}
	if got := service.count("GET", "/api/v2/domains"); got != 1 {
		t.Errorf("domains calls = %d, want 1", got)
	}
}

func TestAsyncClient_RandomAddress_SubCallErrorAbortsBoth(t *testing.T) {
	service, client := newTestAsyncClient(t)
	service.domains = nil

	_, err := client.RandomAddress(context.Background())
	if !errors.Is(err, ErrNoDomains) {
		t.Fatalf("error = %v, want ErrNoDomains", err)
	}
}

func TestAsyncClient_SessionLifecycle(t *testing.T) {
	_, client := newTestAsyncClient(t)
	ctx := context.Background()

	session, err := client.CreateSession(ctx, "bob", "tacomail.de")
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if session.Address() != "bob@tacomail.de" {
		t.Errorf("Address() = %q", session.Address())
	}

	if err := client.DeleteSession(ctx, "bob", "tacomail.de"); err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}
}

func TestAsyncClient_WaitForEmail_ContextCancellationAbortsSleep(t *testing.T) {
	_, client := newTestAsyncClient(t)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := client.WaitForEmail(ctx, "alice@tacomail.de",
		WithWaitTimeout(time.Minute), WithPollInterval(30*time.Second))
	elapsed := time.Since(start)

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if elapsed > 2*time.Second {
		t.Errorf("elapsed = %v, want prompt abort instead of full interval sleep", elapsed)
	}
}

func TestAsyncClient_WaitForEmail_Timeout(t *testing.T) {
	_, client := newTestAsyncClient(t)

	email, err := client.WaitForEmail(context.Background(), "alice@tacomail.de",
		WithWaitTimeout(80*time.Millisecond), WithPollInterval(20*time.Millisecond))
	if err != nil {
		t.Fatalf("WaitForEmail() error = %v, want nil on timeout", err)
	}
	if email != nil {
		t.Errorf("email = %+v, want nil on timeout", email)
	}
}

func TestAsyncClient_WaitForEmailFiltered(t *testing.T) {
	service, client := newTestAsyncClient(t)
	service.addMessage("alice@tacomail.de", testMessage("m1", "noise"))
	service.addMessage("alice@tacomail.de", testMessage("m2", "Hello"))

	email, err := client.WaitForEmailFiltered(context.Background(), "alice@tacomail.de",
		func(e *Email) bool { return e.Subject == "Hello" },
		WithWaitTimeout(time.Second), WithPollInterval(20*time.Millisecond))
	if err != nil {
		t.Fatalf("WaitForEmailFiltered() error = %v", err)
	}
	if email == nil || email.ID != "m2" {
		t.Fatalf("email = %+v, want m2", email)
	}
}

func TestAsyncClient_GetInbox(t *testing.T) {
	service, client := newTestAsyncClient(t)
	service.addMessage("alice@tacomail.de", testMessage("m1", "Hello"))

	inbox, err := client.GetInbox(context.Background(), "alice@tacomail.de", 0)
	if err != nil {
		t.Fatalf("GetInbox() error = %v", err)
	}
	if len(inbox) != 1 || inbox[0].Subject != "Hello" {
		t.Errorf("inbox = %+v", inbox)
	}
}
