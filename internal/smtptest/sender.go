// Package smtptest sends mail to a Tacomail instance over plain SMTP.
// It exists for integration tests and manual poking; it is not part of
// the client API.
package smtptest

import (
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-smtp"
	"github.com/google/uuid"
)

// Message describes an outbound test email.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Send delivers msg to the SMTP listener at addr ("host:port").
// A Message-ID and Date header are generated for each send.
func Send(addr string, msg Message) error {
	if msg.From == "" {
		msg.From = "sender@example.com"
	}
	if msg.To == "" {
		return fmt.Errorf("smtptest: recipient is required")
	}

	c, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer c.Close()

	if err := c.Hello("smtptest.local"); err != nil {
		return fmt.Errorf("HELO: %w", err)
	}
	if err := c.Mail(msg.From, nil); err != nil {
		return fmt.Errorf("MAIL FROM: %w", err)
	}
	if err := c.Rcpt(msg.To, nil); err != nil {
		return fmt.Errorf("RCPT TO: %w", err)
	}

	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("DATA: %w", err)
	}
	if _, err := wc.Write([]byte(Render(msg))); err != nil {
		wc.Close()
		return fmt.Errorf("write message: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("close DATA: %w", err)
	}

	return c.Quit()
}

// Render builds the RFC 5322 message text for msg.
func Render(msg Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", msg.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	fmt.Fprintf(&b, "Message-ID: <%s@smtptest.local>\r\n", uuid.NewString())
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	b.WriteString("\r\n")
	return b.String()
}
