package tacomail

import (
	"fmt"
	"strings"
	"time"

	"github.com/tacomail/client-go/internal/api"
)

// Mailbox is an email identity with an optional display name.
type Mailbox struct {
	Address string
	Name    string
}

// String renders the mailbox as "Name <address>" or just the address.
func (m Mailbox) String() string {
	if m.Name != "" {
		return fmt.Sprintf("%s <%s>", m.Name, m.Address)
	}
	return m.Address
}

// EmailBody holds the plain-text and HTML renderings of a message body.
type EmailBody struct {
	Text string
	HTML string
}

// Attachment is the metadata of a file attached to an email.
// Present reports whether the content is still retrievable; metadata can
// outlive the content.
type Attachment struct {
	ID       string
	FileName string
	Present  bool
}

// Email is an immutable snapshot of a received message. It holds no
// reference to the client; updates are always expressed as a fresh fetch.
type Email struct {
	ID          string
	From        Mailbox
	To          Mailbox
	Subject     string
	Date        time.Time
	Body        EmailBody
	Headers     map[string]string
	Attachments []Attachment
}

// Session is a registration that causes an inbox to accept and retain mail
// for an address until Expires. Creating a session for the same address
// again replaces the expiry.
type Session struct {
	Username string
	Domain   string
	Expires  time.Time
}

// Address returns the session's address as username@domain.
func (s *Session) Address() string {
	return s.Username + "@" + s.Domain
}

// SplitAddress splits an address into its username and domain parts.
// It fails if the address contains no "@" separator.
func SplitAddress(address string) (username, domain string, err error) {
	username, domain, ok := strings.Cut(address, "@")
	if !ok {
		return "", "", fmt.Errorf("invalid email address %q: missing @", address)
	}
	return username, domain, nil
}

func emailFromAPI(m *api.Message) (*Email, error) {
	// RFC 3339 parsing accepts both a "Z" suffix and an explicit offset;
	// "Z" normalizes to UTC offset zero.
	date, err := time.Parse(time.RFC3339, m.Date)
	if err != nil {
		return nil, fmt.Errorf("parse message date %q: %w", m.Date, err)
	}

	attachments := make([]Attachment, 0, len(m.Attachments))
	for _, a := range m.Attachments {
		attachments = append(attachments, Attachment{
			ID:       a.ID,
			FileName: a.FileName,
			Present:  a.Present,
		})
	}

	return &Email{
		ID:          m.ID,
		From:        Mailbox{Address: m.From.Address, Name: m.From.Name},
		To:          Mailbox{Address: m.To.Address, Name: m.To.Name},
		Subject:     m.Subject,
		Date:        date,
		Body:        EmailBody{Text: m.Body.Text, HTML: m.Body.HTML},
		Headers:     m.Headers,
		Attachments: attachments,
	}, nil
}

func emailsFromAPI(msgs []api.Message) ([]*Email, error) {
	emails := make([]*Email, 0, len(msgs))
	for i := range msgs {
		email, err := emailFromAPI(&msgs[i])
		if err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, nil
}

func attachmentsFromAPI(atts []api.Attachment) []Attachment {
	result := make([]Attachment, 0, len(atts))
	for _, a := range atts {
		result = append(result, Attachment{ID: a.ID, FileName: a.FileName, Present: a.Present})
	}
	return result
}

func sessionFromAPI(s *api.Session) *Session {
	return &Session{
		Username: s.Username,
		Domain:   s.Domain,
		Expires:  time.UnixMilli(s.Expires),
	}
}
