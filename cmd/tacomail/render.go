package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	tacomail "github.com/tacomail/client-go"
)

// format selects how command output is rendered.
type format string

const (
	formatRich  format = "rich"  // human-readable tables
	formatPlain format = "plain" // tab-delimited, script-friendly
	formatJSON  format = "json"
)

func parseFormat(s string) (format, error) {
	switch format(s) {
	case formatRich, formatPlain, formatJSON:
		return format(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q (want rich, plain or json)", s)
	}
}

// renderer writes command results in the selected format.
type renderer struct {
	out    io.Writer
	format format
}

const timeLayout = "2006-01-02 15:04:05"

func (r *renderer) jsonValue(v interface{}) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// message prints a free-form status line; suppressed for JSON output so
// that stdout stays machine-parseable.
func (r *renderer) message(format string, args ...interface{}) {
	if r.format == formatJSON {
		return
	}
	fmt.Fprintf(r.out, format+"\n", args...)
}

func (r *renderer) address(address string) error {
	switch r.format {
	case formatJSON:
		return r.jsonValue(map[string]string{"address": address})
	case formatPlain:
		fmt.Fprintln(r.out, address)
		return nil
	default:
		fmt.Fprintf(r.out, "Generated address: %s\n", address)
		return nil
	}
}

func (r *renderer) contact(email string) error {
	switch r.format {
	case formatJSON:
		return r.jsonValue(map[string]string{"email": email})
	case formatPlain:
		fmt.Fprintln(r.out, email)
		return nil
	default:
		fmt.Fprintf(r.out, "Contact: %s\n", email)
		return nil
	}
}

func (r *renderer) domains(domains []string) error {
	switch r.format {
	case formatJSON:
		return r.jsonValue(domains)
	case formatPlain:
		for _, d := range domains {
			fmt.Fprintln(r.out, d)
		}
		return nil
	default:
		fmt.Fprintf(r.out, "Available domains (%d):\n", len(domains))
		for _, d := range domains {
			fmt.Fprintf(r.out, "  - %s\n", d)
		}
		return nil
	}
}

type sessionJSON struct {
	Address  string    `json:"address"`
	Username string    `json:"username"`
	Domain   string    `json:"domain"`
	Expires  time.Time `json:"expires"`
}

func (r *renderer) session(s *tacomail.Session) error {
	switch r.format {
	case formatJSON:
		return r.jsonValue(sessionJSON{
			Address:  s.Address(),
			Username: s.Username,
			Domain:   s.Domain,
			Expires:  s.Expires,
		})
	case formatPlain:
		fmt.Fprintf(r.out, "%s\t%s\n", s.Address(), s.Expires.Format(time.RFC3339))
		return nil
	default:
		fmt.Fprintf(r.out, "Session created for %s\n", s.Address())
		fmt.Fprintf(r.out, "  Expires: %s\n", s.Expires.Local().Format(timeLayout))
		return nil
	}
}

type emailJSON struct {
	ID          string            `json:"id"`
	From        mailboxJSON       `json:"from"`
	To          mailboxJSON       `json:"to"`
	Subject     string            `json:"subject"`
	Date        time.Time         `json:"date"`
	Body        *bodyJSON         `json:"body,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
	Attachments []attachmentJSON  `json:"attachments"`
}

type mailboxJSON struct {
	Address string `json:"address"`
	Name    string `json:"name,omitempty"`
}

type bodyJSON struct {
	Text string `json:"text"`
	HTML string `json:"html"`
}

type attachmentJSON struct {
	ID       string `json:"id"`
	FileName string `json:"fileName"`
	Present  bool   `json:"present"`
}

func toEmailJSON(e *tacomail.Email, withBody bool) emailJSON {
	out := emailJSON{
		ID:          e.ID,
		From:        mailboxJSON{Address: e.From.Address, Name: e.From.Name},
		To:          mailboxJSON{Address: e.To.Address, Name: e.To.Name},
		Subject:     e.Subject,
		Date:        e.Date,
		Attachments: toAttachmentsJSON(e.Attachments),
	}
	if withBody {
		out.Body = &bodyJSON{Text: e.Body.Text, HTML: e.Body.HTML}
		out.Headers = e.Headers
	}
	return out
}

func toAttachmentsJSON(atts []tacomail.Attachment) []attachmentJSON {
	out := make([]attachmentJSON, 0, len(atts))
	for _, a := range atts {
		out = append(out, attachmentJSON{ID: a.ID, FileName: a.FileName, Present: a.Present})
	}
	return out
}

func (r *renderer) emailList(address string, emails []*tacomail.Email) error {
	switch r.format {
	case formatJSON:
		list := make([]emailJSON, 0, len(emails))
		for _, e := range emails {
			list = append(list, toEmailJSON(e, false))
		}
		return r.jsonValue(list)
	case formatPlain:
		for _, e := range emails {
			fmt.Fprintf(r.out, "%s\t%s\t%s\t%s\n",
				e.ID, e.From.Address, e.Subject, e.Date.Format(time.RFC3339))
		}
		return nil
	default:
		if len(emails) == 0 {
			fmt.Fprintf(r.out, "No emails found for %s\n", address)
			return nil
		}
		fmt.Fprintf(r.out, "Inbox for %s:\n", address)
		w := tabwriter.NewWriter(r.out, 2, 8, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tFROM\tSUBJECT\tDATE")
		for _, e := range emails {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				e.ID, e.From.String(), truncate(e.Subject, 50), e.Date.Local().Format(timeLayout))
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(r.out, "Showing %d email(s)\n", len(emails))
		return nil
	}
}

func (r *renderer) email(e *tacomail.Email, printBody bool) error {
	switch r.format {
	case formatJSON:
		return r.jsonValue(toEmailJSON(e, true))
	case formatPlain:
		fmt.Fprintf(r.out, "%s\t%s\t%s\t%s\n",
			e.ID, e.From.Address, e.Subject, e.Date.Format(time.RFC3339))
		if printBody && e.Body.Text != "" {
			fmt.Fprintln(r.out, e.Body.Text)
		}
		return nil
	default:
		fmt.Fprintf(r.out, "From:    %s\n", e.From.String())
		fmt.Fprintf(r.out, "To:      %s\n", e.To.String())
		fmt.Fprintf(r.out, "Subject: %s\n", e.Subject)
		fmt.Fprintf(r.out, "Date:    %s\n", e.Date.Local().Format(timeLayout))
		fmt.Fprintf(r.out, "ID:      %s\n", e.ID)
		if len(e.Attachments) > 0 {
			fmt.Fprintf(r.out, "Attachments (%d):\n", len(e.Attachments))
			for _, a := range e.Attachments {
				marker := "x"
				if a.Present {
					marker = "+"
				}
				fmt.Fprintf(r.out, "  [%s] %s (%s)\n", marker, a.FileName, a.ID)
			}
		}
		if printBody {
			fmt.Fprintln(r.out)
			if e.Body.Text != "" {
				fmt.Fprintln(r.out, e.Body.Text)
			} else {
				fmt.Fprintln(r.out, "(no text body)")
			}
		}
		return nil
	}
}

func (r *renderer) attachments(atts []tacomail.Attachment) error {
	switch r.format {
	case formatJSON:
		return r.jsonValue(toAttachmentsJSON(atts))
	case formatPlain:
		for _, a := range atts {
			fmt.Fprintf(r.out, "%s\t%s\t%t\n", a.ID, a.FileName, a.Present)
		}
		return nil
	default:
		if len(atts) == 0 {
			fmt.Fprintln(r.out, "No attachments")
			return nil
		}
		w := tabwriter.NewWriter(r.out, 2, 8, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tFILE\tPRESENT")
		for _, a := range atts {
			fmt.Fprintf(w, "%s\t%s\t%t\n", a.ID, a.FileName, a.Present)
		}
		return w.Flush()
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
