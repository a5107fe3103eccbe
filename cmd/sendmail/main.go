// Command sendmail delivers a single test email to a Tacomail instance
// over plain SMTP. It is a development helper for exercising inboxes
// without a real mail sender.
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/tacomail/client-go/internal/smtptest"
)

func main() {
	var (
		addr    = flag.String("addr", "localhost:25", "SMTP listener address")
		from    = flag.String("from", "sender@example.com", "Envelope and header sender")
		subject = flag.StringP("subject", "s", "Test email", "Subject line")
		body    = flag.StringP("body", "b", "Hello from sendmail.", "Plain-text body")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sendmail [options] <recipient>\n\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	msg := smtptest.Message{
		From:    *from,
		To:      flag.Arg(0),
		Subject: *subject,
		Body:    *body,
	}
	if err := smtptest.Send(*addr, msg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Sent %q to %s via %s\n", msg.Subject, msg.To, *addr)
}
