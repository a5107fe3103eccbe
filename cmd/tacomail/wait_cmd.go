package main

import (
	"context"
	"fmt"
	"regexp"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	tacomail "github.com/tacomail/client-go"
)

type waitFlags struct {
	timeout   time.Duration
	interval  time.Duration
	filter    string
	printBody bool
}

func parseWaitFlags(rt *runtime, args []string) (waitFlags, []string) {
	fs := flag.NewFlagSet("wait", flag.ExitOnError)
	var f waitFlags
	fs.DurationVarP(&f.timeout, "timeout", "t", rt.cfg.WaitTimeout, "Maximum time to wait")
	fs.DurationVarP(&f.interval, "interval", "i", rt.cfg.PollInterval, "Pause between inbox checks")
	fs.StringVarP(&f.filter, "filter", "f", "", "Only match subject or sender against this regex (case-insensitive)")
	fs.BoolVarP(&f.printBody, "print-body", "p", false, "Also print the email body")
	if err := fs.Parse(args); err != nil {
		fatal("wait: %v", err)
	}
	return f, fs.Args()
}

// subjectOrSenderFilter matches the subject, the sender address or the
// sender display name against pattern, ignoring case.
func subjectOrSenderFilter(pattern string) (tacomail.EmailFilter, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid filter pattern: %w", err)
	}
	return func(e *tacomail.Email) bool {
		return re.MatchString(e.Subject) ||
			re.MatchString(e.From.Address) ||
			re.MatchString(e.From.Name)
	}, nil
}

func handleWait(ctx context.Context, rt *runtime, args []string) error {
	f, rest := parseWaitFlags(rt, args)
	if len(rest) != 1 {
		return fmt.Errorf("usage: tacomail wait <address> [--timeout d] [--interval d] [--filter regex] [--print-body]")
	}
	address := rest[0]
	if err := validateAddress(address); err != nil {
		return err
	}

	rt.render.message("Waiting for email to %s... (timeout: %s)", address, f.timeout)
	rt.logger.Debug("waiting",
		zap.String("address", address),
		zap.Duration("timeout", f.timeout),
		zap.Duration("interval", f.interval),
		zap.String("filter", f.filter))

	opts := []tacomail.WaitOption{
		tacomail.WithWaitTimeout(f.timeout),
		tacomail.WithPollInterval(f.interval),
	}

	var email *tacomail.Email
	var err error
	if f.filter != "" {
		filter, ferr := subjectOrSenderFilter(f.filter)
		if ferr != nil {
			return ferr
		}
		email, err = rt.client.WaitForEmailFiltered(ctx, address, filter, opts...)
	} else {
		email, err = rt.client.WaitForEmail(ctx, address, opts...)
	}
	if err != nil {
		return err
	}

	// A nil email means the timeout elapsed; that is a nonzero exit for
	// scripts even though the client treats it as a normal outcome.
	if email == nil {
		return fmt.Errorf("no email received within %s", f.timeout)
	}

	return rt.render.email(email, f.printBody)
}
