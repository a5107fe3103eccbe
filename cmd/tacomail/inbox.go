package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	tacomail "github.com/tacomail/client-go"
)

// validateAddress rejects malformed addresses before any API call.
func validateAddress(address string) error {
	_, _, err := tacomail.SplitAddress(address)
	return err
}

func handleList(ctx context.Context, rt *runtime, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	limit := fs.IntP("limit", "l", 0, "Maximum number of emails to show (server caps at 10)")
	if err := fs.Parse(args); err != nil {
		fatal("list: %v", err)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: tacomail list <address> [--limit n]")
	}
	address := fs.Arg(0)
	if err := validateAddress(address); err != nil {
		return err
	}

	rt.logger.Debug("listing inbox", zap.String("address", address), zap.Int("limit", *limit))
	emails, err := rt.client.GetInbox(ctx, address, *limit)
	if err != nil {
		return err
	}
	return rt.render.emailList(address, emails)
}

func requireMailArgs(cmd string, args []string) (address, mailID string, err error) {
	if len(args) != 2 {
		return "", "", fmt.Errorf("usage: tacomail %s <address> <mail-id>", cmd)
	}
	if err := validateAddress(args[0]); err != nil {
		return "", "", err
	}
	return args[0], args[1], nil
}

func handleGet(ctx context.Context, rt *runtime, args []string) error {
	address, mailID, err := requireMailArgs("get", args)
	if err != nil {
		return err
	}

	email, err := rt.client.GetEmail(ctx, address, mailID)
	if err != nil {
		return err
	}
	return rt.render.email(email, true)
}

func handleDelete(ctx context.Context, rt *runtime, args []string) error {
	address, mailID, err := requireMailArgs("delete", args)
	if err != nil {
		return err
	}

	if err := rt.client.DeleteEmail(ctx, address, mailID); err != nil {
		return err
	}
	rt.render.message("Email %s deleted", mailID)
	return nil
}

func handleClear(ctx context.Context, rt *runtime, args []string) error {
	fs := flag.NewFlagSet("clear", flag.ExitOnError)
	yes := fs.BoolP("yes", "y", false, "Skip confirmation prompt")
	if err := fs.Parse(args); err != nil {
		fatal("clear: %v", err)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: tacomail clear <address> [--yes]")
	}
	address := fs.Arg(0)
	if err := validateAddress(address); err != nil {
		return err
	}

	if !*yes && !confirm(rt, fmt.Sprintf("Delete all emails from %s?", address)) {
		rt.render.message("Aborted")
		return nil
	}

	if err := rt.client.DeleteInbox(ctx, address); err != nil {
		return err
	}
	rt.render.message("Inbox cleared for %s", address)
	return nil
}

func confirm(rt *runtime, prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(rt.stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func handleAttachments(ctx context.Context, rt *runtime, args []string) error {
	address, mailID, err := requireMailArgs("attachments", args)
	if err != nil {
		return err
	}

	atts, err := rt.client.GetAttachments(ctx, address, mailID)
	if err != nil {
		return err
	}
	return rt.render.attachments(atts)
}

func handleDownload(ctx context.Context, rt *runtime, args []string) error {
	fs := flag.NewFlagSet("download", flag.ExitOnError)
	outPath := fs.StringP("out", "o", "", "Output file (\"-\" for stdout; default: attachment id)")
	if err := fs.Parse(args); err != nil {
		fatal("download: %v", err)
	}
	if fs.NArg() != 3 {
		return fmt.Errorf("usage: tacomail download <address> <mail-id> <attachment-id> [--out file]")
	}
	address, mailID, attachmentID := fs.Arg(0), fs.Arg(1), fs.Arg(2)
	if err := validateAddress(address); err != nil {
		return err
	}

	data, err := rt.client.DownloadAttachment(ctx, address, mailID, attachmentID)
	if err != nil {
		return err
	}

	target := *outPath
	if target == "" {
		target = attachmentID
	}
	if target == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	rt.render.message("Wrote %d bytes to %s", len(data), target)
	return nil
}
