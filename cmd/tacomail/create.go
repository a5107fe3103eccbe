package main

import (
	"context"
	"fmt"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	tacomail "github.com/tacomail/client-go"
)

type createFlags struct {
	username string
	domain   string
}

func parseCreateFlags(cmd string, args []string) createFlags {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	var f createFlags
	fs.StringVarP(&f.username, "username", "u", "", "Specific username to use (otherwise random)")
	fs.StringVarP(&f.domain, "domain", "d", "", "Specific domain to use (otherwise random)")
	if err := fs.Parse(args); err != nil {
		fatal("%s: %v", cmd, err)
	}
	return f
}

// resolveAddress composes the address from the flags, asking the service
// for whatever part was not supplied.
func resolveAddress(ctx context.Context, rt *runtime, f createFlags) (string, error) {
	switch {
	case f.username != "" && f.domain != "":
		return f.username + "@" + f.domain, nil
	case f.domain != "":
		username, err := rt.client.RandomUsername(ctx)
		if err != nil {
			return "", err
		}
		return username + "@" + f.domain, nil
	case f.username != "":
		domains, err := rt.client.Domains(ctx)
		if err != nil {
			return "", err
		}
		if len(domains) == 0 {
			return "", fmt.Errorf("service published no domains")
		}
		return f.username + "@" + domains[0], nil
	default:
		return rt.client.RandomAddress(ctx)
	}
}

func handleCreate(ctx context.Context, rt *runtime, f createFlags) error {
	address, err := resolveAddress(ctx, rt, f)
	if err != nil {
		return err
	}
	rt.logger.Debug("generated address", zap.String("address", address))
	return rt.render.address(address)
}

// handleNew generates an address and immediately registers its session,
// so the inbox starts retaining mail in one step.
func handleNew(ctx context.Context, rt *runtime, f createFlags) error {
	address, err := resolveAddress(ctx, rt, f)
	if err != nil {
		return err
	}

	username, domain, err := tacomail.SplitAddress(address)
	if err != nil {
		return err
	}

	session, err := rt.client.CreateSession(ctx, username, domain)
	if err != nil {
		return err
	}
	rt.logger.Debug("session created",
		zap.String("address", address),
		zap.Time("expires", session.Expires))

	if err := rt.render.session(session); err != nil {
		return err
	}
	rt.render.message("Monitor with: tacomail list %s", address)
	return nil
}
