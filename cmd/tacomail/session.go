package main

import (
	"context"
	"fmt"

	tacomail "github.com/tacomail/client-go"
)

// requireAddressArg validates the single address argument of a command
// before anything is sent to the API.
func requireAddressArg(cmd string, args []string) (username, domain string, err error) {
	if len(args) != 1 {
		return "", "", fmt.Errorf("usage: tacomail %s <address>", cmd)
	}
	return tacomail.SplitAddress(args[0])
}

func handleCreateSession(ctx context.Context, rt *runtime, args []string) error {
	username, domain, err := requireAddressArg("create-session", args)
	if err != nil {
		return err
	}

	session, err := rt.client.CreateSession(ctx, username, domain)
	if err != nil {
		return err
	}
	return rt.render.session(session)
}

func handleDeleteSession(ctx context.Context, rt *runtime, args []string) error {
	username, domain, err := requireAddressArg("delete-session", args)
	if err != nil {
		return err
	}

	if err := rt.client.DeleteSession(ctx, username, domain); err != nil {
		return err
	}
	rt.render.message("Session deleted for %s@%s (stored mail is kept)", username, domain)
	return nil
}

func handleDomains(ctx context.Context, rt *runtime) error {
	domains, err := rt.client.Domains(ctx)
	if err != nil {
		return err
	}
	return rt.render.domains(domains)
}

func handleContact(ctx context.Context, rt *runtime) error {
	contact, err := rt.client.ContactEmail(ctx)
	if err != nil {
		return err
	}
	return rt.render.contact(contact)
}
