// Package tacomail provides a Go client for Tacomail, a disposable email
// service. It can generate throwaway addresses, register inbox sessions so
// incoming mail is retained, poll or wait for new mail, and fetch or delete
// messages and attachments.
//
// Two client variants expose the same operation set. [Client] is blocking:
// calls occupy the goroutine and wait sleeps cannot be interrupted.
// [AsyncClient] is context-aware: every call is cancellable and waits abort
// when the context does.
//
// Basic usage:
//
//	client := tacomail.New()
//	defer client.Close()
//
//	address, err := client.RandomAddress()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	username, domain, _ := tacomail.SplitAddress(address)
//	if _, err := client.CreateSession(username, domain); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Wait for the first email to arrive.
//	email, err := client.WaitForEmail(address)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if email == nil {
//	    log.Fatal("no email within the timeout")
//	}
//
//	fmt.Println("Subject:", email.Subject)
package tacomail
