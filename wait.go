package tacomail

import "time"

// EmailFilter reports whether an email matches. Filters must be free of
// side effects: a filter is evaluated against every message of every poll
// and may therefore see the same message many times.
type EmailFilter func(*Email) bool

// pollFunc fetches the full visible inbox for one poll.
type pollFunc func() ([]*Email, error)

// sleepFunc suspends the caller for d. The cooperative variant returns an
// error when the surrounding context is cancelled mid-sleep.
type sleepFunc func(d time.Duration) error

// condition inspects a freshly fetched listing and returns the matching
// email, or nil if the stopping condition is not yet satisfied.
type condition func(inbox []*Email) *Email

// waitForEmail is the poll loop shared by both client variants. It fetches
// the whole visible inbox each round and evaluates cond against the listing
// in its returned order, returning a match immediately without sleeping
// first. The deadline is absolute: the loop never sleeps past it, and the
// final poll runs at the deadline itself, so the elapsed time of an
// unsatisfied wait is at least timeout and below timeout plus one interval.
//
// A wait that reaches the deadline without a match returns (nil, nil):
// timing out is a normal outcome, not an error. Errors from poll or sleep
// abort the wait immediately.
func waitForEmail(poll pollFunc, sleep sleepFunc, cond condition, timeout, interval time.Duration) (*Email, error) {
	deadline := time.Now().Add(timeout)

	for {
		inbox, err := poll()
		if err != nil {
			return nil, err
		}

		if email := cond(inbox); email != nil {
			return email, nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, nil
		}

		d := interval
		if remaining < d {
			d = remaining
		}
		if err := sleep(d); err != nil {
			return nil, err
		}
	}
}

// countCondition is satisfied once the inbox holds at least want messages;
// it yields the first listing entry, which the service returns newest-first.
// The ordering is a documented assumption of the remote API, not a
// contractual guarantee.
func countCondition(want int) condition {
	if want < 1 {
		want = 1
	}
	return func(inbox []*Email) *Email {
		if len(inbox) >= want {
			return inbox[0]
		}
		return nil
	}
}

// filterCondition yields the first email in listing order accepted by the
// filter. A match already present on the first poll is returned without
// waiting a full interval.
func filterCondition(filter EmailFilter) condition {
	return func(inbox []*Email) *Email {
		for _, email := range inbox {
			if filter(email) {
				return email
			}
		}
		return nil
	}
}
