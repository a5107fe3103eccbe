package tacomail

import (
	"testing"
	"time"
)

func TestNewWaitConfig_Defaults(t *testing.T) {
	cfg := newWaitConfig(nil)

	if cfg.timeout != DefaultWaitTimeout {
		t.Errorf("timeout = %v, want %v", cfg.timeout, DefaultWaitTimeout)
	}
	if cfg.interval != DefaultPollInterval {
		t.Errorf("interval = %v, want %v", cfg.interval, DefaultPollInterval)
	}
	if cfg.expectedCount != 1 {
		t.Errorf("expectedCount = %d, want 1", cfg.expectedCount)
	}
}

func TestNewWaitConfig_Options(t *testing.T) {
	cfg := newWaitConfig([]WaitOption{
		WithWaitTimeout(time.Minute),
		WithPollInterval(5 * time.Second),
		WithExpectedCount(3),
	})

	if cfg.timeout != time.Minute {
		t.Errorf("timeout = %v, want 1m", cfg.timeout)
	}
	if cfg.interval != 5*time.Second {
		t.Errorf("interval = %v, want 5s", cfg.interval)
	}
	if cfg.expectedCount != 3 {
		t.Errorf("expectedCount = %d, want 3", cfg.expectedCount)
	}
}

func TestNewWaitConfig_ClampsExpectedCount(t *testing.T) {
	cfg := newWaitConfig([]WaitOption{WithExpectedCount(-5)})
	if cfg.expectedCount != 1 {
		t.Errorf("expectedCount = %d, want clamped to 1", cfg.expectedCount)
	}
}
