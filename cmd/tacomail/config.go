package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	tacomail "github.com/tacomail/client-go"
)

// cliConfig is resolved once at startup and threaded explicitly into every
// command handler; there is no process-wide mutable mode state.
type cliConfig struct {
	BaseURL        string
	Output         format
	Async          bool
	Verbose        bool
	RequestTimeout time.Duration
	WaitTimeout    time.Duration
	PollInterval   time.Duration
}

// loadConfig merges, in increasing precedence: built-in defaults, an
// optional config file (--config, or ~/.config/tacomail/config.yaml), and
// TACOMAIL_* environment variables. Flag values are applied on top by the
// caller.
func loadConfig(path string) (*cliConfig, error) {
	v := viper.New()
	v.SetDefault("base_url", tacomail.DefaultBaseURL)
	v.SetDefault("output", string(formatRich))
	v.SetDefault("async", false)
	v.SetDefault("request_timeout", time.Duration(0))
	v.SetDefault("wait_timeout", tacomail.DefaultWaitTimeout)
	v.SetDefault("poll_interval", tacomail.DefaultPollInterval)

	v.SetEnvPrefix("TACOMAIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "tacomail"))
		}
		// The default config file is optional.
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	output, err := parseFormat(v.GetString("output"))
	if err != nil {
		return nil, err
	}

	return &cliConfig{
		BaseURL:        v.GetString("base_url"),
		Output:         output,
		Async:          v.GetBool("async"),
		RequestTimeout: v.GetDuration("request_timeout"),
		WaitTimeout:    v.GetDuration("wait_timeout"),
		PollInterval:   v.GetDuration("poll_interval"),
	}, nil
}
