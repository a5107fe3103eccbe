// Command tacomail is a command-line interface for the Tacomail disposable
// email service.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
)

const version = "1.0.0"

// runtime bundles everything a command handler needs. It is built once in
// main and passed explicitly; commands never touch process-wide state.
type runtime struct {
	cfg    *cliConfig
	client mailer
	render *renderer
	logger *zap.Logger
	stdin  io.Reader
}

func main() {
	var (
		asyncMode   bool
		output      string
		baseURL     string
		reqTimeout  time.Duration
		verbose     bool
		configFile  string
		showVersion bool
	)

	flag.BoolVar(&asyncMode, "async", false, "Use the context-aware client")
	flag.StringVarP(&output, "output", "o", "", "Output format: rich, plain or json")
	flag.StringVar(&baseURL, "base-url", "", "Tacomail instance base URL")
	flag.DurationVar(&reqTimeout, "request-timeout", 0, "Per-request HTTP timeout")
	flag.BoolVarP(&verbose, "verbose", "v", false, "Verbose (debug) output")
	flag.StringVar(&configFile, "config", "", "Config file path")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.Usage = printUsage
	flag.Parse()

	if showVersion {
		fmt.Printf("tacomail CLI v%s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := loadConfig(configFile)
	if err != nil {
		fatal("%v", err)
	}

	// Flags override config file and environment.
	if asyncMode {
		cfg.Async = true
	}
	if verbose {
		cfg.Verbose = true
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if reqTimeout > 0 {
		cfg.RequestTimeout = reqTimeout
	}
	if output != "" {
		f, err := parseFormat(output)
		if err != nil {
			fatal("%v", err)
		}
		cfg.Output = f
	}

	logger := zap.NewNop()
	if cfg.Verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			fatal("create logger: %v", err)
		}
	}
	defer logger.Sync()

	rt := &runtime{
		cfg:    cfg,
		client: newMailer(cfg),
		render: &renderer{out: os.Stdout, format: cfg.Output},
		logger: logger,
		stdin:  os.Stdin,
	}
	defer rt.client.Close()

	logger.Debug("configured",
		zap.String("base_url", cfg.BaseURL),
		zap.Bool("async", cfg.Async),
		zap.String("output", string(cfg.Output)))

	ctx := context.Background()
	cmd, cmdArgs := args[0], args[1:]

	if err := dispatch(ctx, rt, cmd, cmdArgs); err != nil {
		fatal("%s: %v", cmd, err)
	}
}

func dispatch(ctx context.Context, rt *runtime, cmd string, args []string) error {
	switch cmd {
	case "create":
		return handleCreate(ctx, rt, parseCreateFlags(cmd, args))
	case "domains":
		return handleDomains(ctx, rt)
	case "contact":
		return handleContact(ctx, rt)
	case "create-session":
		return handleCreateSession(ctx, rt, args)
	case "delete-session":
		return handleDeleteSession(ctx, rt, args)
	case "new", "create-with-session":
		return handleNew(ctx, rt, parseCreateFlags(cmd, args))
	case "list":
		return handleList(ctx, rt, args)
	case "get":
		return handleGet(ctx, rt, args)
	case "delete":
		return handleDelete(ctx, rt, args)
	case "clear":
		return handleClear(ctx, rt, args)
	case "attachments":
		return handleAttachments(ctx, rt, args)
	case "download":
		return handleDownload(ctx, rt, args)
	case "wait":
		return handleWait(ctx, rt, args)
	case "help":
		printUsage()
		return nil
	default:
		return fmt.Errorf("unknown command (run 'tacomail help')")
	}
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `tacomail CLI v%s - Disposable email from the command line

Usage:
  tacomail [global options] <command> [command options]

Commands:
  create            Generate a random email address
  new               Generate an address and create its session in one step
  domains           List available domains
  contact           Show the instance contact address
  create-session    Register an inbox session so mail is retained
  delete-session    Stop accepting new mail for an address
  list              List emails in an inbox
  get               Show a single email
  delete            Delete a single email
  clear             Delete all emails in an inbox
  attachments       List attachments of an email
  download          Download a single attachment
  wait              Wait for an email to arrive
  help              Show this help

Global Options:
      --async              Use the context-aware client
  -o, --output <format>    Output format: rich, plain or json (default rich)
      --base-url <url>     Tacomail instance base URL
      --request-timeout    Per-request HTTP timeout
      --config <file>      Config file path
  -v, --verbose            Verbose (debug) output
      --version            Show version information

Environment:
  TACOMAIL_BASE_URL, TACOMAIL_OUTPUT, TACOMAIL_ASYNC override the defaults;
  flags override everything. A config file at ~/.config/tacomail/config.yaml
  is read when present.
`, version)
}
