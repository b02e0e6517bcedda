package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/specialistvlad/bddgrid/internal/app"
	"github.com/spf13/cobra"
)

// Exit codes returned through ExitError.
const (
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) *ExitError {
	return &ExitError{Code: ExitUsage, Message: err.Error()}
}

// options collects every flag of every command.
type options struct {
	configPath string
	logLevel   string
	logFormat  string

	graphPaths []string
	outputDir  string
	template   string
	workers    int
	watch      bool
	healthPort int

	url       string
	namespace string
	event     string
	ackEvent  string
	timeout   time.Duration
	insecure  bool
}

// Execute runs the bddgrid command line with args. Help and results go to
// stdout, logs go to stderr. Any failure is returned as an *ExitError.
func Execute(args []string, stdout, stderr io.Writer) error {
	root := NewRootCommand(stdout, stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	// Anything cobra reports itself is a usage problem.
	return usageError(err)
}

// NewRootCommand builds the command tree.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "bddgrid",
		Short: "Generate BDD acceptance scenarios from a pick-and-place scenario graph.",
		Long: `bddgrid reads user stories, scenario templates and task variations from
HCL or YAML graph files and expands them into Gherkin feature files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError(err) })

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Path to a YAML config file.")
	pf.StringVar(&opts.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.StringVar(&opts.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")

	root.AddCommand(
		newGenerateCommand(opts, stdout, stderr),
		newListCommand(opts, stdout, stderr),
		newPublishCommand(opts, stderr),
	)
	return root
}

func addGraphFlag(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringSliceVarP(&opts.graphPaths, "graph", "g", nil, "Graph file or directory; repeatable. Positional arguments are added too.")
}

func newGenerateCommand(opts *options, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [GRAPH_PATH...]",
		Short: "Write one feature file per user story.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts, args, stderr)
			if err != nil {
				return err
			}
			if opts.watch {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				return failure(a.Watch(ctx))
			}
			paths, err := a.Generate(cmd.Context())
			if err != nil {
				return failure(err)
			}
			for _, p := range paths {
				fmt.Fprintln(stdout, p)
			}
			return nil
		},
	}
	addGraphFlag(cmd, opts)
	f := cmd.Flags()
	f.StringVarP(&opts.outputDir, "output", "o", "features", "Directory the feature files are written to.")
	f.StringVar(&opts.template, "template", "", "Custom text/template for feature files.")
	f.IntVar(&opts.workers, "workers", 4, "Number of user stories rendered concurrently.")
	f.BoolVar(&opts.watch, "watch", false, "Regenerate whenever a graph file changes.")
	f.IntVar(&opts.healthPort, "healthcheck-port", 0, "Port for the HTTP health check server in watch mode. 0 is disabled.")
	return cmd
}

func newListCommand(opts *options, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [GRAPH_PATH...]",
		Short: "List user stories, their scenario variants and variation counts.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts, args, stderr)
			if err != nil {
				return err
			}
			return failure(a.List(cmd.Context(), stdout))
		},
	}
	addGraphFlag(cmd, opts)
	return cmd
}

func newPublishCommand(opts *options, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish [GRAPH_PATH...]",
		Short: "Send every prepared user story to a socket.io endpoint.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cfg, err := newAppWithConfig(cmd, opts, args, stderr)
			if err != nil {
				return err
			}
			if err := cfg.ValidatePublish(); err != nil {
				return usageError(err)
			}
			return failure(a.Publish(cmd.Context()))
		},
	}
	addGraphFlag(cmd, opts)
	f := cmd.Flags()
	f.StringVar(&opts.url, "url", "", "socket.io endpoint, e.g. http://localhost:3000/socket.io/")
	f.StringVar(&opts.namespace, "namespace", "/", "socket.io namespace.")
	f.StringVar(&opts.event, "event", "feature", "Event emitted once per user story.")
	f.StringVar(&opts.ackEvent, "ack-event", "", "Event awaited after every emit; empty sends without waiting.")
	f.DurationVar(&opts.timeout, "timeout", 10*time.Second, "Timeout for the whole publish run.")
	f.BoolVar(&opts.insecure, "insecure", false, "Skip TLS certificate verification.")
	return cmd
}

func failure(err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: ExitFailure, Message: err.Error()}
}

func newApp(cmd *cobra.Command, opts *options, args []string, stderr io.Writer) (*app.App, error) {
	a, _, err := newAppWithConfig(cmd, opts, args, stderr)
	return a, err
}

func newAppWithConfig(cmd *cobra.Command, opts *options, args []string, stderr io.Writer) (*app.App, *app.Config, error) {
	cfg, err := resolveConfig(cmd, opts, args)
	if err != nil {
		return nil, nil, usageError(err)
	}
	slog.Debug("CLI configuration resolved.", "config", cfg)

	a, err := app.NewApp(stderr, cfg)
	if err != nil {
		return nil, nil, failure(err)
	}
	return a, cfg, nil
}

// resolveConfig layers defaults, the config file and explicitly set flags,
// in that order, and validates the result.
func resolveConfig(cmd *cobra.Command, opts *options, args []string) (*app.Config, error) {
	cfg := app.DefaultConfig()
	if opts.configPath != "" {
		var err error
		if cfg, err = app.LoadConfigFile(opts.configPath, cfg); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	set := func(name string, apply func()) {
		if f := flags.Lookup(name); f != nil && f.Changed {
			apply()
		}
	}
	set("log-level", func() { cfg.LogLevel = opts.logLevel })
	set("log-format", func() { cfg.LogFormat = opts.logFormat })
	set("graph", func() { cfg.GraphPaths = opts.graphPaths })
	set("output", func() { cfg.OutputDir = opts.outputDir })
	set("template", func() { cfg.TemplatePath = opts.template })
	set("workers", func() { cfg.Workers = opts.workers })
	set("healthcheck-port", func() { cfg.HealthcheckPort = opts.healthPort })
	set("url", func() { cfg.Publish.URL = opts.url })
	set("namespace", func() { cfg.Publish.Namespace = opts.namespace })
	set("event", func() { cfg.Publish.Event = opts.event })
	set("ack-event", func() { cfg.Publish.AckEvent = opts.ackEvent })
	set("timeout", func() { cfg.Publish.Timeout = opts.timeout })
	set("insecure", func() { cfg.Publish.InsecureSkipVerify = opts.insecure })

	if len(args) > 0 {
		cfg.GraphPaths = append(cfg.GraphPaths, args...)
	}
	if len(cfg.GraphPaths) == 0 {
		return nil, errors.New("no graph path given: pass -g PATH, a positional path or set 'graph' in the config file")
	}
	return app.NewConfig(cfg)
}
