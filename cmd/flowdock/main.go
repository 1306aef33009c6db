// Command flowdock posts to Flowdock flows and calls its REST API.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/adamwoolhether/flowdock/client"
	"github.com/adamwoolhether/flowdock/internal/config"
)

var version = "1.0.0"

// app carries the IO streams and the resolved configuration shared by
// every subcommand.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configPath string
	logLevel   string
	baseURL    string
	timeout    time.Duration

	cfg    *config.Config
	logger *slog.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		a.log().Error("command failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:     "flowdock",
		Short:   "Post to Flowdock flows and call the Flowdock API",
		Version: version,
		Long: `flowdock pushes team inbox and chat messages with flow tokens, and
calls the authenticated REST API with an account API token.

Settings are read from --config, then FLOWDOCK_* environment variables,
then command line flags.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.load,
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	root.PersistentFlags().StringVar(&a.baseURL, "base-url", "", "Flowdock API base url (default "+client.DefaultBaseURL+")")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 0, "overall request timeout, e.g. 30s")

	root.AddCommand(inboxCmd(a))
	root.AddCommand(chatCmd(a))
	root.AddCommand(messageCmd(a))
	root.AddCommand(privateCmd(a))
	root.AddCommand(threadCmd(a))
	root.AddCommand(apiCmd(a))

	return root
}

// load resolves the configuration: file, then environment, then flags.
func (a *app) load(cmd *cobra.Command, _ []string) error {
	cfg := config.DefaultConfig()
	if a.configPath != "" {
		var err error
		if cfg, err = config.LoadFile(a.configPath); err != nil {
			return err
		}
	}
	if err := config.ApplyEnvOverrides(cfg); err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("base-url") {
		cfg.BaseURL = a.baseURL
	}
	if flags.Changed("timeout") {
		cfg.Timeout = a.timeout
	}

	lvl, err := cfg.Level()
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: lvl}))

	for _, w := range cfg.Validate() {
		a.logger.Warn("config warning", "warning", w)
	}

	return nil
}

func (a *app) log() *slog.Logger {
	if a.logger == nil {
		return slog.New(slog.NewTextHandler(a.stderr, nil))
	}
	return a.logger
}

func (a *app) newFlow(tokens []string) (*client.Flow, error) {
	fc := a.cfg.FlowConfig()
	if len(tokens) > 0 {
		fc.Tokens = tokens
	}
	return client.NewFlow(fc, a.cfg.Options(a.logger)...)
}

func (a *app) newClient() (*client.Client, error) {
	return client.NewClient(a.cfg.ClientConfig(), a.cfg.Options(a.logger)...)
}

// content returns flag when set, otherwise everything on stdin.
func (a *app) content(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	b, err := io.ReadAll(a.stdin)
	if err != nil {
		return "", fmt.Errorf("reading content from stdin: %w", err)
	}
	return strings.TrimRight(string(b), "\n"), nil
}

// printPayload writes an indented JSON payload to stdout.
func (a *app) printPayload(payload json.RawMessage) error {
	var out bytes.Buffer
	if err := json.Indent(&out, payload, "", "  "); err != nil {
		return fmt.Errorf("formatting response: %w", err)
	}
	out.WriteByte('\n')
	_, err := out.WriteTo(a.stdout)
	return err
}
