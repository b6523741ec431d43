package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Emurgo/node-cardano-wallet/domain/entities"
	"github.com/Emurgo/node-cardano-wallet/host"
	"github.com/Emurgo/node-cardano-wallet/hostcall"
)

// cli holds the state shared by the commands of one invocation.
type cli struct {
	engine     string
	wasmPath   string
	configPath string
	logLevel   string
	jsonErrors bool
	quiet      bool

	host *host.Host
}

func newCLI() (*cli, *cobra.Command) {
	c := &cli{}
	root := &cobra.Command{
		Use:   "walletbridge",
		Short: "Cardano wallet engine bridge",
		Long: `walletbridge - Call the Cardano wallet engine operations.

Keys, seeds and binary data are passed and printed as hex. Wallet and checker
operations take their JSON parameters verbatim and print the engine result.
The builtin engine implements the hdwallet and password operations; wallet
and checker operations need the wasm engine (--engine wasm --wasm FILE).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.engine, "engine", "", "Engine: builtin, wasm (default from config, else builtin)")
	flags.StringVar(&c.wasmPath, "wasm", "", "Wallet engine wasm module")
	flags.StringVar(&c.configPath, "config", "", "YAML config file; {{.vars.NAME}} resolves environment variables")
	flags.StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.BoolVar(&c.jsonErrors, "json-errors", false, "Print errors as JSON")
	flags.BoolVar(&c.quiet, "quiet", false, "Suppress engine fault reports")

	root.AddCommand(
		c.opsCmd(),
		c.schemaCmd(),
		c.hdwalletCmd(),
		c.passwordCmd(),
		c.textCmd("wallet", "wallet_", "Wallet operations (JSON parameters)"),
		c.textCmd("checker", "random_checker_", "Random address checker operations (JSON parameters)"),
	)

	return c, root
}

// execute runs root and prints the error, as JSON with --json-errors.
func (c *cli) execute(root *cobra.Command) error {
	cmd, err := root.ExecuteC()
	if err == nil {
		return nil
	}
	if cmd == nil {
		cmd = root
	}
	if c.jsonErrors {
		fmt.Fprintln(cmd.ErrOrStderr(), string(hostcall.NewErrorResponse(err).ToJSON()))
	} else {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
	}
	return err
}

// withHost runs fn with a host built from the flags and config file.
func (c *cli) withHost(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := c.open(cmd); err != nil {
			return err
		}
		defer c.host.Close(context.WithoutCancel(cmd.Context()))
		return fn(cmd, args)
	}
}

func (c *cli) open(cmd *cobra.Command) error {
	cfg := entities.DefaultBridgeConfig()
	if c.configPath != "" {
		// Validation runs in host.New once the flag overrides are applied.
		loaded, err := host.NewLoader(host.WithValidation(false)).LoadFile(c.configPath, environ())
		if err != nil {
			return err
		}
		cfg = *loaded
	}
	if c.engine != "" {
		cfg.Engine = c.engine
	}
	if c.wasmPath != "" {
		cfg.WasmPath = c.wasmPath
		if c.engine == "" {
			cfg.Engine = entities.EngineWasm
		}
	}
	level := cfg.LogLevel
	switch {
	case c.logLevel != "":
		cfg.LogLevel = c.logLevel
		level = c.logLevel
	case c.jsonErrors:
		// stderr carries the JSON error envelope only.
		level = "error"
	}
	if c.quiet {
		host.Init()
	}

	h, err := host.New(cmd.Context(),
		host.WithConfig(cfg),
		host.WithLogger(newLogger(cmd.ErrOrStderr(), level)),
	)
	if err != nil {
		return err
	}
	c.host = h
	return nil
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn", "":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}

func environ() map[string]string {
	vars := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}
	return vars
}

func decodeHex(name, s string) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, fmt.Errorf("%s: invalid hex: %w", name, err)
	}
	return b, nil
}

func printHex(cmd *cobra.Command, b []byte) {
	fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(b))
}
