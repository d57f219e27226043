package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/benaskins/rememberme/internal/audit"
	"github.com/benaskins/rememberme/internal/config"
	"github.com/benaskins/rememberme/internal/keychain"
)

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath string
	backend    string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "rememberme",
		Short: "Remember a login in the OS credential store",
		Long: `Store a username/password pair in the operating system's secure
credential store (macOS Keychain, Secret Service, Windows Credential Manager)
and read it back.

Run without a subcommand to open the interactive two-screen UI.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, flags)
		},
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", config.DefaultPath(), "Config file path")
	root.PersistentFlags().StringVar(&flags.backend, "backend", "", "Credential backend: system, keychain, keyring, memory")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	root.AddCommand(
		newTUICmd(flags),
		newLoginCmd(flags),
		newHomeCmd(flags),
		newCredentialCmd(flags),
		newAuditCmd(flags),
	)
	return root
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flags.backend != "" {
		cfg.Backend = flags.backend
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// app bundles what a command needs to reach the credential store.
type app struct {
	cfg    *config.Config
	store  *keychain.AuditedStore
	audit  *audit.Logger
	logger *slog.Logger
}

// openApp wires config, logging, audit log and the audited credential store.
// handler overrides the default stderr log handler when non-nil.
func openApp(flags *globalFlags, actor string, handler func(slog.Leveler) slog.Handler) (*app, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}

	var h slog.Handler
	if handler != nil {
		h = handler(cfg.Level())
	} else {
		h = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()})
	}
	slog.SetDefault(slog.New(h))
	logger := slog.With("component", actor)

	for _, p := range []string{cfg.AuditLog, cfg.Metadata} {
		if err := os.MkdirAll(filepath.Dir(p), 0700); err != nil {
			return nil, fmt.Errorf("creating %s: %w", filepath.Dir(p), err)
		}
	}

	auditLog, err := audit.NewLogger(cfg.AuditLog)
	if err != nil {
		return nil, err
	}
	meta, err := keychain.NewMetadataStore(cfg.Metadata)
	if err != nil {
		auditLog.Close()
		return nil, err
	}
	inner, err := keychain.Open(cfg.Backend, cfg.Service)
	if err != nil {
		auditLog.Close()
		return nil, fmt.Errorf("opening %s backend: %w", cfg.Backend, err)
	}
	logger.Debug("credential store ready", "backend", cfg.Backend, "service", cfg.Service)

	return &app{
		cfg:    cfg,
		store:  keychain.NewAuditedStore(inner, auditLog, meta, cfg.Backend, actor),
		audit:  auditLog,
		logger: logger,
	}, nil
}

func (a *app) Close() error {
	return a.audit.Close()
}
