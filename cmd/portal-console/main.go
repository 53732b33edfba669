package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"labelverse/contributor-portal/portal-console/internal/config"
	"labelverse/contributor-portal/portal-console/internal/gateway"
	"labelverse/contributor-portal/portal-console/internal/notify"
	"labelverse/contributor-portal/portal-console/internal/wallet"
)

// app carries the wired dependencies shared by every command. The wallet
// session lives here so the CLI root is the single owner of its
// connect/disconnect lifecycle.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	gateway *gateway.Client
	session wallet.Session
	feed    *notify.Feed
}

// notifier prints toast-style lines for the user on top of the feed's
// structured logging.
type notifier struct {
	feed *notify.Feed
}

func (n *notifier) Notify(severity notify.Severity, title, message string) {
	n.feed.Notify(severity, title, message)
	fmt.Fprintf(os.Stderr, "[%s] %s %s\n", severity, title, message)
}

func main() {
	// Load .env if present
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(os.Getenv("PORTAL_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := buildLogger(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	a := &app{
		cfg:     cfg,
		logger:  logger,
		gateway: gateway.NewClient(cfg.Gateway.BaseURL, cfg.Gateway.Timeout, logger),
		session: wallet.NewRPCSession(wallet.RPCConfig{
			RPCURL:  cfg.Wallet.RPCURL,
			ChainID: cfg.Wallet.ChainID,
			Address: cfg.Wallet.Address,
		}, logger),
		feed: notify.NewFeed(50, logger),
	}

	rootCmd := &cobra.Command{
		Use:           "portal-console",
		Short:         "LabelVerse contributor and operator console",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(
		datasetsCommand(a),
		contributeCommand(a),
		dashboardCommand(a),
		walletCommand(a),
		adminCommand(a),
	)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) newNotifier() notify.Notifier {
	return &notifier{feed: a.feed}
}

func buildLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if level != "" {
		parsed, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, fmt.Errorf("bad log level %q: %w", level, err)
		}
		cfg.Level = parsed
	}
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
