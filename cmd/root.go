package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/relcheck/relcheck/internal/config"
	"github.com/relcheck/relcheck/internal/insight"
	"github.com/relcheck/relcheck/internal/llm"
	"github.com/relcheck/relcheck/internal/logging"
	"github.com/relcheck/relcheck/internal/questionbank"
	"github.com/relcheck/relcheck/internal/store"
)

// cli carries the state shared by every command once the root
// pre-run has loaded configuration.
type cli struct {
	loader *config.Loader
	conf   config.Config
	log    *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{log: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "relcheck",
		Short: "Relationship health check-in",
		Long: "relcheck walks you through 36 yes/no questions about your relationship,\n" +
			"scores the answers and keeps a private history on this machine.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.log.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTake(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default $XDG_CONFIG_HOME/relcheck/config.yaml)")
	pf.String("db", "", "Path to SQLite database file (overrides RELCHECK_DB)")
	pf.StringP("user", "u", "", "Whose check-ins to use (default: OS user)")
	pf.String("bank", "", "Question bank file replacing the built-in questions")
	pf.String("provider", "", "LLM provider for insights: anthropic, openai, gemini, openrouter")
	pf.BoolP("verbose", "v", false, "Log to stderr as well as the log file")
	pf.String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(
		c.newTakeCmd(),
		c.newHistoryCmd(),
		c.newStatsCmd(),
		c.newResetCmd(),
		c.newBankCmd(),
		c.newInsightCmd(),
		c.newLLMCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}

func (c *cli) setup(cmd *cobra.Command) error {
	file, _ := cmd.Flags().GetString("config")
	loader, err := config.Load(config.Options{File: file, Flags: cmd.Flags()})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	conf := loader.Config()

	// The TUI owns the terminal; console logging would corrupt it.
	if isInteractive(cmd) {
		conf.Logging.Console = false
	}

	log, err := logging.New(conf.Logging)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}

	c.loader, c.conf, c.log = loader, conf, log
	log.Debug("config loaded",
		zap.String("command", cmd.CommandPath()),
		zap.String("file", loader.FileUsed()),
		zap.String("user", conf.User),
		zap.String("llm_provider", conf.LLM.Provider),
	)
	return nil
}

func isInteractive(cmd *cobra.Command) bool {
	return !cmd.HasParent() || cmd.Name() == "take"
}

// openStore opens the configured database, creating its directory.
func (c *cli) openStore() (*store.Store, error) {
	if err := store.EnsureDir(c.conf.DB); err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(c.conf.DB)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// questionBank returns the configured bank file or the built-in bank.
func (c *cli) questionBank() (*questionbank.Bank, error) {
	if c.conf.Bank == "" {
		return questionbank.Default(), nil
	}
	b, err := questionbank.LoadFile(c.conf.Bank)
	if err != nil {
		return nil, fmt.Errorf("load question bank %s: %w", c.conf.Bank, err)
	}
	c.log.Info("using question bank file", zap.String("path", c.conf.Bank), zap.Int("questions", b.Len()))
	return b, nil
}

// insightService builds the insight service. Without a usable LLM
// configuration the service reports itself unavailable.
func (c *cli) insightService(ctx context.Context, st *store.Store) *insight.Service {
	cfg := insight.DefaultConfig()
	if !c.conf.LLM.Enabled() {
		return insight.NewService(nil, st.InsightRepo(), cfg, c.log)
	}

	provider, err := llm.NewProvider(ctx, c.conf.LLM, st.EventRepo(), c.log)
	if err != nil {
		c.log.Warn("LLM provider not configured; AI features unavailable", zap.Error(err))
		return insight.NewService(nil, st.InsightRepo(), cfg, c.log)
	}
	cfg.Provider = c.conf.LLM.Provider
	return insight.NewService(provider, st.InsightRepo(), cfg, c.log)
}
