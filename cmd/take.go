package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/relcheck/relcheck/internal/app"
	"github.com/relcheck/relcheck/internal/config"
	"github.com/relcheck/relcheck/internal/screen"
)

func (c *cli) newTakeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "take",
		Short: "Start or resume a check-in (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTake(cmd)
		},
	}
}

// runTake opens the store, builds dependencies, and launches the TUI.
func (c *cli) runTake(cmd *cobra.Command) error {
	st, err := c.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	bank, err := c.questionBank()
	if err != nil {
		return err
	}

	c.loader.Watch(c.log, func(conf config.Config) {
		c.log.Info("config changed; restart relcheck to apply", zap.String("user", conf.User))
	})

	return app.Run(screen.Deps{
		UserID:      c.conf.User,
		Bank:        bank,
		Progress:    st.ProgressRepo(),
		Assessments: st.AssessmentRepo(),
		Insight:     c.insightService(cmd.Context(), st),
		Logger:      c.log,
	})
}
