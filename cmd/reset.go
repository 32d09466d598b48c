package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errNeedsConfirm = errors.New("refusing to delete history without --yes")

func (c *cli) newResetCmd() *cobra.Command {
	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard saved progress (and with --all, the whole history)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			yes, _ := cmd.Flags().GetBool("yes")
			if all && !yes {
				return errNeedsConfirm
			}

			st, err := c.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			ctx := cmd.Context()
			w := cmd.OutOrStdout()
			if err := st.ProgressRepo().Clear(ctx, c.conf.User); err != nil {
				return fmt.Errorf("clear progress: %w", err)
			}
			fmt.Fprintf(w, "Cleared saved progress for %s.\n", c.conf.User)

			if !all {
				return nil
			}
			n, err := st.AssessmentRepo().DeleteByUser(ctx, c.conf.User)
			if err != nil {
				return fmt.Errorf("delete history: %w", err)
			}
			c.log.Info("history deleted", zap.String("user_id", c.conf.User), zap.Int("count", n))
			fmt.Fprintf(w, "Deleted %d check-in(s).\n", n)
			return nil
		},
	}
	resetCmd.Flags().Bool("all", false, "Also delete every completed check-in")
	resetCmd.Flags().BoolP("yes", "y", false, "Confirm deleting history")
	return resetCmd
}
