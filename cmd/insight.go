package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relcheck/relcheck/internal/insight"
)

func (c *cli) newInsightCmd() *cobra.Command {
	insightCmd := &cobra.Command{
		Use:   "insight <id>",
		Short: "Ask the configured LLM to reflect on a check-in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			refresh, _ := cmd.Flags().GetBool("refresh")

			st, err := c.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			rec, err := c.ownRecord(cmd, st, id)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			svc := c.insightService(ctx, st)
			w := cmd.OutOrStdout()

			if !refresh {
				in, err := svc.Latest(ctx, *rec)
				if err != nil {
					return fmt.Errorf("load insight: %w", err)
				}
				if in != nil {
					writeInsight(w, in)
					return nil
				}
			}

			in, err := svc.Generate(ctx, *rec)
			if errors.Is(err, insight.ErrUnavailable) {
				return fmt.Errorf("%w (set RELCHECK_LLM_PROVIDER or an *_API_KEY variable)", err)
			}
			if err != nil {
				return err
			}
			writeInsight(w, in)
			return nil
		},
	}
	insightCmd.Flags().Bool("refresh", false, "Generate a new insight even if one is stored")
	return insightCmd
}
