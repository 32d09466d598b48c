package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/relcheck/relcheck/internal/questionbank"
)

func (c *cli) newBankCmd() *cobra.Command {
	bankCmd := &cobra.Command{
		Use:   "bank",
		Short: "Inspect and validate question banks",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List questions in traversal order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bank, err := c.questionBank()
			if err != nil {
				return err
			}
			category, _ := cmd.Flags().GetString("category")

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-4s  %-14s  %-3s  %-4s  %s\n", "ID", "Category", "W", "Flag", "Question")
			fmt.Fprintln(w, strings.Repeat("─", 100))
			for _, q := range bank.TraversalOrder() {
				if category != "" && !strings.EqualFold(q.Category, category) {
					continue
				}
				flag := ""
				switch {
				case q.Critical:
					flag = "crit"
				case q.Reversed:
					flag = "rev"
				}
				fmt.Fprintf(w, "%-4d  %-14s  %-3d  %-4s  %s\n",
					q.ID, truncate(q.Category, 14), q.Weight, flag, truncate(q.Prompt, 64))
			}
			return nil
		},
	}
	listCmd.Flags().StringP("category", "c", "", "Only list questions in this category")

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one question with its guidance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			bank, err := c.questionBank()
			if err != nil {
				return err
			}
			q, ok := bank.Question(id)
			if !ok {
				return fmt.Errorf("question %d not found", id)
			}

			label := q.Category
			if cat, ok := bank.Category(q.Category); ok {
				label = cat.Label()
			}
			favorable := "no"
			if q.Reversed {
				favorable = "yes"
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Question:   %d\n", q.ID)
			fmt.Fprintf(w, "Category:   %s\n", label)
			fmt.Fprintf(w, "Weight:     %d\n", q.Weight)
			fmt.Fprintf(w, "Healthy:    %s\n", favorable)
			fmt.Fprintf(w, "Critical:   %v\n", q.Critical)
			fmt.Fprintln(w)
			fmt.Fprintln(w, q.Prompt)
			if q.Guideline != "" {
				fmt.Fprintln(w)
				fmt.Fprintln(w, q.Guideline)
			}
			if q.QuickTake != "" {
				fmt.Fprintln(w)
				fmt.Fprintf(w, "Quick take: %s\n", q.QuickTake)
			}
			return nil
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a question bank file (or the built-in bank)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if len(args) == 0 {
				if err := questionbank.Validate(); err != nil {
					return err
				}
				b := questionbank.Default()
				fmt.Fprintf(w, "built-in bank OK: %d questions in %d categories\n", b.Len(), len(b.Categories()))
				return nil
			}

			b, err := questionbank.LoadFile(args[0])
			if err != nil {
				var cfgErr *questionbank.ConfigurationError
				if errors.As(err, &cfgErr) {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s is invalid:\n", args[0])
					for _, p := range cfgErr.Problems {
						fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", p)
					}
				}
				return fmt.Errorf("invalid question bank %s", args[0])
			}
			fmt.Fprintf(w, "%s OK: %d questions in %d categories\n", args[0], b.Len(), len(b.Categories()))
			return nil
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the active question bank as YAML or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			bank, err := c.questionBank()
			if err != nil {
				return err
			}
			return questionbank.Export(cmd.OutOrStdout(), bank, format)
		},
	}
	exportCmd.Flags().StringP("format", "f", "yaml", "Output format: yaml or json")

	bankCmd.AddCommand(listCmd, showCmd, validateCmd, exportCmd)
	return bankCmd
}
