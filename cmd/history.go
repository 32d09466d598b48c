package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/relcheck/relcheck/internal/insight"
	"github.com/relcheck/relcheck/internal/questionbank"
	"github.com/relcheck/relcheck/internal/scoring"
	"github.com/relcheck/relcheck/internal/store"
)

func (c *cli) newHistoryCmd() *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Browse past check-ins",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List check-ins, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			return c.historyList(cmd, limit)
		},
	}
	listCmd.Flags().IntP("limit", "n", 20, "Number of check-ins to show (0 = all)")

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one check-in with its flags and notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.historyShow(cmd, id)
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one check-in and its insights",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.historyDelete(cmd, id)
		},
	}

	historyCmd.AddCommand(listCmd, showCmd, deleteCmd)
	return historyCmd
}

func (c *cli) historyList(cmd *cobra.Command, limit int) error {
	st, err := c.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	recs, err := st.AssessmentRepo().ListByUser(cmd.Context(), c.conf.User, store.QueryOpts{Limit: limit})
	if err != nil {
		return fmt.Errorf("list check-ins: %w", err)
	}

	w := cmd.OutOrStdout()
	if len(recs) == 0 {
		fmt.Fprintf(w, "No check-ins for %s yet.\n", c.conf.User)
		return nil
	}

	fmt.Fprintf(w, "%-5s  %-16s  %5s  %-10s  %-5s  %s\n", "ID", "Date", "Score", "Band", "Flags", "Result")
	fmt.Fprintln(w, strings.Repeat("\u2500", 80))
	for _, r := range recs {
		fmt.Fprintf(w, "%-5d  %-16s  %4d%%  %-10s  %-5d  %s\n",
			r.ID,
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Percentage,
			scoring.BandFor(r.Percentage),
			len(r.Result.RedFlags),
			r.Result.Recommendation.Title,
		)
	}
	return nil
}

func (c *cli) historyShow(cmd *cobra.Command, id int) error {
	st, err := c.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	rec, err := c.ownRecord(cmd, st, id)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	writeRecord(w, rec)

	in, err := insight.NewService(nil, st.InsightRepo(), insight.DefaultConfig(), c.log).Latest(cmd.Context(), *rec)
	if err != nil {
		c.log.Warn("load insight failed", zap.Int("survey_id", id), zap.Error(err))
	}
	if in != nil {
		fmt.Fprintln(w)
		writeInsight(w, in)
	}
	return nil
}

func (c *cli) historyDelete(cmd *cobra.Command, id int) error {
	st, err := c.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if _, err := c.ownRecord(cmd, st, id); err != nil {
		return err
	}
	if err := st.AssessmentRepo().DeleteByID(cmd.Context(), id); err != nil {
		return fmt.Errorf("delete check-in %d: %w", id, err)
	}
	c.log.Info("assessment deleted", zap.Int("survey_id", id), zap.String("user_id", c.conf.User))
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted check-in %d.\n", id)
	return nil
}

// ownRecord loads a record belonging to the current user. Records of
// other users are reported as missing.
func (c *cli) ownRecord(cmd *cobra.Command, st *store.Store, id int) (*store.AssessmentRecord, error) {
	rec, err := st.AssessmentRepo().Get(cmd.Context(), id)
	if errors.Is(err, store.ErrNotFound) || (err == nil && rec.UserID != c.conf.User) {
		return nil, fmt.Errorf("check-in %d: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get check-in %d: %w", id, err)
	}
	return rec, nil
}

func writeRecord(w io.Writer, rec *store.AssessmentRecord) {
	res := rec.Result
	fmt.Fprintf(w, "Check-in:  %d\n", rec.ID)
	fmt.Fprintf(w, "Date:      %s\n", rec.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "Score:     %d%% (%d of %d points, %s)\n", rec.Percentage, res.Score, res.MaxScore, scoring.BandFor(rec.Percentage))
	fmt.Fprintf(w, "Answered:  %d answered, %d skipped\n", rec.Answers.Answered(), rec.Answers.Skipped())
	fmt.Fprintln(w)
	fmt.Fprintln(w, res.Recommendation.Title)
	fmt.Fprintln(w, res.Recommendation.Message)

	writeFlags(w, "Red flags", "\u2717", res.RedFlags)
	writeFlags(w, "Green flags", "\u2713", res.GreenFlags)

	if rec.Notes != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Notes:")
		fmt.Fprintln(w, "  "+rec.Notes)
	}
}

func writeFlags(w io.Writer, title, mark string, qs []questionbank.Question) {
	if len(qs) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s (%d):\n", title, len(qs))
	for _, q := range qs {
		line := fmt.Sprintf("  %s [%d] %s", mark, q.ID, q.Prompt)
		if q.Critical {
			line += " (critical)"
		}
		fmt.Fprintln(w, line)
	}
}

func writeInsight(w io.Writer, in *insight.Insight) {
	fmt.Fprintf(w, "Insight (%s, %s):\n", in.Model, in.CreatedAt.Local().Format("2006-01-02 15:04"))
	if in.Safety != "" {
		fmt.Fprintln(w, "  ! "+in.Safety)
	}
	fmt.Fprintln(w, "  "+in.Summary)
	for _, group := range []struct {
		title string
		items []string
	}{
		{"Strengths", in.Strengths},
		{"Concerns", in.Concerns},
		{"Suggestions", in.Suggestions},
	} {
		if len(group.items) == 0 {
			continue
		}
		fmt.Fprintf(w, "  %s:\n", group.title)
		for _, s := range group.items {
			fmt.Fprintln(w, "    - "+s)
		}
	}
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid ID %q", s)
	}
	return id, nil
}
