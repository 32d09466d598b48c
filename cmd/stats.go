package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/relcheck/relcheck/internal/chart"
	"github.com/relcheck/relcheck/internal/stats"
	"github.com/relcheck/relcheck/internal/store"
)

func (c *cli) newStatsCmd() *cobra.Command {
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize your check-in history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			chartPath, _ := cmd.Flags().GetString("chart")

			st, err := c.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			bank, err := c.questionBank()
			if err != nil {
				return err
			}

			recs, err := st.AssessmentRepo().ListByUser(cmd.Context(), c.conf.User, store.QueryOpts{})
			if err != nil {
				return fmt.Errorf("list check-ins: %w", err)
			}
			sum := stats.SummarizeWith(bank, recs)

			if chartPath != "" {
				if err := writeChart(chartPath, sum); err != nil {
					return err
				}
				c.log.Info("chart written", zap.String("path", chartPath), zap.Int("records", len(sum.Recent)))
				fmt.Fprintf(cmd.ErrOrStderr(), "Chart written to %s\n", chartPath)
			}

			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(newStatsReport(sum))
			}
			writeStats(w, sum)
			return nil
		},
	}
	statsCmd.Flags().Bool("json", false, "Print the summary as JSON")
	statsCmd.Flags().String("chart", "", "Write an HTML chart of recent scores to this file")
	return statsCmd
}

func writeChart(path string, sum stats.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := chart.Render(f, sum); err != nil {
		f.Close()
		return fmt.Errorf("render chart: %w", err)
	}
	return f.Close()
}

func writeStats(w io.Writer, sum stats.Summary) {
	if sum.Total == 0 {
		fmt.Fprintln(w, "No check-ins yet.")
		return
	}

	sep := strings.Repeat("─", 48)
	fmt.Fprintf(w, "Check-ins:   %d\n", sum.Total)
	fmt.Fprintf(w, "Average:     %.1f%%\n", sum.Average)
	fmt.Fprintf(w, "Range:       %d%% - %d%%\n", sum.Min, sum.Max)
	fmt.Fprintf(w, "Trend:       %s\n", sum.Trend)
	fmt.Fprintf(w, "Last:        %s (%d days ago)\n",
		sum.LastCheckIn.Local().Format("2006-01-02"), sum.DaysSince(time.Now()))

	writeAreas(w, "Strongest areas", sep, sum.Strongest)
	writeAreas(w, "Focus areas", sep, sum.FocusAreas)
	if len(sum.Strongest) > 0 || len(sum.FocusAreas) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Areas are ranked by the share of favorable answers.")
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Recent scores")
	fmt.Fprintln(w, sep)
	for _, r := range sum.Chronological() {
		fmt.Fprintf(w, "%-16s  %3d%%  %s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Percentage, bar(r.Percentage, 25))
	}
}

func writeAreas(w io.Writer, title, sep string, areas []stats.CategoryStat) {
	if len(areas) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, sep)
	for _, a := range areas {
		fmt.Fprintf(w, "%-26s  %3.0f%% favorable  (%d answers)\n", a.Category.Name, a.Mean*100, a.Observed)
	}
}

func bar(pct, width int) string {
	n := min(max(pct*width/100, 0), width)
	return strings.Repeat("█", n) + strings.Repeat("░", width-n)
}

type statsReport struct {
	Total       int            `json:"total"`
	Average     float64        `json:"average"`
	Min         int            `json:"min"`
	Max         int            `json:"max"`
	Trend       stats.Trend    `json:"trend"`
	LastCheckIn *time.Time     `json:"lastCheckIn,omitempty"`
	RankedBy    string         `json:"rankedBy"`
	Strongest   []areaReport   `json:"strongestAreas"`
	FocusAreas  []areaReport   `json:"focusAreas"`
	Recent      []recentReport `json:"recentSurveys"`
}

type areaReport struct {
	Category      string  `json:"category"`
	Name          string  `json:"name"`
	FavorableRate float64 `json:"favorableRate"`
	YesRate       float64 `json:"yesRate"`
	Observed      int     `json:"observed"`
}

type recentReport struct {
	ID         int       `json:"id"`
	Percentage int       `json:"percentage"`
	Tier       string    `json:"tier"`
	CreatedAt  time.Time `json:"createdAt"`
}

func newStatsReport(sum stats.Summary) statsReport {
	r := statsReport{
		Total:      sum.Total,
		Average:    sum.Average,
		Min:        sum.Min,
		Max:        sum.Max,
		Trend:      sum.Trend,
		RankedBy:   "favorableRate",
		Strongest:  areaReports(sum.Strongest),
		FocusAreas: areaReports(sum.FocusAreas),
		Recent:     []recentReport{},
	}
	if !sum.LastCheckIn.IsZero() {
		t := sum.LastCheckIn
		r.LastCheckIn = &t
	}
	for _, rec := range sum.Chronological() {
		r.Recent = append(r.Recent, recentReport{
			ID:         rec.ID,
			Percentage: rec.Percentage,
			Tier:       string(rec.Result.Recommendation.Type),
			CreatedAt:  rec.CreatedAt,
		})
	}
	return r
}

func areaReports(areas []stats.CategoryStat) []areaReport {
	out := make([]areaReport, 0, len(areas))
	for _, a := range areas {
		out = append(out, areaReport{
			Category:      a.Category.ID,
			Name:          a.Category.Name,
			FavorableRate: a.Mean,
			YesRate:       a.YesRate,
			Observed:      a.Observed,
		})
	}
	return out
}
