package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/InfostatusAu/ai-olympics-charmander-sub000/internal/model"
	"github.com/InfostatusAu/ai-olympics-charmander-sub000/internal/report"
	"github.com/InfostatusAu/ai-olympics-charmander-sub000/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect collection run history",
	Long:  "Commands for listing, viewing, and exporting collection runs.",
}

// -- runs list --

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List collection runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		runs, err := st.ListRuns(ctx, runsFilterFromFlags(cmd))
		if err != nil {
			return eris.Wrap(err, "runs list")
		}

		if len(runs) == 0 {
			fmt.Fprintln(os.Stderr, "No runs found.")
			return nil
		}

		formatRunsList(os.Stdout, runs)
		return nil
	},
}

// -- runs show --

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show full details of a run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		run, err := st.GetRun(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "runs show")
		}

		if markdown, _ := cmd.Flags().GetBool("markdown"); markdown {
			if run.Aggregate == nil {
				return eris.New("run has no collected data to report on")
			}
			fmt.Print(report.Markdown(run.Aggregate, run.Enhancement))
			return nil
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	},
}

// -- runs export --

var runsExportCmd = &cobra.Command{
	Use:   "export <file.xlsx>",
	Short: "Export runs to an XLSX workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		runs, err := st.ListRuns(ctx, runsFilterFromFlags(cmd))
		if err != nil {
			return eris.Wrap(err, "runs export")
		}

		if err := report.WriteRunsXLSX(args[0], runs); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Exported %d runs to %s\n", len(runs), args[0])
		return nil
	},
}

func runsFilterFromFlags(cmd *cobra.Command) store.RunFilter {
	status, _ := cmd.Flags().GetString("status")
	company, _ := cmd.Flags().GetString("company")
	mode, _ := cmd.Flags().GetString("mode")
	limit, _ := cmd.Flags().GetInt("limit")

	return store.RunFilter{
		Status:  model.RunStatus(status),
		Company: company,
		Mode:    model.Mode(mode),
		Limit:   limit,
	}
}

func init() {
	for _, c := range []*cobra.Command{runsListCmd, runsExportCmd} {
		c.Flags().String("status", "", "filter by run status (queued, collecting, enhancing, complete, failed)")
		c.Flags().String("company", "", "filter by company name")
		c.Flags().String("mode", "", "filter by collection mode")
		c.Flags().Int("limit", 50, "max number of runs")
	}
	runsShowCmd.Flags().Bool("markdown", false, "render the run as a markdown report")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsExportCmd)
	rootCmd.AddCommand(runsCmd)
}

// formatRunsList writes a tabular list of runs to w.
func formatRunsList(out io.Writer, runs []model.Run) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tCOMPANY\tMODE\tSTATUS\tQUALITY\tCREATED")
	_, _ = fmt.Fprintln(w, "--\t-------\t----\t------\t-------\t-------")

	for _, r := range runs {
		quality := ""
		if r.Aggregate != nil {
			quality = fmt.Sprintf("%d (%s)", r.Aggregate.QualityScore, r.Aggregate.QualityGrade)
		}

		company := r.Company
		if len(company) > 30 {
			company = company[:27] + "..."
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			truncateID(r.ID),
			company,
			r.Mode,
			r.Status,
			quality,
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	_ = w.Flush()
}

// truncateID returns the first 8 characters of a UUID for compact display.
func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
