package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/InfostatusAu/ai-olympics-charmander-sub000/internal/model"
	"github.com/InfostatusAu/ai-olympics-charmander-sub000/internal/report"
	"github.com/InfostatusAu/ai-olympics-charmander-sub000/pkg/notion"
)

var (
	collectMode   string
	collectFormat string
	collectOut    string
	collectNotion bool
)

var collectCmd = &cobra.Command{
	Use:   "collect <company>",
	Short: "Collect and analyze intelligence for a company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		company := args[0]

		mode, err := model.ParseMode(collectMode)
		if err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		coll, err := buildCollector()
		if err != nil {
			return err
		}
		enhancer := buildEnhancer()

		run, err := st.CreateRun(ctx, company, mode)
		if err != nil {
			return eris.Wrap(err, "create run")
		}

		if err := st.UpdateRunStatus(ctx, run.ID, model.RunStatusCollecting); err != nil {
			return err
		}
		agg, err := coll.Collect(ctx, company, mode)
		if err != nil {
			_ = st.FailRun(ctx, run.ID, nil)
			return eris.Wrap(err, "collect")
		}

		if err := st.UpdateRunStatus(ctx, run.ID, model.RunStatusEnhancing); err != nil {
			return err
		}
		enh := enhancer.Enhance(ctx, agg)

		if err := st.CompleteRun(ctx, run.ID, agg, &enh); err != nil {
			return eris.Wrap(err, "complete run")
		}

		zap.L().Info("run complete",
			zap.String("run_id", run.ID),
			zap.Int("quality_score", agg.QualityScore),
			zap.String("enhancement", string(enh.EnhancementStatus)),
		)

		if collectNotion {
			if cfg.Notion.Token == "" || cfg.Notion.ReportsDB == "" {
				return eris.New("notion publishing requires notion.token and notion.reports_db")
			}
			pub := report.NewNotionPublisher(notion.NewClient(cfg.Notion.Token), cfg.Notion.ReportsDB)
			pageID, err := pub.Publish(ctx, agg, &enh)
			if err != nil {
				return err
			}
			zap.L().Info("report published to notion", zap.String("page_id", pageID))
		}

		return writeCollectOutput(agg, &enh)
	},
}

func writeCollectOutput(agg *model.AggregateResult, enh *model.EnhancementResult) error {
	out := os.Stdout
	if collectOut != "" {
		f, err := os.Create(collectOut)
		if err != nil {
			return eris.Wrapf(err, "create output file %s", collectOut)
		}
		defer f.Close() //nolint:errcheck
		out = f
	}

	switch collectFormat {
	case "markdown":
		_, err := fmt.Fprint(out, report.Markdown(agg, enh))
		return err
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"aggregate":   agg,
			"enhancement": enh,
		})
	default:
		return eris.Errorf("unknown output format %q (want json or markdown)", collectFormat)
	}
}

func init() {
	collectCmd.Flags().StringVar(&collectMode, "mode", "comprehensive", "collection mode (quick, comprehensive, deep)")
	collectCmd.Flags().StringVar(&collectFormat, "format", "json", "output format (json, markdown)")
	collectCmd.Flags().StringVar(&collectOut, "output", "", "write output to file instead of stdout")
	collectCmd.Flags().BoolVar(&collectNotion, "notion", false, "publish the report to the configured Notion database")
	rootCmd.AddCommand(collectCmd)
}
