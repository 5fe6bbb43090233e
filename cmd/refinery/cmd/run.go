package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	refinery "github.com/lodeworks/refinery"
	"github.com/lodeworks/refinery/internal/config"
	"github.com/lodeworks/refinery/pkg/logging"
	"github.com/lodeworks/refinery/pkg/pipeline"
)

// runCmd represents the run command.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every configured entity pipeline",
	Long: `Run executes the pipeline of every entity declared in the manifest and
replaces each entity's silver table in full.

Pipelines are independent: a pipeline whose raw extract is unreadable or whose
warehouse write fails is reported without touching that entity's existing
output, and without stopping sibling pipelines.

Examples:
  refinery run
  refinery run --manifest etc/refinery.yaml
  refinery run --concurrency 2`,
	RunE: runPipelines,
}

var concurrency int

// timeRound keeps durations in the summary table readable.
const timeRound = time.Millisecond

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().IntVar(&concurrency, "concurrency", 0,
		"max entity pipelines running at once (default: all)")
}

func runPipelines(cmd *cobra.Command, _ []string) error {
	manifest, err := config.Load(config.ManifestPath(manifestFile, defaultManifest))
	if err != nil {
		return err
	}

	wh, closeWarehouse, err := manifest.Open()
	if err != nil {
		return err
	}
	defer func() {
		if err := closeWarehouse(); err != nil {
			logging.Warn().Err(err).Msg("Closing warehouse failed")
		}
	}()

	opts := []refinery.Option{
		refinery.WithSources(manifest.Sources()),
		refinery.WithWarehouse(wh),
	}
	if concurrency > 0 {
		opts = append(opts, refinery.WithConcurrency(concurrency))
	}

	ref, err := refinery.New(opts...)
	if err != nil {
		return err
	}

	results, runErr := ref.Run(cmd.Context())
	if !quiet {
		printResults(results)
	}
	return runErr
}

func printResults(results []pipeline.Result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ENTITY\tROWS IN\tROWS OUT\tDROPPED\tDURATION\tSTATUS")
	for _, r := range results {
		status := "ok"
		if r.Err != nil {
			status = r.Err.Error()
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%s\n",
			r.Entity, r.RowsIn, r.RowsOut, r.Dropped(), r.Duration.Round(timeRound), status)
	}
	_ = w.Flush()
}
