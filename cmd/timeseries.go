package cmd

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moelabs/instalytics/internal/aggregate"
	"github.com/moelabs/instalytics/internal/export"
	"github.com/moelabs/instalytics/internal/utils"
)

var (
	tsMetrics    []string
	tsResolution string
	tsAgg        string
	tsOutput     string
)

var timeseriesCmd = &cobra.Command{
	Use:   "timeseries",
	Short: "Aggregate metrics by day, week or month over the filtered dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadFiltered()
		if err != nil {
			return err
		}
		res, err := aggregate.ParseResolution(tsResolution)
		if err != nil {
			return err
		}
		mode, err := aggregate.ParseMode(tsAgg)
		if err != nil {
			return err
		}
		points, err := aggregate.TimeSeries(ds, tsMetrics, res, mode)
		if err != nil {
			return err
		}

		if tsOutput != "" {
			var buf bytes.Buffer
			if err := export.WriteSeries(&buf, points); err != nil {
				return err
			}
			if err := utils.SafeWriteFile(tsOutput, buf.Bytes()); err != nil {
				return err
			}
			fmt.Printf("✓ Wrote %d points to %s\n", len(points), tsOutput)
			return nil
		}
		for _, p := range points {
			fmt.Printf("%s  %s  %.2f  (n=%d)\n", p.Period, p.Metric, p.Value, p.Count)
		}
		return nil
	},
}

func init() {
	timeseriesCmd.Flags().StringSliceVar(&tsMetrics, "metric", []string{"vues"}, "metrics to aggregate (repeatable)")
	timeseriesCmd.Flags().StringVar(&tsResolution, "resolution", string(aggregate.ByDay), "jour|semaine|mois")
	timeseriesCmd.Flags().StringVar(&tsAgg, "agg", string(aggregate.Sum), "somme|moyenne")
	timeseriesCmd.Flags().StringVar(&tsOutput, "output", "", "write result as CSV to this path")
	rootCmd.AddCommand(timeseriesCmd)
}
