package cmd

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moelabs/instalytics/internal/aggregate"
	"github.com/moelabs/instalytics/internal/export"
	"github.com/moelabs/instalytics/internal/utils"
)

var (
	segBy     []string
	segMetric string
	segAgg    string
	segOutput string
)

var segmentsCmd = &cobra.Command{
	Use:   "segments",
	Short: "Break a metric down by one or two categorical columns",
	Long: `Break a metric down by a categorical column, or by the pairwise
combination of two (e.g. --by type --by contenu). Groups are sorted
descending by aggregated value. Known columns: ` + strings.Join(aggregate.SegmentNames(), ", ") + `.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadFiltered()
		if err != nil {
			return err
		}
		mode, err := aggregate.ParseMode(segAgg)
		if err != nil {
			return err
		}
		rows, err := aggregate.Segments(ds, segBy, segMetric, mode)
		if err != nil {
			return err
		}

		if segOutput != "" {
			var buf bytes.Buffer
			if err := export.WriteSegments(&buf, rows); err != nil {
				return err
			}
			if err := utils.SafeWriteFile(segOutput, buf.Bytes()); err != nil {
				return err
			}
			fmt.Printf("✓ Wrote %d segments to %s\n", len(rows), segOutput)
			return nil
		}
		for _, r := range rows {
			fmt.Printf("%s  %.2f  (n=%d)\n", r.Segment, r.Value, r.Count)
		}
		return nil
	},
}

func init() {
	segmentsCmd.Flags().StringSliceVar(&segBy, "by", []string{"type"}, "categorical column(s), one or two")
	segmentsCmd.Flags().StringVar(&segMetric, "metric", "vues", "metric to aggregate")
	segmentsCmd.Flags().StringVar(&segAgg, "agg", string(aggregate.Mean), "somme|moyenne")
	segmentsCmd.Flags().StringVar(&segOutput, "output", "", "write result as CSV to this path")
	rootCmd.AddCommand(segmentsCmd)
}
