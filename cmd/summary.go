package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/moelabs/instalytics/internal/aggregate"
	"github.com/moelabs/instalytics/internal/dataset"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show dataset counts, mean KPIs and quality notes for the current filter",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadFiltered()
		if err != nil {
			return err
		}
		reels, photos, carousels := ds.TypeCounts()

		fmt.Printf("Posts analysés : %d\n", ds.Len())
		fmt.Printf("- Reels : %d\n", reels)
		fmt.Printf("- Photos : %d\n", photos)
		fmt.Printf("- Carrousels : %d\n", carousels)
		if !ds.TypesConsistent() {
			fmt.Printf("⚠ Incohérence de comptage : %d + %d + %d ≠ %d\n", reels, photos, carousels, ds.Len())
		}

		fmt.Println("\nKPIs moyens")
		printMeanRate(ds, "Taux d'engagement", "taux_engagement")
		printMeanRate(ds, "Taux d'attraction", "taux_attraction")
		printMeanRate(ds, "% Non-followers", "pct_non_followers")

		if outliers := ds.OutlierCounts(); len(outliers) > 0 {
			fmt.Println("\nValeurs atypiques (> 3 écarts-types)")
			cols := make([]string, 0, len(outliers))
			for c := range outliers {
				cols = append(cols, c)
			}
			sort.Strings(cols)
			for _, c := range cols {
				fmt.Printf("- %s : %d\n", c, outliers[c])
			}
		}
		return nil
	},
}

func printMeanRate(ds *dataset.Dataset, label, metric string) {
	v, err := aggregate.MetricMean(ds, metric)
	if err != nil || !v.Valid {
		fmt.Printf("- %s : n/a\n", label)
		return
	}
	fmt.Printf("- %s : %s\n", label, dataset.FormatRate(v))
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
