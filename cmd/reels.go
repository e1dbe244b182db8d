package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moelabs/instalytics/internal/aggregate"
	"github.com/moelabs/instalytics/internal/filter"
)

var reelsCmd = &cobra.Command{
	Use:   "reels",
	Short: "Duration statistics over the filtered Reels subset",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadFiltered()
		if err != nil {
			return err
		}
		sub := filter.Reels(ds)
		if sub.Len() == 0 {
			fmt.Println("Aucun Reel ne correspond aux filtres sélectionnés.")
			return nil
		}
		st := aggregate.ReelDurations(sub)
		fmt.Printf("Nombre de Reels : %d\n", sub.Len())
		if st.Count == 0 {
			fmt.Println("Aucune durée exploitable.")
			return nil
		}
		fmt.Printf("Durée moyenne : %.0f sec\n", st.Mean)
		fmt.Printf("Durée médiane : %.0f sec\n", st.Median)
		fmt.Printf("Reels > 1 min : %d (%.1f%%)\n", st.Over60, st.PctOver60)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reelsCmd)
}
