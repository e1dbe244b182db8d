package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moelabs/instalytics/internal/dataset"
	"github.com/moelabs/instalytics/internal/filter"
)

var (
	expTypes  []string
	expSearch string
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Browse posts matching a title search and type selection",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadFiltered()
		if err != nil {
			return err
		}
		s := filter.Search{Types: expTypes, Query: expSearch}
		res := s.Apply(ds)
		for i := range res.Posts {
			p := &res.Posts[i]
			date := ""
			if p.HasDate {
				date = p.Date.Format(dataset.DateLayout)
			}
			fmt.Printf("%-10s  %-5s  %-9s  %-40.40s  vues=%s  eng=%s\n",
				date, p.Heure, p.Type, p.Titre,
				dataset.FormatCount(p.Vues), dataset.FormatRate(p.TauxEngagement))
		}
		fmt.Printf("\n%d posts affichés\n", res.Len())
		return nil
	},
}

func init() {
	exploreCmd.Flags().StringSliceVar(&expTypes, "type", nil, "post type selection (repeatable: Reels, Photo, Carrousel)")
	exploreCmd.Flags().StringVar(&expSearch, "search", "", "case-insensitive title search")
	rootCmd.AddCommand(exploreCmd)
}
