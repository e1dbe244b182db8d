package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/moelabs/instalytics/internal/config"
	"github.com/moelabs/instalytics/internal/dataset"
	"github.com/moelabs/instalytics/internal/filter"
)

var (
	// Global flags
	cfgFile  string
	dataPath string

	// Filter flags shared by every data-facing command
	flagFrom        string
	flagTo          string
	flagPeriode     string
	flagContenu     string
	flagCollab      string
	flagHashtagsMin int
	flagHashtagsMax int
	flagMoment      string

	// Loaded configuration
	cfg *cfgpkg.Config
)

var rootCmd = &cobra.Command{
	Use:   "instalytics",
	Short: "Instalytics: KPIs, filters and exports over an Instagram performance export",
	Long: `Instalytics ingests a semicolon-delimited Instagram performance export,
derives engagement and attraction KPIs, and serves filtered views of the
result as tables, CSV exports, or a small authenticated HTTP API.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.instalytics/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "data file path (overrides config)")

	rootCmd.PersistentFlags().StringVar(&flagFrom, "from", "", "start date filter (YYYY-MM-DD, inclusive)")
	rootCmd.PersistentFlags().StringVar(&flagTo, "to", "", "end date filter (YYYY-MM-DD, inclusive)")
	rootCmd.PersistentFlags().StringVar(&flagPeriode, "periode", "", "editorial period filter")
	rootCmd.PersistentFlags().StringVar(&flagContenu, "contenu", "", "content category filter")
	rootCmd.PersistentFlags().StringVar(&flagCollab, "collab", "", "collaboration filter (oui|non)")
	rootCmd.PersistentFlags().IntVar(&flagHashtagsMin, "hashtags-min", -1, "min hashtag count (inclusive)")
	rootCmd.PersistentFlags().IntVar(&flagHashtagsMax, "hashtags-max", -1, "max hashtag count (inclusive)")
	rootCmd.PersistentFlags().StringVar(&flagMoment, "moment", "", "time-of-day bucket filter (Nuit|Matin|Midi|Après-midi|Soir|Tard)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
	if dataPath != "" {
		cfg.DataPath = dataPath
	}
}

// loadDataset loads the source file and prints the structural warning when
// canonical columns are absent.
func loadDataset() (*dataset.Dataset, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	ds, err := dataset.Load(cfg.DataPath)
	if err != nil {
		return nil, err
	}
	if len(ds.MissingColumns) > 0 {
		fmt.Fprintf(os.Stderr, "⚠ Warning: missing columns: %s\n", joinComma(ds.MissingColumns))
	}
	return ds, nil
}

// loadFiltered loads the dataset and applies the global filter flags.
func loadFiltered() (*dataset.Dataset, error) {
	ds, err := loadDataset()
	if err != nil {
		return nil, err
	}
	f, err := activeFilter()
	if err != nil {
		return nil, err
	}
	return f.Apply(ds), nil
}

// activeFilter builds the filter selection from the global flags.
func activeFilter() (filter.Filter, error) {
	var f filter.Filter
	var err error
	if f.From, err = parseDateFlag("from", flagFrom); err != nil {
		return f, err
	}
	if f.To, err = parseDateFlag("to", flagTo); err != nil {
		return f, err
	}
	f.Periode = flagPeriode
	f.Contenu = flagContenu
	switch flagCollab {
	case "":
	case "oui", "Oui":
		t := true
		f.Collab = &t
	case "non", "Non":
		fv := false
		f.Collab = &fv
	default:
		return f, fmt.Errorf("unsupported --collab: %s (use oui|non)", flagCollab)
	}
	if flagHashtagsMin >= 0 || flagHashtagsMax >= 0 {
		r := filter.Range{Min: 0, Max: int(^uint(0) >> 1)}
		if flagHashtagsMin >= 0 {
			r.Min = flagHashtagsMin
		}
		if flagHashtagsMax >= 0 {
			r.Max = flagHashtagsMax
		}
		f.Hashtags = &r
	}
	if flagMoment != "" {
		if !validBucket(flagMoment) {
			return f, fmt.Errorf("unsupported --moment: %s", flagMoment)
		}
		f.Moment = dataset.TimeBucket(flagMoment)
	}
	return f, nil
}
