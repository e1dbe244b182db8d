package cmd

import (
	"github.com/spf13/cobra"

	"github.com/moelabs/instalytics/internal/server"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the filtered views as an authenticated HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		// The dataset is loaded once; requests share it read-only.
		ds, err := loadDataset()
		if err != nil {
			return err
		}
		if serveListen != "" {
			cfg.ListenAddr = serveListen
		}
		return server.New(cfg, ds).Start()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
