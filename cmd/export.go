package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/moelabs/instalytics/internal/export"
	"github.com/moelabs/instalytics/internal/utils"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the filtered dataset with all derived columns as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadFiltered()
		if err != nil {
			return err
		}
		if exportOutput == "" {
			return export.WriteDataset(os.Stdout, ds)
		}
		var buf bytes.Buffer
		if err := export.WriteDataset(&buf, ds); err != nil {
			return err
		}
		if err := utils.SafeWriteFile(exportOutput, buf.Bytes()); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %d rows to %s\n", ds.Len(), exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "destination path (default stdout)")
	rootCmd.AddCommand(exportCmd)
}
