// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/esosa/podcast-assistant/internal/export"
)

var reportCmd = &cobra.Command{
	Use:   "report <server-path>",
	Short: "Download a server-generated PDF report",
	Long: `Report downloads a PDF the backend generated during research or episode
drafting. The argument is the path the backend returned, e.g.
"output/research_report.pdf"; only the final filename component is used to
fetch the file.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().String("dir", "", "destination directory (default: <data dir>/reports)")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		st, err := openStore()
		if err != nil {
			return err
		}
		dir = reportsDir(st)
		st.Close()
	}

	dest, err := export.DownloadReport(cmd.Context(), newClient(), args[0], dir)
	if err != nil {
		return reportError(err)
	}
	fmt.Fprintln(os.Stderr, "Report saved to", dest)
	return nil
}
