package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"realias.dev/pkg/realias/internal/domain"
	m "realias.dev/pkg/realias/internal/model"
)

var reportFormatFlag string

// reportCmd represents the report command.
var reportCmd = newReportCmd()

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the journal of a previous run",
		Long:  "Show the journal of a previous run from a reports directory.",
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			return workflow.Report(context.Background(), domain.ReportArgs{
				Output: m.Path(viper.GetString(outputFlagName)),
				Format: reportFormatFlag,
			})
		},
	}

	cmd.Flags().StringVarP(&reportFormatFlag, formatFlagName, "f", "table", "output format: table or yaml")

	return cmd
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
