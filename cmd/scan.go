package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"realias.dev/pkg/realias/internal/domain"
	m "realias.dev/pkg/realias/internal/model"
)

// scanCmd represents the scan command.
var scanCmd = newScanCmd()

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan ROOT SEARCH REPLACE",
		Short: "Preview a repair run without writing anything",
		Long: `List every alias record a repair run would visit together with the
action it would take. Nothing is rewritten or labeled.`,
		Args: cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := requireCodec(); err != nil {
				return err
			}

			return workflow.Scan(context.Background(), domain.ScanArgs{
				Root:            m.Path(args[0]),
				Search:          args[1],
				Replace:         args[2],
				IncludePackages: viper.GetBool(packagesConfigKey),
				ResolveTimeout:  resolveTimeout(),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
