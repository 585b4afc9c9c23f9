package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"realias.dev/pkg/realias/internal/domain"
	m "realias.dev/pkg/realias/internal/model"
)

const runLongDescription = `Repair every alias record under ROOT whose resolved target contains
SEARCH, rewriting that prefix to REPLACE and recreating the record when
the new target exists.

Records that cannot be resolved are labeled gray; records whose new
target does not exist are left untouched and labeled red. Records whose
target never contained SEARCH are skipped silently.`

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run ROOT SEARCH REPLACE",
		Short: "Repair alias records under a root",
		Long:  runLongDescription,
		Args:  cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := requireCodec(); err != nil {
				return err
			}

			return workflow.Repair(context.Background(), domain.RepairArgs{
				Root:            m.Path(args[0]),
				Search:          args[1],
				Replace:         args[2],
				IncludePackages: viper.GetBool(packagesConfigKey),
				Quiet:           viper.GetBool(quietConfigKey),
				ResolveTimeout:  resolveTimeout(),
				Output:          m.Path(viper.GetString(outputFlagName)),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
}
