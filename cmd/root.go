// Package cmd provides the root command and CLI setup for realias.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"realias.dev/pkg/realias/internal/adapter"
	"realias.dev/pkg/realias/internal/controller"
	"realias.dev/pkg/realias/internal/domain"
)

var fsAdapter adapter.ScanFS
var annotator adapter.LabelAnnotator
var runStore adapter.RunStore
var ui controller.UI
var workflow domain.Workflow
var codecErr error

// reportsOutputDirFlag is a root-level flag shared by commands that
// read/write the run journal.
var reportsOutputDirFlag string

// quietFlag suppresses per-candidate diagnostics when set.
var quietFlag bool

// packagesFlag makes the scan descend into package directories.
var packagesFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies. The record codec is a platform
	// capability; commands that need it surface codecErr themselves so
	// version/init/report still work everywhere.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalScanFS()
	annotator = adapter.NewLabelAnnotator()
	runStore = adapter.NewRunStore()

	var codec adapter.RecordCodec

	codec, codecErr = adapter.NewPlatformRecordCodec()

	scanner := domain.NewTreeScanner(fsAdapter, codec)
	engine := domain.NewRedirectionEngine(codec, fsAdapter, annotator, ui)
	workflow = domain.NewWorkflow(scanner, engine, codec, fsAdapter, runStore, ui)
}

const rootLongDescription = `Realias repairs alias files whose targets moved because a volume or
directory was renamed. It scans a tree for alias records, rewrites each
resolved target by substituting an old path prefix with a new one, and
recreates the record when the new target exists. Records it cannot fix
are left untouched and labeled for review (gray: unresolvable, red: new
target missing).`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "realias",
		Short: "Repair alias files after a volume or directory rename",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger("", viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for the run journal",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().BoolVarP(&quietFlag, quietFlagName, "q", viper.GetBool(quietConfigKey), "suppress per-candidate diagnostics")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(quietFlagName), quietConfigKey)

	cmd.PersistentFlags().BoolVarP(&packagesFlag, packagesFlagName, "p", viper.GetBool(packagesConfigKey), "descend into package directories (app bundles)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(packagesFlagName), packagesConfigKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// requireCodec guards commands that need the platform record codec.
func requireCodec() error {
	if codecErr != nil {
		return fmt.Errorf("cannot run: %w", codecErr)
	}

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
