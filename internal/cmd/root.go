package cmd

import (
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	cfgFile      string
	versionFlag  bool
	verboseFlag  bool
	jsonLogsFlag bool
)

// NewRootCmd returns the root command.
func NewRootCmd(formulactlWriter io.Writer, localFS afero.Fs) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "formulactl",
		Short: "formulactl generates Homebrew formulae for release binaries",
		Example: `  # Generate the formula for the latest release of a tool
  formulactl generate expend

  # Check generated formulae
  formulactl lint pkg/brew/*.rb`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SilenceUsage = true
			configureLogger()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if versionFlag {
				return printVersion(formulactlWriter)
			}

			return cmd.Help()
		},
	}

	// Flags
	rootCmd.Flags().BoolVar(&versionFlag, "version", false, "display the version of formulactl")

	// Persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path of the config file (default is $HOME/.config/formulactl/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "log debug output to stderr")
	rootCmd.PersistentFlags().BoolVar(&jsonLogsFlag, "json-logs", false, "log in JSON")

	// Hidden persistent flags
	rootCmd.PersistentFlags().Bool("local", false, "Use the local API")
	err := rootCmd.PersistentFlags().MarkHidden("local")
	if err != nil {
		panic(err)
	}

	// Commands
	rootCmd.AddCommand(newGenerateCmd(formulactlWriter, localFS))
	rootCmd.AddCommand(newInfoCmd(formulactlWriter, localFS))
	rootCmd.AddCommand(newLintCmd(formulactlWriter, localFS))
	rootCmd.AddCommand(newListCmd(formulactlWriter, localFS))
	rootCmd.AddCommand(newVerifyCmd(formulactlWriter, localFS))
	rootCmd.AddCommand(newVersionCmd(formulactlWriter))

	// Hidden commands
	rootCmd.AddCommand(newAPICmd(formulactlWriter, localFS))

	return rootCmd
}
