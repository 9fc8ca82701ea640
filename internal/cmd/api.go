package cmd

import (
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newAPICmd(formulactlWriter io.Writer, localFS afero.Fs) *cobra.Command {
	apiCmd := &cobra.Command{
		Use:    "api",
		Short:  "Commands for managing the formulactl API",
		Hidden: true,
	}

	apiCmd.AddCommand(newAddCmd(formulactlWriter, localFS))
	apiCmd.AddCommand(newDiscoverCmd(formulactlWriter, localFS))
	apiCmd.AddCommand(newSyncCmd(formulactlWriter, localFS))

	return apiCmd
}
