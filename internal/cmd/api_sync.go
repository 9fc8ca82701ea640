package cmd

import (
	"io"

	"github.com/formulactl/formulactl/internal/api"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newSyncCmd(formulactlWriter io.Writer, localFS afero.Fs) *cobra.Command {
	syncCmd := &cobra.Command{
		Use:   "sync [flags]",
		Short: "Sync the list of formulae",
		Args:  cobra.NoArgs,
		RunE:  newRunSync(formulactlWriter, localFS),
	}

	return syncCmd
}

func newRunSync(
	formulactlWriter io.Writer, localFS afero.Fs,
) func(cmd *cobra.Command, args []string) (err error) {
	return func(cmd *cobra.Command, args []string) (err error) {
		// Needs to run with the local API because we need write access
		formulaAPI, err := api.New(localFS, cmd, api.Local)
		if err != nil {
			return
		}

		return syncMeta(formulaAPI)
	}
}

// syncMeta rebuilds the global metadata from the formula directories.
func syncMeta(formulaAPI api.FormulaAPI) (err error) {
	// Detect all formula directories, afero.ReadDir sorts them by name
	formulae := []string{}
	matches, err := afero.ReadDir(formulaAPI.LocalFS(), formulaAPI.LocalBasePath())
	if err != nil {
		return
	}
	for _, match := range matches {
		if match.IsDir() {
			formulae = append(formulae, match.Name())
		}
	}

	// Save the metadata
	return api.SaveMeta(formulaAPI, api.Meta{Formulae: formulae})
}
