package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/formulactl/formulactl/internal/api"
	"github.com/formulactl/formulactl/internal/formula"
	"github.com/formulactl/formulactl/internal/utils"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newInfoCmd(formulactlWriter io.Writer, localFS afero.Fs) *cobra.Command {
	var infoCmd = &cobra.Command{
		Use:   "info NAME[@VERSION]... [flags]",
		Short: "Get information about formulae",
		Args:  checkArgs("formula"),
		Example: `  # Get information about the latest release of a formula
  formulactl info expend

  # Get information about a specific release on Apple Silicon
  formulactl info expend@1.0.1 --arch arm64`,
		RunE: newRunInfo(formulactlWriter, localFS),
	}

	addPlatformFlags(infoCmd)

	return infoCmd
}

func newRunInfo(
	formulactlWriter io.Writer, localFS afero.Fs,
) func(*cobra.Command, []string) (err error) {
	return func(cmd *cobra.Command, args []string) (err error) {
		formulaAPI, err := api.New(localFS, cmd, api.Remote)
		if err != nil {
			return err
		}

		allReleases, err := ArgsToReleases(args, osFlag, archFlag, true)
		if err != nil {
			return
		}

		state, err := utils.NewState(localFS)
		if err != nil {
			return
		}

		for _, release := range allReleases {
			err = info(formulactlWriter, formulaAPI, state, release, allReleases)
			if err != nil {
				return
			}
		}

		return
	}
}

func info(
	formulactlWriter io.Writer, formulaAPI api.FormulaAPI, state *utils.State,
	release formula.Release, allReleases []formula.Release,
) (err error) {
	d, err := resolveDescriptor(formulaAPI, release)
	if err != nil {
		return
	}

	lines := []string{
		fmt.Sprintf("✨ %s v%s: %s", d.Name, d.Version, d.Description),
		fmt.Sprintf("🏠 %s", d.Homepage),
		fmt.Sprintf("📦 %s", d.URL),
		fmt.Sprintf("🔒 %s", d.SHA256),
	}
	if lastSuccess, ok := state.Discover.LastSuccess[d.Name]; ok {
		lines = append(lines, fmt.Sprintf("🔍 Last discovered %s", lastSuccess.UTC().Format(time.RFC3339)))
	}

	for _, line := range lines {
		fmt.Fprintln(formulactlWriter, prependName(release, allReleases, line))
	}

	return
}
