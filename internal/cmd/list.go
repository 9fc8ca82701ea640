package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/formulactl/formulactl/internal/api"
	"github.com/formulactl/formulactl/internal/formula"
	"github.com/formulactl/formulactl/internal/logger"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var markdownFlag bool

func newListCmd(formulactlWriter io.Writer, localFS afero.Fs) *cobra.Command {
	var listCmd = &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the formulae",
		Example: `  # List all formulae and their latest release on macOS/amd64
  formulactl list
  formulactl ls

  # List the latest releases for Linux on arm64
  formulactl list --os linux --arch arm64`,
		Args: cobra.NoArgs,
		RunE: newRunList(formulactlWriter, localFS),
	}

	addPlatformFlags(listCmd)

	// Hidden flags
	listCmd.Flags().BoolVar(
		&markdownFlag, "markdown", false,
		"output in markdown format",
	)
	err := listCmd.Flags().MarkHidden("markdown")
	if err != nil {
		panic(err)
	}

	return listCmd
}

func newRunList(
	formulactlWriter io.Writer, localFS afero.Fs,
) func(*cobra.Command, []string) (err error) {
	return func(cmd *cobra.Command, args []string) (err error) {
		formulaAPI, err := api.New(localFS, cmd, api.Remote)
		if err != nil {
			return err
		}

		return list(formulactlWriter, formulaAPI)
	}
}

func list(formulactlWriter io.Writer, formulaAPI api.FormulaAPI) (err error) {
	// Get the metadata that holds the list of formulae
	meta, err := api.GetMeta(formulaAPI)
	if err != nil {
		return
	}

	if len(meta.Formulae) == 0 {
		fmt.Fprintln(formulactlWriter, "No formulae")
		return
	}

	if markdownFlag {
		return printMarkdown(formulactlWriter, formulaAPI, meta.Formulae)
	}

	table := logger.CreateTable(formulactlWriter, []string{"Name", "Latest", "Description"})
	for _, name := range meta.Formulae {
		release := formula.Release{Name: name, OS: osFlag, Arch: archFlag}

		var formulaMeta api.FormulaMeta
		formulaMeta, err = api.GetFormulaMeta(formulaAPI, release)
		if err != nil {
			return
		}

		latest := "-"
		latestVersion, latestErr := api.GetLatestVersion(formulaAPI, release)
		switch {
		case latestErr == nil:
			latest = latestVersion.String()
		case !errors.Is(latestErr, api.NotFoundError{}):
			return latestErr
		}

		err = table.Append([]string{name, latest, formulaMeta.Description})
		if err != nil {
			return
		}
	}

	return table.Render()
}

func printMarkdown(
	formulactlWriter io.Writer, formulaAPI api.FormulaAPI, names []string,
) (err error) {
	for _, name := range names {
		var formulaMeta api.FormulaMeta
		formulaMeta, err = api.GetFormulaMeta(formulaAPI, formula.Release{Name: name})
		if err != nil {
			return
		}

		fmt.Fprintf(
			formulactlWriter, "- [%s](%s): %s\n",
			name, formulaMeta.Homepage, formulaMeta.Description,
		)
	}

	return
}
