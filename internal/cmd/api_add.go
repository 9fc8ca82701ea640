package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/formulactl/formulactl/internal/api"
	"github.com/formulactl/formulactl/internal/formula"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

var addFlags api.FormulaMeta

func newAddCmd(formulactlWriter io.Writer, localFS afero.Fs) *cobra.Command {
	addCmd := &cobra.Command{
		Use:   "add NAME [flags]",
		Short: "Add a formula",
		Example: `  # Add expend
  formulactl api add expend \
    --description "A tool to expand a folder of source files" \
    --homepage https://github.com/Byron-TW/expend-rs \
    --url-template 'https://github.com/Byron-TW/expend-rs/releases/download/{{.Version}}/{{.Name}}-{{.Version}}-{{Triple .OS .Arch}}.tar.gz'`,
		Args: cobra.ExactArgs(1),
		RunE: newRunAdd(formulactlWriter, localFS),
	}

	addCmd.Flags().StringVar(&addFlags.Description, "description", "", "one-line description of the formula")
	addCmd.Flags().StringVar(&addFlags.Homepage, "homepage", "", "homepage of the formula")
	addCmd.Flags().StringVar(&addFlags.DownloadURLTemplate, "url-template", "", "template of the release artifact URL")
	addCmd.Flags().StringVar(&addFlags.Binary, "binary", "", "name of the installed binary (default is the formula name)")
	addCmd.Flags().StringVar(&addFlags.Source, "source", "", "source named in the generated header")

	return addCmd
}

func newRunAdd(
	formulactlWriter io.Writer, localFS afero.Fs,
) func(cmd *cobra.Command, args []string) (err error) {
	return func(cmd *cobra.Command, args []string) (err error) {
		// Needs to run with the local API because we need write access
		formulaAPI, err := api.New(localFS, cmd, api.Local)
		if err != nil {
			return
		}

		name := args[0]
		d := formula.Descriptor{Name: name, Binary: addFlags.Binary}
		for _, validationErr := range multierr.Errors(formula.Validate(d)) {
			var fieldErr *formula.ValidationError
			if errors.As(validationErr, &fieldErr) && (fieldErr.Field == "name" || fieldErr.Field == "binary") {
				return fieldErr
			}
		}

		_, err = api.GetFormulaMeta(formulaAPI, formula.Release{Name: name})
		switch {
		case err == nil:
			return fmt.Errorf("%s already exists", name)
		case !errors.Is(err, api.NotFoundError{}):
			return
		}

		err = api.SaveFormulaMeta(formulaAPI, name, addFlags)
		if err != nil {
			return
		}

		err = syncMeta(formulaAPI)
		if err != nil {
			return
		}

		fmt.Fprintf(formulactlWriter, "🎉 Added %s, run:\n  formulactl api discover %s\n", name, name)
		return
	}
}
