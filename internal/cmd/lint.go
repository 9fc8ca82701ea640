package cmd

import (
	"bytes"
	"fmt"
	"io"

	"github.com/formulactl/formulactl/internal/formula"
	"github.com/formulactl/formulactl/internal/logger"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

var regenerateFlag bool

func newLintCmd(formulactlWriter io.Writer, localFS afero.Fs) *cobra.Command {
	lintCmd := &cobra.Command{
		Use:   "lint FILE... [flags]",
		Short: "Check generated Homebrew formulae",
		Example: `  # Check a formula
  formulactl lint pkg/brew/expend.rb

  # Also check that the formula is exactly what formulactl would generate
  formulactl lint --regenerate pkg/brew/*.rb`,
		Args: checkArgs("formula file"),
		RunE: newRunLint(formulactlWriter, localFS),
	}

	lintCmd.Flags().BoolVar(&regenerateFlag, "regenerate", false, "fail unless the file is byte-identical to its regenerated form")

	return lintCmd
}

func newRunLint(
	formulactlWriter io.Writer, localFS afero.Fs,
) func(cmd *cobra.Command, args []string) (err error) {
	return func(cmd *cobra.Command, args []string) (err error) {
		renderer, err := newRenderer(localFS)
		if err != nil {
			return
		}

		problemCount := 0
		for _, filename := range args {
			var problems []string
			problems, err = lint(localFS, renderer, filename)
			if err != nil {
				return
			}

			if len(problems) == 0 {
				fmt.Fprintf(formulactlWriter, "✅ %s\n", wrapInQuotesIfContainsSpace(filename))
				continue
			}
			for _, problem := range problems {
				fmt.Fprintf(formulactlWriter, "❌ %s: %s\n", wrapInQuotesIfContainsSpace(filename), problem)
			}
			problemCount += len(problems)
		}

		if problemCount > 0 {
			err = fmt.Errorf("%d problem(s) found", problemCount)
		}
		return
	}
}

// lint returns the problems found in filename. Only I/O failures are
// returned as errors.
func lint(localFS afero.Fs, renderer *formula.Renderer, filename string) (problems []string, err error) {
	contents, err := afero.ReadFile(localFS, filename)
	if err != nil {
		return
	}

	d, parseErr := formula.ParseFile(contents, filename)
	if parseErr != nil {
		problems = append(problems, parseErr.Error())
		return
	}
	logger.Debug("parsed %s as %s v%s", filename, d.Name, d.Version)

	for _, validationErr := range multierr.Errors(formula.Validate(d)) {
		problems = append(problems, validationErr.Error())
	}

	if regenerateFlag && len(problems) == 0 {
		var rendered []byte
		rendered, err = renderer.Render(d)
		if err != nil {
			return
		}
		if !bytes.Equal(rendered, contents) {
			problems = append(problems, "differs from the generated formula")
		}
	}

	return
}
