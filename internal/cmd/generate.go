package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/formulactl/formulactl/internal/api"
	"github.com/formulactl/formulactl/internal/formula"
	"github.com/formulactl/formulactl/internal/logger"
	"github.com/formulactl/formulactl/internal/sysutil"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

var (
	outputDirFlag string
	checkFlag     bool
	stdoutFlag    bool
)

func newGenerateCmd(formulactlWriter io.Writer, localFS afero.Fs) *cobra.Command {
	generateCmd := &cobra.Command{
		Use:   "generate NAME[@VERSION]... [flags]",
		Short: "Generate Homebrew formulae",
		Example: `  # Generate the formula for the latest release of expend
  formulactl generate expend

  # Generate the formula for a specific release
  formulactl generate expend@1.1.0

  # Fail if the generated formula on disk is out of date
  formulactl generate expend --check`,
		Args: checkArgs("formula"),
		RunE: newRunGenerate(formulactlWriter, localFS),
	}

	addPlatformFlags(generateCmd)
	generateCmd.Flags().StringVarP(&outputDirFlag, "output-dir", "o", "", "directory the formulae are written to (default is the OutputDir config key)")
	generateCmd.Flags().BoolVar(&checkFlag, "check", false, "only check that the formulae on disk are up to date")
	generateCmd.Flags().BoolVar(&stdoutFlag, "stdout", false, "print the formulae instead of writing them")

	return generateCmd
}

func newRunGenerate(
	formulactlWriter io.Writer, localFS afero.Fs,
) func(cmd *cobra.Command, args []string) (err error) {
	return func(cmd *cobra.Command, args []string) (err error) {
		if checkFlag && stdoutFlag {
			return fmt.Errorf("--check and --stdout are mutually exclusive")
		}

		formulaAPI, err := api.New(localFS, cmd, api.Remote)
		if err != nil {
			return
		}

		allReleases, err := ArgsToReleases(args, osFlag, archFlag, true)
		if err != nil {
			return
		}

		renderer, err := newRenderer(localFS)
		if err != nil {
			return
		}

		outputDir := outputDirFlag
		if outputDir == "" {
			outputDir = viper.GetString("OutputDir")
		}
		if !stdoutFlag && !checkFlag {
			err = sysutil.CheckWritable(localFS, outputDir)
			if err != nil {
				return
			}
		}

		var outdated []string
		for _, release := range allReleases {
			var upToDate bool
			upToDate, err = generate(formulactlWriter, formulaAPI, localFS, renderer, outputDir, release, allReleases)
			if err != nil {
				return
			}
			if !upToDate {
				outdated = append(outdated, release.Name)
			}
		}

		if checkFlag && len(outdated) > 0 {
			err = fmt.Errorf(
				"formulae out of date, run:\n  formulactl generate %s",
				strings.Join(stripVersionsFromArgs(args), " "),
			)
		}
		return
	}
}

// newRenderer returns the renderer for the TemplateFile config key, or the
// built-in one.
func newRenderer(localFS afero.Fs) (*formula.Renderer, error) {
	templateFile := viper.GetString("TemplateFile")
	if templateFile == "" {
		return formula.MustNewRenderer(formula.DefaultTemplate()), nil
	}

	logger.Debug("using formula template %s", templateFile)
	tmplText, err := afero.ReadFile(localFS, templateFile)
	if err != nil {
		return nil, err
	}
	return formula.NewRenderer(string(tmplText))
}

// generate renders one formula. It reports whether the formula on disk was
// already up to date.
func generate(
	formulactlWriter io.Writer, formulaAPI api.FormulaAPI, localFS afero.Fs,
	renderer *formula.Renderer, outputDir string,
	release formula.Release, allReleases []formula.Release,
) (upToDate bool, err error) {
	d, err := resolveDescriptor(formulaAPI, release)
	if err != nil {
		return
	}

	err = formula.Validate(d)
	if err != nil {
		problems := multierr.Errors(err)
		messages := make([]string, len(problems))
		for i, problem := range problems {
			messages[i] = problem.Error()
		}
		err = fmt.Errorf("%s v%s: invalid release descriptor:\n  %s",
			d.Name, d.Version, strings.Join(messages, "\n  "),
		)
		return
	}

	rendered, err := renderer.Render(d)
	if err != nil {
		return
	}

	if stdoutFlag {
		_, err = formulactlWriter.Write(rendered)
		upToDate = true
		return
	}

	outputPath := filepath.Join(outputDir, d.Name+".rb")

	if checkFlag {
		var existing []byte
		existing, err = afero.ReadFile(localFS, outputPath)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return
		}
		err = nil
		upToDate = bytes.Equal(existing, rendered)
		if upToDate {
			fmt.Fprintln(formulactlWriter, prependName(release, allReleases,
				fmt.Sprintf("✅ %s is up to date", wrapInQuotesIfContainsSpace(outputPath)),
			))
		} else {
			fmt.Fprintln(formulactlWriter, prependName(release, allReleases,
				fmt.Sprintf("❌ %s is out of date", wrapInQuotesIfContainsSpace(outputPath)),
			))
		}
		return
	}

	written, err := sysutil.WriteFileIfChanged(localFS, outputPath, rendered, 0644)
	if err != nil {
		return
	}
	upToDate = true

	if written {
		logger.Success("wrote %s", outputPath)
		fmt.Fprintln(formulactlWriter, prependName(release, allReleases,
			fmt.Sprintf("🎉 Generated %s v%s at %s", d.Name, d.Version, wrapInQuotesIfContainsSpace(outputPath)),
		))
	} else {
		fmt.Fprintln(formulactlWriter, prependName(release, allReleases,
			fmt.Sprintf("👌 %s v%s at %s is up to date", d.Name, d.Version, wrapInQuotesIfContainsSpace(outputPath)),
		))
	}

	return
}
