package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/formulactl/formulactl/internal/artifact"
	"github.com/formulactl/formulactl/internal/formula"
	"github.com/formulactl/formulactl/internal/logger"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newVerifyCmd(formulactlWriter io.Writer, localFS afero.Fs) *cobra.Command {
	verifyCmd := &cobra.Command{
		Use:   "verify FILE... [flags]",
		Short: "Download the artifacts of Homebrew formulae and check their digests",
		Example: `  # Check that the artifact of a formula matches its sha256
  formulactl verify pkg/brew/expend.rb`,
		Args: checkArgs("formula file"),
		RunE: newRunVerify(formulactlWriter, localFS),
	}
	return verifyCmd
}

func newRunVerify(
	formulactlWriter io.Writer, localFS afero.Fs,
) func(cmd *cobra.Command, args []string) (err error) {
	return func(cmd *cobra.Command, args []string) (err error) {
		tempDir, err := os.MkdirTemp("", "formulactl-verify-*")
		if err != nil {
			return
		}
		defer func() {
			if rmErr := os.RemoveAll(tempDir); rmErr != nil {
				logger.LogError("removing %s: %v", tempDir, rmErr)
			}
		}()

		failed := 0
		for _, filename := range args {
			var ok bool
			ok, err = verify(cmd, formulactlWriter, localFS, tempDir, filename)
			if err != nil {
				return
			}
			if !ok {
				failed++
			}
		}

		if failed > 0 {
			err = fmt.Errorf("%d formula(e) failed verification", failed)
		}
		return
	}
}

func verify(
	cmd *cobra.Command, formulactlWriter io.Writer, localFS afero.Fs,
	tempDir, filename string,
) (ok bool, err error) {
	contents, err := afero.ReadFile(localFS, filename)
	if err != nil {
		return
	}

	d, err := formula.ParseFile(contents, filename)
	if err != nil {
		err = fmt.Errorf("%s: %w", filename, err)
		return
	}
	d = d.WithDefaults()

	download, err := artifact.Fetch(cmd.Context(), newHTTPClient(), d.URL, tempDir, progressWriter)
	if err != nil {
		var statusErr *artifact.StatusError
		if errors.As(err, &statusErr) {
			fmt.Fprintf(formulactlWriter, "❌ %s v%s: %s\n", d.Name, d.Version, err)
			err = nil
		}
		return
	}

	err = artifact.Verify(download.Path, d.SHA256)
	if err != nil {
		if !errors.Is(err, artifact.ErrChecksumMismatch) {
			return
		}
		fmt.Fprintf(formulactlWriter, "❌ %s v%s: %s\n", d.Name, d.Version, err)
		err = nil
		return
	}
	fmt.Fprintf(formulactlWriter, "✅ %s v%s: sha256 %s\n", d.Name, d.Version, download.SHA256)

	binary, err := artifact.LocateBinary(download.Path, d.Binary)
	if err != nil {
		fmt.Fprintf(formulactlWriter, "❌ %s v%s: %s\n", d.Name, d.Version, err)
		err = nil
		return
	}
	if !binary.Executable {
		fmt.Fprintf(formulactlWriter, "🚨 %s v%s: %s is not executable\n", d.Name, d.Version, binary.Path)
	}
	fmt.Fprintf(formulactlWriter, "✅ %s v%s: bin.install %s\n", d.Name, d.Version, binary.Path)

	ok = true
	return
}
