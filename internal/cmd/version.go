package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/formulactl/formulactl/internal/artifact"
	"github.com/formulactl/formulactl/internal/formula"
	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X github.com/formulactl/formulactl/internal/cmd.gitVersion=...".
var (
	gitVersion = "v0.0.0-dev"
	gitCommit  = "da39a3ee5e6b4b0d3255bfef95601890afd80709"
	buildDate  = "0000-00-00T00:00:00Z"
)

var shortFlag bool

// VersionInfo describes a build of formulactl. TemplateSHA256 identifies the
// built-in formula template, so two builds rendering different formulae can
// be told apart.
type VersionInfo struct {
	GitVersion     string
	GitCommit      string
	BuildDate      string
	GoVersion      string
	Platform       string
	TemplateSHA256 string
}

func newVersionCmd(formulactlWriter io.Writer) *cobra.Command {
	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Display the version of formulactl",
		Long: `Display the version of formulactl, the Go toolchain and platform it was
built for, and the digest of its built-in formula template.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printVersion(formulactlWriter)
		},
	}

	versionCmd.SetOut(formulactlWriter)
	versionCmd.SetErr(formulactlWriter)

	versionCmd.Flags().BoolVar(&shortFlag, "short", false, "display only the version number")

	return versionCmd
}

func currentVersionInfo() (info VersionInfo, err error) {
	templateSHA256, err := artifact.CalculateSHA256(strings.NewReader(formula.DefaultTemplate()))
	if err != nil {
		return
	}

	info = VersionInfo{
		GitVersion:     gitVersion,
		GitCommit:      gitCommit,
		BuildDate:      buildDate,
		GoVersion:      runtime.Version(),
		Platform:       runtime.GOOS + "/" + runtime.GOARCH,
		TemplateSHA256: templateSHA256,
	}
	return
}

func printVersion(formulactlWriter io.Writer) error {
	if shortFlag {
		fmt.Fprintln(formulactlWriter, gitVersion)
		return nil
	}

	info, err := currentVersionInfo()
	if err != nil {
		return err
	}
	b, err := json.Marshal(info)
	if err != nil {
		return err
	}

	fmt.Fprintln(formulactlWriter, string(b))
	return nil
}
