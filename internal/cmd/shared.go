package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/formulactl/formulactl/internal/api"
	"github.com/formulactl/formulactl/internal/formula"
	"github.com/formulactl/formulactl/internal/utils"
	"github.com/spf13/cobra"
)

var (
	osFlag   string
	archFlag string
)

// ArgToRelease converts a command line argument to a release.
func ArgToRelease(arg, goos, goarch string, versionAllowed bool) (release formula.Release, err error) {
	splitArg := strings.SplitN(arg, "@", 2)
	release = formula.Release{
		Name: splitArg[0],
		OS:   goos,
		Arch: goarch,
	}
	if len(splitArg) == 2 {
		if !versionAllowed {
			err = fmt.Errorf("please don't specify a version")
			return
		}
		release.Version = strings.TrimPrefix(splitArg[1], "v")
	}
	return
}

// ArgsToReleases converts a list of command line arguments to a list of
// releases.
func ArgsToReleases(args []string, goos, goarch string, versionAllowed bool) ([]formula.Release, error) {
	var releases []formula.Release

	for _, arg := range args {
		release, err := ArgToRelease(arg, goos, goarch, versionAllowed)
		if err != nil {
			return []formula.Release{}, err
		}
		releases = append(releases, release)
	}

	return releases, nil
}

// resolveDescriptor is api.Descriptor with a friendlier error for formulae
// that have no releases on the requested platform.
func resolveDescriptor(formulaAPI api.FormulaAPI, release formula.Release) (d formula.Descriptor, err error) {
	// Check if the formula is supported
	_, err = api.GetFormulaMeta(formulaAPI, release)
	if err != nil {
		return
	}

	if release.Version == "" {
		_, err = api.GetPlatformMeta(formulaAPI, release)
		if errors.Is(err, api.NotFoundError{}) {
			err = fmt.Errorf("%s not supported on %s/%s", release.Name, release.OS, release.Arch)
		}
		if err != nil {
			return
		}
	}

	return api.Descriptor(formulaAPI, release)
}

func checkArgs(what string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) (err error) {
		if len(args) == 0 {
			err = fmt.Errorf("no %s specified", what)
		}
		return
	}
}

func addPlatformFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&osFlag, "os", "darwin", "operating system of the release")
	cmd.Flags().StringVar(&archFlag, "arch", "amd64", "architecture of the release")
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: utils.ConfigDuration("HTTPTimeout", 10*time.Minute)}
}

func prependName(release formula.Release, allReleases []formula.Release, message ...string) string {
	if len(allReleases) == 1 {
		return strings.Join(message, " ")
	}

	longestNameLength := 0
	for _, release := range allReleases {
		if len(release.Name) > longestNameLength {
			longestNameLength = len(release.Name)
		}
	}

	return "[" + release.Name +
		strings.Repeat(" ", longestNameLength-len(release.Name)) +
		"] " +
		strings.Join(message, " ")
}

func stripVersionsFromArgs(args []string) []string {
	var strippedArgs []string
	for _, arg := range args {
		strippedArgs = append(strippedArgs, strings.SplitN(arg, "@", 2)[0])
	}
	return strippedArgs
}

func wrapInQuotesIfContainsSpace(s string) string {
	if strings.Contains(s, " ") {
		return fmt.Sprintf("\"%s\"", s)
	}
	return s
}
