package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/Masterminds/semver"
	"github.com/formulactl/formulactl/internal/api"
	"github.com/formulactl/formulactl/internal/artifact"
	"github.com/formulactl/formulactl/internal/formula"
	"github.com/formulactl/formulactl/internal/logger"
	"github.com/formulactl/formulactl/internal/utils"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	discoverOSFlag    []string
	discoverArchFlag  []string
	discoverLimitFlag int
)

func newDiscoverCmd(formulactlWriter io.Writer, localFS afero.Fs) *cobra.Command {
	discoverCmd := &cobra.Command{
		Use:   "discover NAME[@VERSION]... [flags]",
		Short: "Discover new releases of one or more formulae",
		Example: `  # Discover new releases of expend
  formulactl api discover expend

  # Discover new releases of expend, starting with v1.0.0
  formulactl api discover expend@1.0.0`,
		Args: checkArgs("formula"),
		RunE: newRunDiscover(formulactlWriter, localFS),
	}

	discoverCmd.Flags().StringSliceVar(&discoverOSFlag, "os", []string{"darwin", "linux"}, "comma-separated list of operating systems")
	discoverCmd.Flags().StringSliceVar(&discoverArchFlag, "arch", []string{"amd64", "arm64"}, "comma-separated list of architectures")
	discoverCmd.Flags().IntVar(&discoverLimitFlag, "limit", 50, "maximum number of versions to try per platform")

	return discoverCmd
}

func newRunDiscover(formulactlWriter io.Writer, localFS afero.Fs) func(cmd *cobra.Command, args []string) (err error) {
	return func(cmd *cobra.Command, args []string) (err error) {
		// Needs to run with the local API because we need write access
		formulaAPI, err := api.New(localFS, cmd, api.Local)
		if err != nil {
			return err
		}

		allReleases, err := ArgsToReleases(args, "", "", true)
		if err != nil {
			return err
		}

		state, err := utils.NewState(localFS)
		if err != nil {
			return
		}

		tempDir, err := os.MkdirTemp("", "formulactl-discover-*")
		if err != nil {
			return
		}
		defer os.RemoveAll(tempDir)

		d := discoverer{
			formulactlWriter: formulactlWriter,
			formulaAPI:       formulaAPI,
			client:           newHTTPClient(),
			tempDir:          tempDir,
			throttle:         utils.ConfigDuration("DiscoverThrottle", time.Second),
			limit:            discoverLimitFlag,
		}

		for _, release := range allReleases {
			// Check if the formula is supported
			var formulaMeta api.FormulaMeta
			formulaMeta, err = api.GetFormulaMeta(formulaAPI, release)
			if err != nil {
				return
			}

			found := 0
			for _, goos := range discoverOSFlag {
				for _, goarch := range discoverArchFlag {
					release.OS = goos
					release.Arch = goarch

					var foundOnPlatform int
					foundOnPlatform, err = d.discover(cmd.Context(), formulaMeta, release)
					if err != nil {
						return
					}
					found += foundOnPlatform
				}
			}

			if found > 0 {
				state.Discover.LastSuccess[release.Name] = time.Now()
			}
		}

		return state.Write(localFS)
	}
}

type discoverer struct {
	formulactlWriter io.Writer
	formulaAPI       api.FormulaAPI
	client           *http.Client
	tempDir          string
	throttle         time.Duration
	limit            int
}

// discover tries successive versions of release on its platform, starting
// after the latest known version (or at release.Version if set). Two misses
// in a row move on to the next minor, then the next major version; two
// misses of a major version end the discovery.
func (d discoverer) discover(
	ctx context.Context, formulaMeta api.FormulaMeta, release formula.Release,
) (found int, err error) {
	var version *semver.Version
	if release.Version != "" {
		version, err = semver.NewVersion(release.Version)
		if err != nil {
			return
		}
	} else {
		version, err = d.initialVersion(release)
		if err != nil {
			return
		}
	}

	var (
		componentToIncrement = "patch"
		missCounter          = 0
		attempts             = 0
	)

	for {
		release.Version = version.String()

		// Check if we already have the version
		_, err = api.GetReleaseMeta(d.formulaAPI, release)
		switch {
		case err == nil:
			fmt.Fprintf(d.formulactlWriter, "%s %s/%s v%s already added\n",
				release.Name, release.OS, release.Arch, release.Version,
			)
			componentToIncrement = "patch"
			missCounter = 0

		case !errors.Is(err, api.NotFoundError{}):
			return

		default:
			if attempts == d.limit {
				logger.Warn("%s %s/%s: stopped after %d attempts", release.Name, release.OS, release.Arch, attempts)
				return found, nil
			}
			attempts++

			var hit bool
			hit, err = d.tryRelease(ctx, formulaMeta, release)
			if err != nil {
				return
			}

			if hit {
				found++
				componentToIncrement = "patch"
				missCounter = 0
			} else {
				missCounter++

				if missCounter > 1 {
					switch componentToIncrement {
					case "patch":
						componentToIncrement = "minor"
					case "minor":
						componentToIncrement = "major"
					case "major":
						return found, nil
					}
					missCounter = 0
				}
			}

			if d.throttle > 0 {
				time.Sleep(d.throttle)
			}
		}

		version, err = incrementVersion(version, componentToIncrement)
		if err != nil {
			return
		}
	}
}

// tryRelease checks whether the artifact of release exists and records it if
// it does.
func (d discoverer) tryRelease(
	ctx context.Context, formulaMeta api.FormulaMeta, release formula.Release,
) (hit bool, err error) {
	url, err := formula.ExpandURL(formulaMeta.DownloadURLTemplate, release)
	if err != nil {
		return
	}

	fmt.Fprintf(d.formulactlWriter, "%s %s/%s v%s ...\n",
		release.Name, release.OS, release.Arch, release.Version,
	)
	fmt.Fprintf(d.formulactlWriter, "URL: %s\n", url)

	statusCode, err := artifact.Head(ctx, d.client, url)
	if err != nil {
		return
	}
	if statusCode != http.StatusOK {
		fmt.Fprintf(d.formulactlWriter, "HTTP status: %d\n", statusCode)
		return
	}

	// Download the artifact and calculate the SHA256
	download, err := artifact.Fetch(ctx, d.client, url, d.tempDir, progressWriter)
	if err != nil {
		return
	}
	defer os.Remove(download.Path)
	fmt.Fprintln(d.formulactlWriter, "SHA256:", download.SHA256)

	binaryName := formulaMeta.Binary
	if binaryName == "" {
		binaryName = release.Name
	}
	_, locateErr := artifact.LocateBinary(download.Path, binaryName)
	if locateErr != nil {
		logger.Warn("%s v%s: %v", release.Name, release.Version, locateErr)
	}

	err = api.SaveReleaseMeta(d.formulaAPI, release, api.ReleaseMeta{
		URL:    url,
		SHA256: download.SHA256,
	})
	if err != nil {
		return
	}

	err = api.RecordVersion(d.formulaAPI, release)
	if err != nil {
		return
	}
	logger.Info("recorded %s %s/%s v%s", release.Name, release.OS, release.Arch, release.Version)

	hit = true
	return
}

func (d discoverer) initialVersion(release formula.Release) (version *semver.Version, err error) {
	version, err = api.GetLatestVersion(d.formulaAPI, release)
	if err != nil {
		if !errors.Is(err, api.NotFoundError{}) {
			return
		}
		version = semver.MustParse("0.0.0")
	}
	return incrementVersion(version, "patch")
}

func incrementVersion(version *semver.Version, component string) (*semver.Version, error) {
	var incrementedVersion semver.Version

	switch component {
	case "major":
		incrementedVersion = version.IncMajor()
	case "minor":
		incrementedVersion = version.IncMinor()
	case "patch":
		incrementedVersion = version.IncPatch()
	default:
		return nil, fmt.Errorf("invalid version component: %s", component)
	}

	return &incrementedVersion, nil
}
