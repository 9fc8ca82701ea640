package api

import (
	"errors"

	"github.com/Masterminds/semver"
	"github.com/formulactl/formulactl/internal/formula"
)

// GetLatestVersion returns the latest version for the given formula, OS and
// arch.
func GetLatestVersion(formulaAPI FormulaAPI, release formula.Release) (version *semver.Version, err error) {
	platformMeta, err := GetPlatformMeta(formulaAPI, release)
	if err != nil {
		return
	}

	version, err = semver.NewVersion(platformMeta.Version.Latest)
	return
}

// RecordVersion widens the earliest/latest range of the release's platform so
// that it includes the release's version.
func RecordVersion(formulaAPI FormulaAPI, release formula.Release) error {
	version, err := semver.NewVersion(release.Version)
	if err != nil {
		return err
	}

	platformMeta, err := GetPlatformMeta(formulaAPI, release)
	if err != nil {
		if !errors.Is(err, NotFoundError{}) {
			return err
		}
		platformMeta = PlatformMeta{
			Version: PlatformMetaVersion{
				Earliest: version.String(),
				Latest:   version.String(),
			},
		}
	}

	earliestVersion, err := semver.NewVersion(platformMeta.Version.Earliest)
	if err != nil || version.LessThan(earliestVersion) {
		platformMeta.Version.Earliest = version.String()
	}

	latestVersion, err := semver.NewVersion(platformMeta.Version.Latest)
	if err != nil || version.GreaterThan(latestVersion) {
		platformMeta.Version.Latest = version.String()
	}

	return SavePlatformMeta(formulaAPI, release, platformMeta)
}

// Descriptor joins the formula metadata and the release metadata into a
// formula descriptor. An empty release version resolves to the latest.
func Descriptor(formulaAPI FormulaAPI, release formula.Release) (d formula.Descriptor, err error) {
	formulaMeta, err := GetFormulaMeta(formulaAPI, release)
	if err != nil {
		return
	}

	if release.Version == "" {
		var latestVersion *semver.Version
		latestVersion, err = GetLatestVersion(formulaAPI, release)
		if err != nil {
			return
		}
		release.Version = latestVersion.String()
	}

	releaseMeta, err := GetReleaseMeta(formulaAPI, release)
	if err != nil {
		return
	}

	d = formula.Descriptor{
		Name:        release.Name,
		Version:     release.Version,
		Description: formulaMeta.Description,
		Homepage:    formulaMeta.Homepage,
		URL:         releaseMeta.URL,
		SHA256:      releaseMeta.SHA256,
		Binary:      formulaMeta.Binary,
		Source:      formulaMeta.Source,
	}.WithDefaults()

	return
}
