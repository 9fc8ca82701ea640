package api

import (
	"bytes"
	"fmt"
	"path"

	"github.com/formulactl/formulactl/internal/formula"
	"gopkg.in/yaml.v3"
)

// Meta lists the formulae the API knows about.
type Meta struct {
	Formulae []string `yaml:"formulae"`
}

// GetMeta returns the global metadata.
func GetMeta(formulaAPI FormulaAPI) (meta Meta, err error) {
	err = getYAML(formulaAPI, "meta.yaml", "global metadata", &meta)
	return
}

// SaveMeta saves the global metadata.
func SaveMeta(formulaAPI FormulaAPI, meta Meta) error {
	return saveYAML(formulaAPI, "meta.yaml", meta)
}

// FormulaMeta holds what every release of a formula has in common.
type FormulaMeta struct {
	Description         string `yaml:"description"`
	Homepage            string `yaml:"homepage"`
	DownloadURLTemplate string `yaml:"downloadURLTemplate"`
	Binary              string `yaml:"binary,omitempty"`
	Source              string `yaml:"source,omitempty"`
}

// GetFormulaMeta returns the metadata for the given formula.
func GetFormulaMeta(formulaAPI FormulaAPI, release formula.Release) (meta FormulaMeta, err error) {
	var found bool
	var metaBytes []byte
	found, metaBytes, err = formulaAPI.GetContents(path.Join(release.Name, "meta.yaml"))
	if err != nil {
		return
	}
	if !found {
		err = fmt.Errorf("%s %w", release.Name, NotFoundError{})
		return
	}

	err = ValidateFormulaMeta(metaBytes)
	if err != nil {
		err = fmt.Errorf("%s: %w", release.Name, err)
		return
	}

	err = yaml.Unmarshal(metaBytes, &meta)
	return
}

// SaveFormulaMeta validates and saves the metadata for the given formula.
func SaveFormulaMeta(formulaAPI FormulaAPI, name string, meta FormulaMeta) error {
	metaBytes, err := encodeYAML(meta)
	if err != nil {
		return err
	}

	err = ValidateFormulaMeta(metaBytes)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	return formulaAPI.SaveContents(path.Join(name, "meta.yaml"), metaBytes)
}

// PlatformMeta tracks the range of known versions of a formula on one
// platform.
type PlatformMeta struct {
	Version PlatformMetaVersion `yaml:"version"`
}

type PlatformMetaVersion struct {
	Earliest string `yaml:"earliest"`
	Latest   string `yaml:"latest"`
}

// GetPlatformMeta returns the metadata for the given formula, OS and
// architecture.
func GetPlatformMeta(formulaAPI FormulaAPI, release formula.Release) (meta PlatformMeta, err error) {
	err = getYAML(
		formulaAPI, path.Join(release.Name, release.Platform(), "meta.yaml"),
		release.Name+" on "+release.Platform(), &meta,
	)
	return
}

func SavePlatformMeta(formulaAPI FormulaAPI, release formula.Release, meta PlatformMeta) error {
	return saveYAML(formulaAPI, path.Join(release.Name, release.Platform(), "meta.yaml"), meta)
}

// ReleaseMeta is the version-specific part of a formula: where to download
// the artifact and its digest.
type ReleaseMeta struct {
	URL    string `yaml:"url"`
	SHA256 string `yaml:"sha256"`
}

func GetReleaseMeta(formulaAPI FormulaAPI, release formula.Release) (meta ReleaseMeta, err error) {
	err = getYAML(
		formulaAPI, releaseMetaPath(release),
		fmt.Sprintf("%s v%s", release.Name, release.Version), &meta,
	)
	return
}

func SaveReleaseMeta(formulaAPI FormulaAPI, release formula.Release, meta ReleaseMeta) error {
	return saveYAML(formulaAPI, releaseMetaPath(release), meta)
}

func releaseMetaPath(release formula.Release) string {
	return path.Join(release.Name, release.Platform(), release.Version+".yaml")
}

func getYAML(formulaAPI FormulaAPI, relativePath, what string, out interface{}) error {
	found, contents, err := formulaAPI.GetContents(relativePath)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%s %w", what, NotFoundError{})
	}
	return yaml.Unmarshal(contents, out)
}

func saveYAML(formulaAPI FormulaAPI, relativePath string, in interface{}) error {
	contents, err := encodeYAML(in)
	if err != nil {
		return err
	}
	return formulaAPI.SaveContents(relativePath, contents)
}

func encodeYAML(in interface{}) ([]byte, error) {
	yamlBuffer := &bytes.Buffer{}
	yamlEncoder := yaml.NewEncoder(yamlBuffer)
	yamlEncoder.SetIndent(2)
	err := yamlEncoder.Encode(in)
	if err != nil {
		return nil, err
	}
	err = yamlEncoder.Close()
	if err != nil {
		return nil, err
	}
	return yamlBuffer.Bytes(), nil
}
