// Package api reads and writes the formula API: a tree of YAML files that
// holds, per formula, its metadata and one release descriptor per platform
// and version.
package api

import (
	"github.com/formulactl/formulactl/internal/utils"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// Location represents the location of the API, currently remote or local.
type Location uint32

const (
	// Local represents the local API location.
	Local Location = iota
	// Remote represents the remote API location.
	Remote
)

// FormulaAPI defines the interface that all formula APIs need to implement.
type FormulaAPI interface {
	GetContents(path string) (found bool, contents []byte, err error)
	LocalFS() afero.Fs
	LocalBasePath() string
	Location() Location
	SaveContents(path string, data []byte) error
}

// New returns a new API instance, based on the specified command line flags
// and the default location.
func New(localFS afero.Fs, cmd *cobra.Command, defaultLocation Location) (FormulaAPI, error) {
	localFlag, err := cmd.Flags().GetBool("local")
	if err != nil {
		return nil, err
	}

	if localFlag || defaultLocation == Local {
		localAPIBasePath, err := utils.RequireConfigString("LocalAPIBasePath")
		if err != nil {
			return nil, err
		}
		return NewLocalAPI(localFS, localAPIBasePath)
	}

	remoteAPIBaseURL, err := utils.RequireConfigString("RemoteAPIBaseURL")
	if err != nil {
		return nil, err
	}
	return NewRemoteAPI(localFS, remoteAPIBaseURL)
}
