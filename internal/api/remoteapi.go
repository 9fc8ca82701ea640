package api

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/formulactl/formulactl/internal/logger"
	"github.com/spf13/afero"
)

type remoteAPI struct {
	baseURL *url.URL
	localFS afero.Fs
}

func (a remoteAPI) GetContents(path string) (found bool, contents []byte, err error) {
	contentsURL := a.baseURL.ResolveReference(&url.URL{Path: path}).String()
	logger.Debug("GET %s", contentsURL)

	var resp *http.Response
	resp, err = http.Get(contentsURL)
	if err != nil {
		return
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return
	default:
		err = fmt.Errorf("unexpected status code %d for %s", resp.StatusCode, contentsURL)
		return
	}

	contents, err = io.ReadAll(resp.Body)
	if err != nil {
		return
	}
	found = true

	return
}

// LocalFS returns the underlying local filesystem.
func (a remoteAPI) LocalFS() afero.Fs {
	return a.localFS
}

func (a remoteAPI) LocalBasePath() string {
	return ""
}

func (a remoteAPI) Location() Location {
	return Remote
}

// The remote API is read-only.
func (a remoteAPI) SaveContents(path string, contents []byte) error {
	return fmt.Errorf("not implemented")
}

// NewRemoteAPI returns a new remote API instance rooted at remoteAPIBaseURL.
func NewRemoteAPI(localFS afero.Fs, remoteAPIBaseURL string) (FormulaAPI, error) {
	baseURL, err := url.Parse(remoteAPIBaseURL)
	if err != nil {
		return nil, err
	}

	return &remoteAPI{
		localFS: localFS,
		baseURL: baseURL,
	}, nil
}
