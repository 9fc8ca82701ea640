package api_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/formulactl/formulactl/internal/api"
	"github.com/spf13/afero"
)

const localAPIBasePath = "/formulactl/formulae/v0"

type apiContents []apiFile

type apiFile struct {
	Path     string
	Contents string
}

const expendMeta = `description: Automate repetitive expenses for Expensify.com
homepage: https://github.com/Byron-TW/expend-rs
downloadURLTemplate: https://github.com/Byron-TW/expend-rs/releases/download/{{.Version}}/{{.Name}}-{{.Version}}-{{Triple .OS .Arch}}.tar.gz
`

func setupTest(apiLocation api.Location, apiContents apiContents) (
	formulaAPI api.FormulaAPI, apiServer *httptest.Server, err error,
) {
	localFS := afero.NewMemMapFs()

	for _, f := range apiContents {
		err = afero.WriteFile(localFS, f.Path, []byte(f.Contents), 0644)
		if err != nil {
			return
		}
	}

	if apiLocation == api.Remote {
		apiFileServer := http.FileServer(afero.NewHttpFs(localFS).Dir(localAPIBasePath))
		apiServer = httptest.NewServer(apiFileServer)

		formulaAPI, err = api.NewRemoteAPI(localFS, apiServer.URL)
		return
	}

	formulaAPI, err = api.NewLocalAPI(localFS, localAPIBasePath)
	return
}
