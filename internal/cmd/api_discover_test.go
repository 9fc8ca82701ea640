package cmd_test

import (
	"testing"

	"github.com/formulactl/formulactl/internal/utils"
)

func TestAPIDiscoverCmd(t *testing.T) {
	discovered := APIContents{
		{
			Path: "expend/darwin-amd64/1.1.0.yaml",
			Contents: `url: {{downloadServerURL}}/1.1.0/expend-1.1.0-x86_64-apple-darwin.tar.gz
sha256: {{sha256 1.1.0/expend-1.1.0-x86_64-apple-darwin.tar.gz}}
`,
		},
		{
			Path: "expend/darwin-amd64/1.2.0.yaml",
			Contents: `url: {{downloadServerURL}}/1.2.0/expend-1.2.0-x86_64-apple-darwin.tar.gz
sha256: {{sha256 1.2.0/expend-1.2.0-x86_64-apple-darwin.tar.gz}}
`,
		},
		{
			Path: "expend/darwin-amd64/meta.yaml",
			Contents: `version:
  earliest: 1.0.1
  latest: 1.2.0
`,
		},
	}

	tests := []test{
		{
			name:         "no cli args",
			cliArgs:      []string{},
			wantErr:      true,
			wantOutRegex: `^Error: no formula specified\nUsage:\n  formulactl api discover NAME\[@VERSION\]\.\.\. \[flags\]\n`,
		},
		// -------------------------------------------------------------------------
		{
			name:    "supported formula",
			cliArgs: []string{"expend", "--os", "darwin", "--arch", "amd64"},
			wantOut: `expend darwin/amd64 v1.0.2 ...
URL: {{downloadServerURL}}/1.0.2/expend-1.0.2-x86_64-apple-darwin.tar.gz
HTTP status: 404
expend darwin/amd64 v1.0.3 ...
URL: {{downloadServerURL}}/1.0.3/expend-1.0.3-x86_64-apple-darwin.tar.gz
HTTP status: 404
expend darwin/amd64 v1.1.0 ...
URL: {{downloadServerURL}}/1.1.0/expend-1.1.0-x86_64-apple-darwin.tar.gz
SHA256: {{sha256 1.1.0/expend-1.1.0-x86_64-apple-darwin.tar.gz}}
expend darwin/amd64 v1.1.1 ...
URL: {{downloadServerURL}}/1.1.1/expend-1.1.1-x86_64-apple-darwin.tar.gz
HTTP status: 404
expend darwin/amd64 v1.1.2 ...
URL: {{downloadServerURL}}/1.1.2/expend-1.1.2-x86_64-apple-darwin.tar.gz
HTTP status: 404
expend darwin/amd64 v1.2.0 ...
URL: {{downloadServerURL}}/1.2.0/expend-1.2.0-x86_64-apple-darwin.tar.gz
SHA256: {{sha256 1.2.0/expend-1.2.0-x86_64-apple-darwin.tar.gz}}
expend darwin/amd64 v1.2.1 ...
URL: {{downloadServerURL}}/1.2.1/expend-1.2.1-x86_64-apple-darwin.tar.gz
HTTP status: 404
expend darwin/amd64 v1.2.2 ...
URL: {{downloadServerURL}}/1.2.2/expend-1.2.2-x86_64-apple-darwin.tar.gz
HTTP status: 404
expend darwin/amd64 v1.3.0 ...
URL: {{downloadServerURL}}/1.3.0/expend-1.3.0-x86_64-apple-darwin.tar.gz
HTTP status: 404
expend darwin/amd64 v1.4.0 ...
URL: {{downloadServerURL}}/1.4.0/expend-1.4.0-x86_64-apple-darwin.tar.gz
HTTP status: 404
expend darwin/amd64 v2.0.0 ...
URL: {{downloadServerURL}}/2.0.0/expend-2.0.0-x86_64-apple-darwin.tar.gz
HTTP status: 404
expend darwin/amd64 v3.0.0 ...
URL: {{downloadServerURL}}/3.0.0/expend-3.0.0-x86_64-apple-darwin.tar.gz
HTTP status: 404
`,
			wantFiles: discovered,
		},
		// -------------------------------------------------------------------------
		{
			name:    "supported formula with version",
			cliArgs: []string{"expend@1.0.1", "--os", "darwin", "--arch", "amd64"},
			wantOut: `expend darwin/amd64 v1.0.1 already added
expend darwin/amd64 v1.0.2 ...
URL: {{downloadServerURL}}/1.0.2/expend-1.0.2-x86_64-apple-darwin.tar.gz
HTTP status: 404
expend darwin/amd64 v1.0.3 ...
URL: {{downloadServerURL}}/1.0.3/expend-1.0.3-x86_64-apple-darwin.tar.gz
HTTP status: 404
expend darwin/amd64 v1.1.0 ...
URL: {{downloadServerURL}}/1.1.0/expend-1.1.0-x86_64-apple-darwin.tar.gz
SHA256: {{sha256 1.1.0/expend-1.1.0-x86_64-apple-darwin.tar.gz}}
expend darwin/amd64 v1.1.1 ...
URL: {{downloadServerURL}}/1.1.1/expend-1.1.1-x86_64-apple-darwin.tar.gz
HTTP status: 404
expend darwin/amd64 v1.1.2 ...
URL: {{downloadServerURL}}/1.1.2/expend-1.1.2-x86_64-apple-darwin.tar.gz
HTTP status: 404
expend darwin/amd64 v1.2.0 ...
URL: {{downloadServerURL}}/1.2.0/expend-1.2.0-x86_64-apple-darwin.tar.gz
SHA256: {{sha256 1.2.0/expend-1.2.0-x86_64-apple-darwin.tar.gz}}
expend darwin/amd64 v1.2.1 ...
URL: {{downloadServerURL}}/1.2.1/expend-1.2.1-x86_64-apple-darwin.tar.gz
HTTP status: 404
expend darwin/amd64 v1.2.2 ...
URL: {{downloadServerURL}}/1.2.2/expend-1.2.2-x86_64-apple-darwin.tar.gz
HTTP status: 404
expend darwin/amd64 v1.3.0 ...
URL: {{downloadServerURL}}/1.3.0/expend-1.3.0-x86_64-apple-darwin.tar.gz
HTTP status: 404
expend darwin/amd64 v1.4.0 ...
URL: {{downloadServerURL}}/1.4.0/expend-1.4.0-x86_64-apple-darwin.tar.gz
HTTP status: 404
expend darwin/amd64 v2.0.0 ...
URL: {{downloadServerURL}}/2.0.0/expend-2.0.0-x86_64-apple-darwin.tar.gz
HTTP status: 404
expend darwin/amd64 v3.0.0 ...
URL: {{downloadServerURL}}/3.0.0/expend-3.0.0-x86_64-apple-darwin.tar.gz
HTTP status: 404
`,
			wantFiles: discovered,
		},
		// -------------------------------------------------------------------------
		{
			name:    "attempt limit",
			cliArgs: []string{"expend", "--os", "darwin", "--arch", "amd64", "--limit", "3"},
			wantOut: `expend darwin/amd64 v1.0.2 ...
URL: {{downloadServerURL}}/1.0.2/expend-1.0.2-x86_64-apple-darwin.tar.gz
HTTP status: 404
expend darwin/amd64 v1.0.3 ...
URL: {{downloadServerURL}}/1.0.3/expend-1.0.3-x86_64-apple-darwin.tar.gz
HTTP status: 404
expend darwin/amd64 v1.1.0 ...
URL: {{downloadServerURL}}/1.1.0/expend-1.1.0-x86_64-apple-darwin.tar.gz
SHA256: {{sha256 1.1.0/expend-1.1.0-x86_64-apple-darwin.tar.gz}}
`,
			wantFiles: APIContents{
				discovered[0],
				{
					Path: "expend/darwin-amd64/meta.yaml",
					Contents: `version:
  earliest: 1.0.1
  latest: 1.1.0
`,
				},
			},
		},
		// -------------------------------------------------------------------------
		{
			name:    "unknown formula",
			cliArgs: []string{"formulactl-unknown-tool"},
			wantErr: true,
			wantOut: `Error: formulactl-unknown-tool could not be found
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupFixture(t)
			defer f.Close()

			buf := runCmd(t, f, tt, "api", "discover")

			tt.wantOut = f.replacer().Replace(tt.wantOut)
			checkWantOut(t, tt, buf)
			checkWantFiles(t, f, tt)

			if tt.wantErr {
				return
			}
			state, err := utils.NewState(f.localFS)
			if err != nil {
				t.Fatal(err)
			}
			if state.Discover.LastSuccess["expend"].IsZero() {
				t.Errorf("LastSuccess not recorded for expend")
			}
		})
	}
}

func TestAPIDiscoverCmdNothingNew(t *testing.T) {
	f := setupFixture(t)
	defer f.Close()

	tt := test{
		cliArgs: []string{"expend", "--os", "linux", "--arch", "arm64", "--limit", "2"},
		wantOut: `expend linux/arm64 v0.0.1 ...
URL: {{downloadServerURL}}/0.0.1/expend-0.0.1-aarch64-unknown-linux-musl.tar.gz
HTTP status: 404
expend linux/arm64 v0.0.2 ...
URL: {{downloadServerURL}}/0.0.2/expend-0.0.2-aarch64-unknown-linux-musl.tar.gz
HTTP status: 404
`,
	}
	buf := runCmd(t, f, tt, "api", "discover")

	tt.wantOut = f.replacer().Replace(tt.wantOut)
	checkWantOut(t, tt, buf)

	state, err := utils.NewState(f.localFS)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := state.Discover.LastSuccess["expend"]; ok {
		t.Errorf("LastSuccess recorded for expend without new releases")
	}
}
