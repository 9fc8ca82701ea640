package cmd_test

import (
	"path"
	"testing"

	"github.com/spf13/afero"
)

func TestListCmd(t *testing.T) {
	tests := []struct {
		test
		metaYAML string
	}{
		{
			test: test{
				name:         "table",
				cliArgs:      []string{},
				wantOutRegex: `(?is)name.+latest.+description.+expend\W+1\.0\.1\W+Automate repetitive.+formulactl-test-tool\W+-\W+formulactl test tool`,
			},
		},
		// -------------------------------------------------------------------------
		{
			test: test{
				name:         "ls alias on other platform",
				cliArgs:      []string{"--arch", "arm64"},
				wantOutRegex: `(?is)expend\W+-\W+Automate repetitive`,
			},
		},
		// -------------------------------------------------------------------------
		{
			test: test{
				name:    "markdown",
				cliArgs: []string{"--markdown"},
				wantOut: `- [expend](https://github.com/Byron-TW/expend-rs): Automate repetitive expenses for Expensify.com
- [formulactl-test-tool](https://example.com/formulactl-test-tool): formulactl test tool
`,
			},
		},
		// -------------------------------------------------------------------------
		{
			test: test{
				name:    "no formulae",
				cliArgs: []string{},
				wantOut: `No formulae
`,
			},
			metaYAML: "formulae: []\n",
		},
		// -------------------------------------------------------------------------
		{
			test: test{
				name:         "args",
				cliArgs:      []string{"expend"},
				wantErr:      true,
				wantOutRegex: `^Error: unknown command "expend" for "formulactl list"\n`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupFixture(t)
			defer f.Close()

			if tt.metaYAML != "" {
				err := afero.WriteFile(f.localFS, path.Join(localAPIBasePath, "meta.yaml"), []byte(tt.metaYAML), 0644)
				if err != nil {
					t.Fatal(err)
				}
			}

			command := "list"
			if tt.name == "ls alias on other platform" {
				command = "ls"
			}
			buf := runCmd(t, f, tt.test, command)

			checkWantOut(t, tt.test, buf)
		})
	}
}
