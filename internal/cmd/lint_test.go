package cmd_test

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
)

const fooBarFormula = `class FooBar < Formula
  # '---> DO NOT EDIT <--- (this file was generated from ./etc/brew/foo-bar.rb.in'
  version '0.3.0'
  desc "Foo the bar"
  homepage "https://example.com/foo-bar"

  url "https://example.com/foo-bar-0.3.0.tar.gz"
  sha256 "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

  def install
    bin.install "fb"
  end
end
`

func TestLintCmd(t *testing.T) {
	formulaFiles := map[string]string{
		"/pkg/brew/expend.rb": expend101Formula,
		"/pkg/brew/compact.rb": strings.Replace(
			expend101Formula, "expend-rs\"\n\n  url", "expend-rs\"\n  url", 1,
		),
		"/pkg/brew/long-sha.rb": strings.Replace(
			expend101Formula, "b3ce\"", "b3ceffffff\"", 1,
		),
		"/pkg/brew/unversioned-url.rb": strings.Replace(
			expend101Formula,
			"https://github.com/Byron-TW/expend-rs/releases/download/1.0.1/expend-1.0.1-x86_64-apple-darwin.tar.gz",
			"https://example.com/expend.tar.gz", 1,
		),
		"/pkg/brew/not-a-formula.rb": "puts 'hello'\n",
		"/pkg/brew/foo-bar.rb":       fooBarFormula,
	}

	tests := []test{
		{
			name:         "no cli args",
			cliArgs:      []string{},
			wantErr:      true,
			wantOutRegex: `^Error: no formula file specified\nUsage:\n`,
		},
		// -------------------------------------------------------------------------
		{
			name:    "generated formula",
			cliArgs: []string{"/pkg/brew/expend.rb"},
			wantOut: `✅ /pkg/brew/expend.rb
`,
		},
		// -------------------------------------------------------------------------
		{
			name:    "generated formula, regenerate",
			cliArgs: []string{"--regenerate", "/pkg/brew/expend.rb"},
			wantOut: `✅ /pkg/brew/expend.rb
`,
		},
		// -------------------------------------------------------------------------
		{
			name:    "hyphenated name with a different binary, regenerate",
			cliArgs: []string{"--regenerate", "/pkg/brew/foo-bar.rb"},
			wantOut: `✅ /pkg/brew/foo-bar.rb
`,
		},
		// -------------------------------------------------------------------------
		{
			name:    "hand-edited formula",
			cliArgs: []string{"/pkg/brew/compact.rb"},
			wantOut: `✅ /pkg/brew/compact.rb
`,
		},
		// -------------------------------------------------------------------------
		{
			name:    "hand-edited formula, regenerate",
			cliArgs: []string{"--regenerate", "/pkg/brew/compact.rb"},
			wantErr: true,
			wantOut: `❌ /pkg/brew/compact.rb: differs from the generated formula
Error: 1 problem(s) found
`,
		},
		// -------------------------------------------------------------------------
		{
			name:    "checksum too long",
			cliArgs: []string{"/pkg/brew/long-sha.rb"},
			wantErr: true,
			wantOut: `❌ /pkg/brew/long-sha.rb: sha256: has 70 characters, want 64
Error: 1 problem(s) found
`,
		},
		// -------------------------------------------------------------------------
		{
			name:    "url without version",
			cliArgs: []string{"/pkg/brew/unversioned-url.rb"},
			wantErr: true,
			wantOut: `❌ /pkg/brew/unversioned-url.rb: url: does not encode version 1.0.1
Error: 1 problem(s) found
`,
		},
		// -------------------------------------------------------------------------
		{
			name:    "not a formula",
			cliArgs: []string{"/pkg/brew/not-a-formula.rb"},
			wantErr: true,
			wantOut: `❌ /pkg/brew/not-a-formula.rb: no formula class found
Error: 1 problem(s) found
`,
		},
		// -------------------------------------------------------------------------
		{
			name: "multiple files",
			cliArgs: []string{
				"/pkg/brew/expend.rb", "/pkg/brew/long-sha.rb", "/pkg/brew/unversioned-url.rb",
			},
			wantErr: true,
			wantOut: `✅ /pkg/brew/expend.rb
❌ /pkg/brew/long-sha.rb: sha256: has 70 characters, want 64
❌ /pkg/brew/unversioned-url.rb: url: does not encode version 1.0.1
Error: 2 problem(s) found
`,
		},
		// -------------------------------------------------------------------------
		{
			name:         "missing file",
			cliArgs:      []string{"/pkg/brew/missing.rb"},
			wantErr:      true,
			wantOutRegex: `^Error: open /pkg/brew/missing\.rb: file does not exist\n$`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupFixture(t)
			defer f.Close()

			for filename, contents := range formulaFiles {
				err := afero.WriteFile(f.localFS, filename, []byte(contents), 0644)
				if err != nil {
					t.Fatal(err)
				}
			}

			buf := runCmd(t, f, tt, "lint")

			checkWantOut(t, tt, buf)
		})
	}
}
