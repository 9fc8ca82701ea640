package formula

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// Release identifies one version of a formula built for one platform.
type Release struct {
	Name    string
	Version string
	OS      string
	Arch    string
}

// Platform returns the "<os>-<arch>" directory name used by the formula API.
func (r Release) Platform() string {
	return r.OS + "-" + r.Arch
}

var targetTriples = map[string]string{
	"darwin-amd64": "x86_64-apple-darwin",
	"darwin-arm64": "aarch64-apple-darwin",
	"linux-amd64":  "x86_64-unknown-linux-musl",
	"linux-arm64":  "aarch64-unknown-linux-musl",
}

// TargetTriple maps a Go OS and architecture to the target triple release
// artifacts are usually named after.
func TargetTriple(goos, goarch string) (string, error) {
	triple, ok := targetTriples[goos+"-"+goarch]
	if !ok {
		return "", fmt.Errorf("no target triple for %s/%s", goos, goarch)
	}
	return triple, nil
}

var urlFuncs = template.FuncMap{
	"Title": func(in string) string {
		if in == "" {
			return in
		}
		return strings.ToUpper(in[:1]) + in[1:]
	},
	"X86_64": func(in string) string {
		return strings.Replace(in, "amd64", "x86_64", 1)
	},
	"Triple": TargetTriple,
}

// ExpandURL executes a download URL template such as
// "https://host/{{.Version}}/{{.Name}}-{{.Version}}-{{Triple .OS .Arch}}.tar.gz".
func ExpandURL(urlTemplate string, release Release) (string, error) {
	tmpl, err := template.New("URL").Funcs(urlFuncs).Parse(urlTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing download URL template: %w", err)
	}

	var b bytes.Buffer
	err = tmpl.Execute(&b, release)
	if err != nil {
		return "", fmt.Errorf("expanding download URL for %s %s: %w", release.Name, release.Version, err)
	}
	return b.String(), nil
}
