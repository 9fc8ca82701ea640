package formula

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed templates/formula.rb.tmpl
var defaultTemplate string

// Renderer renders descriptors into formula files.
type Renderer struct {
	tmpl *template.Template
}

var defaultRenderer = MustNewRenderer(defaultTemplate)

// DefaultTemplate returns the text of the built-in formula template.
func DefaultTemplate() string {
	return defaultTemplate
}

// NewRenderer parses tmplText. Besides the descriptor fields, the template can
// use className, single (single-quoted Ruby string) and double (double-quoted
// Ruby string).
func NewRenderer(tmplText string) (*Renderer, error) {
	tmpl, err := template.New("formula").
		Funcs(template.FuncMap{
			"className": ClassName,
			"single":    rubySingleQuoted,
			"double":    rubyDoubleQuoted,
		}).
		Option("missingkey=error").
		Parse(tmplText)
	if err != nil {
		return nil, fmt.Errorf("parsing formula template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// MustNewRenderer is like NewRenderer but panics on a malformed template.
func MustNewRenderer(tmplText string) *Renderer {
	r, err := NewRenderer(tmplText)
	if err != nil {
		panic(err)
	}
	return r
}

// Render renders d. Empty Binary and Source fields take their defaults.
func (r *Renderer) Render(d Descriptor) ([]byte, error) {
	var b bytes.Buffer
	err := r.tmpl.Execute(&b, d.WithDefaults())
	if err != nil {
		return nil, fmt.Errorf("rendering formula %s: %w", d.Name, err)
	}
	return b.Bytes(), nil
}

// Render renders d with the built-in template.
func Render(d Descriptor) ([]byte, error) {
	return defaultRenderer.Render(d)
}

func rubySingleQuoted(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(s) + "'"
}

func rubyDoubleQuoted(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, `#{`, `\#{`)
	return `"` + r.Replace(s) + `"`
}
