package formula

import (
	"bufio"
	"bytes"
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

const quoted = `("(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*')`

var (
	classRegex   = regexp.MustCompile(`^class\s+([A-Za-z0-9_]+)\s*<\s*Formula\s*$`)
	sourceRegex  = regexp.MustCompile(`DO NOT EDIT.*generated from (.*?)'?\)?\s*$`)
	fieldRegex   = regexp.MustCompile(`^(version|desc|homepage|url|sha256)\s+` + quoted + `\s*$`)
	installRegex = regexp.MustCompile(`^bin\.install\s+` + quoted + `\s*$`)
)

// ParseError is returned when a formula file is not in the generated shape.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Parse reads a generated formula back into a descriptor. Without a file name
// the descriptor's Name is recovered from the class name, see formulaName.
func Parse(b []byte) (d Descriptor, err error) {
	var className string
	seen := map[string]bool{}

	scanner := bufio.NewScanner(bytes.NewReader(b))
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "" || line == "end" || strings.HasPrefix(line, "def "):
			continue
		case strings.HasPrefix(line, "#"):
			if m := sourceRegex.FindStringSubmatch(line); m != nil {
				d.Source = m[1]
			}
			continue
		}

		if m := classRegex.FindStringSubmatch(line); m != nil {
			className = m[1]
			continue
		}

		if m := installRegex.FindStringSubmatch(line); m != nil {
			if d.Binary == "" {
				d.Binary = unquote(m[1])
			}
			continue
		}

		m := fieldRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if seen[m[1]] {
			return Descriptor{}, &ParseError{Line: lineNumber, Message: "duplicate " + m[1]}
		}
		seen[m[1]] = true

		value := unquote(m[2])
		switch m[1] {
		case "version":
			d.Version = value
		case "desc":
			d.Description = value
		case "homepage":
			d.Homepage = value
		case "url":
			d.URL = value
		case "sha256":
			d.SHA256 = value
		}
	}
	err = scanner.Err()
	if err != nil {
		return Descriptor{}, err
	}

	if className == "" {
		return Descriptor{}, &ParseError{Message: "no formula class found"}
	}
	for _, required := range []string{"version", "url", "sha256"} {
		if !seen[required] {
			return Descriptor{}, &ParseError{Message: "missing " + required}
		}
	}

	d.Name = formulaName(className, d.Source, d.Binary)

	return d, nil
}

// ParseFile is like Parse but takes the formula name from the file name, the
// way Homebrew does, whenever "<name>.rb" matches the formula class.
func ParseFile(b []byte, filename string) (d Descriptor, err error) {
	d, err = Parse(b)
	if err != nil {
		return
	}

	name := strings.TrimSuffix(path.Base(filepath.ToSlash(filename)), ".rb")
	if ClassName(name) == ClassName(d.Name) {
		d.Name = name
	}
	return
}

// formulaName derives the formula name from the class name. The default
// source path and the installed binary are preferred when they match the
// class, since they keep separators that the class name drops.
func formulaName(className, source, binary string) string {
	if strings.HasPrefix(source, "./etc/brew/") && strings.HasSuffix(source, ".rb.in") {
		name := strings.TrimSuffix(strings.TrimPrefix(source, "./etc/brew/"), ".rb.in")
		if name != "" && ClassName(name) == className {
			return name
		}
	}
	if binary != "" && ClassName(binary) == className {
		return binary
	}
	return hyphenate(className)
}

// hyphenate turns a class name back into a formula name: "FooBar" -> "foo-bar".
func hyphenate(className string) string {
	var b strings.Builder
	for i, r := range className {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// unquote strips the Ruby quotes and resolves backslash escapes.
func unquote(s string) string {
	s = s[1 : len(s)-1]
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	escaped := false
	for _, r := range s {
		if !escaped && r == '\\' {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}
