package formula

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"

	"go.uber.org/multierr"
)

// SHA256Length is the number of hex characters in a SHA-256 digest.
const SHA256Length = 64

var (
	nameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9._+-]*$`)
	hexRegex  = regexp.MustCompile(`^[0-9a-fA-F]+$`)
)

// ValidationError describes one problem with one field of a descriptor.
type ValidationError struct {
	Field   string
	Problem string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Problem
}

func problem(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Problem: fmt.Sprintf(format, args...)}
}

// Validate checks the structural integrity of d. All problems are collected;
// use multierr.Errors to list them individually.
func Validate(d Descriptor) (err error) {
	d = d.WithDefaults()

	if !nameRegex.MatchString(d.Name) {
		err = multierr.Append(err, problem("name", "%q is not a valid formula name", d.Name))
	}

	switch {
	case d.Version == "":
		err = multierr.Append(err, problem("version", "is empty"))
	case strings.ContainsAny(d.Version, " \t\n"):
		err = multierr.Append(err, problem("version", "%q contains whitespace", d.Version))
	}

	if d.Description == "" {
		err = multierr.Append(err, problem("desc", "is empty"))
	}

	if e := checkHTTPURL(d.Homepage); e != nil {
		err = multierr.Append(err, problem("homepage", "%v", e))
	}

	err = multierr.Append(err, validateURL(d))
	err = multierr.Append(err, ValidateSHA256(d.SHA256))

	if d.Binary == "" || strings.ContainsAny(d.Binary, `/\`) {
		err = multierr.Append(err, problem("binary", "%q must be a bare file name", d.Binary))
	}

	return err
}

// ValidateSHA256 checks that digest is exactly 64 hex characters.
func ValidateSHA256(digest string) error {
	switch {
	case digest == "":
		return problem("sha256", "is empty")
	case !hexRegex.MatchString(digest):
		return problem("sha256", "%q is not hex encoded", digest)
	case len(digest) != SHA256Length:
		return problem("sha256", "has %d characters, want %d", len(digest), SHA256Length)
	}
	return nil
}

func validateURL(d Descriptor) (err error) {
	if e := checkHTTPURL(d.URL); e != nil {
		return problem("url", "%v", e)
	}

	u, _ := url.Parse(d.URL)
	fileName := path.Base(u.Path)

	if d.Name != "" && !strings.Contains(fileName, d.Name) {
		err = multierr.Append(err, problem("url", "file name %q does not contain %q", fileName, d.Name))
	}

	if d.Version != "" && !encodesVersion(u.Path, d.Version) {
		err = multierr.Append(err, problem("url", "does not encode version %s", d.Version))
	}

	return err
}

// encodesVersion reports whether the version appears as a path segment
// (optionally prefixed with "v") or as a whole token of the artifact file
// name, so that 1.0 is not taken for 1.0.1.
func encodesVersion(urlPath, version string) bool {
	segments := strings.Split(strings.Trim(urlPath, "/"), "/")
	for _, segment := range segments[:len(segments)-1] {
		if segment == version || segment == "v"+version {
			return true
		}
	}

	fileName := segments[len(segments)-1]
	for offset := 0; ; {
		i := strings.Index(fileName[offset:], version)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(version)
		if versionBoundaryBefore(fileName, start) && versionBoundaryAfter(fileName, end) {
			return true
		}
		offset = start + 1
	}
}

func versionBoundaryBefore(s string, i int) bool {
	return i == 0 || !isVersionChar(s[i-1])
}

func versionBoundaryAfter(s string, i int) bool {
	switch {
	case i == len(s):
		return true
	case s[i] == '.':
		return i+1 == len(s) || !isDigit(s[i+1])
	default:
		return !isDigit(s[i])
	}
}

func isVersionChar(c byte) bool {
	return c == '.' || isDigit(c)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func checkHTTPURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("is empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%q is malformed", raw)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("%q is not an http(s) URL", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%q has no host", raw)
	}
	return nil
}
