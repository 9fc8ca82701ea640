// Package artifact downloads release artifacts, computes their digests and
// inspects their contents.
package artifact

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrChecksumMismatch is returned when an artifact's digest differs from the
// expected one.
var ErrChecksumMismatch = errors.New("SHA256 hash mismatch")

// CalculateSHA256 calculates the SHA256 hash of an io.Reader.
func CalculateSHA256(body io.Reader) (sha string, err error) {
	hash := sha256.New()
	_, err = io.Copy(hash, body)
	if err != nil {
		return
	}
	sha = fmt.Sprintf("%x", hash.Sum(nil))
	return
}

// Verify recomputes the digest of the file at path and compares it with
// expectedSHA256, ignoring case.
func Verify(path, expectedSHA256 string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	calculatedSHA256, err := CalculateSHA256(file)
	if err != nil {
		return err
	}

	if !strings.EqualFold(calculatedSHA256, expectedSHA256) {
		return fmt.Errorf("%w, wanted %s, got %s", ErrChecksumMismatch, expectedSHA256, calculatedSHA256)
	}
	return nil
}
