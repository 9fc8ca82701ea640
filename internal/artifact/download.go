package artifact

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/formulactl/formulactl/internal/logger"
	"github.com/schollz/progressbar/v3"
)

// StatusError is returned when a download URL answers with anything but
// 200 OK.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d for %s", e.StatusCode, e.URL)
}

// Download is a downloaded artifact.
type Download struct {
	URL    string
	Path   string
	SHA256 string
	Size   int64
}

// Head returns the status code of a HEAD request for url.
func Head(ctx context.Context, client *http.Client, url string) (statusCode int, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return
	}

	resp, err := client.Do(req)
	if err != nil {
		return
	}
	resp.Body.Close()

	statusCode = resp.StatusCode
	return
}

// Fetch downloads url into dir, keeping the URL's file name, and computes the
// SHA256 of the artifact while writing it. Progress is drawn on progress,
// which may be nil.
func Fetch(
	ctx context.Context, client *http.Client, url, dir string, progress io.Writer,
) (download Download, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return
	}

	logger.Debug("GET %s", url)
	resp, err := client.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = &StatusError{URL: url, StatusCode: resp.StatusCode}
		return
	}

	// Create the file
	out, err := os.Create(filepath.Join(dir, path.Base(req.URL.Path)))
	if err != nil {
		return
	}
	defer out.Close()

	if progress == nil {
		progress = io.Discard
	}
	bar := progressbar.NewOptions64(resp.ContentLength,
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("downloading "+path.Base(out.Name())),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)

	// Write the body to file while hashing it
	hash := sha256.New()
	size, err := io.Copy(io.MultiWriter(out, hash, bar), resp.Body)
	if err != nil {
		return
	}
	_ = bar.Finish()

	download = Download{
		URL:    url,
		Path:   out.Name(),
		SHA256: fmt.Sprintf("%x", hash.Sum(nil)),
		Size:   size,
	}
	logger.Debug("downloaded %s (%d bytes, sha256 %s)", url, size, download.SHA256)

	return
}
