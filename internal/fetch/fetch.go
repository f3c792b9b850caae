// Package fetch downloads compressed corpus archives to disk.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
)

// ProgressFunc reports download progress. total is -1 when the server
// does not declare a content length.
type ProgressFunc func(received, total int64)

type Downloader struct {
	client *http.Client
}

func NewDownloader() *Downloader {
	// No overall timeout: archive downloads run for many minutes and
	// are bounded by ctx instead.
	return &Downloader{client: &http.Client{}}
}

// Download streams url into dest, reporting progress after every chunk.
// When the response declares a content length, a short read is an error.
// On any failure a partially written dest is removed so that a later
// presence check does not mistake it for a complete archive.
func (d *Downloader) Download(ctx context.Context, url, dest string, progress ProgressFunc) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("fetch: create request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch: get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch: get %s: unexpected status %d", url, resp.StatusCode)
	}

	received, err := d.writeBody(resp, dest, progress)
	if err != nil {
		os.Remove(dest)
		return err
	}

	if total := resp.ContentLength; total > 0 && received != total {
		os.Remove(dest)
		return fmt.Errorf("fetch: get %s: received %d of %d bytes", url, received, total)
	}
	return nil
}

func (d *Downloader) writeBody(resp *http.Response, dest string, progress ProgressFunc) (int64, error) {
	f, err := os.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("fetch: create %s: %w", dest, err)
	}
	defer f.Close()

	var received int64
	buf := make([]byte, 32*1024)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			if _, werr := f.Write(buf[:n]); werr != nil {
				return received, fmt.Errorf("fetch: write %s: %w", dest, werr)
			}
			received += int64(n)
			if progress != nil {
				progress(received, resp.ContentLength)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return received, fmt.Errorf("fetch: read body: %w", err)
		}
	}

	if err := f.Close(); err != nil {
		return received, fmt.Errorf("fetch: close %s: %w", dest, err)
	}
	return received, nil
}
