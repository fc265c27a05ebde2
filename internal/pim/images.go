package pim

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// DownloadImage fetches image by name and saves it to dst, creating missing directories.
func (c *Client) DownloadImage(ctx context.Context, name, dst string) error {
	ctx, cancel := context.WithTimeout(ctx, c.downloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.imageURL+escapeImagePath(name)+".JPG", nil)
	if err != nil {
		return fmt.Errorf("%w: can't build http request: %w", ErrAsset, err)
	}
	if c.userAgent != "" {
		req.Header.Add("User-Agent", c.userAgent)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrAsset, err)
	}

	// downloads are bounded by context timeout instead of api requests timeout
	client := *c.client
	client.Timeout = 0

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: can't get http response: %w", ErrAsset, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: image %s: HTTP %d", ErrAsset, name, resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("%w: can't create directory: %w", ErrAsset, err)
	}

	file, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("%w: can't create file: %w", ErrAsset, err)
	}

	if _, err := io.Copy(file, resp.Body); err != nil {
		_ = file.Close()
		_ = os.Remove(dst)
		return fmt.Errorf("%w: can't save image %s: %w", ErrAsset, name, err)
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("%w: can't save image %s: %w", ErrAsset, name, err)
	}

	return nil
}

// escapeImagePath escapes every segment of image name, keeping sub-path separators.
func escapeImagePath(name string) string {
	segments := strings.Split(name, "/")
	for ix, segment := range segments {
		segments[ix] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}
