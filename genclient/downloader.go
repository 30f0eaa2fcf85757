package genclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Downloader fetches generated images from the temporary URLs providers
// return and saves them locally for the pipeline to consume.
//
// Thread safety: safe for concurrent use; each download is its own
// request.
type Downloader struct {
	client *http.Client
	dir    string
}

// NewDownloader creates a Downloader writing into dir. A nil client
// selects a default with a 60 second timeout.
func NewDownloader(client *http.Client, dir string) (*Downloader, error) {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	if dir == "" {
		dir = "downloads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("genclient: create downloads directory: %w", err)
	}
	return &Downloader{client: client, dir: dir}, nil
}

// Download fetches url and saves it under the downloads directory as
// filename plus an extension derived from the response Content-Type.
// Returns the path of the written file.
func (d *Downloader) Download(ctx context.Context, url, filename string) (string, error) {
	if url == "" {
		return "", fmt.Errorf("genclient: URL cannot be empty")
	}
	if filename == "" {
		return "", fmt.Errorf("genclient: filename cannot be empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("genclient: create download request: %w", err)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("genclient: download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("genclient: download failed with status %d", resp.StatusCode)
	}

	ext := extensionFromContentType(resp.Header.Get("Content-Type"))
	path := filepath.Join(d.dir, sanitizeFilename(filename)+ext)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("genclient: create image file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, resp.Body); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("genclient: write image data: %w", err)
	}
	return path, nil
}

// extensionFromContentType maps an image MIME type to a file extension,
// defaulting to .png.
func extensionFromContentType(contentType string) string {
	switch {
	case strings.Contains(contentType, "jpeg"), strings.Contains(contentType, "jpg"):
		return ".jpg"
	case strings.Contains(contentType, "webp"):
		return ".webp"
	case strings.Contains(contentType, "gif"):
		return ".gif"
	default:
		return ".png"
	}
}

// sanitizeFilename strips path separators and other characters unsafe
// for filenames.
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_",
		"?", "_", "\"", "_", "<", "_", ">", "_", "|", "_",
	)
	return replacer.Replace(name)
}
