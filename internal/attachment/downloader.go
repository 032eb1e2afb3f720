package attachment

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Downloader fetches agent attachments into a local cache directory and
// produces the remote URL -> local path map consumed by RewriteURLs.
type Downloader struct {
	cacheDir   string
	apiKey     string
	httpClient *http.Client
}

// NewDownloader creates a downloader. An empty cacheDir falls back to a
// directory under the system temp dir. The API key, when set, is sent as a
// bearer token because h2oGPTe attachment URLs require session auth.
func NewDownloader(cacheDir, apiKey string) (*Downloader, error) {
	if cacheDir == "" {
		cacheDir = filepath.Join(os.TempDir(), "h2ogpte-attachments")
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create attachment cache dir: %w", err)
	}
	return &Downloader{
		cacheDir: cacheDir,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// DownloadAll fetches every URL and returns the URL -> local path map.
// Individual failures are logged and skipped so one broken attachment does
// not lose the whole answer.
func (d *Downloader) DownloadAll(ctx context.Context, urls []string) map[string]string {
	result := make(map[string]string, len(urls))
	for _, url := range urls {
		localPath, err := d.Download(ctx, url)
		if err != nil {
			log.Printf("[Attachments] Failed to download %s: %v", url, err)
			continue
		}
		result[url] = localPath
	}
	return result
}

// Download fetches a single attachment, reusing the cached copy when one
// exists for the same URL.
func (d *Downloader) Download(ctx context.Context, url string) (string, error) {
	localPath := filepath.Join(d.cacheDir, d.cacheFilename(url))
	if _, err := os.Stat(localPath); err == nil {
		return localPath, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	if d.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+d.apiKey)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	file, err := os.Create(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, resp.Body); err != nil {
		os.Remove(localPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return localPath, nil
}

// cacheFilename derives a stable name from the URL: a short content hash of
// the URL plus the original base name so the extension survives.
func (d *Downloader) cacheFilename(url string) string {
	sum := sha256.Sum256([]byte(url))
	base := url
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.IndexAny(base, "?#"); i >= 0 {
		base = base[:i]
	}
	if base == "" {
		base = "attachment"
	}
	return fmt.Sprintf("%x_%s", sum[:6], base)
}
