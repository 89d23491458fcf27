// Package download saves generated images to the local downloads directory.
package download

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// BaseName is the file name used for the first download.
const BaseName = "generated-image"

// ErrUnsupportedURL is returned for image references that are neither
// http(s) nor base64 data URLs.
var ErrUnsupportedURL = errors.New("unsupported image url")

// Store writes images into a directory.
// Layout: <dir>/generated-image.png, generated-image-2.png, ...
type Store struct {
	dir        string
	httpClient *http.Client
}

// NewStore creates a store rooted at dir. If httpClient is nil,
// http.DefaultClient is used.
func NewStore(dir string, httpClient *http.Client) *Store {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Store{dir: dir, httpClient: httpClient}
}

// Save fetches imageURL and writes it under a fresh name. Returns the path
// written.
func (s *Store) Save(ctx context.Context, imageURL string) (string, error) {
	data, err := s.fetch(ctx, imageURL)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating downloads dir: %w", err)
	}
	for i := 1; ; i++ {
		name := BaseName + ".png"
		if i > 1 {
			name = fmt.Sprintf("%s-%d.png", BaseName, i)
		}
		path := filepath.Join(s.dir, name)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("creating %s: %w", path, err)
		}
		_, werr := f.Write(data)
		cerr := f.Close()
		if werr != nil {
			return "", fmt.Errorf("writing %s: %w", path, werr)
		}
		if cerr != nil {
			return "", fmt.Errorf("closing %s: %w", path, cerr)
		}
		return path, nil
	}
}

func (s *Store) fetch(ctx context.Context, imageURL string) ([]byte, error) {
	if strings.HasPrefix(imageURL, "data:") {
		return decodeDataURL(imageURL)
	}
	u, err := url.Parse(imageURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedURL, imageURL)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetching image: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	return data, nil
}

// decodeDataURL handles data:[<mediatype>];base64,<payload>.
func decodeDataURL(raw string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(raw, "data:"), ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("%w: data url must be base64", ErrUnsupportedURL)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decoding data url: %w", err)
	}
	return data, nil
}
