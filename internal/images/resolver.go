package images

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/mstanchev/pricewatch-backend/pkg/config"
)

var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
	".avif": {},
	".svg":  {},
}

var ogImagePattern = regexp.MustCompile(
	`<meta[^>]+(?:property|name)=["']og:image["'][^>]+content=["']([^"']+)["']|` +
		`<meta[^>]+content=["']([^"']+)["'][^>]+(?:property|name)=["']og:image["']`)

// Resolver turns a product page URL into a direct image URL by scraping the
// page's og:image tag. Direct image URLs pass through untouched.
type Resolver struct {
	client *http.Client
	cfg    config.ImagesConfig
}

// NewResolver builds a resolver with its own timeout-bound HTTP client.
func NewResolver(cfg config.ImagesConfig) *Resolver {
	return &Resolver{
		client: &http.Client{Timeout: cfg.ResolveTimeout},
		cfg:    cfg,
	}
}

// Resolve returns a direct image URL for the given page. The submitted URL
// is returned unchanged when it already points at an image; otherwise the
// page is fetched and its og:image content extracted.
func (r *Resolver) Resolve(ctx context.Context, pageURL string) (string, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("unsupported url %q", pageURL)
	}

	if isDirectImage(parsed) {
		return pageURL, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("build image page request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch image page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image page returned status %d", resp.StatusCode)
	}
	if contentType := resp.Header.Get("Content-Type"); strings.HasPrefix(contentType, "image/") {
		return pageURL, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, r.cfg.MaxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read image page: %w", err)
	}

	found := extractOGImage(string(body))
	if found == "" {
		return "", fmt.Errorf("no og:image tag on %s", parsed.Host)
	}
	return resolveRelative(parsed, found), nil
}

func isDirectImage(u *url.URL) bool {
	ext := strings.ToLower(path.Ext(u.Path))
	_, ok := imageExtensions[ext]
	return ok
}

func extractOGImage(body string) string {
	match := ogImagePattern.FindStringSubmatch(body)
	if match == nil {
		return ""
	}
	if match[1] != "" {
		return strings.TrimSpace(match[1])
	}
	return strings.TrimSpace(match[2])
}

func resolveRelative(base *url.URL, found string) string {
	ref, err := url.Parse(found)
	if err != nil {
		return found
	}
	return base.ResolveReference(ref).String()
}
