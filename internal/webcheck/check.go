// Package webcheck probes company webpages and classifies the URLs the
// data tends to accumulate.
package webcheck

import (
	"context"
	"net/http"
	"time"
)

const userAgent = "Mozilla/5.0 (compatible; WebpageChecker/1.0)"

// Checker reports the HTTP status of URLs.
type Checker struct {
	client *http.Client
}

func New(timeout time.Duration) *Checker {
	return &Checker{client: &http.Client{Timeout: timeout}}
}

// Status returns the status code for url, following redirects. HEAD is
// tried first; a GET follows when HEAD fails outright or the server
// rejects the method. -1 means no request completed at all.
func (c *Checker) Status(ctx context.Context, url string) int {
	if st, ok := c.do(ctx, http.MethodHead, url); ok && st != http.StatusMethodNotAllowed {
		return st
	}
	st, ok := c.do(ctx, http.MethodGet, url)
	if !ok {
		return -1
	}
	return st
}

func (c *Checker) do(ctx context.Context, method, url string) (int, bool) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return 0, false
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, false
	}
	resp.Body.Close()
	return resp.StatusCode, true
}

// Broken reports whether status marks a page as gone for our purposes.
func Broken(status int) bool {
	return status == http.StatusNotFound || status == http.StatusLocked
}

// Acceptable reports whether status counts as a working page.
func Acceptable(status int) bool {
	return status >= 200 && status < 400
}
