// Package fetch retrieves raw filing text from SEC EDGAR with the
// pacing and retry behavior the host expects: a shared rate limiter,
// exponential backoff on throttle responses, and a layered cache so
// an accession is downloaded at most once.
package fetch

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/hmtrong/catalyst/internal/cache"
)

const (
	maxRetries   = 7
	maxBackoff   = 30 * time.Second
	cacheTTL     = 90 * 24 * time.Hour
	maxBodyBytes = 25 << 20
)

// EdgarClient fetches full-text filing submissions.
type EdgarClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      cache.Cache
	userAgent  string
	verbose    bool
}

// NewEdgarClient creates a client. EDGAR requires a descriptive
// User-Agent with a contact address; requests without one get cut off.
func NewEdgarClient(userAgent string, rps float64, c cache.Cache, verbose bool) *EdgarClient {
	if rps <= 0 {
		rps = 2
	}
	return &EdgarClient{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		cache:      c,
		userAgent:  userAgent,
		verbose:    verbose,
	}
}

// FilingURL builds the full-submission text URL for a filing. CIK
// leading zeros are stripped; accession dashes are kept in the file
// name but stripped in the directory segment.
func FilingURL(cik, accession string) string {
	cik = strings.TrimLeft(strings.TrimSpace(cik), "0")
	if cik == "" {
		cik = "0"
	}
	acc := strings.TrimSpace(accession)
	accDir := strings.ReplaceAll(acc, "-", "")
	return fmt.Sprintf("https://www.sec.gov/Archives/edgar/data/%s/%s/%s.txt", cik, accDir, acc)
}

// FetchFiling returns the full submission text for cik/accession,
// serving from cache when possible. The returned bool reports a cache
// hit.
func (c *EdgarClient) FetchFiling(ctx context.Context, cik, accession string) (string, bool, error) {
	key := cache.FilingKey(cik, accession)
	if c.cache != nil {
		if data, ok := c.cache.Get(key); ok {
			return string(data), true, nil
		}
	}

	body, err := c.get(ctx, FilingURL(cik, accession))
	if err != nil {
		return "", false, err
	}

	if c.cache != nil {
		if err := c.cache.Set(key, []byte(body), cacheTTL); err != nil && c.verbose {
			fmt.Printf("Warning: cache write failed for %s: %v\n", accession, err)
		}
	}
	return body, false, nil
}

// get performs a rate-limited GET with backoff on 403/429/503. EDGAR
// throttles with 403 rather than 429 when it dislikes the client, so
// both are retried the same way.
func (c *EdgarClient) get(ctx context.Context, url string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit wait: %w", err)
		}

		body, retry, err := c.once(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retry {
			return "", err
		}

		backoff := time.Duration(1<<uint(attempt)) * time.Second
		backoff += time.Duration(rand.Int63n(int64(time.Second)))
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
		if c.verbose {
			fmt.Printf("Retry %d for %s after %v: %v\n", attempt+1, url, backoff, err)
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(backoff):
		}
	}
	return "", fmt.Errorf("fetch %s: %w", url, lastErr)
}

func (c *EdgarClient) once(ctx context.Context, url string) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/plain,text/html;q=0.9,*/*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", true, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusForbidden, http.StatusTooManyRequests, http.StatusServiceUnavailable:
		io.Copy(io.Discard, resp.Body)
		return "", true, fmt.Errorf("throttled: %d %s", resp.StatusCode, resp.Status)
	default:
		io.Copy(io.Discard, resp.Body)
		return "", false, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", true, fmt.Errorf("read body: %w", err)
	}
	return string(body), false, nil
}
