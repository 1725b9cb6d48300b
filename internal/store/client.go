package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Client is the shared transport for every collection: one HTTP client and a
// client-side rate limiter so a burst of console actions cannot hammer the
// remote database.
type Client struct {
	base string
	http *http.Client
	lim  *rate.Limiter
}

func NewClient(baseURL string, rps float64, burst int) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: 30 * time.Second},
		lim:  rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// do sends one request and returns the raw body. Non-2xx responses are
// errors; callers never see a partial read.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	if err := c.lim.Wait(ctx); err != nil {
		return nil, err
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s %s: unexpected status %s", method, path, resp.Status)
	}
	return out, nil
}
