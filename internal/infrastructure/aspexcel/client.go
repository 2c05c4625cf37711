// Package aspexcel talks to the remote ASPExcel force calculator.
package aspexcel

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/berlivn/eriflex-api/internal/domain"
	"github.com/berlivn/eriflex-api/internal/domain/entity"
)

const maxBodyBytes = 1 << 20

// Config client settings.
type Config struct {
	URL       string
	Timeout   time.Duration
	UserAgent string
}

// Client posts calculation parameters as query values and returns the body text.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient builds the client. The timeout bounds every call.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{cfg: cfg, httpClient: &http.Client{Timeout: cfg.Timeout}}
}

// Query encodes p the way the calculator expects (integers only).
func Query(p entity.CalcParams) url.Values {
	v := url.Values{}
	v.Set("W", strconv.Itoa(p.W))
	v.Set("T", strconv.Itoa(p.T))
	v.Set("B", strconv.Itoa(p.B))
	v.Set("Angle", strconv.Itoa(p.Angle))
	v.Set("a", strconv.Itoa(p.A))
	v.Set("Icc", strconv.Itoa(p.Icc))
	v.Set("Force", strconv.Itoa(p.Force))
	v.Set("NbrePhase", strconv.Itoa(p.NbrePhase))
	return v
}

// Calculate returns the calculator answer. Non-200 answers and transport failures wrap ErrUpstream.
func (c *Client) Calculate(ctx context.Context, p entity.CalcParams) (string, error) {
	u, err := url.Parse(c.cfg.URL)
	if err != nil {
		return "", fmt.Errorf("aspexcel: parse url: %w", err)
	}
	u.RawQuery = Query(p).Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("aspexcel: build request: %w", err)
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", domain.ErrUpstream, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", domain.ErrUpstream, resp.StatusCode)
	}
	return strings.TrimSpace(string(body)), nil
}
