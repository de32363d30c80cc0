package gemini

import (
	"bytes"
	"context"
	"ecosort/app/config"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/samber/do"
)

// Upstream calls the generateContent endpoint on behalf of the relay.
// It is the only place the API key is attached to a request.
type Upstream struct {
	endpoint   string
	httpClient *http.Client
}

func NewUpstream(di *do.Injector) (*Upstream, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return New(cfg.Server.UpstreamURL, cfg.Server.APIKey, time.Duration(cfg.Server.TimeoutSeconds)*time.Second)
}

func New(upstreamURL, apiKey string, timeout time.Duration) (*Upstream, error) {
	endpoint, err := url.Parse(upstreamURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse upstream url: %w", err)
	}

	query := endpoint.Query()
	query.Set("key", apiKey)
	endpoint.RawQuery = query.Encode()

	return &Upstream{
		endpoint: endpoint.String(),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Generate forwards a raw generateContent payload upstream and returns
// the status code and body verbatim. Non-2xx statuses are not errors
// here, the caller decides how to relay them.
func (u *Upstream) Generate(ctx context.Context, payload []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create upstream request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	res, err := u.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to call upstream: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read upstream response: %w", err)
	}

	return res.StatusCode, body, nil
}
