package assist

import (
	"bytes"
	"context"
	"ecosort/app/client/gemini"
	"ecosort/app/config"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/samber/do"
)

// Client talks to the relay's /api/gemini route. Rate-limited attempts
// are retried with doubling delays, every other failure is final.
type Client struct {
	endpoint   string
	maxRetries int
	baseDelay  time.Duration

	httpClient *http.Client
	sleep      func(ctx context.Context, d time.Duration) error
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return New(cfg.Client.ServerURL, cfg.Client.MaxRetries, time.Duration(cfg.Client.BaseDelayMS)*time.Millisecond), nil
}

func New(serverURL string, maxRetries int, baseDelay time.Duration) *Client {
	return &Client{
		endpoint:   strings.TrimSuffix(serverURL, "/") + "/api/gemini",
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		httpClient: &http.Client{
			Timeout: time.Minute,
		},
		sleep: sleepContext,
	}
}

// Generate sends a composed prompt through the relay and returns the
// model text of the first candidate.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(gemini.UserRequest(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	for attempt := 0; ; attempt++ {
		status, body, err := c.post(ctx, payload)
		if err != nil {
			return "", err
		}

		if status == http.StatusTooManyRequests {
			if attempt >= c.maxRetries {
				return "", ErrRateLimited
			}

			// 1s, 2s, 4s with the default base delay
			if err := c.sleep(ctx, c.baseDelay<<attempt); err != nil {
				return "", err
			}

			continue
		}

		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			return "", &UpstreamError{
				Status: status,
				Body:   string(body),
			}
		}

		var res gemini.Response
		if err := json.Unmarshal(body, &res); err != nil {
			return "", fmt.Errorf("failed to decode response: %w", err)
		}

		text, ok := res.FirstText()
		if !ok {
			return "", errors.New("response contains no candidate text")
		}

		return text, nil
	}
}

func (c *Client) post(ctx context.Context, payload []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to call relay: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read relay response: %w", err)
	}

	return res.StatusCode, body, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
