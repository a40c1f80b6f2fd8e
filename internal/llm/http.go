package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ppiankov/intentia/internal/util"
)

// StatusError is a non-2xx reply from a provider
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.Code, e.Body)
}

// Temporary reports whether retrying may succeed
func (e *StatusError) Temporary() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

var retryBackoff = 250 * time.Millisecond

func newHTTPClient(config Config, defaultTimeout time.Duration) *http.Client {
	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: util.NewTransport(config.HTTPProxy, config.HTTPSProxy, config.NoProxy),
	}
}

// retry runs fn until it succeeds, fails permanently, or attempts run out
func retry(ctx context.Context, maxRetries int, temporary func(error) bool, fn func() error) error {
	if maxRetries < 0 {
		maxRetries = 0
	}

	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryBackoff * time.Duration(attempt)):
			}
		}

		if err = fn(); err == nil || !temporary(err) {
			return err
		}
	}
	return err
}

// isTemporary treats transport failures, 429 and 5xx as retryable
func isTemporary(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}
	return !errors.Is(err, errDecode)
}

var errDecode = errors.New("decode response")

// postJSON sends body as JSON and decodes a 2xx reply into out
func postJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, body, out any, maxRetries int) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	return retry(ctx, maxRetries, isTemporary, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("%w: create request: %v", errDecode, err)
		}
		req.Header.Set("Content-Type", "application/json")
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("execute request: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return &StatusError{Code: resp.StatusCode, Body: string(respBody)}
		}

		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("%w: %v", errDecode, err)
		}
		return nil
	})
}

// getOK reports whether a GET on url answers 200
func getOK(ctx context.Context, client *http.Client, url string, headers map[string]string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("connect %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode}
	}
	return nil
}
