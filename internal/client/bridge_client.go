// Package client implements the HTTP transport to the bridge server running
// inside the Rhino host process. Every call maps transport failures into the
// same in-band envelope shape the bridge itself returns, so tool code never
// has to distinguish "could not reach the bridge" from "the bridge said no"
// by error channel; it reads the success flag.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/hzargar/rhino-gh-bridge/internal/common"
)

// requestTimeout bounds every bridge call. The bridge executes handlers
// synchronously against the host document, so long calls mean a wedged host,
// not a slow network.
const requestTimeout = 10 * time.Second

// maxResponseSize caps the response body to prevent OOM from a misbehaving bridge.
const maxResponseSize = 10 << 20 // 10MB

// Envelope is the uniform JSON object returned by every bridge call.
// Success is the only guaranteed field; everything else is operation-specific.
type Envelope = map[string]any

// Client issues HTTP calls to the bridge server.
//
// The client performs exactly one attempt per call, no retries. Handlers are
// not guaranteed idempotent, and a timed-out call may still complete host-side,
// so retry policy belongs to the agent, which can see the envelope and decide.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
}

// New creates a client targeting the given bridge base URL (e.g. "http://localhost:8080").
func New(baseURL string, logger *common.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		logger: logger,
	}
}

// BaseURL returns the configured bridge base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Call invokes a bridge endpoint. A nil payload issues a GET; any non-nil
// payload (including an empty map) issues a POST with a JSON body. The
// returned envelope always has a "success" field, even on total unreachability.
func (c *Client) Call(ctx context.Context, endpoint string, payload map[string]any) Envelope {
	var (
		req *http.Request
		err error
	)

	url := c.baseURL + endpoint
	if payload == nil {
		c.logger.Debug().Str("method", "GET").Str("endpoint", endpoint).Msg("bridge request")
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	} else {
		c.logger.Debug().Str("method", "POST").Str("endpoint", endpoint).Msg("bridge request")
		var body []byte
		body, err = json.Marshal(payload)
		if err != nil {
			return errEnvelope(fmt.Sprintf("failed to encode request payload: %v", err))
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if req != nil {
			req.Header.Set("Content-Type", "application/json")
		}
	}
	if err != nil {
		return errEnvelope(fmt.Sprintf("failed to build bridge request: %v", err))
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.Warn().
			Str("endpoint", endpoint).
			Int64("duration_ms", duration.Milliseconds()).
			Str("error", err.Error()).
			Msg("bridge request failed")
		return c.transportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return errEnvelope(fmt.Sprintf("failed to read bridge response: %v", err))
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Int64("duration_ms", duration.Milliseconds()).
		Msg("bridge response")

	var result Envelope
	if err := json.Unmarshal(body, &result); err != nil {
		if resp.StatusCode >= 400 {
			return errEnvelope(fmt.Sprintf("bridge request failed with status %d", resp.StatusCode))
		}
		return errEnvelope(fmt.Sprintf("invalid response from bridge server: %v", err))
	}

	// Non-2xx bodies are still envelopes (404/400/500 from the dispatch layer
	// carry success:false and an error message), so pass them through as-is.
	return result
}

// Status checks the bridge server's liveness endpoint.
func (c *Client) Status(ctx context.Context) Envelope {
	return c.Call(ctx, "/status", nil)
}

// Info fetches the bridge server's endpoint inventory.
func (c *Client) Info(ctx context.Context) Envelope {
	return c.Call(ctx, "/info", nil)
}

// transportError maps a Go transport error to the uniform envelope shape.
// Connection refusal is expected during normal operation (the bridge is only
// up while Rhino runs), so the message tells the user what to start, and where.
func (c *Client) transportError(err error) Envelope {
	if isTimeout(err) {
		return errEnvelope("request to bridge server timed out")
	}
	return errEnvelope(fmt.Sprintf(
		"cannot connect to bridge server at %s. Make sure the bridge server is running inside Rhino", c.baseURL))
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func errEnvelope(msg string) Envelope {
	return Envelope{"success": false, "error": msg}
}
