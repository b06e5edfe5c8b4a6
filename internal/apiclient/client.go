// Package apiclient is the single transport used to reach the backend.
// Every call resolves to a Result value; no failure mode surfaces as a
// panic or a raw transport error.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pedrohsales/comparaprecos/internal/apperrors"
	"github.com/pedrohsales/comparaprecos/internal/errormsg"
	"github.com/pedrohsales/comparaprecos/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

const maxResponseBytes = 4 << 20

// TokenSource yields the current session token, when one exists.
type TokenSource interface {
	AuthToken(ctx context.Context) (string, bool)
}

type Config struct {
	BaseURL        string
	Timeout        time.Duration
	DefaultHeaders map[string]string
}

// Result is the uniform envelope of every backend call. Exactly one of
// Data/Error is meaningful depending on Success; Status is set only for
// HTTP-level failures.
type Result struct {
	Success bool
	Status  int
	Data    json.RawMessage
	Error   string
}

// Decode unmarshals the success payload into out.
func (r Result) Decode(out any) error {
	return json.Unmarshal(r.Data, out)
}

// Err converts a failed Result into a tagged error, nil when Success.
func (r Result) Err() error {
	if r.Success {
		return nil
	}
	if r.Status > 0 {
		return apperrors.HTTP(r.Status, r.Error)
	}
	return apperrors.New(apperrors.KindConnectivity, r.Error)
}

type Client struct {
	baseURL string
	headers map[string]string
	tokens  TokenSource
	httpc   *http.Client
}

// New builds a client for the configured base URL. The timeout defaults
// to 10s and bounds every call unless the caller's context is shorter.
func New(cfg Config, tokens TokenSource) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	headers := map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
	for k, v := range cfg.DefaultHeaders {
		headers[k] = v
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		headers: headers,
		tokens:  tokens,
		httpc:   &http.Client{Timeout: timeout},
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do executes one request. Transport failures, HTTP failures and
// malformed success bodies all come back inside the Result.
func (c *Client) Do(ctx context.Context, method, endpoint string, body any) Result {
	start := time.Now()

	ctx, span := telemetry.StartSpan(ctx, "api.request",
		attribute.String("http.method", method),
		attribute.String("api.endpoint", endpoint),
	)
	defer span.End()

	res := c.do(ctx, method, endpoint, body)

	span.SetAttributes(attribute.Int("http.status_code", res.Status))
	telemetry.RecordOutbound(ctx, method, endpoint, res.Status, time.Since(start))
	if !res.Success {
		telemetry.LogWarn(ctx, "api request failed",
			telemetry.LogString("http.method", method),
			telemetry.LogString("api.endpoint", endpoint),
			telemetry.LogInt("http.status_code", res.Status),
			telemetry.LogString("error.message", res.Error),
		)
	}
	return res
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any) Result {
	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return Result{Success: false, Error: errormsg.Generic}
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, bodyReader)
	if err != nil {
		return Result{Success: false, Error: errormsg.Generic}
	}

	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if c.tokens != nil {
		if token, ok := c.tokens.AuthToken(ctx); ok && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return Result{Success: false, Error: errormsg.Connectivity(c.baseURL)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Result{Success: false, Error: errormsg.Connectivity(c.baseURL)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{
			Success: false,
			Status:  resp.StatusCode,
			Error:   errormsg.FromResponse(resp.StatusCode, respBody),
		}
	}

	data := bytes.TrimSpace(respBody)
	if len(data) > 0 && !json.Valid(data) {
		return Result{Success: false, Error: errormsg.Generic}
	}
	return Result{Success: true, Data: data}
}

// Get issues a GET, appending params as a query string when present.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values) Result {
	if len(params) > 0 {
		endpoint = endpoint + "?" + params.Encode()
	}
	return c.Do(ctx, http.MethodGet, endpoint, nil)
}

func (c *Client) Post(ctx context.Context, endpoint string, body any) Result {
	return c.Do(ctx, http.MethodPost, endpoint, body)
}

func (c *Client) Put(ctx context.Context, endpoint string, body any) Result {
	return c.Do(ctx, http.MethodPut, endpoint, body)
}

func (c *Client) Patch(ctx context.Context, endpoint string, body any) Result {
	return c.Do(ctx, http.MethodPatch, endpoint, body)
}

func (c *Client) Delete(ctx context.Context, endpoint string) Result {
	return c.Do(ctx, http.MethodDelete, endpoint, nil)
}
