// Package solr is a thin HTTP client for the SolrCloud Collections, Update
// and Select APIs. It adds no protocol logic of its own: every method is a
// request/response pair against the stock Solr endpoints.
package solr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds each request when the profile does not set one.
const DefaultTimeout = 30 * time.Second

// Client talks to a Solr node identified by its base URL, e.g.
// http://localhost:8983/solr.
type Client struct {
	baseURL  string
	username string
	password string
	http     *http.Client
}

// NewClient builds a client for the given base URL. Username and password
// are optional; when both are set every request carries basic auth.
func NewClient(baseURL, username, password string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		http:     &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the normalized base URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// get issues a GET to path (relative to the base URL) with query params and
// decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	return c.do(req, out)
}

// postJSON issues a POST with a JSON body and decodes the JSON response.
func (c *Client) postJSON(ctx context.Context, path string, params url.Values, body any, out any) error {
	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(payload)))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	if c.username != "" && c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", req.URL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", req.URL, err)
	}

	// Solr reports errors both via HTTP status and via the error block in
	// the JSON body; prefer the body message when it parses.
	if resp.StatusCode >= 400 {
		if msg := errorMessage(body); msg != "" {
			return fmt.Errorf("solr returned %s: %s", resp.Status, msg)
		}
		return fmt.Errorf("solr returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", req.URL, err)
	}
	return nil
}

// responseHeader is the envelope every Solr JSON response starts with.
type responseHeader struct {
	Status int `json:"status"`
}

type errorBlock struct {
	Msg  string `json:"msg"`
	Code int    `json:"code"`
}

func errorMessage(body []byte) string {
	var envelope struct {
		Error *errorBlock `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error == nil {
		return ""
	}
	return envelope.Error.Msg
}

// checkEnvelope turns a non-zero response status into an error carrying the
// server's message.
func checkEnvelope(header responseHeader, errBlock *errorBlock, action string) error {
	if header.Status == 0 && errBlock == nil {
		return nil
	}
	if errBlock != nil && errBlock.Msg != "" {
		return fmt.Errorf("%s failed: %s", action, errBlock.Msg)
	}
	return fmt.Errorf("%s failed with status %d", action, header.Status)
}
