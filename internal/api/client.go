// Package api is the single choke point for calls to the chapter meal API
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/KirkDiggler/chapterplate/internal/common/uuid"
)

// Client talks to the meal API. A Client without an Authenticator sends
// anonymous requests; use WithAuth to bind one to a principal.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *Metrics
	uuid       uuid.UUID
	auth       Authenticator
}

// New creates a new API client
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.BaseURL == "" {
		return nil, ErrNoBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	gen := cfg.UUIDGenerator
	if gen == nil {
		gen = uuid.New()
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
		metrics:    cfg.Metrics,
		uuid:       gen,
	}, nil
}

// WithAuth returns a copy of the client that reads its bearer token from a,
// and reports a rejected token back to it
func (c *Client) WithAuth(a Authenticator) *Client {
	clone := *c
	clone.auth = a
	return &clone
}

// Do sends req and decodes a successful JSON response into out. Empty and
// non-JSON success bodies leave out untouched.
func (c *Client) Do(ctx context.Context, req *Request, out any) error {
	if req == nil {
		return ErrNilRequest
	}
	if !strings.HasPrefix(req.Path, "/") {
		return ErrNoPath
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	body, contentType, err := encodeBody(req)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	for k, v := range req.Header {
		httpReq.Header.Set(k, v)
	}

	requestID := c.uuid.NewUUID()
	httpReq.Header.Set("X-Request-ID", requestID)

	authenticated := false
	if c.auth != nil {
		token, err := c.auth.Token(ctx)
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
		if token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
			authenticated = true
		}
	}

	log := c.logger.With("method", method, "path", req.Path, "request_id", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// a cancelled view is not a connectivity problem
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(ctxErr, context.DeadlineExceeded) {
			return ctxErr
		}
		c.metrics.observe(method, "error", time.Since(start))
		log.Warn("api request failed", "error", err)
		return &ConnectivityError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.observe(method, "error", time.Since(start))
		log.Warn("failed to read api response", "status", resp.StatusCode, "error", err)
		return &ConnectivityError{Err: err}
	}
	c.metrics.observe(method, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{
			Status:  resp.StatusCode,
			Message: errorMessage(data, resp.StatusCode),
		}
		log.Debug("api returned error", "status", resp.StatusCode, "message", apiErr.Message)

		if resp.StatusCode == http.StatusUnauthorized && authenticated {
			c.auth.Invalidate(ctx)
		}
		return apiErr
	}

	log.Debug("api request complete", "status", resp.StatusCode, "elapsed", time.Since(start))
	return decode(data, out)
}

func encodeBody(req *Request) (io.Reader, string, error) {
	if req.Multipart != nil {
		return encodeMultipart(req.Multipart)
	}
	if req.Body == nil {
		return nil, "", nil
	}

	data, err := json.Marshal(req.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal request body: %w", err)
	}
	return bytes.NewReader(data), "application/json", nil
}

func encodeMultipart(form *Form) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, field := range form.Fields {
		if err := w.WriteField(field.Name, field.Value); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %s: %w", field.Name, err)
		}
	}

	for _, file := range form.Files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename=%q`, file.Field, file.Filename))
		contentType := file.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)

		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create file part %s: %w", file.Field, err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, "", fmt.Errorf("failed to write file part %s: %w", file.Field, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// errorMessage prefers the server's {"error": "..."} field
func errorMessage(data []byte, status int) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return fmt.Sprintf("request failed with status %d", status)
}

func decode(data []byte, out any) error {
	if out == nil {
		return nil
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return nil
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
