package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/dmitrijs2005/agroassist/internal/client/envelope"
	"github.com/dmitrijs2005/agroassist/internal/common"
)

// HTTPClient implements Client over net/http.
type HTTPClient struct {
	bases  map[Base]string
	hc     *http.Client
	tokens TokenSource
}

// NewHTTPClient returns a client resolving BaseAuth paths against authURL
// and BaseAI paths against aiURL. tokens may be nil when no request is
// authenticated.
func NewHTTPClient(authURL, aiURL string, tokens TokenSource) *HTTPClient {
	return &HTTPClient{
		bases: map[Base]string{
			BaseAuth: strings.TrimRight(authURL, "/"),
			BaseAI:   strings.TrimRight(aiURL, "/"),
		},
		hc:     &http.Client{},
		tokens: tokens,
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func (c *HTTPClient) WithHTTPClient(hc *http.Client) *HTTPClient {
	c.hc = hc
	return c
}

func (c *HTTPClient) Do(ctx context.Context, req Request) (*Response, error) {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	httpReq, err := c.build(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", ErrUnavailable, err)
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}, nil
}

// Ping issues GET /health against the AI backend.
func (c *HTTPClient) Ping(ctx context.Context) error {
	resp, err := c.Do(ctx, Request{Method: http.MethodGet, Base: BaseAI, Path: "/health"})
	if err != nil {
		return err
	}
	if !resp.OK() {
		return fmt.Errorf("%w: health check returned %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}

func (c *HTTPClient) build(ctx context.Context, req Request) (*http.Request, error) {
	base, ok := c.bases[req.Base]
	if !ok || base == "" {
		return nil, fmt.Errorf("%w: no base URL for %s backend", ErrBadRequest, req.Base)
	}
	if req.JSON != nil && req.Form != nil {
		return nil, fmt.Errorf("%w: both JSON and multipart body set", ErrBadRequest)
	}

	method := req.Method
	if method == "" {
		method = http.MethodPost
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case req.JSON != nil:
		b, err := envelope.Marshal(req.JSON)
		if err != nil {
			return nil, fmt.Errorf("%w: encoding JSON: %w", ErrBadRequest, err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	case req.Form != nil:
		b, ct, err := encodeMultipart(req.Form)
		if err != nil {
			return nil, fmt.Errorf("%w: encoding multipart: %w", ErrBadRequest, err)
		}
		body = bytes.NewReader(b)
		contentType = ct
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, base+req.Path, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if req.Authenticated && c.tokens != nil {
		if token := c.tokens.AccessToken(); token != "" {
			httpReq.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
		}
	}

	return httpReq, nil
}

func encodeMultipart(form *Multipart) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range form.Files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.Field, f.FileName))
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, "", err
		}
	}

	for _, f := range form.Fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// IsUnavailable reports whether err is a transport-level failure.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
