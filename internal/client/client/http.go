package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskadmin/internal/logging"
	"github.com/google/uuid"
)

const (
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"

	ContentTypeJSON = "application/json"

	defaultErrorMessage = "An error occurred"
)

// Doer is the part of *http.Client the transport uses.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPClient executes requests against one backend base URL.
type HTTPClient struct {
	baseURL string
	doer    Doer
	logger  logging.Logger
}

type Option func(*HTTPClient)

// WithDoer replaces the default http.Client, e.g. with an httptest client.
func WithDoer(d Doer) Option {
	return func(c *HTTPClient) { c.doer = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

// NewHTTPClient returns a transport for baseURL. Paths passed to Do are
// appended verbatim, so baseURL should not end with a slash.
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		doer:    &http.Client{},
		logger:  logging.Discard(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// RequestOptions describes one call. Header values override the defaults
// set by Do. Set either Body (sent as JSON) or Form (sent as
// multipart/form-data), not both.
type RequestOptions struct {
	Method string
	Header http.Header
	Body   io.Reader
	Form   *Form
}

// Form is a multipart/form-data body. Its Content-Type, including the
// boundary, is produced by the multipart writer, so callers must not set one.
type Form struct {
	fields [][2]string
}

func NewForm() *Form {
	return &Form{}
}

func (f *Form) Add(name, value string) *Form {
	f.fields = append(f.fields, [2]string{name, value})
	return f
}

func (f *Form) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, kv := range f.fields {
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", fmt.Errorf("write form field %s: %w", kv[0], err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// JSONBody marshals v for use as RequestOptions.Body.
func JSONBody(v any) (io.Reader, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}
	return bytes.NewReader(b), nil
}

// Do executes the request described by opts against c.BaseURL()+path and
// folds the outcome into a Response. It never returns a Go error.
func Do[T any](ctx context.Context, c *HTTPClient, path string, opts RequestOptions) Response[T] {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	header := make(http.Header)
	body := opts.Body
	if opts.Form != nil {
		formBody, contentType, err := opts.Form.encode()
		if err != nil {
			return Response[T]{Error: err.Error()}
		}
		body = formBody
		header.Set(HeaderContentType, contentType)
	} else {
		header.Set(HeaderContentType, ContentTypeJSON)
	}
	for k, vs := range opts.Header {
		header.Del(k)
		for _, v := range vs {
			header.Add(k, v)
		}
	}
	if header.Get(HeaderRequestID) == "" {
		header.Set(HeaderRequestID, uuid.NewString())
	}

	start := time.Now()
	resp := execute[T](ctx, c, method, path, header, body)

	c.logger.Debug(ctx, "api request",
		"method", method,
		"path", path,
		"status", resp.Status,
		"request_id", header.Get(HeaderRequestID),
		"duration", time.Since(start),
	)
	if resp.Status == 0 {
		c.logger.Warn(ctx, "api request failed", "method", method, "path", path, "error", resp.Error)
	}
	return resp
}

func execute[T any](ctx context.Context, c *HTTPClient, method, path string, header http.Header, body io.Reader) Response[T] {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return Response[T]{Error: err.Error()}
	}
	req.Header = header

	res, err := c.doer.Do(req)
	if err != nil {
		return Response[T]{Error: err.Error()}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return Response[T]{Error: fmt.Sprintf("read response body: %s", err)}
	}
	empty := len(bytes.TrimSpace(raw)) == 0

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		var parsed any
		if !empty {
			if err := json.Unmarshal(raw, &parsed); err != nil {
				return Response[T]{Error: fmt.Sprintf("invalid response body: %s", err)}
			}
		}
		return Response[T]{Error: errorMessage(parsed), Status: res.StatusCode}
	}

	if empty {
		return Response[T]{Status: res.StatusCode}
	}

	var data *T
	if err := json.Unmarshal(raw, &data); err != nil {
		return Response[T]{Error: fmt.Sprintf("invalid response body: %s", err)}
	}
	return Response[T]{Data: data, Status: res.StatusCode}
}

// errorMessage picks the error text out of a parsed error body: detail,
// then message, then a generic fallback.
func errorMessage(body any) string {
	m, ok := body.(map[string]any)
	if !ok {
		return defaultErrorMessage
	}
	if s := detailText(m["detail"]); s != "" {
		return s
	}
	if s, ok := m["message"].(string); ok && s != "" {
		return s
	}
	return defaultErrorMessage
}

// detailText handles both a plain string and a list of validation items
// of the form {"loc": [...], "msg": "..."}.
func detailText(detail any) string {
	switch d := detail.(type) {
	case string:
		return d
	case []any:
		msgs := make([]string, 0, len(d))
		for _, item := range d {
			switch it := item.(type) {
			case string:
				msgs = append(msgs, it)
			case map[string]any:
				if msg, ok := it["msg"].(string); ok && msg != "" {
					msgs = append(msgs, msg)
				}
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
