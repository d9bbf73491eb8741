package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/taskadmin/internal/client/client"
)

// Session supplies the credentials attached to every authorized call.
type Session interface {
	AuthHeader(ctx context.Context) (http.Header, error)
}

// call performs an authorized request and returns the raw envelope. The
// returned error covers local failures only (session read, encoding).
func call[T any](ctx context.Context, hc *client.HTTPClient, s Session, method, path string, body any) (client.Response[T], error) {
	header, err := s.AuthHeader(ctx)
	if err != nil {
		return client.Response[T]{}, fmt.Errorf("read session: %w", err)
	}
	if header == nil {
		header = make(http.Header)
	}

	opts := client.RequestOptions{Method: method, Header: header}
	if body != nil {
		r, err := client.JSONBody(body)
		if err != nil {
			return client.Response[T]{}, err
		}
		opts.Body = r
		header.Set(client.HeaderContentType, client.ContentTypeJSON)
	}

	return client.Do[T](ctx, hc, path, opts), nil
}

// fetch is call followed by Unwrap.
func fetch[T any](ctx context.Context, hc *client.HTTPClient, s Session, method, path string, body any) (T, error) {
	resp, err := call[T](ctx, hc, s, method, path, body)
	if err != nil {
		var zero T
		return zero, err
	}
	return resp.Unwrap()
}

func withQuery(path string, v url.Values) string {
	if len(v) == 0 {
		return path
	}
	return path + "?" + v.Encode()
}
