package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// capture records the last request seen by the test server.
type capture struct {
	method string
	path   string
	query  string
	header http.Header
	body   string
}

func newServer(t *testing.T, status int, body string) (*HTTPClient, *capture) {
	t.Helper()
	c := &capture{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		c.method = r.Method
		c.path = r.URL.Path
		c.query = r.URL.RawQuery
		c.header = r.Header.Clone()
		c.body = string(b)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL), c
}

func TestDo_SuccessPopulatesData(t *testing.T) {
	hc, got := newServer(t, http.StatusOK, `{"id":7,"name":"seven"}`)

	resp := Do[item](context.Background(), hc, "/api/v1/items/7", RequestOptions{})

	require.True(t, resp.OK())
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.Equal(t, item{ID: 7, Name: "seven"}, *resp.Data)
	assert.Equal(t, http.MethodGet, got.method)
	assert.Equal(t, "/api/v1/items/7", got.path)
}

func TestDo_DefaultHeaders(t *testing.T) {
	hc, got := newServer(t, http.StatusOK, `{}`)

	_ = Do[item](context.Background(), hc, "/x", RequestOptions{})

	assert.Equal(t, ContentTypeJSON, got.header.Get(HeaderContentType))
	assert.NotEmpty(t, got.header.Get(HeaderRequestID))
}

func TestDo_CallerHeadersOverrideDefaults(t *testing.T) {
	hc, got := newServer(t, http.StatusOK, `{}`)

	h := http.Header{}
	h.Set(HeaderContentType, "text/plain")
	h.Set(HeaderAuthorization, "Bearer abc")
	h.Set(HeaderRequestID, "req-1")
	_ = Do[item](context.Background(), hc, "/x", RequestOptions{Header: h})

	assert.Equal(t, "text/plain", got.header.Get(HeaderContentType))
	assert.Equal(t, "Bearer abc", got.header.Get(HeaderAuthorization))
	assert.Equal(t, "req-1", got.header.Get(HeaderRequestID))
}

func TestDo_FormBodySkipsJSONContentType(t *testing.T) {
	hc, got := newServer(t, http.StatusOK, `{}`)

	form := NewForm().Add("username", "admin").Add("password", "secret")
	_ = Do[item](context.Background(), hc, "/login", RequestOptions{Method: http.MethodPost, Form: form})

	ct := got.header.Get(HeaderContentType)
	assert.NotContains(t, ct, ContentTypeJSON)
	assert.True(t, strings.HasPrefix(ct, "multipart/form-data; boundary="), ct)
	assert.Contains(t, got.body, `name="username"`)
	assert.Contains(t, got.body, "secret")
}

func TestDo_JSONBody(t *testing.T) {
	hc, got := newServer(t, http.StatusCreated, `{"id":1,"name":"n"}`)

	body, err := JSONBody(item{Name: "n"})
	require.NoError(t, err)
	resp := Do[item](context.Background(), hc, "/items", RequestOptions{Method: http.MethodPost, Body: body})

	require.True(t, resp.OK())
	assert.Equal(t, http.StatusCreated, resp.Status)
	assert.JSONEq(t, `{"id":0,"name":"n"}`, got.body)
}

func TestDo_ErrorMessageExtraction(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"detail string", http.StatusBadRequest, `{"detail":"email exists"}`, "email exists"},
		{"message fallback", http.StatusInternalServerError, `{"message":"boom"}`, "boom"},
		{"detail wins over message", http.StatusConflict, `{"detail":"d","message":"m"}`, "d"},
		{"no known field", http.StatusNotFound, `{"foo":"bar"}`, "An error occurred"},
		{"empty body", http.StatusNotFound, ``, "An error occurred"},
		{"non-object body", http.StatusBadGateway, `["x"]`, "An error occurred"},
		{
			"validation list",
			http.StatusUnprocessableEntity,
			`{"detail":[{"loc":["body","email"],"msg":"field required"},{"loc":["body","username"],"msg":"too short"}]}`,
			"field required; too short",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hc, _ := newServer(t, tc.status, tc.body)

			resp := Do[item](context.Background(), hc, "/x", RequestOptions{})

			assert.Nil(t, resp.Data)
			assert.Equal(t, tc.status, resp.Status)
			assert.Equal(t, tc.want, resp.Error)
		})
	}
}

func TestDo_UnparsableBodyIsStatusZero(t *testing.T) {
	hc, _ := newServer(t, http.StatusOK, `<html>oops</html>`)

	resp := Do[item](context.Background(), hc, "/x", RequestOptions{})

	assert.Nil(t, resp.Data)
	assert.Equal(t, 0, resp.Status)
	assert.NotEmpty(t, resp.Error)
}

func TestDo_EmptySuccessHasNoData(t *testing.T) {
	for _, body := range []string{"", "null", "  \n"} {
		hc, _ := newServer(t, http.StatusOK, body)

		resp := Do[item](context.Background(), hc, "/x", RequestOptions{Method: http.MethodDelete})

		assert.Nil(t, resp.Data)
		assert.Empty(t, resp.Error)
		assert.Equal(t, http.StatusOK, resp.Status)
		assert.False(t, resp.OK())
	}
}

func TestDo_TransportFailureIsStatusZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	resp := Do[item](context.Background(), NewHTTPClient(url), "/x", RequestOptions{})

	assert.Nil(t, resp.Data)
	assert.Equal(t, 0, resp.Status)
	assert.NotEmpty(t, resp.Error)
}

type errDoer struct{ err error }

func (d errDoer) Do(*http.Request) (*http.Response, error) { return nil, d.err }

func TestDo_CustomDoer(t *testing.T) {
	hc := NewHTTPClient("http://backend.invalid/", WithDoer(errDoer{err: errors.New("dial refused")}))

	resp := Do[item](context.Background(), hc, "/x", RequestOptions{})

	assert.Equal(t, 0, resp.Status)
	assert.Equal(t, "dial refused", resp.Error)
	assert.Equal(t, "http://backend.invalid", hc.BaseURL())
}

func TestDo_CancelledContext(t *testing.T) {
	hc, _ := newServer(t, http.StatusOK, `{}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp := Do[item](ctx, hc, "/x", RequestOptions{})

	assert.Equal(t, 0, resp.Status)
	assert.Contains(t, resp.Error, "context canceled")
}

func TestDo_PathAndQueryAppendedVerbatim(t *testing.T) {
	hc, got := newServer(t, http.StatusOK, `[]`)

	resp := Do[[]item](context.Background(), hc, "/api/v1/users/?skip=0&limit=10", RequestOptions{})

	require.True(t, resp.OK())
	assert.Empty(t, *resp.Data)
	assert.Equal(t, "/api/v1/users/", got.path)
	assert.Equal(t, "skip=0&limit=10", got.query)
}
