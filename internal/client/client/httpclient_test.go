package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) AccessToken() string { return string(s) }

func TestHTTPClient_JSONRequest(t *testing.T) {
	var (
		gotMethod, gotPath, gotCT, gotAuth, gotReqID string
		gotBody                                      map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		gotCT = r.Header.Get("Content-Type")
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, `{"success":true}`)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL+"/", "http://unused", staticToken("tok"))

	resp, err := c.Do(context.Background(), Request{
		Method:        http.MethodPut,
		Base:          BaseAuth,
		Path:          "/auth/update-password",
		JSON:          map[string]string{"newPassword": "s3cretpass"},
		Headers:       map[string]string{"X-Request-ID": "req-1"},
		Authenticated: true,
	})
	require.NoError(t, err)

	assert.True(t, resp.OK())
	assert.JSONEq(t, `{"success":true}`, string(resp.Body))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/auth/update-password", gotPath)
	assert.Equal(t, "application/json", gotCT)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "req-1", gotReqID)
	assert.Equal(t, "s3cretpass", gotBody["newPassword"])
}

func TestHTTPClient_UnauthenticatedRequestHasNoToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, srv.URL, staticToken("tok"))
	_, err := c.Do(context.Background(), Request{Base: BaseAI, Path: "/govscheme", JSON: map[string]string{"query": "q"}})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestHTTPClient_Multipart(t *testing.T) {
	var (
		gotLang, gotFileName, gotFileType string
		gotData                           []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotLang = r.FormValue("lang")
		f, hdr, err := r.FormFile("image")
		require.NoError(t, err)
		defer f.Close()
		gotFileName = hdr.Filename
		gotFileType = hdr.Header.Get("Content-Type")
		gotData, _ = io.ReadAll(f)
		_, _ = io.WriteString(w, `{"disease":"Rust"}`)
	}))
	defer srv.Close()

	c := NewHTTPClient("", srv.URL, nil)
	resp, err := c.Do(context.Background(), Request{
		Base: BaseAI,
		Path: "/plant-disease",
		Form: &Multipart{
			Fields: []Field{{Name: "lang", Value: "hi"}},
			Files:  []FilePart{{Field: "image", FileName: "leaf.png", ContentType: "image/png", Data: []byte{1, 2, 3}}},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.Equal(t, "hi", gotLang)
	assert.Equal(t, "leaf.png", gotFileName)
	assert.Equal(t, "image/png", gotFileType)
	assert.Equal(t, []byte{1, 2, 3}, gotData)
}

func TestHTTPClient_ErrorStatusIsAResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"Latitude and longitude are required"}`)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, srv.URL, nil)
	resp, err := c.Do(context.Background(), Request{Base: BaseAI, Path: "/x"})
	require.NoError(t, err)
	assert.False(t, resp.OK())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHTTPClient_TimeoutIsUnavailable(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewHTTPClient(srv.URL, srv.URL, nil)
	_, err := c.Do(context.Background(), Request{Base: BaseAI, Path: "/slow", Timeout: 50 * time.Millisecond})
	require.ErrorIs(t, err, ErrUnavailable)
	assert.True(t, IsUnavailable(err))
}

func TestHTTPClient_ConnectionRefusedIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(url, url, nil)
	_, err := c.Do(context.Background(), Request{Base: BaseAuth, Path: "/auth/login"})
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPClient_BadRequests(t *testing.T) {
	c := NewHTTPClient("", "http://ai", nil)

	_, err := c.Do(context.Background(), Request{Base: BaseAuth, Path: "/auth/login"})
	require.ErrorIs(t, err, ErrBadRequest)

	_, err = c.Do(context.Background(), Request{Base: BaseAI, Path: "/x", JSON: map[string]string{}, Form: &Multipart{}})
	require.ErrorIs(t, err, ErrBadRequest)
}

func TestHTTPClient_Ping(t *testing.T) {
	var healthy atomic.Bool
	healthy.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" || !healthy.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, `{"status":"ok"}`)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, srv.URL, nil)
	require.NoError(t, c.Ping(context.Background()))

	healthy.Store(false)
	require.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}
