package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Do_JSONResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"a":1}`))
	}))
	defer server.Close()

	client := New()

	res := client.Do(context.Background(), server.URL, nil)

	require.NoError(t, res.Err)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, map[string]any{"a": float64(1)}, res.Body)
	assert.Equal(t, "application/json; charset=utf-8", res.Headers["Content-Type"])
	assert.True(t, res.IsSuccess())
}

func TestClient_Do_QueryParams(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := New()

	res := client.Do(context.Background(), server.URL, &Options{
		Query: url.Values{"page": {"1"}, "page-size": {"20"}},
	})

	require.NoError(t, res.Err)
	assert.Equal(t, "page=1&page-size=20", gotQuery, "keys sorted, values escaped")
	assert.Contains(t, res.Debug.URL, "page=1&page-size=20")
}

func TestClient_Do_QueryParamsEscaped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "a b&c", r.URL.Query().Get("q"))
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := New()

	res := client.Do(context.Background(), server.URL, &Options{
		Query: url.Values{"q": {"a b&c"}},
	})

	require.NoError(t, res.Err)
}

func TestClient_Do_WireHeaders(t *testing.T) {
	tests := []struct {
		name            string
		opts            *Options
		wantContentType string
		wantAccept      string
	}{
		{
			name:            "given GET, then no Content-Type on the wire",
			opts:            &Options{ContentType: TagJSON},
			wantContentType: "",
			wantAccept:      "application/json",
		},
		{
			name:            "given POST with transit body tag, then transit Content-Type",
			opts:            &Options{Method: "POST", ContentType: TagTransitJSON, Body: "x"},
			wantContentType: "application/transit+json",
			wantAccept:      "application/json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotContentType, gotAccept string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotContentType = r.Header.Get("Content-Type")
				gotAccept = r.Header.Get("Accept")
				w.Write([]byte("ok"))
			}))
			defer server.Close()

			client := New()

			res := client.Do(context.Background(), server.URL, tt.opts)

			require.NoError(t, res.Err)
			assert.Equal(t, tt.wantContentType, gotContentType)
			assert.Equal(t, tt.wantAccept, gotAccept)
		})
	}
}

func TestClient_Do_NetworkError(t *testing.T) {
	netErr := errors.New("connection refused")
	mock := NewMockTransport().StubError(netErr)
	client := New(WithTransport(mock))

	res := client.Do(context.Background(), "http://api.internal/items", nil)

	require.Error(t, res.Err)
	assert.ErrorContains(t, res.Err, "connection refused")
	assert.Zero(t, res.Status)
	assert.Nil(t, res.Body)
	require.NotNil(t, res.Debug, "diagnostic metadata attached on failure")
	assert.Equal(t, "http://api.internal/items", res.Debug.URL)
	assert.Equal(t, http.MethodGet, res.Debug.Method)
}

func TestClient_Do_BodyReadError(t *testing.T) {
	readErr := errors.New("unexpected EOF")
	mock := NewMockTransport().StubBodyError(http.StatusOK, "application/json", readErr)
	client := New(WithTransport(mock))

	res := client.Do(context.Background(), "http://api.internal/items", nil)

	require.Error(t, res.Err, "a failing body read surfaces on Err, it is not thrown")
	assert.ErrorContains(t, res.Err, "unexpected EOF")
	assert.NotNil(t, res.Debug.Response, "raw response still attached")
}

func TestClient_Do_DecodeError(t *testing.T) {
	mock := NewMockTransport().StubJSON(http.StatusOK, `{"a":`)
	client := New(WithTransport(mock))

	res := client.Do(context.Background(), "http://api.internal/items", nil)

	require.Error(t, res.Err)
	assert.Equal(t, []byte(`{"a":`), res.Debug.RawBody, "raw bytes preserved for diagnosis")
}

func TestClient_Do_UnknownContentTypeFallsBackToText(t *testing.T) {
	mock := NewMockTransport().Stub(http.StatusOK, "application/octet-stream", "binaryish")
	client := New(WithTransport(mock))

	res := client.Do(context.Background(), "http://api.internal/blob", nil)

	require.NoError(t, res.Err)
	assert.Equal(t, "binaryish", res.Body, "unknown content types decode as text")
}

func TestClient_Do_MissingContentTypeFallsBackToText(t *testing.T) {
	mock := NewMockTransport().Stub(http.StatusOK, "", "no header at all")
	client := New(WithTransport(mock))

	res := client.Do(context.Background(), "http://api.internal/blob", nil)

	require.NoError(t, res.Err)
	assert.Equal(t, "no header at all", res.Body)
}

func TestClient_Do_CustomDecodeBypassesRegistry(t *testing.T) {
	mock := NewMockTransport().StubJSON(http.StatusOK, `{"a":1}`)
	client := New(WithTransport(mock))

	var gotTag Tag
	res := client.Do(context.Background(), "http://api.internal/items", &Options{
		DecodeBody: func(tag Tag, resp *http.Response, _ *Options) (any, error) {
			gotTag = tag
			raw, err := io.ReadAll(resp.Body)
			if err != nil {
				return nil, err
			}
			return "custom:" + string(raw), nil
		},
	})

	require.NoError(t, res.Err)
	assert.Equal(t, TagJSON, gotTag, "override receives the negotiated tag")
	assert.Equal(t, `custom:{"a":1}`, res.Body)
}

func TestClient_Do_EmptyBody(t *testing.T) {
	mock := NewMockTransport().StubJSON(http.StatusNoContent, "")
	client := New(WithTransport(mock))

	res := client.Do(context.Background(), "http://api.internal/items", nil)

	require.NoError(t, res.Err)
	assert.Equal(t, http.StatusNoContent, res.Status)
	assert.Nil(t, res.Body, "empty bodies are not decoded")
}

func TestClient_Do_TransitResponse(t *testing.T) {
	mock := NewMockTransport().StubTransit(http.StatusOK, `["~:alpha",42]`)
	client := New(WithTransport(mock))

	res := client.Do(context.Background(), "http://api.internal/items", nil)

	require.NoError(t, res.Err)
	assert.Equal(t, []byte(`["~:alpha",42]`), res.Debug.RawBody,
		"original transit text retained for traceability")
	values, ok := res.Body.([]any)
	require.True(t, ok, "expected decoded slice, got %T", res.Body)
	require.Len(t, values, 2)
}

func TestClient_Do_DefaultHeadersMerged(t *testing.T) {
	mock := NewMockTransport().StubJSON(http.StatusOK, `{}`)
	client := New(
		WithTransport(mock),
		WithDefaultHeaders(http.Header{"X-Api-Key": {"secret"}}),
	)

	res := client.Do(context.Background(), "http://api.internal/items", nil)

	require.NoError(t, res.Err)
	assert.Equal(t, "secret", mock.LastRequest().Header.Get("X-Api-Key"))
}

func TestClient_Do_RequestID(t *testing.T) {
	mock := NewMockTransport().StubJSON(http.StatusOK, `{}`)
	client := New(WithTransport(mock), WithRequestID())

	res := client.Do(context.Background(), "http://api.internal/items", nil)

	require.NoError(t, res.Err)
	first := mock.LastRequest().Header.Get("X-Request-ID")
	assert.NotEmpty(t, first)

	client.Do(context.Background(), "http://api.internal/items", nil)
	assert.NotEqual(t, first, mock.LastRequest().Header.Get("X-Request-ID"),
		"each request gets a fresh id")
}

func TestClient_Do_BaseURL(t *testing.T) {
	mock := NewMockTransport().StubJSON(http.StatusOK, `{}`)
	client := New(WithTransport(mock), WithBaseURL("http://api.internal/"))

	res := client.Do(context.Background(), "/items", nil)

	require.NoError(t, res.Err)
	assert.Equal(t, "http://api.internal/items", mock.LastRequest().URL.String())
}

func TestClient_Do_AbsoluteURLIgnoresBaseURL(t *testing.T) {
	mock := NewMockTransport().StubJSON(http.StatusOK, `{}`)
	client := New(WithTransport(mock), WithBaseURL("http://api.internal"))

	res := client.Do(context.Background(), "http://other.internal/items", nil)

	require.NoError(t, res.Err)
	assert.Equal(t, "http://other.internal/items", mock.LastRequest().URL.String())
}

func TestClient_Do_InvalidURL(t *testing.T) {
	client := New(WithTransport(NewMockTransport()))

	res := client.Do(context.Background(), "http://bad url with spaces", nil)

	require.Error(t, res.Err)
	assert.NotNil(t, res.Debug)
}

func TestClient_Do_PostJSONBody(t *testing.T) {
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := New()

	res := client.Post(context.Background(), server.URL, &Options{
		Body: map[string]any{"name": "widget"},
	})

	require.NoError(t, res.Err)
	assert.JSONEq(t, `{"name":"widget"}`, string(gotBody))
	assert.Equal(t, map[string]any{"ok": true}, res.Body)
}

func TestClient_ConvenienceMethods(t *testing.T) {
	tests := []struct {
		name       string
		call       func(c *Client, url string) *Result
		wantMethod string
	}{
		{
			name:       "given Get, then GET on the wire",
			call:       func(c *Client, u string) *Result { return c.Get(context.Background(), u, nil) },
			wantMethod: http.MethodGet,
		},
		{
			name:       "given Post, then POST on the wire",
			call:       func(c *Client, u string) *Result { return c.Post(context.Background(), u, nil) },
			wantMethod: http.MethodPost,
		},
		{
			name:       "given Put, then PUT on the wire",
			call:       func(c *Client, u string) *Result { return c.Put(context.Background(), u, nil) },
			wantMethod: http.MethodPut,
		},
		{
			name:       "given Delete, then DELETE on the wire",
			call:       func(c *Client, u string) *Result { return c.Delete(context.Background(), u, nil) },
			wantMethod: http.MethodDelete,
		},
		{
			name:       "given Head, then HEAD on the wire",
			call:       func(c *Client, u string) *Result { return c.Head(context.Background(), u, nil) },
			wantMethod: http.MethodHead,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockTransport().Stub(http.StatusOK, "text/plain", "ok")
			client := New(WithTransport(mock))

			res := tt.call(client, "http://api.internal/items")

			require.NoError(t, res.Err)
			assert.Equal(t, tt.wantMethod, mock.LastRequest().Method)
		})
	}
}

func TestClient_ConvenienceMethodOverridesConfiguredMethod(t *testing.T) {
	mock := NewMockTransport().Stub(http.StatusOK, "text/plain", "ok")
	client := New(WithTransport(mock))

	res := client.Post(context.Background(), "http://api.internal/items", &Options{Method: "DELETE"})

	require.NoError(t, res.Err)
	assert.Equal(t, http.MethodPost, mock.LastRequest().Method)
}

func TestClient_Do_DebugMetadata(t *testing.T) {
	mock := NewMockTransport().StubJSON(http.StatusOK, `{"a":1}`)
	client := New(WithTransport(mock), WithGenerateCurl())

	res := client.Post(context.Background(), "http://api.internal/items", &Options{
		Body:  map[string]any{"a": 1},
		Query: url.Values{"v": {"2"}},
	})

	require.NoError(t, res.Err)
	require.NotNil(t, res.Debug)
	assert.Equal(t, "http://api.internal/items?v=2", res.Debug.URL)
	assert.Equal(t, http.MethodPost, res.Debug.Method)
	assert.Equal(t, "application/json", res.Debug.RequestHeaders.Get("Content-Type"))
	assert.NotNil(t, res.Debug.Response)
	assert.Equal(t, []byte(`{"a":1}`), res.Debug.RawBody)
	assert.Contains(t, res.Debug.Curl, "curl -X POST")
	assert.Contains(t, res.Debug.Curl, `'{"a":1}'`)
}

func TestClient_Do_DebugResponseBodyReplayable(t *testing.T) {
	mock := NewMockTransport().StubJSON(http.StatusOK, `{"a":1}`)
	client := New(WithTransport(mock))

	res := client.Do(context.Background(), "http://api.internal/items", nil)

	require.NoError(t, res.Err)
	raw, err := io.ReadAll(res.Debug.Response.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(raw))
}
