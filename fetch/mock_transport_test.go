package fetch

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRequest(t *testing.T, method, url string) *http.Request {
	t.Helper()
	return httptest.NewRequest(method, url, nil)
}

func TestMockTransport_DefaultStub(t *testing.T) {
	mock := NewMockTransport().StubJSON(http.StatusOK, `{"ok":true}`)

	resp, err := mock.RoundTrip(newTestRequest(t, "GET", "http://api.internal/a"))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"))
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, `{"ok":true}`, string(body))
}

func TestMockTransport_PathStubWinsOverDefault(t *testing.T) {
	mock := NewMockTransport().
		StubPath("/special", http.StatusTeapot, "text/plain", "tea").
		Stub(http.StatusOK, "text/plain", "default")

	resp, err := mock.RoundTrip(newTestRequest(t, "GET", "http://api.internal/special"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)

	resp, err = mock.RoundTrip(newTestRequest(t, "GET", "http://api.internal/other"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMockTransport_NoStub(t *testing.T) {
	mock := NewMockTransport()

	_, err := mock.RoundTrip(newTestRequest(t, "GET", "http://api.internal/a"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no stub found")
}

func TestMockTransport_BodyError(t *testing.T) {
	readErr := errors.New("read reset")
	mock := NewMockTransport().StubBodyError(http.StatusOK, "text/plain", readErr)

	resp, err := mock.RoundTrip(newTestRequest(t, "GET", "http://api.internal/a"))

	require.NoError(t, err, "headers are delivered")
	_, err = io.ReadAll(resp.Body)
	assert.ErrorIs(t, err, readErr)
}

func TestMockTransport_RecordsRequests(t *testing.T) {
	mock := NewMockTransport().Stub(http.StatusOK, "text/plain", "ok")

	mock.RoundTrip(newTestRequest(t, "GET", "http://api.internal/a"))
	mock.RoundTrip(newTestRequest(t, "POST", "http://api.internal/b"))

	assert.Len(t, mock.Requests(), 2)
	assert.Equal(t, "POST", mock.LastRequest().Method)

	mock.Reset()
	assert.Nil(t, mock.LastRequest())
}

func TestMockTransport_EachResponseIndependentlyReadable(t *testing.T) {
	mock := NewMockTransport().Stub(http.StatusOK, "text/plain", "same body")

	for i := 0; i < 2; i++ {
		resp, err := mock.RoundTrip(newTestRequest(t, "GET", "http://api.internal/a"))
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "same body", string(body))
	}
}

func TestMockTransport_FuncError(t *testing.T) {
	mock := NewMockTransport().
		StubFuncError(func(r *http.Request) bool { return r.Method == "DELETE" }, errors.New("denied")).
		Stub(http.StatusOK, "text/plain", "ok")

	_, err := mock.RoundTrip(newTestRequest(t, "DELETE", "http://api.internal/a"))
	assert.Error(t, err)

	_, err = mock.RoundTrip(newTestRequest(t, "GET", "http://api.internal/a"))
	assert.NoError(t, err)
}
