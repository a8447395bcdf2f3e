package fetch

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"sync"
)

// MockTransport provides a configurable http.RoundTripper for testing.
// Stubs carry response headers so content-type negotiation behaves as it
// would against a real server. Combine with WithTransport:
//
//	mock := fetch.NewMockTransport().
//	    StubJSON(200, `{"a":1}`)
//	client := fetch.New(fetch.WithTransport(mock))
type MockTransport struct {
	mu          sync.RWMutex
	stubs       []mockStub
	defaultResp *mockResponse
	defaultErr  error
	requests    []*http.Request
}

type mockStub struct {
	matcher func(*http.Request) bool
	resp    *mockResponse
	err     error
}

type mockResponse struct {
	statusCode int
	header     http.Header
	body       string

	// bodyErr, when set, makes reads of the response body fail after
	// headers are delivered. Used to simulate mid-read network failures.
	bodyErr error
}

// NewMockTransport creates a new MockTransport.
func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// Stub stubs all requests to return the given response with the given
// Content-Type header ("" for none).
func (m *MockTransport) Stub(statusCode int, contentType, body string) *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultResp = newMockResponse(statusCode, contentType, body)
	return m
}

// StubJSON stubs all requests to return a JSON response with a charset
// parameter on the Content-Type header, as real servers commonly send.
func (m *MockTransport) StubJSON(statusCode int, body string) *MockTransport {
	return m.Stub(statusCode, "application/json; charset=utf-8", body)
}

// StubTransit stubs all requests to return a transit+json response.
func (m *MockTransport) StubTransit(statusCode int, body string) *MockTransport {
	return m.Stub(statusCode, "application/transit+json", body)
}

// StubError stubs all requests to fail with the given error before any
// response is delivered.
func (m *MockTransport) StubError(err error) *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultErr = err
	return m
}

// StubBodyError stubs all requests to return a response whose body read
// fails with the given error.
func (m *MockTransport) StubBodyError(statusCode int, contentType string, err error) *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	resp := newMockResponse(statusCode, contentType, "")
	resp.bodyErr = err
	m.defaultResp = resp
	return m
}

// StubPath stubs requests matching the path. First matching stub wins over
// the default stub.
func (m *MockTransport) StubPath(path string, statusCode int, contentType, body string) *MockTransport {
	return m.StubFunc(func(req *http.Request) bool {
		return req.URL.Path == path
	}, statusCode, contentType, body)
}

// StubFunc stubs requests matching the predicate.
func (m *MockTransport) StubFunc(
	matcher func(*http.Request) bool,
	statusCode int,
	contentType, body string,
) *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stubs = append(m.stubs, mockStub{
		matcher: matcher,
		resp:    newMockResponse(statusCode, contentType, body),
	})
	return m
}

// StubFuncError stubs requests matching the predicate to fail with the
// given error.
func (m *MockTransport) StubFuncError(matcher func(*http.Request) bool, err error) *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stubs = append(m.stubs, mockStub{matcher: matcher, err: err})
	return m
}

// RoundTrip implements http.RoundTripper.
func (m *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, s := range m.stubs {
		if s.matcher(req) {
			if s.err != nil {
				return nil, s.err
			}
			return s.resp.build(req), nil
		}
	}

	if m.defaultErr != nil {
		return nil, m.defaultErr
	}
	if m.defaultResp != nil {
		return m.defaultResp.build(req), nil
	}

	return nil, errors.New("no stub found for request: " + req.Method + " " + req.URL.String())
}

// Requests returns all requests made through this transport.
func (m *MockTransport) Requests() []*http.Request {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*http.Request{}, m.requests...)
}

// LastRequest returns the most recent request, or nil if none.
func (m *MockTransport) LastRequest() *http.Request {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.requests) == 0 {
		return nil
	}
	return m.requests[len(m.requests)-1]
}

// Reset clears all recorded requests and stubs.
func (m *MockTransport) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = nil
	m.stubs = nil
	m.defaultResp = nil
	m.defaultErr = nil
}

func newMockResponse(statusCode int, contentType, body string) *mockResponse {
	h := make(http.Header)
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	return &mockResponse{statusCode: statusCode, header: h, body: body}
}

// build materializes a fresh http.Response so each request gets its own
// readable body.
func (r *mockResponse) build(req *http.Request) *http.Response {
	var body io.ReadCloser
	if r.bodyErr != nil {
		body = io.NopCloser(&failingReader{err: r.bodyErr})
	} else {
		body = io.NopCloser(bytes.NewBufferString(r.body))
	}

	return &http.Response{
		Status:     http.StatusText(r.statusCode),
		StatusCode: r.statusCode,
		Header:     r.header.Clone(),
		Body:       body,
		Request:    req,
	}
}

// failingReader fails every read with a fixed error.
type failingReader struct {
	err error
}

func (f *failingReader) Read(_ []byte) (int, error) {
	return 0, f.err
}
