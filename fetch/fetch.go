package fetch

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptrace"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Do issues a single request and always returns a non-nil Result. Any
// failure between issuing the call and decoding the body is caught and
// surfaced through Result.Err with the diagnostic Debug metadata attached;
// Do never panics and has no error return.
//
// The request lifecycle:
//
//  1. Resolve the URL against the client base URL and append Options.Query
//     as a normalized query string.
//  2. Build headers (Accept always; Content-Type for non-GET) and encode
//     the body per the content-type tag.
//  3. Issue the call through the instrumented http.Client.
//  4. Negotiate the response tag from the Content-Type header (parameter
//     suffix stripped) and decode the body via the codec registry, or the
//     Options.DecodeBody override.
func (c *Client) Do(ctx context.Context, rawURL string, opts *Options) *Result {
	o := opts.normalized()
	dbg := &Debug{URL: rawURL, Method: o.Method}

	finalURL, err := c.resolveURL(rawURL, o.Query)
	if err != nil {
		return &Result{Err: err, Debug: dbg}
	}
	dbg.URL = finalURL

	var (
		body      io.Reader
		bodyBytes []byte
	)
	if o.Body != nil {
		body, bodyBytes, err = encodeBody(o)
		if err != nil {
			return &Result{Err: err, Debug: dbg}
		}
	}

	req, err := http.NewRequestWithContext(ctx, o.Method, finalURL, body)
	if err != nil {
		return &Result{Err: err, Debug: dbg}
	}

	for k, vs := range c.config.DefaultHeaders {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	for k, vs := range o.buildHeaders() {
		req.Header[k] = vs
	}
	if c.config.RequestID {
		req.Header.Set("X-Request-ID", uuid.NewString())
	}
	dbg.RequestHeaders = req.Header

	var tracer *requestTracer
	if o.EnableTrace || c.config.EnableTrace {
		tracer = &requestTracer{totalStart: time.Now()}
		req = req.WithContext(httptrace.WithClientTrace(req.Context(), tracer.clientTrace()))
	}

	if c.config.GenerateCurl {
		dbg.Curl = generateCurlCommand(req, bodyBytes)
	}
	if c.config.Debug {
		logRequest(debugLogger, c.config.ServiceName, req)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if tracer != nil {
			dbg.Trace = tracer.toTraceInfo()
		}
		return &Result{Err: err, Debug: dbg}
	}

	if c.config.Debug {
		logResponse(debugLogger, c.config.ServiceName, resp, time.Since(start))
	}

	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if tracer != nil {
		dbg.Trace = tracer.toTraceInfo()
	}

	// Keep the raw response replayable for Debug and DecodeBody.
	resp.Body = io.NopCloser(bytes.NewReader(raw))
	dbg.Response = resp

	if err != nil {
		return &Result{Err: err, Debug: dbg}
	}
	dbg.RawBody = raw

	tag := TagForContentType(resp.Header.Get("Content-Type"))

	var decoded any
	if o.DecodeBody != nil {
		decoded, err = o.DecodeBody(tag, resp, o)
	} else if len(raw) > 0 {
		decoded, err = decodeBody(tag, raw, o)
	}
	if err != nil {
		return &Result{Err: err, Debug: dbg}
	}

	return &Result{
		Status:  resp.StatusCode,
		Headers: flattenHeaders(resp.Header),
		Body:    decoded,
		Debug:   dbg,
	}
}

// Get issues a GET request. Direct alias for Do apart from pinning the
// method, which is the default anyway.
func (c *Client) Get(ctx context.Context, url string, opts *Options) *Result {
	return c.Do(ctx, url, opts.withMethod(http.MethodGet))
}

// Post issues a POST request.
func (c *Client) Post(ctx context.Context, url string, opts *Options) *Result {
	return c.Do(ctx, url, opts.withMethod(http.MethodPost))
}

// Put issues a PUT request.
func (c *Client) Put(ctx context.Context, url string, opts *Options) *Result {
	return c.Do(ctx, url, opts.withMethod(http.MethodPut))
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, url string, opts *Options) *Result {
	return c.Do(ctx, url, opts.withMethod(http.MethodDelete))
}

// Head issues a HEAD request.
func (c *Client) Head(ctx context.Context, url string, opts *Options) *Result {
	return c.Do(ctx, url, opts.withMethod(http.MethodHead))
}

// resolveURL joins a relative URL onto the client base URL when one is
// configured, then appends the query parameters in normalized (sorted,
// escaped) form.
func (c *Client) resolveURL(rawURL string, query url.Values) (string, error) {
	full := rawURL
	if c.config.BaseURL != "" && !strings.Contains(rawURL, "://") {
		full = strings.TrimSuffix(c.config.BaseURL, "/") + "/" + strings.TrimPrefix(rawURL, "/")
	}

	u, err := url.Parse(full)
	if err != nil {
		return "", err
	}

	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}
