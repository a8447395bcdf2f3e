package fetch

import (
	"net/http"
	"strings"
)

// Result is the outcome of a single request. Exactly one of the two shapes
// is populated:
//
//   - success: Status, Headers and Body are set, Err is nil
//   - failure: Err carries the network, read, or decode error
//
// Debug is attached in both cases. Do never returns a Go error alongside
// the Result; callers branch on Err:
//
//	res := client.Get(ctx, "https://api.example.com/items", nil)
//	if res.Err != nil {
//	    return res.Err
//	}
//	items := res.Body
type Result struct {
	// Status is the HTTP status code.
	Status int

	// Headers holds all response headers; multi-valued headers are
	// joined with ", ".
	Headers map[string]string

	// Body is the decoded response body: a string for text responses,
	// the unmarshaled value for json, the decoded value for
	// transit-json, or whatever a DecodeBody override returned.
	Body any

	// Err is the caught failure, if any. Network failures and
	// read/decode failures surface here uniformly; they are never
	// re-thrown to the caller.
	Err error

	// Debug carries diagnostic metadata about the exchange.
	Debug *Debug
}

// IsSuccess reports whether the request completed with a 2xx status.
func (r *Result) IsSuccess() bool {
	return r.Err == nil && r.Status >= 200 && r.Status < 300
}

// IsError reports whether the request failed outright or returned a
// 4xx/5xx status.
func (r *Result) IsError() bool {
	return r.Err != nil || r.Status >= 400
}

// Debug is the diagnostic metadata attached to every Result: the finalized
// request options and the raw response, kept out of the success/failure
// shape itself.
type Debug struct {
	// URL is the final request URL with the query string applied.
	URL string

	// Method is the request method actually sent.
	Method string

	// RequestHeaders are the headers actually sent.
	RequestHeaders http.Header

	// Response is the raw response. Its body has been consumed and
	// replaced with a replayable copy of RawBody.
	Response *http.Response

	// RawBody is the response body exactly as received, before decoding.
	// For transit responses this preserves the original transit text.
	RawBody []byte

	// Trace holds network timing when tracing was enabled.
	Trace *TraceInfo

	// Curl is the equivalent cURL command when WithGenerateCurl was set.
	Curl string
}

// flattenHeaders converts response headers to a string map, joining
// multi-valued headers with ", ".
func flattenHeaders(h http.Header) map[string]string {
	m := make(map[string]string, len(h))
	for k, vs := range h {
		m[k] = strings.Join(vs, ", ")
	}
	return m
}
