package fetch

import (
	"net/http"
	"net/url"
	"strings"
)

// DecodeFunc replaces the codec registry for a single request. It receives
// the negotiated content-type tag (TagUnknown when the response header
// matched no known MIME string), the raw response with its body replayable,
// and the normalized request options. Its return value becomes Result.Body.
type DecodeFunc func(tag Tag, resp *http.Response, opts *Options) (any, error)

// Options is the per-request configuration. The zero value is a usable
// GET request with JSON accept/content-type defaults.
//
// Example:
//
//	res := client.Do(ctx, "https://api.example.com/items", &fetch.Options{
//	    Query: url.Values{"page": {"1"}, "page-size": {"20"}},
//	})
type Options struct {
	// Method is the HTTP method. Defaults to GET; always uppercased.
	Method string

	// Accept selects the MIME string for the Accept header.
	// Defaults to TagJSON.
	Accept Tag

	// ContentType selects the request body encoding and, for non-GET
	// methods, the Content-Type header. Defaults to TagJSON.
	//
	// GET requests never send Content-Type regardless of this field:
	// some servers fail the CORS preflight such a header provokes
	// ("Redirect is not allowed for a preflight request").
	ContentType Tag

	// Query is appended to the request URL as a normalized (sorted,
	// URL-escaped) query string.
	Query url.Values

	// Body is the request body, encoded according to ContentType.
	// With the default (pass-through) encoding it must be a string,
	// []byte, io.Reader, or url.Values.
	Body any

	// Header pre-seeds the built request headers. Accept and Content-Type
	// set by the builder take precedence over entries here.
	Header http.Header

	// DecodeBody, when set, bypasses the codec registry entirely.
	DecodeBody DecodeFunc

	// TransitWriter overrides the shared transit writer for this request.
	TransitWriter TransitWriter

	// TransitReader overrides the shared transit reader for this request.
	TransitReader TransitReader

	// EnableTrace captures network timing (DNS, connect, TLS, TTFB) for
	// this request into Result.Debug.Trace.
	EnableTrace bool
}

// normalized returns a copy with defaults applied. The receiver may be nil.
func (o *Options) normalized() *Options {
	var c Options
	if o != nil {
		c = *o
	}
	if c.Method == "" {
		c.Method = http.MethodGet
	} else {
		c.Method = strings.ToUpper(c.Method)
	}
	if c.Accept == TagUnknown {
		c.Accept = TagJSON
	}
	if c.ContentType == TagUnknown {
		c.ContentType = TagJSON
	}
	return &c
}

// withMethod returns a copy with the method pre-filled, overriding any
// configured value. Used by the convenience entry points.
func (o *Options) withMethod(method string) *Options {
	c := o.normalized()
	c.Method = method
	return c
}

// buildHeaders produces the request headers for normalized options:
// pre-seeded Options.Header entries first, then Accept, then Content-Type
// for non-GET methods only. Tags outside the fixed set resolve to no
// header at all.
func (o *Options) buildHeaders() http.Header {
	h := make(http.Header, len(o.Header)+2)
	for k, vs := range o.Header {
		for _, v := range vs {
			h.Add(k, v)
		}
	}
	if mime := o.Accept.MIME(); mime != "" {
		h.Set("Accept", mime)
	}
	if o.Method != http.MethodGet {
		if mime := o.ContentType.MIME(); mime != "" {
			h.Set("Content-Type", mime)
		}
	}
	return h
}
