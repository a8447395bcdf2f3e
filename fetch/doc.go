// Package fetch is a thin convenience layer over net/http: it builds
// request options (method, headers, body encoding) from a per-request
// configuration, issues the request, and decodes the response body
// according to a negotiated content type.
//
// # Features
//
//   - Content-type tags (transit-json, json, form-encoded, text, html)
//     with a fixed tag↔MIME table
//   - Body codec registry keyed by tag, with a pass-through/text default
//     and a per-request decode override
//   - CORS-safe header construction: GET requests never send Content-Type
//   - Results that never fail out-of-band: network and decode errors are
//     caught and carried on Result.Err alongside diagnostic metadata
//   - OpenTelemetry tracing and metrics on every request
//   - Debug logging, cURL generation, and network timing capture
//
// # Quick Start
//
//	client := fetch.New(
//	    fetch.WithBaseURL("https://api.example.com"),
//	    fetch.WithServiceName("inventory-client"),
//	)
//
//	// GET with query parameters, JSON decoded by content type
//	res := client.Get(ctx, "/items", &fetch.Options{
//	    Query: url.Values{"page": {"1"}, "page-size": {"20"}},
//	})
//	if res.Err != nil {
//	    return res.Err
//	}
//	fmt.Println(res.Status, res.Body)
//
//	// POST a transit-encoded body
//	res = client.Post(ctx, "/items", &fetch.Options{
//	    ContentType: fetch.TagTransitJSON,
//	    Body:        item,
//	})
//
// Package-level Get, Post, Put, Delete, Head and Do use a shared
// DefaultClient.
//
// # Result shape
//
// Do always returns a non-nil *Result and never a separate error. A
// successful exchange populates Status, Headers, and Body; any failure
// from issuing the call through decoding populates Err instead. Both
// shapes carry Result.Debug with the final URL, sent headers, the raw
// response, and the raw body bytes.
//
// # Decoding
//
// The response Content-Type header, stripped of any parameter suffix,
// negotiates the decode: application/json parses into generic values,
// application/transit+json decodes through the shared transit reader, and
// everything else (including unknown content types) is returned as text.
// Supply Options.DecodeBody to replace the dispatch entirely.
package fetch
