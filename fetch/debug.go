package fetch

import (
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// debugLogger is the package-level zerolog logger for debug output.
var debugLogger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// generateCurlCommand creates a cURL command equivalent for the given
// request, usable to reproduce it from the command line. The body is only
// included when its bytes were produced by the codec layer; pass-through
// readers cannot be replayed.
//
// Example output:
//
//	curl -X POST 'https://api.example.com/items' \
//	  -H 'Content-Type: application/json' \
//	  -d '{"name":"widget"}'
func generateCurlCommand(req *http.Request, body []byte) string {
	var parts []string

	parts = append(parts, "curl")

	if req.Method != http.MethodGet {
		parts = append(parts, "-X", req.Method)
	}

	parts = append(parts, fmt.Sprintf("'%s'", req.URL.String()))

	// Headers (sorted for consistent output)
	headerKeys := make([]string, 0, len(req.Header))
	for k := range req.Header {
		headerKeys = append(headerKeys, k)
	}
	sort.Strings(headerKeys)

	for _, k := range headerKeys {
		for _, v := range req.Header[k] {
			parts = append(parts, "-H", fmt.Sprintf("'%s: %s'", k, v))
		}
	}

	if len(body) > 0 {
		// Escape single quotes in body
		bodyStr := strings.ReplaceAll(string(body), "'", "'\\''")
		parts = append(parts, "-d", fmt.Sprintf("'%s'", bodyStr))
	}

	return strings.Join(parts, " ")
}

// logRequest logs the outgoing request using zerolog.
func logRequest(logger zerolog.Logger, client string, req *http.Request) {
	ev := logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Str("accept", req.Header.Get("Accept"))
	if client != "" {
		ev = ev.Str("client", client)
	}
	ev.Msg("fetch request")
}

// logResponse logs the response using zerolog.
func logResponse(logger zerolog.Logger, client string, resp *http.Response, duration time.Duration) {
	ev := logger.Debug().
		Int("status", resp.StatusCode).
		Str("content_type", resp.Header.Get("Content-Type")).
		Dur("duration_ms", duration)
	if client != "" {
		ev = ev.Str("client", client)
	}
	ev.Msg("fetch response")
}
