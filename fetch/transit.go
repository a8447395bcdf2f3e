package fetch

import (
	"bytes"
	"strings"
	"sync"

	"github.com/russolsen/transit"
)

// TransitWriter serializes a value to transit+json text.
//
// The package ships a shared default writer (see DefaultTransitWriter);
// supply Options.TransitWriter to override it for a single request.
type TransitWriter interface {
	Write(v any) (string, error)
}

// TransitReader parses transit+json text into a value.
type TransitReader interface {
	Read(s string) (any, error)
}

// NewTransitWriter returns a TransitWriter backed by the transit-format
// encoder. Verbose mode writes the human-readable transit variant.
func NewTransitWriter(verbose bool) TransitWriter {
	return transitWriter{verbose: verbose}
}

// NewTransitReader returns a TransitReader backed by the transit-format
// decoder.
func NewTransitReader() TransitReader {
	return transitReader{}
}

type transitWriter struct {
	verbose bool
}

func (w transitWriter) Write(v any) (string, error) {
	var buf bytes.Buffer
	if err := transit.NewEncoder(&buf, w.verbose).Encode(v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type transitReader struct{}

func (transitReader) Read(s string) (any, error) {
	return transit.NewDecoder(strings.NewReader(s)).Decode()
}

// Shared process-wide default codec instances, constructed on first use
// behind an explicit once guard. Read-only after construction and safe for
// concurrent reuse.
var (
	transitOnce          sync.Once
	defaultTransitWriter TransitWriter
	defaultTransitReader TransitReader
)

func initTransitDefaults() {
	transitOnce.Do(func() {
		defaultTransitWriter = NewTransitWriter(false)
		defaultTransitReader = NewTransitReader()
	})
}

// DefaultTransitWriter returns the shared transit writer used when a
// request does not override Options.TransitWriter.
func DefaultTransitWriter() TransitWriter {
	initTransitDefaults()
	return defaultTransitWriter
}

// DefaultTransitReader returns the shared transit reader used when a
// request does not override Options.TransitReader.
func DefaultTransitReader() TransitReader {
	initTransitDefaults()
	return defaultTransitReader
}
