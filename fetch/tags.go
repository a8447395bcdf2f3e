package fetch

import "strings"

// Tag identifies a body serialization format. The set of tags is fixed;
// each maps to exactly one canonical MIME string and back.
type Tag string

const (
	// TagUnknown is the zero Tag. Response Content-Type headers that match
	// no known MIME string negotiate to TagUnknown, which dispatches to the
	// default (text) codec.
	TagUnknown Tag = ""

	// TagTransitJSON is the transit+json format (richer types than JSON:
	// keywords, symbols, sets).
	TagTransitJSON Tag = "transit-json"

	// TagJSON is plain JSON.
	TagJSON Tag = "json"

	// TagFormEncoded is application/x-www-form-urlencoded.
	TagFormEncoded Tag = "form-encoded"

	// TagText is plain text.
	TagText Tag = "text"

	// TagHTML is HTML text.
	TagHTML Tag = "html"
)

// mimeByTag maps each tag to its canonical MIME string. Plain lookup
// table; unrecognized tags miss and yield the empty string.
var mimeByTag = map[Tag]string{
	TagTransitJSON: "application/transit+json",
	TagJSON:        "application/json",
	TagFormEncoded: "application/x-www-form-urlencoded",
	TagText:        "text/plain",
	TagHTML:        "text/html",
}

// tagByMIME is the reverse table, built once at init.
var tagByMIME = func() map[string]Tag {
	m := make(map[string]Tag, len(mimeByTag))
	for tag, mime := range mimeByTag {
		m[mime] = tag
	}
	return m
}()

// MIME returns the canonical MIME string for the tag, or "" when the tag
// is not one of the fixed set. Missing lookups are not an error: headers
// built from an unrecognized tag are simply omitted.
func (t Tag) MIME() string {
	return mimeByTag[t]
}

// TagForContentType returns the Tag whose canonical MIME string matches a
// Content-Type header value. Any parameter suffix (";charset=utf-8") and
// surrounding whitespace are stripped before lookup.
//
// Headers that match no known MIME string yield TagUnknown, which the codec
// registry resolves to the default (text) decoder.
func TagForContentType(header string) Tag {
	mime, _, _ := strings.Cut(header, ";")
	return tagByMIME[strings.TrimSpace(mime)]
}
