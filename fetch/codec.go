package fetch

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"strings"

	json "github.com/goccy/go-json"
)

// codec is the encode/decode pair associated with a content-type tag.
// Encoding receives the normalized request options and produces the body
// reader plus, when available, the encoded bytes (used for cURL output).
// Decoding receives the raw body bytes and the options.
type codec struct {
	encode func(o *Options) (io.Reader, []byte, error)
	decode func(body []byte, o *Options) (any, error)
}

// codecs maps each tag with dedicated behavior to its codec. Tags without
// an entry (form-encoded, text, html, unknown) resolve to defaultCodec.
var codecs = map[Tag]codec{
	TagJSON:        {encode: encodeJSON, decode: decodeJSON},
	TagTransitJSON: {encode: encodeTransit, decode: decodeTransit},
}

// defaultCodec passes request bodies through unchanged and reads response
// bodies as text.
var defaultCodec = codec{encode: encodePassthrough, decode: decodeText}

func codecFor(t Tag) codec {
	if c, ok := codecs[t]; ok {
		return c
	}
	return defaultCodec
}

// encodeBody encodes o.Body according to o.ContentType.
func encodeBody(o *Options) (io.Reader, []byte, error) {
	return codecFor(o.ContentType).encode(o)
}

// decodeBody decodes raw response bytes according to the negotiated tag.
func decodeBody(tag Tag, body []byte, o *Options) (any, error) {
	return codecFor(tag).decode(body, o)
}

// encodePassthrough assumes the body is already a sendable primitive.
// url.Values are form-encoded on the way through; anything else that is
// not string-like or a reader is an error.
func encodePassthrough(o *Options) (io.Reader, []byte, error) {
	switch body := o.Body.(type) {
	case string:
		return strings.NewReader(body), []byte(body), nil
	case []byte:
		return bytes.NewReader(body), body, nil
	case url.Values:
		s := body.Encode()
		return strings.NewReader(s), []byte(s), nil
	case io.Reader:
		return body, nil, nil
	default:
		return nil, nil, fmt.Errorf("fetch: cannot pass body of type %T through unencoded", o.Body)
	}
}

func encodeJSON(o *Options) (io.Reader, []byte, error) {
	data, err := json.Marshal(o.Body)
	if err != nil {
		return nil, nil, err
	}
	return bytes.NewReader(data), data, nil
}

func encodeTransit(o *Options) (io.Reader, []byte, error) {
	w := o.TransitWriter
	if w == nil {
		w = DefaultTransitWriter()
	}
	s, err := w.Write(o.Body)
	if err != nil {
		return nil, nil, err
	}
	return strings.NewReader(s), []byte(s), nil
}

func decodeText(body []byte, _ *Options) (any, error) {
	return string(body), nil
}

func decodeJSON(body []byte, _ *Options) (any, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func decodeTransit(body []byte, o *Options) (any, error) {
	r := o.TransitReader
	if r == nil {
		r = DefaultTransitReader()
	}
	return r.Read(string(body))
}
