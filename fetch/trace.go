package fetch

import (
	"crypto/tls"
	"fmt"
	"net/http/httptrace"
	"time"
)

// TraceInfo contains timing information for a request, captured when
// tracing is enabled via Options.EnableTrace or WithTrace. Each field is a
// human-readable duration string.
type TraceInfo struct {
	// DNSLookup is the DNS resolution time. "0s" for cached DNS or
	// IP-literal URLs.
	DNSLookup string

	// ConnTime is the TCP connection establishment time.
	ConnTime string

	// TLSHandshake is the TLS handshake time. Empty for plain HTTP.
	TLSHandshake string

	// ServerTime is the time from request written to first response byte.
	ServerTime string

	// TotalTime covers the whole exchange including the body read.
	TotalTime string
}

// String returns a formatted representation of the trace info.
func (t *TraceInfo) String() string {
	if t == nil {
		return "TraceInfo: nil (tracing was not enabled)"
	}

	return fmt.Sprintf(
		"DNS Lookup:    %s\nTCP Connect:   %s\nTLS Handshake: %s\nServer Time:   %s\nTotal Time:    %s",
		t.DNSLookup,
		t.ConnTime,
		t.TLSHandshake,
		t.ServerTime,
		t.TotalTime,
	)
}

// requestTracer captures timing events for a single request.
type requestTracer struct {
	dnsStart   time.Time
	dnsEnd     time.Time
	connStart  time.Time
	connEnd    time.Time
	tlsStart   time.Time
	tlsEnd     time.Time
	reqStart   time.Time
	firstByte  time.Time
	totalStart time.Time
}

// clientTrace creates an httptrace.ClientTrace feeding this tracer.
func (t *requestTracer) clientTrace() *httptrace.ClientTrace {
	return &httptrace.ClientTrace{
		DNSStart: func(_ httptrace.DNSStartInfo) {
			t.dnsStart = time.Now()
		},
		DNSDone: func(_ httptrace.DNSDoneInfo) {
			t.dnsEnd = time.Now()
		},
		ConnectStart: func(_, _ string) {
			t.connStart = time.Now()
		},
		ConnectDone: func(_, _ string, _ error) {
			t.connEnd = time.Now()
		},
		TLSHandshakeStart: func() {
			t.tlsStart = time.Now()
		},
		TLSHandshakeDone: func(_ tls.ConnectionState, _ error) {
			t.tlsEnd = time.Now()
		},
		WroteRequest: func(_ httptrace.WroteRequestInfo) {
			t.reqStart = time.Now()
		},
		GotFirstResponseByte: func() {
			t.firstByte = time.Now()
		},
	}
}

// toTraceInfo converts the captured timing data to a TraceInfo.
func (t *requestTracer) toTraceInfo() *TraceInfo {
	info := &TraceInfo{}

	if !t.dnsStart.IsZero() && !t.dnsEnd.IsZero() {
		info.DNSLookup = t.dnsEnd.Sub(t.dnsStart).String()
	} else {
		info.DNSLookup = "0s"
	}

	if !t.connStart.IsZero() && !t.connEnd.IsZero() {
		info.ConnTime = t.connEnd.Sub(t.connStart).String()
	} else {
		info.ConnTime = "0s"
	}

	if !t.tlsStart.IsZero() && !t.tlsEnd.IsZero() {
		info.TLSHandshake = t.tlsEnd.Sub(t.tlsStart).String()
	} else {
		info.TLSHandshake = ""
	}

	if !t.reqStart.IsZero() && !t.firstByte.IsZero() {
		info.ServerTime = t.firstByte.Sub(t.reqStart).String()
	} else {
		info.ServerTime = "0s"
	}

	if !t.totalStart.IsZero() {
		info.TotalTime = time.Since(t.totalStart).String()
	} else {
		info.TotalTime = "0s"
	}

	return info
}
