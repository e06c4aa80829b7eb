// Package http provides the RoundTripper chain used by the shared transport client:
// a dispatcher that tracks queued and running calls so they can be cancelled by tag,
// request/response debug logging, default header injection, certificate pinning,
// and a dialer that enforces per-read and per-write deadlines.
package http
