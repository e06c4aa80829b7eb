package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptrace"
	"net/http/httputil"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/oshokin/restclient/internal/logger"
	"github.com/oshokin/restclient/internal/utils"
)

// DefaultMaxLogLength is the default maximum size (in bytes) of a logged request or response dump.
const DefaultMaxLogLength = 1 * 1024 * 1024 // 1 MB

// noConnection is logged when the underlying transport never reported a connection.
const noConnection = "<no connection>"

// LogTransport is a custom http.RoundTripper that logs HTTP requests and responses.
// It wraps another http.RoundTripper and logs the method, URL, connection, and headers
// before the request is sent, and the response with the elapsed time after it is received.
type LogTransport struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// maxLogLength is the maximum length of logged request/response data.
	maxLogLength uint64
}

// Static error definitions for better error handling.
var (
	// ErrNilRequest indicates that the HTTP request is nil.
	ErrNilRequest = errors.New("request is nil")
)

// NewLogTransport creates and returns a new instance of LogTransport.
// If maxLogLength is 0, it defaults to DefaultMaxLogLength.
func NewLogTransport(next http.RoundTripper, maxLogLength uint64) http.RoundTripper {
	if maxLogLength == 0 {
		maxLogLength = DefaultMaxLogLength
	}

	return &LogTransport{
		next:         next,
		maxLogLength: maxLogLength,
	}
}

// RoundTrip executes a single HTTP transaction and logs the request and response.
// It implements the http.RoundTripper interface.
func (t *LogTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	// Skip logging if the logger is not at debug level.
	if !logger.IsDebugLevel() {
		return t.next.RoundTrip(req)
	}

	ctx := logger.WithKV(req.Context(), "request_id", uuid.NewString())

	if tag := TagFromContext(ctx); tag != nil {
		ctx = logger.WithKV(ctx, "tag", tag)
	}

	requestDump := t.dumpRequest(req)

	var sendOnce sync.Once

	logSending := func(connection string) {
		sendOnce.Do(func() {
			logger.Debugf(ctx, "Sending request %s %s on %s\n%s", req.Method, req.URL.String(), connection, requestDump)
		})
	}

	trace := &httptrace.ClientTrace{
		GotConn: func(info httptrace.GotConnInfo) {
			logSending(describeConnection(info))
		},
	}

	traced := req.WithContext(httptrace.WithClientTrace(ctx, trace))

	// Record the start time to measure the duration of the request.
	startTime := time.Now()

	// Forward the request to the underlying RoundTripper.
	resp, err := t.next.RoundTrip(traced)

	elapsed := milliseconds(time.Since(startTime))

	// Transports that never dial (stubs, in-memory) do not fire GotConn.
	logSending(noConnection)

	if err != nil {
		logger.Debugf(ctx, "Request failed: %s %s in %.1fms | Error: %v", req.Method, req.URL.String(), elapsed, err)

		return nil, err
	}

	responseDump := t.dumpResponse(resp)

	logger.Debugf(ctx, "Received response for %s %s [%d] in %.1fms (%s)\n%s",
		req.Method, req.URL.String(), resp.StatusCode, elapsed, describeLength(resp.ContentLength), responseDump)

	return resp, nil
}

func (t *LogTransport) dumpRequest(req *http.Request) string {
	// Only text bodies are worth reading twice.
	dump, err := httputil.DumpRequest(req, utils.IsTextContentType(req.Header.Get("Content-Type")))
	if err != nil {
		return err.Error()
	}

	return t.truncate(dump)
}

func (t *LogTransport) dumpResponse(resp *http.Response) string {
	// Check the Content-Type header to determine if the response body should be dumped.
	contentType := resp.Header.Get("Content-Type")

	dump, err := httputil.DumpResponse(resp, utils.IsTextContentType(contentType))
	if err != nil {
		return err.Error()
	}

	return t.truncate(dump)
}

func (t *LogTransport) truncate(data []byte) string {
	if uint64(len(data)) > t.maxLogLength {
		return string(data[:t.maxLogLength]) + "... [truncated]"
	}

	return string(data)
}

func describeConnection(info httptrace.GotConnInfo) string {
	if info.Conn == nil {
		return noConnection
	}

	return fmt.Sprintf("%s->%s (reused: %t)", info.Conn.LocalAddr(), info.Conn.RemoteAddr(), info.Reused)
}

func describeLength(contentLength int64) string {
	if contentLength < 0 {
		return "unknown size"
	}

	return humanize.Bytes(uint64(contentLength))
}

func milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

