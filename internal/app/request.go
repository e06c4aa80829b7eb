package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/oshokin/restclient/internal/client/rest"
	"github.com/oshokin/restclient/internal/config"
	"github.com/oshokin/restclient/internal/logger"
	"github.com/oshokin/restclient/internal/utils"
)

// RequestOptions describes the calls made by the "request" command.
type RequestOptions struct {
	// Method is the HTTP method. Empty means GET.
	Method string
	// URLs are sent concurrently with the same method, tag, body, and headers.
	URLs []string
	// Tag groups the call for cancellation. Empty leaves the call untagged.
	Tag string
	// Body is sent as is. Empty sends no body.
	Body string
	// Kind selects the Content-Type and Accept headers.
	Kind rest.ContentKind
	// Headers are merged over the configured headers.
	Headers map[string]string
	// IncludeHeaders prints the response headers before the body.
	IncludeHeaders bool
	// SkipNetworkCheck sends the request even if no active network is found.
	SkipNetworkCheck bool
	// PrintMetrics prints the dispatcher metrics after the call.
	PrintMetrics bool
}

// ExecuteRequestCommand sends the requests and prints the responses to stdout.
func ExecuteRequestCommand(ctx context.Context, cfg *config.Config, opts RequestOptions) {
	application, err := New(cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize client: %v", err)
	}

	defer application.Close()

	if err = application.Request(ctx, opts, os.Stdout); err != nil {
		logger.Fatalf(ctx, "Request failed: %v", err)
	}
}

// Request sends one request per URL and writes, for each of them in order, the status line,
// optionally the headers, and the body to out. A failed call does not stop the others;
// the first failure is returned after every output is written.
// When ctx is cancelled, the calls sharing the request tag are cancelled through the dispatcher.
func (a *App) Request(ctx context.Context, opts RequestOptions, out io.Writer) error {
	if !opts.SkipNetworkCheck && a.client.IsNetworkUnavailable(ctx, a.netCtx) {
		return ErrNetworkUnavailable
	}

	var tag any
	if !utils.IsBlank(opts.Tag) {
		tag = opts.Tag
	}

	stop := context.AfterFunc(ctx, func() {
		a.cancelCalls(tag)
	})
	defer stop()

	var (
		group   errgroup.Group
		outputs = make([]bytes.Buffer, len(opts.URLs))
	)

	for i, url := range opts.URLs {
		group.Go(func() error {
			if err := a.send(ctx, url, tag, opts, &outputs[i]); err != nil {
				return fmt.Errorf("%s: %w", url, err)
			}

			return nil
		})
	}

	err := group.Wait()

	for i := range outputs {
		if i > 0 {
			if _, writeErr := io.WriteString(out, "\n"); writeErr != nil {
				return fmt.Errorf("failed to write response: %w", writeErr)
			}
		}

		if _, writeErr := outputs[i].WriteTo(out); writeErr != nil {
			return fmt.Errorf("failed to write response: %w", writeErr)
		}
	}

	if err != nil {
		return err
	}

	if opts.PrintMetrics {
		return writeMetrics(out, a.collector.Registry())
	}

	return nil
}

func (a *App) send(ctx context.Context, url string, tag any, opts RequestOptions, out io.Writer) error {
	method := strings.ToUpper(strings.TrimSpace(opts.Method))
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.Body != "" {
		body = strings.NewReader(opts.Body)
	}

	req, err := a.client.NewRequestWithHeaders(ctx, method, url, tag, body, opts.Kind, opts.Headers)
	if err != nil {
		return err
	}

	logger.Debugf(ctx, "Sending %s %s", method, url)

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}

	// The call only leaves the dispatcher once its body is closed.
	defer resp.Body.Close() //nolint:errcheck // Body is fully read by writeResponse.

	return writeResponse(out, resp, opts.IncludeHeaders)
}

// cancelCalls cancels the calls tagged tag, or every call when tag is nil.
func (a *App) cancelCalls(tag any) {
	var (
		canceled int
		err      error
	)

	if tag == nil {
		canceled, err = a.client.CancelAllRequests()
	} else {
		canceled, err = a.client.CancelRequestsByTag(tag)
	}

	if err != nil {
		logger.Warnf(context.Background(), "Failed to cancel calls: %v", err)

		return
	}

	logger.Infof(context.Background(), "Interrupted, cancelled %d calls", canceled)
}

func writeResponse(out io.Writer, resp *http.Response, includeHeaders bool) error {
	if _, err := fmt.Fprintf(out, "%s %s\n", resp.Proto, resp.Status); err != nil {
		return fmt.Errorf("failed to write status: %w", err)
	}

	if includeHeaders {
		if err := resp.Header.Write(out); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}

		if _, err := fmt.Fprintln(out); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	return nil
}
