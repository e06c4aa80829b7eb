package http

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/oshokin/restclient/internal/logger"
)

//go:generate $MOCKGEN -source=dispatcher.go -destination=mocks/dispatcher_mock.go

// CallRecorder receives dispatcher lifecycle events.
// A nil recorder passed to NewDispatcher disables recording.
type CallRecorder interface {
	// RecordQueued is called when a call starts waiting for a slot.
	RecordQueued(method string)
	// RecordRequestStart is called when a call acquires a slot.
	RecordRequestStart(method string)
	// RecordRequestEnd is called once per started call when it stops running.
	RecordRequestEnd(method string, statusCode int, duration time.Duration)
	// RecordError is called when a round trip fails.
	RecordError(errorType, method string)
	// RecordCanceled is called when calls are cancelled through the dispatcher.
	RecordCanceled(reason string, count int)
}

// CallState describes where a call is in the dispatcher.
type CallState int

const (
	// CallQueued means the call is waiting for a free slot.
	CallQueued CallState = iota
	// CallRunning means the call holds a slot and is in flight.
	CallRunning
)

// Error types passed to CallRecorder.RecordError.
const (
	errorTypeCanceled  = "canceled"
	errorTypeTransport = "transport"
)

// Reasons passed to CallRecorder.RecordCanceled.
const (
	cancelReasonAll = "all"
	cancelReasonTag = "tag"
)

// Static error definitions for better error handling.
var (
	// ErrCallCanceled is the cancellation cause of calls cancelled through the dispatcher.
	ErrCallCanceled = errors.New("call canceled")
	// ErrTagNotComparable indicates that a call tag could not be compared with the requested tag.
	ErrTagNotComparable = errors.New("tag is not comparable")
)

// Call is a request registered with a Dispatcher.
type Call struct {
	// id orders calls by registration.
	id uint64
	// request is the request as received by the dispatcher.
	request *http.Request
	// tag is the opaque tag taken from the request context.
	tag any
	// state is guarded by the dispatcher mutex.
	state CallState
	// cancel cancels the call's context with a cause.
	cancel context.CancelCauseFunc
	// ctx is the call's cancellable context.
	ctx context.Context
}

// Request returns the request of the call.
func (c *Call) Request() *http.Request {
	return c.request
}

// Tag returns the opaque tag attached to the call, or nil.
func (c *Call) Tag() any {
	return c.tag
}

// Cancel cancels the call. The round trip or body read fails with ErrCallCanceled.
func (c *Call) Cancel() {
	c.cancel(ErrCallCanceled)
}

// IsCanceled reports whether the call has been cancelled.
func (c *Call) IsCanceled() bool {
	return c.ctx.Err() != nil
}

// Dispatcher is an http.RoundTripper that limits the number of concurrent calls
// and keeps a registry of queued and running calls so they can be cancelled in bulk or by tag.
type Dispatcher struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// slots bounds the number of running calls.
	slots *semaphore.Weighted
	// maxRequests is the slot count.
	maxRequests int64
	// recorder receives lifecycle events.
	recorder CallRecorder

	mu     sync.Mutex
	nextID uint64
	calls  map[uint64]*Call
}

// NewDispatcher creates a Dispatcher in front of next.
// If maxRequests is not positive, DefaultMaxRequests is used.
func NewDispatcher(next http.RoundTripper, maxRequests int64, recorder CallRecorder) *Dispatcher {
	if maxRequests <= 0 {
		maxRequests = DefaultMaxRequests
	}

	if recorder == nil {
		recorder = noopRecorder{}
	}

	return &Dispatcher{
		next:        next,
		slots:       semaphore.NewWeighted(maxRequests),
		maxRequests: maxRequests,
		recorder:    recorder,
		calls:       make(map[uint64]*Call),
	}
}

// MaxRequests returns the number of calls that may run at once.
func (d *Dispatcher) MaxRequests() int64 {
	return d.maxRequests
}

// RoundTrip registers the request as a queued call, waits for a free slot, and forwards it.
// The call stays registered as running until the response body is closed.
// It implements the http.RoundTripper interface.
func (d *Dispatcher) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	call := d.register(req)
	d.recorder.RecordQueued(req.Method)

	if err := d.slots.Acquire(call.ctx, 1); err != nil {
		d.unregister(call)
		call.cancel(nil)

		return nil, d.wrapError(call, err)
	}

	// A call cancelled while acquiring may still get a slot.
	if !d.promote(call) {
		d.slots.Release(1)
		call.cancel(nil)

		return nil, d.wrapError(call, call.ctx.Err())
	}

	startTime := time.Now()
	d.recorder.RecordRequestStart(req.Method)

	var finishOnce sync.Once

	finish := func(statusCode int) {
		finishOnce.Do(func() {
			d.unregister(call)
			d.slots.Release(1)
			d.recorder.RecordRequestEnd(req.Method, statusCode, time.Since(startTime))
			call.cancel(nil)
		})
	}

	resp, err := d.next.RoundTrip(req.WithContext(call.ctx))
	if err != nil {
		finish(0)

		return nil, d.wrapError(call, err)
	}

	resp.Body = &callBody{
		ReadCloser: resp.Body,
		onClose: func() {
			finish(resp.StatusCode)
		},
	}

	return resp, nil
}

// QueuedCalls returns a snapshot of calls waiting for a slot, oldest first.
func (d *Dispatcher) QueuedCalls() []*Call {
	return d.snapshot(CallQueued)
}

// RunningCalls returns a snapshot of calls in flight, oldest first.
func (d *Dispatcher) RunningCalls() []*Call {
	return d.snapshot(CallRunning)
}

// QueuedCallsCount returns the number of calls waiting for a slot.
func (d *Dispatcher) QueuedCallsCount() int {
	return len(d.QueuedCalls())
}

// RunningCallsCount returns the number of calls in flight.
func (d *Dispatcher) RunningCallsCount() int {
	return len(d.RunningCalls())
}

// CancelAll cancels every queued and running call and removes them from the registry.
// It returns the number of cancelled calls.
func (d *Dispatcher) CancelAll() int {
	d.mu.Lock()

	canceled := make([]*Call, 0, len(d.calls))
	for id, call := range d.calls {
		canceled = append(canceled, call)
		delete(d.calls, id)
	}

	d.mu.Unlock()

	for _, call := range canceled {
		call.Cancel()
	}

	d.recorder.RecordCanceled(cancelReasonAll, len(canceled))

	return len(canceled)
}

// CancelByTag cancels every queued or running call whose tag equals tag and returns their number.
// Calls without a tag are never matched. A call whose tag cannot be compared is skipped and keeps running.
func (d *Dispatcher) CancelByTag(tag any) int {
	d.mu.Lock()

	canceled := make([]*Call, 0)

	for id, call := range d.calls {
		if call.tag == nil {
			continue
		}

		equal, err := tagsEqual(call.tag, tag)
		if err != nil {
			logger.Debugf(call.ctx, "Skipping call %s %s: %v", call.request.Method, call.request.URL, err)

			continue
		}

		if equal {
			canceled = append(canceled, call)
			delete(d.calls, id)
		}
	}

	d.mu.Unlock()

	for _, call := range canceled {
		call.Cancel()
	}

	d.recorder.RecordCanceled(cancelReasonTag, len(canceled))

	return len(canceled)
}

func (d *Dispatcher) register(req *http.Request) *Call {
	ctx, cancel := context.WithCancelCause(req.Context())

	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++

	call := &Call{
		id:      d.nextID,
		request: req,
		tag:     TagFromContext(req.Context()),
		state:   CallQueued,
		cancel:  cancel,
		ctx:     ctx,
	}

	d.calls[call.id] = call

	return call
}

// promote moves a queued call to running. It reports false if the call was cancelled meanwhile.
func (d *Dispatcher) promote(call *Call) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.calls[call.id]; !ok || call.ctx.Err() != nil {
		delete(d.calls, call.id)

		return false
	}

	call.state = CallRunning

	return true
}

func (d *Dispatcher) unregister(call *Call) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.calls, call.id)
}

func (d *Dispatcher) snapshot(state CallState) []*Call {
	d.mu.Lock()
	defer d.mu.Unlock()

	result := make([]*Call, 0, len(d.calls))

	for _, call := range d.calls {
		if call.state == state {
			result = append(result, call)
		}
	}

	slices.SortFunc(result, func(a, b *Call) int {
		return cmp.Compare(a.id, b.id)
	})

	return result
}

func (d *Dispatcher) wrapError(call *Call, err error) error {
	if errors.Is(context.Cause(call.ctx), ErrCallCanceled) {
		d.recorder.RecordError(errorTypeCanceled, call.request.Method)

		return fmt.Errorf("%w: %w", ErrCallCanceled, err)
	}

	d.recorder.RecordError(errorTypeTransport, call.request.Method)

	return err
}

// tagsEqual compares two tags with ==, reporting a panic on non-comparable values as an error.
func tagsEqual(a, b any) (equal bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			equal = false
			err = fmt.Errorf("%w: %v", ErrTagNotComparable, r)
		}
	}()

	return a == b, nil
}

// callBody releases the dispatcher slot when the response body is closed.
type callBody struct {
	io.ReadCloser
	onClose func()
}

func (b *callBody) Close() error {
	err := b.ReadCloser.Close()
	b.onClose()

	return err
}

type noopRecorder struct{}

func (noopRecorder) RecordQueued(string) {}

func (noopRecorder) RecordRequestStart(string) {}

func (noopRecorder) RecordRequestEnd(string, int, time.Duration) {}

func (noopRecorder) RecordError(string, string) {}

func (noopRecorder) RecordCanceled(string, int) {}
