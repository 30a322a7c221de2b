package fetchio

import (
	"context"
	"io"
	"runtime/trace"

	"github.com/gammazero/deque"
)

// Reactor multiplexes many in-flight requests on one goroutine. It owns
// the transport multiplexer state and the completion registry; every
// continuation runs on the goroutine that calls Poll, one at a time, so
// no locking is needed by construction. A Reactor must not be copied and
// must not be shared across goroutines.
type Reactor struct {
	noCopy    noCopy
	ctx       context.Context
	tracer    *trace.Task
	transport Transport
	reg       completionRegistry
	inflight  map[TransportHandle]*RequestHandle
	ready     deque.Deque[*RequestHandle]
	single    singleFlight
	closed    bool
}

// New creates a Reactor driving transport. The transport must be
// non-nil; there is no recoverable error path at this layer.
func New(transport Transport) *Reactor {
	if transport == nil {
		panic("fetchio: new reactor with nil transport")
	}

	r := &Reactor{
		transport: transport,
		inflight:  make(map[TransportHandle]*RequestHandle),
	}
	r.ctx, r.tracer = trace.NewTask(context.Background(), traceReactorType)
	return r
}

// Submit starts a request for target and registers cont to run with the
// final response. Fire and forget: delivery is always deferred to a
// later Poll, never synchronous. A continuation running during a drain
// may itself call Submit; the new request is observed by a later Poll.
func (r *Reactor) Submit(target string, cont Continuation) {
	if r.closed {
		panic("fetchio: submit on closed reactor")
	}

	th := r.transport.Begin(target)
	h := newRequestHandle(target, th)
	r.reg.register(h.id, cont)
	r.inflight[th] = h

	trace.Logf(r.ctx, traceCategory, "SUBMIT %v", h)
}

// Poll advances the transport one non-blocking step, then dispatches
// every completion it reported, in report order. Each completion is
// fully dispatched (registry drained, continuation run to return) before
// the next is considered. A non-success status is fatal: continuations
// only ever see successful results.
func (r *Reactor) Poll() {
	if r.closed {
		panic("fetchio: poll on closed reactor")
	}

	for _, th := range r.transport.PollOnce() {
		h, ok := r.inflight[th]
		if !ok {
			panic("fetchio: transport reported unknown handle")
		}
		delete(r.inflight, th)

		h.status, h.body = r.transport.Result(h.th)
		r.transport.End(h.th)
		if !h.status.OK() {
			panic("fetchio: request failed: " + h.String())
		}
		r.ready.PushBack(h)
	}

	for r.ready.Len() > 0 {
		h := r.ready.PopFront()
		trace.Logf(r.ctx, traceCategory, "DISPATCH %v", h)

		cont := r.reg.drain(h.id)
		body := h.body
		h.body = nil // buffer ownership moves to the continuation
		cont(h.status, body)
	}
}

// Pending returns the number of requests whose continuations have not
// yet been dispatched.
func (r *Reactor) Pending() int { return r.reg.len() }

// Close releases the reactor. Every submitted request must have been
// drained first: a continuation left registered at close time would be
// stranded against freed state, so closing with pending requests is
// fatal. Closing also closes the transport when it implements io.Closer.
// Close is idempotent.
func (r *Reactor) Close() {
	if r.closed {
		return
	}
	if r.reg.len() != 0 {
		panic("fetchio: reactor closed with pending requests")
	}

	r.closed = true
	trace.Log(r.ctx, traceCategory, "CLOSE")
	r.tracer.End()

	if c, ok := r.transport.(io.Closer); ok {
		if err := c.Close(); err != nil {
			panic("fetchio: transport close: " + err.Error())
		}
	}
}
