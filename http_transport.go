package fetchio

import (
	"io"
	"net/http"
	"sync"
)

// HTTPTransportConcurrencyLimit caps the number of GETs an HTTPTransport
// runs at once.
const HTTPTransportConcurrencyLimit = 128

// HTTPTransport is a Transport that performs real HTTP GETs. Each Begin
// starts the request on an internal goroutine, bounded by a semaphore
// channel; finished operations surface only through PollOnce, so
// everything the reactor observes happens on the polling goroutine.
type HTTPTransport struct {
	client *http.Client
	sema   chan struct{}
	done   chan *httpOp
	wg     sync.WaitGroup
}

type httpOp struct {
	target string
	status Status
	body   []byte
	ended  bool
}

func (op *httpOp) Target() string { return op.target }

// NewHTTPTransport returns a transport backed by client, or
// http.DefaultClient when client is nil.
func NewHTTPTransport(client *http.Client) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{
		client: client,
		sema:   make(chan struct{}, HTTPTransportConcurrencyLimit),
		done:   make(chan *httpOp, HTTPTransportConcurrencyLimit),
	}
}

func (t *HTTPTransport) Begin(target string) TransportHandle {
	op := &httpOp{target: target}

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		t.sema <- struct{}{}
		defer func() { <-t.sema }()
		t.perform(op)
		t.done <- op
	}()

	return op
}

func (t *HTTPTransport) perform(op *httpOp) {
	resp, err := t.client.Get(op.target)
	if err != nil {
		op.status = Status{Err: err}
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		op.status = Status{Code: resp.StatusCode, Err: err}
		return
	}

	op.status = Status{Code: resp.StatusCode}
	op.body = body
}

func (t *HTTPTransport) PollOnce() []TransportHandle {
	var finished []TransportHandle
	for {
		select {
		case op := <-t.done:
			finished = append(finished, op)
		default:
			return finished
		}
	}
}

func (t *HTTPTransport) Result(th TransportHandle) (Status, []byte) {
	op := t.op(th)
	if op.ended {
		panic("fetchio: result read after end")
	}
	return op.status, op.body
}

func (t *HTTPTransport) End(th TransportHandle) {
	op := t.op(th)
	if op.ended {
		panic("fetchio: transport handle ended twice")
	}
	op.ended = true
	op.body = nil
}

func (t *HTTPTransport) op(th TransportHandle) *httpOp {
	op, ok := th.(*httpOp)
	if !ok {
		panic("fetchio: foreign transport handle")
	}
	return op
}

// Close waits for in-flight operations to settle. Completions that were
// never polled are discarded.
func (t *HTTPTransport) Close() error {
	settled := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(settled)
	}()

	for {
		select {
		case <-t.done:
		case <-settled:
			for {
				select {
				case <-t.done:
				default:
					return nil
				}
			}
		}
	}
}
