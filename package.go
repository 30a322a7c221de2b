// Package fetchio provides a single-threaded request reactor with a
// coroutine-style completion bridge. Many requests are multiplexed by
// one goroutine of control; each completion is delivered exactly once to
// the continuation registered for it, and a resumable Task abstraction
// lets sequential-looking code suspend at a request boundary and resume
// when the response arrives.
//
// Key components:
//
//   - Reactor: owns the transport multiplexer and the completion
//     registry. Submit starts a request, Poll advances everything one
//     non-blocking step and dispatches finished requests, Close releases
//     the reactor once nothing is pending.
//
//   - Transport: the collaborator that actually moves bytes, consumed
//     through Begin, PollOnce, Result and End. HTTPTransport is the real
//     HTTP GET implementation.
//
//   - Task: a resumable unit of work with explicit suspended, running
//     and finished states, driven cooperatively by its holder. Await
//     parks a task on a reactor request; AwaitShared additionally
//     deduplicates concurrent awaits of one target.
//
//   - Drive: the standard driver loop, starting tasks and polling the
//     reactor until all of them finish.
//
// Everything is cooperative: continuations and task resumptions run on
// the goroutine that calls Poll, one at a time. Contract violations
// (double registration, draining an unknown handle, closing a reactor
// with pending requests, resuming a task that is not awaiting, a failed
// request) are fatal by design.
package fetchio
