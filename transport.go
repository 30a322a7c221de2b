package fetchio

// TransportHandle identifies one operation inside a Transport. Handles
// are opaque to the reactor beyond their target and are only ever handed
// back to the transport that created them.
type TransportHandle interface {
	Target() string
}

// Transport is the collaborator that actually moves bytes. The reactor
// consumes exactly four operations from it: start a request, advance all
// requests one non-blocking step, read a finished request's result, and
// release it. A transport may overlap requests however it likes
// internally, but completions must only ever surface through PollOnce.
type Transport interface {
	// Begin starts one operation for target. It never blocks past call
	// setup; completion is observed later via PollOnce.
	Begin(target string) TransportHandle

	// PollOnce advances the transport one non-blocking step and returns
	// the handles that finished since the previous call, in the order
	// the transport observed them finishing.
	PollOnce() []TransportHandle

	// Result returns the final status and response body for a handle
	// that PollOnce has reported finished.
	Result(th TransportHandle) (Status, []byte)

	// End releases operation-local state. It must be called exactly
	// once per handle, after Result.
	End(th TransportHandle)
}
