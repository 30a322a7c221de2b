package fetchio

import "github.com/oklog/ulid/v2"

// Continuation is a deferred action invoked exactly once when its request
// completes. By contract it only ever runs with a successful status: the
// reactor aborts on transport failure before dispatch. The response body
// becomes the continuation's to keep.
type Continuation func(status Status, body []byte)

// completionRegistry associates each live handle with the single
// continuation to run when it finishes. A handle is present from submit
// until drain; registering a handle twice, or draining one that was never
// registered, is a contract violation.
type completionRegistry struct {
	m map[ulid.ULID]Continuation
}

func (r *completionRegistry) register(id ulid.ULID, cont Continuation) {
	if cont == nil {
		panic("fetchio: register with nil continuation")
	}
	if r.m == nil {
		r.m = make(map[ulid.ULID]Continuation)
	}
	if _, ok := r.m[id]; ok {
		panic("fetchio: handle registered twice: " + id.String())
	}
	r.m[id] = cont
}

// drain removes and returns the continuation for id. The entry is gone
// before the continuation runs, so a continuation that submits new work
// sees a consistent registry.
func (r *completionRegistry) drain(id ulid.ULID) Continuation {
	cont, ok := r.m[id]
	if !ok {
		panic("fetchio: drain of unregistered handle: " + id.String())
	}
	delete(r.m, id)
	return cont
}

func (r *completionRegistry) len() int { return len(r.m) }
