package fetchio

// awaiter bridges one task suspension point to one reactor request. One
// awaiter exists per Await call. It cannot live on the awaiting call's
// stack alone: control returns to the reactor before the response
// arrives, so the awaiter is heap-allocated and kept alive by the
// continuation registered with the reactor until that continuation has
// run.
type awaiter struct {
	reactor   *Reactor
	target    string
	task      *Task
	response  []byte
	delivered bool
}

// Await suspends the task until the reactor delivers the response for
// target, then returns the response body. There is no synchronous fast
// path: the task always suspends, even if the transport could answer
// immediately. Must be called from inside the task's own function.
func (t *Task) Await(r *Reactor, target string) []byte {
	if t.state != TaskRunning {
		panic("fetchio: await outside a running task")
	}
	a := &awaiter{reactor: r, target: target, task: t}
	return a.await()
}

func (a *awaiter) await() []byte {
	t := a.task
	t.Logf("AWAIT %s", a.target)

	// The continuation captures the awaiter, and through it the task's
	// resume handle, for the duration of exactly one suspension.
	a.reactor.Submit(a.target, a.complete)

	t.awaiting = a
	t.state = TaskSuspendedAwaiting
	data := t.suspend()
	t.awaiting = nil
	return data
}

func (a *awaiter) complete(_ Status, body []byte) {
	a.response = body
	a.delivered = true
	a.task.Resume()
}
