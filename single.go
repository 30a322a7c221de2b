package fetchio

import "github.com/gammazero/deque"

// singleFlightCall tracks one in-flight shared fetch: every task parked
// waiting for the leader's response, plus a duplicate count.
type singleFlightCall struct {
	waiters deque.Deque[*awaiter]
	dups    int
}

// singleFlight deduplicates concurrent shared awaits by target. Only
// live calls appear in the map; an entry is removed before any waiter is
// resumed, so a waiter that immediately re-awaits the same target starts
// a fresh request.
type singleFlight struct {
	m map[string]*singleFlightCall
}

// AwaitShared behaves like Await, except that concurrent shared awaits
// of the same target share one underlying request: the first awaiter
// submits it, later ones park until the response arrives, and every task
// receives the same body. Callers must treat the returned bytes as
// read-only.
func (t *Task) AwaitShared(r *Reactor, target string) []byte {
	if t.state != TaskRunning {
		panic("fetchio: await outside a running task")
	}

	sf := &r.single
	if sf.m == nil {
		sf.m = make(map[string]*singleFlightCall)
	}

	if c, ok := sf.m[target]; ok {
		c.dups++
		t.Logf("AWAIT SHARED %s DUP %d", target, c.dups)

		a := &awaiter{reactor: r, target: target, task: t}
		c.waiters.PushBack(a)
		t.awaiting = a
		t.state = TaskSuspendedAwaiting
		data := t.suspend()
		t.awaiting = nil
		return data
	}

	c := new(singleFlightCall)
	sf.m[target] = c
	t.Logf("AWAIT SHARED %s LEAD", target)

	data := t.Await(r, target)

	// Leader is back. Drop the call before resuming anyone, then hand
	// the same body to every parked waiter in arrival order.
	delete(sf.m, target)
	for c.waiters.Len() > 0 {
		a := c.waiters.PopFront()
		a.response = data
		a.delivered = true
		a.task.Resume()
	}
	return data
}
