package fetchio

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAwaitDeliversResponseToTask(t *testing.T) {
	r := require.New(t)

	ft := newFakeTransport()
	reactor := New(ft)

	var got []byte
	task := NewTask(context.Background(), func(_ context.Context, t *Task) {
		got = t.Await(reactor, "a")
	})

	task.Start()
	r.False(task.IsFinished())
	r.Nil(got)
	r.Equal(1, reactor.Pending())

	ft.finishAll()
	reactor.Poll()

	r.True(task.IsFinished())
	r.Equal([]byte("body:a"), got)
	reactor.Close()
}

func TestAwaitNoCrossTalkBetweenTasks(t *testing.T) {
	r := require.New(t)

	ft := newFakeTransport()
	reactor := New(ft)

	var gotA, gotB []byte
	taskA := NewTask(context.Background(), func(_ context.Context, t *Task) {
		gotA = t.Await(reactor, "a")
	})
	taskB := NewTask(context.Background(), func(_ context.Context, t *Task) {
		gotB = t.Await(reactor, "b")
	})

	taskA.Start()
	taskB.Start()

	// Complete in reverse submission order; each task must still get its
	// own response.
	ft.finish(1)
	ft.finish(0)
	reactor.Poll()

	r.True(taskA.IsFinished())
	r.True(taskB.IsFinished())
	r.Equal([]byte("body:a"), gotA)
	r.Equal([]byte("body:b"), gotB)
	reactor.Close()
}

func TestSequentialAwaitsMatchDirectCalls(t *testing.T) {
	r := require.New(t)

	ft := newFakeTransport()
	reactor := New(ft)

	combine := func(a, b []byte) string { return string(a) + "+" + string(b) }

	var got string
	task := NewTask(context.Background(), func(_ context.Context, t *Task) {
		first := t.Await(reactor, "a")
		second := t.Await(reactor, "b")
		got = combine(first, second)
	})

	task.Start()
	for !task.IsFinished() {
		ft.finishAll()
		reactor.Poll()
	}

	r.Equal(combine([]byte("body:a"), []byte("body:b")), got)
	r.Len(ft.begun, 2)
	reactor.Close()
}

func TestSharedCounterEndToEnd(t *testing.T) {
	r := require.New(t)

	ft := newFakeTransport()
	reactor := New(ft)

	done := 0
	got := make(map[string][]byte)
	for _, target := range []string{"A", "B"} {
		reactor.Submit(target, func(_ Status, body []byte) {
			done++
			got[target] = body
		})
	}

	// Finish B before A; the counter and captured responses must not
	// depend on completion order.
	ft.finish(1)
	ft.finish(0)
	for done < 2 {
		reactor.Poll()
	}

	r.Equal([]byte("body:A"), got["A"])
	r.Equal([]byte("body:B"), got["B"])
	reactor.Close()
}

func TestAwaitSharedDeduplicates(t *testing.T) {
	r := require.New(t)

	ft := newFakeTransport()
	reactor := New(ft)

	const workers = 3
	var bodies [workers][]byte
	tasks := make([]*Task, workers)
	for i := range tasks {
		tasks[i] = NewTask(context.Background(), func(_ context.Context, t *Task) {
			bodies[i] = t.AwaitShared(reactor, "shared")
		})
	}
	for _, task := range tasks {
		task.Start()
	}

	// One leader submitted, the rest parked.
	r.Len(ft.begun, 1)
	r.Equal(1, reactor.Pending())

	ft.finishAll()
	reactor.Poll()

	for i, task := range tasks {
		r.True(task.IsFinished())
		r.Equal([]byte("body:shared"), bodies[i])
	}
	reactor.Close()
}

func TestAwaitSharedFreshCallAfterDrain(t *testing.T) {
	r := require.New(t)

	ft := newFakeTransport()
	reactor := New(ft)

	var first, second []byte
	task := NewTask(context.Background(), func(_ context.Context, t *Task) {
		first = t.AwaitShared(reactor, "shared")
		second = t.AwaitShared(reactor, "shared")
	})

	task.Start()
	for !task.IsFinished() {
		ft.finishAll()
		reactor.Poll()
	}

	// The call entry was removed before resumption, so the second await
	// started a fresh request.
	r.Len(ft.begun, 2)
	r.Equal([]byte("body:shared"), first)
	r.Equal([]byte("body:shared"), second)
	reactor.Close()
}

func TestAwaitOutsideRunningTaskFatal(t *testing.T) {
	reactor := New(newFakeTransport())
	task := NewTask(context.Background(), func(context.Context, *Task) {})

	require.PanicsWithValue(t, "fetchio: await outside a running task", func() {
		task.Await(reactor, "x")
	})
	require.PanicsWithValue(t, "fetchio: await outside a running task", func() {
		task.AwaitShared(reactor, "x")
	})
}
