package fetchio

import (
	"context"
	"fmt"
	"runtime/trace"

	"github.com/webriots/coro"
)

const (
	traceTaskType    = "fetchio-task"
	traceReactorType = "fetchio-reactor"
	traceRegionType  = "fetchio-region"
	traceCategory    = "fetchio"
)

// TaskState is the externally visible state of a Task. Running exists
// only during the dynamic extent of a Start or Resume call; drivers only
// ever observe the suspended and finished states.
type TaskState int32

const (
	TaskSuspendedInitial TaskState = iota
	TaskRunning
	TaskSuspendedAwaiting
	TaskFinished
	taskCancelled
)

func (s TaskState) String() string {
	switch s {
	case TaskSuspendedInitial:
		return "suspended-initial"
	case TaskRunning:
		return "running"
	case TaskSuspendedAwaiting:
		return "suspended-awaiting"
	case TaskFinished:
		return "finished"
	case taskCancelled:
		return "cancelled"
	}
	return fmt.Sprintf("TaskState(%d)", int32(s))
}

// Task is a resumable computation that can park at request boundaries.
// It exclusively owns its underlying coroutine: whoever holds the Task
// holds the unique right to resume it. Purely cooperative, nothing about
// a Task involves a second thread of control.
//
// A Task must outlive every request it has suspended on. The driver that
// starts a Task has to hold it until IsFinished reports true (Drive does
// exactly that); releasing it earlier leaves the reactor with a
// continuation pointing at a dead computation.
type Task struct {
	ctx      context.Context
	tracer   *trace.Task
	state    TaskState
	resume   func([]byte) (struct{}, bool)
	cancel   func()
	suspend  func() []byte
	awaiting *awaiter
}

// NewTask creates a Task in the suspended-initial state. The function
// does not run until Start; inside it, ctx carries the task itself (see
// TaskFromContext) and Await parks the task on a reactor request.
func NewTask(ctx context.Context, fn func(context.Context, *Task)) *Task {
	task := &Task{state: TaskSuspendedInitial}

	ctx, task.tracer = trace.NewTask(ctx, traceTaskType)
	task.ctx = withTaskContext(ctx, task)

	resume, cancel := coro.New(
		func(_ func(struct{}) []byte, suspend func() []byte) (z struct{}) {
			region := trace.StartRegion(task.ctx, traceRegionType)
			defer region.End()

			task.suspend = suspend
			fn(task.ctx, task)
			return
		},
	)

	task.resume = resume
	task.cancel = cancel
	return task
}

// Start runs the task until it finishes or reaches its first suspension
// point. Valid exactly once, on a task that has never run.
func (t *Task) Start() {
	if t.state != TaskSuspendedInitial {
		panic("fetchio: start of task that is not suspended-initial")
	}
	t.Log("START")
	t.state = TaskRunning
	t.advance(nil)
}

// Resume continues the task from its suspension point with the response
// the bridge delivered, running until it finishes or suspends again.
// Valid only on a suspended-awaiting task whose response has arrived;
// the reactor calls Resume through the awaiter's continuation, so
// drivers normally never call it themselves.
func (t *Task) Resume() {
	switch t.state {
	case taskCancelled:
		panic("fetchio: resume of cancelled task")
	case TaskSuspendedAwaiting:
	default:
		panic("fetchio: resume of task that is not suspended-awaiting")
	}

	a := t.awaiting
	if a == nil || !a.delivered {
		panic("fetchio: resume before response delivery")
	}

	t.Log("RESUME")
	t.state = TaskRunning
	t.advance(a.response)
}

func (t *Task) advance(data []byte) {
	_, alive := t.resume(data)
	if !alive {
		t.Log("FINISH")
		t.state = TaskFinished
		t.tracer.End()
		return
	}
	if t.state != TaskSuspendedAwaiting {
		panic("fetchio: task suspended outside an await")
	}
}

// IsFinished reports whether the task has run to completion. It never
// mutates state.
func (t *Task) IsFinished() bool { return t.state == TaskFinished }

// State returns the task's current state.
func (t *Task) State() TaskState { return t.state }

// Cancel releases the task's coroutine, the destructor analog. Safe only
// on a finished or never-started task. Cancelling a suspended-awaiting
// task does not unregister its request: the eventual delivery then
// resumes a dead computation, which panics deterministically. The real
// fix is ownership, not this check — hold the task until IsFinished.
func (t *Task) Cancel() {
	switch t.state {
	case taskCancelled:
		return
	case TaskFinished:
		t.cancel()
		return
	}

	t.Log("CANCEL")
	t.state = taskCancelled
	t.tracer.End()
	t.cancel()
}

// Log writes msg to the execution trace when tracing is enabled.
func (t *Task) Log(msg string) {
	if trace.IsEnabled() {
		trace.Logf(t.ctx, traceCategory, "%p %s", t, msg)
	}
}

// Logf writes a formatted message to the execution trace when tracing is
// enabled.
func (t *Task) Logf(format string, args ...any) {
	if trace.IsEnabled() {
		trace.Logf(t.ctx, traceCategory, "%p %s", t, fmt.Sprintf(format, args...))
	}
}
