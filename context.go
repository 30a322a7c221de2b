package fetchio

import "context"

// taskContextKey is a unique type used as a key for storing Task values
// in a context.
type taskContextKey struct{}

// withTaskContext creates a new context with the task stored in it, so
// code running inside the task can get back to it.
func withTaskContext(ctx context.Context, task *Task) context.Context {
	return context.WithValue(ctx, taskContextKey{}, task)
}

// TaskFromContext retrieves the running Task from a context created by
// NewTask. Returns the task and whether one was found.
func TaskFromContext(ctx context.Context) (*Task, bool) {
	task, ok := ctx.Value(taskContextKey{}).(*Task)
	return task, ok
}
