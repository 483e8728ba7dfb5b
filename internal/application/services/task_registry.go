package services

import (
	"context"
	"errors"
	"sync"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/entities"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/infrastructure/observability"
)

var (
	// ErrTaskSuperseded is the cancel cause of a task replaced by a newer one in the same slot
	ErrTaskSuperseded = errors.New("task superseded by a newer request")

	// ErrTaskCanceled is the cancel cause of a task whose screen was left or explicitly cancelled
	ErrTaskCanceled = errors.New("task canceled")
)

type taskSlot struct {
	screen entities.View
	name   string
}

type task struct {
	requestID string
	cancel    context.CancelCauseFunc
}

// TaskRegistry tracks at most one running advisory task per (screen, slot).
// A screen may run several slots at once, one per advisory kind.
type TaskRegistry struct {
	mu     sync.Mutex
	active map[taskSlot]*task
}

// NewTaskRegistry creates an empty registry
func NewTaskRegistry() *TaskRegistry {
	return &TaskRegistry{active: make(map[taskSlot]*task)}
}

// Begin registers a task for requestID, cancelling whatever was running in the same slot.
// The returned finish reports whether the task's result may still be applied, and
// releases the task. It must be called exactly once.
func (r *TaskRegistry) Begin(parent context.Context, screen entities.View, slot, requestID string) (context.Context, func() bool) {
	ctx, cancel := context.WithCancelCause(parent)
	t := &task{requestID: requestID, cancel: cancel}
	key := taskSlot{screen: screen, name: slot}

	r.mu.Lock()
	if prev, ok := r.active[key]; ok {
		prev.cancel(ErrTaskSuperseded)
		observability.LoggerFromContext(parent).Debug().
			Str("screen", string(screen)).
			Str("slot", slot).
			Str("superseded_request_id", prev.requestID).
			Msg("advisory task superseded")
	}
	r.active[key] = t
	r.mu.Unlock()

	finish := func() bool {
		r.mu.Lock()
		current := r.active[key] == t
		if current {
			delete(r.active, key)
		}
		r.mu.Unlock()

		ok := current && ctx.Err() == nil
		cancel(ErrTaskCanceled)
		return ok
	}
	return ctx, finish
}

// CancelScreen cancels every task bound to screen and returns how many were running
func (r *TaskRegistry) CancelScreen(screen entities.View) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for key, t := range r.active {
		if key.screen == screen {
			t.cancel(ErrTaskCanceled)
			delete(r.active, key)
			n++
		}
	}
	return n
}
