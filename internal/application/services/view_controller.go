package services

import (
	"context"
	"sync"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/entities"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/ayurvedaclinic/backend/pkg/errors"
)

// ScreenCanceler drops the background work bound to a screen
type ScreenCanceler interface {
	CancelScreen(screen entities.View) int
}

// ViewController tracks which screen is active. Leaving a screen cancels its advisory tasks.
type ViewController struct {
	mu     sync.Mutex
	active entities.View
	tasks  ScreenCanceler
}

// NewViewController starts on the dashboard
func NewViewController(tasks ScreenCanceler) *ViewController {
	return &ViewController{active: entities.ViewDashboard, tasks: tasks}
}

// Active returns the current screen
func (c *ViewController) Active() entities.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Navigate switches to view and returns the screen that was left
func (c *ViewController) Navigate(ctx context.Context, view entities.View) (entities.View, error) {
	if !view.Valid() {
		return "", apperrors.NewValidationError("unknown view: " + string(view))
	}

	c.mu.Lock()
	previous := c.active
	c.active = view
	c.mu.Unlock()

	if previous != view && c.tasks != nil {
		if n := c.tasks.CancelScreen(previous); n > 0 {
			observability.LoggerFromContext(ctx).Debug().
				Str("from", string(previous)).
				Str("to", string(view)).
				Int("canceled_tasks", n).
				Msg("left screen with running advisory tasks")
		}
	}
	return previous, nil
}
