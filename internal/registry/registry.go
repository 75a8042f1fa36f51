// Package registry provides lookup of window actors by their logical id and
// application-level shutdown. It replaces global process registration with
// an explicit component passed through the bootstrap.
package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/deskshell/deskshell/internal/logging"
	"github.com/deskshell/deskshell/internal/window"
	"github.com/rs/zerolog"
)

// DuplicateIDError is returned when a window id is already registered.
type DuplicateIDError struct {
	ID string
}

func (e DuplicateIDError) Error() string {
	return fmt.Sprintf("registry: window id %q already registered", e.ID)
}

// Registry tracks live window actors by id. Windows unregister themselves
// when their actor terminates.
type Registry struct {
	mu      sync.RWMutex
	windows map[string]*window.Window

	quit     chan struct{}
	quitOnce sync.Once

	logger zerolog.Logger
}

// New creates an empty registry.
func New(ctx context.Context) *Registry {
	return &Registry{
		windows: make(map[string]*window.Window),
		quit:    make(chan struct{}),
		logger:  logging.FromContext(ctx).With().Str("component", "registry").Logger(),
	}
}

// Register adds a window under its id and arranges removal when the actor
// stops. The last window leaving does not quit the application; that
// decision belongs to the close semantics of the windows themselves.
func (r *Registry) Register(w *window.Window) error {
	id := w.ID()

	r.mu.Lock()
	if _, exists := r.windows[id]; exists {
		r.mu.Unlock()
		return DuplicateIDError{ID: id}
	}
	r.windows[id] = w
	r.mu.Unlock()

	go func() {
		<-w.Done()
		r.unregister(id)
	}()

	r.logger.Debug().Str("window_id", id).Msg("window registered")
	return nil
}

// Lookup returns the window registered under id.
func (r *Registry) Lookup(id string) (*window.Window, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.windows[id]
	return w, ok
}

func (r *Registry) unregister(id string) {
	r.mu.Lock()
	delete(r.windows, id)
	r.mu.Unlock()
	r.logger.Debug().Str("window_id", id).Msg("window unregistered")
}

// Len returns the number of live windows.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.windows)
}

// Quit stops every window and marks the application as terminating. Safe to
// call more than once and from any goroutine.
func (r *Registry) Quit() {
	r.quitOnce.Do(func() {
		r.mu.RLock()
		windows := make([]*window.Window, 0, len(r.windows))
		for _, w := range r.windows {
			windows = append(windows, w)
		}
		r.mu.RUnlock()

		r.logger.Info().Int("windows", len(windows)).Msg("application quit requested")

		for _, w := range windows {
			w.Stop()
			<-w.Done()
		}

		close(r.quit)
	})
}

// Done is closed once Quit has stopped all windows.
func (r *Registry) Done() <-chan struct{} {
	return r.quit
}
