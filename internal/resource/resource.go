// Package resource holds the load and mutate state shared by every view
package resource

import (
	"context"
	"sync"
	"time"

	"github.com/KirkDiggler/chapterplate/internal/common/clock"
)

// Status is where a resource is in its lifecycle
type Status string

const (
	StatusIdle       Status = "idle"
	StatusLoading    Status = "loading"
	StatusReady      Status = "ready"
	StatusSubmitting Status = "submitting"
	StatusFailed     Status = "failed"
)

// ResourceError is a custom error type for resource errors
type ResourceError string

// Error implements the error interface
func (e ResourceError) Error() string {
	return string(e)
}

const (
	// ErrClosed is returned when a result arrives after the view was closed
	ErrClosed ResourceError = "view closed"

	// ErrNotReady is returned when mutating before a successful load
	ErrNotReady ResourceError = "data not loaded"

	ErrNilMutation ResourceError = "mutation cannot be nil"
)

// Config holds configuration for a resource
type Config struct {
	Clock clock.Clock

	// BannerTTL clears success banners after this long; zero keeps them
	// until the next mutation
	BannerTTL time.Duration
}

// Mutation is a server call followed by an in-place patch of the loaded
// data. Patch runs only after Call succeeds, against the latest data.
type Mutation[T any] struct {
	Call   func(ctx context.Context) error
	Patch  func(data T) T
	Banner string
}

// Snapshot is a consistent copy of a resource's state for rendering
type Snapshot[T any] struct {
	Status Status
	Data   T

	// Err is the failure of the last load
	Err error

	// ActionErr is the failure of the last mutation; Data is untouched
	ActionErr error

	Banner string
}

// Loaded reports whether Data holds a successful load
func (s Snapshot[T]) Loaded() bool {
	return s.Status == StatusReady || s.Status == StatusSubmitting
}

// Resource is a remote value owned by one view. All calls made through it
// are bound to the view's lifetime and discarded after Close.
type Resource[T any] struct {
	clock     clock.Clock
	bannerTTL time.Duration

	lifetime context.Context
	cancel   context.CancelFunc

	mu        sync.Mutex
	status    Status
	data      T
	loaded    bool
	err       error
	actionErr error
	banner    string
	bannerAt  time.Time
	pending   int
	closed    bool
}

// New creates an idle resource
func New[T any](cfg *Config) *Resource[T] {
	if cfg == nil {
		cfg = &Config{}
	}
	c := cfg.Clock
	if c == nil {
		c = clock.New(nil)
	}

	lifetime, cancel := context.WithCancel(context.Background())
	return &Resource[T]{
		clock:     c,
		bannerTTL: cfg.BannerTTL,
		lifetime:  lifetime,
		cancel:    cancel,
		status:    StatusIdle,
	}
}

// Load fetches the resource. On failure the resource is failed and any
// previously loaded data is kept but no longer reported as ready.
func (r *Resource[T]) Load(ctx context.Context, fetch func(ctx context.Context) (T, error)) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrClosed
	}
	r.status = StatusLoading
	r.err = nil
	r.mu.Unlock()

	ctx, stop := r.bind(ctx)
	defer stop()

	data, err := fetch(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	if err != nil {
		r.status = StatusFailed
		r.err = err
		return err
	}

	r.data = data
	r.loaded = true
	r.actionErr = nil
	r.status = r.settledStatus()
	return nil
}

// Mutate runs m against a loaded resource. Concurrent mutations are sent
// independently and patched in the order they resolve.
func (r *Resource[T]) Mutate(ctx context.Context, m *Mutation[T]) error {
	if m == nil || m.Call == nil {
		return ErrNilMutation
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrClosed
	}
	if !r.loaded || r.status == StatusFailed || r.status == StatusLoading {
		r.mu.Unlock()
		return ErrNotReady
	}
	r.pending++
	r.status = StatusSubmitting
	r.actionErr = nil
	r.mu.Unlock()

	ctx, stop := r.bind(ctx)
	defer stop()

	err := m.Call(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	r.pending--
	if r.status == StatusSubmitting {
		r.status = r.settledStatus()
	}

	if err != nil {
		r.actionErr = err
		return err
	}

	if m.Patch != nil {
		r.data = m.Patch(r.data)
	}
	if m.Banner != "" {
		r.banner = m.Banner
		r.bannerAt = r.clock.Now()
	}
	return nil
}

// SetBanner shows a transient message without a mutation
func (r *Resource[T]) SetBanner(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.banner = msg
	r.bannerAt = r.clock.Now()
}

// Snapshot returns the current state. Expired banners are cleared here.
func (r *Resource[T]) Snapshot() Snapshot[T] {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.banner != "" && r.bannerTTL > 0 && r.clock.Now().Sub(r.bannerAt) >= r.bannerTTL {
		r.banner = ""
	}

	return Snapshot[T]{
		Status:    r.status,
		Data:      r.data,
		Err:       r.err,
		ActionErr: r.actionErr,
		Banner:    r.banner,
	}
}

// Close tears the view down: in-flight calls are cancelled and their
// results discarded
func (r *Resource[T]) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	r.cancel()
}

// Closed reports whether Close was called
func (r *Resource[T]) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// settledStatus must be called with mu held
func (r *Resource[T]) settledStatus() Status {
	if r.pending > 0 {
		return StatusSubmitting
	}
	return StatusReady
}

// bind derives a context that is cancelled by either the caller or Close
func (r *Resource[T]) bind(ctx context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(r.lifetime, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}
