package guard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/feral-file/ff-marketplace/internal/domain"
)

type executionKey struct{}

// Compensation undoes one committed effect of a call
type Compensation func(ctx context.Context) error

// frame is the bookkeeping of one admitted call, outermost or nested
type frame struct {
	assets        []domain.AssetID
	compensations []Compensation
	onCommit      []func()
}

// execution tracks one outermost state-changing call and the calls nested inside it.
// Reentrant calls made with a context derived from the outer call share the execution.
type execution struct {
	mu     sync.Mutex
	assets map[domain.AssetID]int
	frames []*frame
	done   bool
}

// Release ends an admitted call. It must be called exactly once with the call's outcome.
//
// On failure the compensations registered by the call, including those of nested calls that
// succeeded inside it, run newest first and their joined error is returned. On success a
// nested call hands its compensations and commit effects to the enclosing call; the
// outermost call runs its commit effects once the write lock has been released.
type Release func(failure error) error

// Done releases with *errp as the outcome and joins any compensation failure into it.
// It is meant to be deferred by functions with a named error result.
func (r Release) Done(errp *error) {
	if err := r(*errp); err != nil {
		*errp = errors.Join(*errp, err)
	}
}

// Guard is the single serialization point for state-changing operations.
//
// The first Enter on a context acquires the write lock. Nested Enter calls that carry the
// returned context (for example from code invoked during fund settlement) do not block on
// the lock; they are admitted unless they target an asset that an outer call is still
// mutating, in which case they fail with domain.ErrReentrancyViolation. A nested call that
// succeeds is still undone if the outermost call fails.
//
// Readers take the read lock through Read, so outside callers only ever see state from
// before or after a complete write. A call that drops the context and re-enters on a fresh
// one blocks until the outer call returns.
type Guard struct {
	mu sync.RWMutex
}

// New creates a new guard
func New() *Guard {
	return &Guard{}
}

// Enter admits a state-changing call. assets lists the assets the call mutates (none for
// mint). The returned context must be used for everything the call does until release.
func (g *Guard) Enter(ctx context.Context, assets ...domain.AssetID) (context.Context, Release, error) {
	if exec, ok := ctx.Value(executionKey{}).(*execution); ok && exec.active() {
		f, err := exec.push(assets)
		if err != nil {
			return ctx, func(error) error { return nil }, err
		}
		var once sync.Once
		return ctx, func(failure error) error {
			var err error
			once.Do(func() { err = exec.pop(ctx, f, failure) })
			return err
		}, nil
	}

	g.mu.Lock()
	exec := &execution{assets: make(map[domain.AssetID]int)}
	// the outermost call cannot collide with itself
	f, _ := exec.push(assets)
	ctx = context.WithValue(ctx, executionKey{}, exec)

	var once sync.Once
	release := func(failure error) error {
		var err error
		once.Do(func() {
			err = exec.pop(ctx, f, failure)
			effects := exec.finish(failure == nil, f)
			g.mu.Unlock()

			for _, effect := range effects {
				effect()
			}
		})
		return err
	}
	return ctx, release, nil
}

// Read admits a reader and returns the function that ends the read. Reads made from inside
// an in-flight call see that call's uncommitted state and do not wait.
func (g *Guard) Read(ctx context.Context) func() {
	if InFlight(ctx) {
		return func() {}
	}
	g.mu.RLock()
	return g.mu.RUnlock
}

// Compensate registers how to undo an effect the current call has committed.
// It is a no-op outside an in-flight call.
func Compensate(ctx context.Context, compensation Compensation) {
	if exec, ok := ctx.Value(executionKey{}).(*execution); ok {
		exec.mu.Lock()
		defer exec.mu.Unlock()
		if top := exec.top(); top != nil {
			top.compensations = append(top.compensations, compensation)
		}
	}
}

// OnCommit defers effect until the outermost call commits; it is dropped if that call fails.
// Outside an in-flight call effect runs immediately.
func OnCommit(ctx context.Context, effect func()) {
	if exec, ok := ctx.Value(executionKey{}).(*execution); ok {
		exec.mu.Lock()
		if top := exec.top(); top != nil && !exec.done {
			top.onCommit = append(top.onCommit, effect)
			exec.mu.Unlock()
			return
		}
		exec.mu.Unlock()
	}
	effect()
}

// InFlight reports whether ctx belongs to a state-changing call that has not returned yet
func InFlight(ctx context.Context) bool {
	exec, ok := ctx.Value(executionKey{}).(*execution)
	return ok && exec.active()
}

func (e *execution) active() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.done
}

func (e *execution) top() *frame {
	if len(e.frames) == 0 {
		return nil
	}
	return e.frames[len(e.frames)-1]
}

// finish marks the execution done and returns the commit effects to run
func (e *execution) finish(committed bool, outermost *frame) []func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.done = true
	if !committed {
		return nil
	}
	return outermost.onCommit
}

func (e *execution) push(assets []domain.AssetID) (*frame, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, id := range assets {
		if e.assets[id] > 0 {
			return nil, fmt.Errorf("asset %s is being mutated by an outer call: %w", id, domain.ErrReentrancyViolation)
		}
	}
	for _, id := range assets {
		e.assets[id]++
	}

	f := &frame{assets: assets}
	e.frames = append(e.frames, f)
	return f, nil
}

// pop closes f. A failed frame is compensated; a committed one is folded into its parent.
func (e *execution) pop(ctx context.Context, f *frame, failure error) error {
	e.mu.Lock()
	for _, id := range f.assets {
		if e.assets[id]--; e.assets[id] <= 0 {
			delete(e.assets, id)
		}
	}

	idx := -1
	for i := len(e.frames) - 1; i >= 0; i-- {
		if e.frames[i] == f {
			idx = i
			break
		}
	}
	if idx >= 0 {
		e.frames = append(e.frames[:idx], e.frames[idx+1:]...)
	}

	if failure == nil {
		if idx > 0 {
			parent := e.frames[idx-1]
			parent.compensations = append(parent.compensations, f.compensations...)
			parent.onCommit = append(parent.onCommit, f.onCommit...)
			f.onCommit = nil
		}
		e.mu.Unlock()
		return nil
	}

	compensations := f.compensations
	f.compensations = nil
	f.onCommit = nil
	e.mu.Unlock()

	// compensations call the store directly and never re-enter the guard
	var errs []error
	for i := len(compensations) - 1; i >= 0; i-- {
		if err := compensations[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
