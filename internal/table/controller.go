package table

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"ims/internal/client"
	"ims/internal/validation"
	custom_error "ims/pkg/errors"
	"ims/pkg/security"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

var (
	ErrBusy         = errors.New("another change is still in progress")
	ErrNotConfirmed = errors.New("deletion was not confirmed")
	ErrNotFound     = errors.New("record not found")
	ErrClosed       = errors.New("controller is closed")
)

// ResyncError reports a change the upstream accepted whose follow-up list
// refresh failed. The change itself is not to be repeated.
type ResyncError struct {
	Op  Operation
	Err error
}

func (e *ResyncError) Error() string {
	return fmt.Sprintf("resynchronize after %s: %v", e.Op, e.Err)
}

func (e *ResyncError) Unwrap() error {
	return e.Err
}

type State string

const (
	StateIdle      State = "idle"
	StateLoading   State = "loading"
	StateLoaded    State = "loaded"
	StateLoadError State = "load_error"
)

// Status is a point-in-time summary of a controller.
type Status struct {
	State     State      `json:"state"`
	Mutating  bool       `json:"mutating"`
	LastError string     `json:"last_error,omitempty"`
	Count     int        `json:"count"`
	LoadedAt  *time.Time `json:"loaded_at,omitempty"`
}

// Controller keeps the in-memory list of one resource and runs its mutations.
// It is safe for concurrent use; network calls are made without holding the lock.
type Controller[T any, F Form] struct {
	def     *Definition[T, F]
	client  client.Requester
	session security.Session
	logger  *zap.Logger

	mu        sync.RWMutex
	items     []T
	state     State
	lastError error
	loadedAt  time.Time
	seq       uint64
	mutating  bool
	closed    bool
	modal     modal[T, F]
}

func NewController[T any, F Form](def *Definition[T, F], requester client.Requester, session security.Session, logger *zap.Logger) *Controller[T, F] {
	c := &Controller[T, F]{
		def:     def,
		client:  requester,
		session: session,
		logger:  logger.With(zap.String("resource", def.Name)),
		state:   StateIdle,
	}
	c.modal.reset(def)
	return c
}

func (c *Controller[T, F]) Definition() *Definition[T, F] {
	return c.def
}

// Load fetches the list. When loads overlap, the last one issued wins and earlier
// responses are discarded. On failure the previous items stay visible.
func (c *Controller[T, F]) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.seq++
	seq := c.seq
	c.state = StateLoading
	c.mu.Unlock()

	raw, err := c.client.Request(ctx, http.MethodGet, c.def.Paths.List, nil)
	var items []T
	if err == nil {
		items, err = c.normalize(raw)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || seq != c.seq {
		c.logger.Debug("Discarding stale list response", zap.Uint64("seq", seq), zap.Uint64("latest", c.seq))
		if err != nil {
			c.expire(err)
		}
		return err
	}

	if err != nil {
		c.state = StateLoadError
		c.lastError = err
		c.expire(err)
		c.logger.Warn("Failed to load list", zap.Error(err))
		return err
	}

	c.items = items
	c.state = StateLoaded
	c.lastError = nil
	c.loadedAt = time.Now()
	c.logger.Debug("List loaded", zap.Int("count", len(items)))

	return nil
}

// EnsureLoaded loads the list unless a load has succeeded or is in flight.
// A list whose last load failed is fetched again.
func (c *Controller[T, F]) EnsureLoaded(ctx context.Context) error {
	c.mu.RLock()
	pending := c.state == StateIdle || c.state == StateLoadError
	c.mu.RUnlock()

	if !pending {
		return nil
	}
	return c.Load(ctx)
}

func (c *Controller[T, F]) normalize(raw []byte) ([]T, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("invalid %s list payload", c.def.Name)
	}
	list := gjson.ParseBytes(raw)
	if !list.IsArray() {
		return nil, fmt.Errorf("expected a %s list, got %s", c.def.Name, list.Type)
	}

	records := list.Array()
	items := make([]T, 0, len(records))
	seen := make(map[int]struct{}, len(records))

	for i, record := range records {
		item, err := c.def.Normalize(record)
		if err != nil {
			c.logger.Warn("Skipping malformed record", zap.Int("index", i), zap.Error(err))
			continue
		}
		id := c.def.ID(item)
		if _, dup := seen[id]; dup {
			c.logger.Warn("Dropping duplicate record", zap.Int("id", id))
			continue
		}
		seen[id] = struct{}{}
		items = append(items, item)
	}

	return items, nil
}

// View derives the visible rows from the current items.
func (c *Controller[T, F]) View(criteria Criteria) Page[T] {
	return c.def.Project(c.Items(), criteria)
}

func (c *Controller[T, F]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

func (c *Controller[T, F]) Find(id int) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.find(id)
}

func (c *Controller[T, F]) find(id int) (T, error) {
	for _, item := range c.items {
		if c.def.ID(item) == id {
			return item, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%s %d: %w", c.def.Noun, id, ErrNotFound)
}

func (c *Controller[T, F]) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()

	status := Status{State: c.state, Mutating: c.mutating, Count: len(c.items)}
	if c.lastError != nil {
		status.LastError = custom_error.Notification(c.lastError)
	}
	if !c.loadedAt.IsZero() {
		loadedAt := c.loadedAt
		status.LoadedAt = &loadedAt
	}
	return status
}

// Create validates form and posts it. Invalid forms never reach the network.
func (c *Controller[T, F]) Create(ctx context.Context, form F) error {
	if errs := c.validate(form, c.def.SchemaFor(OpCreate)); errs != nil {
		return errs
	}

	if err := c.beginMutate(); err != nil {
		return err
	}
	defer c.endMutate()

	body, err := form.Body()
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.def.Noun, err)
	}

	if _, err := c.client.Request(ctx, http.MethodPost, c.def.Paths.Create, body); err != nil {
		return c.fail(OpCreate, err)
	}

	c.logger.Info("Record created")
	return c.settle(ctx, OpCreate, 0)
}

func (c *Controller[T, F]) Update(ctx context.Context, id int, form F) error {
	if errs := c.validate(form, c.def.SchemaFor(OpUpdate)); errs != nil {
		return errs
	}

	if err := c.beginMutate(); err != nil {
		return err
	}
	defer c.endMutate()

	body, err := form.Body()
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.def.Noun, err)
	}

	if _, err := c.client.Request(ctx, http.MethodPut, c.def.Paths.Update(id), body); err != nil {
		return c.fail(OpUpdate, err)
	}

	c.logger.Info("Record updated", zap.Int("id", id))
	return c.settle(ctx, OpUpdate, id)
}

// Remove deletes a loaded record once confirm approves the prompt.
func (c *Controller[T, F]) Remove(ctx context.Context, id int, confirm func(prompt string) bool) error {
	if _, err := c.Find(id); err != nil {
		return err
	}
	if confirm == nil || !confirm(c.def.DeletePrompt()) {
		return ErrNotConfirmed
	}

	if err := c.beginMutate(); err != nil {
		return err
	}
	defer c.endMutate()

	if _, err := c.client.Request(ctx, http.MethodDelete, c.def.Paths.Delete(id), nil); err != nil {
		return c.fail(OpDelete, err)
	}

	c.logger.Info("Record deleted", zap.Int("id", id))
	return c.settle(ctx, OpDelete, id)
}

func (c *Controller[T, F]) validate(form F, schema validation.Schema) error {
	if errs := validation.Validate(form.Values(), schema); len(errs) > 0 {
		return &custom_error.ValidationError{Fields: errs}
	}
	return nil
}

func (c *Controller[T, F]) settle(ctx context.Context, op Operation, id int) error {
	c.mu.RLock()
	closed := c.closed
	c.mu.RUnlock()
	if closed {
		return nil
	}

	switch PolicyFor(op) {
	case PolicyRemoveLocally:
		c.mu.Lock()
		c.items = slices.DeleteFunc(c.items, func(item T) bool { return c.def.ID(item) == id })
		c.mu.Unlock()
	case PolicyRefetch:
		if err := c.Load(ctx); err != nil && !errors.Is(err, ErrClosed) {
			return &ResyncError{Op: op, Err: err}
		}
	}

	return nil
}

func (c *Controller[T, F]) fail(op Operation, err error) error {
	c.mu.Lock()
	c.expire(err)
	c.mu.Unlock()

	c.logger.Warn("Request failed", zap.String("operation", string(op)), zap.Error(err))
	return fmt.Errorf("%s %s: %w", op, c.def.Noun, err)
}

// expire clears the session on any upstream 401. Callers hold c.mu.
func (c *Controller[T, F]) expire(err error) {
	var expired *custom_error.SessionExpiredError
	if !errors.As(err, &expired) {
		return
	}
	if clearErr := c.session.Clear(); clearErr != nil {
		c.logger.Error("Failed to clear expired session", zap.Error(clearErr))
		return
	}
	c.logger.Info("Session expired, token cleared")
}

func (c *Controller[T, F]) beginMutate() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if c.mutating {
		return ErrBusy
	}
	c.mutating = true
	return nil
}

func (c *Controller[T, F]) endMutate() {
	c.mu.Lock()
	c.mutating = false
	c.mu.Unlock()
}

// Close unmounts the controller. Responses that arrive afterwards change nothing.
func (c *Controller[T, F]) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}
