// Package counter holds the state and actions of the counter screen: a name
// field, a counter, and the load-on-start / save-on-exit cycle against a
// store.Store.
package counter

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/idilsaglam/tally/internal/model"
	"github.com/idilsaglam/tally/internal/store"
)

// ErrClosed is returned by ExitAndSave once the screen is closed.
var ErrClosed = errors.New("screen already closed")

// State is the screen lifecycle: Loading -> Ready -> Closed.
type State int

const (
	StateLoading State = iota
	StateReady
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateClosed:
		return "closed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Keys names the store keys the controller uses.
type Keys struct {
	Name  string
	Count string
}

// DefaultKeys are the keys the original screen persisted under.
var DefaultKeys = Keys{Name: model.KeyName, Count: model.KeyCount}

// Controller is the counter screen. It is driven from a single event loop
// and is not safe for concurrent use.
type Controller struct {
	store   store.Store
	log     *slog.Logger
	keys    Keys
	credits Credits

	prefs model.Prefs
	state State
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithKeys overrides the store keys.
func WithKeys(k Keys) Option {
	return func(c *Controller) { c.keys = k }
}

// WithCredits sets the content returned by OpenCredits.
func WithCredits(cr Credits) Option {
	return func(c *Controller) { c.credits = cr }
}

// New returns a controller in the Loading state. Call Initialize to read
// the stored values.
func New(s store.Store, opts ...Option) *Controller {
	c := &Controller{
		store:   s,
		log:     slog.New(slog.DiscardHandler),
		keys:    DefaultKeys,
		credits: DefaultCredits(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Initialize loads name and count from the store. Missing keys and read
// failures both fall back to the defaults; failures are logged.
func (c *Controller) Initialize() {
	name, err := c.store.GetString(c.keys.Name, "")
	if err != nil {
		c.log.Warn("load name failed, using default", "key", c.keys.Name, "err", err)
		name = ""
	}
	count, err := c.store.GetInt(c.keys.Count, 0)
	if err != nil {
		c.log.Warn("load count failed, using default", "key", c.keys.Count, "err", err)
		count = 0
	}
	if count < 0 {
		c.log.Warn("stored count is negative, clamping to 0", "count", count)
		count = 0
	}
	if count > model.MaxCount {
		c.log.Warn("stored count exceeds max, clamping", "count", count, "max", model.MaxCount)
		count = model.MaxCount
	}
	c.prefs = model.Prefs{Name: name, Count: count}
	c.state = StateReady
	c.log.Info("screen ready", "name", name, "count", count)
}

// Increment adds one to the count, saturating at model.MaxCount, and returns
// the new value.
func (c *Controller) Increment() int {
	if c.state == StateClosed {
		return c.prefs.Count
	}
	if c.prefs.Count < model.MaxCount {
		c.prefs.Count++
	}
	return c.prefs.Count
}

// Reset sets the count to zero.
func (c *Controller) Reset() {
	if c.state == StateClosed {
		return
	}
	c.prefs.Count = 0
}

// SetName mirrors the name field.
func (c *Controller) SetName(name string) {
	if c.state == StateClosed {
		return
	}
	c.prefs.Name = name
}

// ExitAndSave writes name and count in one commit and closes the screen.
// The screen closes even when the commit fails; the error is logged and
// returned.
func (c *Controller) ExitAndSave() error {
	if c.state == StateClosed {
		return ErrClosed
	}
	c.state = StateClosed
	err := c.store.Edit().
		PutString(c.keys.Name, c.prefs.Name).
		PutInt(c.keys.Count, c.prefs.Count).
		Commit()
	if err != nil {
		c.log.Error("save failed", "name", c.prefs.Name, "count", c.prefs.Count, "err", err)
		return fmt.Errorf("save: %w", err)
	}
	c.log.Info("saved", "name", c.prefs.Name, "count", c.prefs.Count)
	return nil
}

// Close ends the screen without saving.
func (c *Controller) Close() {
	if c.state == StateClosed {
		return
	}
	c.state = StateClosed
	c.log.Info("closed without saving", "count", c.prefs.Count)
}

// OpenCredits returns the credits screen content.
func (c *Controller) OpenCredits() Credits {
	c.log.Debug("open credits")
	return Credits{Title: c.credits.Title, Lines: slices.Clone(c.credits.Lines)}
}

func (c *Controller) Name() string       { return c.prefs.Name }
func (c *Controller) Count() int         { return c.prefs.Count }
func (c *Controller) State() State       { return c.state }
func (c *Controller) Prefs() model.Prefs { return c.prefs }
