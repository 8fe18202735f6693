package feed

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gregriff/ytlc/internal/chat"
)

// State is the coarse state of a Controller.
type State int

const (
	StateEmpty State = iota
	StatePopulated
	StateAutoPlaying
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePopulated:
		return "populated"
	case StateAutoPlaying:
		return "auto-playing"
	}
	return "unknown"
}

// Options tunes controller timing. Zero values take the defaults below.
type Options struct {
	Interval     time.Duration // auto mode period
	InitialDelay time.Duration // delay before the intro messages are seeded; negative seeds immediately
	DemoStep     time.Duration // spacing of Demo and TestAll batches
	MassStep     time.Duration // spacing of MassChat batches
	MassCount    int
}

const (
	DefaultInterval     = 2 * time.Second
	DefaultInitialDelay = time.Second
	DefaultDemoStep     = 300 * time.Millisecond
	DefaultMassStep     = 200 * time.Millisecond
	DefaultMassCount    = 10
)

func (o Options) withDefaults() Options {
	if o.Interval <= 0 {
		o.Interval = DefaultInterval
	}
	if o.InitialDelay < 0 {
		o.InitialDelay = 0
	} else if o.InitialDelay == 0 {
		o.InitialDelay = DefaultInitialDelay
	}
	if o.DemoStep <= 0 {
		o.DemoStep = DefaultDemoStep
	}
	if o.MassStep <= 0 {
		o.MassStep = DefaultMassStep
	}
	if o.MassCount <= 0 {
		o.MassCount = DefaultMassCount
	}
	return o
}

// Controller is the imperative control surface over a Feed. It is passed by reference to
// every consumer (TUI, control panel, preview server); there is no global instance.
type Controller struct {
	feed *Feed
	gen  *chat.Generator
	log  *log.Logger
	opts Options

	mu         sync.Mutex // guards gen, autoCancel, pending, closed
	autoCancel context.CancelFunc
	autoDone   chan struct{}
	pending    map[*time.Timer]struct{}
	closed     bool
	done       chan struct{} // closed by Close

	ready     chan struct{}
	readyOnce sync.Once
	started   sync.Once
}

// NewController wires a controller to f, generating events with gen.
func NewController(f *Feed, gen *chat.Generator, logger *log.Logger, opts Options) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	return &Controller{
		feed:    f,
		gen:     gen,
		log:     logger.WithPrefix("feed"),
		opts:    opts.withDefaults(),
		pending: make(map[*time.Timer]struct{}),
		done:    make(chan struct{}),
		ready:   make(chan struct{}),
	}
}

// Feed returns the feed this controller mutates.
func (c *Controller) Feed() *Feed {
	return c.feed
}

// Start seeds one message per role after the initial delay, then signals readiness.
// Cancelling ctx or calling Close before the delay elapses skips the seeding.
// Calling Start more than once has no effect.
func (c *Controller) Start(ctx context.Context) {
	c.started.Do(func() {
		go func() {
			timer := time.NewTimer(c.opts.InitialDelay)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				c.markReady()
				return
			case <-c.done:
				return
			case <-timer.C:
			}
			c.seed()
			c.markReady()
		}()
	})
}

// seed adds one message per role unless the controller has been closed.
func (c *Controller) seed() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	intro := make([]chat.Event, 0, len(chat.ChatKinds))
	for _, k := range chat.ChatKinds {
		intro = append(intro, c.gen.Chat(k))
	}
	c.mu.Unlock()
	for _, e := range intro {
		c.feed.Add(e)
	}
	c.log.Debug("intro messages seeded", "events", len(intro))
}

// MarkReady signals readiness without seeding intro messages.
func (c *Controller) MarkReady() {
	c.markReady()
}

func (c *Controller) markReady() {
	c.readyOnce.Do(func() { close(c.ready) })
}

// Ready is closed once the controller has finished initializing.
func (c *Controller) Ready() <-chan struct{} {
	return c.ready
}

// WaitReady blocks until the controller is ready or ctx is done.
func (c *Controller) WaitReady(ctx context.Context) error {
	select {
	case <-c.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// add generates one event under the generator lock and prepends it to the feed.
func (c *Controller) add(build func(*chat.Generator) chat.Event) chat.Event {
	c.mu.Lock()
	e := build(c.gen)
	c.mu.Unlock()
	c.feed.Add(e)
	return e
}

// AddRandom adds a role message with a viewer-weighted role.
func (c *Controller) AddRandom() chat.Event {
	return c.add((*chat.Generator).RandomChat)
}

// AddKind adds one event of the given kind.
func (c *Controller) AddKind(kind chat.Kind) chat.Event {
	return c.add(func(g *chat.Generator) chat.Event { return g.Generate(kind) })
}

// AddSuperChat adds a paid message. With no tier, or an invalid one, tier 1 is used.
func (c *Controller) AddSuperChat(tier ...int) chat.Event {
	return c.add(func(g *chat.Generator) chat.Event { return g.Generate(chat.KindSuperChat, tier...) })
}

// AddMembership adds a membership announcement.
func (c *Controller) AddMembership() chat.Event {
	return c.add((*chat.Generator).Membership)
}

// AddSticker adds a sticker.
func (c *Controller) AddSticker() chat.Event {
	return c.add((*chat.Generator).Sticker)
}

// Clear empties the feed. Auto mode, if running, keeps running.
func (c *Controller) Clear() {
	c.feed.Clear()
	c.log.Debug("feed cleared")
}

// StartAuto begins adding a random event every Interval until StopAuto or Close.
func (c *Controller) StartAuto() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.autoCancel != nil || c.closed {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	c.autoCancel, c.autoDone = cancel, done

	go func() {
		defer close(done)
		ticker := time.NewTicker(c.opts.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.add((*chat.Generator).RandomAny)
			}
		}
	}()
	c.log.Info("auto mode started", "interval", c.opts.Interval)
}

// StopAuto cancels the auto mode timer and waits for its goroutine to exit.
func (c *Controller) StopAuto() {
	c.mu.Lock()
	cancel, done := c.autoCancel, c.autoDone
	c.autoCancel, c.autoDone = nil, nil
	c.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
	c.log.Info("auto mode stopped")
}

// ToggleAuto flips auto mode and reports whether it is now on.
func (c *Controller) ToggleAuto() bool {
	if c.IsAuto() {
		c.StopAuto()
		return false
	}
	c.StartAuto()
	return c.IsAuto()
}

// IsAuto reports whether auto mode is running.
func (c *Controller) IsAuto() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.autoCancel != nil
}

// State derives the controller state from the feed and the auto flag.
func (c *Controller) State() State {
	if c.IsAuto() {
		return StateAutoPlaying
	}
	if c.feed.Len() == 0 {
		return StateEmpty
	}
	return StatePopulated
}

// Demo adds an owner, mod, tier-3 super chat, membership and sticker, one DemoStep apart.
func (c *Controller) Demo() {
	c.schedule(c.opts.DemoStep, []func(*chat.Generator) chat.Event{
		func(g *chat.Generator) chat.Event { return g.Chat(chat.KindOwner) },
		func(g *chat.Generator) chat.Event { return g.Chat(chat.KindMod) },
		func(g *chat.Generator) chat.Event { return g.SuperChat(3) },
		(*chat.Generator).Membership,
		(*chat.Generator).Sticker,
	})
}

// TestAll adds one event of every kind, one DemoStep apart.
func (c *Controller) TestAll() {
	steps := make([]func(*chat.Generator) chat.Event, 0, len(chat.Kinds))
	for _, k := range chat.ChatKinds {
		steps = append(steps, func(g *chat.Generator) chat.Event { return g.Chat(k) })
	}
	steps = append(steps,
		func(g *chat.Generator) chat.Event { return g.SuperChat(3) },
		(*chat.Generator).Membership,
		(*chat.Generator).Sticker,
	)
	c.schedule(c.opts.DemoStep, steps)
}

// MassChat adds MassCount random role messages, one MassStep apart.
func (c *Controller) MassChat() {
	steps := make([]func(*chat.Generator) chat.Event, c.opts.MassCount)
	for i := range steps {
		steps[i] = (*chat.Generator).RandomChat
	}
	c.schedule(c.opts.MassStep, steps)
}

// schedule runs steps[i] after i*step. The first step runs immediately.
func (c *Controller) schedule(step time.Duration, steps []func(*chat.Generator) chat.Event) {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return
	}
	for i, build := range steps {
		if i == 0 {
			c.add(build)
			continue
		}
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return
		}
		var t *time.Timer
		t = time.AfterFunc(time.Duration(i)*step, func() {
			c.mu.Lock()
			_, live := c.pending[t]
			delete(c.pending, t)
			c.mu.Unlock()
			if live {
				c.add(build)
			}
		})
		c.pending[t] = struct{}{}
		c.mu.Unlock()
	}
}

// Pending returns the number of staggered additions not yet fired.
func (c *Controller) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Close stops auto mode and cancels the intro seeding and outstanding staggered additions.
// Once closed, StartAuto and the batch methods do nothing. Close is idempotent.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	for t := range c.pending {
		t.Stop()
		delete(c.pending, t)
	}
	close(c.done)
	c.mu.Unlock()
	c.StopAuto()
	c.markReady()
}

// DebugInfo is a diagnostic snapshot of the controller.
type DebugInfo struct {
	Events  int            `json:"events"`
	State   string         `json:"state"`
	Auto    bool           `json:"auto"`
	Pending int            `json:"pending"`
	ByKind  map[string]int `json:"byKind"`
	Newest  *chat.Event    `json:"newest,omitempty"`
}

// Debug returns a diagnostic snapshot.
func (c *Controller) Debug() DebugInfo {
	events := c.feed.Events()
	info := DebugInfo{
		Events:  len(events),
		State:   c.State().String(),
		Auto:    c.IsAuto(),
		Pending: c.Pending(),
		ByKind:  make(map[string]int),
	}
	for _, e := range events {
		info.ByKind[string(e.Kind)]++
	}
	if len(events) > 0 {
		info.Newest = &events[0]
	}
	return info
}
