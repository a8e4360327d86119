// Package navigator holds the per-page state of one guide being viewed:
// which step is showing, in which language, which dropdown is open, and
// whether a step transition is still playing.
//
// A Navigator is owned by exactly one page (or live session). Its only
// asynchronous behavior is the transition lock, which is cleared by a
// deferred callback. That callback is guarded by a generation counter so
// that it never acts on a navigator that has been closed.
package navigator

import (
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/alexk15655-dotcom/MCGuide/internal/guide"
	"github.com/alexk15655-dotcom/MCGuide/internal/resolver"
)

// DefaultLockDuration is how long a step transition suppresses further
// step changes.
const DefaultLockDuration = 600 * time.Millisecond

// History rewrites the page address without adding a history entry.
type History interface {
	ReplaceState(u *url.URL)
}

// StyleContext is the page-wide presentation state a navigator owns.
type StyleContext struct {
	Theme    resolver.Theme    `json:"theme"`
	Vars     map[string]string `json:"vars"`
	Dir      resolver.Dir      `json:"dir"`
	Language string            `json:"lang"`
}

// Style receives the page-wide style context. A navigator is its only writer.
type Style interface {
	Publish(StyleContext)
}

// Environment is what the hosting page provides at mount.
type Environment struct {
	// Address is the page URL. Its lang parameter is read at mount and
	// rewritten on every language change. A step parameter opens that
	// step and is then dropped from the address.
	Address *url.URL
	// Preference is the visitor's language preference, in Accept-Language
	// form.
	Preference string
	History    History
	Style      Style
}

// Navigator is the state machine for one mounted guide.
type Navigator struct {
	guide  *guide.Guide
	hist   History
	style  Style
	sched  Scheduler
	lock   time.Duration
	labels *resolver.Labels
	log    *slog.Logger
	onUnlock func()

	mu            sync.Mutex
	brand         guide.Brand
	step          int
	lang          string
	dir           resolver.Dir
	menu          Menu
	transitioning bool
	address       url.URL
	generation    uint64
	timer         Timer
	closed        bool
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithScheduler replaces the wall-clock scheduler used for the lock.
func WithScheduler(s Scheduler) Option {
	return func(n *Navigator) { n.sched = s }
}

// WithLockDuration overrides DefaultLockDuration.
func WithLockDuration(d time.Duration) Option {
	return func(n *Navigator) { n.lock = d }
}

// WithLabels overrides the embedded UI label table.
func WithLabels(l *resolver.Labels) Option {
	return func(n *Navigator) { n.labels = l }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(n *Navigator) { n.log = l }
}

// WithUnlockHook registers f to run, on the scheduler's goroutine, each
// time a transition lock clears. It is not called after Close.
func WithUnlockHook(f func()) Option {
	return func(n *Navigator) { n.onUnlock = f }
}

// WithStep opens the guide on the given step instead of the first one.
// Out-of-range values are ignored.
func WithStep(i int) Option {
	return func(n *Navigator) {
		if i >= 0 && i < len(n.guide.Steps) {
			n.step = i
		}
	}
}

// Mount resolves the initial language and publishes the brand theme.
// History and Style may be nil.
func Mount(g *guide.Guide, b guide.Brand, env Environment, opts ...Option) *Navigator {
	n := &Navigator{
		guide:  g,
		brand:  b,
		hist:   env.History,
		style:  env.Style,
		sched:  realScheduler{},
		lock:   DefaultLockDuration,
		labels: resolver.DefaultLabels(),
		log:    slog.Default(),
	}
	if env.Address != nil {
		n.address = *env.Address
	}

	// A step deep link is consumed here. Once steps move it would go
	// stale, so it is removed from the address.
	q := n.address.Query()
	deepLink := q.Has(StepParam)
	if deepLink {
		if i, ok := g.StepIndex(q.Get(StepParam)); ok {
			n.step = i
		}
		q.Del(StepParam)
		n.address.RawQuery = q.Encode()
	}

	for _, opt := range opts {
		opt(n)
	}

	n.lang = InitialLanguage(g, q, env.Preference)
	n.dir = resolver.Direction(n.lang)

	n.publish(n.styleContext())
	if deepLink && n.hist != nil {
		addr := n.address
		n.hist.ReplaceState(&addr)
	}
	n.log.Debug("navigator mounted", "brand", b.Name, "lang", n.lang, "step", n.step)
	return n
}

// GoToStep shows the step at index i and starts the transition lock. It
// is a no-op when i is the current step, when a transition is in flight,
// when i is outside the guide, or after Close.
func (n *Navigator) GoToStep(i int) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed || n.transitioning || i == n.step || i < 0 || i >= len(n.guide.Steps) {
		return false
	}
	n.step = i
	n.menu = MenuNone
	n.transitioning = true

	gen := n.generation
	n.timer = n.sched.AfterFunc(n.lock, func() { n.unlock(gen) })
	return true
}

// NextStep is GoToStep(current + 1).
func (n *Navigator) NextStep() bool {
	return n.GoToStep(n.current() + 1)
}

// PreviousStep is GoToStep(current - 1).
func (n *Navigator) PreviousStep() bool {
	return n.GoToStep(n.current() - 1)
}

func (n *Navigator) current() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.step
}

func (n *Navigator) unlock(gen uint64) {
	n.mu.Lock()
	if gen != n.generation {
		n.mu.Unlock()
		return
	}
	n.transitioning = false
	n.timer = nil
	hook := n.onUnlock
	n.mu.Unlock()

	if hook != nil {
		hook()
	}
}

// SetLanguage switches the active language, recomputes text direction,
// writes lang=<code> into the address with a history replace, and closes
// the language menu. The current step is unchanged. Codes the guide does
// not offer are ignored.
func (n *Navigator) SetLanguage(code string) bool {
	n.mu.Lock()
	if n.closed || !n.guide.Offers(code) {
		n.mu.Unlock()
		return false
	}
	n.lang = code
	n.dir = resolver.Direction(code)
	if n.menu == MenuLanguage {
		n.menu = MenuNone
	}

	q := n.address.Query()
	q.Set(LangParam, code)
	n.address.RawQuery = q.Encode()
	addr := n.address

	sc := n.styleContext()
	n.mu.Unlock()

	if n.hist != nil {
		n.hist.ReplaceState(&addr)
	}
	n.publish(sc)
	return true
}

// SetBrand switches the active brand and republishes its theme.
func (n *Navigator) SetBrand(b guide.Brand) {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.brand = b
	sc := n.styleContext()
	n.mu.Unlock()

	n.publish(sc)
}

// ToggleMenu opens m, closing the other menu, or closes m if it is open.
func (n *Navigator) ToggleMenu(m Menu) {
	if !m.Valid() {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.menu = afterToggle(n.menu, m)
}

// CloseMenus closes whichever menu is open.
func (n *Navigator) CloseMenus() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.menu = MenuNone
}

// PointerDown reports a press in region r. A press outside the open
// menu's region closes it.
func (n *Navigator) PointerDown(r Region) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.menu = afterPointer(n.menu, r)
}

// Close tears the navigator down. A pending lock callback becomes a no-op
// and every later operation is ignored.
func (n *Navigator) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	n.closed = true
	n.generation++
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.log.Debug("navigator closed", "brand", n.brand.Name)
}

// styleContext must be called with n.mu held.
func (n *Navigator) styleContext() StyleContext {
	theme := resolver.ThemeFor(n.brand)
	return StyleContext{
		Theme:    theme,
		Vars:     theme.Vars(),
		Dir:      n.dir,
		Language: n.lang,
	}
}

func (n *Navigator) publish(sc StyleContext) {
	if n.style != nil {
		n.style.Publish(sc)
	}
}
