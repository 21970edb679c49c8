package filters

import "github.com/angelmondragon/ridefinderz-filters/pkg/enums"

// ScrollLock models the viewport's scroll-lock flag. It stays engaged while any
// guard handed out by Acquire is unreleased.
type ScrollLock struct {
	holders int
}

// Acquire engages the lock and returns the guard that releases it.
func (l *ScrollLock) Acquire() *ScrollGuard {
	l.holders++
	return &ScrollGuard{lock: l}
}

// Locked reports whether scrolling is currently suppressed.
func (l *ScrollLock) Locked() bool {
	return l.holders > 0
}

// ScrollGuard is a single acquisition of a ScrollLock.
type ScrollGuard struct {
	lock     *ScrollLock
	released bool
}

// Release gives the acquisition back. Calling it more than once is a no-op.
func (g *ScrollGuard) Release() {
	if g == nil || g.released {
		return
	}
	g.released = true
	g.lock.holders--
}

// Panel is the modal filter sheet. Opening it holds the scroll lock until a
// close path runs.
type Panel struct {
	lock       *ScrollLock
	guard      *ScrollGuard
	lastReason enums.PanelCloseReason
}

// NewPanel returns a closed panel over lock.
func NewPanel(lock *ScrollLock) *Panel {
	if lock == nil {
		lock = &ScrollLock{}
	}
	return &Panel{lock: lock}
}

// IsOpen reports whether the panel is showing.
func (p *Panel) IsOpen() bool {
	return p.guard != nil
}

// ScrollLocked reports the state of the underlying lock.
func (p *Panel) ScrollLocked() bool {
	return p.lock.Locked()
}

// LastCloseReason returns the exit path that last closed the panel.
func (p *Panel) LastCloseReason() enums.PanelCloseReason {
	return p.lastReason
}

// Open shows the panel. Opening an open panel does not acquire again.
func (p *Panel) Open() {
	if p.guard != nil {
		return
	}
	p.guard = p.lock.Acquire()
}

// Close hides the panel and releases its scroll lock. It reports whether the
// panel was open.
func (p *Panel) Close(reason enums.PanelCloseReason) bool {
	if p.guard == nil {
		return false
	}
	p.guard.Release()
	p.guard = nil
	p.lastReason = reason
	return true
}
