package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the default number of rendered pages before the
// browser is recycled.
const DefaultMaxPages = 75

// Manager owns the headless Chrome instance and recycles it after a
// number of rendered pages. Chrome accumulates memory across page
// loads and never fully returns to its baseline, so long batch runs
// need a periodic restart.
//
// Manager is safe for concurrent use.
type Manager struct {
	mu        sync.Mutex
	browser   *rod.Browser
	launcher  *launcher.Launcher
	pageCount int64
	maxPages  int64
	closed    bool
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithMaxPages sets the number of rendered pages before the browser is
// recycled. Defaults to DefaultMaxPages.
func WithMaxPages(n int64) ManagerOption {
	return func(m *Manager) {
		m.maxPages = n
	}
}

// NewManager launches a headless Chrome browser. Close must be called
// when the Manager is no longer needed.
func NewManager(opts ...ManagerOption) (*Manager, error) {
	m := &Manager{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(m)
	}

	if err := m.launch(); err != nil {
		return nil, err
	}

	return m, nil
}

// Browser returns the current browser, recycling it first if the page
// count has reached the threshold. Callers report completed renders via
// PageDone.
func (m *Manager) Browser() *rod.Browser {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pageCount >= m.maxPages {
		m.recycle()
	}

	return m.browser
}

// PageDone records a completed render against the recycling threshold.
func (m *Manager) PageDone() {
	m.mu.Lock()
	m.pageCount++
	m.mu.Unlock()
}

// Close shuts down the browser and its launcher. Safe to call more
// than once.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true

	return m.shutdown()
}

// launch starts a fresh browser with stability flags for long-running
// headless sessions. Must be called with mu held (or before the
// Manager is shared).
func (m *Manager) launch() error {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	m.browser = browser
	m.launcher = lnchr
	return nil
}

// shutdown closes the current browser and launcher.
// Must be called with mu held.
func (m *Manager) shutdown() error {
	var err error
	if m.browser != nil {
		err = m.browser.Close()
		m.browser = nil
	}
	if m.launcher != nil {
		m.launcher.Kill()
		m.launcher = nil
	}
	return err
}

// recycle swaps in a fresh browser. The old one is kept if the new
// launch fails. Must be called with mu held.
func (m *Manager) recycle() {
	oldBrowser := m.browser
	oldLauncher := m.launcher
	m.browser = nil
	m.launcher = nil

	if err := m.launch(); err != nil {
		m.browser = oldBrowser
		m.launcher = oldLauncher
		return
	}

	if oldBrowser != nil {
		_ = oldBrowser.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
	m.pageCount = 0
}
