// Package finder drives find-in-page for the visible blog.
package finder

import (
	"context"
	"sync"

	"github.com/MrSnakeDoc/ghostdesk/internal/logger"
)

// KeyEscape cancels the search when received from KeyUp.
const KeyEscape = "Escape"

// Page performs the search in the visible blog.
type Page interface {
	FindInPage(ctx context.Context, term string) error
	StopFindInPage(ctx context.Context) error
}

// View tells whether a blog is visible to search in.
type View interface {
	IsViewing() bool
}

// State is a snapshot of the find bar.
type State struct {
	Active bool   `json:"active"`
	Term   string `json:"term"`
}

// Finder is the find bar state.
type Finder struct {
	mu     sync.Mutex
	page   Page
	view   View
	logger logger.Logger

	active bool
	term   string
}

// New creates an inactive finder.
func New(page Page, view View, log logger.Logger) *Finder {
	return &Finder{page: page, view: view, logger: log}
}

// Toggle opens or closes the find bar. Opening resets the term, closing
// stops the search and clears the selection.
func (f *Finder) Toggle(ctx context.Context) (State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.active = !f.active
	if f.active {
		f.term = ""
		return f.stateLocked(), nil
	}

	if err := f.page.StopFindInPage(ctx); err != nil {
		f.logger.Warn("tried to clear selection due to stop search, but failed",
			logger.Error(err))
		return f.stateLocked(), err
	}
	return f.stateLocked(), nil
}

// Search sets the term and searches it. Empty terms, or no visible blog,
// only update the state.
func (f *Finder) Search(ctx context.Context, term string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.term = term
	if term == "" || !f.view.IsViewing() {
		return nil
	}
	return f.page.FindInPage(ctx, term)
}

// Cancel stops the current search.
func (f *Finder) Cancel(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.view.IsViewing() {
		return nil
	}
	return f.page.StopFindInPage(ctx)
}

// KeyUp handles a key released in the find input.
func (f *Finder) KeyUp(ctx context.Context, term, key string) error {
	if key == KeyEscape {
		return f.Cancel(ctx)
	}
	return f.Search(ctx, term)
}

// State returns a snapshot of the find bar.
func (f *Finder) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.stateLocked()
}

func (f *Finder) stateLocked() State {
	return State{Active: f.active, Term: f.term}
}
