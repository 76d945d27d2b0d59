// Package screen decides which surface the shell shows: the add/edit blog
// panel, the preferences panel, or the content of the selected blog.
package screen

import (
	"context"
	"fmt"
	"sync"

	"github.com/MrSnakeDoc/ghostdesk/internal/domain"
	"github.com/MrSnakeDoc/ghostdesk/internal/logger"
	"github.com/MrSnakeDoc/ghostdesk/internal/metrics"
)

// Registry is the part of the blog registry the controller drives.
type Registry interface {
	HasBlogs() bool
	All() []*domain.Blog
	First() (*domain.Blog, bool)
	Get(id string) (*domain.Blog, bool)
	FindSelected() (*domain.Blog, bool)
	Refresh(ctx context.Context) ([]*domain.Blog, error)
	Add(ctx context.Context, blog *domain.Blog) error
	Remove(ctx context.Context, blog *domain.Blog) error
	Select(ctx context.Context, blog *domain.Blog) error
	Unselect(ctx context.Context, blog *domain.Blog) error
}

// Shell receives the window chrome derived from the state.
type Shell interface {
	SetWindowTitle(ctx context.Context, title string) error
	SetDockMenu(ctx context.Context, entries []MenuEntry) error
	SetUserTasks(ctx context.Context, entries []MenuEntry) error
}

// MenuEntry is one blog in the dock menu or the taskbar user tasks.
type MenuEntry struct {
	Name     string                          `json:"name"`
	BlogID   string                          `json:"blogId"`
	Callback func(ctx context.Context) error `json:"-"`
}

// State is a snapshot of the controller.
type State struct {
	Screen               domain.Screen   `json:"screen"`
	SelectedBlog         *domain.Blog    `json:"selectedBlog"`
	BlogToEdit           *domain.Blog    `json:"blogToEdit,omitempty"`
	EditWarning          string          `json:"editWarning,omitempty"`
	PreFill              *domain.PreFill `json:"preFillValues,omitempty"`
	Title                string          `json:"title"`
	IsNightShift         bool            `json:"isNightShift"`
	HasBlogs             bool            `json:"hasBlogs"`
	IsEditBlogVisible    bool            `json:"isEditBlogVisible"`
	IsPreferencesVisible bool            `json:"isPreferencesVisible"`
}

// Controller is the screen state machine. Every action holds mu for its
// whole duration so actions never interleave.
type Controller struct {
	mu sync.Mutex

	registry Registry
	shell    Shell
	platform string
	logger   logger.Logger
	metrics  metrics.Recorder

	screen      domain.Screen
	selectedID  string
	blogToEdit  *domain.Blog
	editWarning string
	preFill     *domain.PreFill
	title       string
	nightShift  bool
	menu        []MenuEntry
}

// NewController creates a controller showing the add blog screen. platform
// is a GOOS value; shell may be nil.
func NewController(reg Registry, shell Shell, platform string, log logger.Logger, rec metrics.Recorder) *Controller {
	if shell == nil {
		shell = nopShell{}
	}
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Controller{
		registry: reg,
		shell:    shell,
		platform: platform,
		logger:   log,
		metrics:  rec,
		screen:   domain.AddBlogScreen(),
	}
}

// Setup determines which blog to display: the selected one, or the first
// one. Without blogs the add blog screen is forced.
func (c *Controller) Setup(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.setupLocked(ctx)
}

// Refresh reloads the registry and runs Setup.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.refreshLocked(ctx)
}

// SwitchToBlog selects blog and shows its content. A nil blog is ignored.
func (c *Controller) SwitchToBlog(ctx context.Context, blog *domain.Blog) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.switchLocked(ctx, blog)
}

// ShowAddBlog opens the add blog panel, optionally pre-filled.
func (c *Controller) ShowAddBlog(ctx context.Context, preFill *domain.PreFill) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.blogToEdit = nil
	c.editWarning = ""
	c.preFill = preFill
	return c.showEditPanelLocked(ctx, domain.AddBlogScreen())
}

// ShowEditBlog opens the edit panel for blog with an optional warning.
func (c *Controller) ShowEditBlog(ctx context.Context, blog *domain.Blog, warning string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if blog == nil {
		return fmt.Errorf("cannot edit nil blog")
	}
	current, ok := c.registry.Get(blog.ID)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownBlog, blog.ID)
	}

	c.blogToEdit = current
	c.editWarning = warning
	c.preFill = nil
	return c.showEditPanelLocked(ctx, domain.Screen{Kind: domain.ScreenEditBlog})
}

// ShowPreferences opens the preferences panel. The selection is kept.
func (c *Controller) ShowPreferences(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.transitionLocked(domain.Screen{Kind: domain.ScreenPreferences})
	return nil
}

// BlogAdded adds blog to the registry and switches to it.
func (c *Controller) BlogAdded(ctx context.Context, blog *domain.Blog) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if blog == nil {
		return fmt.Errorf("cannot add nil blog")
	}
	if err := c.registry.Add(ctx, blog); err != nil {
		return err
	}
	if err := c.setupLocked(ctx); err != nil {
		return err
	}
	return c.switchLocked(ctx, blog)
}

// BlogRemoved removes blog from the registry and re-evaluates the screen.
func (c *Controller) BlogRemoved(ctx context.Context, blog *domain.Blog) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if blog == nil {
		return fmt.Errorf("cannot remove nil blog")
	}
	current, ok := c.registry.Get(blog.ID)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownBlog, blog.ID)
	}
	if err := c.registry.Remove(ctx, current); err != nil {
		return err
	}
	if c.selectedID == current.ID {
		c.selectedID = ""
	}
	if c.blogToEdit != nil && c.blogToEdit.ID == current.ID {
		c.blogToEdit = nil
	}
	return c.setupLocked(ctx)
}

// Rebuild re-publishes the menus, and the title while a blog is viewed,
// after blog records changed outside of a screen action. The screen is
// left as is.
func (c *Controller) Rebuild(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.createMenusLocked(ctx)
	if !c.screen.IsViewing() {
		return
	}
	if b, ok := c.registry.Get(c.screen.BlogID); ok {
		c.setTitleLocked(ctx, b.Title())
	}
}

// SetNightShift toggles the night shift display flag.
func (c *Controller) SetNightShift(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nightShift = enabled
}

// IsViewing reports whether a blog's content is currently shown.
func (c *Controller) IsViewing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.screen.IsViewing()
}

// Menu returns the entries built by the last Setup.
func (c *Controller) Menu() []MenuEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]MenuEntry, len(c.menu))
	copy(out, c.menu)
	return out
}

// ActivateMenuEntry runs the callback of the entry for blogID, as if the
// user clicked it in the dock menu or the taskbar.
func (c *Controller) ActivateMenuEntry(ctx context.Context, blogID string) error {
	c.mu.Lock()
	var callback func(context.Context) error
	for _, e := range c.menu {
		if e.BlogID == blogID {
			callback = e.Callback
			break
		}
	}
	c.mu.Unlock()

	if callback == nil {
		return fmt.Errorf("%w: %s", domain.ErrUnknownBlog, blogID)
	}
	return callback(ctx)
}

// State returns a snapshot of the controller. Blogs are copies.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := State{
		Screen:               c.screen,
		BlogToEdit:           c.blogToEdit.Clone(),
		EditWarning:          c.editWarning,
		Title:                c.title,
		IsNightShift:         c.nightShift,
		HasBlogs:             c.registry.HasBlogs(),
		IsEditBlogVisible:    c.screen.IsEditBlogVisible(),
		IsPreferencesVisible: c.screen.IsPreferencesVisible(),
	}
	if c.preFill != nil {
		p := *c.preFill
		s.PreFill = &p
	}
	if c.selectedID != "" {
		if b, ok := c.registry.Get(c.selectedID); ok {
			s.SelectedBlog = b.Clone()
		}
	}
	return s
}

func (c *Controller) refreshLocked(ctx context.Context) error {
	c.logger.Debug("refreshing blogs")
	if _, err := c.registry.Refresh(ctx); err != nil {
		return err
	}
	return c.setupLocked(ctx)
}

func (c *Controller) setupLocked(ctx context.Context) error {
	if !c.registry.HasBlogs() {
		c.logger.Debug("no blogs found, showing add blog")
		c.selectedID = ""
		c.blogToEdit = nil
		c.menu = nil
		c.transitionLocked(domain.AddBlogScreen())
		return nil
	}

	c.logger.Debug("found blogs, opening selected or first one")
	blog, ok := c.registry.FindSelected()
	if !ok {
		blog, _ = c.registry.First()
	}
	if err := c.switchLocked(ctx, blog); err != nil {
		return err
	}
	c.createMenusLocked(ctx)
	return nil
}

func (c *Controller) switchLocked(ctx context.Context, blog *domain.Blog) error {
	if blog == nil {
		return nil
	}

	target, ok := c.registry.Get(blog.ID)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownBlog, blog.ID)
	}

	for _, b := range c.registry.All() {
		if b.ID != target.ID && b.IsSelected {
			if err := c.registry.Unselect(ctx, b); err != nil {
				return err
			}
		}
	}
	if err := c.registry.Select(ctx, target); err != nil {
		return err
	}

	c.selectedID = target.ID
	c.blogToEdit = nil
	c.editWarning = ""
	c.preFill = nil
	c.setTitleLocked(ctx, target.Title())
	c.transitionLocked(domain.ViewingScreen(target.ID))
	return nil
}

// showEditPanelLocked shows the add or edit panel; the selected blog is
// unselected but stays referenced for the title.
func (c *Controller) showEditPanelLocked(ctx context.Context, next domain.Screen) error {
	if c.selectedID != "" {
		if b, ok := c.registry.Get(c.selectedID); ok {
			if err := c.registry.Unselect(ctx, b); err != nil {
				return err
			}
		}
		c.selectedID = ""
	}
	c.transitionLocked(next)
	return nil
}

func (c *Controller) transitionLocked(next domain.Screen) {
	if c.screen != next {
		c.logger.Debug("screen transition",
			logger.String("from", string(c.screen.Kind)),
			logger.String("to", string(next.Kind)))
	}
	c.screen = next
	c.metrics.RecordTransition(string(next.Kind))
}

func (c *Controller) setTitleLocked(ctx context.Context, title string) {
	c.title = title
	if err := c.shell.SetWindowTitle(ctx, title); err != nil {
		c.logger.Warn("failed to set window title", logger.Error(err))
	}
}

func (c *Controller) createMenusLocked(ctx context.Context) {
	c.logger.Debug("creating menus")

	blogs := c.registry.All()
	menu := make([]MenuEntry, 0, len(blogs))
	for _, b := range blogs {
		id := b.ID
		menu = append(menu, MenuEntry{
			Name:   b.Name,
			BlogID: id,
			Callback: func(ctx context.Context) error {
				blog, ok := c.registry.Get(id)
				if !ok {
					return fmt.Errorf("%w: %s", domain.ErrUnknownBlog, id)
				}
				return c.SwitchToBlog(ctx, blog)
			},
		})
	}
	c.menu = menu

	var err error
	switch c.platform {
	case "darwin":
		err = c.shell.SetDockMenu(ctx, menu)
	case "windows":
		err = c.shell.SetUserTasks(ctx, menu)
	}
	if err != nil {
		c.logger.Warn("failed to publish menu",
			logger.String("platform", c.platform),
			logger.Error(err))
	}
}

type nopShell struct{}

func (nopShell) SetWindowTitle(context.Context, string) error    { return nil }
func (nopShell) SetDockMenu(context.Context, []MenuEntry) error  { return nil }
func (nopShell) SetUserTasks(context.Context, []MenuEntry) error { return nil }
