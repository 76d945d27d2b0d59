// Package events routes named host events into screen controller actions.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/ghostdesk/internal/domain"
	"github.com/MrSnakeDoc/ghostdesk/internal/logger"
	"github.com/MrSnakeDoc/ghostdesk/internal/metrics"
)

// Host event names.
const (
	EventOpenBlog    = "open-blog"
	EventCreateDraft = "create-draft"
	EventNightShift  = "night-shift"
	EventMenuClick   = "menu-click"
)

var (
	// ErrUnknownEvent is returned by Dispatch for events nobody handles.
	ErrUnknownEvent = errors.New("unknown event")
	// ErrInvalidPayload is returned by Dispatch when the payload does not
	// decode for the event.
	ErrInvalidPayload = errors.New("invalid payload")
)

// Screen is the part of the screen controller the router drives.
type Screen interface {
	SwitchToBlog(ctx context.Context, blog *domain.Blog) error
	ShowAddBlog(ctx context.Context, preFill *domain.PreFill) error
	SetNightShift(enabled bool)
	ActivateMenuEntry(ctx context.Context, blogID string) error
}

// BlogFinder resolves a blog by sanitized URL.
type BlogFinder interface {
	FindByURL(url string) (*domain.Blog, bool)
}

// Drafts opens the editor for a new post.
type Drafts interface {
	OpenNewPost(ctx context.Context, focus bool, draft domain.Draft) error
}

type openBlogPayload struct {
	URL  string `json:"url"`
	User string `json:"user"`
}

type menuClickPayload struct {
	BlogID string `json:"blogId"`
}

// Router dispatches host events.
type Router struct {
	screen  Screen
	blogs   BlogFinder
	drafts  Drafts
	logger  logger.Logger
	metrics metrics.Recorder
}

// NewRouter creates a router. drafts may be nil.
func NewRouter(screen Screen, blogs BlogFinder, drafts Drafts, log logger.Logger, rec metrics.Recorder) *Router {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Router{
		screen:  screen,
		blogs:   blogs,
		drafts:  drafts,
		logger:  log,
		metrics: rec,
	}
}

// Dispatch routes event with its raw JSON payload. An empty or null payload
// means the event defaults.
func (r *Router) Dispatch(ctx context.Context, event string, payload json.RawMessage) error {
	r.logger.Debug("host event", logger.String("event", event))

	var err error
	switch event {
	case EventOpenBlog:
		var p openBlogPayload
		if err = decode(payload, &p); err == nil {
			err = r.OpenBlog(ctx, p.URL, p.User)
		}
	case EventCreateDraft:
		var d domain.Draft
		if err = decode(payload, &d); err == nil {
			err = r.CreateDraft(ctx, d)
		}
	case EventNightShift:
		var enabled bool
		if err = decode(payload, &enabled); err == nil {
			r.NightShift(enabled)
		}
	case EventMenuClick:
		var p menuClickPayload
		if err = decode(payload, &p); err == nil {
			err = r.screen.ActivateMenuEntry(ctx, p.BlogID)
		}
	default:
		r.logger.Warn("dropping unknown host event", logger.String("event", event))
		return fmt.Errorf("%w: %s", ErrUnknownEvent, event)
	}

	r.metrics.RecordEvent(event)
	if err != nil {
		return fmt.Errorf("failed to handle %s: %w", event, err)
	}
	return nil
}

// OpenBlog switches to the blog at url, or opens the add blog panel
// pre-filled with the sanitized url and user when there is no such blog.
func (r *Router) OpenBlog(ctx context.Context, url, user string) error {
	sanitized := domain.SanitizeURL(url)

	if blog, ok := r.blogs.FindByURL(sanitized); ok {
		return r.screen.SwitchToBlog(ctx, blog)
	}
	return r.screen.ShowAddBlog(ctx, &domain.PreFill{URL: sanitized, User: user})
}

// CreateDraft forwards the draft verbatim to the editor.
func (r *Router) CreateDraft(ctx context.Context, draft domain.Draft) error {
	if r.drafts == nil {
		r.logger.Warn("no editor to open draft in")
		return nil
	}
	return r.drafts.OpenNewPost(ctx, true, draft)
}

// NightShift sets the night shift display flag.
func (r *Router) NightShift(enabled bool) {
	r.screen.SetNightShift(enabled)
}

func decode(payload json.RawMessage, v any) error {
	if len(payload) == 0 || string(payload) == "null" {
		return nil
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}
