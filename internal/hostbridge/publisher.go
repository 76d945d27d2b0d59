// Package hostbridge talks to the host shell process over Redis pub/sub.
package hostbridge

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/ghostdesk/internal/domain"
	"github.com/MrSnakeDoc/ghostdesk/internal/logger"
	"github.com/MrSnakeDoc/ghostdesk/internal/screen"
)

// Channels shared with the host process.
const (
	ChannelRendererReady  = "ghostdesk:renderer-ready"
	ChannelBlogSerialized = "ghostdesk:blog-serialized"
	ChannelWindowTitle    = "ghostdesk:window-title"
	ChannelDockMenu       = "ghostdesk:dock-menu"
	ChannelUserTasks      = "ghostdesk:user-tasks"
	ChannelOpenNewPost    = "ghostdesk:open-new-post"
	ChannelFindInPage     = "ghostdesk:find-in-page"
	ChannelHostEvents     = "ghostdesk:host-events"
)

// Find in page actions.
const (
	FindActionFind = "find"
	FindActionStop = "stop"

	StopClearSelection = "clearSelection"
)

type titleMessage struct {
	Title string `json:"title"`
}

type newPostMessage struct {
	Focus   bool   `json:"focus"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type findMessage struct {
	Action string `json:"action"`
	Term   string `json:"term,omitempty"`
	Mode   string `json:"mode,omitempty"`
}

// Publisher sends notifications to the host. It implements the store's save
// notifier, the screen controller's shell and the editor for new drafts.
type Publisher struct {
	client    *redis.Client
	logger    logger.Logger
	readyOnce sync.Once
}

// NewPublisher creates a publisher on client.
func NewPublisher(client *redis.Client, log logger.Logger) *Publisher {
	return &Publisher{client: client, logger: log}
}

// NotifyReady tells the host the application finished its setup. Only the
// first call publishes.
func (p *Publisher) NotifyReady(ctx context.Context) error {
	var err error
	p.readyOnce.Do(func() {
		p.logger.Info("notifying host that the renderer is ready")
		err = p.publish(ctx, ChannelRendererReady, struct{}{})
	})
	return err
}

// BlogSerialized forwards a saved blog snapshot as is.
func (p *Publisher) BlogSerialized(ctx context.Context, snapshot []byte) error {
	return p.publishRaw(ctx, ChannelBlogSerialized, snapshot)
}

// SetWindowTitle asks the host to retitle the main window.
func (p *Publisher) SetWindowTitle(ctx context.Context, title string) error {
	return p.publish(ctx, ChannelWindowTitle, titleMessage{Title: title})
}

// SetDockMenu replaces the macOS dock menu with entries.
func (p *Publisher) SetDockMenu(ctx context.Context, entries []screen.MenuEntry) error {
	return p.publish(ctx, ChannelDockMenu, entries)
}

// SetUserTasks replaces the Windows jump list tasks with entries.
func (p *Publisher) SetUserTasks(ctx context.Context, entries []screen.MenuEntry) error {
	return p.publish(ctx, ChannelUserTasks, entries)
}

// OpenNewPost asks the host to open the editor with draft.
func (p *Publisher) OpenNewPost(ctx context.Context, focus bool, draft domain.Draft) error {
	return p.publish(ctx, ChannelOpenNewPost, newPostMessage{
		Focus:   focus,
		Title:   draft.Title,
		Content: draft.Content,
	})
}

// FindInPage searches term in the visible blog.
func (p *Publisher) FindInPage(ctx context.Context, term string) error {
	return p.publish(ctx, ChannelFindInPage, findMessage{Action: FindActionFind, Term: term})
}

// StopFindInPage ends the search in the visible blog and clears the selection.
func (p *Publisher) StopFindInPage(ctx context.Context) error {
	return p.publish(ctx, ChannelFindInPage, findMessage{Action: FindActionStop, Mode: StopClearSelection})
}

func (p *Publisher) publish(ctx context.Context, channel string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s message: %w", channel, err)
	}
	return p.publishRaw(ctx, channel, data)
}

func (p *Publisher) publishRaw(ctx context.Context, channel string, data []byte) error {
	if err := p.client.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish on %s: %w", channel, err)
	}
	p.logger.Debug("published to host", logger.String("channel", channel))
	return nil
}
