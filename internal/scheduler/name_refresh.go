package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/ghostdesk/internal/domain"
	"github.com/MrSnakeDoc/ghostdesk/internal/logger"
)

// NameSource is the registry side of a name refresh.
type NameSource interface {
	All() []*domain.Blog
	UpdateName(ctx context.Context, blog *domain.Blog) bool
}

// Screen re-renders the menus and the title so they show new names.
type Screen interface {
	Rebuild(ctx context.Context)
}

// NameRefresher periodically refreshes every blog name from its homepage
type NameRefresher struct {
	blogs         NameSource
	screen        Screen
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewNameRefresher creates a new name refresher
func NewNameRefresher(
	blogs NameSource,
	screen Screen,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *NameRefresher {
	return &NameRefresher{
		blogs:         blogs,
		screen:        screen,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start begins the periodic refresh. The first pass runs in the background
// so a slow homepage never delays startup.
func (nr *NameRefresher) Start(ctx context.Context) {
	ticker := time.NewTicker(nr.interval)
	go func() {
		defer ticker.Stop()

		nr.Refresh(ctx)
		for {
			select {
			case <-ticker.C:
				nr.Refresh(ctx)
			case <-nr.manualTrigger:
				nr.logger.Info("manual name refresh triggered")
				nr.Refresh(ctx)
			case <-nr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the refresher
func (nr *NameRefresher) Stop() {
	close(nr.stopCh)
}

// Refresh updates the name of every blog, then rebuilds the menus and the
// title when a name changed. Failed fetches keep the previous name.
func (nr *NameRefresher) Refresh(ctx context.Context) {
	blogs := nr.blogs.All()
	if len(blogs) == 0 {
		nr.logger.Debug("no blogs to refresh names for")
		return
	}

	nr.logger.Info("refreshing blog names", logger.Int("count", len(blogs)))

	updated := 0
	for _, b := range blogs {
		if ctx.Err() != nil {
			break
		}
		if nr.blogs.UpdateName(ctx, b) {
			updated++
		}
	}

	if updated > 0 {
		nr.screen.Rebuild(ctx)
	}
}
