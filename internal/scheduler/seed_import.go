package scheduler

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/ghostdesk/internal/domain"
	"github.com/MrSnakeDoc/ghostdesk/internal/logger"
	"github.com/MrSnakeDoc/ghostdesk/internal/sources/seed"
)

// SeedTarget is the registry side of a seed import.
type SeedTarget interface {
	Refresh(ctx context.Context) ([]*domain.Blog, error)
	Add(ctx context.Context, blog *domain.Blog) error
}

// SeedImporter loads the registry from the store on startup and, when the
// store holds no blog yet, imports the seed file.
type SeedImporter struct {
	loader *seed.Loader
	target SeedTarget
	logger logger.Logger
}

// NewSeedImporter creates a new seed importer. An empty seedFile disables
// the import.
func NewSeedImporter(seedFile string, target SeedTarget, log logger.Logger) *SeedImporter {
	var loader *seed.Loader
	if seedFile != "" {
		loader = seed.NewLoader(seedFile)
	}
	return &SeedImporter{
		loader: loader,
		target: target,
		logger: log,
	}
}

// Sync refreshes the registry and imports the seed file into an empty one.
// It returns the number of imported blogs.
func (si *SeedImporter) Sync(ctx context.Context) (int, error) {
	si.logger.Info("loading blogs from redis")

	existing, err := si.target.Refresh(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		si.logger.Info("loaded blogs from redis", logger.Int("count", len(existing)))
		return 0, nil
	}
	if si.loader == nil {
		si.logger.Info("no blogs found and no seed file configured")
		return 0, nil
	}

	file, err := si.loader.Load()
	if err != nil {
		return 0, fmt.Errorf("failed to load seed file: %w", err)
	}
	blogs, err := seed.MapBlogs(file)
	if err != nil {
		return 0, fmt.Errorf("failed to map seed file: %w", err)
	}

	imported := 0
	for _, b := range blogs {
		if err := si.target.Add(ctx, b); err != nil {
			si.logger.Warn("failed to import seeded blog",
				logger.String("url", b.URL),
				logger.Error(err))
			continue
		}
		imported++
	}

	si.logger.Info("imported blogs from seed file", logger.Int("count", imported))
	return imported, nil
}
