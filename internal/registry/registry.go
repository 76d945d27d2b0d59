// Package registry keeps the in-memory, ordered list of connected blogs
// mirrored from the store.
package registry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/ghostdesk/internal/domain"
	"github.com/MrSnakeDoc/ghostdesk/internal/logger"
	"github.com/MrSnakeDoc/ghostdesk/internal/metrics"
)

// Persistence is the storage contract the registry mirrors.
type Persistence interface {
	FindAll(ctx context.Context) ([]*domain.Blog, error)
	Save(ctx context.Context, blog *domain.Blog) error
	Delete(ctx context.Context, id string) error
}

// CredentialRemover deletes the stored password of a removed blog.
type CredentialRemover interface {
	Delete(url, identification string)
}

// NameFetcher resolves a blog's display name from its homepage.
type NameFetcher interface {
	FetchName(ctx context.Context, blogURL string) (string, error)
}

// Registry is the ordered collection of blogs. Blogs handed out are never
// mutated afterwards: updates swap in a modified copy, so callers may read a
// record without holding any lock.
type Registry struct {
	mu          sync.RWMutex
	blogs       []*domain.Blog
	lastRefresh time.Time

	store       Persistence
	credentials CredentialRemover
	names       NameFetcher
	logger      logger.Logger
	metrics     metrics.Recorder
}

// New creates an empty registry. credentials and names may be nil.
func New(store Persistence, credentials CredentialRemover, names NameFetcher, log logger.Logger, rec metrics.Recorder) *Registry {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Registry{
		store:       store,
		credentials: credentials,
		names:       names,
		logger:      log,
		metrics:     rec,
	}
}

// HasBlogs reports whether the collection is non-empty.
func (r *Registry) HasBlogs() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.blogs) > 0
}

// Count returns the number of blogs.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.blogs)
}

// All returns the blogs in registry order.
func (r *Registry) All() []*domain.Blog {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Blog, len(r.blogs))
	copy(out, r.blogs)
	return out
}

// First returns the first blog in registry order.
func (r *Registry) First() (*domain.Blog, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.blogs) == 0 {
		return nil, false
	}
	return r.blogs[0], true
}

// FindSelected returns the first blog marked as selected.
func (r *Registry) FindSelected() (*domain.Blog, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.blogs {
		if b.IsSelected {
			return b, true
		}
	}
	return nil, false
}

// Get returns the blog with the given ID.
func (r *Registry) Get(id string) (*domain.Blog, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.findLocked(id)
}

// Contains reports whether blog (by ID) is part of the registry.
func (r *Registry) Contains(blog *domain.Blog) bool {
	if blog == nil {
		return false
	}
	_, ok := r.Get(blog.ID)
	return ok
}

// FindByURL returns the blog whose sanitized URL equals url after sanitation.
func (r *Registry) FindByURL(url string) (*domain.Blog, bool) {
	sanitized := domain.SanitizeURL(url)

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.blogs {
		if domain.SanitizeURL(b.URL) == sanitized {
			return b, true
		}
	}
	return nil, false
}

// LastRefresh returns the time of the last successful refresh.
func (r *Registry) LastRefresh() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.lastRefresh
}

// Refresh reloads every blog from the store and replaces the collection.
func (r *Registry) Refresh(ctx context.Context) ([]*domain.Blog, error) {
	r.logger.Debug("refreshing blogs")

	blogs, err := r.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh blogs: %w", err)
	}

	r.mu.Lock()
	r.blogs = blogs
	r.lastRefresh = time.Now()
	r.mu.Unlock()

	out := make([]*domain.Blog, len(blogs))
	copy(out, blogs)
	return out, nil
}

// Add persists a new blog and refreshes the collection.
func (r *Registry) Add(ctx context.Context, blog *domain.Blog) error {
	if blog == nil {
		return fmt.Errorf("cannot add nil blog")
	}
	blog.URL = domain.SanitizeURL(blog.URL)
	if blog.IconColor == "" {
		blog.IconColor = domain.PickIconColor("")
	}

	if err := r.store.Save(ctx, blog); err != nil {
		return fmt.Errorf("failed to add blog: %w", err)
	}
	r.logger.Info("blog added",
		logger.String("blog_id", blog.ID),
		logger.String("url", blog.URL))

	_, err := r.Refresh(ctx)
	return err
}

// Remove deletes a blog and its stored password, then refreshes.
func (r *Registry) Remove(ctx context.Context, blog *domain.Blog) error {
	if blog == nil {
		return fmt.Errorf("cannot remove nil blog")
	}

	if err := r.store.Delete(ctx, blog.ID); err != nil {
		return fmt.Errorf("failed to remove blog: %w", err)
	}
	if r.credentials != nil {
		r.credentials.Delete(blog.URL, blog.Identification)
	}
	r.logger.Info("blog removed",
		logger.String("blog_id", blog.ID),
		logger.String("url", blog.URL))

	_, err := r.Refresh(ctx)
	return err
}

// Save persists blog as is.
func (r *Registry) Save(ctx context.Context, blog *domain.Blog) error {
	r.logger.Debug("saving blog", logger.String("url", blog.URL))
	if err := r.store.Save(ctx, blog); err != nil {
		return fmt.Errorf("failed to save blog %s: %w", blog.ID, err)
	}
	return nil
}

// Select marks blog as selected and saves it. Blogs that are no longer part
// of the registry are left untouched.
func (r *Registry) Select(ctx context.Context, blog *domain.Blog) error {
	return r.setSelected(ctx, blog, true)
}

// Unselect clears the selection flag of blog and saves it.
func (r *Registry) Unselect(ctx context.Context, blog *domain.Blog) error {
	return r.setSelected(ctx, blog, false)
}

func (r *Registry) setSelected(ctx context.Context, blog *domain.Blog, selected bool) error {
	if blog == nil {
		return nil
	}

	current, ok := r.update(blog.ID, func(b *domain.Blog) { b.IsSelected = selected })
	if !ok {
		return nil
	}

	r.logger.Debug("changing selection",
		logger.String("url", current.URL),
		logger.Bool("selected", selected))
	return r.Save(ctx, current)
}

// UpdateName refreshes the blog's name from its homepage and reports whether
// a new name was stored. Failures are logged and swallowed; the previous
// name is kept.
func (r *Registry) UpdateName(ctx context.Context, blog *domain.Blog) bool {
	if blog == nil || blog.URL == "" || r.names == nil {
		return false
	}

	r.logger.Debug("updating name", logger.String("url", blog.URL))

	name, err := r.names.FetchName(ctx, blog.URL)
	if err != nil {
		r.metrics.RecordNameFetch(false)
		r.logger.Info("tried to update blog name, but failed",
			logger.String("url", blog.URL),
			logger.Error(err))
		return false
	}
	r.metrics.RecordNameFetch(true)

	current, ok := r.update(blog.ID, func(b *domain.Blog) { b.Name = name })
	if !ok {
		r.logger.Debug("blog removed while its name was fetched", logger.String("url", blog.URL))
		return false
	}

	if err := r.Save(ctx, current); err != nil {
		r.logger.Warn("failed to save updated name",
			logger.String("url", blog.URL),
			logger.Error(err))
	}
	return true
}

// RandomIconColor gives blog a new icon color different from excluding,
// saves it and returns the updated record.
func (r *Registry) RandomIconColor(ctx context.Context, blog *domain.Blog, excluding string) (*domain.Blog, error) {
	current, ok := r.update(blog.ID, func(b *domain.Blog) { b.RandomIconColor(excluding) })
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownBlog, blog.ID)
	}
	return current, r.Save(ctx, current)
}

// update applies fn to a copy of the record with id and swaps the copy in.
func (r *Registry) update(id string, fn func(b *domain.Blog)) (*domain.Blog, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, b := range r.blogs {
		if b.ID == id {
			c := b.Clone()
			fn(c)
			r.blogs[i] = c
			return c, true
		}
	}
	return nil, false
}

func (r *Registry) findLocked(id string) (*domain.Blog, bool) {
	for _, b := range r.blogs {
		if b.ID == id {
			return b, true
		}
	}
	return nil, false
}
