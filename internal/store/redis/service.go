package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/ghostdesk/internal/domain"
)

// SaveNotifier is told about every saved blog. The host bridge implements it
// to mirror blogs into the host process.
type SaveNotifier interface {
	BlogSerialized(ctx context.Context, snapshot []byte) error
}

// Store handles Redis operations for blogs and preferences
type Store struct {
	client   *redis.Client
	notifier SaveNotifier
}

// NewStore creates a new Redis store. notifier may be nil.
func NewStore(client *redis.Client, notifier SaveNotifier) *Store {
	return &Store{
		client:   client,
		notifier: notifier,
	}
}

// SaveBlog stores a blog in Redis, assigning an ID to new blogs, and pushes
// the serialized snapshot to the notifier.
func (s *Store) SaveBlog(ctx context.Context, blog *domain.Blog) error {
	if blog.ID == "" {
		blog.ID = uuid.NewString()
	}

	data, err := blog.Serialize()
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, BlogKey(blog.ID), data, 0)
	pipe.SAdd(ctx, AllBlogsKey(), blog.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save blog: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.BlogSerialized(ctx, data); err != nil {
			return fmt.Errorf("failed to publish serialized blog: %w", err)
		}
	}

	return nil
}

// GetBlog retrieves a blog from Redis by ID
func (s *Store) GetBlog(ctx context.Context, id string) (*domain.Blog, error) {
	data, err := s.client.Get(ctx, BlogKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", domain.ErrBlogNotFound, id)
		}
		return nil, fmt.Errorf("failed to get blog: %w", err)
	}

	var blog domain.Blog
	if err := json.Unmarshal(data, &blog); err != nil {
		return nil, fmt.Errorf("failed to unmarshal blog: %w", err)
	}
	blog.ID = id

	return &blog, nil
}

// FindAll retrieves every blog, ordered by Index then ID
func (s *Store) FindAll(ctx context.Context) ([]*domain.Blog, error) {
	ids, err := s.client.SMembers(ctx, AllBlogsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get blog IDs: %w", err)
	}

	blogs := make([]*domain.Blog, 0, len(ids))
	for _, id := range ids {
		blog, err := s.GetBlog(ctx, id)
		if err != nil {
			// Skip blogs that couldn't be retrieved
			continue
		}
		blogs = append(blogs, blog)
	}

	sort.SliceStable(blogs, func(i, j int) bool {
		if blogs[i].Index != blogs[j].Index {
			return blogs[i].Index < blogs[j].Index
		}
		return blogs[i].ID < blogs[j].ID
	})

	return blogs, nil
}

// Save implements the registry persistence contract.
func (s *Store) Save(ctx context.Context, blog *domain.Blog) error {
	return s.SaveBlog(ctx, blog)
}

// Delete removes a blog from Redis
func (s *Store) Delete(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, BlogKey(id))
	pipe.SRem(ctx, AllBlogsKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
	}
	return nil
}
