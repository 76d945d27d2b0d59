package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/ghostdesk/internal/domain"
)

type recordingNotifier struct {
	snapshots [][]byte
}

func (n *recordingNotifier) BlogSerialized(_ context.Context, snapshot []byte) error {
	n.snapshots = append(n.snapshots, snapshot)
	return nil
}

func newTestStore(t *testing.T) (*Store, *recordingNotifier) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	n := &recordingNotifier{}
	return NewStore(client, n), n
}

func TestSaveBlogAssignsIDAndNotifies(t *testing.T) {
	store, n := newTestStore(t)
	ctx := context.Background()

	blog := domain.NewBlog("Blog", "http://a.com/", "me@a.com")
	if err := store.SaveBlog(ctx, blog); err != nil {
		t.Fatalf("SaveBlog() error = %v", err)
	}

	if blog.ID == "" {
		t.Fatal("SaveBlog() did not assign an ID")
	}
	if len(n.snapshots) != 1 {
		t.Fatalf("notifier got %d snapshots, want 1", len(n.snapshots))
	}

	got, err := store.GetBlog(ctx, blog.ID)
	if err != nil {
		t.Fatalf("GetBlog() error = %v", err)
	}
	if got.URL != "http://a.com" {
		t.Errorf("GetBlog().URL = %q, want %q", got.URL, "http://a.com")
	}
}

func TestGetBlogNotFound(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.GetBlog(context.Background(), "missing")
	if !errors.Is(err, domain.ErrBlogNotFound) {
		t.Errorf("GetBlog() error = %v, want ErrBlogNotFound", err)
	}
}

func TestFindAllOrdersByIndexThenID(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	blogs := []*domain.Blog{
		{ID: "c", Index: 1, URL: "http://c.com"},
		{ID: "b", Index: 0, URL: "http://b.com"},
		{ID: "a", Index: 1, URL: "http://a.com"},
	}
	for _, b := range blogs {
		if err := store.SaveBlog(ctx, b); err != nil {
			t.Fatalf("SaveBlog() error = %v", err)
		}
	}

	all, err := store.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}

	want := []string{"b", "a", "c"}
	if len(all) != len(want) {
		t.Fatalf("FindAll() returned %d blogs, want %d", len(all), len(want))
	}
	for i, id := range want {
		if all[i].ID != id {
			t.Errorf("FindAll()[%d].ID = %q, want %q", i, all[i].ID, id)
		}
	}
}

func TestDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	blog := &domain.Blog{URL: "http://a.com"}
	if err := store.SaveBlog(ctx, blog); err != nil {
		t.Fatalf("SaveBlog() error = %v", err)
	}
	if err := store.Delete(ctx, blog.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	all, err := store.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(all) != 0 {
		t.Errorf("FindAll() after Delete returned %d blogs, want 0", len(all))
	}
}

func TestPreferencesDefaultsAndRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	prefs, err := store.GetPreferences(ctx)
	if err != nil {
		t.Fatalf("GetPreferences() error = %v", err)
	}
	if prefs != domain.DefaultPreferences() {
		t.Errorf("GetPreferences() = %+v, want defaults", prefs)
	}

	want := domain.Preferences{IsNotificationsEnabled: false, IsQuickSwitcherMinimized: true}
	if err := store.SavePreferences(ctx, want); err != nil {
		t.Fatalf("SavePreferences() error = %v", err)
	}

	got, err := store.GetPreferences(ctx)
	if err != nil {
		t.Fatalf("GetPreferences() error = %v", err)
	}
	if got != want {
		t.Errorf("GetPreferences() = %+v, want %+v", got, want)
	}
}
