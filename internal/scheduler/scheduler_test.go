package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/MrSnakeDoc/ghostdesk/internal/domain"
	"github.com/MrSnakeDoc/ghostdesk/internal/logger"
)

type fakeNames struct {
	mu      sync.Mutex
	blogs   []*domain.Blog
	updated []string
	offline bool
}

func (f *fakeNames) All() []*domain.Blog { return f.blogs }

func (f *fakeNames) UpdateName(_ context.Context, blog *domain.Blog) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, blog.ID)
	return !f.offline
}

func (f *fakeNames) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.updated)
}

type fakeScreen struct {
	mu       sync.Mutex
	rebuilds int
}

func (f *fakeScreen) Rebuild(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rebuilds++
}

func TestNameRefresherRefresh(t *testing.T) {
	names := &fakeNames{blogs: []*domain.Blog{{ID: "a"}, {ID: "b"}}}
	scr := &fakeScreen{}
	nr := NewNameRefresher(names, scr, logger.New("error", false), time.Hour, nil)

	nr.Refresh(context.Background())

	if len(names.updated) != 2 || names.updated[0] != "a" || names.updated[1] != "b" {
		t.Errorf("updated = %v, want [a b]", names.updated)
	}
	if scr.rebuilds != 1 {
		t.Errorf("rebuilds = %d, want 1", scr.rebuilds)
	}
}

func TestNameRefresherRebuildsOnlyOnChange(t *testing.T) {
	tests := []struct {
		name  string
		names *fakeNames
		want  int
	}{
		{name: "empty registry", names: &fakeNames{}, want: 0},
		{name: "every fetch failed", names: &fakeNames{blogs: []*domain.Blog{{ID: "a"}}, offline: true}, want: 0},
		{name: "one name changed", names: &fakeNames{blogs: []*domain.Blog{{ID: "a"}}}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scr := &fakeScreen{}
			nr := NewNameRefresher(tt.names, scr, logger.New("error", false), time.Hour, nil)

			nr.Refresh(context.Background())

			if scr.rebuilds != tt.want {
				t.Errorf("rebuilds = %d, want %d", scr.rebuilds, tt.want)
			}
		})
	}
}

func TestNameRefresherManualTrigger(t *testing.T) {
	names := &fakeNames{blogs: []*domain.Blog{{ID: "a"}}}
	trigger := make(chan struct{})
	nr := NewNameRefresher(names, &fakeScreen{}, logger.New("error", false), time.Hour, trigger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	nr.Start(ctx)
	defer nr.Stop()

	// The initial pass runs before the trigger is read.
	trigger <- struct{}{}

	deadline := time.Now().Add(2 * time.Second)
	for names.count() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("updates = %d, want 2", names.count())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

type fakeTarget struct {
	existing []*domain.Blog
	added    []*domain.Blog
}

func (f *fakeTarget) Refresh(context.Context) ([]*domain.Blog, error) {
	return f.existing, nil
}

func (f *fakeTarget) Add(_ context.Context, blog *domain.Blog) error {
	f.added = append(f.added, blog)
	return nil
}

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blogs.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

const seedYAML = `
blogs:
  - name: Alpha
    url: http://a.com/
    identification: me@a.com
  - name: Broken
    url: "ftp://nope"
  - url: https://b.com
    index: 1
`

func TestSeedImporterImportsIntoEmptyRegistry(t *testing.T) {
	target := &fakeTarget{}
	si := NewSeedImporter(writeSeed(t, seedYAML), target, logger.New("error", false))

	n, err := si.Sync(context.Background())
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if n != 2 || len(target.added) != 2 {
		t.Fatalf("imported = %d (added %d), want 2", n, len(target.added))
	}
	if target.added[0].URL != "http://a.com" {
		t.Errorf("added[0].URL = %q, want %q", target.added[0].URL, "http://a.com")
	}
	if target.added[1].Name != "b.com" {
		t.Errorf("added[1].Name = %q, want host fallback %q", target.added[1].Name, "b.com")
	}
}

func TestSeedImporterSkips(t *testing.T) {
	tests := []struct {
		name     string
		existing []*domain.Blog
		seedFile bool
	}{
		{name: "registry not empty", existing: []*domain.Blog{{ID: "x"}}, seedFile: true},
		{name: "no seed file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := &fakeTarget{existing: tt.existing}
			path := ""
			if tt.seedFile {
				path = writeSeed(t, seedYAML)
			}
			si := NewSeedImporter(path, target, logger.New("error", false))

			n, err := si.Sync(context.Background())
			if err != nil {
				t.Fatalf("Sync() error = %v", err)
			}
			if n != 0 || len(target.added) != 0 {
				t.Errorf("imported = %d, want 0", n)
			}
		})
	}
}

func TestSeedImporterMissingFile(t *testing.T) {
	si := NewSeedImporter(filepath.Join(t.TempDir(), "missing.yaml"), &fakeTarget{}, logger.New("error", false))

	if _, err := si.Sync(context.Background()); err == nil {
		t.Error("Sync() error = nil, want error for missing seed file")
	}
}
