package finder

import (
	"context"
	"testing"

	"github.com/MrSnakeDoc/ghostdesk/internal/logger"
)

type fakePage struct {
	finds []string
	stops int
}

func (p *fakePage) FindInPage(_ context.Context, term string) error {
	p.finds = append(p.finds, term)
	return nil
}

func (p *fakePage) StopFindInPage(context.Context) error {
	p.stops++
	return nil
}

type fakeView bool

func (v fakeView) IsViewing() bool { return bool(v) }

func TestToggle(t *testing.T) {
	page := &fakePage{}
	f := New(page, fakeView(true), logger.New("error", false))
	ctx := context.Background()

	_ = f.Search(ctx, "old")

	st, err := f.Toggle(ctx)
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if !st.Active || st.Term != "" {
		t.Errorf("Toggle() on = %+v, want active with empty term", st)
	}
	if page.stops != 0 {
		t.Errorf("stops = %d after activation, want 0", page.stops)
	}

	st, err = f.Toggle(ctx)
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if st.Active {
		t.Error("Toggle() off left finder active")
	}
	if page.stops != 1 {
		t.Errorf("stops = %d after deactivation, want 1", page.stops)
	}
}

func TestKeyUp(t *testing.T) {
	tests := []struct {
		name      string
		viewing   bool
		term      string
		key       string
		wantFinds int
		wantStops int
	}{
		{name: "letter searches", viewing: true, term: "gho", key: "o", wantFinds: 1},
		{name: "empty term does nothing", viewing: true, term: "", key: "Backspace"},
		{name: "escape cancels", viewing: true, term: "ghost", key: KeyEscape, wantStops: 1},
		{name: "no visible blog", viewing: false, term: "ghost", key: "t"},
		{name: "escape without visible blog", viewing: false, key: KeyEscape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := &fakePage{}
			f := New(page, fakeView(tt.viewing), logger.New("error", false))

			if err := f.KeyUp(context.Background(), tt.term, tt.key); err != nil {
				t.Fatalf("KeyUp() error = %v", err)
			}
			if len(page.finds) != tt.wantFinds {
				t.Errorf("finds = %v, want %d", page.finds, tt.wantFinds)
			}
			if page.stops != tt.wantStops {
				t.Errorf("stops = %d, want %d", page.stops, tt.wantStops)
			}
		})
	}
}

func TestSearchKeepsTerm(t *testing.T) {
	f := New(&fakePage{}, fakeView(false), logger.New("error", false))

	_ = f.Search(context.Background(), "ghost")
	if got := f.State().Term; got != "ghost" {
		t.Errorf("Term = %q, want %q", got, "ghost")
	}
}
