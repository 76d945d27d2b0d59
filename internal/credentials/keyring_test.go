package credentials

import (
	"errors"
	"testing"

	"github.com/99designs/keyring"

	"github.com/MrSnakeDoc/ghostdesk/internal/logger"
)

// brokenRing fails every operation.
type brokenRing struct{}

var errBroken = errors.New("keychain locked")

func (brokenRing) Get(string) (keyring.Item, error)             { return keyring.Item{}, errBroken }
func (brokenRing) GetMetadata(string) (keyring.Metadata, error) { return keyring.Metadata{}, errBroken }
func (brokenRing) Set(keyring.Item) error                       { return errBroken }
func (brokenRing) Remove(string) error                          { return errBroken }
func (brokenRing) Keys() ([]string, error)                      { return nil, errBroken }

func TestSetThenGet(t *testing.T) {
	s := New(keyring.NewArrayKeyring(nil), logger.NewNop(), nil)

	s.Set("testblog", "test", "secret")

	got := s.Get("testblog", "test")
	if !got.Found() {
		t.Fatalf("Get() status = %v, want found", got.Status)
	}
	if got.Value != "secret" {
		t.Errorf("Get() value = %q, want %q", got.Value, "secret")
	}
}

func TestGetStatuses(t *testing.T) {
	tests := []struct {
		name  string
		store *Store
		url   string
		ident string
		want  Status
	}{
		{
			name:  "nothing stored",
			store: New(keyring.NewArrayKeyring(nil), logger.NewNop(), nil),
			url:   "http://a.com",
			ident: "me@a.com",
			want:  StatusNotStored,
		},
		{
			name:  "missing identification",
			store: New(keyring.NewArrayKeyring(nil), logger.NewNop(), nil),
			url:   "http://a.com",
			ident: "",
			want:  StatusNotStored,
		},
		{
			name:  "no backend",
			store: New(nil, logger.NewNop(), nil),
			url:   "http://a.com",
			ident: "me@a.com",
			want:  StatusBackendAbsent,
		},
		{
			name:  "backend failure",
			store: New(brokenRing{}, logger.NewNop(), nil),
			url:   "http://a.com",
			ident: "me@a.com",
			want:  StatusFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.store.Get(tt.url, tt.ident)
			if got.Status != tt.want {
				t.Errorf("Get() status = %v, want %v", got.Status, tt.want)
			}
			if got.Value != "" {
				t.Errorf("Get() value = %q, want empty", got.Value)
			}
		})
	}
}

func TestDeleteRemovesPassword(t *testing.T) {
	s := New(keyring.NewArrayKeyring(nil), logger.NewNop(), nil)
	s.Set("http://a.com", "me@a.com", "secret")

	s.Delete("http://a.com", "me@a.com")

	if got := s.Get("http://a.com", "me@a.com"); got.Status != StatusNotStored {
		t.Errorf("Get() after Delete status = %v, want not_stored", got.Status)
	}
}

func TestFailuresAreSwallowed(t *testing.T) {
	for _, s := range []*Store{
		New(nil, logger.NewNop(), nil),
		New(brokenRing{}, logger.NewNop(), nil),
	} {
		// Neither call may panic or surface an error.
		s.Set("http://a.com", "me@a.com", "secret")
		s.Delete("http://a.com", "me@a.com")
	}
}
