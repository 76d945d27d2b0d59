package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// AppName prefixes the window title of every viewed blog.
const AppName = "Ghost"

var (
	// ErrBlogNotFound is returned when a blog ID is not present in the store.
	ErrBlogNotFound = errors.New("blog not found")
	// ErrUnknownBlog is returned when an action targets a blog that is not
	// part of the registry.
	ErrUnknownBlog = errors.New("blog is not part of the registry")
)

// Blog is a connected blog as mirrored from the store.
type Blog struct {
	// ─────────────────────────────
	// Identity
	// ─────────────────────────────

	// ID is assigned by the store when the blog is first saved.
	ID string `json:"id"`

	// Index is an ordering hint. Lower first.
	Index int `json:"index"`

	// ─────────────────────────────
	// Display
	// ─────────────────────────────

	// Name is refreshed from the blog homepage title.
	Name string `json:"name"`

	// URL is the sanitized blog address (see SanitizeURL).
	URL string `json:"url"`

	// IconColor is a #rrggbb color used for the switcher button.
	IconColor string `json:"iconColor"`

	// ─────────────────────────────
	// Credentials
	// ─────────────────────────────

	// Identification is the keychain account, usually an email address.
	Identification string `json:"identification"`

	BasicUsername string `json:"basicUsername,omitempty"`
	BasicPassword string `json:"basicPassword,omitempty"`

	// ─────────────────────────────
	// State
	// ─────────────────────────────

	IsSelected       bool `json:"isSelected"`
	IsResetRequested bool `json:"isResetRequested"`
}

// NewBlog returns a blog with a sanitized URL and a fresh icon color.
func NewBlog(name, rawURL, identification string) *Blog {
	return &Blog{
		Name:           name,
		URL:            SanitizeURL(rawURL),
		Identification: identification,
		IconColor:      PickIconColor(""),
	}
}

// Title is the window title shown while the blog is viewed.
func (b *Blog) Title() string {
	return fmt.Sprintf("%s - %s", AppName, b.Name)
}

// Serialize returns the JSON snapshot (ID included) sent to the host on save.
func (b *Blog) Serialize() ([]byte, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize blog %s: %w", b.ID, err)
	}
	return data, nil
}

// Clone returns a shallow copy safe to hand out of a lock.
func (b *Blog) Clone() *Blog {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}

// RandomIconColor assigns a new icon color that differs from both the current
// color and excluding.
func (b *Blog) RandomIconColor(excluding string) {
	for {
		next := PickIconColor(excluding)
		if !SameColor(next, b.IconColor) {
			b.IconColor = next
			return
		}
	}
}
