package redis

import "fmt"

const (
	// KeyPrefixBlog is the prefix for blog keys
	KeyPrefixBlog = "ghostdesk:blog:"
	// KeyAllBlogs is the key for the set of all blog IDs
	KeyAllBlogs = "ghostdesk:blogs:all"
	// KeyPreferences is the hash holding the user preferences
	KeyPreferences = "ghostdesk:preferences"
)

// BlogKey returns the Redis key for a blog by ID
func BlogKey(id string) string {
	return KeyPrefixBlog + id
}

// AllBlogsKey returns the key for the set of all blog IDs
func AllBlogsKey() string {
	return KeyAllBlogs
}

// ExtractBlogID extracts the blog ID from a Redis key
func ExtractBlogID(key string) (string, error) {
	if len(key) <= len(KeyPrefixBlog) {
		return "", fmt.Errorf("invalid blog key: %s", key)
	}
	return key[len(KeyPrefixBlog):], nil
}
