package seed

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/MrSnakeDoc/ghostdesk/internal/domain"
)

// MapBlogs converts seed entries to blogs. Entries without a usable http(s)
// URL are skipped, as are duplicates of an earlier URL.
func MapBlogs(file *File) ([]*domain.Blog, error) {
	if file == nil {
		return nil, fmt.Errorf("no seed file")
	}

	blogs := make([]*domain.Blog, 0, len(file.Blogs))
	seen := make(map[string]bool, len(file.Blogs))

	for _, e := range file.Blogs {
		sanitized := domain.SanitizeURL(e.URL)
		if !isHTTPURL(sanitized) || seen[sanitized] {
			continue
		}
		seen[sanitized] = true

		name := strings.TrimSpace(e.Name)
		if name == "" {
			name = hostOf(sanitized)
		}

		blog := domain.NewBlog(name, sanitized, strings.TrimSpace(e.Identification))
		blog.Index = e.Index
		if e.IconColor != "" {
			blog.IconColor = domain.NormalizeColor(e.IconColor)
		}
		blogs = append(blogs, blog)
	}

	if len(blogs) == 0 {
		return nil, fmt.Errorf("no valid blogs found in seed file")
	}

	return blogs, nil
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// hostOf returns the hostname used as fallback name.
// Example: "https://blog.domain.ext/ghost" -> "blog.domain.ext"
func hostOf(s string) string {
	if u, err := url.Parse(s); err == nil {
		return u.Hostname()
	}
	return s
}
