package seed

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blogs.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}
	return path
}

func TestLoaderLoad(t *testing.T) {
	path := writeSeed(t, `---
blogs:
  - name: My Blog
    url: https://blog.domain.ext/
    identification: me@domain.ext
  - name: Other
    url: other.domain.ext
    index: 2
`)

	file, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(file.Blogs) != 2 {
		t.Fatalf("Load() returned %d blogs, want 2", len(file.Blogs))
	}
	if file.Blogs[1].Index != 2 {
		t.Errorf("Blogs[1].Index = %d, want 2", file.Blogs[1].Index)
	}
}

func TestLoaderExpandsEnv(t *testing.T) {
	t.Setenv("GHOSTDESK_TEST_EMAIL", "me@domain.ext")
	path := writeSeed(t, `blogs:
  - url: https://blog.domain.ext
    identification: ${GHOSTDESK_TEST_EMAIL}
`)

	file, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := file.Blogs[0].Identification; got != "me@domain.ext" {
		t.Errorf("Identification = %q, want %q", got, "me@domain.ext")
	}
}

func TestLoaderLoadFileNotFound(t *testing.T) {
	if _, err := NewLoader("/nonexistent/path/blogs.yaml").Load(); err == nil {
		t.Error("Load() with non-existent file should return error")
	}
}

func TestMapBlogs(t *testing.T) {
	file := &File{Blogs: []Entry{
		{Name: "A", URL: "http://a.com/", Identification: " me@a.com "},
		{Name: "dup", URL: "HTTP://A.com"},
		{Name: "bad scheme", URL: "ftp://files.ext"},
		{Name: "", URL: "https://b.com/ghost/", IconColor: "#ABCDEF", Index: 3},
		{Name: "empty", URL: "   "},
	}}

	blogs, err := MapBlogs(file)
	if err != nil {
		t.Fatalf("MapBlogs() error = %v", err)
	}
	if len(blogs) != 2 {
		t.Fatalf("MapBlogs() returned %d blogs, want 2", len(blogs))
	}

	if blogs[0].URL != "http://a.com" || blogs[0].Identification != "me@a.com" {
		t.Errorf("blogs[0] = %+v", blogs[0])
	}
	if blogs[1].Name != "b.com" {
		t.Errorf("blogs[1].Name = %q, want host fallback %q", blogs[1].Name, "b.com")
	}
	if blogs[1].IconColor != "#abcdef" || blogs[1].Index != 3 {
		t.Errorf("blogs[1] = %+v", blogs[1])
	}
	if blogs[0].IconColor == "" {
		t.Error("blogs[0] should get a generated icon color")
	}
}

func TestMapBlogsEmpty(t *testing.T) {
	if _, err := MapBlogs(&File{}); err == nil {
		t.Error("MapBlogs() with no entries should return error")
	}
}
