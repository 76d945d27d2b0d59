package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/ghostdesk/internal/credentials"
	"github.com/MrSnakeDoc/ghostdesk/internal/domain"
	"github.com/MrSnakeDoc/ghostdesk/internal/httpserver/deps"
	"github.com/MrSnakeDoc/ghostdesk/internal/logger"
)

type addBlogRequest struct {
	Name           string `json:"name"`
	URL            string `json:"url"`
	Identification string `json:"identification"`
	Password       string `json:"password"`
	BasicUsername  string `json:"basicUsername"`
	BasicPassword  string `json:"basicPassword"`
	Index          int    `json:"index"`
}

type editBlogRequest struct {
	Warning string `json:"warning"`
}

type iconColorRequest struct {
	Excluding string `json:"excluding"`
}

type passwordRequest struct {
	Password string `json:"password"`
}

type passwordResponse struct {
	Status   string `json:"status"`
	Password string `json:"password,omitempty"`
}

// ListBlogs returns the blogs in registry order.
func ListBlogs(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogs := d.Registry.All()
		out := make([]*domain.Blog, 0, len(blogs))
		for _, b := range blogs {
			out = append(out, b.Clone())
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// AddBlog stores a new blog, its password, and switches to it.
func AddBlog(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addBlogRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(req.URL) == "" {
			writeError(w, http.StatusBadRequest, "url is required")
			return
		}

		blog := domain.NewBlog(req.Name, req.URL, req.Identification)
		blog.Index = req.Index
		blog.BasicUsername = req.BasicUsername
		blog.BasicPassword = req.BasicPassword

		if existing, ok := d.Registry.FindByURL(blog.URL); ok {
			writeJSON(w, http.StatusConflict, existing.Clone())
			return
		}

		if err := d.Screen.BlogAdded(r.Context(), blog); err != nil {
			writeFailure(w, d, err)
			return
		}
		if req.Password != "" {
			d.Credentials.Set(blog.URL, blog.Identification, req.Password)
		}

		d.Logger.Info("blog added via api", logger.String("url", blog.URL))
		go func(ctx context.Context, blog *domain.Blog) {
			if d.Registry.UpdateName(ctx, blog) {
				d.Screen.Rebuild(ctx)
			}
		}(context.WithoutCancel(r.Context()), blog)

		if stored, ok := d.Registry.Get(blog.ID); ok {
			blog = stored
		}
		writeJSON(w, http.StatusCreated, blog.Clone())
	}
}

// RemoveBlog deletes a blog and its stored password.
func RemoveBlog(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blog, err := blogParam(d, r)
		if err != nil {
			writeFailure(w, d, err)
			return
		}
		if err := d.Screen.BlogRemoved(r.Context(), blog); err != nil {
			writeFailure(w, d, err)
			return
		}
		writeState(w, d, http.StatusOK)
	}
}

// SwitchBlog shows the content of a blog.
func SwitchBlog(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blog, err := blogParam(d, r)
		if err != nil {
			writeFailure(w, d, err)
			return
		}
		if err := d.Screen.SwitchToBlog(r.Context(), blog); err != nil {
			writeFailure(w, d, err)
			return
		}
		writeState(w, d, http.StatusOK)
	}
}

// EditBlog opens the edit panel for a blog.
func EditBlog(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blog, err := blogParam(d, r)
		if err != nil {
			writeFailure(w, d, err)
			return
		}
		var req editBlogRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := d.Screen.ShowEditBlog(r.Context(), blog, req.Warning); err != nil {
			writeFailure(w, d, err)
			return
		}
		writeState(w, d, http.StatusOK)
	}
}

// RandomIconColor gives a blog a new icon color, never the excluded one.
func RandomIconColor(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blog, err := blogParam(d, r)
		if err != nil {
			writeFailure(w, d, err)
			return
		}
		var req iconColorRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		updated, err := d.Registry.RandomIconColor(r.Context(), blog, req.Excluding)
		if err != nil {
			writeFailure(w, d, err)
			return
		}
		writeJSON(w, http.StatusOK, updated.Clone())
	}
}

// GetPassword reads the stored password of a blog. The status tells apart a
// missing keychain from a missing entry.
func GetPassword(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blog, err := blogParam(d, r)
		if err != nil {
			writeFailure(w, d, err)
			return
		}

		res := d.Credentials.Get(blog.URL, blog.Identification)
		status := http.StatusOK
		switch res.Status {
		case credentials.StatusNotStored:
			status = http.StatusNotFound
		case credentials.StatusBackendAbsent:
			status = http.StatusServiceUnavailable
		case credentials.StatusFailed:
			status = http.StatusBadGateway
		}
		writeJSON(w, status, passwordResponse{Status: res.Status.String(), Password: res.Value})
	}
}

// SetPassword stores the password of a blog. Keychain failures are logged by
// the credential store, not reported.
func SetPassword(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blog, err := blogParam(d, r)
		if err != nil {
			writeFailure(w, d, err)
			return
		}
		var req passwordRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if req.Password == "" {
			d.Credentials.Delete(blog.URL, blog.Identification)
		} else {
			d.Credentials.Set(blog.URL, blog.Identification, req.Password)
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
