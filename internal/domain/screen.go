package domain

// ScreenKind identifies which surface the shell shows.
type ScreenKind string

const (
	ScreenAddBlog     ScreenKind = "ADD_BLOG"
	ScreenEditBlog    ScreenKind = "EDIT_BLOG"
	ScreenPreferences ScreenKind = "PREFERENCES"
	ScreenViewing     ScreenKind = "VIEWING"
)

// Screen is the visible surface. BlogID is only set for ScreenViewing.
type Screen struct {
	Kind   ScreenKind `json:"kind"`
	BlogID string     `json:"blogId,omitempty"`
}

// AddBlogScreen is the screen shown when there is nothing else to show.
func AddBlogScreen() Screen { return Screen{Kind: ScreenAddBlog} }

// ViewingScreen shows the content of the given blog.
func ViewingScreen(blogID string) Screen {
	return Screen{Kind: ScreenViewing, BlogID: blogID}
}

// IsEditBlogVisible reports whether the add/edit blog panel is shown.
func (s Screen) IsEditBlogVisible() bool {
	return s.Kind == ScreenAddBlog || s.Kind == ScreenEditBlog
}

// IsPreferencesVisible reports whether the preferences panel is shown.
func (s Screen) IsPreferencesVisible() bool {
	return s.Kind == ScreenPreferences
}

// IsViewing reports whether a blog's content is shown.
func (s Screen) IsViewing() bool {
	return s.Kind == ScreenViewing
}

// PreFill carries values for the add blog form.
type PreFill struct {
	URL  string `json:"url"`
	User string `json:"user"`
}

// Preferences are the user settings of the shell.
type Preferences struct {
	IsNotificationsEnabled   bool `json:"isNotificationsEnabled"`
	IsQuickSwitcherMinimized bool `json:"isQuickSwitcherMinimized"`
}

// DefaultPreferences is used until the user changes anything.
func DefaultPreferences() Preferences {
	return Preferences{
		IsNotificationsEnabled:   true,
		IsQuickSwitcherMinimized: false,
	}
}

// Draft is a post the host asked to open in the editor.
type Draft struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
