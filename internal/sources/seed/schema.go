package seed

// File is the top-level structure of the seed file.
//
//	blogs:
//	  - name: My Blog
//	    url: https://blog.domain.ext
//	    identification: me@domain.ext
type File struct {
	Blogs []Entry `yaml:"blogs"`
}

// Entry is one blog in the seed file.
type Entry struct {
	Name           string `yaml:"name"`
	URL            string `yaml:"url"`
	Identification string `yaml:"identification,omitempty"`
	Index          int    `yaml:"index,omitempty"`
	IconColor      string `yaml:"iconColor,omitempty"`
}
