package domain

import (
	"net/url"
	"strings"
)

// SanitizeURL normalizes a blog address so that equal blogs compare equal.
//
// Examples:
//
//	"http://a.com/"         -> "http://a.com"
//	"HTTPS://Blog.EXT:443/" -> "https://blog.ext"
//	"blog.ext/ghost/"       -> "http://blog.ext/ghost"
func SanitizeURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if !strings.Contains(s, "://") {
		s = "http://" + s
	}

	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return strings.TrimSpace(raw)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Hostname())
	port := u.Port()
	if (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443") {
		port = ""
	}
	if port != "" {
		if strings.Contains(host, ":") {
			host = "[" + host + "]"
		}
		u.Host = host + ":" + port
	} else if strings.Contains(host, ":") {
		u.Host = "[" + host + "]"
	} else {
		u.Host = host
	}

	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.Fragment = ""
	u.RawFragment = ""

	return u.String()
}
