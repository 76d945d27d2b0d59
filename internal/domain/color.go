package domain

import (
	"math/rand/v2"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// iconPalette holds the switcher button colors.
var iconPalette = []string{
	"#1abc9c", "#16a085", "#2ecc71", "#27ae60",
	"#3498db", "#2980b9", "#9b59b6", "#8e44ad",
	"#34495e", "#2c3e50", "#f1c40f", "#f39c12",
	"#e67e22", "#d35400", "#e74c3c", "#c0392b",
}

// PickIconColor returns a random palette color that is not excluding.
func PickIconColor(excluding string) string {
	for {
		c := iconPalette[rand.IntN(len(iconPalette))]
		if !SameColor(c, excluding) {
			return c
		}
	}
}

// NormalizeColor returns the lowercase #rrggbb form of a hex color, or the
// trimmed lowercase input when it does not parse.
func NormalizeColor(s string) string {
	s = strings.TrimSpace(s)
	if c, err := colorful.Hex(s); err == nil {
		return c.Hex()
	}
	return strings.ToLower(s)
}

// SameColor compares two hex colors after normalization.
// Empty strings never match.
func SameColor(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return NormalizeColor(a) == NormalizeColor(b)
}
