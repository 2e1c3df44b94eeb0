package shared

import (
	"fmt"
	"strings"
)

// FormatRuntime renders minutes as "2h 5m"; zero or negative yields "".
func FormatRuntime(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// FormatRating renders a rating with one decimal, or "" when absent.
func FormatRating(rating *float64) string {
	if rating == nil {
		return ""
	}
	return fmt.Sprintf("%.1f", *rating)
}

// CountLabel renders "1 item" / "3 items".
func CountLabel(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// ImageURL joins an image base URL, a size segment and a relative image path.
//
// Returns "" when path is empty so callers can fall back to a placeholder.
func ImageURL(base, size, path string) string {
	if path == "" {
		return ""
	}
	base = strings.TrimRight(base, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return fmt.Sprintf("%s/%s%s", base, size, path)
}

// Truncate shortens s to at most n runes, adding an ellipsis when cut.
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
