// Package pathutil normalizes request paths into route templates so metrics labels
// and span names stay low-cardinality.
package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns is evaluated in order; the first match wins.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/api/entries/\d{4}-\d{2}-\d{2}$`), Template: "/api/entries/:date"},
	{Pattern: regexp.MustCompile(`^/api/entries/[^/]+$`), Template: "/api/entries/:id"},
}

// knownPaths pass through unchanged.
var knownPaths = map[string]bool{
	"/":            true,
	"/api/entries": true,
	"/api/stats":   true,
	"/api/search":  true,
	"/health":      true,
	"/ready":       true,
	"/live":        true,
	"/metrics":     true,
}

// NormalizePath maps a request path to its route template.
// Paths under /api/ that match no route collapse to "/api/*"; anything else to "other".
//
//	NormalizePath("/api/entries/2024-01-01")  // "/api/entries/:date"
//	NormalizePath("/api/entries/3f2c…")       // "/api/entries/:id"
//	NormalizePath("/api/search?q=x")          // "/api/search"
//	NormalizePath("/api/nope/1")              // "/api/*"
//	NormalizePath("/wp-login.php")            // "other"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	if knownPaths[path] {
		return path
	}
	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	if strings.HasPrefix(path, "/api/") || path == "/api" {
		return "/api/*"
	}
	return "other"
}
