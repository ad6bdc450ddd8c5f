// Package pathutil maps request paths to a bounded set of route labels for metrics.
package pathutil

import "strings"

// Other is the label for every path that matches no known route.
const Other = "other"

// exactRoutes are served verbatim.
var exactRoutes = map[string]struct{}{
	"/":                  {},
	"/sentimentAnalyzer": {},
	"/health":            {},
	"/live":              {},
	"/metrics":           {},
}

// prefixRoutes collapse every path below a prefix into one label.
var prefixRoutes = []struct {
	prefix   string
	template string
}{
	{prefix: "/static/", template: "/static/*"},
	{prefix: "/swagger/", template: "/swagger/*"},
}

// NormalizePath returns the route label for path. Unknown paths, which are
// answered with 404, all share the label Other so arbitrary URLs cannot grow
// metric cardinality.
//
//	NormalizePath("/sentimentAnalyzer")     // "/sentimentAnalyzer"
//	NormalizePath("/static/mywebscript.js") // "/static/*"
//	NormalizePath("/wp-admin.php")          // "other"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if path == "" {
		path = "/"
	}

	if _, ok := exactRoutes[path]; ok {
		return path
	}
	for _, r := range prefixRoutes {
		if strings.HasPrefix(path, r.prefix) {
			return r.template
		}
	}
	return Other
}

// Cardinality returns the number of distinct labels NormalizePath can produce.
func Cardinality() int {
	return len(exactRoutes) + len(prefixRoutes) + 1
}
