package convert

import "strings"

// URLFromPaths returns the first dropped entry that is an http(s) URL.
// Desktop drops of links from browsers arrive as pseudo paths.
func URLFromPaths(paths []string) (string, bool) {
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
			return p, true
		}
	}
	return "", false
}
