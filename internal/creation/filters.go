package creation

import (
	"path"
	"strings"
)

// Filters bundles the glob and hidden-file rules applied when walking a
// source tree for archive creation.
type Filters struct {
	// ExcludeHidden skips any path component starting with ".".
	ExcludeHidden bool
	// ExcludeGlobs is a list of path.Match patterns matched against the
	// whole relative path; a match excludes the entry.
	ExcludeGlobs []string
}

// Allows reports whether relPath should be included in a created
// archive.
func (f Filters) Allows(relPath string) bool {
	if f.ExcludeHidden {
		for _, part := range strings.Split(relPath, "/") {
			if strings.HasPrefix(part, ".") {
				return false
			}
		}
	}
	for _, pattern := range f.ExcludeGlobs {
		if ok, _ := path.Match(pattern, relPath); ok {
			return false
		}
	}
	return true
}
