package utils

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FormatPaths formats a list of file paths for display, shown relative to
// base where possible.
func FormatPaths(paths []string, base string) string {
	if len(paths) == 0 {
		return "(none)"
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, p := range paths {
		display := p
		if base != "" {
			if rel, err := filepath.Rel(base, p); err == nil && !strings.HasPrefix(rel, "..") {
				display = rel
			}
		}
		fmt.Fprintf(&b, "  - %s\n", display)
	}
	return b.String()
}
