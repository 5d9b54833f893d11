// Package stacktrace trims runtime stacks down to the frames of this module.
package stacktrace

import "strings"

const marker = "/internal/"

// InternalPaths returns the "internal/<pkg>/<file>.go:<line>" locations found
// in a debug.Stack dump, outermost call last.
func InternalPaths(stack []byte) []string {
	var paths []string
	for _, line := range strings.Split(string(stack), "\n") {
		line = strings.TrimSpace(line)

		loc, _, _ := strings.Cut(line, " +0x")
		if !strings.Contains(loc, ".go:") {
			continue
		}

		idx := strings.LastIndex(loc, marker)
		if idx == -1 {
			continue
		}
		paths = append(paths, loc[idx+1:])
	}
	return paths
}
