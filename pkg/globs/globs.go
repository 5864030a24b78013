// Package globs compiles a user-supplied list of glob expressions into
// a single membership test applied to each walked path.
package globs

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/arthur-debert/fnr/pkg/errors"
	"github.com/arthur-debert/fnr/pkg/logging"
)

// Set is a compiled glob set. A path is retained when it matches at
// least one include pattern (an empty include list matches everything)
// and matches no `!`-prefixed exclude pattern.
type Set struct {
	includes []string
	excludes []string
}

// Compile validates and compiles the given glob expressions. Patterns
// use doublestar syntax (`*`, `**`, `{a,b}`, character classes). A
// malformed pattern fails with ErrInvalidGlob before any walk.
func Compile(exprs []string) (*Set, error) {
	logger := logging.GetLogger("globs")

	s := &Set{}
	for _, expr := range exprs {
		pattern := expr
		negated := strings.HasPrefix(expr, "!")
		if negated {
			pattern = strings.TrimPrefix(expr, "!")
		}

		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Newf(errors.ErrInvalidGlob,
				"invalid glob pattern %q", expr)
		}

		if negated {
			s.excludes = append(s.excludes, pattern)
		} else {
			s.includes = append(s.includes, pattern)
		}
	}

	logger.Debug().
		Int("includes", len(s.includes)).
		Int("excludes", len(s.excludes)).
		Msg("Compiled glob set")

	return s, nil
}

// Match reports whether the slash-separated relative path is retained
// by the set.
func (s *Set) Match(relPath string) bool {
	if len(s.includes) > 0 {
		included := false
		for _, pattern := range s.includes {
			if ok, _ := doublestar.Match(pattern, relPath); ok {
				included = true
				break
			}
		}
		if !included {
			return false
		}
	}

	for _, pattern := range s.excludes {
		if ok, _ := doublestar.Match(pattern, relPath); ok {
			return false
		}
	}

	return true
}
