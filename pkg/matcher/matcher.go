// Package matcher decides whether a filename matches the active pattern
// and computes its replacement text.
//
// Two modes exist. Regex mode compiles the pattern (case-insensitive
// unless requested otherwise) and replaces every occurrence with
// capture-aware substitution. Literal mode supports a single `*`
// wildcard as prefix/suffix containment and replaces only the first
// occurrence. The all-vs-first asymmetry between the two modes is a
// documented behavioral contract; do not "fix" it.
package matcher

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/arthur-debert/fnr/pkg/errors"
	"github.com/arthur-debert/fnr/pkg/logging"
	"github.com/arthur-debert/fnr/pkg/types"
	"github.com/rs/zerolog"
)

// Matcher tests filenames against a compiled pattern configuration.
type Matcher struct {
	cfg    types.PatternConfig
	regex  *regexp.Regexp // nil in literal mode
	logger zerolog.Logger
}

// New compiles a Matcher from the given configuration. An invalid regex
// pattern fails with ErrInvalidPattern before any filesystem access.
func New(cfg types.PatternConfig) (*Matcher, error) {
	m := &Matcher{
		cfg:    cfg,
		logger: logging.GetLogger("matcher"),
	}

	if cfg.Regex {
		pattern := cfg.Pattern
		if !cfg.CaseSensitive {
			pattern = "(?i)" + pattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidPattern,
				"invalid regex pattern %q", cfg.Pattern)
		}
		m.regex = re
	}

	m.logger.Debug().
		Str("pattern", cfg.Pattern).
		Bool("regex", cfg.Regex).
		Bool("caseSensitive", cfg.CaseSensitive).
		Bool("rename", cfg.HasReplace).
		Msg("Compiled matcher")

	return m, nil
}

// Match tests filename against the pattern and returns the replacement
// filename. In search mode (no replacement configured) the original
// filename is returned on a match.
func (m *Matcher) Match(filename string) (string, bool) {
	if m.regex != nil {
		if !m.regex.MatchString(filename) {
			return "", false
		}
		if !m.cfg.HasReplace {
			return filename, true
		}
		return m.regex.ReplaceAllString(filename, m.cfg.Replacement), true
	}

	var matched bool
	if m.cfg.CaseSensitive {
		matched = simpleMatch(filename, m.cfg.Pattern)
	} else {
		matched = simpleMatch(strings.ToLower(filename), strings.ToLower(m.cfg.Pattern))
	}
	if !matched {
		return "", false
	}

	if !m.cfg.HasReplace {
		return filename, true
	}
	return simpleReplace(filename, m.cfg.Pattern, m.cfg.Replacement, m.cfg.CaseSensitive), true
}

// Matches reports whether filename matches the pattern, without
// computing a replacement. Used in search mode.
func (m *Matcher) Matches(filename string) bool {
	_, ok := m.Match(filename)
	return ok
}

// simpleMatch implements literal/glob-lite matching: a pattern with
// exactly one `*` splits into prefix/suffix containment; zero or
// multiple stars degrade to substring containment with stars stripped.
func simpleMatch(text, pattern string) bool {
	if strings.Contains(pattern, "*") {
		parts := strings.Split(pattern, "*")
		if len(parts) == 2 {
			return strings.HasPrefix(text, parts[0]) && strings.HasSuffix(text, parts[1])
		}
		return strings.Contains(text, strings.ReplaceAll(pattern, "*", ""))
	}
	return strings.Contains(text, pattern)
}

// simpleReplace splices the replacement over the first occurrence of
// pattern in text. The case-insensitive path preserves the surrounding
// casing.
func simpleReplace(text, pattern, replacement string, caseSensitive bool) string {
	if caseSensitive {
		return strings.Replace(text, pattern, replacement, 1)
	}

	start, end := FoldIndex(text, pattern)
	if start < 0 {
		return text
	}
	return text[:start] + replacement + text[end:]
}

// FoldIndex locates the first case-insensitive occurrence of pattern in
// text and returns its byte bounds within the original string, or
// (-1, -1) when absent. Lowercasing can change a rune's encoded length
// (U+0130 is the classic case), so an index into the lowered text must
// never be used to slice the original; the match is mapped back through
// a per-rune offset table instead. End always lands on a rune boundary.
func FoldIndex(text, pattern string) (int, int) {
	lowerPat := strings.ToLower(pattern)
	if lowerPat == "" {
		return -1, -1
	}

	lowered := make([]byte, 0, len(text))
	offsets := make([]int, 0, len(text)+1)
	for i, r := range text {
		var buf [utf8.UTFMax]byte
		n := utf8.EncodeRune(buf[:], unicode.ToLower(r))
		lowered = append(lowered, buf[:n]...)
		for range buf[:n] {
			offsets = append(offsets, i)
		}
	}
	offsets = append(offsets, len(text))

	pos := strings.Index(string(lowered), lowerPat)
	if pos < 0 {
		return -1, -1
	}

	start := offsets[pos]
	// The match may end mid-way through a rune whose lowered form is
	// longer than the pattern's tail; extend to the full source rune.
	last := offsets[pos+len(lowerPat)-1]
	end := len(text)
	for j := pos + len(lowerPat); j < len(offsets); j++ {
		if offsets[j] != last {
			end = offsets[j]
			break
		}
	}
	return start, end
}
