package matcher

import (
	"testing"
	"unicode/utf8"

	"github.com/arthur-debert/fnr/pkg/errors"
	"github.com/arthur-debert/fnr/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidRegex(t *testing.T) {
	_, err := New(types.PatternConfig{
		Pattern: "(unbalanced",
		Regex:   true,
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidPattern))
}

func TestMatch_Literal(t *testing.T) {
	tests := []struct {
		name     string
		cfg      types.PatternConfig
		filename string
		want     string
		wantOK   bool
	}{
		{
			name:     "substring match with replacement",
			cfg:      types.PatternConfig{Pattern: "foo", Replacement: "qux", HasReplace: true},
			filename: "foobar.txt",
			want:     "quxbar.txt",
			wantOK:   true,
		},
		{
			name:     "no match",
			cfg:      types.PatternConfig{Pattern: "zzz", Replacement: "qux", HasReplace: true},
			filename: "foobar.txt",
			wantOK:   false,
		},
		{
			name:     "first occurrence only",
			cfg:      types.PatternConfig{Pattern: "a", Replacement: "b", HasReplace: true},
			filename: "aXa",
			want:     "bXa",
			wantOK:   true,
		},
		{
			name:     "single wildcard prefix suffix",
			cfg:      types.PatternConfig{Pattern: "foo*.txt"},
			filename: "foobar.txt",
			want:     "foobar.txt",
			wantOK:   true,
		},
		{
			name:     "single wildcard rejects mismatch",
			cfg:      types.PatternConfig{Pattern: "foo*.log"},
			filename: "foobar.txt",
			wantOK:   false,
		},
		{
			name:     "multiple wildcards degrade to stripped substring",
			cfg:      types.PatternConfig{Pattern: "*oo*"},
			filename: "foobar.txt",
			want:     "foobar.txt",
			wantOK:   true,
		},
		{
			name:     "case insensitive by default",
			cfg:      types.PatternConfig{Pattern: "FOO"},
			filename: "myfoo.txt",
			want:     "myfoo.txt",
			wantOK:   true,
		},
		{
			name:     "case sensitive rejects",
			cfg:      types.PatternConfig{Pattern: "FOO", CaseSensitive: true},
			filename: "myfoo.txt",
			wantOK:   false,
		},
		{
			name:     "search mode returns original name",
			cfg:      types.PatternConfig{Pattern: "bar"},
			filename: "foobar.txt",
			want:     "foobar.txt",
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.cfg)
			require.NoError(t, err)

			got, ok := m.Match(tt.filename)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestMatch_CaseInsensitiveReplacePreservesCasing(t *testing.T) {
	m, err := New(types.PatternConfig{
		Pattern:     "foo",
		Replacement: "X",
		HasReplace:  true,
	})
	require.NoError(t, err)

	got, ok := m.Match("MyFooBar.txt")
	require.True(t, ok)
	assert.Equal(t, "MyXBar.txt", got)
}

func TestMatch_Regex(t *testing.T) {
	tests := []struct {
		name     string
		cfg      types.PatternConfig
		filename string
		want     string
		wantOK   bool
	}{
		{
			name:     "replaces all occurrences",
			cfg:      types.PatternConfig{Pattern: "a+", Replacement: "b", HasReplace: true, Regex: true},
			filename: "aaXaa",
			want:     "bXb",
			wantOK:   true,
		},
		{
			name:     "capture group substitution",
			cfg:      types.PatternConfig{Pattern: `(\w+)\.bak`, Replacement: "$1", HasReplace: true, Regex: true},
			filename: "notes.bak",
			want:     "notes",
			wantOK:   true,
		},
		{
			name:     "case insensitive by default",
			cfg:      types.PatternConfig{Pattern: "FOO", Replacement: "qux", HasReplace: true, Regex: true},
			filename: "foobar.txt",
			want:     "quxbar.txt",
			wantOK:   true,
		},
		{
			name:     "case sensitive flag honored",
			cfg:      types.PatternConfig{Pattern: "FOO", Regex: true, CaseSensitive: true},
			filename: "foobar.txt",
			wantOK:   false,
		},
		{
			name:     "search mode keeps name",
			cfg:      types.PatternConfig{Pattern: `\.txt$`, Regex: true},
			filename: "foobar.txt",
			want:     "foobar.txt",
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.cfg)
			require.NoError(t, err)

			got, ok := m.Match(tt.filename)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestMatch_CaseFoldChangesByteLength(t *testing.T) {
	// Lowercasing U+0130 changes the encoded byte length, so the match
	// offset must be resolved against the original bytes; splicing at
	// the lowered-text offset corrupts the name mid-rune.
	m, err := New(types.PatternConfig{Pattern: "x", Replacement: "y", HasReplace: true})
	require.NoError(t, err)

	got, ok := m.Match("İİİx")
	require.True(t, ok)
	assert.Equal(t, "İİİy", got)
	assert.True(t, utf8.ValidString(got))
}

func TestMatch_FoldedPatternCoversMultibyteRune(t *testing.T) {
	m, err := New(types.PatternConfig{Pattern: "i", Replacement: "I", HasReplace: true})
	require.NoError(t, err)

	got, ok := m.Match("İstanbul")
	require.True(t, ok)
	assert.Equal(t, "Istanbul", got)
}

func TestFoldIndex(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		pattern   string
		wantStart int
		wantEnd   int
	}{
		{name: "ascii", text: "foobar", pattern: "BAR", wantStart: 3, wantEnd: 6},
		{name: "absent", text: "foobar", pattern: "zzz", wantStart: -1, wantEnd: -1},
		{name: "empty pattern", text: "foobar", pattern: "", wantStart: -1, wantEnd: -1},
		{name: "fold shrinks prefix", text: "İİİx", pattern: "x", wantStart: 6, wantEnd: 7},
		{name: "match spans multibyte rune", text: "İstanbul", pattern: "ist", wantStart: 0, wantEnd: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := FoldIndex(tt.text, tt.pattern)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
			if start >= 0 {
				assert.True(t, utf8.ValidString(tt.text[:start]))
				assert.True(t, utf8.ValidString(tt.text[start:end]))
				assert.True(t, utf8.ValidString(tt.text[end:]))
			}
		})
	}
}

func TestMatch_LiteralRoundTrip(t *testing.T) {
	forward, err := New(types.PatternConfig{Pattern: "alpha", Replacement: "omega", HasReplace: true})
	require.NoError(t, err)
	backward, err := New(types.PatternConfig{Pattern: "omega", Replacement: "alpha", HasReplace: true})
	require.NoError(t, err)

	renamed, ok := forward.Match("alpha-report.txt")
	require.True(t, ok)
	restored, ok := backward.Match(renamed)
	require.True(t, ok)
	assert.Equal(t, "alpha-report.txt", restored)
}
