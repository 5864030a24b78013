package globs

import (
	"testing"

	"github.com/arthur-debert/fnr/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_InvalidPattern(t *testing.T) {
	_, err := Compile([]string{"[unclosed"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidGlob))
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name  string
		exprs []string
		path  string
		want  bool
	}{
		{
			name:  "empty set matches everything",
			exprs: nil,
			path:  "src/deep/nested/file.txt",
			want:  true,
		},
		{
			name:  "extension include",
			exprs: []string{"**/*.rs"},
			path:  "src/main.rs",
			want:  true,
		},
		{
			name:  "extension include rejects others",
			exprs: []string{"**/*.rs"},
			path:  "src/main.go",
			want:  false,
		},
		{
			name:  "brace set",
			exprs: []string{"**/*.{h,cpp}"},
			path:  "lib/util.cpp",
			want:  true,
		},
		{
			name:  "negation excludes",
			exprs: []string{"**/*", "!target/**"},
			path:  "target/debug/build.log",
			want:  false,
		},
		{
			name:  "negation keeps non-excluded",
			exprs: []string{"**/*", "!target/**"},
			path:  "src/lib.rs",
			want:  true,
		},
		{
			name:  "negation-only set keeps unmatched paths",
			exprs: []string{"!*.tmp"},
			path:  "notes.txt",
			want:  true,
		},
		{
			name:  "negation-only set drops matched paths",
			exprs: []string{"!*.tmp"},
			path:  "scratch.tmp",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Compile(tt.exprs)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Match(tt.path))
		})
	}
}
