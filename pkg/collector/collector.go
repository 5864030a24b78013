// Package collector composes the walker, glob filter, and matcher into
// one pass that produces the batch of matches for a run.
package collector

import (
	"github.com/arthur-debert/fnr/pkg/globs"
	"github.com/arthur-debert/fnr/pkg/logging"
	"github.com/arthur-debert/fnr/pkg/matcher"
	"github.com/arthur-debert/fnr/pkg/types"
	"github.com/arthur-debert/fnr/pkg/walker"
)

// Options bundles the configuration for one collection pass.
type Options struct {
	Walker   types.WalkerConfig
	Pattern  types.PatternConfig
	Globs    []string       // empty = match everything
	FileType types.FileType // zero value treated as FileTypeBoth
	Warn     types.WarnFunc // optional; receives non-fatal walk warnings
}

// Collect walks the tree and returns every entry whose base filename
// matches the pattern. The returned order is walk order and carries no
// guarantee; ordering for safe application is the sequencer's job.
//
// Pattern and glob compilation errors fail fast, before any filesystem
// access.
func Collect(fsys types.FS, opts Options) ([]types.Match, error) {
	logger := logging.GetLogger("collector")

	m, err := matcher.New(opts.Pattern)
	if err != nil {
		return nil, err
	}

	set, err := globs.Compile(opts.Globs)
	if err != nil {
		return nil, err
	}

	fileType := opts.FileType
	if fileType == "" {
		fileType = types.FileTypeBoth
	}

	warn := opts.Warn
	if warn == nil {
		warn = func(path string, err error) {
			logger.Warn().Err(err).Str("path", path).Msg("Skipping entry")
		}
	}

	var matches []types.Match
	w := walker.New(fsys, opts.Walker)
	err = w.Walk(func(e walker.Entry) {
		if !set.Match(e.RelPath) {
			return
		}

		switch fileType {
		case types.FileTypeFile:
			if e.IsDir {
				return
			}
		case types.FileTypeDir:
			if !e.IsDir {
				return
			}
		}

		newName, ok := m.Match(e.Name)
		if !ok {
			return
		}

		matches = append(matches, types.Match{
			Path:        e.Path,
			NewName:     newName,
			IsDir:       e.IsDir,
			Pattern:     opts.Pattern.Pattern,
			Replacement: opts.Pattern.Replacement,
		})
	}, warn)
	if err != nil {
		return nil, err
	}

	logger.Debug().Int("matches", len(matches)).Msg("Collection complete")
	return matches, nil
}
