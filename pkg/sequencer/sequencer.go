// Package sequencer orders a batch of matches so that applying renames
// in that order never invalidates a still-pending path, then applies
// them.
//
// The ordering rule: files are renamed before directories, and
// directories deepest-first. Renaming a file never moves another entry,
// and by the time an ancestor directory is renamed everything at or
// below it has already been handled under its pre-rename path. A
// descendant's depth is always strictly greater than its ancestor's, so
// depth-descending order guarantees descendants go first.
package sequencer

import (
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/fnr/pkg/errors"
	"github.com/arthur-debert/fnr/pkg/logging"
	"github.com/arthur-debert/fnr/pkg/types"
)

// Options controls how a batch is applied.
type Options struct {
	// DryRun renders every ordered match without touching the
	// filesystem.
	DryRun bool

	// Interactive prompts Decisions for each match until an All answer
	// switches the run to apply-remaining mode.
	Interactive bool

	// Decisions supplies one answer per prompted match. Required when
	// Interactive is set.
	Decisions types.DecisionSource

	// Display receives each match before it is acted on (or, in
	// dry-run, instead of acting). Optional.
	Display types.DisplayFunc

	// OnRenamed is called after a successful rename with the
	// destination path. Optional.
	OnRenamed func(m types.Match, dest string)

	// OnError is called when a single rename fails. The batch
	// continues. Optional.
	OnError func(m types.Match, err error)
}

// Result summarizes one batch application.
type Result struct {
	Renamed int
	Skipped int
	Failed  int
	Quit    bool
}

// confirmState tracks the interactive loop's answer mode. An explicit
// value rather than ambient state: an All answer flips it for the rest
// of the batch.
type confirmState int

const (
	statePrompting confirmState = iota
	stateApplyRemaining
)

// Sequencer applies ordered batches through a types.FS.
type Sequencer struct {
	fs     types.FS
	logger zerolog.Logger
}

// New creates a Sequencer over the given filesystem.
func New(fsys types.FS) *Sequencer {
	return &Sequencer{
		fs:     fsys,
		logger: logging.GetLogger("sequencer"),
	}
}

// Order returns a sorted copy of matches: files before directories,
// files by ascending depth (stable for determinism), directories by
// descending depth. The input batch is treated as an immutable
// snapshot.
func Order(matches []types.Match) []types.Match {
	ordered := make([]types.Match, len(matches))
	copy(ordered, matches)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.IsDir != b.IsDir {
			return !a.IsDir
		}
		ad, bd := pathDepth(a.Path), pathDepth(b.Path)
		if a.IsDir {
			return ad > bd // deepest directories first
		}
		return ad < bd // shallowest files first
	})

	return ordered
}

// Validate rejects matches whose application would be unsafe: a
// NewName containing a path separator would escape the entry's
// directory, a non-UTF-8 NewName is not a valid filename, and two
// matches resolving to the same destination would clobber each other.
// All are detected before any rename is attempted.
func Validate(matches []types.Match) error {
	destinations := make(map[string]string, len(matches))

	for _, m := range matches {
		if m.NewName == "" || m.NewName == "." || m.NewName == ".." ||
			strings.ContainsAny(m.NewName, `/\`) ||
			!utf8.ValidString(m.NewName) {
			return errors.Newf(errors.ErrUnsafeName,
				"replacement produces unsafe name %q for %s", m.NewName, m.Path).
				WithDetail("path", m.Path).
				WithDetail("newName", m.NewName)
		}

		dest := destination(m)
		if prev, ok := destinations[dest]; ok && prev != m.Path {
			return errors.Newf(errors.ErrDestConflict,
				"both %s and %s would be renamed to %s", prev, m.Path, dest).
				WithDetail("destination", dest)
		}
		destinations[dest] = m.Path
	}

	return nil
}

// Apply validates, orders, and applies (or simulates) the batch.
// Validation failures abort before any mutation; individual rename
// failures are reported through OnError and the batch continues.
func (s *Sequencer) Apply(matches []types.Match, opts Options) (*Result, error) {
	if err := Validate(matches); err != nil {
		return nil, err
	}

	ordered := Order(matches)
	result := &Result{}

	s.logger.Debug().
		Int("matches", len(ordered)).
		Bool("dryRun", opts.DryRun).
		Bool("interactive", opts.Interactive).
		Msg("Applying batch")

	if opts.DryRun {
		for _, m := range ordered {
			if opts.Display != nil {
				opts.Display(m)
			}
		}
		return result, nil
	}

	state := statePrompting
	for _, m := range ordered {
		if opts.Interactive && state == statePrompting {
			decision, err := opts.Decisions.Confirm(m)
			if err != nil {
				return result, errors.Wrap(err, errors.ErrInternal,
					"failed to read confirmation")
			}
			switch decision {
			case types.DecisionNo:
				result.Skipped++
				continue
			case types.DecisionQuit:
				result.Quit = true
				s.logger.Debug().Msg("Batch aborted by user")
				return result, nil
			case types.DecisionAll:
				state = stateApplyRemaining
			case types.DecisionYes:
			}
		}

		if opts.Display != nil {
			opts.Display(m)
		}
		s.rename(m, opts, result)
	}

	return result, nil
}

// rename applies a single match. Failure is terminal for the entry,
// never for the batch.
func (s *Sequencer) rename(m types.Match, opts Options, result *Result) {
	dest := destination(m)

	if err := s.fs.Rename(m.Path, dest); err != nil {
		result.Failed++
		wrapped := errors.Wrapf(err, errors.ErrRenameFailed,
			"failed to rename %s to %s", m.Path, dest).
			WithDetail("source", m.Path).
			WithDetail("destination", dest)
		s.logger.Warn().Err(err).
			Str("source", m.Path).
			Str("destination", dest).
			Msg("Rename failed")
		if opts.OnError != nil {
			opts.OnError(m, wrapped)
		}
		return
	}

	result.Renamed++
	s.logger.Debug().
		Str("source", m.Path).
		Str("destination", dest).
		Msg("Renamed")
	if opts.OnRenamed != nil {
		opts.OnRenamed(m, dest)
	}
}

// destination joins a match's parent directory with its new name.
func destination(m types.Match) string {
	return filepath.Join(filepath.Dir(m.Path), m.NewName)
}

// pathDepth counts path components of a cleaned path.
func pathDepth(p string) int {
	clean := filepath.ToSlash(filepath.Clean(p))
	clean = strings.TrimPrefix(clean, "/")
	if clean == "" {
		return 0
	}
	return strings.Count(clean, "/") + 1
}
