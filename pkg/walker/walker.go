// Package walker traverses a directory tree and streams candidate
// entries, honoring depth bounds, hidden-entry and symlink policies,
// and .gitignore rules.
package walker

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/arthur-debert/fnr/pkg/errors"
	"github.com/arthur-debert/fnr/pkg/logging"
	"github.com/arthur-debert/fnr/pkg/types"
)

// Entry is one filesystem entry yielded by a walk.
type Entry struct {
	Path    string // base dir joined with the relative path
	RelPath string // slash-separated path relative to the base dir
	Name    string // base name
	IsDir   bool
	Depth   int // 1 for entries directly under the base dir
}

// Walker traverses a tree rooted at a base directory. The root itself
// is never yielded.
type Walker struct {
	fs     types.FS
	cfg    types.WalkerConfig
	logger zerolog.Logger
}

// New creates a Walker over the given filesystem and configuration.
func New(fsys types.FS, cfg types.WalkerConfig) *Walker {
	return &Walker{
		fs:     fsys,
		cfg:    cfg,
		logger: logging.GetLogger("walker"),
	}
}

// ignoreFrame is one directory's compiled .gitignore, applied to paths
// relative to that directory.
type ignoreFrame struct {
	matcher *ignore.GitIgnore
	relDir  string // slash-separated dir the rules are anchored at, "" = root
}

// Walk streams entries depth-first in discovery order. Per-entry errors
// are surfaced through warn and the walk continues; only a failure to
// read the base directory itself is fatal.
func (w *Walker) Walk(yield func(Entry), warn types.WarnFunc) error {
	maxDepth := w.cfg.MaxDepth
	if !w.cfg.Recursive {
		maxDepth = 1
	}

	w.logger.Debug().
		Str("baseDir", w.cfg.BaseDir).
		Int("maxDepth", maxDepth).
		Int("minDepth", w.cfg.MinDepth).
		Bool("hidden", w.cfg.IncludeHidden).
		Bool("followSymlinks", w.cfg.FollowSymlinks).
		Bool("honorGitignore", w.cfg.HonorGitignore).
		Msg("Starting walk")

	if _, err := w.fs.Stat(w.cfg.BaseDir); err != nil {
		return errors.Wrapf(err, errors.ErrWalk,
			"cannot read base directory %s", w.cfg.BaseDir)
	}

	var frames []ignoreFrame
	if w.cfg.HonorGitignore {
		if frame, ok := w.loadIgnore(w.cfg.BaseDir, ""); ok {
			frames = append(frames, frame)
		}
	}

	return w.walkDir(w.cfg.BaseDir, "", 1, maxDepth, frames, nil, yield, warn)
}

func (w *Walker) walkDir(dir, relDir string, depth, maxDepth int, frames []ignoreFrame, ancestors []fs.FileInfo, yield func(Entry), warn types.WarnFunc) error {
	entries, err := w.fs.ReadDir(dir)
	if err != nil {
		// Root read errors are caught by Walk; below the root the
		// directory is skipped with a warning.
		if relDir == "" {
			return errors.Wrapf(err, errors.ErrWalk, "cannot read base directory %s", dir)
		}
		warn(dir, err)
		return nil
	}

	for _, de := range entries {
		name := de.Name()
		if !w.cfg.IncludeHidden && strings.HasPrefix(name, ".") {
			continue
		}

		rel := name
		if relDir != "" {
			rel = relDir + "/" + name
		}

		isDir := de.IsDir()
		isSymlink := de.Type()&fs.ModeSymlink != 0
		full := filepath.Join(dir, name)

		// A followed symlink counts as a directory when its target is one.
		var info fs.FileInfo
		if isSymlink && w.cfg.FollowSymlinks {
			info, err = w.fs.Stat(full)
			if err != nil {
				warn(full, err)
				continue
			}
			isDir = info.IsDir()
		}

		if w.ignored(frames, rel, isDir) {
			continue
		}

		if depth >= w.cfg.MinDepth {
			yield(Entry{
				Path:    full,
				RelPath: rel,
				Name:    name,
				IsDir:   isDir,
				Depth:   depth,
			})
		}

		if !isDir || (maxDepth > 0 && depth >= maxDepth) {
			continue
		}
		if isSymlink {
			if !w.cfg.FollowSymlinks {
				continue
			}
			if w.isLoop(info, ancestors) {
				warn(full, errors.Newf(errors.ErrWalk, "symlink cycle at %s", full))
				continue
			}
		}

		childFrames := frames
		if w.cfg.HonorGitignore {
			if frame, ok := w.loadIgnore(full, rel); ok {
				childFrames = append(childFrames[:len(childFrames):len(childFrames)], frame)
			}
		}

		childAncestors := ancestors
		if isSymlink {
			childAncestors = append(ancestors[:len(ancestors):len(ancestors)], info)
		}

		if err := w.walkDir(full, rel, depth+1, maxDepth, childFrames, childAncestors, yield, warn); err != nil {
			return err
		}
	}

	return nil
}

// loadIgnore reads and compiles a directory's .gitignore, if present.
func (w *Walker) loadIgnore(dir, relDir string) (ignoreFrame, bool) {
	data, err := w.fs.ReadFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return ignoreFrame{}, false
	}

	matcher := ignore.CompileIgnoreLines(strings.Split(string(data), "\n")...)
	w.logger.Debug().Str("dir", dir).Msg("Loaded .gitignore")
	return ignoreFrame{matcher: matcher, relDir: relDir}, true
}

// ignored tests rel against every .gitignore on the current directory
// chain. Each file only sees paths relative to its own directory.
func (w *Walker) ignored(frames []ignoreFrame, rel string, isDir bool) bool {
	for _, frame := range frames {
		sub := rel
		if frame.relDir != "" {
			sub = strings.TrimPrefix(rel, frame.relDir+"/")
		}
		if frame.matcher.MatchesPath(sub) {
			return true
		}
		// Directory-only rules like "build/" need the trailing slash.
		if isDir && frame.matcher.MatchesPath(sub+"/") {
			return true
		}
	}
	return false
}

// isLoop reports whether a followed symlink target is already on the
// ancestor chain.
func (w *Walker) isLoop(info fs.FileInfo, ancestors []fs.FileInfo) bool {
	for _, a := range ancestors {
		if os.SameFile(a, info) {
			return true
		}
	}
	return false
}
