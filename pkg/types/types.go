package types

import (
	"io/fs"
)

// Match represents a single filesystem entry selected for reporting or
// renaming. It is a snapshot taken at discovery time: NewName is derived
// once from the original filename and is never recomputed, even if an
// ancestor directory is renamed later in the batch.
type Match struct {
	// Path is the entry's path as discovered (relative to the walk root
	// or absolute, depending on the base dir given).
	Path string

	// NewName is the computed replacement filename (base name only, no
	// path separators). In search mode it equals the original filename.
	NewName string

	// IsDir records the entry kind at discovery time.
	IsDir bool

	// Pattern and Replacement are copies of the active search/replace
	// strings, kept so display code can re-derive highlighted text
	// without re-matching.
	Pattern     string
	Replacement string
}

// FileType restricts which entry kinds are collected.
type FileType string

const (
	FileTypeFile FileType = "file"
	FileTypeDir  FileType = "dir"
	FileTypeBoth FileType = "both"
)

// WalkerConfig controls tree traversal.
type WalkerConfig struct {
	BaseDir        string
	Recursive      bool
	MaxDepth       int // 0 = unlimited
	MinDepth       int // 0 = no minimum
	IncludeHidden  bool
	FollowSymlinks bool
	HonorGitignore bool
}

// PatternConfig controls matching and replacement.
type PatternConfig struct {
	Pattern       string
	Replacement   string
	HasReplace    bool // false = search mode
	Regex         bool
	CaseSensitive bool
}

// Decision is one answer from an interactive confirmation prompt.
type Decision int

const (
	DecisionYes Decision = iota
	DecisionNo
	DecisionAll
	DecisionQuit
)

// DecisionSource supplies one Decision per prompted match. The sequencer
// treats Confirm as a blocking synchronous call; implementations may read
// a keystroke, or script answers in tests.
type DecisionSource interface {
	Confirm(m Match) (Decision, error)
}

// DisplayFunc receives each resolved match for rendering. Coloring and
// layout are the caller's concern, not the core's.
type DisplayFunc func(m Match)

// WarnFunc receives non-fatal traversal warnings.
type WarnFunc func(path string, err error)

// FS is the filesystem surface the core mutates through. Tests substitute
// a memory-backed implementation.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	ReadFile(name string) ([]byte, error)
	Rename(oldpath, newpath string) error
}
