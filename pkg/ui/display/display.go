// Package display renders matches, rename results, and warnings for the
// terminal. It re-derives highlighted fragments from the pattern and
// replacement carried on each match, so nothing here re-runs matching.
package display

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/arthur-debert/fnr/pkg/matcher"
	"github.com/arthur-debert/fnr/pkg/types"
	"github.com/arthur-debert/fnr/pkg/ui/styles"
)

// Renderer writes human-readable output for one run.
type Renderer struct {
	out   io.Writer
	color bool
}

// NewRenderer creates a Renderer. When color is false all styling is
// suppressed.
func NewRenderer(out io.Writer, color bool) *Renderer {
	return &Renderer{out: out, color: color}
}

// ShouldColor decides whether output gets styled: an explicit no-color
// flag, the NO_COLOR convention, or a non-terminal stdout all disable it.
func ShouldColor(noColorFlag bool, f *os.File) bool {
	if noColorFlag {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (r *Renderer) render(style string, text string) string {
	if !r.color {
		return text
	}
	return styles.GetStyle(style).Render(text)
}

// SearchLine prints one search-mode result: "[f] path" or "[d] path".
func (r *Renderer) SearchLine(m types.Match) {
	marker := "f"
	style := "FileMarker"
	if m.IsDir {
		marker = "d"
		style = "DirMarker"
	}
	fmt.Fprintf(r.out, "[%s] %s\n", r.render(style, marker), r.render("Path", m.Path))
}

// DryRunHeader prints the banner above dry-run output.
func (r *Renderer) DryRunHeader() {
	fmt.Fprintln(r.out, r.render("Header", "Dry run - showing what would be renamed:"))
}

// BeforeAfter prints the two-line before/after pair for one match, with
// the matched fragment and its replacement highlighted.
func (r *Renderer) BeforeAfter(m types.Match) {
	oldName := filepath.Base(m.Path)
	parent := parentPrefix(m.Path)

	fmt.Fprintf(r.out, "    %s%s\n", r.render("Path", parent), r.highlightPattern(oldName, m.Pattern))
	fmt.Fprintf(r.out, " -> %s%s\n", r.render("Path", parent), r.highlightReplacement(oldName, m))
}

// Renamed prints the confirmation line for an applied rename.
func (r *Renderer) Renamed(m types.Match, dest string) {
	fmt.Fprintf(r.out, "%s %s %s %s\n",
		r.render("Renamed", "Renamed:"),
		r.render("Path", m.Path),
		r.render("Header", "->"),
		r.render("Replacement", dest))
}

// RenameError prints a per-entry rename failure. The batch continues.
func (r *Renderer) RenameError(m types.Match, err error) {
	fmt.Fprintf(r.out, "%s %v\n", r.render("Error", "Error:"), err)
}

// Warning prints a non-fatal traversal warning.
func (r *Renderer) Warning(path string, err error) {
	fmt.Fprintf(r.out, "%s %s: %v\n", r.render("Warning", "Warning:"), path, err)
}

// NoMatches prints the empty-batch notice. Not an error.
func (r *Renderer) NoMatches() {
	fmt.Fprintln(r.out, "No matches found.")
}

// Summary prints the closing tally for an applied batch.
func (r *Renderer) Summary(renamed, skipped, failed int) {
	fmt.Fprintf(r.out, "%d renamed, %d skipped, %d failed\n", renamed, skipped, failed)
}

// highlightPattern styles the first case-insensitive occurrence of the
// pattern within text. Offsets come from matcher.FoldIndex so that case
// mappings which change byte length cannot slice mid-rune.
func (r *Renderer) highlightPattern(text, pattern string) string {
	start, end := matcher.FoldIndex(text, pattern)
	if start < 0 || !r.color {
		return r.render("Path", text)
	}

	return r.render("Path", text[:start]) +
		r.render("MatchFragment", text[start:end]) +
		r.render("Path", text[end:])
}

// highlightReplacement styles the spliced-in replacement within the
// computed new name, keeping the untouched surroundings plain.
func (r *Renderer) highlightReplacement(oldName string, m types.Match) string {
	start, end := matcher.FoldIndex(oldName, m.Pattern)
	if start < 0 || !r.color {
		return r.render("Path", m.NewName)
	}

	return r.render("Path", oldName[:start]) +
		r.render("Replacement", m.Replacement) +
		r.render("Path", oldName[end:])
}

// parentPrefix renders the directory part of a path with a trailing
// separator, or nothing for bare names.
func parentPrefix(path string) string {
	parent := filepath.Dir(path)
	if parent == "." {
		return ""
	}
	return parent + string(filepath.Separator)
}
