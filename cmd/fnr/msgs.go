package fnr

// User-facing messages for the fnr command line.
const (
	MsgRootShort = "Fast file and directory name search and rename tool"

	MsgRootLong = `fnr searches for files and directories whose names match a pattern and,
when a replacement is given, renames them safely. Matching supports
literal substrings, single-wildcard globs, and full regular expressions.
Renames are ordered so that directory renames never invalidate entries
still waiting to be renamed beneath them.`

	MsgFlagVerbose       = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagBaseDir       = "Base directory to search from"
	MsgFlagRegex         = "Enable regular expression matching"
	MsgFlagType          = "Filter by entry type: file, dir, or both"
	MsgFlagDryRun        = "Show what would be renamed without executing"
	MsgFlagNoInteractive = "Apply all changes without prompts"
	MsgFlagNoRecursive   = "Don't search subdirectories"
	MsgFlagCaseSensitive = "Case-sensitive matching"
	MsgFlagHidden        = "Include hidden files and directories"
	MsgFlagNoColor       = "Disable colored output"
	MsgFlagNoSymlink     = "Don't follow symbolic links"
	MsgFlagNoGitignore   = "Don't skip .gitignore'd entries"
	MsgFlagMaxDepth      = "Maximum depth to search (0 = unlimited)"
	MsgFlagMinDepth      = "Minimum depth to report (0 = no minimum)"
)
