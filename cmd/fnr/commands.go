package fnr

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/fnr/internal/version"
	"github.com/arthur-debert/fnr/pkg/collector"
	"github.com/arthur-debert/fnr/pkg/config"
	"github.com/arthur-debert/fnr/pkg/errors"
	"github.com/arthur-debert/fnr/pkg/filesystem"
	"github.com/arthur-debert/fnr/pkg/logging"
	"github.com/arthur-debert/fnr/pkg/sequencer"
	"github.com/arthur-debert/fnr/pkg/types"
	"github.com/arthur-debert/fnr/pkg/ui/display"
	"github.com/arthur-debert/fnr/pkg/ui/prompt"
)

// rootFlags holds the flag values for one invocation.
type rootFlags struct {
	baseDir         string
	regex           bool
	fileType        string
	dryRun          bool
	noInteractive   bool
	noRecursive     bool
	caseSensitive   bool
	hidden          bool
	noColor         bool
	noSymlink       bool
	noSkipGitignore bool
	maxDepth        int
	minDepth        int
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity int
		flags     rootFlags
	)

	rootCmd := &cobra.Command{
		Use:     "fnr PATTERN [REPLACEMENT] [GLOB...]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		Args:    cobra.MinimumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args, flags)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)

	rootCmd.Flags().StringVarP(&flags.baseDir, "base-dir", "d", ".", MsgFlagBaseDir)
	rootCmd.Flags().BoolVarP(&flags.regex, "regex", "r", false, MsgFlagRegex)
	rootCmd.Flags().StringVarP(&flags.fileType, "type", "t", "both", MsgFlagType)
	rootCmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.Flags().BoolVar(&flags.noInteractive, "no-interactive", false, MsgFlagNoInteractive)
	rootCmd.Flags().BoolVar(&flags.noRecursive, "no-recursive", false, MsgFlagNoRecursive)
	rootCmd.Flags().BoolVar(&flags.caseSensitive, "case-sensitive", false, MsgFlagCaseSensitive)
	rootCmd.Flags().BoolVar(&flags.hidden, "hidden", false, MsgFlagHidden)
	rootCmd.Flags().BoolVar(&flags.noColor, "no-color", false, MsgFlagNoColor)
	rootCmd.Flags().BoolVar(&flags.noSymlink, "no-symlink", false, MsgFlagNoSymlink)
	rootCmd.Flags().BoolVar(&flags.noSkipGitignore, "no-skip-gitignore", false, MsgFlagNoGitignore)
	rootCmd.Flags().IntVar(&flags.maxDepth, "max-depth", 0, MsgFlagMaxDepth)
	rootCmd.Flags().IntVar(&flags.minDepth, "min-depth", 0, MsgFlagMinDepth)

	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd(rootCmd))

	return rootCmd
}

// run executes one search or rename pass.
func run(args []string, flags rootFlags) error {
	logger := logging.GetLogger("cmd")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pattern := args[0]
	patternCfg := types.PatternConfig{
		Pattern:       pattern,
		Regex:         flags.regex || cfg.Match.Regex,
		CaseSensitive: flags.caseSensitive || cfg.Match.CaseSensitive,
	}
	var globExprs []string
	if len(args) > 1 {
		patternCfg.Replacement = args[1]
		patternCfg.HasReplace = true
		globExprs = args[2:]
	}

	fileType, err := parseFileType(flags.fileType)
	if err != nil {
		return err
	}

	color := display.ShouldColor(flags.noColor || !cfg.UI.Color, os.Stdout)
	renderer := display.NewRenderer(os.Stdout, color)
	warnRenderer := display.NewRenderer(os.Stderr, display.ShouldColor(flags.noColor || !cfg.UI.Color, os.Stderr))

	logger.Info().
		Str("pattern", pattern).
		Bool("rename", patternCfg.HasReplace).
		Str("baseDir", flags.baseDir).
		Msg("Starting run")

	fsys := filesystem.NewOS()
	matches, err := collector.Collect(fsys, collector.Options{
		Walker: types.WalkerConfig{
			BaseDir:        flags.baseDir,
			Recursive:      cfg.Walk.Recursive && !flags.noRecursive,
			MaxDepth:       flags.maxDepth,
			MinDepth:       flags.minDepth,
			IncludeHidden:  flags.hidden || cfg.Walk.Hidden,
			FollowSymlinks: cfg.Walk.Symlinks && !flags.noSymlink,
			HonorGitignore: cfg.Walk.Gitignore && !flags.noSkipGitignore,
		},
		Pattern:  patternCfg,
		Globs:    globExprs,
		FileType: fileType,
		Warn:     warnRenderer.Warning,
	})
	if err != nil {
		return err
	}

	if !patternCfg.HasReplace {
		for _, m := range sequencer.Order(matches) {
			renderer.SearchLine(m)
		}
		return nil
	}

	if len(matches) == 0 {
		renderer.NoMatches()
		return nil
	}

	seq := sequencer.New(fsys)
	opts := sequencer.Options{
		DryRun:    flags.dryRun,
		OnRenamed: renderer.Renamed,
		OnError:   warnRenderer.RenameError,
	}

	if flags.dryRun {
		renderer.DryRunHeader()
		opts.Display = renderer.BeforeAfter
	} else if !flags.noInteractive {
		opts.Interactive = true
		opts.Decisions = prompt.New(os.Stdin, os.Stdout, renderer)
	}

	result, err := seq.Apply(matches, opts)
	if err != nil {
		return err
	}

	if !flags.dryRun {
		renderer.Summary(result.Renamed, result.Skipped, result.Failed)
	}

	return nil
}

// parseFileType maps the --type flag to a types.FileType.
func parseFileType(s string) (types.FileType, error) {
	switch s {
	case "file", "f":
		return types.FileTypeFile, nil
	case "dir", "d":
		return types.FileTypeDir, nil
	case "both", "":
		return types.FileTypeBoth, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput,
			"invalid type %q: must be file, dir, or both", s)
	}
}
