package config

import (
	"flag"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/oxhq/langconv/internal/model"
)

// BuildConfigFromFlags parses a langconv convert/stage invocation's flags
// into a model.Config plus the list of targets to operate on. env supplies
// defaults for anything not given on the command line.
func BuildConfigFromFlags(args []string, env Env) (*model.Config, []string, error) {
	fs := pflag.NewFlagSet("langconv", pflag.ContinueOnError)
	fs.Usage = func() { PrintUsage(fs) }

	help := fs.BoolP("help", "h", false, "Show this help message and exit.")
	lang := fs.StringP("lang", "l", env.DefaultLanguage, "Target language variant (e.g. zh-cn, zh-tw, zh-hk).")
	sequentialGlobal := fs.Bool(
		"sequential-global",
		false,
		"Install/remove global rules sequentially as directives are reached, instead of in a pre-scan.",
	)
	fs.Bool(
		"avoid-html-code",
		false,
		"Accepted for compatibility; conversion never skips <pre>/<code>/<script> spans.",
	)
	fs.Bool("stdin", false, "Read a single document from stdin instead of scanning files.")
	fs.Bool("stage", false, "Record changes under .langconv/ instead of writing files.")
	fs.Bool("commit", false, "Apply every change staged under .langconv/.")
	fs.Bool("interactive", false, "Prompt per file with a diff before writing.")
	fs.Bool("write", false, "Write converted files in place immediately, no staging.")
	showDiff := fs.BoolP("diff", "D", false, "Show a unified diff of the changes.")
	colorDiff := fs.Bool("color-diff", false, "Colorize diff output with ANSI escapes.")
	diffContext := fs.IntP("diff-context", "C", 3, "Lines of context for the diff.")
	verbose := fs.BoolP("verbose", "v", false, "Enable verbose output.")
	jsonOutput := fs.BoolP("json", "j", false, "Output results as JSON.")
	workers := fs.IntP("workers", "w", 0, "Number of concurrent workers, 0 means use all available CPUs.")

	root := fs.String("root", "", "Root directory for scanning (default: current directory, or positional args).")
	include := fs.StringSlice("include", nil, "Include file glob patterns.")
	exclude := fs.StringSlice("exclude", nil, "Exclude file glob patterns.")
	maxBytes := fs.Int64("max-bytes", 5*1024*1024, "Maximum file size to scan, in bytes.")
	followSymlinks := fs.Bool("follow-symlinks", false, "Follow symbolic links given as targets; links inside scanned directories are skipped.")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if *help {
		fs.Usage()
		return nil, nil, flag.ErrHelp
	}

	mode, err := resolveMode(fs)
	if err != nil {
		return nil, nil, err
	}

	targets, err := resolveTargets(fs, fs.Args())
	if err != nil {
		return nil, nil, fmt.Errorf("resolving targets: %w", err)
	}

	cfg := &model.Config{
		Language:         *lang,
		Mode:             mode,
		Workers:          *workers,
		ShowDiff:         *showDiff,
		ColorDiff:        *colorDiff,
		DiffContext:      *diffContext,
		Verbose:          *verbose,
		JSONOutput:       *jsonOutput,
		SequentialGlobal: *sequentialGlobal,
		Root:             *root,
		Include:          *include,
		Exclude:          *exclude,
		MaxBytes:         *maxBytes,
		FollowSymlinks:   *followSymlinks,
		DSN:              env.DSN,
	}

	return cfg, targets, nil
}
