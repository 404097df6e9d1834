package config

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/oxhq/langconv/internal/model"
)

// resolveMode derives the run's model.Mode from the mutually exclusive
// --stage/--commit/--interactive/--write flags. With none of them set,
// converted text goes straight to stdout and nothing on disk is touched.
func resolveMode(fs *pflag.FlagSet) (model.Mode, error) {
	set := map[model.Mode]bool{
		model.ModeStage:       fs.Changed("stage"),
		model.ModeCommit:      fs.Changed("commit"),
		model.ModeInteractive: fs.Changed("interactive"),
	}
	direct, _ := fs.GetBool("write")

	var chosen model.Mode
	count := 0
	for mode, on := range set {
		if on {
			chosen = mode
			count++
		}
	}
	if direct {
		chosen = model.ModeDirect
		count++
	}

	switch count {
	case 0:
		return model.ModeStdout, nil
	case 1:
		return chosen, nil
	default:
		return "", fmt.Errorf("only one of --stage, --commit, --interactive, --write may be set")
	}
}

// resolveTargets resolves the command-line arguments into a list of file or
// directory targets. --stdin takes priority and yields the single
// pseudo-target "-"; otherwise positional args are used verbatim, falling
// back to --root, falling back to the current working directory.
func resolveTargets(fs *pflag.FlagSet, args []string) ([]string, error) {
	if stdin, _ := fs.GetBool("stdin"); stdin {
		return []string{"-"}, nil
	}

	if len(args) > 0 {
		return args, nil
	}

	root, err := fs.GetString("root")
	if err != nil {
		return nil, err
	}
	if root != "" {
		return []string{root}, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolving current directory: %w", err)
	}
	return []string{cwd}, nil
}
