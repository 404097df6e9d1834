// Package cli orchestrates a single langconv invocation: resolving which
// files to touch, running the converter over them, and routing results to
// the writer matching the requested mode.
package cli

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/oxhq/langconv/internal/language"
	"github.com/oxhq/langconv/internal/model"
	"github.com/oxhq/langconv/internal/scanner"
	"github.com/oxhq/langconv/internal/writer"
)

// Output is the outcome of one CLI invocation.
type Output struct {
	// Results holds one entry per converted file. Empty for ModeCommit,
	// which operates on previously staged changes rather than targets.
	Results []model.Result
	// Summary is a human-readable description of what happened; every
	// writer produces one via Writer.Summary(), ModeCommit's included.
	Summary  string
	ExitCode int
	Err      error
}

// Run executes cfg.Mode against targets using lang. For ModeCommit,
// targets is ignored entirely: staged changes recorded under .langconv/
// are applied instead, and no language resolution is required by the
// caller since conversion already happened when the change was staged.
func Run(ctx context.Context, lang *language.Language, cfg *model.Config, targets []string, db *gorm.DB) Output {
	if cfg.Mode == model.ModeCommit {
		return commit()
	}

	files, err := scanTargets(ctx, cfg, targets)
	if err != nil {
		return Output{ExitCode: 1, Err: fmt.Errorf("scanning targets: %w", err)}
	}
	if len(files) == 0 {
		return Output{ExitCode: 1, Err: fmt.Errorf("no files found to convert")}
	}

	runner := NewRunner(lang, cfg, db)
	results, runErr := runner.Run(ctx, files)

	errorCount := 0
	for _, res := range results {
		if !res.Success {
			errorCount++
		}
	}

	out := Output{Results: results, Summary: runner.Summary()}
	switch {
	case runErr != nil:
		out.ExitCode = 1
		out.Err = fmt.Errorf("conversion interrupted: %w", runErr)
	case errorCount > 0:
		out.ExitCode = 2
		out.Err = fmt.Errorf("encountered %d error(s) during conversion", errorCount)
	}
	return out
}

// commit applies every change staged under .langconv/ as a single
// transaction, via writer.CommitWriter.
func commit() Output {
	w := writer.NewCommitWriter()
	if err := w.ApplyStagedChanges(); err != nil {
		return Output{ExitCode: 1, Summary: w.Summary(), Err: fmt.Errorf("applying staged changes: %w", err)}
	}
	return Output{Summary: w.Summary()}
}

// scanTargets resolves cfg/targets into a concrete file list, special-
// casing "-" (stdin), which the scanner never needs to touch disk for.
func scanTargets(ctx context.Context, cfg *model.Config, targets []string) ([]string, error) {
	if len(targets) == 1 && targets[0] == "-" {
		return targets, nil
	}

	roots := targets
	if len(roots) == 0 && cfg.Root != "" {
		roots = []string{cfg.Root}
	}

	s := scanner.New(scanner.Config{
		MaxBytes:       cfg.MaxBytes,
		FollowSymlinks: cfg.FollowSymlinks,
		IncludeGlobs:   cfg.Include,
		ExcludeGlobs:   cfg.Exclude,
		Extensions:     cfg.Extensions,
	})
	return s.ScanTargets(ctx, roots)
}
