// Command langconv converts text between language variants, interpreting
// inline "-{ ... }-" markup directives along the way.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/oxhq/langconv/db"
	"github.com/oxhq/langconv/internal/cli"
	"github.com/oxhq/langconv/internal/config"
	"github.com/oxhq/langconv/internal/language"
	"github.com/oxhq/langconv/internal/model"
	"github.com/oxhq/langconv/internal/registry"
)

func main() {
	if err := registry.Bootstrap(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	env := config.LoadEnv()

	root := &cobra.Command{
		Use:           "langconv",
		Short:         "Convert text between language variants using inline -{ ... }- markup",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	convertCmd := &cobra.Command{
		Use:                "convert [flags] <file...>",
		Short:              "Convert one or more files, or --stdin, to a target language variant",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(args, env)
		},
	}

	stageCmd := &cobra.Command{
		Use:                "stage [flags] <file...>",
		Short:              "Convert and record pending changes under .langconv/, touching no real files",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(append([]string{"--stage"}, args...), env)
		},
	}

	commitCmd := &cobra.Command{
		Use:   "commit",
		Short: "Apply every change staged under .langconv/",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert([]string{"--commit"}, env)
		},
	}

	languagesCmd := &cobra.Command{
		Use:   "languages",
		Short: "List registered language variants, their fallbacks and aliases",
		RunE: func(cmd *cobra.Command, args []string) error {
			printLanguages()
			return nil
		},
	}

	root.AddCommand(convertCmd, stageCmd, commitCmd, languagesCmd)

	if err := root.Execute(); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		var ec exitCode
		if errors.As(err, &ec) {
			os.Exit(int(ec))
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runConvert parses args into a model.Config, resolves its target language
// (skipped for ModeCommit, which needs none), runs the conversion, and
// prints results and a summary per cfg's output mode.
func runConvert(args []string, env config.Env) error {
	cfg, targets, err := config.BuildConfigFromFlags(args, env)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	conn := connectAudit(cfg)
	defer closeAudit(conn)

	var lang *language.Language
	if cfg.Mode != model.ModeCommit {
		l, err := registry.GetLanguage(cfg.Language)
		if err != nil {
			wrapped := fmt.Errorf("%w: %q", model.ErrUnknownLanguage, cfg.Language)
			config.PrintFatal(wrapped, cfg.JSONOutput)
			return exitCode(2)
		}
		lang = l
	}

	out := cli.Run(context.Background(), lang, cfg, targets, conn)
	return finish(out, cfg)
}

// finish prints every per-file result plus the run summary, and translates
// an Output's ExitCode into the process's final exit status.
func finish(out cli.Output, cfg *model.Config) error {
	for i := range out.Results {
		config.PrintResultCLI(&out.Results[i], cfg)
	}
	config.PrintSummary(out.Results, cfg, out.Summary)

	if out.Err != nil {
		config.PrintFatal(out.Err, cfg.JSONOutput)
		return exitCode(out.ExitCode)
	}
	if cfg.Mode == model.ModeCommit && out.Summary != "" {
		fmt.Fprint(os.Stderr, out.Summary)
	}
	return nil
}

// exitCode wraps a process exit status as an error so it threads through
// cobra's RunE without main needing a second return channel. Its Error
// text is never shown: PrintFatal/PrintResultCLI already wrote the
// user-facing message by the time it's returned.
type exitCode int

func (e exitCode) Error() string { return fmt.Sprintf("exit code %d", int(e)) }

// connectAudit opens the conversion-run audit log database when cfg.DSN is
// set. A connection failure is non-fatal: auditing is best-effort, so the
// conversion proceeds with a nil *gorm.DB, which Runner treats as
// "no auditing".
func connectAudit(cfg *model.Config) *gorm.DB {
	if cfg.DSN == "" {
		return nil
	}
	conn, err := db.Connect(cfg.DSN, cfg.Verbose)
	if err != nil {
		if cfg.Verbose {
			fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
		}
		return nil
	}
	return conn
}

func closeAudit(conn *gorm.DB) {
	if conn == nil {
		return
	}
	if sqlDB, err := conn.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func printLanguages() {
	codes := registry.ListLanguages()
	sort.Strings(codes)
	for _, code := range codes {
		info, err := registry.DefaultRegistry.GetLanguageInfo(code)
		if err != nil {
			continue
		}
		sort.Strings(info.Aliases)
		fmt.Printf("%s\tfallbacks=%v\taliases=%v\n", info.Code, info.Fallbacks, info.Aliases)
	}
}
