package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/oxhq/langconv/internal/model"
	"github.com/oxhq/langconv/internal/util"
)

// PrintResultCLI renders a single conversion result to stdout/stderr
// according to cfg. JSON mode takes priority over every other form;
// otherwise a failed result always prints to stderr, and a successful one
// follows --diff/--verbose: a diff when --diff is set and the file changed,
// else a one-line summary under --verbose, else nothing.
func PrintResultCLI(res *model.Result, cfg *model.Config) {
	if cfg.JSONOutput {
		data, err := json.Marshal(res)
		if err != nil {
			fmt.Fprintf(os.Stderr, "marshaling result for %s: %v\n", res.File, err)
			return
		}
		fmt.Println(string(data))
		return
	}

	if !res.Success {
		fmt.Fprintf(os.Stderr, "✗ %s: %s\n", res.File, res.Error)
		return
	}

	if cfg.Mode == model.ModeStdout {
		return // already written to stdout by the runner
	}

	unchanged := res.ChangedBytes == 0 && res.OriginalSHA1 == res.ModifiedSHA1
	if cfg.ShowDiff && !unchanged {
		fmt.Print(util.UnifiedDiff(res.OriginalContent, res.ModifiedContent, res.File, cfg.DiffContext, cfg.ColorDiff))
		return
	}

	if cfg.Verbose {
		if unchanged {
			fmt.Printf("✓ %s — no changes\n", res.File)
		} else {
			fmt.Printf("✓ %s — %+d bytes\n", res.File, res.ChangedBytes)
		}
	}
}

// PrintFatal reports a fatal, run-level error (as opposed to a per-file
// one), formatted as JSON when jsonOut is set.
func PrintFatal(err error, jsonOut bool) {
	if jsonOut {
		data, _ := json.Marshal(struct {
			Error string `json:"error"`
		}{Error: err.Error()})
		fmt.Println(string(data))
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

// PrintSummary prints the writer summary produced by the run (e.g. "Staged
// 3 change(s)" or a dry-run preview), preceded by a changed-file count.
// JSON and stdout modes suppress it: JSON output is meant to be piped, and
// stdout mode has already emitted the converted text itself.
func PrintSummary(results []model.Result, cfg *model.Config, writerSummary string) {
	if cfg.JSONOutput || cfg.Mode == model.ModeStdout {
		return
	}

	changed := 0
	for _, res := range results {
		if res.Success && (res.ChangedBytes != 0 || res.OriginalSHA1 != res.ModifiedSHA1) {
			changed++
		}
	}
	fmt.Fprintf(os.Stderr, "\n%d of %d file(s) changed.\n", changed, len(results))

	if writerSummary != "" {
		fmt.Fprintf(os.Stderr, "%s\n", writerSummary)
	}
}

// PrintUsage writes the CLI's flag usage to stderr.
func PrintUsage(fs *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, "\nUsage: langconv convert [flags] <file1> <file2> ...\n")
	fmt.Fprintf(os.Stderr, "       langconv stage <dir>\n")
	fmt.Fprintf(os.Stderr, "       langconv commit\n")
	fmt.Fprintf(os.Stderr, "       langconv languages\n")
	fmt.Fprintf(os.Stderr, "\nFlags:\n")
	fs.PrintDefaults()
}
