package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"gorm.io/gorm"

	"github.com/oxhq/langconv/internal/langconv"
	"github.com/oxhq/langconv/internal/language"
	"github.com/oxhq/langconv/internal/model"
	"github.com/oxhq/langconv/internal/util"
	"github.com/oxhq/langconv/internal/writer"
	"github.com/oxhq/langconv/models"
)

// Runner converts a batch of files (or stdin) against one target language,
// fanning the work out across cfg.Workers goroutines and routing each
// result to the writer appropriate for cfg.Mode.
type Runner struct {
	Lang *language.Language
	Cfg  *model.Config
	// DB is an optional conversion-run audit log connection. A nil DB
	// disables auditing entirely; Runner never requires one.
	DB *gorm.DB

	w writer.Writer // set by Run; exposed read-only via Summary
}

// NewRunner builds a Runner targeting lang under cfg, optionally logging
// every conversion to db.
func NewRunner(lang *language.Language, cfg *model.Config, db *gorm.DB) *Runner {
	return &Runner{Lang: lang, Cfg: cfg, DB: db}
}

// Run converts every path in paths, returning one model.Result per file.
// Files are processed concurrently; ctx cancellation stops dispatch of new
// work but lets in-flight conversions finish.
func (r *Runner) Run(ctx context.Context, paths []string) ([]model.Result, error) {
	w := r.selectWriter()
	r.w = w
	conv := langconv.New(r.Lang)

	numWorkers := r.Cfg.Workers
	if numWorkers < 1 {
		numWorkers = runtime.NumCPU()
	}

	jobs := make(chan string)
	var mu sync.Mutex
	var results []model.Result
	var wg sync.WaitGroup

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				res := r.convertOne(conv, w, path)
				mu.Lock()
				results = append(results, res)
				mu.Unlock()
			}
		}()
	}

	var dispatchErr error
dispatch:
	for _, p := range paths {
		select {
		case <-ctx.Done():
			dispatchErr = ctx.Err()
			break dispatch
		case jobs <- p:
		}
	}
	close(jobs)
	wg.Wait()

	return results, dispatchErr
}

// Summary returns the most recent Run's writer summary, e.g. the list of
// files staged, or the dry-run preview. Empty before the first Run call.
func (r *Runner) Summary() string {
	if r.w == nil {
		return ""
	}
	return r.w.Summary()
}

// selectWriter picks the writer.Writer matching r.Cfg.Mode. ModeStdout
// never calls WriteFile (convertOne prints instead), so its writer choice
// is never exercised.
func (r *Runner) selectWriter() writer.Writer {
	switch r.Cfg.Mode {
	case model.ModeStage:
		return writer.NewStagingWriter(r.Lang.Code)
	case model.ModeInteractive:
		return writer.NewInteractiveWriter()
	case model.ModeDirect:
		return writer.NewDiskWriter()
	default:
		return writer.NewDryRunWriter()
	}
}

// convertOne reads path (or stdin, for path "-"), converts its content for
// r.Lang, and routes the result to stdout or w depending on r.Cfg.Mode.
func (r *Runner) convertOne(conv *langconv.Converter, w writer.Writer, path string) model.Result {
	data, err := r.readSource(path)
	if err != nil {
		return model.Result{
			File:      path,
			Language:  r.Lang.Code,
			ErrorCode: model.ECReadError,
			Error:     err.Error(),
		}
	}

	original := string(data)
	modified := conv.Convert(original, langconv.Options{
		SequentialGlobal: r.Cfg.SequentialGlobal,
		AvoidHTMLCode:    false,
	})

	res := model.Result{
		File:            path,
		Language:        r.Lang.Code,
		Success:         true,
		ChangedBytes:    len(modified) - len(original),
		OriginalSHA1:    util.SHA1Hex(data),
		ModifiedSHA1:    util.SHA1Hex([]byte(modified)),
		OriginalContent: original,
		ModifiedContent: modified,
	}

	switch {
	case r.Cfg.Mode == model.ModeStdout || path == "-":
		fmt.Print(modified)
	case original != modified || r.Cfg.Mode == model.ModeInteractive:
		if err := w.WriteFile(path, []byte(modified), 0o644); err != nil {
			res.Success = false
			res.ErrorCode = model.ECWriteError
			res.Error = err.Error()
		}
	}

	r.auditLog(res)
	return res
}

func (r *Runner) readSource(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// auditLog persists one ConversionRun row per conversion when r.DB is
// configured. Audit failures never fail the conversion itself.
func (r *Runner) auditLog(res model.Result) {
	if r.DB == nil {
		return
	}
	run := &models.ConversionRun{
		ID:               util.SHA1Hex([]byte(res.File + res.OriginalSHA1 + res.ModifiedSHA1))[:20],
		Language:         res.Language,
		Mode:             string(r.Cfg.Mode),
		SequentialGlobal: r.Cfg.SequentialGlobal,
		Path:             res.File,
		Original:         res.OriginalContent,
		Modified:         res.ModifiedContent,
		BaseDigest:       res.OriginalSHA1,
		AfterDigest:      res.ModifiedSHA1,
		Status:           "converted",
	}
	_ = r.DB.Create(run).Error
}
