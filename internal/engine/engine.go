package engine

import (
	"context"
	"os"
	"time"

	"github.com/vibewolf/vibewolf/internal/ignore"
	"github.com/vibewolf/vibewolf/internal/rules"
	"github.com/vibewolf/vibewolf/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Config controls file selection and batch scanning. The zero value applies
// only the built-in file policy and scans sequentially without progress.
type Config struct {
	IncludeGlobs string
	ExcludeGlobs string
	MaxBytes     int64 // 0 means no limit
	Ignore       ignore.Matcher

	Threads  int
	Progress func(current, total int)
	Logger   *zap.SugaredLogger
}

func (c Config) logger() *zap.SugaredLogger {
	if c.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return c.Logger
}

// Result is the outcome of a batch scan. Findings are ordered by path (in
// the order given) and by ascending line within a file.
type Result struct {
	Findings     []types.Finding
	FilesScanned int
	FilesFailed  int
	Duration     time.Duration
}

type fileResult struct {
	findings []types.Finding
	failed   bool
}

func scanOne(p string, rs rules.RuleSet, log *zap.SugaredLogger) fileResult {
	b, err := os.ReadFile(p)
	if err != nil {
		log.Warnw("cannot read file", "path", p, "error", err)
		return fileResult{failed: true}
	}
	return fileResult{findings: ScanText(string(b), p, rs)}
}

// ScanPaths reads and scans each path. A file that cannot be read is logged
// and contributes no findings; the batch continues. Progress, when set, is
// called once per processed file with a strictly increasing current and a
// total fixed at len(paths). With Threads > 1 files are scanned by a
// bounded worker pool, but findings are still assembled in path order.
//
// If ctx is cancelled, no new files are started and the partial result is
// returned together with ctx.Err().
func ScanPaths(ctx context.Context, paths []string, rs rules.RuleSet, cfg Config) (Result, error) {
	start := time.Now()
	log := cfg.logger()
	total := len(paths)
	results := make([]fileResult, total)
	done := make([]bool, total)

	var err error
	if cfg.Threads <= 1 {
		err = scanSequential(ctx, paths, rs, cfg, results, done)
	} else {
		err = scanParallel(ctx, paths, rs, cfg, results, done)
	}

	res := Result{}
	for i := range results {
		if !done[i] {
			continue
		}
		if results[i].failed {
			res.FilesFailed++
			continue
		}
		res.FilesScanned++
		res.Findings = append(res.Findings, results[i].findings...)
	}
	res.Duration = time.Since(start)
	log.Debugw("batch scan finished",
		"files", total, "scanned", res.FilesScanned, "failed", res.FilesFailed,
		"findings", len(res.Findings), "duration", res.Duration)
	return res, err
}

func scanSequential(ctx context.Context, paths []string, rs rules.RuleSet, cfg Config, results []fileResult, done []bool) error {
	log := cfg.logger()
	for i, p := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		results[i] = scanOne(p, rs, log)
		done[i] = true
		if cfg.Progress != nil {
			cfg.Progress(i+1, len(paths))
		}
	}
	return nil
}

func scanParallel(ctx context.Context, paths []string, rs rules.RuleSet, cfg Config, results []fileResult, done []bool) error {
	log := cfg.logger()
	finished := make(chan int, cfg.Threads)

	g := new(errgroup.Group)
	g.SetLimit(cfg.Threads)
	go func() {
		for i, p := range paths {
			if ctx.Err() != nil {
				break
			}
			g.Go(func() error {
				results[i] = scanOne(p, rs, log)
				finished <- i
				return nil
			})
		}
		_ = g.Wait()
		close(finished)
	}()

	// single consumer: progress is emitted from this goroutine only
	count := 0
	for i := range finished {
		done[i] = true
		count++
		if cfg.Progress != nil {
			cfg.Progress(count, len(paths))
		}
	}
	return ctx.Err()
}

// ScanTree collects the files under root and scans them with ScanPaths.
func ScanTree(ctx context.Context, root string, rs rules.RuleSet, cfg Config) (Result, error) {
	paths, err := Collect(ctx, root, cfg)
	if err != nil {
		return Result{}, err
	}
	cfg.logger().Debugw("collected files", "root", root, "count", len(paths))
	return ScanPaths(ctx, paths, rs, cfg)
}
