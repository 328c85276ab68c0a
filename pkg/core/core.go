package core

import (
	"context"
	"errors"
	"os"
	"sync/atomic"

	"github.com/vibewolf/vibewolf/internal/engine"
	"github.com/vibewolf/vibewolf/internal/ignore"
	"github.com/vibewolf/vibewolf/internal/report"
	"github.com/vibewolf/vibewolf/internal/rules"
	"github.com/vibewolf/vibewolf/internal/types"
	"go.uber.org/zap"
)

// Re-export selected internal types as a stable public API surface.
type (
	Finding    = types.Finding
	Severity   = types.Severity
	ScanConfig = types.ScanConfig
	Rule       = rules.Rule
	RuleSet    = rules.RuleSet
	Format     = report.Format
)

const (
	SevLow      = types.SevLow
	SevMedium   = types.SevMedium
	SevHigh     = types.SevHigh
	SevCritical = types.SevCritical

	FormatPlain    = report.FormatPlain
	FormatMarkdown = report.FormatMarkdown
	FormatHTML     = report.FormatHTML
)

// ErrDisposed is returned by every Scanner operation after Dispose.
var ErrDisposed = errors.New("scanner disposed")

const (
	stateActive int32 = iota
	stateDisposed
)

// CollectOptions narrow directory scans beyond the built-in file policy.
type CollectOptions struct {
	Include  string // comma-separated globs
	Exclude  string // comma-separated globs
	MaxBytes int64  // 0 means no limit
	// IgnorePatterns are .vibewolfignore-style patterns.
	IgnorePatterns []string
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the logger used for unreadable files and scan summaries.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Scanner) {
		if l != nil {
			s.log = l
		}
	}
}

// WithThreads sets the worker count for directory scans. Values below 2
// scan sequentially.
func WithThreads(n int) Option {
	return func(s *Scanner) { s.threads = n }
}

// WithCollectOptions applies include/exclude globs, ignore patterns and a
// size cap to directory scans.
func WithCollectOptions(o CollectOptions) Option {
	return func(s *Scanner) { s.collect = o }
}

// Scanner scans text, files and directory trees against one rule catalog.
// It is safe for concurrent use.
type Scanner struct {
	state   atomic.Int32
	rules   rules.RuleSet
	log     *zap.SugaredLogger
	threads int
	collect CollectOptions
}

// New builds a Scanner over the built-in catalog. It fails if any built-in
// rule is malformed.
func New(opts ...Option) (*Scanner, error) {
	rs, err := rules.Load()
	if err != nil {
		return nil, err
	}
	return NewWithRules(rs, opts...), nil
}

// NewWithRules builds a Scanner over rs, typically a small set from
// rules.Build in tests.
func NewWithRules(rs RuleSet, opts ...Option) *Scanner {
	s := &Scanner{rules: rs, log: zap.NewNop().Sugar()}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Scanner) active() error {
	if s.state.Load() == stateDisposed {
		return ErrDisposed
	}
	return nil
}

func (s *Scanner) engineConfig(progress func(int, int)) engine.Config {
	return engine.Config{
		IncludeGlobs: s.collect.Include,
		ExcludeGlobs: s.collect.Exclude,
		MaxBytes:     s.collect.MaxBytes,
		Ignore:       ignore.New(s.collect.IgnorePatterns...),
		Threads:      s.threads,
		Progress:     progress,
		Logger:       s.log,
	}
}

// ScanText scans in-memory content reported under path. A nil cfg applies
// every rule.
func (s *Scanner) ScanText(content, path string, cfg *ScanConfig) ([]Finding, error) {
	if err := s.active(); err != nil {
		return nil, err
	}
	return engine.ScanText(content, path, rules.Filter(s.rules, cfg)), nil
}

// ScanFile reads path and scans it. An unreadable file is logged and
// yields no findings rather than an error.
func (s *Scanner) ScanFile(path string, cfg *ScanConfig) ([]Finding, error) {
	if err := s.active(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		s.log.Warnw("cannot read file", "path", path, "error", err)
		return nil, nil
	}
	return engine.ScanText(string(b), path, rules.Filter(s.rules, cfg)), nil
}

// ScanDirectory collects eligible files under path and scans them.
func (s *Scanner) ScanDirectory(ctx context.Context, path string, cfg *ScanConfig) ([]Finding, error) {
	return s.ScanTree(ctx, path, nil, cfg)
}

// ScanTree is ScanDirectory with a progress callback, called once per file
// with a strictly increasing current and a fixed total.
func (s *Scanner) ScanTree(ctx context.Context, path string, progress func(current, total int), cfg *ScanConfig) ([]Finding, error) {
	if err := s.active(); err != nil {
		return nil, err
	}
	res, err := engine.ScanTree(ctx, path, rules.Filter(s.rules, cfg), s.engineConfig(progress))
	return res.Findings, err
}

// Render formats findings as plain text, Markdown or HTML (or any other
// report format).
func (s *Scanner) Render(findings []Finding, format Format) (string, error) {
	if err := s.active(); err != nil {
		return "", err
	}
	return report.RenderString(findings, format, report.Options{NoColor: true})
}

// Rules returns the catalog in iteration order.
func (s *Scanner) Rules() ([]Rule, error) {
	if err := s.active(); err != nil {
		return nil, err
	}
	return s.rules.Rules(), nil
}

// Dispose moves the Scanner to the disposed state. It is safe to call more
// than once.
func (s *Scanner) Dispose() {
	if s.state.CompareAndSwap(stateActive, stateDisposed) {
		s.log.Debug("scanner disposed")
	}
}

// Disposed reports whether Dispose has been called.
func (s *Scanner) Disposed() bool { return s.state.Load() == stateDisposed }
