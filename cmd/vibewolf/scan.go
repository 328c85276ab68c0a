package vibewolf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vibewolf/vibewolf/internal/audit"
	"github.com/vibewolf/vibewolf/internal/cache"
	"github.com/vibewolf/vibewolf/internal/config"
	"github.com/vibewolf/vibewolf/internal/engine"
	"github.com/vibewolf/vibewolf/internal/git"
	"github.com/vibewolf/vibewolf/internal/ignore"
	"github.com/vibewolf/vibewolf/internal/report"
	"github.com/vibewolf/vibewolf/internal/rules"
	"github.com/vibewolf/vibewolf/internal/types"
	"github.com/vibewolf/vibewolf/internal/update"
)

var (
	flagPath         string
	flagFormat       string
	flagOutput       string
	flagMinSeverity  string
	flagEnable       string
	flagDisable      string
	flagInclude      string
	flagExclude      string
	flagMaxBytes     int64
	flagThreads      int
	flagChanged      bool
	flagFailOn       string
	flagBaseline     string
	flagNoBaseline   bool
	flagNoProgress   bool
	flagHighlight    bool
	flagUploadURL    string
	flagUploadToken  string
	flagNoUploadMeta bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a project for security issues",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "path to scan")
	cmd.Flags().StringVarP(&flagFormat, "format", "f", "", "output format: plain|table|markdown|html|json|sarif")
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write the report to this file (or directory) instead of stdout")
	cmd.Flags().StringVar(&flagMinSeverity, "min-severity", "", "lowest rule severity to run: LOW|MEDIUM|HIGH|CRITICAL")
	cmd.Flags().StringVar(&flagEnable, "enable", "", "only run these rules (comma-separated IDs)")
	cmd.Flags().StringVar(&flagDisable, "disable", "", "disable these rules (comma-separated IDs)")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 0, "skip files larger than this (0 = no limit)")
	cmd.Flags().IntVar(&flagThreads, "threads", 0, "parallel file workers (0 or 1 = sequential)")
	cmd.Flags().BoolVar(&flagChanged, "changed", false, "only scan files modified or untracked in git")
	cmd.Flags().StringVar(&flagFailOn, "fail-on", "", "exit 1 on findings at or above low|medium|high|critical, or none")
	cmd.Flags().StringVar(&flagBaseline, "baseline", report.BaselineFileName, "baseline file, relative to the scanned path")
	cmd.Flags().BoolVar(&flagNoBaseline, "no-baseline", false, "report every finding, ignoring the baseline")
	cmd.Flags().BoolVar(&flagNoProgress, "no-progress", false, "hide the progress counter")
	cmd.Flags().BoolVar(&flagHighlight, "highlight", false, "syntax-highlight code snippets")
	cmd.Flags().StringVar(&flagUploadURL, "upload", "", "POST the JSON report to this URL after the scan")
	cmd.Flags().StringVar(&flagUploadToken, "upload-token", "", "Bearer token for upload auth")
	cmd.Flags().BoolVar(&flagNoUploadMeta, "no-upload-metadata", false, "do not include repo/commit/branch in the upload envelope")
}

// scanSettings is one run's view of flags layered over local and global
// config files.
type scanSettings struct {
	root    string
	format  report.Format
	output  string
	failOn  string
	noColor bool
	scan    *types.ScanConfig
	engine  engine.Config
}

func loadConfigs(root string) (local, global config.FileConfig, err error) {
	if c, err := config.LoadGlobal(); err == nil {
		global = c
	} else if !errors.Is(err, config.ErrNotFound) {
		return local, global, err
	}
	if c, err := config.LoadLocal(root); err == nil {
		local = c
	} else if !errors.Is(err, config.ErrNotFound) {
		return local, global, err
	}
	return local, global, nil
}

func resolveScan(args []string, catalog rules.RuleSet) (scanSettings, error) {
	path := flagPath
	if len(args) == 1 {
		path = args[0]
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return scanSettings{}, err
	}
	lcfg, gcfg, err := loadConfigs(abs)
	if err != nil {
		return scanSettings{}, err
	}

	s := scanSettings{
		root:   abs,
		output: pickString(flagOutput, lcfg.Output, gcfg.Output),
		failOn: pickString(flagFailOn, lcfg.FailOn, gcfg.FailOn),
	}
	name := pickString(flagFormat, lcfg.Format, gcfg.Format)
	if name == "" && s.output != "" {
		name = formatFromPath(s.output)
	}
	if s.format, err = report.ParseFormat(name); err != nil {
		return scanSettings{}, err
	}
	if s.output != "" {
		if st, err := os.Stat(s.output); err == nil && st.IsDir() {
			s.output = filepath.Join(s.output, defaultReportName(s.format))
		}
	}
	s.noColor = pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor) || s.output != ""

	floor := pickString(flagMinSeverity, lcfg.MinSeverity, gcfg.MinSeverity)
	s.scan = config.FileConfig{
		Rules:       config.MergeRules(lcfg.Rules, gcfg.Rules),
		MinSeverity: &floor,
	}.ScanConfig()
	if err := applyRuleFlags(s.scan, catalog, flagEnable, flagDisable); err != nil {
		return scanSettings{}, err
	}

	ign, err := ignore.Load(filepath.Join(abs, ignore.FileName))
	if err != nil {
		return scanSettings{}, fmt.Errorf("read %s: %w", ignore.FileName, err)
	}
	s.engine = engine.Config{
		IncludeGlobs: pickString(flagInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs: pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		MaxBytes:     pickInt64(flagMaxBytes, lcfg.MaxBytes, gcfg.MaxBytes),
		Ignore:       ign,
		Threads:      pickInt(flagThreads, lcfg.Threads, gcfg.Threads),
		Logger:       log,
	}
	return s, nil
}

// applyRuleFlags layers --enable and --disable over the config's rule map.
// --enable switches every other rule off; --disable always wins.
func applyRuleFlags(sc *types.ScanConfig, catalog rules.RuleSet, enable, disable string) error {
	en, dis := splitIDs(enable), splitIDs(disable)
	if len(en) == 0 && len(dis) == 0 {
		return nil
	}
	for _, id := range append(append([]string(nil), en...), dis...) {
		if _, ok := catalog.Get(id); !ok {
			return fmt.Errorf("unknown rule %q (run 'vibewolf rules' for the list)", id)
		}
	}
	m := make(map[string]bool, catalog.Len())
	for id, on := range sc.EnabledRules {
		m[id] = on
	}
	if len(en) > 0 {
		keep := make(map[string]bool, len(en))
		for _, id := range en {
			keep[id] = true
		}
		for _, id := range catalog.IDs() {
			m[id] = keep[id]
		}
	}
	for _, id := range dis {
		m[id] = false
	}
	sc.EnabledRules = m
	return nil
}

func formatFromPath(p string) string {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".md", ".markdown":
		return string(report.FormatMarkdown)
	case ".html", ".htm":
		return string(report.FormatHTML)
	case ".json":
		return string(report.FormatJSON)
	case ".sarif":
		return string(report.FormatSARIF)
	}
	return ""
}

func defaultReportName(f report.Format) string {
	switch f {
	case report.FormatMarkdown:
		return report.MarkdownFileName
	case report.FormatHTML:
		return report.HTMLFileName
	case report.FormatJSON:
		return "vibewolf-report.json"
	case report.FormatSARIF:
		return "vibewolf.sarif"
	}
	return "vibewolf-report.txt"
}

func runScan(cmd *cobra.Command, args []string) error {
	catalog, err := rules.Load()
	if err != nil {
		return err
	}
	s, err := resolveScan(args, catalog)
	if err != nil {
		return err
	}
	active := rules.Filter(catalog, s.scan)
	stderr := cmd.ErrOrStderr()
	human := s.output == "" && (s.format == report.FormatPlain || s.format == report.FormatTable)

	if human {
		if !flagNoUpdateCheck {
			if latest, newer, _ := update.Check(cmd.Context(), version, false); newer {
				_, _ = fmt.Fprintf(stderr, "(new version available: v%s)  run 'vibewolf update' to upgrade\n", latest)
			}
		}
		_, _ = fmt.Fprintf(stderr, "Scanning %s with %d rules...\n", s.root, active.Len())
	}

	showProgress := false
	if f, ok := stderr.(*os.File); ok && isTTY(f) && !flagNoProgress {
		showProgress = true
		s.engine.Progress = func(cur, total int) {
			if cur%10 == 0 || cur == total {
				_, _ = fmt.Fprintf(stderr, "\r[%d/%d] %.0f%%", cur, total, float64(cur)/float64(total)*100)
			}
		}
	}

	var res engine.Result
	if flagChanged {
		rels, err := git.ChangedFiles(s.root)
		if err != nil {
			return fmt.Errorf("changed files: %w", err)
		}
		log.Debugw("changed files", "count", len(rels))
		res, err = engine.ScanPaths(cmd.Context(), engine.Select(s.root, rels, s.engine), active, s.engine)
		if err != nil {
			return fmt.Errorf("scan: %w", err)
		}
	} else {
		res, err = engine.ScanTree(cmd.Context(), s.root, active, s.engine)
		if err != nil {
			return fmt.Errorf("scan: %w", err)
		}
	}
	if showProgress && res.FilesScanned > 0 {
		_, _ = fmt.Fprintln(stderr)
	}

	baselineFile := ""
	fresh := res.Findings
	if !flagNoBaseline && flagBaseline != "" {
		baselineFile = flagBaseline
		if !filepath.IsAbs(baselineFile) {
			baselineFile = filepath.Join(s.root, baselineFile)
		}
		base, err := report.LoadBaseline(baselineFile)
		if err != nil {
			return err
		}
		if len(base.Items) > 0 {
			fresh = report.FilterNewFindings(res.Findings, base, s.root)
		} else {
			baselineFile = ""
		}
	}

	md := git.RepoMetadata(s.root)
	opts := report.Options{
		ProjectName: md.Repo,
		NoColor:     s.noColor,
		Highlight:   flagHighlight,
		Root:        s.root,
		Version:     version,
	}
	if err := writeReport(cmd.OutOrStdout(), stderr, fresh, s, opts); err != nil {
		return err
	}

	// upload failures never fail the scan
	if flagUploadURL != "" {
		if err := uploadReport(cmd.Context(), flagUploadURL, flagUploadToken, fresh, opts, md, flagNoUploadMeta); err != nil {
			_, _ = fmt.Fprintln(stderr, "upload warning:", err)
		}
	}

	if err := cache.SaveResults(s.root, cache.ScanResults{Findings: fresh, FilesScanned: res.FilesScanned, MinSeverity: s.scan.Floor()}); err != nil {
		log.Debugw("save last scan", "error", err)
	}
	rec := audit.NewRecord(s.root, res.Findings, fresh, res.FilesScanned, res.FilesFailed, res.Duration, baselineFile)
	if err := audit.New(s.root).Append(rec); err != nil {
		log.Debugw("append audit record", "error", err)
	}

	if cmd.Flags().Changed("enable") || cmd.Flags().Changed("disable") {
		_, _ = fmt.Fprintf(stderr, "rules active: %s\n", strings.Join(active.IDs(), ","))
	}

	if !strings.EqualFold(s.failOn, "none") && report.ShouldFail(fresh, s.failOn) {
		return errFindings
	}
	return nil
}

// writeReport renders to stdout, or to s.output with a one-line summary on
// stderr.
func writeReport(stdout, stderr io.Writer, findings []types.Finding, s scanSettings, opts report.Options) error {
	if s.output == "" {
		return report.Render(stdout, findings, s.format, opts)
	}
	f, err := os.Create(s.output)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := report.Render(f, findings, s.format, opts); err != nil {
		_ = f.Close()
		return fmt.Errorf("write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	sum := report.Summarize(findings)
	_, _ = fmt.Fprintf(stderr, "Report written to %s (%d findings: critical %d, high %d, medium %d, low %d)\n",
		s.output, sum.Total, sum.Critical, sum.High, sum.Medium, sum.Low)
	return nil
}
