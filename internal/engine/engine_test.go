package engine

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vibewolf/vibewolf/internal/ignore"
	"github.com/vibewolf/vibewolf/internal/rules"
)

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func relAll(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		r, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(r))
	}
	return out
}

func TestScanTree_SkipsNodeModules(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "node_modules/app.js", "eval(userInput)\n")
	src := writeFile(t, root, "src/app.js", "eval(userInput)\n")

	res, err := ScanTree(context.Background(), root, rules.MustLoad(), Config{})
	require.NoError(t, err)
	require.Len(t, res.Findings, 1)
	assert.Equal(t, src, res.Findings[0].FilePath)
	assert.Equal(t, "unsafe_eval", res.Findings[0].RuleID)
	assert.Equal(t, 1, res.FilesScanned)
}

func TestCollect_ExclusionPolicy(t *testing.T) {
	root := t.TempDir()
	keep := []string{
		"a.svelte",
		"b.jsx",
		"comp.vue",
		"index.html",
		"src/app.ts",
		"src/view.tsx",
	}
	skip := []string{
		"dist/bundle.js",
		"nested/build/x.js",
		".next/page.js",
		"coverage/lcov.js",
		"out/main.js",
		"temp/x.js",
		"images/y.js",
		"src/rules/detect.js",
		"src/test-utils.js",
		"scripts/create-thing.js",
		"create-icon.js",
		"!VIBEWOLF-SECURITY-REPORT.html",
		"docs/old-security-report.html",
		"src/types.d.ts",
		"package.json",
		"tsconfig.json",
		"readme.md",
		"style.css",
	}
	for _, p := range append(append([]string{}, keep...), skip...) {
		writeFile(t, root, p, "eval(x)\n")
	}

	got, err := Collect(context.Background(), root, Config{})
	require.NoError(t, err)
	assert.ElementsMatch(t, keep, relAll(t, root, got))

	again, err := Collect(context.Background(), root, Config{})
	require.NoError(t, err)
	assert.Equal(t, got, again, "traversal order is deterministic")
}

func TestEligible(t *testing.T) {
	assert.True(t, Eligible("src/app.js"))
	assert.True(t, Eligible("page.svelte"))
	assert.False(t, Eligible("node_modules/pkg/index.js"))
	assert.False(t, Eligible("a/dist/index.js"))
	assert.False(t, Eligible("src/rules/x.ts"))
	assert.False(t, Eligible("src/app.py"))
	assert.False(t, Eligible("types/global.d.ts"))
}

func TestCollect_RootNamedLikeExcludedDir(t *testing.T) {
	root := filepath.Join(t.TempDir(), "build")
	writeFile(t, root, "app.js", "x\n")
	got, err := Collect(context.Background(), root, Config{})
	require.NoError(t, err)
	assert.Equal(t, []string{"app.js"}, relAll(t, root, got))
}

func TestCollect_MissingRoot(t *testing.T) {
	_, err := Collect(context.Background(), filepath.Join(t.TempDir(), "nope"), Config{})
	assert.Error(t, err)
}

func TestCollect_GlobsIgnoreAndSize(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/a.js", "x\n")
	writeFile(t, root, "src/page.html", "x\n")
	writeFile(t, root, "legacy/old.js", "x\n")
	writeFile(t, root, "src/big.js", strings.Repeat("a", 2048))

	cfg := Config{
		IncludeGlobs: "src/**,legacy/**",
		ExcludeGlobs: "**/*.html",
		Ignore:       ignore.New("legacy/"),
		MaxBytes:     1024,
	}
	got, err := Collect(context.Background(), root, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"src/a.js"}, relAll(t, root, got))
}

func TestScanPaths_UnreadableFileContinues(t *testing.T) {
	root := t.TempDir()
	a := writeFile(t, root, "a.js", "eval(a)\n")
	missing := filepath.Join(root, "gone.js")
	c := writeFile(t, root, "c.js", "eval(c)\n")

	var calls [][2]int
	cfg := Config{Progress: func(cur, total int) { calls = append(calls, [2]int{cur, total}) }}
	res, err := ScanPaths(context.Background(), []string{a, missing, c}, rules.MustLoad(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, res.FilesScanned)
	assert.Equal(t, 1, res.FilesFailed)
	require.Len(t, res.Findings, 2)
	assert.Equal(t, a, res.Findings[0].FilePath)
	assert.Equal(t, c, res.Findings[1].FilePath)
	assert.Equal(t, [][2]int{{1, 3}, {2, 3}, {3, 3}}, calls)
}

func TestScanTree_ProgressMonotonicParallel(t *testing.T) {
	root := t.TempDir()
	const n = 25
	for i := 0; i < n; i++ {
		writeFile(t, root, filepath.Join("src", string(rune('a'+i))+".js"), "eval(x)\nfetch('http://example.com')\n")
	}

	var currents []int
	totals := map[int]bool{}
	cfg := Config{Threads: 4, Progress: func(cur, total int) {
		currents = append(currents, cur)
		totals[total] = true
	}}
	res, err := ScanTree(context.Background(), root, rules.MustLoad(), cfg)
	require.NoError(t, err)
	require.Len(t, currents, n)
	for i, c := range currents {
		assert.Equal(t, i+1, c)
	}
	assert.Equal(t, map[int]bool{n: true}, totals)
	assert.Len(t, res.Findings, 2*n)
}

func TestScanPaths_ParallelMatchesSequential(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.js", "b.ts", "c.html", "d.vue", "e.jsx"} {
		writeFile(t, root, name, "x\neval(y)\nlocalStorage.setItem('token', t)\n")
	}
	paths, err := Collect(context.Background(), root, Config{})
	require.NoError(t, err)
	require.Len(t, paths, 5)
	rs := rules.MustLoad()

	seq, err := ScanPaths(context.Background(), paths, rs, Config{})
	require.NoError(t, err)
	par, err := ScanPaths(context.Background(), paths, rs, Config{Threads: 3})
	require.NoError(t, err)
	assert.Equal(t, seq.Findings, par.Findings)
	assert.True(t, sort.SliceIsSorted(par.Findings, func(i, j int) bool {
		return par.Findings[i].FilePath < par.Findings[j].FilePath
	}))
}

func TestScanPaths_Cancelled(t *testing.T) {
	root := t.TempDir()
	p := writeFile(t, root, "a.js", "eval(x)\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, threads := range []int{0, 4} {
		res, err := ScanPaths(ctx, []string{p, p}, rules.MustLoad(), Config{Threads: threads})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, res.Findings)
	}
}

func TestSelect_AppliesPolicy(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/a.js", "x\n")
	writeFile(t, root, "dist/b.js", "x\n")
	writeFile(t, root, "notes.md", "x\n")
	writeFile(t, root, "legacy/c.js", "x\n")

	got := Select(root, []string{"src/a.js", "dist/b.js", "notes.md", "legacy/c.js", "src/deleted.js"},
		Config{Ignore: ignore.New("legacy/")})
	assert.Equal(t, []string{filepath.Join(root, "src", "a.js")}, got)
}

func TestCollect_FollowsFileSymlinks(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	target := writeFile(t, outside, "shared/util.js", "eval(x)\n")
	big := writeFile(t, outside, "big.js", strings.Repeat("a", 2048))
	writeFile(t, outside, "lib/inner.js", "eval(y)\n")
	writeFile(t, root, "src/a.js", "x\n")

	if err := os.Symlink(target, filepath.Join(root, "src", "link.js")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	require.NoError(t, os.Symlink(big, filepath.Join(root, "src", "big.js")))
	require.NoError(t, os.Symlink(filepath.Join(outside, "missing.js"), filepath.Join(root, "src", "dead.js")))
	require.NoError(t, os.Symlink(filepath.Join(outside, "lib"), filepath.Join(root, "src", "lib")))

	got, err := Collect(context.Background(), root, Config{MaxBytes: 1024})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/a.js", "src/link.js"}, relAll(t, root, got))

	res, err := ScanPaths(context.Background(), got, rules.MustLoad(), Config{})
	require.NoError(t, err)
	require.Len(t, res.Findings, 1)
	assert.Equal(t, "unsafe_eval", res.Findings[0].RuleID)
	assert.Equal(t, filepath.Join(root, "src", "link.js"), res.Findings[0].FilePath)
}
