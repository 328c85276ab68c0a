// Package ignore implements .vibewolfignore matching. Each non-empty,
// non-comment line is a doublestar pattern matched against slash-separated
// paths relative to the scan root. A trailing slash marks a directory prefix.
package ignore

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// FileName is the ignore file looked up at the scan root.
const FileName = ".vibewolfignore"

// Matcher reports whether a root-relative path is ignored. The zero value
// matches nothing.
type Matcher struct {
	patterns []string
}

// Load reads patterns from p. A missing file yields an empty matcher and
// no error.
func Load(p string) (Matcher, error) {
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Matcher{}, nil
		}
		return Matcher{}, err
	}
	defer f.Close()
	var m Matcher
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		m.Add(sc.Text())
	}
	return m, sc.Err()
}

// New builds a matcher from in-memory patterns.
func New(patterns ...string) Matcher {
	var m Matcher
	for _, p := range patterns {
		m.Add(p)
	}
	return m
}

// Add appends one pattern line; blanks and # comments are skipped.
func (m *Matcher) Add(line string) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}
	line = strings.TrimPrefix(line, "./")
	if strings.HasSuffix(line, "/") {
		line += "**"
	}
	m.patterns = append(m.patterns, line)
}

// Len is the number of active patterns.
func (m Matcher) Len() int { return len(m.patterns) }

// Match reports whether rel (slash or OS separated) is ignored. Patterns
// without a slash also match against the base name and any parent
// directory name, mirroring gitignore.
func (m Matcher) Match(rel string) bool {
	if len(m.patterns) == 0 {
		return false
	}
	rel = strings.ReplaceAll(rel, "\\", "/")
	base := path.Base(rel)
	for _, p := range m.patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
		if strings.Contains(strings.TrimSuffix(p, "/**"), "/") {
			continue
		}
		if ok, _ := doublestar.Match(p, base); ok {
			return true
		}
		if ok, _ := doublestar.Match("**/"+p, rel); ok {
			return true
		}
	}
	return false
}
