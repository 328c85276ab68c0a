// Package files edits project files that steer scanning.
package files

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/vibewolf/vibewolf/internal/ignore"
)

// AppendIgnore ensures pattern is present in the .vibewolfignore at root.
// It creates the file if missing and adds a missing trailing newline
// before appending. Idempotent.
func AppendIgnore(root, pattern string) error {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil
	}
	path := filepath.Join(root, ignore.FileName)
	existing := map[string]bool{}
	needsNewline := false
	if b, err := os.ReadFile(path); err == nil {
		sc := bufio.NewScanner(strings.NewReader(string(b)))
		for sc.Scan() {
			existing[strings.TrimSpace(sc.Text())] = true
		}
		needsNewline = len(b) > 0 && b[len(b)-1] != '\n'
	}
	if existing[pattern] {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	if needsNewline {
		if _, err := f.WriteString("\n"); err != nil {
			return err
		}
	}
	_, err = f.WriteString(pattern + "\n")
	return err
}

// DefaultIgnores returns generated-code patterns that are safe to ignore
// in JavaScript projects.
func DefaultIgnores() []string {
	return []string{
		"*.min.js",
		"*.bundle.js",
		"vendor/",
		"public/assets/",
	}
}
