package classlint

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/yacobolo/classlint/internal/jsx"
)

// DefaultPaths are scanned when no lint paths are configured.
var DefaultPaths = []string{"src/**/*.{js,jsx,ts,tsx}"}

// ScanStats tracks file discovery statistics
type ScanStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files actually scanned (after filtering)
	FilesSkipped    int // Files skipped due to filtering
}

// scanner expands lint patterns relative to a project root.
type scanner struct {
	root      string
	gitignore *ignore.GitIgnore
}

// newScanner loads root/.gitignore when present. A missing or unreadable
// .gitignore disables that filter.
func newScanner(root string) *scanner {
	s := &scanner{root: root}
	if gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
		s.gitignore = gi
	}
	return s
}

// isBundled reports files that are build output rather than source
func isBundled(path string) bool {
	if strings.HasSuffix(path, ".min.js") || strings.HasSuffix(path, ".d.ts") {
		return true
	}
	return slices.Contains(strings.Split(filepath.ToSlash(path), "/"), "node_modules")
}

// shouldSkip determines if a file should be excluded from scanning.
//
// Two-layer filtering:
// 1. Pattern check (fast): unsupported extensions, bundles, node_modules
// 2. Gitignore check: only for paths inside the root
func (s *scanner) shouldSkip(path string) bool {
	if !jsx.Supported(path) || isBundled(path) {
		return true
	}

	if s.gitignore == nil {
		return false
	}
	rel, err := filepath.Rel(s.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	return s.gitignore.MatchesPath(filepath.ToSlash(rel))
}

// expand resolves glob patterns to a deduplicated, sorted list of files.
// Relative patterns are taken relative to the root.
func (s *scanner) expand(patterns []string) ([]string, ScanStats, error) {
	var stats ScanStats
	seen := make(map[string]bool)
	var files []string

	for _, pattern := range patterns {
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(s.root, pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, err
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++

			if s.shouldSkip(match) {
				stats.FilesSkipped++
				continue
			}
			files = append(files, match)
		}
	}

	slices.Sort(files)
	stats.FilesScanned = len(files)
	return files, stats, nil
}

// DiscoverFiles expands patterns relative to root and drops unsupported,
// bundled and gitignored files.
func DiscoverFiles(root string, patterns []string) ([]string, ScanStats, error) {
	return newScanner(root).expand(patterns)
}

// RelativePath returns path relative to root when it lies inside it.
func RelativePath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
