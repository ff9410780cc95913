package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yacobolo/classlint/internal/vocab"
)

// maxImportDepth bounds @import chains; cycles are cut by the visited set.
const maxImportDepth = 32

// Extractor collects the class vocabulary of a stylesheet and its local imports.
type Extractor struct {
	logger *slog.Logger
}

// New returns an Extractor. A nil logger discards log output.
func New(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Extractor{logger: logger}
}

// Extract returns the sorted class names defined by req.Styles and the local
// stylesheets it imports. Imports resolve against the directory of
// req.StylesPath, or req.Cwd for an inline stylesheet. Remote imports and
// package imports that are not files are skipped.
func (e *Extractor) Extract(req vocab.Request) ([]string, error) {
	e.logger.Debug("extracting classes", "config", req.Config.String(), "stylesPath", deref(req.StylesPath))

	base := req.Cwd
	visited := make(map[string]bool)
	if req.StylesPath != nil {
		base = filepath.Dir(*req.StylesPath)
		visited[filepath.Clean(*req.StylesPath)] = true
	}

	classes := make(map[string]struct{})
	if err := e.collect(req.Styles, base, visited, classes, 0); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(classes))
	for name := range classes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

func (e *Extractor) collect(content, dir string, visited map[string]bool, classes map[string]struct{}, depth int) error {
	if depth > maxImportDepth {
		return fmt.Errorf("@import nesting deeper than %d", maxImportDepth)
	}

	sheet := ParseCSS(content)
	for _, name := range sheet.Classes {
		classes[name] = struct{}{}
	}

	for _, target := range sheet.Imports {
		if isRemote(target) {
			e.logger.Debug("skipping remote import", "import", target)
			continue
		}

		path := target
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, filepath.FromSlash(target))
		}
		path = filepath.Clean(path)
		if visited[path] {
			continue
		}
		visited[path] = true

		// #nosec G304 - path comes from the stylesheet being compiled
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && !strings.HasSuffix(target, ".css") {
				e.logger.Debug("skipping package import", "import", target)
				continue
			}
			return fmt.Errorf("read import %q: %w", target, err)
		}

		if err := e.collect(string(data), filepath.Dir(path), visited, classes, depth+1); err != nil {
			return fmt.Errorf("%s: %w", target, err)
		}
	}

	return nil
}

func isRemote(target string) bool {
	lower := strings.ToLower(target)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "//")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Run speaks the compiler protocol: one request document on r, one JSON array
// of class names on w.
func (e *Extractor) Run(r io.Reader, w io.Writer) error {
	input, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}

	req, err := vocab.DecodeRequest(input)
	if err != nil {
		return err
	}

	names, err := e.Extract(req)
	if err != nil {
		return err
	}

	if err := json.NewEncoder(w).Encode(names); err != nil {
		return fmt.Errorf("write classes: %w", err)
	}
	return nil
}
