package vocab

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// DefaultStylesheet is compiled when no stylesheet is configured.
const DefaultStylesheet = `
  @tailwind base;
  @tailwind components;
  @tailwind utilities;
`

// Provider returns the vocabulary for a stylesheet and config selector,
// compiling only when the inputs changed since the cached entry.
type Provider struct {
	compiler Compiler
	cache    *Cache
	logger   *slog.Logger
}

// NewProvider returns a Provider. A nil cache disables caching; a nil logger
// discards log output.
func NewProvider(compiler Compiler, cache *Cache, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Provider{compiler: compiler, cache: cache, logger: logger}
}

// Get returns the vocabulary for stylesheet and config. stylesheet is a path
// relative to cwd; empty selects DefaultStylesheet. An empty cwd is the
// process working directory.
//
// Compiler failures are returned as *ExtractionError and are not retried.
func (p *Provider) Get(stylesheet string, config ConfigSelector, cwd string) (Vocabulary, error) {
	req, err := NewRequest(stylesheet, config, cwd)
	if err != nil {
		return Vocabulary{}, err
	}
	return p.Load(req)
}

// Load is Get for a prepared request, such as a stylesheet read from stdin.
func (p *Provider) Load(req Request) (Vocabulary, error) {
	fp := fingerprintOf(req, p.compiler.Command())
	if p.cache != nil {
		if v, ok := p.cache.Get(fp); ok {
			p.logger.Debug("vocabulary cache hit", "fingerprint", fp[:12], "classes", v.Len())
			return v, nil
		}
	}

	p.logger.Debug("compiling vocabulary", "stylesheet", deref(req.StylesPath), "config", req.Config.String())
	start := time.Now()

	names, err := p.compiler.Compile(req)
	if err != nil {
		return Vocabulary{}, err
	}

	v := NewVocabulary(names)
	if p.cache != nil {
		p.cache.Put(fp, v)
	}
	p.logger.Info("vocabulary compiled", "classes", v.Len(), "duration", time.Since(start).Round(time.Millisecond))

	return v, nil
}

// NewRequest reads the stylesheet and builds the compiler request.
func NewRequest(stylesheet string, config ConfigSelector, cwd string) (Request, error) {
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Request{}, fmt.Errorf("get working directory: %w", err)
		}
		cwd = wd
	}

	req := Request{Cwd: cwd, Styles: DefaultStylesheet, Config: config}
	if stylesheet == "" {
		return req, nil
	}

	path := stylesheet
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Request{}, fmt.Errorf("read stylesheet: %w", err)
	}

	req.Styles = string(data)
	req.StylesPath = &path
	return req, nil
}

func deref(s *string) string {
	if s == nil {
		return "<inline>"
	}
	return *s
}
