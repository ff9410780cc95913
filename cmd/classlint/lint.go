package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/yacobolo/classlint"
	"github.com/yacobolo/classlint/internal/jsx"
	"github.com/yacobolo/classlint/internal/report"
)

// watchDebounce is the quiet period after a change before re-linting.
const watchDebounce = 300 * time.Millisecond

var lintCmd = &cobra.Command{
	Use:   "lint [patterns...]",
	Short: "Check class names in JSX attributes and class-name builder calls",
	Long: `Check that every class name in class attributes and class-name builder
calls is defined by the stylesheet. Values flowing in from parameters, imports
or other non-literal sources are reported as dynamic.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLint(cmd.Context(), cmd.OutOrStdout(), args)
	},
}

func init() {
	f := lintCmd.Flags()
	f.StringSlice("paths", classlint.DefaultPaths, "File patterns to scan, relative to --cwd")
	f.Bool("strict", false, "Exit 1 on any issue, warnings included (CI mode)")
	f.String("output-format", "", "Output format: issues|summary|full|json")
	f.Int("max-issues-per-linter", 0, "Max issues to show (0=unlimited)")
	f.Int("max-same-issues", 0, "Max repeated issues to show (0=unlimited)")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-linter-name", true, "Show (classlint) suffix on issues")
	f.BoolP("watch", "w", false, "Re-lint when sources or the stylesheet change")
	addRuleFlags(f)
}

// lintSettings are the output and exit-code settings of a lint command.
type lintSettings struct {
	quiet  bool
	strict bool
	format classlint.OutputFormat
	report report.Config
}

func buildLintSettings() lintSettings {
	quiet := getBoolWithFallback("quiet", "quiet", false)
	return lintSettings{
		quiet:  quiet,
		strict: getBoolWithFallback("strict", "lint.strict", false),
		format: classlint.DetermineOutputFormat(getStringWithFallback("output-format", "lint.output-format", ""), quiet),
		report: buildReportConfig(),
	}
}

func runLint(ctx context.Context, w io.Writer, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	config, err := buildLintConfig(args)
	if err != nil {
		return err
	}
	settings := buildLintSettings()

	linter, err := classlint.NewLinter(config)
	if err != nil {
		return err
	}

	result, err := linter.Run(ctx)
	if err != nil {
		return fmt.Errorf("lint failed: %w", err)
	}
	if err := writeLintResult(w, result, settings); err != nil {
		return err
	}

	if getBoolWithFallback("watch", "lint.watch", false) {
		return watchLint(ctx, w, linter, config, settings, result)
	}

	if code := exitCode(result, settings.strict); code != 0 {
		return &exitError{code: code}
	}
	return nil
}

func writeLintResult(w io.Writer, result *classlint.LintResult, settings lintSettings) error {
	if settings.quiet {
		return nil
	}
	return report.WriteOutput(w, result, settings.format, settings.report)
}

// exitCode implements the soft gate: errors and unchecked locations fail the
// run; warnings fail it only in strict mode.
func exitCode(result *classlint.LintResult, strict bool) int {
	switch {
	case result.ErrorCount > 0, len(result.Failures) > 0:
		return 1
	case strict && len(result.Issues)+result.TruncatedCount > 0:
		return 1
	}
	return 0
}

// watchLint re-runs the linter after changes to scanned directories or the
// stylesheet until ctx is done. The linter keeps the vocabulary while the
// stylesheet is unchanged.
func watchLint(ctx context.Context, w io.Writer, linter *classlint.Linter, config classlint.LintConfig, settings lintSettings, result *classlint.LintResult) error {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch init failed: %w", err)
	}
	defer watcher.Close()

	stylesheet := ""
	if config.Options.Stylesheet != "" {
		stylesheet = config.Options.Stylesheet
		if !filepath.IsAbs(stylesheet) {
			stylesheet = filepath.Join(linter.Cwd(), stylesheet)
		}
	}

	watched := make(map[string]bool)
	addDirs := func(result *classlint.LintResult) {
		for _, dir := range watchDirs(linter.Cwd(), result.Files, stylesheet) {
			if watched[dir] {
				continue
			}
			if err := watcher.Add(dir); err != nil {
				logger.Warn("cannot watch directory", "dir", dir, "error", err)
				continue
			}
			watched[dir] = true
		}
	}
	addDirs(result)
	logger.Info("watching for changes", "dirs", len(watched))

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantChange(ev, stylesheet) {
				continue
			}
			logger.Debug("change detected", "path", ev.Name, "op", ev.Op.String())
			debounce = time.After(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)

		case <-debounce:
			debounce = nil
			result, err := linter.Run(ctx)
			if err != nil {
				// a broken stylesheet is reported and waited out
				logger.Error("lint failed", "error", err)
				continue
			}
			if err := writeLintResult(w, result, settings); err != nil {
				return err
			}
			addDirs(result)
		}
	}
}

// watchDirs returns the directories holding files and the stylesheet, plus
// the project root so new top-level sources are seen.
func watchDirs(root string, files []string, stylesheet string) []string {
	dirs := []string{root}
	for _, f := range files {
		dirs = append(dirs, filepath.Dir(f))
	}
	if stylesheet != "" {
		dirs = append(dirs, filepath.Dir(stylesheet))
	}
	slices.Sort(dirs)
	return slices.Compact(dirs)
}

func relevantChange(ev fsnotify.Event, stylesheet string) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	if stylesheet != "" && filepath.Clean(ev.Name) == stylesheet {
		return true
	}
	return jsx.Supported(ev.Name) || filepath.Ext(ev.Name) == ".css"
}
