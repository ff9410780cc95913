package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yacobolo/classlint"
	"github.com/yacobolo/classlint/internal/report"
	"github.com/yacobolo/classlint/internal/rule"
	"github.com/yacobolo/classlint/internal/vocab"
)

const defaultConfigFile = ".classlint.yaml"

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigFile
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// only flags set on the command line; defaults come from the fallbacks below
	flags := cmd.Flags()
	provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(flags, f)
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
func loadConfigFromPath(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// CLASSLINT_LINT_STRICT -> lint.strict
	if err := k.Load(env.Provider("CLASSLINT_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "CLASSLINT_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// addRuleFlags registers the flags overriding the rule.* keys.
func addRuleFlags(f *pflag.FlagSet) {
	f.String("stylesheet", "", "Input stylesheet relative to --cwd (default: Tailwind base, components and utilities)")
	f.StringP("tailwind-config", "c", "", "Tailwind config file")
	f.Bool("postcss", false, "Discover the PostCSS config instead of a Tailwind config")
	f.StringSlice("class-name-attributes", nil, "Attributes holding class names (default: className,class)")
	f.StringSlice("class-name-builders", nil, "Trusted class-name builder functions (default: clsx,classcat,classnames,classNames)")
}

// ruleKeys maps config file keys to rule document keys.
var ruleKeys = map[string]string{
	"class-name-attributes": "classNameAttributes",
	"class-name-builders":   "classNameBuilders",
}

// buildRuleOptions validates the rule.* sub-tree, with flag overrides applied,
// and returns the rule options.
func buildRuleOptions() (rule.Options, error) {
	doc := make(map[string]any)
	for key, value := range k.Cut("rule").Raw() {
		if mapped, ok := ruleKeys[key]; ok {
			key = mapped
		}
		doc[key] = value
	}

	if v := k.String("stylesheet"); v != "" {
		doc["stylesheet"] = v
	}
	if v := k.String("tailwind-config"); v != "" {
		doc["config"] = v
	}
	if k.Bool("postcss") {
		doc["config"] = map[string]any{"postcss": true}
	}
	for flagKey, ruleKey := range ruleKeys {
		if v := k.Strings(flagKey); len(v) > 0 {
			doc[ruleKey] = v
		}
	}

	opts, err := rule.Decode(doc)
	if err != nil {
		return rule.Options{}, fmt.Errorf("rule configuration: %w", err)
	}
	return opts, nil
}

// buildCompiler returns the configured vocabulary compiler, or nil for the
// built-in extract subcommand with the default output ceiling.
func buildCompiler() (vocab.Compiler, error) {
	command := getStringsWithFallback("compiler", "compiler.command", nil)
	maxOutput := int64(getIntWithFallback("compiler-max-output", "compiler.max-output", 0))

	if len(command) == 0 && maxOutput == 0 {
		return nil, nil
	}
	if len(command) == 0 {
		var err error
		if command, err = vocab.DefaultCommand(); err != nil {
			return nil, err
		}
	}
	if maxOutput <= 0 {
		maxOutput = vocab.DefaultMaxOutput
	}
	return vocab.NewProcessCompiler(command, maxOutput), nil
}

// buildLintConfig constructs the library's LintConfig from koanf state.
func buildLintConfig(args []string) (classlint.LintConfig, error) {
	opts, err := buildRuleOptions()
	if err != nil {
		return classlint.LintConfig{}, err
	}
	compiler, err := buildCompiler()
	if err != nil {
		return classlint.LintConfig{}, err
	}

	paths := args
	if len(paths) == 0 {
		paths = getStringsWithFallback("paths", "lint.paths", classlint.DefaultPaths)
	}

	return classlint.LintConfig{
		Cwd:                getStringWithFallback("cwd", "cwd", "."),
		Paths:              paths,
		Options:            opts,
		Compiler:           compiler,
		Logger:             newLogger(),
		MaxIssuesPerLinter: getIntWithFallback("max-issues-per-linter", "lint.max-issues-per-linter", 0),
		MaxSameIssues:      getIntWithFallback("max-same-issues", "lint.max-same-issues", 0),
	}, nil
}

// buildReportConfig constructs the reporter settings from koanf state.
func buildReportConfig() report.Config {
	return report.Config{
		UseColors:       getBoolWithFallback("color", "color", false),
		PrintLines:      getBoolWithFallback("print-lines", "lint.print-lines", true),
		PrintLinterName: getBoolWithFallback("print-linter-name", "lint.print-linter-name", true),
	}
}

// newLogger returns the stderr logger: Debug with --verbose, errors only
// with --quiet.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	switch {
	case getBoolWithFallback("verbose", "verbose", false):
		level = slog.LevelDebug
	case getBoolWithFallback("quiet", "quiet", false):
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getStringsWithFallback is getStringWithFallback for lists.
func getStringsWithFallback(flagKey, configKey string, defaultVal []string) []string {
	if v := k.Strings(flagKey); len(v) > 0 {
		return v
	}
	if v := k.Strings(configKey); len(v) > 0 {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}
