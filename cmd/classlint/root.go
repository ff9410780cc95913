package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "classlint",
	Short: "Unknown class name linter for JSX and class-name builders",
	Long: `Check every class name written in JSX class attributes and in calls to
class-name builders such as clsx against the classes your stylesheet defines.
The vocabulary comes from a class compiler; by default the built-in extractor.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	f := rootCmd.PersistentFlags()
	f.BoolP("verbose", "v", false, "Enable verbose logging")
	f.Bool("quiet", false, "Suppress all output (exit code only)")
	f.Bool("color", false, "Force color output")
	f.String("config", defaultConfigFile, "Config file path")
	f.String("cwd", "", "Project root (default: current directory)")
	f.StringSlice("compiler", nil, "Class compiler command (default: built-in extract)")
	f.Int64("compiler-max-output", 0, "Max compiler output in bytes (default: 25 MiB)")

	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
