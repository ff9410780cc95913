package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .classlint.yaml config file",
	Long:  `Create a .classlint.yaml configuration file in the current directory with the default settings.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigFile); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigFile)
		}

		if err := os.WriteFile(defaultConfigFile, []byte(defaultConfig), 0o644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", defaultConfigFile)
		return nil
	},
}

const defaultConfig = `# classlint configuration

verbose: false
color: false

# What is checked and where the known classes come from
rule:
  stylesheet: ""               # e.g. src/index.css; empty: Tailwind base, components and utilities
  config:
    tailwind: null             # path to tailwind.config.js; null: default lookup
  # config:
  #   postcss: true            # use the PostCSS config instead
  class-name-attributes:
    - className
    - class
  class-name-builders:
    - clsx
    - classcat
    - classnames
    - classNames

# Class compiler speaking the extraction protocol on stdin/stdout
compiler:
  # command: ["node", "scripts/tailwind-classes.js"]
  max-output: 26214400         # bytes

lint:
  paths:
    - "src/**/*.{js,jsx,ts,tsx}"
  strict: false                # true: warnings fail the run too
  output-format: issues        # issues | summary | full | json
  max-issues-per-linter: 0     # 0 = unlimited
  max-same-issues: 0           # 0 = unlimited
  print-lines: true
  print-linter-name: true

generate:
  output: "-"                  # - writes stdout
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
