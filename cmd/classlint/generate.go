package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/classlint"
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Generate a TypeScript module typed over the known classes",
	Long: `Compile the stylesheet and write a TypeScript module exporting a clsx
wrapper whose arguments are restricted to the known class names.`,
	Example: `  classlint generate > tw-classes.ts
  classlint generate -i - -o - < styles.css > tw-classes.ts
  classlint generate -i styles.css -c configs/tailwind.js -o tw-classes.ts`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runGenerate(cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	f := generateCmd.Flags()
	f.StringP("input-path", "i", "", "Input stylesheet; - reads stdin (default: rule.stylesheet)")
	f.StringP("output-path", "o", "", "Output module path; - or empty writes stdout")
	addRuleFlags(f)
}

func runGenerate(stdin io.Reader, stdout io.Writer) error {
	opts, err := buildRuleOptions()
	if err != nil {
		return err
	}
	compiler, err := buildCompiler()
	if err != nil {
		return err
	}

	config := classlint.GenerateConfig{
		Cwd:      getStringWithFallback("cwd", "cwd", "."),
		Options:  opts,
		Compiler: compiler,
		Logger:   newLogger(),
	}

	switch input := k.String("input-path"); input {
	case "":
	case "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read stylesheet from stdin: %w", err)
		}
		styles := string(data)
		config.Styles = &styles
	default:
		config.Options.Stylesheet = input
	}

	result, err := classlint.Generate(config)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	output := getStringWithFallback("output-path", "generate.output", "-")
	if output == "-" {
		_, err := stdout.Write(result.Source)
		return err
	}

	if err := os.WriteFile(output, result.Source, 0o644); err != nil {
		return fmt.Errorf("write module: %w", err)
	}
	if !getBoolWithFallback("quiet", "quiet", false) {
		fmt.Fprintf(os.Stderr, "Generated %s with %d classes\n", output, result.Classes)
	}
	return nil
}
