package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/yacobolo/classlint/internal/extract"
)

// extractCmd is the built-in class compiler. The linter runs it as a
// subprocess with one request document on stdin.
var extractCmd = &cobra.Command{
	Use:    "extract",
	Short:  "Read a class extraction request on stdin and print the class names",
	Hidden: true,
	Args:   cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		if stdinIsTerminal() {
			return errors.New("extract reads a request document from stdin; it is not meant to be run interactively")
		}
		logger := newLogger()
		return extract.New(logger).Run(cmd.InOrStdin(), cmd.OutOrStdout())
	},
}
