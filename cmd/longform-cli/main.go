// SPDX-License-Identifier: Apache-2.0

// The longform CLI translates between symbolic source and Longform
// text: reduce lowers, oxidize raises, validate checks.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"

	"longform"
	"longform/internal/report"
)

// Exit codes: 0 success, 1 transform failure, 2 I/O failure, 64 usage.
const (
	exitTransform = 1
	exitIO        = 2
	exitUsage     = 64
)

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

var outputFlag string
var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:           "longform",
	Short:         "Translate between symbolic source and Longform text",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if viper.GetBool("verbose") {
			commonlog.Configure(1, nil)
		}
	},
}

func init() {
	viper.SetEnvPrefix("longform")
	viper.AutomaticEnv()

	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "", "write the result to a file instead of stdout")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "V", false, "log translation details")
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(reduceCmd, oxidizeCmd, validateCmd)
}

var reduceCmd = &cobra.Command{
	Use:   "reduce <input>",
	Short: "Translate symbolic source to Longform",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return translate(args[0], longform.Reduce)
	},
}

var oxidizeCmd = &cobra.Command{
	Use:   "oxidize <input>",
	Short: "Translate Longform back to symbolic source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return translate(args[0], longform.Oxidize)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <input>",
	Short: "Check that Longform text tokenizes and parses",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		source, err := os.ReadFile(path)
		if err != nil {
			return &exitError{exitIO, err}
		}
		if err := longform.Validate(source); err != nil {
			fmt.Fprint(os.Stderr, report.Format(path, string(source), err))
			return &exitError{exitTransform, err}
		}
		return nil
	},
}

func translate(path string, transform func([]byte) ([]byte, error)) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return &exitError{exitIO, err}
	}

	log := commonlog.GetLogger("longform.cli")
	log.Debugf("translating %s (%d bytes)", path, len(source))

	out, err := transform(source)
	if err != nil {
		fmt.Fprint(os.Stderr, report.Format(path, string(source), err))
		return &exitError{exitTransform, err}
	}
	log.Debugf("produced %d bytes", len(out))

	if target := viper.GetString("output"); target != "" {
		if err := os.WriteFile(target, out, 0o644); err != nil {
			return &exitError{exitIO, err}
		}
		return nil
	}
	if _, err := os.Stdout.Write(out); err != nil {
		return &exitError{exitIO, err}
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsage)
	}
}
