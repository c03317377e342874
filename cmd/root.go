// Package cmd provides the CLI commands for tabguard.
package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/tabguard/internal/config"
	tgerrors "github.com/manav03panchal/tabguard/internal/errors"
	"github.com/manav03panchal/tabguard/internal/logging"
	"github.com/manav03panchal/tabguard/internal/output"
	"github.com/manav03panchal/tabguard/internal/runtime"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagFormat  string
	flagColor   string
	flagDebug   bool
	flagEnvFile string
)

// ctx is the shared runtime context.
var ctx *runtime.Context

// now is the clock used when --at is not given.
var now = time.Now

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "tabguard",
	Short: "Keep distracting sites out of your working hours",
	Long: `tabguard redirects tabs that open blocked sites while protection is
active. Protection can run around the clock or only during working hours.

Examples:
  tabguard status
  tabguard domains add news.ycombinator.com
  tabguard hours set --start 9am --end 5:30pm
  tabguard hours days mon,tue,wed,thu
  tabguard check https://www.youtube.com/watch --at "friday 10am"
  tabguard serve`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for completion, help and version (but allow __complete for dynamic completions)
		switch cmd.Name() {
		case "completion", "help", "version":
			return nil
		}

		format, err := output.ParseFormat(flagFormat)
		if err != nil {
			return tgerrors.NewUserErrorWithField("format", flagFormat, err.Error(), "Use one of: cli, json, plain.")
		}
		colorMode, err := output.ParseColorMode(flagColor)
		if err != nil {
			return tgerrors.NewUserErrorWithField("color", flagColor, err.Error(), "Use one of: auto, always, never.")
		}

		if flagDebug {
			logging.InitDebug()
		}

		if flagEnvFile != "" {
			if err := config.Global.LoadEnvFile(flagEnvFile); err != nil {
				return tgerrors.NewUserErrorWithField("env-file", flagEnvFile, err.Error(),
					"Pass a readable file of KEY=value lines, e.g. "+config.EnvMatchMode+"=suffix.")
			}
		}

		// Create runtime context
		opts := runtime.DefaultOptions()
		opts.Format = format
		opts.ColorMode = colorMode
		opts.Debug = flagDebug

		ctx, err = runtime.New(opts)
		if err != nil {
			return err
		}
		ctx.Formatter.Writer = cmd.OutOrStdout()
		logging.LogOperation("command", "name", cmd.CommandPath())

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeContext()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: show current status
		return runStatus(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		// PersistentPostRunE does not run after a failed RunE
		_ = closeContext()
	}
	return err
}

func closeContext() error {
	if ctx == nil {
		return nil
	}
	err := ctx.Close()
	ctx = nil
	return err
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "cli",
		"Output format: cli, json, plain")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto",
		"Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", "",
		"Read TABGUARD_* settings from this file (the environment wins)")

	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("tabguard %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
	},
}

// PrintError writes err in the active output format.
func PrintError(w io.Writer, err error) {
	// ctx is already closed here, so the flag decides
	if format, _ := output.ParseFormat(flagFormat); format == output.FormatJSON {
		f := output.NewJSONFormatter(&output.Formatter{Writer: w, Format: output.FormatJSON})
		_ = f.PrintError(tgerrors.Classify(err).String(), err.Error(), tgerrors.GetSuggestion(err))
		return
	}
	fmt.Fprintf(w, "Error: %s\n", tgerrors.FormatByCategory(err))
}

// Die prints an error and exits.
func Die(err error) {
	logging.DebugLog("command failed", logging.KeyError, err, logging.KeyCategory, tgerrors.Classify(err).String())
	PrintError(os.Stderr, err)
	os.Exit(1)
}
