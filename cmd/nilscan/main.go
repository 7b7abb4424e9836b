// nilscan reports definite absent-value and nil-pointer dereferences in Go
// packages.
//
// Modes:
//   - (root): scan the packages and write the report to stdout
//   - serve:  newline-delimited JSON request/response loop on stdin/stdout
//   - version
//
// Reports go to stdout; logs always go to stderr.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FredrikPedersen/nullref/internal/scan"
)

// errFindings makes the process exit 1 when the report is not clean.
var errFindings = errors.New("findings reported")

// cfgFile holds the --config flag value.
var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "nilscan [flags]",
	Short:         "Find definite absent-value and nil-pointer dereferences",
	Version:       scan.ToolVersion,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	RunE: runScan,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run JSON request/response loop on stdin/stdout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := loadOptions()
		scanner := scan.NewScanner(opts.Scan, newLogger(opts.LogLevel))
		return serve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), scanner)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the nilscan version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "nilscan %s\n", scan.ToolVersion)
		return err
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "YAML config file (default: .nilscan.yaml in the working directory, if present)")
	pf.String("log-level", "warn", "log level: debug, info, warn, error")
	pf.String("optional-pkg", scan.DefaultOptionalPkg, "import path of the Option type checked by NIL001")
	pf.Bool("tests", false, "also scan _test.go files")
	pf.Bool("include-generated", false, "report findings in generated files")

	f := rootCmd.Flags()
	f.StringSlice("packages", []string{"./..."}, "Go package patterns to scan")
	f.String("dir", ".", "directory the package patterns are resolved in")
	f.String("format", scan.FormatText, "output format: "+strings.Join(scan.Formats, ", "))
	f.String("cache-dir", "", "directory for the report cache (empty = no cache)")
	f.Int("max-cache-entries", scan.DefaultMaxCacheEntries, "max cached reports before LRU eviction")
	f.Bool("fail-on-findings", true, "exit 1 when findings are reported")

	cobra.CheckErr(bindFlags())

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errFindings) {
			fmt.Fprintf(os.Stderr, "nilscan: %v\n", err)
		}
		os.Exit(1)
	}
}

// runScan scans the requested packages and writes the report to stdout.
func runScan(cmd *cobra.Command, args []string) error {
	opts := loadOptions()
	if !scan.ValidFormat(opts.Format) {
		return fmt.Errorf("unknown format %q (want one of %s)", opts.Format, strings.Join(scan.Formats, ", "))
	}

	logger := newLogger(opts.LogLevel)
	scanner := scan.NewScanner(opts.Scan, logger)
	out := cmd.OutOrStdout()

	report, err := scanner.ScanWithCache(cmd.Context(), opts.Dir, opts.Packages, opts.CacheDir, opts.MaxCacheEntries)
	if err != nil {
		var hit *scan.CacheHit
		if !errors.As(err, &hit) {
			return fmt.Errorf("scan: %w", err)
		}
		if opts.Format == scan.FormatFB {
			// The cached payload is already encoded.
			if err := scan.WriteFrame(out, hit.Payload); err != nil {
				return err
			}
			report, err = hit.Report()
			if err != nil {
				return err
			}
			return checkFindings(report, opts.FailOnFindings)
		}
		if report, err = hit.Report(); err != nil {
			logger.Warn("cached report unreadable, rescanning", "error", err)
			if report, err = scanner.Scan(cmd.Context(), opts.Dir, opts.Packages); err != nil {
				return fmt.Errorf("scan: %w", err)
			}
		}
	}

	if err := scan.Render(out, report, opts.Format); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return checkFindings(report, opts.FailOnFindings)
}

func checkFindings(report *scan.Report, fail bool) error {
	if fail && len(report.Findings) > 0 {
		return fmt.Errorf("%w: %d", errFindings, len(report.Findings))
	}
	return nil
}

// newLogger builds the stderr logger for level; unknown levels mean warn.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
