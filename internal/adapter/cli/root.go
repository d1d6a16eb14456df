// Package cli wires the review pipeline into the scr command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bkyoung/smart-code-reviewer/internal/domain"
	"github.com/bkyoung/smart-code-reviewer/internal/samples"
	"github.com/bkyoung/smart-code-reviewer/internal/usecase/gate"
	"github.com/bkyoung/smart-code-reviewer/internal/usecase/skip"
)

// ErrGateFailed indicates at least one reviewed file failed the threshold or
// errored. The report has already been written; the process should exit 1
// without further output.
var ErrGateFailed = errors.New("review gate failed")

// ErrNoCredential indicates no API key is configured. Surfaced before any
// request is attempted.
var ErrNoCredential = errors.New("no API key configured: set GROQ_API_KEY or provider.apiKey")

// Reviewer runs one code review round trip.
type Reviewer interface {
	Review(ctx context.Context, code string) (domain.ReviewResult, error)
}

// History persists completed reviews. Optional.
type History interface {
	SaveReview(ctx context.Context, path string, result domain.ReviewResult, passed bool) (int64, error)
}

// StagedLister discovers files staged for commit. Optional.
type StagedLister interface {
	StagedFiles() ([]string, error)
}

// Arguments encapsulates IO writers injected from the host process.
type Arguments struct {
	OutWriter io.Writer
	ErrWriter io.Writer
}

// Dependencies captures the collaborators for the CLI.
type Dependencies struct {
	Reviewer         Reviewer // nil when no credential is configured
	History          History
	Staged           StagedLister
	Dashboard        http.Handler
	Args             Arguments
	DefaultThreshold float64
	DefaultVerbose   bool
	DashboardAddr    string
	Version          string
}

// NewRootCommand constructs the root Cobra command.
func NewRootCommand(deps Dependencies) *cobra.Command {
	versionString := deps.Version
	if versionString == "" {
		versionString = "v0.0.0"
	}

	root := &cobra.Command{
		Use:   "scr",
		Short: "AI-powered code review gate",
	}
	root.SilenceUsage = true
	root.SilenceErrors = true

	outWriter := deps.Args.OutWriter
	if outWriter == nil {
		outWriter = os.Stdout
	}
	errWriter := deps.Args.ErrWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}
	root.SetOut(outWriter)
	root.SetErr(errWriter)

	root.AddCommand(reviewCommand(deps))
	root.AddCommand(samplesCommand(deps))
	root.AddCommand(serveCommand(deps))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionString)
		},
	})

	return root
}

func reviewCommand(deps Dependencies) *cobra.Command {
	var threshold float64
	var verbose bool
	var staged bool

	cmd := &cobra.Command{
		Use:   "review [files...]",
		Short: "Review files and gate on the score threshold",
		Long: `Reviews each file with the configured model and compares the overall
score against the threshold. Non-code, missing, and empty files are skipped.
Exit code is 0 when every reviewed file passes, 1 otherwise.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if staged {
				if deps.Staged == nil {
					return errors.New("staged file discovery unavailable: not a git repository")
				}
				stagedPaths, err := deps.Staged.StagedFiles()
				if err != nil {
					return fmt.Errorf("list staged files: %w", err)
				}
				paths = append(paths, stagedPaths...)
			}

			if len(paths) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No files to review")
				return nil
			}

			if deps.Reviewer == nil {
				return ErrNoCredential
			}

			return runBatch(cmd, deps, paths, threshold, verbose)
		},
	}

	cmd.Flags().Float64VarP(&threshold, "threshold", "t", deps.DefaultThreshold, "Minimum passing overall score (0-10)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", deps.DefaultVerbose, "Expand failing reviews with per-category detail")
	cmd.Flags().BoolVar(&staged, "staged", false, "Also review files staged for commit")

	return cmd
}

// runBatch reviews every path and renders the aggregate report. One input's
// failure never stops the remaining inputs.
func runBatch(cmd *cobra.Command, deps Dependencies, paths []string, threshold float64, verbose bool) error {
	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	fmt.Fprintf(out, "Smart Code Reviewer (threshold: %.1f/10)\n\n", threshold)

	var batch gate.BatchResult
	for _, path := range paths {
		outcome := reviewOne(ctx, deps, out, path, threshold, verbose)
		batch.Add(outcome)
	}

	fmt.Fprintf(out, "\n%s\n", batch.Report())

	if !batch.Passed() {
		return ErrGateFailed
	}
	return nil
}

func reviewOne(ctx context.Context, deps Dependencies, out io.Writer, path string, threshold float64, verbose bool) gate.FileOutcome {
	reason, code, err := skip.Check(path)
	if err != nil {
		fmt.Fprintf(out, "%s %s: %v\n", failMark(), path, err)
		return gate.FileOutcome{Path: path, Err: err}
	}
	if reason != skip.ReasonNone {
		fmt.Fprintf(out, "%s %s (skipped: %s)\n", skipMark(), path, reason)
		return gate.FileOutcome{Path: path, Skipped: true, Passed: true}
	}

	stop := startSpinner(out, path)
	result, err := deps.Reviewer.Review(ctx, code)
	stop()

	if err != nil {
		fmt.Fprintf(out, "%s %s: %v\n", failMark(), path, err)
		return gate.FileOutcome{Path: path, Err: err}
	}

	outcome := gate.Evaluate(result, threshold, path, verbose)

	mark := passMark()
	if !outcome.Passed {
		mark = failMark()
	}
	fmt.Fprintf(out, "%s %s\n", mark, indentContinuation(outcome.Report))

	if deps.History != nil {
		if _, err := deps.History.SaveReview(ctx, path, result, outcome.Passed); err != nil {
			fmt.Fprintf(out, "warning: failed to record review: %v\n", err)
		}
	}

	return gate.FileOutcome{Path: path, Passed: outcome.Passed, Score: result.OverallScore}
}

func samplesCommand(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "samples [name]",
		Short: "List built-in demo snippets, or review one by name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				for _, name := range samples.Names() {
					fmt.Fprintln(out, name)
				}
				return nil
			}

			sample, err := samples.Get(args[0])
			if err != nil {
				return err
			}

			if deps.Reviewer == nil {
				return ErrNoCredential
			}

			stop := startSpinner(out, sample.Name)
			result, err := deps.Reviewer.Review(cmd.Context(), sample.Code)
			stop()
			if err != nil {
				return err
			}

			// Samples are demos: always show the full breakdown.
			fmt.Fprintln(out, gate.Describe(result, sample.Name))
			return nil
		},
	}
}

func serveCommand(deps Dependencies) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the local review history dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			if deps.Dashboard == nil {
				return errors.New("dashboard unavailable: review history store is disabled")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Dashboard listening on http://%s\n", addr)
			server := &http.Server{Addr: addr, Handler: deps.Dashboard}
			return server.ListenAndServe()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", deps.DashboardAddr, "Listen address for the dashboard")

	return cmd
}

func passMark() string { return color.New(color.FgGreen).Sprint("✓") }
func failMark() string { return color.New(color.FgRed).Sprint("✗") }
func skipMark() string { return color.New(color.FgHiBlack).Sprint("-") }

// startSpinner shows progress while a review round trip is in flight. It is
// a no-op when stdout is not a terminal (pre-commit hooks, CI).
func startSpinner(out io.Writer, label string) func() {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return func() {}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " reviewing " + label
	s.Start()
	return s.Stop
}
