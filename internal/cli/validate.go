package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tactus-lang/tactus/internal/ast"
	"github.com/tactus-lang/tactus/internal/compiler"
	"github.com/tactus-lang/tactus/internal/registry"
)

// ValidateSummary is the success payload for the validate command.
type ValidateSummary struct {
	Document string `json:"document"`
	Errors   int    `json:"errors"`
	Warnings int    `json:"warnings"`
}

func (s ValidateSummary) String() string {
	if s.Errors == 0 && s.Warnings == 0 {
		return fmt.Sprintf("%s: no findings", s.Document)
	}
	return fmt.Sprintf("%s: %d error(s), %d warning(s)", s.Document, s.Errors, s.Warnings)
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <tree.json>",
		Short: "Validate a parsed Tactus document without emitting output",
		Long: `Validate a parsed Tactus document without emitting output.

Runs lowering and the full validation rule catalog (timing, imports,
selectors, labels) and reports every finding at once. Faster feedback
than compile during authoring.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, treePath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	data, err := os.ReadFile(treePath)
	if err != nil {
		return &ExitError{Code: ExitCommandError, Message: "reading syntax tree", Err: err}
	}

	doc, err := ast.DecodeDocument(data)
	if err != nil {
		return &ExitError{Code: ExitCommandError, Message: "decoding syntax tree", Err: err}
	}
	if doc.URI == "" {
		doc.URI = treePath
	}

	prog, err := compiler.Lower(doc)
	if err != nil {
		return &ExitError{Code: ExitCommandError, Message: "lowering failed", Err: err}
	}

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	registries := registry.NewStore(logger)
	for _, warning := range registry.PopulateFromImports(registries, registry.DirLoader{}, doc.URI, prog.Imports) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", warning)
	}

	diags := compiler.Validate(prog, registries)

	summary := ValidateSummary{Document: doc.URI}
	for _, d := range diags {
		if d.Severity == compiler.SeverityError {
			summary.Errors++
		} else {
			summary.Warnings++
		}
	}

	if err := formatter.Success(summary, diags); err != nil {
		return err
	}

	if summary.Errors > 0 {
		return &ExitError{
			Code:    ExitFailure,
			Message: fmt.Sprintf("validation of %s found %d error(s)", doc.URI, summary.Errors),
		}
	}
	return nil
}
