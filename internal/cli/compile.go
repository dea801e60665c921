package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tactus-lang/tactus/internal/ast"
	"github.com/tactus-lang/tactus/internal/compiler"
	"github.com/tactus-lang/tactus/internal/emit"
	"github.com/tactus-lang/tactus/internal/registry"
	"github.com/tactus-lang/tactus/internal/store"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output string // output file path
	Check  bool   // verify emitted config against the runtime schema
	LogDB  string // compile-log database path
}

// CompileSummary is the success payload for the compile command.
type CompileSummary struct {
	Document  string `json:"document"`
	Timelines int    `json:"timelines"`
	Actions   int    `json:"actions"`
	Errors    int    `json:"errors"`
	Warnings  int    `json:"warnings"`
	Output    string `json:"output,omitempty"`
}

func (s CompileSummary) String() string {
	return fmt.Sprintf("compiled %s: %d timeline(s), %d action(s), %d error(s), %d warning(s)",
		s.Document, s.Timelines, s.Actions, s.Errors, s.Warnings)
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <tree.json>",
		Short: "Compile a parsed Tactus document to a runtime configuration",
		Long: `Compile a parsed Tactus document to a runtime configuration.

The input is the parser's JSON tree export. The compiler lowers it to IR,
validates it against the document's style and label imports, removes dead
timeline actions, and emits canonical configuration JSON. Diagnostics do
not suppress output: a configuration is produced even for broken
documents and should then be treated as provisional.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write configuration to file instead of stdout")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "verify the emitted configuration against the runtime schema")
	cmd.Flags().StringVar(&opts.LogDB, "log-db", "", "record this compilation in a compile-log database")

	return cmd
}

func runCompile(opts *CompileOptions, treePath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	result, err := compileDocument(opts, treePath, cmd, formatter)
	if err != nil {
		return err
	}

	if opts.Check {
		if err := emit.CheckSchema(result.Config); err != nil {
			return &ExitError{Code: ExitFailure, Message: "schema check failed", Err: err}
		}
		formatter.VerboseLog("schema check passed")
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, result.Config, 0o644); err != nil {
			return &ExitError{Code: ExitCommandError, Message: "writing output file", Err: err}
		}
	} else if opts.Format == "text" {
		fmt.Fprintln(formatter.Writer, string(result.Config))
	}

	if opts.LogDB != "" {
		if err := logCompilation(cmd.Context(), opts.LogDB, result); err != nil {
			return &ExitError{Code: ExitCommandError, Message: "recording compilation", Err: err}
		}
	}

	summary := summarize(result, opts.Output)
	if err := formatter.Success(summary, result.Diagnostics); err != nil {
		return err
	}

	if result.HasErrors() {
		return &ExitError{
			Code:    ExitFailure,
			Message: fmt.Sprintf("compilation of %s produced %d error(s)", summary.Document, summary.Errors),
		}
	}
	return nil
}

// compileDocument runs the pipeline stage by stage so registries can be
// populated between lowering and validation.
func compileDocument(opts *CompileOptions, treePath string, cmd *cobra.Command, formatter *OutputFormatter) (*compiler.Result, error) {
	data, err := os.ReadFile(treePath)
	if err != nil {
		return nil, &ExitError{Code: ExitCommandError, Message: "reading syntax tree", Err: err}
	}

	doc, err := ast.DecodeDocument(data)
	if err != nil {
		return nil, &ExitError{Code: ExitCommandError, Message: "decoding syntax tree", Err: err}
	}
	if doc.URI == "" {
		doc.URI = treePath
	}

	prog, err := compiler.Lower(doc)
	if err != nil {
		return nil, &ExitError{Code: ExitCommandError, Message: "lowering failed", Err: err}
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
	optimized := compiler.Optimize(prog)

	config, err := emit.Emit(optimized)
	if err != nil {
		return nil, &ExitError{Code: ExitCommandError, Message: "emit failed", Err: err}
	}

	formatter.VerboseLog("compiled %s: %d diagnostic(s)", doc.URI, len(diags))

	return &compiler.Result{
		Program:     optimized,
		Config:      config,
		Diagnostics: diags,
	}, nil
}

func summarize(result *compiler.Result, outputPath string) CompileSummary {
	summary := CompileSummary{
		Document: result.Program.DocumentURI,
		Output:   outputPath,
	}
	summary.Timelines = len(result.Program.Timelines)
	for _, tl := range result.Program.Timelines {
		summary.Actions += len(tl.Actions)
	}
	for _, d := range result.Diagnostics {
		if d.Severity == compiler.SeverityError {
			summary.Errors++
		} else {
			summary.Warnings++
		}
	}
	return summary
}

func logCompilation(ctx context.Context, dbPath string, result *compiler.Result) error {
	db, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	diagJSON, err := json.Marshal(result.Diagnostics)
	if err != nil {
		return fmt.Errorf("marshal diagnostics: %w", err)
	}

	summary := summarize(result, "")
	return db.WriteCompilation(ctx, store.Record{
		ID:           uuid.NewString(),
		DocumentURI:  result.Program.DocumentURI,
		CreatedAt:    time.Now().Unix(),
		ErrorCount:   summary.Errors,
		WarningCount: summary.Warnings,
		Config:       result.Config,
		Diagnostics:  string(diagJSON),
	})
}
