package compiler

import (
	"github.com/tactus-lang/tactus/internal/ast"
	"github.com/tactus-lang/tactus/internal/emit"
	"github.com/tactus-lang/tactus/internal/ir"
	"github.com/tactus-lang/tactus/internal/registry"
)

// Result is the output of one compilation: the optimized IR, the emitted
// runtime configuration, and every diagnostic the validator collected.
//
// Config is produced even when Diagnostics contains errors; a non-empty
// error list means the caller should treat the configuration as
// provisional, not that compilation aborted.
type Result struct {
	Program     *ir.Program
	Config      []byte
	Diagnostics []Diagnostic
}

// HasErrors reports whether any collected diagnostic is error severity.
func (r *Result) HasErrors() bool {
	return HasErrors(r.Diagnostics)
}

// Run executes the full pipeline on one document: lower, validate,
// optimize, emit. The stages are synchronous and side-effect-free apart
// from reading the registry view; a compilation is independent of any
// other in flight.
//
// The returned error is terminal for this compilation attempt: either a
// *TransformError (parser/compiler contract violation) or an *emit.EmitError
// (IR value the output schema cannot represent). Validator findings are
// never returned as errors.
func Run(doc *ast.Document, reg registry.View) (*Result, error) {
	prog, err := Lower(doc)
	if err != nil {
		return nil, err
	}

	diags := Validate(prog, reg)
	optimized := Optimize(prog)

	config, err := emit.Emit(optimized)
	if err != nil {
		return nil, err
	}

	return &Result{
		Program:     optimized,
		Config:      config,
		Diagnostics: diags,
	}, nil
}
