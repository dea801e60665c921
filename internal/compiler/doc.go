// Package compiler implements the Tactus semantic pipeline: lowering the
// parsed syntax tree to IR, validating the IR against the document's
// registries, and optimizing it before emission.
//
// PIPELINE CONTRACT:
//
// Stages run in strict order and each is a pure function of its inputs:
//
//	Lower:    *ast.Document -> *ir.Program (total for well-formed trees;
//	          a tree the grammar could not have produced is a
//	          TransformError, which aborts the compilation)
//	Validate: (*ir.Program, registry.View) -> []Diagnostic (collect-all;
//	          never aborts, never mutates)
//	Optimize: *ir.Program -> *ir.Program (total, idempotent, pure filter)
//
// Validation is deliberately collect-all rather than fail-fast: every
// rule runs on every compilation so authors see all findings at once.
// Diagnostics never stop the pipeline; the caller receives the emitted
// configuration alongside them and decides whether to treat it as
// provisional.
//
// A compilation of one document is independent of any other. The only
// shared state the pipeline touches is the registry view, which supports
// concurrent readers.
package compiler
