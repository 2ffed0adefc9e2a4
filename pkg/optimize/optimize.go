// Package optimize is the embedding surface of the Tern whole-program
// optimizer. The surrounding compiler hands it a fully-linked program IR;
// on return, reference-typed slots may carry narrower declared types and
// cast / instance-of / call expressions may have been simplified.
package optimize

import (
	"github.com/funvibe/tern/internal/config"
	"github.com/funvibe/tern/internal/ir"
	"github.com/funvibe/tern/internal/pipeline"
	"github.com/funvibe/tern/internal/tighten"
)

// Run applies the optimizer with default options and reports whether the
// program was modified.
func Run(p *ir.Program) bool {
	return RunWithOptions(p, config.Options{})
}

// RunWithOptions applies the optimizer with the given options.
func RunWithOptions(p *ir.Program, opts config.Options) bool {
	ctx := pipeline.NewContext(p, opts)
	pipeline.New(tighten.NewProcessor()).Run(ctx)
	return ctx.Changed
}
