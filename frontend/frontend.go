// Package frontend ties the phases of the compiler front-end together:
// source text in, raw tree, symbol table, and elaborated tree out.
package frontend

import (
	"errors"
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/sable-lang/sable/lang/elaborate"
	"github.com/sable-lang/sable/lang/parser"
)

var log = commonlog.GetLogger("sable.frontend")

// Result bundles everything the front-end produces for one package.
type Result struct {
	Raw        *parser.Package
	Table      *elaborate.Table
	Elaborated *elaborate.Package
}

type config struct {
	tableTrace func(phase string, t *elaborate.Table)
}

type Option func(*config)

// WithTableTrace registers a hook that receives the symbol table after each
// builder pass. The driver uses it to print the table evolution as
// comments.
func WithTableTrace(fn func(phase string, t *elaborate.Table)) Option {
	return func(c *config) {
		c.tableTrace = fn
	}
}

// Process runs the full pipeline on one source unit. The package identifier
// is caller-provided, typically derived from the input file name.
func Process(pkgIdent, source string, opts ...Option) (*Result, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	p := parser.NewParser(pkgIdent, source)
	pkg, err := p.ParsePackage()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pkgIdent, err)
	}
	log.Debugf("parsed package %s: %d declarations", pkgIdent, len(pkg.Body))

	builder := elaborate.NewTableBuilder(pkg)
	builder.Trace = cfg.tableTrace
	table, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("build table for %s: %w", pkgIdent, err)
	}
	log.Debugf("built symbol table for %s", pkgIdent)

	elab := elaborate.NewElaborator(table)
	elaborated, err := elab.Elab(pkg)
	if err != nil {
		return nil, fmt.Errorf("elaborate %s: %w", pkgIdent, err)
	}
	log.Debugf("elaborated package %s", pkgIdent)

	return &Result{Raw: pkg, Table: table, Elaborated: elaborated}, nil
}

// ErrorSpan extracts the source span of a front-end error when one is
// attached. Resolution and semantic errors carry no span and report false.
func ErrorSpan(err error) (parser.Span, bool) {
	var lexErr *parser.LexError
	if errors.As(err, &lexErr) {
		return lexErr.Span, true
	}
	var parseErr *parser.ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Got.Span, true
	}
	return parser.Span{}, false
}
