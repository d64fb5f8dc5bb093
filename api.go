package main

import (
	"context"
	"errors"
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/jcorbin/gofourth/internal/panicerr"
)

// New builds a Compiler over the given options.
func New(opts ...Option) *Compiler {
	c := &Compiler{defines: make(map[string]struct{})}
	defaultOptions.apply(c)
	Options(opts...).apply(c)
	return c
}

// Open pushes the named source file onto the compiler's input stack.
func (c *Compiler) Open(path string) error {
	return c.in.Open(path)
}

// Run compiles until input is exhausted, writing assembly to the
// configured output. Internal fatal paths surface as the returned error.
func (c *Compiler) Run(ctx context.Context) error {
	err := panicerr.Recover("compile", func() error {
		return c.run(ctx)
	})
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	var he haltError
	if errors.As(err, &he) {
		err = he.error
	}
	return err
}

// Close releases every input stream and owned output.
func (c *Compiler) Close() error {
	var errs *multierror.Error
	errs = multierror.Append(errs, c.in.Close())
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = multierror.Append(errs, c.closers[i].Close())
	}
	return errs.ErrorOrNil()
}

// WithArch selects the output backend by name.
func WithArch(name string) Option { return withArch(name) }

// WithDefines populates the [DEFINED] set from a comma-separated list.
func WithDefines(csv string) Option { return withDefines(csv) }

// WithInput pushes a source stream onto the input stack.
func WithInput(r io.Reader) Option { return withInput(r) }

// WithOutput directs generated assembly to w.
func WithOutput(w io.Writer) Option { return withOutput(w) }

// WithVerbose reports tokens dropped in interpret mode.
func WithVerbose(v bool) Option { return withVerbose(v) }

// WithLogf directs diagnostics to the given printf-style function.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return withLogfn(logfn) }
