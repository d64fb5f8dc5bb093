package main

import (
	"io"
	"io/ioutil"
	"strings"

	"github.com/jcorbin/gofourth/internal/flushio"
)

// Option configures a Compiler under construction.
type Option interface{ apply(c *Compiler) }

var defaultOptions = Options(
	withOutput(ioutil.Discard),
	withArch("att-asm32"),
)

// Options flattens a group of options into one.
func Options(opts ...Option) Option {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil, noption:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, opt)
		}
	}
	switch len(res) {
	case 0:
		return noption{}
	case 1:
		return res[0]
	default:
		return res
	}
}

type noption struct{}

func (noption) apply(c *Compiler) {}

type options []Option

func (opts options) apply(c *Compiler) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(c)
		}
	}
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(c *Compiler) {
	c.logfn = logfn
}

type archOption string
type verboseOption bool
type inputOption struct{ io.Reader }
type outputOption struct{ io.Writer }
type definesOption []string

func withArch(name string) archOption     { return archOption(name) }
func withVerbose(v bool) verboseOption    { return verboseOption(v) }
func withInput(r io.Reader) inputOption   { return inputOption{r} }
func withOutput(w io.Writer) outputOption { return outputOption{w} }

// withDefines parses a comma-separated define list, dropping empty
// tokens.
func withDefines(csv string) definesOption {
	var res definesOption
	for _, tok := range strings.Split(csv, ",") {
		if tok != "" {
			res = append(res, tok)
		}
	}
	return res
}

func (a archOption) apply(c *Compiler) { c.arch = string(a) }

func (v verboseOption) apply(c *Compiler) { c.verbose = bool(v) }

func (i inputOption) apply(c *Compiler) { c.in.Push(i.Reader) }

func (o outputOption) apply(c *Compiler) {
	if c.out != nil {
		c.out.Flush()
	}
	c.out = flushio.NewWriteFlusher(o.Writer)
	if cl, ok := o.Writer.(io.Closer); ok {
		c.closers = append(c.closers, cl)
	}
}

func (d definesOption) apply(c *Compiler) {
	for _, tok := range d {
		c.defines[tok] = struct{}{}
	}
}
