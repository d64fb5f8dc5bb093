package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jcorbin/gofourth/internal/fileinput"
	"github.com/jcorbin/gofourth/internal/flushio"
)

// Compiler drives a single compilation run. It pulls whitespace-delimited
// words off the input stack and routes each one: through the
// conditional-compilation filter first, then to an active word, the
// numeric literal path, or the word-reference path.
type Compiler struct {
	logging
	in  fileinput.Input
	out flushio.WriteFlusher
	gen codeGen

	arch    string
	verbose bool

	compiling     bool
	nextImmediate bool

	// stack carries compile-time numeric values between literals and the
	// words that consume them: CONSTANT, XALLOT, [IF].
	stack []int64

	// ctrl holds pending branch targets for IF, BEGIN, and CASE. ctrlDo
	// holds those of DO alone, kept apart so that LEAVE can always see
	// its loop's forward target past any intervening IF.
	ctrl   []string
	ctrlDo []string

	skip    []skipState
	defines map[string]struct{}

	nextLabel int

	closers []io.Closer
}

func (c *Compiler) run(ctx context.Context) error {
	gen, err := openGen(c.arch, &emitter{out: c.out, halt: c.halt})
	if err != nil {
		return err
	}
	c.gen = gen

	gen.prolog()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.haltif(c.in.SkipWS())
		w, err := c.in.Word()
		if err == io.EOF {
			break
		}
		c.haltif(err)
		c.compileWord(w)
	}
	if err := c.checkBalance(); err != nil {
		return err
	}
	gen.epilog()
	return c.out.Flush()
}

func (c *Compiler) compileWord(w string) {
	upper := strings.ToUpper(w)
	if !c.filter(upper) {
		return
	}
	if act, active := activeWords[upper]; active {
		act(c)
		return
	}
	if n, isNumber := c.number(w); isNumber {
		c.doNumber(n)
		return
	}
	if c.compiling {
		c.gen.emitWord(w)
		return
	}
	// a bare token in interpret mode names a runtime primitive the
	// compiler has no business knowing about
	if c.verbose {
		c.logf("?", "ignoring %q at %v", w, c.in.Loc())
	}
}

// number classifies w as a numeric literal: 0x for base 16, 0b for base 2,
// base 10 otherwise. A malformed explicit-radix literal is fatal; a
// malformed decimal simply is not a number.
func (c *Compiler) number(w string) (int64, bool) {
	if strings.HasPrefix(w, "0x") {
		n, err := strconv.ParseInt(w[2:], 16, 64)
		if err != nil {
			c.halt(numberError{w, err})
		}
		return n, true
	}
	if strings.HasPrefix(w, "0b") {
		n, err := strconv.ParseInt(w[2:], 2, 64)
		if err != nil {
			c.halt(numberError{w, err})
		}
		return n, true
	}
	n, err := strconv.ParseInt(w, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (c *Compiler) doNumber(n int64) {
	if c.compiling {
		c.gen.doLiteral(n)
	} else {
		c.push(n)
	}
}

func (c *Compiler) push(n int64) { c.stack = append(c.stack, n) }

func (c *Compiler) pop(word string) int64 {
	n := len(c.stack)
	if n == 0 {
		c.halt(underflowError(word))
	}
	v := c.stack[n-1]
	c.stack = c.stack[:n-1]
	return v
}

// name reads the next token for word, which must exist.
func (c *Compiler) name(word string) string {
	c.haltif(c.in.SkipWS())
	w, err := c.in.Word()
	if err == io.EOF {
		c.halt(syntaxError(word + ": expected a name"))
	}
	c.haltif(err)
	return w
}

// label mints a fresh branch-target label.
func (c *Compiler) label() string {
	c.nextLabel++
	return fmt.Sprintf("_L%03d", c.nextLabel)
}

func (c *Compiler) checkBalance() error {
	if n := len(c.ctrl) + len(c.ctrlDo); n > 0 {
		return syntaxError(fmt.Sprintf("%d unresolved control-flow construct(s) at end of input", n))
	}
	if len(c.skip) > 0 {
		return syntaxError("[IF] without [THEN] at end of input")
	}
	return nil
}

func (c *Compiler) halt(err error) {
	// ignore any panics while trying to flush output
	func() {
		defer func() { recover() }()
		if c.out != nil {
			c.out.Flush()
		}
	}()

	// ignore any panics while logging
	func() {
		defer func() { recover() }()
		c.logf("#", "fatal: %v at %v", err, c.in.Loc())
	}()

	panic(haltError{err})
}

func (c *Compiler) haltif(err error) {
	if err != nil {
		c.halt(err)
	}
}

type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}
func (err haltError) Unwrap() error { return err.error }

type logging struct {
	logfn func(mess string, args ...interface{})
}

func (log logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}
