package main

import (
	"fmt"

	"github.com/jcorbin/gofourth/internal/flushio"
)

// codeGen is the backend surface the driver compiles through. Both
// backends emit the same logical directive sequence in the same order;
// only the surface syntax differs, so none of them may leak syntactic
// knowledge back into the driver.
type codeGen interface {
	// prolog emits the run-once header before any definitions.
	prolog()
	// epilog emits the dictionary-head pointer after the last definition.
	epilog()

	// createWord emits a colon-word dictionary header.
	createWord(name string, immediate bool)
	// createCode emits a code-word dictionary header; the caller follows
	// up with inline assembly through emitLines.
	createCode(name string, immediate bool)
	// closeDefinition marks the end of a word body.
	closeDefinition()

	// doLiteral emits a reference to the lit primitive followed by n
	// truncated to the backend's cell width.
	doLiteral(n int64)
	// doStringLiteral emits s as raw bytes into the current word body.
	doStringLiteral(s string)
	// emitWord emits an execution-token reference to the named word.
	emitWord(w string)
	// emitLines writes already-prepared source lines verbatim.
	emitLines(lines []string)
	// referToLabel emits a cell-width reference to a compile-time label.
	referToLabel(label string)
	// emitLabel places label at the current output position.
	emitLabel(label string)

	// createConstant emits a header whose action is do_const, followed by
	// the value cell.
	createConstant(name string, val int64)
	// createVariable emits a header whose action is do_var, followed by
	// that many zero cells.
	createVariable(name string, cells int)
	// allotSpace reserves uninitialized space.
	allotSpace(bytes int64)
}

// emitter funnels backend output through one write path so that a write
// failure aborts the run exactly once.
type emitter struct {
	out  flushio.WriteFlusher
	halt func(error)
}

func (e *emitter) print(s string) {
	if _, err := e.out.Write([]byte(s)); err != nil {
		e.halt(err)
	}
}

func (e *emitter) printf(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(e.out, format, args...); err != nil {
		e.halt(err)
	}
}

// genFactory builds a backend over an emitter. A nil factory reserves the
// name: the arch is recognized but has no backend.
type genFactory func(e *emitter) codeGen

var archGens = map[string]genFactory{}

func registerArch(name string, f genFactory) {
	archGens[name] = f
}

func openGen(arch string, e *emitter) (codeGen, error) {
	f, known := archGens[arch]
	if !known {
		return nil, fmt.Errorf("unknown arch %q", arch)
	}
	if f == nil {
		return nil, fmt.Errorf("arch %q: %w", arch, errNotSupported)
	}
	return f(e), nil
}

func init() {
	// reserved: accepted on the command line, no backend behind it
	registerArch("c", nil)
}
