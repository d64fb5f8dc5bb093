// Package logio implements a small leveled diagnostic log that remembers
// whether an error was ever reported, for use as a process exit code.
package logio

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// Logger writes leveled messages to an output stream. The zero value
// discards everything until SetOutput is called.
type Logger struct {
	sync.Mutex
	out      io.Writer
	buf      bytes.Buffer
	exitCode int
}

// SetOutput sets the logger's output stream.
func (log *Logger) SetOutput(w io.Writer) {
	log.Lock()
	defer log.Unlock()
	log.out = w
}

// Leveledf returns a printf-style function that logs under the given
// level prefix.
func (log *Logger) Leveledf(level string) func(mess string, args ...interface{}) {
	return func(mess string, args ...interface{}) { log.Printf(level, mess, args...) }
}

// Printf logs one message under the given level prefix, terminating it
// with a newline if the message lacks one.
func (log *Logger) Printf(level, mess string, args ...interface{}) {
	log.Lock()
	defer log.Unlock()
	log.printf(level, mess, args...)
}

// Errorf logs under the ERROR level and latches a non-zero exit code.
func (log *Logger) Errorf(mess string, args ...interface{}) {
	log.Lock()
	defer log.Unlock()
	log.printf("ERROR", mess, args...)
	log.exitCode = 1
}

// ErrorIf is a convenience for the common tail call: a nil err is a no-op.
func (log *Logger) ErrorIf(err error) {
	if err != nil {
		log.Errorf("%+v", err)
	}
}

// ExitCode reports 1 if any error has been logged, 0 otherwise.
func (log *Logger) ExitCode() int {
	log.Lock()
	defer log.Unlock()
	return log.exitCode
}

func (log *Logger) printf(level, mess string, args ...interface{}) {
	if log.out == nil {
		return
	}
	if level != "" {
		log.buf.WriteString(level)
		log.buf.WriteString(": ")
	}
	if len(args) > 0 {
		fmt.Fprintf(&log.buf, mess, args...)
	} else {
		log.buf.WriteString(mess)
	}
	if b := log.buf.Bytes(); len(b) > 0 && b[len(b)-1] != '\n' {
		log.buf.WriteByte('\n')
	}
	log.buf.WriteTo(log.out)
}
