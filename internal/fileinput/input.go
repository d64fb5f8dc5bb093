// Package fileinput reads whitespace-separated words through a stack of
// byte streams.
//
// The top of the stack is the active stream; exhausting it pops back to
// the stream below, so an INCLUDE-style directive simply pushes a new
// stream and reading resumes in the old one when the new one runs dry. A
// short pushback buffer sits above the stack so that SkipWS can hand the
// first non-blank character back to the next consumer.
package fileinput

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hashicorp/go-multierror"
)

// Location names a line in an input stream.
type Location struct {
	Name string
	Line int
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }

type reader struct {
	*bufio.Reader
	loc Location
	cl  io.Closer
}

// Input is a stack of open streams plus the pushback buffer. The zero
// value is empty and ready to use.
type Input struct {
	stack   []*reader
	pending string
}

// Open pushes a stream reading from the named file. Streams already on the
// stack are left untouched.
func (in *Input) Open(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	in.push(f, path, f)
	return nil
}

// Push pushes an arbitrary stream, named by its Name method when it has
// one.
func (in *Input) Push(r io.Reader) {
	cl, _ := r.(io.Closer)
	in.push(r, nameOf(r), cl)
}

func (in *Input) push(r io.Reader, name string, cl io.Closer) {
	in.stack = append(in.stack, &reader{
		Reader: bufio.NewReader(r),
		loc:    Location{Name: name, Line: 1},
		cl:     cl,
	})
}

// CloseTop pops the active stream, reporting whether there was one to pop.
func (in *Input) CloseTop() (bool, error) {
	n := len(in.stack)
	if n == 0 {
		return false, nil
	}
	top := in.stack[n-1]
	in.stack = in.stack[:n-1]
	if top.cl != nil {
		return true, top.cl.Close()
	}
	return true, nil
}

// Close pops and closes every remaining stream.
func (in *Input) Close() error {
	var errs *multierror.Error
	for {
		popped, err := in.CloseTop()
		errs = multierror.Append(errs, err)
		if !popped {
			break
		}
	}
	return errs.ErrorOrNil()
}

// Loc reports the position of the active stream.
func (in *Input) Loc() Location {
	if n := len(in.stack); n > 0 {
		return in.stack[n-1].loc
	}
	return Location{Name: "<eof>"}
}

func (in *Input) top() *reader {
	if n := len(in.stack); n > 0 {
		return in.stack[n-1]
	}
	return nil
}

// Next returns the next character: from the pushback buffer first, then
// from the active stream. Stream bytes are widened as Latin-1. An
// exhausted stream is popped and reading continues in the stream below;
// when the stack empties Next returns io.EOF.
func (in *Input) Next() (rune, error) {
	if in.pending != "" {
		r, size := utf8.DecodeRuneInString(in.pending)
		in.pending = in.pending[size:]
		return r, nil
	}
	for {
		top := in.top()
		if top == nil {
			return 0, io.EOF
		}
		b, err := top.ReadByte()
		if err == io.EOF {
			if _, cerr := in.CloseTop(); cerr != nil {
				return 0, cerr
			}
			continue
		}
		if err != nil {
			return 0, err
		}
		if b == '\n' {
			top.loc.Line++
		}
		return rune(b), nil
	}
}

// Unread pushes r back so the next Next returns it again.
func (in *Input) Unread(r rune) {
	in.pending = string(r) + in.pending
}

// SkipWS consumes blank characters, leaving the first non-blank one in the
// pushback buffer. Running out of input is not an error.
func (in *Input) SkipWS() error {
	for {
		r, err := in.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if !unicode.IsSpace(r) {
			in.Unread(r)
			return nil
		}
	}
}

// StrBy collects characters up to the first one for which stop holds; that
// character is consumed and discarded, and found reports whether it was
// seen. At end of input StrBy returns whatever accumulated, or io.EOF when
// that is nothing.
func (in *Input) StrBy(stop func(rune) bool) (s string, found bool, err error) {
	var sb strings.Builder
	for {
		r, err := in.Next()
		if err == io.EOF {
			if sb.Len() > 0 {
				return sb.String(), false, nil
			}
			return "", false, io.EOF
		}
		if err != nil {
			return sb.String(), false, err
		}
		if stop(r) {
			return sb.String(), true, nil
		}
		sb.WriteRune(r)
	}
}

// Word returns the next whitespace-delimited token, or io.EOF once every
// stream is exhausted. The trailing delimiter is consumed and discarded.
func (in *Input) Word() (string, error) {
	s, _, err := in.StrBy(unicode.IsSpace)
	return s, err
}

// LinesUntil returns raw lines, trailing newlines intact, read from the
// active stream until one begins with marker; the marker line is consumed
// and not returned. Pushback content, if any, is flushed as the first
// element. Exhausted streams are popped and the search continues below;
// found reports whether the marker was ever seen.
func (in *Input) LinesUntil(marker string) (lines []string, found bool, err error) {
	if in.pending != "" {
		lines = append(lines, in.pending)
		in.pending = ""
	}
	for {
		top := in.top()
		if top == nil {
			return lines, false, nil
		}
		line, err := top.ReadString('\n')
		if line != "" {
			top.loc.Line++
			if strings.HasPrefix(line, marker) {
				return lines, true, nil
			}
			lines = append(lines, line)
		}
		if err == io.EOF {
			if _, cerr := in.CloseTop(); cerr != nil {
				return lines, false, cerr
			}
			continue
		}
		if err != nil {
			return lines, false, err
		}
	}
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
