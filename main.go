/* Package main: a single-pass Forth cross-compiler.

The compiler reads a Forth source file, pulling in further sources through
INCLUDE, and writes threaded-code dictionary assembly on stdout: one
dictionary header per word, bodies as arrays of execution-token
references, inline code words copied through verbatim, and structured
control flow lowered to branches over freshly minted labels.

It is a compiler only: apart from the literals consumed by CONSTANT,
XALLOT, and [IF], no user code is ever executed, nothing is linked, and
bare tokens it does not recognize are assumed to name primitives of the
target runtime.

Two backends share one emission order and differ only in surface syntax:
att-asm32 writes 32-bit AT&T-syntax assembler, ca6502 writes a 6502
cross-assembler macro dialect with 16-bit cells. The arch name c is
reserved.
*/
package main

import (
	"context"
	"flag"
	"os"

	"github.com/jcorbin/gofourth/internal/logio"
)

func main() {
	var (
		arch    string
		defines string
		verbose bool
	)
	flag.StringVar(&arch, "arch", "", "target architecture (att-asm32 or ca6502)")
	flag.StringVar(&defines, "defines", "", "comma-separated [DEFINED] symbols")
	flag.BoolVar(&verbose, "verbose", false, "report tokens ignored in interpret mode")
	flag.Parse()

	log := logio.Logger{}
	log.SetOutput(os.Stderr)
	defer func() { os.Exit(log.ExitCode()) }()

	if arch == "" || flag.NArg() != 1 {
		flag.Usage()
		log.Errorf("expected -arch and exactly one source file")
		return
	}

	comp := New(
		WithArch(arch),
		WithDefines(defines),
		WithVerbose(verbose),
		WithOutput(os.Stdout),
		WithLogf(log.Leveledf("WARN")),
	)
	defer func() { log.ErrorIf(comp.Close()) }()

	if err := comp.Open(flag.Arg(0)); err != nil {
		log.Errorf("%v", err)
		return
	}

	log.ErrorIf(comp.Run(context.Background()))
}
