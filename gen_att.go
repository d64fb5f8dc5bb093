package main

import "strconv"

// attGen targets a 32-bit AT&T-syntax assembler. Cells are 32 bits wide
// and emitted with .int; dictionary headers are the HIGH_W / CODE_W macro
// forms whose chaining is handled on the assembler side, so only the
// symbol of the latest header needs tracking here for the epilog.
type attGen struct {
	*emitter
	last string // dictionary chain head, "0" until the first header
}

func newATTGen(e *emitter) codeGen { return &attGen{emitter: e, last: "0"} }

func init() {
	registerArch("att-asm32", newATTGen)
}

func (g *attGen) prolog() {
	g.print("    .text\n")
}

func (g *attGen) epilog() {
	g.printf("dict_head: .int %s\n", g.last)
}

func (g *attGen) header(macro, name string, tail string) {
	sym := wordSymbol(name)
	g.printf("%s %s %d %s %s\n", macro, sym, len(name), strconv.Quote(name), tail)
	g.last = "dict_" + sym
}

func (g *attGen) createWord(name string, immediate bool) {
	g.header("HIGH_W", name, flgs(immediate))
}

func (g *attGen) createCode(name string, immediate bool) {
	g.header("CODE_W", name, flgs(immediate))
}

func flgs(immediate bool) string {
	if immediate {
		return "flgs=1"
	}
	return "flgs=0"
}

func (g *attGen) closeDefinition() {}

func (g *attGen) cell(n int64) {
	g.printf("    .int %d\n", int32(n))
}

func (g *attGen) doLiteral(n int64) {
	g.emitWord("lit")
	g.cell(n)
}

func (g *attGen) doStringLiteral(s string) {
	g.printf("    .ascii %s\n", strconv.Quote(s))
}

func (g *attGen) emitWord(w string) {
	g.printf("    .int %s\n", wordSymbol(w))
}

func (g *attGen) emitLines(lines []string) {
	for _, line := range lines {
		g.print(line)
	}
}

func (g *attGen) referToLabel(label string) {
	g.printf("    .int %s\n", label)
}

func (g *attGen) emitLabel(label string) {
	g.printf("%s:\n", label)
}

func (g *attGen) createConstant(name string, val int64) {
	g.header("HIGH_W", name, "act=w_do_const")
	g.cell(val)
}

func (g *attGen) createVariable(name string, cells int) {
	g.header("HIGH_W", name, "act=w_do_var")
	for i := 0; i < cells; i++ {
		g.cell(0)
	}
}

func (g *attGen) allotSpace(bytes int64) {
	g.printf("    .space %d\n", bytes)
}
