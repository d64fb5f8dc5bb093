package main

import (
	"fmt"
	"io"
	"unicode"
)

// activeWords maps the uppercase spelling of every word the compiler acts
// on to its action. Everything else is a literal, a word reference, or
// noise.
var activeWords = map[string]func(*Compiler){
	":":              (*Compiler).colon,
	";":              (*Compiler).semicolon,
	"CODE":           (*Compiler).codeWord,
	"HEADLESSCODE":   (*Compiler).headlessCode,
	"VERBATIM":       (*Compiler).verbatim,
	"(":              (*Compiler).comment,
	"CONSTANT":       (*Compiler).constant,
	"VARIABLE":       (*Compiler).variable,
	"2VARIABLE":      (*Compiler).twoVariable,
	"XALLOT":         (*Compiler).xallot,
	"INCLUDE":        (*Compiler).include,
	"NEXT_IMMEDIATE": (*Compiler).nextImm,
	"[DEFINED]":      (*Compiler).defined,
	"[IF]":           (*Compiler).condIf,
	`S"`:             (*Compiler).sQuote,
	`."`:             (*Compiler).dotQuote,
	`ABORT"`:         (*Compiler).abortQuote,
	"[']":            (*Compiler).bracketTick,
	"IMMEDIATE":      (*Compiler).immediate,

	"IF":      (*Compiler).compIf,
	"ELSE":    (*Compiler).compElse,
	"THEN":    (*Compiler).compThen,
	"BEGIN":   (*Compiler).begin,
	"WHILE":   (*Compiler).while,
	"REPEAT":  (*Compiler).repeat,
	"UNTIL":   (*Compiler).until,
	"AGAIN":   (*Compiler).again,
	"DO":      (*Compiler).compDo,
	"LEAVE":   (*Compiler).leave,
	"LOOP":    (*Compiler).loop,
	"+LOOP":   (*Compiler).plusLoop,
	"CASE":    (*Compiler).compCase,
	"OF":      (*Compiler).of,
	"ENDOF":   (*Compiler).endof,
	"ENDCASE": (*Compiler).endcase,
}

// colon opens a new definition; everything up to ; compiles into its body.
func (c *Compiler) colon() {
	name := c.name(":")
	c.gen.createWord(name, c.nextImmediate)
	c.nextImmediate = false
	c.compiling = true
}

func (c *Compiler) semicolon() {
	c.gen.emitWord("exit")
	c.gen.closeDefinition()
	c.compiling = false
}

// codeWord compiles a primitive: a dictionary header followed by inline
// assembly copied through to END-CODE, with the runtime's NEXT appended.
func (c *Compiler) codeWord() {
	name := c.name("CODE")
	c.gen.createCode(name, c.nextImmediate)
	c.nextImmediate = false
	lines := c.rawLines("CODE", "END-CODE")
	lines = append(lines, "    NEXT\n")
	c.gen.emitLines(lines)
	c.gen.closeDefinition()
}

// headlessCode copies inline assembly through with no dictionary header
// and no NEXT, for support routines the dictionary never names.
func (c *Compiler) headlessCode() {
	c.gen.emitLines(c.rawLines("HEADLESSCODE", "END-CODE"))
}

func (c *Compiler) verbatim() {
	c.gen.emitLines(c.rawLines("VERBATIM", "END-VERBATIM"))
}

func (c *Compiler) rawLines(word, marker string) []string {
	lines, found, err := c.in.LinesUntil(marker)
	c.haltif(err)
	if !found {
		c.halt(syntaxError(word + ": missing " + marker))
	}
	return lines
}

func (c *Compiler) comment() {
	if _, _, err := c.in.StrBy(func(r rune) bool { return r == ')' }); err != nil && err != io.EOF {
		c.halt(err)
	}
}

func (c *Compiler) constant() {
	name := c.name("CONSTANT")
	c.gen.createConstant(name, c.pop("CONSTANT"))
}

func (c *Compiler) variable() {
	c.gen.createVariable(c.name("VARIABLE"), 1)
}

func (c *Compiler) twoVariable() {
	c.gen.createVariable(c.name("2VARIABLE"), 2)
}

func (c *Compiler) xallot() {
	n := c.pop("XALLOT")
	if n < 0 {
		c.halt(syntaxError(fmt.Sprintf("XALLOT: negative size %d", n)))
	}
	c.gen.allotSpace(n)
}

func (c *Compiler) include() {
	c.haltif(c.in.Open(c.name("INCLUDE")))
}

func (c *Compiler) nextImm() {
	c.nextImmediate = true
}

func (c *Compiler) immediate() {
	c.halt(fmt.Errorf("IMMEDIATE: %w", errUnimplemented))
}

// quoted reads a string body for word: the blank ending word and at most
// one further blank are dropped, and the body runs to the closing double
// quote.
func (c *Compiler) quoted(word string) string {
	r, err := c.in.Next()
	if err == io.EOF {
		c.halt(syntaxError(word + ": unterminated string"))
	}
	c.haltif(err)
	if !unicode.IsSpace(r) {
		c.in.Unread(r)
	}
	s, found, err := c.in.StrBy(func(r rune) bool { return r == '"' })
	if err != nil && err != io.EOF {
		c.halt(err)
	}
	if !found {
		c.halt(syntaxError(word + ": unterminated string"))
	}
	return s
}

// compileString lays a string down inline: jump over the bytes, then push
// their address and length.
func (c *Compiler) compileString(word string) {
	s := c.quoted(word)
	sl, bt := c.label(), c.label()
	c.gen.emitWord("branch")
	c.gen.referToLabel(bt)
	c.gen.emitLabel(sl)
	c.gen.doStringLiteral(s)
	c.gen.emitLabel(bt)
	c.gen.emitWord("lit")
	c.gen.referToLabel(sl)
	c.gen.doLiteral(int64(len(s)))
}

func (c *Compiler) sQuote() {
	c.compileString(`S"`)
}

func (c *Compiler) dotQuote() {
	c.compileString(`."`)
	c.gen.emitWord("type")
}

// abortQuote gates on a popped flag: fall through when clear, otherwise
// print the message and abort.
func (c *Compiler) abortQuote() {
	s := c.quoted(`ABORT"`)
	cont, abort, sl := c.label(), c.label(), c.label()
	c.gen.emitWord("qbranch")
	c.gen.referToLabel(cont)
	c.gen.emitWord("branch")
	c.gen.referToLabel(abort)
	c.gen.emitLabel(sl)
	c.gen.doStringLiteral(s)
	c.gen.emitLabel(abort)
	c.gen.emitWord("lit")
	c.gen.referToLabel(sl)
	c.gen.doLiteral(int64(len(s)))
	c.gen.emitWord("type")
	c.gen.emitWord("cr")
	c.gen.emitWord("abort")
	c.gen.emitLabel(cont)
}

// bracketTick compiles the execution token of the following word as a
// literal.
func (c *Compiler) bracketTick() {
	w := c.name("[']")
	c.gen.emitWord("lit")
	c.gen.emitWord(w)
}
