package main

// The control-flow words compile structured source into forward and
// backward label references. Forward targets live on compile-time stacks
// until the word that places them; every label is minted fresh.

func (c *Compiler) pushCtrl(l string) { c.ctrl = append(c.ctrl, l) }

func (c *Compiler) popCtrl(word string) string {
	n := len(c.ctrl)
	if n == 0 {
		c.halt(underflowError(word))
	}
	l := c.ctrl[n-1]
	c.ctrl = c.ctrl[:n-1]
	return l
}

func (c *Compiler) peekCtrl(word string) string {
	n := len(c.ctrl)
	if n == 0 {
		c.halt(underflowError(word))
	}
	return c.ctrl[n-1]
}

func (c *Compiler) pushDo(l string) { c.ctrlDo = append(c.ctrlDo, l) }

func (c *Compiler) popDo(word string) string {
	n := len(c.ctrlDo)
	if n == 0 {
		c.halt(underflowError(word))
	}
	l := c.ctrlDo[n-1]
	c.ctrlDo = c.ctrlDo[:n-1]
	return l
}

func (c *Compiler) peekDo(word string) string {
	n := len(c.ctrlDo)
	if n == 0 {
		c.halt(underflowError(word))
	}
	return c.ctrlDo[n-1]
}

func (c *Compiler) compIf() {
	l := c.label()
	c.pushCtrl(l)
	c.gen.emitWord("qbranch")
	c.gen.referToLabel(l)
}

func (c *Compiler) compElse() {
	l1 := c.popCtrl("ELSE")
	l2 := c.label()
	c.pushCtrl(l2)
	c.gen.emitWord("branch")
	c.gen.referToLabel(l2)
	c.gen.emitLabel(l1)
}

func (c *Compiler) compThen() {
	c.gen.emitLabel(c.popCtrl("THEN"))
}

func (c *Compiler) begin() {
	l := c.label()
	c.pushCtrl(l)
	c.gen.emitLabel(l)
}

// while turns its BEGIN label back up so that REPEAT finds the loop head
// above the exit target.
func (c *Compiler) while() {
	lb := c.popCtrl("WHILE")
	le := c.label()
	c.pushCtrl(le)
	c.pushCtrl(lb)
	c.gen.emitWord("qbranch")
	c.gen.referToLabel(le)
}

func (c *Compiler) repeat() {
	lb := c.popCtrl("REPEAT")
	le := c.popCtrl("REPEAT")
	c.gen.emitWord("branch")
	c.gen.referToLabel(lb)
	c.gen.emitLabel(le)
}

func (c *Compiler) until() {
	c.gen.emitWord("qbranch")
	c.gen.referToLabel(c.popCtrl("UNTIL"))
}

func (c *Compiler) again() {
	c.gen.emitWord("branch")
	c.gen.referToLabel(c.popCtrl("AGAIN"))
}

func (c *Compiler) compDo() {
	lb, lf := c.label(), c.label()
	c.pushDo(lb)
	c.pushDo(lf)
	c.gen.emitWord("2to_r")
	c.gen.emitLabel(lb)
}

func (c *Compiler) leave() {
	c.gen.emitWord("branch")
	c.gen.referToLabel(c.peekDo("LEAVE"))
}

func (c *Compiler) loop()     { c.finishLoop("LOOP", "do_loop1") }
func (c *Compiler) plusLoop() { c.finishLoop("+LOOP", "do_plus_loop1") }

func (c *Compiler) finishLoop(word, prim string) {
	lf := c.popDo(word)
	lb := c.popDo(word)
	c.gen.emitWord(prim)
	c.gen.referToLabel(lb)
	c.gen.emitLabel(lf)
	c.gen.emitWord("unloop")
}

func (c *Compiler) compCase() {
	c.pushCtrl(c.label())
}

func (c *Compiler) of() {
	ls := c.label()
	c.pushCtrl(ls)
	c.gen.emitWord("over")
	c.gen.emitWord("=")
	c.gen.emitWord("qbranch")
	c.gen.referToLabel(ls)
	c.gen.emitWord("drop")
}

func (c *Compiler) endof() {
	ls := c.popCtrl("ENDOF")
	le := c.peekCtrl("ENDOF")
	c.gen.emitWord("branch")
	c.gen.referToLabel(le)
	c.gen.emitLabel(ls)
}

func (c *Compiler) endcase() {
	le := c.popCtrl("ENDCASE")
	c.gen.emitWord("drop")
	c.gen.emitLabel(le)
}
