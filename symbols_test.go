package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_wordSymbol(t *testing.T) {
	for _, tc := range []struct {
		word   string
		symbol string
	}{
		{"DUP", "w_DUP"},
		{"dup", "w_dup"},
		{"*", "w_star"},
		{"<", "w_from"},
		{">", "w_to"},
		{"=", "w_equals"},
		{"!", "w_store"},
		{"@", "w_fetch"},
		{":", "w_colon"},
		{";", "w_semicolon"},
		{"0<", "w_0from"},
		{"1+", "w_1plus"},
		{"+!", "w_plus_store"},
		{"<#", "w_from_pound"},
		{"2>R", "w_2to_R"},
		{"S\"", "w_Squote"},
		{".", "w_dot"},
		{"U.R", "w_Udot_R"},
		{"exit", "w_exit"},
		{"2to_r", "w_2to_r"},
		{"?DUP", "w_question_DUP"},
	} {
		t.Run(tc.word, func(t *testing.T) {
			assert.Equal(t, tc.symbol, wordSymbol(tc.word))
		})
	}
}

func Test_wordSymbol_injective(t *testing.T) {
	words := []string{
		"DUP", "DROP", "SWAP", "OVER", "ROT",
		"+", "-", "*", "/", "<", ">", "=",
		"+!", "!", "@", "0<", "0=", "1+", "1-",
		"<#", "#>", "#", "#S", "S\"", ".\"", ".", ".S",
		"['],", "[']", "2>R", "2R>", "R>", ">R",
	}
	seen := make(map[string]string, len(words))
	for _, w := range words {
		sym := wordSymbol(w)
		if prior, dup := seen[sym]; dup {
			t.Errorf("collision: %q and %q both mangle to %q", prior, w, sym)
		}
		seen[sym] = w
	}
}

// Every mapped symbol character must produce a token of lowercase letters,
// with underscores joining multi-part names like open_paren.
func Test_symbolNames(t *testing.T) {
	assert.Len(t, symbolNames, 30)
	for r, name := range symbolNames {
		for _, c := range name {
			if !(c == '_' || ('a' <= c && c <= 'z')) {
				t.Errorf("symbol %q maps to non-alphabetic token %q", r, name)
			}
		}
	}
}
