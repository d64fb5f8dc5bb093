package fileinput

import (
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInput_Word(t *testing.T) {
	var in Input
	in.Push(strings.NewReader("  DUP *   SWAP\n\tDROP"))

	for _, expect := range []string{"DUP", "*", "SWAP", "DROP"} {
		require.NoError(t, in.SkipWS())
		w, err := in.Word()
		require.NoError(t, err)
		assert.Equal(t, expect, w)
	}

	require.NoError(t, in.SkipWS())
	_, err := in.Word()
	assert.Equal(t, io.EOF, err)
}

func TestInput_pushback(t *testing.T) {
	var in Input
	in.Push(strings.NewReader("   X"))

	require.NoError(t, in.SkipWS())
	r, err := in.Next()
	require.NoError(t, err)
	assert.Equal(t, 'X', r)

	in.Unread('Y')
	r, err = in.Next()
	require.NoError(t, err)
	assert.Equal(t, 'Y', r)
}

func TestInput_stacking(t *testing.T) {
	var in Input
	in.Push(strings.NewReader(" WORLD"))
	in.Push(strings.NewReader("HELLO "))

	w, err := in.Word()
	require.NoError(t, err)
	assert.Equal(t, "HELLO", w)

	require.NoError(t, in.SkipWS())
	w, err = in.Word()
	require.NoError(t, err)
	assert.Equal(t, "WORLD", w)
}

// A stream that runs dry mid-token pops back to the stream below and the
// token keeps accumulating there.
func TestInput_tokenAcrossPop(t *testing.T) {
	var in Input
	in.Push(strings.NewReader("CD "))
	in.Push(strings.NewReader("AB"))

	w, err := in.Word()
	require.NoError(t, err)
	assert.Equal(t, "ABCD", w)
}

func TestInput_trailingToken(t *testing.T) {
	var in Input
	in.Push(strings.NewReader("LAST"))

	w, err := in.Word()
	require.NoError(t, err)
	assert.Equal(t, "LAST", w)

	_, err = in.Word()
	assert.Equal(t, io.EOF, err)
}

func TestInput_StrBy(t *testing.T) {
	var in Input
	in.Push(strings.NewReader("a comment ) DUP"))

	s, found, err := in.StrBy(func(r rune) bool { return r == ')' })
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "a comment ", s)

	require.NoError(t, in.SkipWS())
	w, err := in.Word()
	require.NoError(t, err)
	assert.Equal(t, "DUP", w)
}

func TestInput_StrBy_eof(t *testing.T) {
	var in Input
	in.Push(strings.NewReader("dangling"))

	s, found, err := in.StrBy(func(r rune) bool { return r == '"' })
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "dangling", s)
}

func TestInput_LinesUntil(t *testing.T) {
	var in Input
	in.Push(strings.NewReader("    lda #0\n    rts\nEND-CODE\nNEXT-WORD"))

	lines, found, err := in.LinesUntil("END-CODE")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"    lda #0\n", "    rts\n"}, lines)

	require.NoError(t, in.SkipWS())
	w, err := in.Word()
	require.NoError(t, err)
	assert.Equal(t, "NEXT-WORD", w)
}

func TestInput_LinesUntil_flushesPending(t *testing.T) {
	var in Input
	in.Push(strings.NewReader("X line\nEND\n"))

	w, err := in.Word()
	require.NoError(t, err)
	assert.Equal(t, "X", w)
	require.NoError(t, in.SkipWS())

	lines, found, err := in.LinesUntil("END")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"l", "ine\n"}, lines)
}

func TestInput_LinesUntil_missingMarker(t *testing.T) {
	var in Input
	in.Push(strings.NewReader("    nop\n"))

	lines, found, err := in.LinesUntil("END-CODE")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, []string{"    nop\n"}, lines)
}

// Only the top stream is scanned for the marker line-wise, but running it
// dry continues the search in the stream below.
func TestInput_LinesUntil_popsThrough(t *testing.T) {
	var in Input
	in.Push(strings.NewReader("    tail\nEND-CODE\n"))
	in.Push(strings.NewReader("    head\n"))

	lines, found, err := in.LinesUntil("END-CODE")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"    head\n", "    tail\n"}, lines)
}

func TestInput_latin1(t *testing.T) {
	var in Input
	in.Push(strings.NewReader("\xe9"))

	r, err := in.Next()
	require.NoError(t, err)
	assert.Equal(t, rune(0xe9), r)
}

func TestInput_Open(t *testing.T) {
	dir, err := ioutil.TempDir("", "fileinput")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "a.fs")
	require.NoError(t, ioutil.WriteFile(path, []byte("HELLO\n"), 0644))

	var in Input
	require.NoError(t, in.Open(path))
	assert.Equal(t, path+":1", in.Loc().String())

	w, err := in.Word()
	require.NoError(t, err)
	assert.Equal(t, "HELLO", w)

	require.NoError(t, in.Close())
}

func TestInput_Open_missing(t *testing.T) {
	var in Input
	assert.Error(t, in.Open(filepath.Join("nonexistent", "nope.fs")))
}
