package invocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mvdan.cc/sh/v3/shell"
)

// TestQuote_SafeWordsUnchanged verifies that plain tokens stay readable.
func TestQuote_SafeWordsUnchanged(t *testing.T) {
	for _, s := range []string{"docker", "run", "--rm", "-v", "/var/run/docker.sock:/var/run/docker.sock"} {
		q, err := Quote(s)
		require.NoError(t, err)
		assert.Equal(t, s, q)
	}
}

// TestQuote_SingleWord verifies that every quoted token is one shell word.
func TestQuote_SingleWord(t *testing.T) {
	for _, s := range []string{"", " ", "a b", "it's", `"x"`, "$(id)", "~", "é ü", "a;b|c",
		"a\tb", "l1\nl2", "caf\xe9", "\x1b[31m", "it's\nmulti"} {
		q, err := Quote(s)
		require.NoError(t, err, s)

		fields, err := shell.Fields(q, func(string) string { return "" })
		require.NoError(t, err, s)
		assert.Equal(t, []string{s}, fields, "quoted form %s", q)
	}
}

// TestQuote_ControlCharacters verifies that strings the POSIX quoter
// rejects are single-quoted with their bytes intact.
func TestQuote_ControlCharacters(t *testing.T) {
	q, err := Quote("l1\nl2")
	require.NoError(t, err)
	assert.Equal(t, "'l1\nl2'", q)

	q, err = Quote("it's\tx")
	require.NoError(t, err)
	assert.Equal(t, `'it'\''s`+"\tx'", q)

	_, err = Quote("nul\x00byte")
	assert.Error(t, err)
}

// TestJoin verifies that Join stops at the first unquotable token.
func TestJoin(t *testing.T) {
	s, err := Join([]string{"echo", "a b"})
	require.NoError(t, err)
	assert.Equal(t, "echo 'a b'", s)

	_, err = Join([]string{"echo", "\x00"})
	assert.Error(t, err)
}
