package invocation

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Quote quotes s for a POSIX shell so that "sh -c" sees it as exactly one
// word. Strings that need no quoting are returned unchanged.
//
// syntax.Quote refuses control characters and invalid UTF-8 under
// LangPOSIX. Those strings are wrapped in single quotes instead, which keep
// every byte literal. Only a NUL byte cannot be passed to a process and is
// an error.
func Quote(s string) (string, error) {
	q, err := syntax.Quote(s, syntax.LangPOSIX)
	if err == nil {
		return q, nil
	}

	if !strings.ContainsRune(s, 0) {
		return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'", nil
	}
	return "", fmt.Errorf("cannot quote %q for the shell: %w", s, err)
}

// Join quotes every token and joins them with single spaces.
func Join(tokens []string) (string, error) {
	quoted := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		q, err := Quote(tok)
		if err != nil {
			return "", err
		}
		quoted = append(quoted, q)
	}
	return strings.Join(quoted, " "), nil
}
