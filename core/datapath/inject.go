// ABOUTME: Positional parameter substitution for queries and paths
// ABOUTME: Replaces $$par0$$..$$par9$$ tokens with caller-supplied values

package datapath

import (
	"regexp"
	"strings"

	"recipe-cook-api/core/errors"
)

// MaxParameters is the number of distinct positional tokens ($$par0$$..$$par9$$).
const MaxParameters = 10

var injectionToken = regexp.MustCompile(`\$\$par(\d)\$\$`)

// HasInjectionTokens reports whether s contains any $$parN$$ token.
func HasInjectionTokens(s string) bool {
	return injectionToken.MatchString(s)
}

// InjectParameters replaces every $$parN$$ token in s with params[N]. A token
// whose index is outside params is a MalformedInjectionStringError.
func InjectParameters(s string, params []string) (string, error) {
	matches := injectionToken.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s, nil
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		idx := int(s[m[2]] - '0')
		if idx >= len(params) {
			return "", &errors.MalformedInjectionStringError{
				Input:    s,
				Index:    idx,
				Provided: len(params),
			}
		}
		b.WriteString(s[last:m[0]])
		b.WriteString(params[idx])
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String(), nil
}
