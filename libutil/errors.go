package libutil

import (
	"errors"
	"strings"
)

// FormatErrorChain renders err and everything it wraps, root cause first.
//
// Multi-errors (Unwrap() []error) only follow their first branch.
func FormatErrorChain(err error) string {
	if err == nil {
		return ""
	}

	var chain []string
	for e := err; e != nil; e = unwrapFirst(e) {
		msg := e.Error()
		// Wrapped messages usually repeat their cause as "context: cause".
		if next := unwrapFirst(e); next != nil {
			msg = strings.TrimSuffix(msg, ": "+next.Error())
		}
		chain = append(chain, msg)
	}

	var sb strings.Builder
	for i := len(chain) - 1; i >= 0; i-- {
		if i != len(chain)-1 {
			sb.WriteString("    Which caused the following issue:\n")
		}
		sb.WriteString(chain[i])
		sb.WriteByte('\n')
	}
	return sb.String()
}

func unwrapFirst(err error) error {
	if next := errors.Unwrap(err); next != nil {
		return next
	}
	if multi, ok := err.(interface{ Unwrap() []error }); ok {
		if errs := multi.Unwrap(); len(errs) > 0 {
			return errs[0]
		}
	}
	return nil
}
