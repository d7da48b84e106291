// Package grammar implements the RFC 3986 character classes, the percent-encoding codec,
// the IP-literal predicates and the URI-reference ABNF parser used by the uri package.
package grammar

//go:generate go tool errtrace -w .

import (
	"github.com/ghettovoice/gouri/internal/errorutil"
)

type Error string

func (e Error) Error() string { return string(e) }

func (Error) Grammar() bool { return true }

const (
	ErrIllegalCharacter       Error = "illegal character"
	ErrIllegalPercentEncoding Error = "illegal percent-encoding"
	ErrMalformedInput         Error = "malformed input"
)

func newIllegalCharErr(s string, pos int) error {
	return errorutil.NewWrapperError(ErrIllegalCharacter, "%q at offset %d in %q", s[pos], pos, s) //errtrace:skip
}

func newIllegalPctEncErr(s string, pos int) error {
	return errorutil.NewWrapperError(ErrIllegalPercentEncoding, "at offset %d in %q", pos, s) //errtrace:skip
}
