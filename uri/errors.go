package uri

import (
	"errors"

	"github.com/ghettovoice/gouri/internal/errorutil"
	"github.com/ghettovoice/gouri/internal/grammar"
)

// Error is a URI grammar error.
// All errors returned by the parsing and rendering functions of the package wrap one of the Err* sentinels.
type Error string

func (e Error) Error() string { return string(e) }

func (Error) Grammar() bool { return true }

const (
	ErrEmptyScheme                 Error = "empty scheme"
	ErrEmptyAuthority              Error = "empty authority"
	ErrParsePort                   Error = "invalid port"
	ErrSchemeIllegalFirstCharacter Error = "scheme must start with a letter"
	ErrSchemeIllegalCharacter      Error = "illegal character in scheme"
	ErrUserinfoIllegalCharacter    Error = "illegal character in userinfo"
	ErrIllegalHostDefinition       Error = "illegal host definition"
	ErrIllegalIPvFuture            Error = "illegal IPvFuture literal"
	ErrIllegalIPv6                 Error = "illegal IPv6 literal"
	ErrHostIllegalCharacter        Error = "illegal character in host"
	ErrPathIllegalStart            Error = "path must not start with \"//\""
	ErrPathIllegalCharacter        Error = "illegal character in path"
	ErrQueryIllegalCharacter       Error = "illegal character in query"
	ErrFragmentIllegalCharacter    Error = "illegal character in fragment"
)

// Codec errors. They are returned unchanged by rendering,
// parsing remaps [ErrIllegalCharacter] to the error of the failed component.
const (
	ErrIllegalCharacter       = grammar.ErrIllegalCharacter
	ErrIllegalPercentEncoding = grammar.ErrIllegalPercentEncoding
)

// ErrMalformedInput is returned by [ParseStrict] when the input does not match the URI-reference grammar.
const ErrMalformedInput = grammar.ErrMalformedInput

// remapCharErr replaces the codec illegal character error with the component error.
func remapCharErr(err error, sentinel Error, s string) error {
	if errors.Is(err, grammar.ErrIllegalCharacter) {
		return errorutil.NewWrapperError(sentinel, "%q", s) //errtrace:skip
	}
	return err //errtrace:skip
}
