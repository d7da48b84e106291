package grammar

import (
	"braces.dev/errtrace"
	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/gouri/internal/errorutil"
)

// ParseURIReference parses s with the RFC 3986 URI-reference rule and returns the parse tree.
// The whole input must match. The empty string is a valid relative reference.
func ParseURIReference[T ~string | ~[]byte](s T) (*abnf.Node, error) {
	in := []byte(s)

	ns := abnf.NewNodes()
	defer ns.Free()

	if err := uriReference()(in, 0, ns); err != nil {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrMalformedInput, err))
	}

	n := ns.Best()
	if nl, il := n.Len(), len(in); nl < il {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrMalformedInput, "unexpected %q at offset %d", in[nl], nl))
	}
	return n, nil
}
