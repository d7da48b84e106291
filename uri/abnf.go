package uri

import (
	"slices"

	"braces.dev/errtrace"
	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/gouri/internal/errorutil"
	"github.com/ghettovoice/gouri/internal/grammar"
)

var pathRules = []string{"path-abempty", "path-absolute", "path-noscheme", "path-rootless", "path-empty"}

// FromABNF creates a URI from an ABNF node built with the RFC 3986 rule names.
//
// The captured "scheme", "authority", "path-*", "query" and "fragment" nodes are checked
// the same way as the components of [Parse].
// End users usually don't need to use this function directly and should use [Parse] instead.
func FromABNF(node *abnf.Node) (*URI, error) {
	if node == nil {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("nil ABNF node"))
	}

	var cs components
	if n, ok := findNode(node, func(k string) bool { return k == "scheme" }); ok {
		cs.scheme, cs.hasScheme = string(n.Value), true
	}
	if n, ok := findNode(node, func(k string) bool { return k == "authority" }); ok {
		cs.authority, cs.hasAuthority = string(n.Value), true
		if cs.authority == "" {
			return nil, errtrace.Wrap(ErrEmptyAuthority)
		}
	}
	if n, ok := findNode(node, func(k string) bool { return slices.Contains(pathRules, k) }); ok {
		cs.path = string(n.Value)
	}
	if n, ok := findNode(node, func(k string) bool { return k == "query" }); ok {
		cs.query, cs.hasQuery = string(n.Value), true
	}
	if n, ok := findNode(node, func(k string) bool { return k == "fragment" }); ok {
		cs.fragment, cs.hasFrag = string(n.Value), true
	}
	return errtrace.Wrap2(cs.build())
}

// ParseStrict parses s with the complete RFC 3986 URI-reference grammar and builds the URI
// from the parse tree with [FromABNF].
//
// It rejects inputs that [Parse] lets through because it checks components one by one,
// like IPv6 literals with a dangling colon, "[1:2:3:4:5:6:7:]".
// Such inputs fail with [ErrMalformedInput].
func ParseStrict[T ~string | ~[]byte](s T) (*URI, error) {
	node, err := grammar.ParseURIReference(s)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return errtrace.Wrap2(FromABNF(node))
}

// findNode searches the tree depth-first for the first node with a matching key.
// Subtrees of a matched node are not searched.
func findNode(node *abnf.Node, match func(key string) bool) (*abnf.Node, bool) {
	if node == nil {
		return nil, false
	}
	if match(node.Key) {
		return node, true
	}
	for _, c := range node.Children {
		if n, ok := findNode(c, match); ok {
			return n, true
		}
	}
	return nil, false
}
