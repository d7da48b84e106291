// Package uri provides parsing, validation and rendering of Uniform Resource Identifiers
// according to RFC 3986.
//
// # Overview
//
// A [URI] is split into five components:
//
//	  foo://example.com:8042/over/there?name=ferret#nose
//	  \_/   \______________/\_________/ \_________/ \__/
//	   |           |            |            |        |
//	scheme     authority       path        query   fragment
//
// The authority is represented by [Authority] and consists of optional userinfo, host and port.
// Every component is checked against its RFC 3986 character set, percent-encoded triplets are
// decoded on parsing and re-encoded on rendering. Only 7-bit ASCII can be carried by
// a percent-encoded triplet.
//
// # Parsing
//
//	u, err := uri.Parse("http://user@example.com:8080/this/is/a/path?name=bob#page3")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	host, _ := u.Host() // "example.com"
//	port, _ := u.Port() // 8080
//
// An empty input is a valid relative reference with an empty path.
// IP-literal hosts are validated as IPv6 or IPvFuture literals and kept verbatim with brackets:
//
//	u, _ := uri.Parse("http://[2001:db8::1]:80/")
//	host, _ := u.Host() // "[2001:db8::1]"
//
// # Errors
//
// Every error returned by the package wraps one of the Err* sentinels and can be
// discriminated with [errors.Is]:
//
//	_, err := uri.Parse("http://example.com//test")
//	errors.Is(err, uri.ErrPathIllegalStart) // true
//
// # Rendering
//
// [URI.Stringify] and [Authority.Stringify] encode the components back. Rendering fails only
// with [ErrIllegalCharacter] when a component built by the caller holds non-ASCII characters.
// Both types also implement [fmt.Formatter], [encoding.TextMarshaler] and [encoding.TextUnmarshaler].
//
// # Thread Safety
//
// Parsed values are never modified by the package. The Set* methods modify the receiver,
// use Clone to get a copy before modifying a shared value.
package uri
