package grammar

import (
	"fmt"
	"sync"

	"github.com/ghettovoice/abnf"
	"github.com/ghettovoice/abnf/pkg/abnf_core"
)

// uriReference is the RFC 3986 Appendix A URI-reference operator.
// Node keys are the RFC rule names, so "scheme", "authority", "path-*", "query" and
// "fragment" nodes can be looked up in the resulting tree.
var uriReference = sync.OnceValue(newURIReference)

func lit(s string) abnf.Operator { return abnf.Literal(`"`+s+`"`, []byte(s)) }

// oneOf matches a single character of set.
func oneOf(key, set string) abnf.Operator {
	ops := make([]abnf.Operator, len(set))
	for i := range len(set) {
		ops[i] = lit(set[i : i+1])
	}
	return abnf.AltFirst(key, ops[0], ops[1:]...)
}

// pathEmpty matches zero characters.
func pathEmpty(in []byte, pos uint, ns *abnf.Nodes) error {
	ns.Append(&abnf.Node{Key: "path-empty", Pos: pos, Value: in[pos:pos]})
	return nil
}

func newURIReference() abnf.Operator {
	core := abnf_core.Operators()
	alpha, digit, hexdig := core.ALPHA, core.DIGIT, core.HEXDIG

	unreserved := abnf.AltFirst("unreserved", alpha, digit, oneOf(`"-" / "." / "_" / "~"`, "-._~"))
	subDelims := oneOf("sub-delims", "!$&'()*+,;=")
	pctEncoded := abnf.Concat("pct-encoded", lit("%"), hexdig, hexdig)
	pchar := abnf.AltFirst("pchar", unreserved, pctEncoded, subDelims, oneOf(`":" / "@"`, ":@"))

	scheme := abnf.Concat(
		"scheme",
		alpha,
		abnf.Repeat0Inf(
			`*( ALPHA / DIGIT / "+" / "-" / "." )`,
			abnf.AltFirst(`ALPHA / DIGIT / "+" / "-" / "."`, alpha, digit, oneOf(`"+" / "-" / "."`, "+-.")),
		),
	)

	// authority
	userinfo := abnf.Repeat0Inf(
		"userinfo",
		abnf.AltFirst(`unreserved / pct-encoded / sub-delims / ":"`, unreserved, pctEncoded, subDelims, lit(":")),
	)
	port := abnf.Repeat0Inf("port", digit)

	decOctet := abnf.Alt(
		"dec-octet",
		abnf.Concat(`"25" %x30-35`, lit("25"), abnf.Range("%x30-35", []byte{'0'}, []byte{'5'})),
		abnf.Concat(`"2" %x30-34 DIGIT`, lit("2"), abnf.Range("%x30-34", []byte{'0'}, []byte{'4'}), digit),
		abnf.Concat(`"1" 2DIGIT`, lit("1"), digit, digit),
		abnf.Concat("%x31-39 DIGIT", abnf.Range("%x31-39", []byte{'1'}, []byte{'9'}), digit),
		digit,
	)
	ipv4 := abnf.Concat("IPv4address", decOctet, lit("."), decOctet, lit("."), decOctet, lit("."), decOctet)

	h16 := abnf.Repeat("h16", 1, 4, hexdig)
	h16c := abnf.Concat(`h16 ":"`, h16, lit(":"))
	ls32 := abnf.Alt("ls32", abnf.Concat(`h16 ":" h16`, h16, lit(":"), h16), ipv4)
	dcolon := lit("::")
	groups := func(n uint) abnf.Operator {
		return abnf.RepeatN(fmt.Sprintf(`%d( h16 ":" )`, n), n, h16c)
	}
	// [ *n( h16 ":" ) h16 ]
	head := func(n uint) abnf.Operator {
		if n == 0 {
			return abnf.Optional("[ h16 ]", h16)
		}
		return abnf.Optional(
			fmt.Sprintf(`[ *%d( h16 ":" ) h16 ]`, n),
			abnf.Concat(fmt.Sprintf(`*%d( h16 ":" ) h16`, n), abnf.Repeat(fmt.Sprintf(`*%d( h16 ":" )`, n), 0, n, h16c), h16),
		)
	}
	ipv6 := abnf.Alt(
		"IPv6address",
		abnf.Concat(`6( h16 ":" ) ls32`, groups(6), ls32),
		abnf.Concat(`"::" 5( h16 ":" ) ls32`, dcolon, groups(5), ls32),
		abnf.Concat(`[ h16 ] "::" 4( h16 ":" ) ls32`, head(0), dcolon, groups(4), ls32),
		abnf.Concat(`[ *1( h16 ":" ) h16 ] "::" 3( h16 ":" ) ls32`, head(1), dcolon, groups(3), ls32),
		abnf.Concat(`[ *2( h16 ":" ) h16 ] "::" 2( h16 ":" ) ls32`, head(2), dcolon, groups(2), ls32),
		abnf.Concat(`[ *3( h16 ":" ) h16 ] "::" h16 ":" ls32`, head(3), dcolon, h16c, ls32),
		abnf.Concat(`[ *4( h16 ":" ) h16 ] "::" ls32`, head(4), dcolon, ls32),
		abnf.Concat(`[ *5( h16 ":" ) h16 ] "::" h16`, head(5), dcolon, h16),
		abnf.Concat(`[ *6( h16 ":" ) h16 ] "::"`, head(6), dcolon),
	)
	ipvFuture := abnf.Concat(
		"IPvFuture",
		lit("v"),
		abnf.Repeat1Inf("1*HEXDIG", hexdig),
		lit("."),
		abnf.Repeat1Inf(
			`1*( unreserved / sub-delims / ":" )`,
			abnf.AltFirst(`unreserved / sub-delims / ":"`, unreserved, subDelims, lit(":")),
		),
	)
	ipLiteral := abnf.Concat("IP-literal", lit("["), abnf.Alt("IPv6address / IPvFuture", ipv6, ipvFuture), lit("]"))
	regName := abnf.Repeat0Inf(
		"reg-name",
		abnf.AltFirst("unreserved / pct-encoded / sub-delims", unreserved, pctEncoded, subDelims),
	)
	host := abnf.Alt("host", ipLiteral, ipv4, regName)

	authority := abnf.Concat(
		"authority",
		abnf.Optional(`[ userinfo "@" ]`, abnf.Concat(`userinfo "@"`, userinfo, lit("@"))),
		host,
		abnf.Optional(`[ ":" port ]`, abnf.Concat(`":" port`, lit(":"), port)),
	)

	// paths
	segment := abnf.Repeat0Inf("segment", pchar)
	segmentNZ := abnf.Repeat1Inf("segment-nz", pchar)
	segmentNZNC := abnf.Repeat1Inf(
		"segment-nz-nc",
		abnf.AltFirst(`unreserved / pct-encoded / sub-delims / "@"`, unreserved, pctEncoded, subDelims, lit("@")),
	)
	segments := abnf.Repeat0Inf(`*( "/" segment )`, abnf.Concat(`"/" segment`, lit("/"), segment))

	pathAbempty := abnf.Repeat0Inf("path-abempty", abnf.Concat(`"/" segment`, lit("/"), segment))
	pathAbsolute := abnf.Concat(
		"path-absolute",
		lit("/"),
		abnf.Optional(`[ segment-nz *( "/" segment ) ]`, abnf.Concat(`segment-nz *( "/" segment )`, segmentNZ, segments)),
	)
	pathNoscheme := abnf.Concat("path-noscheme", segmentNZNC, segments)
	pathRootless := abnf.Concat("path-rootless", segmentNZ, segments)
	withAuthority := abnf.Concat(`"//" authority path-abempty`, lit("//"), authority, pathAbempty)

	query := abnf.Repeat0Inf("query", abnf.AltFirst(`pchar / "/" / "?"`, pchar, oneOf(`"/" / "?"`, "/?")))
	fragment := abnf.Repeat0Inf("fragment", abnf.AltFirst(`pchar / "/" / "?"`, pchar, oneOf(`"/" / "?"`, "/?")))
	optQuery := abnf.Optional(`[ "?" query ]`, abnf.Concat(`"?" query`, lit("?"), query))
	optFragment := abnf.Optional(`[ "#" fragment ]`, abnf.Concat(`"#" fragment`, lit("#"), fragment))

	uri := abnf.Concat(
		"URI",
		scheme,
		lit(":"),
		abnf.Alt("hier-part", withAuthority, pathAbsolute, pathRootless, pathEmpty),
		optQuery,
		optFragment,
	)
	relativeRef := abnf.Concat(
		"relative-ref",
		abnf.Alt("relative-part", withAuthority, pathAbsolute, pathNoscheme, pathEmpty),
		optQuery,
		optFragment,
	)
	return abnf.Alt("URI-reference", uri, relativeRef)
}
