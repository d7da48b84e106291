package grammar

import "strings"

const (
	ipv6MaxColons    = 7
	ipv6MaxGroupSize = 4
)

// IsIPv6 checks a bracket-stripped IPv6 literal with a single forward scan.
//
// The literal may hold at most 7 colons, at most one "::" and at most 4 hex digits per group.
// It is valid when it has exactly 7 colons or a "::" was seen.
// Embedded IPv4 tails are not supported and a compression that elides no group is accepted.
func IsIPv6(s string) bool {
	if len(s) == 0 {
		return false
	}

	var (
		colons, digits     int
		prevColon, seenDbl bool
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ':' {
			if colons >= ipv6MaxColons {
				return false
			}
			if prevColon {
				if seenDbl {
					return false
				}
				seenDbl = true
			} else {
				digits = 0
			}
			colons++
			prevColon = true
			continue
		}

		if digits >= ipv6MaxGroupSize || !HexDig.ContainsByte(c) {
			return false
		}
		digits++
		prevColon = false
	}
	return colons == ipv6MaxColons || seenDbl
}

// IsIPvFuture checks a bracket-stripped IPvFuture literal:
//
//	"v" HEXDIG "." *( unreserved / sub-delims / ":" )
func IsIPvFuture(s string) bool {
	if len(s) < 3 || s[0] != 'v' && s[0] != 'V' {
		return false
	}
	if !HexDig.ContainsByte(s[1]) || s[2] != '.' || strings.IndexByte(s, '%') >= 0 {
		return false
	}
	for i := 3; i < len(s); i++ {
		if !IPvFuture.ContainsByte(s[i]) {
			return false
		}
	}
	return true
}
