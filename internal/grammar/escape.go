package grammar

import (
	"bytes"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gouri/internal/constraints"
)

const maxASCII = 0x7F

// Decode decodes each "% HEXDIG HEXDIG" triplet of s and checks that all other characters
// are members of cls.
//
// Decoded characters are not checked against cls. Triplets decoding to a byte above 0x7F
// are rejected with [ErrIllegalPercentEncoding], any non-member character is rejected
// with [ErrIllegalCharacter].
func Decode[T constraints.Byteseq](s T, cls *Class) (T, error) {
	if len(s) == 0 {
		return s, nil
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '%' {
			if i+2 >= len(s) || !ishex(s[i+1]) || !ishex(s[i+2]) {
				return zero[T](), errtrace.Wrap(newIllegalPctEncErr(string(s), i))
			}
			d := unhex(s[i+1])<<4 | unhex(s[i+2])
			if d > maxASCII {
				return zero[T](), errtrace.Wrap(newIllegalPctEncErr(string(s), i))
			}
			b.WriteByte(d)
			i += 2
			continue
		}
		if !cls.ContainsByte(c) {
			return zero[T](), errtrace.Wrap(newIllegalCharErr(string(s), i))
		}
		b.WriteByte(c)
	}
	return T(b.Bytes()), nil
}

// Encode replaces each character of s that is not a member of cls with the "% HEXDIG HEXDIG" triplet.
// Only 7-bit input is encodable, any other byte is rejected with [ErrIllegalCharacter].
func Encode[T constraints.Byteseq](s T, cls *Class) (T, error) {
	if len(s) == 0 {
		return s, nil
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case cls.ContainsByte(c):
			b.WriteByte(c)
		case c > maxASCII:
			return zero[T](), errtrace.Wrap(newIllegalCharErr(string(s), i))
		default:
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&15])
		}
	}
	return T(b.Bytes()), nil
}

// Unescape unescapes s by converting each 3-byte encoded substring of the form "% HEXDIG HEXDIG" into the hex-decoded byte.
// Malformed triplets are kept as is.
func Unescape[T constraints.Byteseq](s T) T {
	if len(s) == 0 {
		return s
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && ishex(s[i+1]) && ishex(s[i+2]) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		} else {
			b.WriteByte(s[i])
		}
	}
	return T(b.Bytes())
}

// Escape escapes s by replacing each char matched by shouldEscape callback to the hex form "% HEXDIG HEXDIG".
// Existing triplets are kept as is. A nil callback escapes everything except unreserved characters.
func Escape[T constraints.Byteseq](s T, shouldEscape func(c byte) bool) T {
	if len(s) == 0 {
		return s
	}

	if shouldEscape == nil {
		shouldEscape = func(c byte) bool { return !Unreserved.ContainsByte(c) }
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '%' && i+2 < len(s) && ishex(s[i+1]) && ishex(s[i+2]):
			b.WriteByte(s[i])
			b.WriteByte(s[i+1])
			b.WriteByte(s[i+2])
			i += 2
		case shouldEscape(s[i]):
			b.WriteByte('%')
			b.WriteByte(upperhex[s[i]>>4])
			b.WriteByte(upperhex[s[i]&15])
		default:
			b.WriteByte(s[i])
		}
	}
	return T(b.Bytes())
}

func zero[T any]() T {
	var z T
	return z
}

const upperhex = "0123456789ABCDEF"

func ishex(c byte) bool { return HexDig.ContainsByte(c) }

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
