package grammar

import (
	"strings"
	"unicode/utf8"
)

// Class is an immutable set of ASCII characters allowed unescaped in some URI component.
// Runes outside of the ASCII range are never members of a class.
type Class struct {
	name string
	tbl  [utf8.RuneSelf]bool
}

func newClass(name, chars string) *Class {
	cls := &Class{name: name}
	for i := 0; i < len(chars); i++ {
		cls.tbl[chars[i]] = true
	}
	return cls
}

func newRangeClass(name string, ranges ...[2]byte) *Class {
	cls := &Class{name: name}
	for _, r := range ranges {
		for c := r[0]; c <= r[1]; c++ {
			cls.tbl[c] = true
		}
	}
	return cls
}

// Union returns a new class named name that contains members of cls and all of others.
func (cls *Class) Union(name string, others ...*Class) *Class {
	u := &Class{name: name, tbl: cls.tbl}
	for _, o := range others {
		for c, ok := range o.tbl {
			if ok {
				u.tbl[c] = true
			}
		}
	}
	return u
}

// With returns a new class named name that contains members of cls plus the given chars.
func (cls *Class) With(name, chars string) *Class {
	return cls.Union(name, newClass("", chars))
}

// Contains reports whether r is a member of the class.
func (cls *Class) Contains(r rune) bool {
	return r >= 0 && r < utf8.RuneSelf && cls.tbl[r]
}

// ContainsByte reports whether c is a member of the class.
func (cls *Class) ContainsByte(c byte) bool {
	return c < utf8.RuneSelf && cls.tbl[c]
}

// Name returns the RFC 3986 production name the class was built from.
func (cls *Class) Name() string { return cls.name }

// Len returns the number of members.
func (cls *Class) Len() int {
	var n int
	for _, ok := range cls.tbl {
		if ok {
			n++
		}
	}
	return n
}

// String returns all members of the class in ascending order.
func (cls *Class) String() string {
	var sb strings.Builder
	for c, ok := range cls.tbl {
		if ok {
			sb.WriteByte(byte(c))
		}
	}
	return sb.String()
}

// RFC 3986 character classes.
var (
	Alpha     = newRangeClass("ALPHA", [2]byte{'a', 'z'}, [2]byte{'A', 'Z'})
	Digit     = newRangeClass("DIGIT", [2]byte{'0', '9'})
	HexDig    = newRangeClass("HEXDIG", [2]byte{'0', '9'}, [2]byte{'a', 'f'}, [2]byte{'A', 'F'})
	GenDelims = newClass("gen-delims", ":/?#[]@")
	SubDelims = newClass("sub-delims", "!$&'()*+,;=")
	Reserved  = GenDelims.Union("reserved", SubDelims)

	Unreserved = Alpha.Union("unreserved", Digit).With("unreserved", "-._~")

	Scheme    = Alpha.Union("scheme", Digit).With("scheme", "+-.")
	Userinfo  = Unreserved.Union("userinfo", SubDelims)
	RegName   = Unreserved.Union("reg-name", SubDelims).With("reg-name", ".")
	Path      = Unreserved.Union("path", SubDelims).With("path", ":@/")
	Query     = Unreserved.Union("query", SubDelims).With("query", ":@/?")
	Fragment  = Unreserved.Union("fragment", SubDelims).With("fragment", ":@/?")
	IPvFuture = Unreserved.Union("IPvFuture", SubDelims).With("IPvFuture", ":")
	IPv6      = HexDig.With("IPv6address", ":")
)
