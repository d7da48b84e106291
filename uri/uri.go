package uri

//go:generate go tool errtrace -w .

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gouri/internal/errorutil"
	"github.com/ghettovoice/gouri/internal/grammar"
	"github.com/ghettovoice/gouri/internal/ioutil"
	"github.com/ghettovoice/gouri/internal/util"
)

// URI represents a URI reference: [scheme ":"] ["//" authority] path ["?" query] ["#" fragment].
//
// The scheme is kept lowercased, path, query and fragment are kept percent-decoded.
// The path is always present, but may be empty.
type URI struct {
	scheme      string
	authority   *Authority
	path        string
	query       string
	fragment    string
	hasScheme   bool
	hasQuery    bool
	hasFragment bool
}

// New creates a relative reference with the given decoded path.
func New(path string) *URI {
	return &URI{path: path}
}

// SetScheme sets the scheme and returns the URI.
// The scheme is lowercased, an empty scheme removes it.
func (u *URI) SetScheme(scheme string) *URI {
	u.scheme, u.hasScheme = util.LCase(scheme), scheme != ""
	return u
}

// SetAuthority sets the authority and returns the URI.
// A nil or zero authority removes it.
func (u *URI) SetAuthority(a *Authority) *URI {
	if a.IsZero() {
		a = nil
	}
	u.authority = a
	return u
}

// SetQuery sets the decoded query and returns the URI.
func (u *URI) SetQuery(query string) *URI {
	u.query, u.hasQuery = query, true
	return u
}

// SetFragment sets the decoded fragment and returns the URI.
func (u *URI) SetFragment(fragment string) *URI {
	u.fragment, u.hasFragment = fragment, true
	return u
}

// Scheme returns the lowercased scheme.
func (u *URI) Scheme() (string, bool) {
	if u == nil {
		return "", false
	}
	return u.scheme, u.hasScheme
}

// Authority returns the authority or nil if the URI has no authority.
func (u *URI) Authority() *Authority {
	if u == nil {
		return nil
	}
	return u.authority
}

// Userinfo returns the decoded userinfo of the authority.
func (u *URI) Userinfo() (string, bool) { return u.Authority().Userinfo() }

// Host returns the host of the authority.
func (u *URI) Host() (string, bool) { return u.Authority().Host() }

// Port returns the port of the authority.
func (u *URI) Port() (uint16, bool) { return u.Authority().Port() }

// Path returns the decoded path.
func (u *URI) Path() string {
	if u == nil {
		return ""
	}
	return u.path
}

// Query returns the decoded query.
func (u *URI) Query() (string, bool) {
	if u == nil {
		return "", false
	}
	return u.query, u.hasQuery
}

// Fragment returns the decoded fragment.
func (u *URI) Fragment() (string, bool) {
	if u == nil {
		return "", false
	}
	return u.fragment, u.hasFragment
}

// IsAbsolute reports whether the URI has a scheme.
func (u *URI) IsAbsolute() bool { return u != nil && u.hasScheme }

// Parse parses a URI reference from the given input s (string or []byte).
//
// An empty input is a valid relative reference with an empty path.
// The input is split into the scheme, fragment, query, authority and path in that order,
// then each component is checked against its grammar.
func Parse[T ~string | ~[]byte](s T) (*URI, error) {
	if len(s) == 0 {
		return new(URI), nil
	}
	cs, err := split(string(s))
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return errtrace.Wrap2(cs.build())
}

// MustParse is like [Parse] but panics on error.
func MustParse[T ~string | ~[]byte](s T) *URI {
	return util.Must2(Parse(s))
}

// components holds raw, still encoded, URI components.
type components struct {
	scheme, authority, path, query, fragment  string
	hasScheme, hasAuthority, hasQuery, hasFrag bool
}

func split(s string) (components, error) {
	var cs components

	// a colon after the first slash belongs to the path
	win := s
	if i := strings.IndexByte(s, '/'); i >= 0 {
		win = s[:i]
	}
	if i := strings.IndexByte(win, ':'); i >= 0 {
		if i == 0 {
			return cs, errtrace.Wrap(errorutil.NewWrapperError(ErrEmptyScheme, "%q", s))
		}
		cs.scheme, cs.hasScheme = s[:i], true
		s = s[i+1:]
	}

	if i := strings.LastIndexByte(s, '#'); i >= 0 {
		cs.fragment, cs.hasFrag = s[i+1:], true
		s = s[:i]
	}
	s, cs.query, cs.hasQuery = strings.Cut(s, "?")

	if rest, ok := strings.CutPrefix(s, "//"); ok {
		i := strings.IndexByte(rest, '/')
		if i < 0 {
			i = len(rest)
		}
		if i == 0 {
			return cs, errtrace.Wrap(errorutil.NewWrapperError(ErrEmptyAuthority, "%q", s))
		}
		cs.authority, cs.hasAuthority = rest[:i], true
		s = rest[i:]
	}
	cs.path = s
	return cs, nil
}

// build checks and decodes the components.
func (cs components) build() (*URI, error) {
	u := new(URI)
	if cs.hasScheme {
		scheme, err := parseScheme(cs.scheme)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		u.scheme, u.hasScheme = scheme, true
	}
	if cs.hasFrag {
		frag, err := grammar.NewDecoder(cs.fragment, grammar.Fragment).Decode()
		if err != nil {
			return nil, errtrace.Wrap(remapCharErr(err, ErrFragmentIllegalCharacter, cs.fragment))
		}
		u.fragment, u.hasFragment = frag, true
	}
	if cs.hasQuery {
		query, err := grammar.NewDecoder(cs.query, grammar.Query).Decode()
		if err != nil {
			return nil, errtrace.Wrap(remapCharErr(err, ErrQueryIllegalCharacter, cs.query))
		}
		u.query, u.hasQuery = query, true
	}

	if strings.HasPrefix(cs.path, "//") {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrPathIllegalStart, "%q", cs.path))
	}
	path, err := grammar.NewDecoder(cs.path, grammar.Path).Decode()
	if err != nil {
		return nil, errtrace.Wrap(remapCharErr(err, ErrPathIllegalCharacter, cs.path))
	}
	u.path = path

	if cs.hasAuthority {
		if u.authority, err = parseAuthority(cs.authority); err != nil {
			return nil, errtrace.Wrap(err)
		}
	}
	return u, nil
}

func parseScheme(s string) (string, error) {
	switch {
	case s == "":
		return "", errtrace.Wrap(ErrEmptyScheme)
	case strings.IndexByte(s, '%') >= 0:
		return "", errtrace.Wrap(errorutil.NewWrapperError(ErrSchemeIllegalCharacter, "percent-encoded %q", s))
	}
	if !grammar.Alpha.ContainsByte(s[0]) {
		return "", errtrace.Wrap(errorutil.NewWrapperError(ErrSchemeIllegalFirstCharacter, "%q", s))
	}
	for i := 1; i < len(s); i++ {
		if !grammar.Scheme.ContainsByte(s[i]) {
			return "", errtrace.Wrap(errorutil.NewWrapperError(ErrSchemeIllegalCharacter, "%q", s))
		}
	}
	return util.LCase(s), nil
}

// RenderTo writes the encoded URI to the provided writer.
//
// A decoded path starting with "//" is rendered with the second slash escaped.
// Colons before the first slash of a relative reference are escaped,
// so the output is not taken for a URI with a scheme.
func (u *URI) RenderTo(w io.Writer) (num int, err error) {
	if u == nil {
		return 0, nil
	}
	if u.hasScheme {
		return errtrace.Wrap2(u.renderTo(w))
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	if _, err := u.renderTo(sb); err != nil {
		return 0, errtrace.Wrap(err)
	}
	return errtrace.Wrap2(io.WriteString(w, escapeSchemeColons(sb.String())))
}

func (u *URI) renderTo(w io.Writer) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	encode := func(s string, cls *grammar.Class) string {
		if err != nil {
			return ""
		}
		var enc string
		enc, err = grammar.NewEncoder(s, cls).Encode()
		return enc
	}

	if u.hasScheme {
		cw.WriteString(encode(u.scheme, grammar.Scheme)) //nolint:errcheck
		cw.WriteByte(':')                                //nolint:errcheck
	}
	if !u.authority.IsZero() {
		cw.WriteString("//") //nolint:errcheck
		cw.Call(u.authority.RenderTo)
	}
	path := u.path
	if strings.HasPrefix(path, "//") {
		cw.WriteString("/%2F") //nolint:errcheck
		path = path[2:]
	}
	cw.WriteString(encode(path, grammar.Path)) //nolint:errcheck
	if u.hasQuery {
		cw.WriteDelimited('?', encode(u.query, grammar.Query))
	}
	if u.hasFragment {
		cw.WriteDelimited('#', encode(u.fragment, grammar.Fragment))
	}
	if err != nil {
		return cw.Count(), errtrace.Wrap(err)
	}
	return errtrace.Wrap2(cw.Result())
}

func escapeSchemeColons(s string) string {
	i := strings.IndexByte(s, '/')
	if i < 0 {
		i = len(s)
	}
	if strings.IndexByte(s[:i], ':') < 0 {
		return s
	}
	return strings.ReplaceAll(s[:i], ":", "%3A") + s[i:]
}

// Stringify returns the encoded URI.
// Only URIs built by the caller with non-ASCII components fail with [ErrIllegalCharacter].
func (u *URI) Stringify() (string, error) {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	if _, err := u.RenderTo(sb); err != nil {
		return "", errtrace.Wrap(err)
	}
	return sb.String(), nil
}

// String returns the encoded URI or an empty string if it can not be encoded.
func (u *URI) String() string {
	s, _ := u.Stringify()
	return s
}

// Format implements fmt.Formatter for custom formatting of the URI.
func (u *URI) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		if f.Flag('+') {
			u.RenderTo(f) //nolint:errcheck
			return
		}
		fmt.Fprint(f, u.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.String()))
		return
	default:
		type hideMethods URI
		type URI hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*URI)(u))
		return
	}
}

// Clone returns a deep copy of the URI.
func (u *URI) Clone() *URI {
	if u == nil {
		return nil
	}
	u2 := *u
	u2.authority = u.authority.Clone()
	return &u2
}

// Equal compares this URI with another for equality.
// Schemes and hosts are compared case-insensitively, all other components must match exactly.
func (u *URI) Equal(val any) bool {
	var other *URI
	switch v := val.(type) {
	case URI:
		other = &v
	case *URI:
		other = v
	default:
		return false
	}

	if u == other {
		return true
	} else if u == nil || other == nil {
		return false
	}

	return u.hasScheme == other.hasScheme && util.EqFold(u.scheme, other.scheme) &&
		(u.authority.IsZero() && other.authority.IsZero() || u.authority.Equal(other.authority)) &&
		u.path == other.path &&
		u.hasQuery == other.hasQuery && u.query == other.query &&
		u.hasFragment == other.hasFragment && u.fragment == other.fragment
}

// IsValid checks whether the URI renders into a string that parses back into an equal URI.
func (u *URI) IsValid() bool {
	if u == nil {
		return false
	}
	s, err := u.Stringify()
	if err != nil {
		return false
	}
	u2, err := Parse(s)
	return err == nil && u.Equal(u2)
}

// MarshalText implements [encoding.TextMarshaler].
func (u *URI) MarshalText() ([]byte, error) {
	s, err := u.Stringify()
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return []byte(s), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (u *URI) UnmarshalText(text []byte) error {
	u1, err := Parse(text)
	if err != nil {
		*u = URI{}
		return errtrace.Wrap(err)
	}
	*u = *u1
	return nil
}
