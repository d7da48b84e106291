package uri

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

// Authority represents the authority component of a URI: [userinfo "@"] host [":" port].
//
// Each part is optional. Userinfo and registered name hosts are kept percent-decoded,
// IP-literal hosts are kept verbatim with the surrounding brackets.
type Authority struct {
	userinfo    string
	host        string
	port        uint16
	hasUserinfo bool
	hasHost     bool
	hasPort     bool
	ipLiteral   bool
}

// NewAuthority creates an authority with the given host.
// A host enclosed in brackets is taken as an IP literal and rendered verbatim,
// any other host is a decoded registered name. An empty host leaves the host absent.
func NewAuthority(host string) *Authority {
	return new(Authority).SetHost(host)
}

// SetHost sets the host and returns the authority.
// A host enclosed in brackets is taken as an IP literal, an empty host removes it.
func (a *Authority) SetHost(host string) *Authority {
	a.host, a.hasHost, a.ipLiteral = host, host != "", isBracketed(host)
	return a
}

// SetRegName sets the decoded registered name host and returns the authority.
// Unlike [Authority.SetHost] the name is never taken as an IP literal.
func (a *Authority) SetRegName(name string) *Authority {
	a.host, a.hasHost, a.ipLiteral = name, name != "", false
	return a
}

// SetUserinfo sets the decoded userinfo and returns the authority.
func (a *Authority) SetUserinfo(userinfo string) *Authority {
	a.userinfo, a.hasUserinfo = userinfo, true
	return a
}

// SetPort sets the port and returns the authority.
func (a *Authority) SetPort(port uint16) *Authority {
	a.port, a.hasPort = port, true
	return a
}

// Userinfo returns the decoded userinfo.
func (a *Authority) Userinfo() (string, bool) {
	if a == nil {
		return "", false
	}
	return a.userinfo, a.hasUserinfo
}

// Host returns the host. IP-literal hosts include the brackets.
func (a *Authority) Host() (string, bool) {
	if a == nil {
		return "", false
	}
	return a.host, a.hasHost
}

// Port returns the port.
func (a *Authority) Port() (uint16, bool) {
	if a == nil {
		return 0, false
	}
	return a.port, a.hasPort
}

// IsIPLiteral reports whether the host is a bracketed IPv6 or IPvFuture literal.
func (a *Authority) IsIPLiteral() bool {
	return a != nil && a.hasHost && a.ipLiteral
}

// IsZero reports whether all parts of the authority are absent.
func (a *Authority) IsZero() bool {
	return a == nil || !a.hasUserinfo && !a.hasHost && !a.hasPort
}

// ParseAuthority parses an authority from the given input s (string or []byte).
//
// It returns nil and no error when s is empty or consists of delimiters only, like "@" or ":".
func ParseAuthority[T ~string | ~[]byte](s T) (*Authority, error) {
	return errtrace.Wrap2(parseAuthority(string(s)))
}

func parseAuthority(s string) (*Authority, error) {
	if s == "" {
		return nil, nil
	}

	var rawUserinfo, hostport string
	if i := strings.LastIndexByte(s, '@'); i >= 0 {
		rawUserinfo, hostport = s[:i], s[i+1:]
	} else {
		hostport = s
	}

	rawHost, rawPort, err := splitHostPort(hostport)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	a := new(Authority)
	if rawUserinfo != "" {
		ui, err := grammar.NewDecoder(rawUserinfo, grammar.Userinfo).Decode()
		if err != nil {
			return nil, errtrace.Wrap(remapCharErr(err, ErrUserinfoIllegalCharacter, rawUserinfo))
		}
		a.SetUserinfo(ui)
	}
	if rawHost != "" {
		host, lit, err := parseHost(rawHost)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		a.host, a.hasHost, a.ipLiteral = host, true, lit
	}
	if rawPort != "" {
		port, err := parsePort(rawPort)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		a.SetPort(port)
	}

	if a.IsZero() {
		return nil, nil
	}
	return a, nil
}

// splitHostPort splits s on the port separator.
// Colons of a bracketed IP literal are skipped.
func splitHostPort(s string) (host, port string, err error) {
	from := 0
	if strings.HasPrefix(s, "[") {
		i := strings.IndexByte(s, ']')
		if i < 0 {
			return "", "", errtrace.Wrap(errorutil.NewWrapperError(ErrIllegalHostDefinition, "unclosed IP literal %q", s))
		}
		from = i + 1
	}
	if i := strings.IndexByte(s[from:], ':'); i >= 0 {
		return s[:from+i], s[from+i+1:], nil
	}
	return s, "", nil
}

func parsePort(s string) (uint16, error) {
	for i := 0; i < len(s); i++ {
		if !grammar.Digit.ContainsByte(s[i]) {
			return 0, errtrace.Wrap(errorutil.NewWrapperError(ErrParsePort, "%q", s))
		}
	}
	p, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, errtrace.Wrap(errorutil.NewWrapperError(ErrParsePort, err))
	}
	return uint16(p), nil
}

func isBracketed(h string) bool {
	return strings.HasPrefix(h, "[") && strings.HasSuffix(h, "]")
}

// parseHost checks the host and reports whether it is an IP literal.
func parseHost(h string) (host string, ipLiteral bool, err error) {
	switch {
	case strings.HasPrefix(h, "[") || strings.HasSuffix(h, "]"):
		// the shortest literal is "[::]"
		if len(h) < 4 || !isBracketed(h) {
			return "", false, errtrace.Wrap(errorutil.NewWrapperError(ErrIllegalHostDefinition, "%q", h))
		}
		lit := h[1 : len(h)-1]
		if lit[0] == 'v' || lit[0] == 'V' {
			if !grammar.IsIPvFuture(lit) {
				return "", false, errtrace.Wrap(errorutil.NewWrapperError(ErrIllegalIPvFuture, "%q", h))
			}
		} else if !grammar.IsIPv6(lit) {
			return "", false, errtrace.Wrap(errorutil.NewWrapperError(ErrIllegalIPv6, "%q", h))
		}
		return h, true, nil
	default:
		if host, err = grammar.NewDecoder(h, grammar.RegName).Decode(); err != nil {
			return "", false, errtrace.Wrap(remapCharErr(err, ErrHostIllegalCharacter, h))
		}
		return host, false, nil
	}
}

// RenderTo writes the encoded authority to the provided writer.
// Nothing is written when all parts are absent.
func (a *Authority) RenderTo(w io.Writer) (num int, err error) {
	if a.IsZero() {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	if a.hasUserinfo {
		ui, err := grammar.NewEncoder(a.userinfo, grammar.Userinfo).Encode()
		if err != nil {
			return cw.Count(), errtrace.Wrap(err)
		}
		cw.WriteString(ui) //nolint:errcheck
		cw.WriteByte('@')  //nolint:errcheck
	}
	if a.hasHost {
		host := a.host
		if !a.ipLiteral {
			if host, err = grammar.NewEncoder(host, grammar.RegName).Encode(); err != nil {
				return cw.Count(), errtrace.Wrap(err)
			}
		}
		cw.WriteString(host) //nolint:errcheck
	}
	if a.hasPort {
		cw.WriteDelimited(':', strconv.FormatUint(uint64(a.port), 10))
	}
	return errtrace.Wrap2(cw.Result())
}

// Stringify returns the encoded authority.
// It returns false if all parts are absent.
func (a *Authority) Stringify() (string, bool, error) {
	if a.IsZero() {
		return "", false, nil
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	if _, err := a.RenderTo(sb); err != nil {
		return "", false, errtrace.Wrap(err)
	}
	return sb.String(), true, nil
}

// String returns the encoded authority or an empty string if it can not be encoded.
func (a *Authority) String() string {
	s, _, _ := a.Stringify()
	return s
}

// Format implements fmt.Formatter for custom formatting of the authority.
func (a *Authority) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		if f.Flag('+') {
			a.RenderTo(f) //nolint:errcheck
			return
		}
		fmt.Fprint(f, a.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(a.String()))
		return
	default:
		type hideMethods Authority
		type Authority hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Authority)(a))
		return
	}
}

// Clone returns a copy of the authority.
func (a *Authority) Clone() *Authority {
	if a == nil {
		return nil
	}
	a2 := *a
	return &a2
}

// Equal compares this authority with another for equality.
// Hosts are compared case-insensitively, userinfo and ports must match exactly.
func (a *Authority) Equal(val any) bool {
	var other *Authority
	switch v := val.(type) {
	case Authority:
		other = &v
	case *Authority:
		other = v
	default:
		return false
	}

	if a == other {
		return true
	} else if a == nil || other == nil {
		return false
	}

	return a.hasUserinfo == other.hasUserinfo && a.userinfo == other.userinfo &&
		a.hasHost == other.hasHost && a.ipLiteral == other.ipLiteral && util.EqFold(a.host, other.host) &&
		a.hasPort == other.hasPort && a.port == other.port
}

// IsValid checks whether the authority renders into a string that parses back into an equal authority.
func (a *Authority) IsValid() bool {
	if a.IsZero() {
		return false
	}
	s, _, err := a.Stringify()
	if err != nil {
		return false
	}
	a2, err := parseAuthority(s)
	return err == nil && a.Equal(a2)
}

// MarshalText implements [encoding.TextMarshaler].
func (a *Authority) MarshalText() ([]byte, error) {
	s, _, err := a.Stringify()
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return []byte(s), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (a *Authority) UnmarshalText(text []byte) error {
	a1, err := parseAuthority(string(text))
	if err != nil || a1 == nil {
		*a = Authority{}
		return errtrace.Wrap(err)
	}
	*a = *a1
	return nil
}
