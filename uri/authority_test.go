package uri_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/gouri/uri"
)

type authParts struct {
	Userinfo    string
	Host        string
	Port        uint16
	HasUserinfo bool
	HasHost     bool
	HasPort     bool
	IPLiteral   bool
}

func authPartsOf(a *uri.Authority) *authParts {
	if a == nil {
		return nil
	}
	var p authParts
	p.Userinfo, p.HasUserinfo = a.Userinfo()
	p.Host, p.HasHost = a.Host()
	p.Port, p.HasPort = a.Port()
	p.IPLiteral = a.IsIPLiteral()
	return &p
}

func TestParseAuthority(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		want    *uri.Authority
		wantErr error
	}{
		{"empty", "", nil, nil},
		{"at only", "@", nil, nil},
		{"colon only", ":", nil, nil},
		{"at and colon", "@:", nil, nil},
		{"host", "example.com", uri.NewAuthority("example.com"), nil},
		{"host empty port", "example.com:", uri.NewAuthority("example.com"), nil},
		{"port only", ":8080", uri.NewAuthority("").SetPort(8080), nil},
		{"userinfo only", "user@", uri.NewAuthority("").SetUserinfo("user"), nil},
		{"userinfo and port", "user@:8080", uri.NewAuthority("").SetUserinfo("user").SetPort(8080), nil},
		{
			"all parts",
			"user@example.com:80",
			uri.NewAuthority("example.com").SetUserinfo("user").SetPort(80),
			nil,
		},
		{"escaped userinfo", "u%73er@example.com", uri.NewAuthority("example.com").SetUserinfo("user"), nil},
		{"escaped colon in userinfo", "user%3Apass@example.com", uri.NewAuthority("example.com").SetUserinfo("user:pass"), nil},
		{"escaped host", "ex%41mple.com", uri.NewAuthority("exAmple.com"), nil},
		{"escaped brackets in host", "%5Bzz%5D", uri.NewAuthority("").SetRegName("[zz]"), nil},
		{"ipv4", "192.0.2.16:80", uri.NewAuthority("192.0.2.16").SetPort(80), nil},
		{"ipv4 out of range", "999.0.0.1", uri.NewAuthority("999.0.0.1"), nil},
		{"zero port", ":0", uri.NewAuthority("").SetPort(0), nil},
		{"max port", "example.com:65535", uri.NewAuthority("example.com").SetPort(65535), nil},
		{"ipv6", "[::1]", uri.NewAuthority("[::1]"), nil},
		{"ipv6 and port", "[::1]:5060", uri.NewAuthority("[::1]").SetPort(5060), nil},
		{
			"ipv6 full",
			"user@[2001:db8:3333:4444:5555:6666:7777:8888]:8080",
			uri.NewAuthority("[2001:db8:3333:4444:5555:6666:7777:8888]").SetUserinfo("user").SetPort(8080),
			nil,
		},
		{"ipvfuture", "[v7.aaaa:bbbb]:80", uri.NewAuthority("[v7.aaaa:bbbb]").SetPort(80), nil},
		{"ipvfuture empty tail", "[v1.]", uri.NewAuthority("[v1.]"), nil},

		{"unclosed literal", "[::1", nil, uri.ErrIllegalHostDefinition},
		{"short literal", "[:]", nil, uri.ErrIllegalHostDefinition},
		{"garbage after literal", "[::1]x:80", nil, uri.ErrIllegalHostDefinition},
		{"closing bracket only", "example.com]", nil, uri.ErrIllegalHostDefinition},
		{"ipvfuture non hex version", "[vX.::]", nil, uri.ErrIllegalIPvFuture},
		{"ipvfuture no dot", "[v7]", nil, uri.ErrIllegalIPvFuture},
		{"ipv6 double compression", "[2001:db8:3333:4444:5555:6666:7777::8888]", nil, uri.ErrIllegalIPv6},
		{"ipv6 bad group", "[::12345]", nil, uri.ErrIllegalIPv6},
		{"escaped port", "user@example.com:80%50", nil, uri.ErrParsePort},
		{"port overflow", "example.com:65536", nil, uri.ErrParsePort},
		{"signed port", "example.com:+80", nil, uri.ErrParsePort},
		{"negative port", "example.com:-1", nil, uri.ErrParsePort},
		{"second colon", "example.com:80:90", nil, uri.ErrParsePort},
		{"colon in userinfo", "user:pass@example.com", nil, uri.ErrUserinfoIllegalCharacter},
		{"colon in userinfo with literal", "user:@[2001:db8:3333:4444:5555:6666:7777:8888]", nil, uri.ErrUserinfoIllegalCharacter},
		{"at in userinfo", "a@b@example.com", nil, uri.ErrUserinfoIllegalCharacter},
		{"space in host", "exa mple.com", nil, uri.ErrHostIllegalCharacter},
		{"non 7-bit escape in host", "ex%C3%A9.com", nil, uri.ErrIllegalPercentEncoding},
		{"broken escape in userinfo", "us%2@example.com", nil, uri.ErrIllegalPercentEncoding},
		{"userinfo checked before port", "us er@example.com:80x", nil, uri.ErrUserinfoIllegalCharacter},
		{"host checked before port", "user@bad host:80x", nil, uri.ErrHostIllegalCharacter},
		{"bad reg-name and bad port", "h^st:abc", nil, uri.ErrHostIllegalCharacter},
		{"bad literal and port overflow", "[zz]:99999", nil, uri.ErrIllegalIPv6},
		{"unopened literal", "zz]", nil, uri.ErrIllegalHostDefinition},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := uri.ParseAuthority(c.in)
			if c.wantErr != nil {
				if !errors.Is(err, c.wantErr) {
					t.Errorf("uri.ParseAuthority(%q) error = %v, want %v", c.in, err, c.wantErr)
				}
				if got != nil {
					t.Errorf("uri.ParseAuthority(%q) = %+v, want nil", c.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("uri.ParseAuthority(%q) error = %v, want nil", c.in, err)
			}
			if diff := cmp.Diff(authPartsOf(got), authPartsOf(c.want)); diff != "" {
				t.Errorf("uri.ParseAuthority(%q) = %+v, want %+v\ndiff (-got +want):\n%v", c.in, got, c.want, diff)
			}
		})
	}
}

func TestParseAuthority_RemappedErrors(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"us er@example.com", "exa mple.com"} {
		_, err := uri.ParseAuthority(in)
		if err == nil {
			t.Fatalf("uri.ParseAuthority(%q) error = nil, want error", in)
		}
		if errors.Is(err, uri.ErrIllegalCharacter) {
			t.Errorf("uri.ParseAuthority(%q) error = %v, want not matching %v", in, err, uri.ErrIllegalCharacter)
		}
	}
}

func TestParseAuthority_Bytes(t *testing.T) {
	t.Parallel()

	got, err := uri.ParseAuthority([]byte("user@example.com:80"))
	if err != nil {
		t.Fatalf("uri.ParseAuthority([]byte) error = %v, want nil", err)
	}
	want := uri.NewAuthority("example.com").SetUserinfo("user").SetPort(80)
	if !got.Equal(want) {
		t.Errorf("uri.ParseAuthority([]byte) = %v, want %v", got, want)
	}
}

func TestAuthority_Stringify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		auth    *uri.Authority
		want    string
		wantOk  bool
		wantErr error
	}{
		{"nil", (*uri.Authority)(nil), "", false, nil},
		{"zero", &uri.Authority{}, "", false, nil},
		{"empty host", uri.NewAuthority(""), "", false, nil},
		{"host", uri.NewAuthority("example.com"), "example.com", true, nil},
		{
			"all parts",
			uri.NewAuthority("example.com").SetUserinfo("user").SetPort(8080),
			"user@example.com:8080",
			true,
			nil,
		},
		{"port only", uri.NewAuthority("").SetPort(8080), ":8080", true, nil},
		{"userinfo only", uri.NewAuthority("").SetUserinfo("user"), "user@", true, nil},
		{"escaped userinfo", uri.NewAuthority("example.com").SetUserinfo("user:pass"), "user%3Apass@example.com", true, nil},
		{"escaped host", uri.NewAuthority("exa mple.com"), "exa%20mple.com", true, nil},
		{"ip literal verbatim", uri.NewAuthority("[2001:db8::1]").SetPort(443), "[2001:db8::1]:443", true, nil},
		{"non ascii host", uri.NewAuthority("exämple.com"), "", false, uri.ErrIllegalCharacter},
		{"non ascii userinfo", uri.NewAuthority("example.com").SetUserinfo("üser"), "", false, uri.ErrIllegalCharacter},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, ok, err := c.auth.Stringify()
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("auth.Stringify() error = %v, want %v\ndiff (-got +want):\n%v", err, c.wantErr, diff)
			}
			if got != c.want || ok != c.wantOk {
				t.Errorf("auth.Stringify() = %q, %v, want %q, %v", got, ok, c.want, c.wantOk)
			}
		})
	}
}

func TestAuthority_RoundTrip(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
	}{
		{"example.com", "example.com"},
		{"user@example.com:8080", "user@example.com:8080"},
		{"user@:8080", "user@:8080"},
		{"[::1]:5060", "[::1]:5060"},
		{"[v7.aaaa:bbbb]", "[v7.aaaa:bbbb]"},
		{"u%73er@example.com", "user@example.com"},
		{"user%3a@host", "user%3A@host"},
		{"%5Bzz%5D", "%5Bzz%5D"},
		{"example.com:", "example.com"},
		{"@example.com", "example.com"},
		{"example.com:0080", "example.com:80"},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			t.Parallel()

			a, err := uri.ParseAuthority(c.in)
			if err != nil {
				t.Fatalf("uri.ParseAuthority(%q) error = %v, want nil", c.in, err)
			}
			got, ok, err := a.Stringify()
			if err != nil || !ok {
				t.Fatalf("a.Stringify() = %q, %v, %v, want %q, true, nil", got, ok, err, c.want)
			}
			if got != c.want {
				t.Errorf("a.Stringify() = %q, want %q", got, c.want)
			}

			a2, err := uri.ParseAuthority(got)
			if err != nil {
				t.Fatalf("uri.ParseAuthority(%q) error = %v, want nil", got, err)
			}
			if !a2.Equal(a) {
				t.Errorf("uri.ParseAuthority(%q) = %+v, want %+v", got, a2, a)
			}
		})
	}
}

func TestAuthority_Format(t *testing.T) {
	t.Parallel()

	a := uri.NewAuthority("example.com").SetUserinfo("user").SetPort(80)
	cases := []struct {
		format string
		want   string
	}{
		{"%s", "user@example.com:80"},
		{"%+s", "user@example.com:80"},
		{"%q", `"user@example.com:80"`},
	}

	for _, c := range cases {
		if got := fmt.Sprintf(c.format, a); got != c.want {
			t.Errorf("fmt.Sprintf(%q, a) = %q, want %q", c.format, got, c.want)
		}
	}

	if got := fmt.Sprintf("%+v", a); !strings.Contains(got, "host:example.com") {
		t.Errorf("fmt.Sprintf(%q, a) = %q, want struct fields", "%+v", got)
	}
}

func TestAuthority_Equal(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		auth *uri.Authority
		val  any
		want bool
	}{
		{"nil ptr to nil", (*uri.Authority)(nil), nil, false},
		{"nil ptr to nil ptr", (*uri.Authority)(nil), (*uri.Authority)(nil), true},
		{"zero ptr to nil ptr", &uri.Authority{}, (*uri.Authority)(nil), false},
		{"zero ptr to zero val", &uri.Authority{}, uri.Authority{}, true},
		{"type mismatch", uri.NewAuthority("example.com"), "example.com", false},
		{"host case", uri.NewAuthority("example.com"), uri.NewAuthority("EXAMPLE.COM"), true},
		{"userinfo case", uri.NewAuthority("h").SetUserinfo("user"), uri.NewAuthority("h").SetUserinfo("USER"), false},
		{"port presence", uri.NewAuthority("h").SetPort(0), uri.NewAuthority("h"), false},
		{"different ports", uri.NewAuthority("h").SetPort(80), uri.NewAuthority("h").SetPort(81), false},
		{"literal and name", uri.NewAuthority("[::1]"), uri.NewAuthority("").SetRegName("[::1]"), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.auth.Equal(c.val); got != c.want {
				t.Errorf("auth.Equal(%v) = %v, want %v", c.val, got, c.want)
			}
		})
	}
}

func TestAuthority_Clone(t *testing.T) {
	t.Parallel()

	a := uri.NewAuthority("example.com").SetUserinfo("user")
	a2 := a.Clone()
	a2.SetPort(80)
	if _, ok := a.Port(); ok {
		t.Error("a.Port() ok = true after modifying the clone, want false")
	}
	if (*uri.Authority)(nil).Clone() != nil {
		t.Error("nil.Clone() != nil, want nil")
	}
}

func TestAuthority_IsValid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		auth *uri.Authority
		want bool
	}{
		{"nil", (*uri.Authority)(nil), false},
		{"zero", &uri.Authority{}, false},
		{"host", uri.NewAuthority("example.com").SetPort(80), true},
		{"escaped host", uri.NewAuthority("exa mple.com"), true},
		{"ipv6", uri.NewAuthority("[::1]"), true},
		{"bad literal", uri.NewAuthority("[zz]"), false},
		{"empty userinfo", uri.NewAuthority("example.com").SetUserinfo(""), false},
		{"non ascii", uri.NewAuthority("exämple.com"), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.auth.IsValid(); got != c.want {
				t.Errorf("auth.IsValid() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestAuthority_Text(t *testing.T) {
	t.Parallel()

	var a uri.Authority
	if err := a.UnmarshalText([]byte("user@[::1]:80")); err != nil {
		t.Fatalf("a.UnmarshalText() error = %v, want nil", err)
	}
	b, err := a.MarshalText()
	if err != nil {
		t.Fatalf("a.MarshalText() error = %v, want nil", err)
	}
	if got, want := string(b), "user@[::1]:80"; got != want {
		t.Errorf("a.MarshalText() = %q, want %q", got, want)
	}

	if err := a.UnmarshalText([]byte("[::1")); !errors.Is(err, uri.ErrIllegalHostDefinition) {
		t.Errorf("a.UnmarshalText() error = %v, want %v", err, uri.ErrIllegalHostDefinition)
	}
	if !a.IsZero() {
		t.Errorf("a = %+v after failed unmarshal, want zero", a)
	}
}
