package grammar_test

import (
	"errors"
	"testing"

	"github.com/ghettovoice/gouri/internal/grammar"
)

func TestParseURIReference(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		want  map[string]string
	}{
		{
			"full uri",
			"http://u@h:80/p?q#f",
			map[string]string{
				"URI":          "http://u@h:80/p?q#f",
				"scheme":       "http",
				"authority":    "u@h:80",
				"userinfo":     "u",
				"host":         "h",
				"port":         "80",
				"path-abempty": "/p",
				"query":        "q",
				"fragment":     "f",
			},
		},
		{"rootless path", "urn:isbn:0451450523", map[string]string{"scheme": "urn", "path-rootless": "isbn:0451450523"}},
		{
			"ipv6 literal",
			"//[2001:db8::7]/",
			map[string]string{
				"relative-ref": "//[2001:db8::7]/",
				"IP-literal":   "[2001:db8::7]",
				"IPv6address":  "2001:db8::7",
				"path-abempty": "/",
			},
		},
		{"ipv6 with ipv4 tail", "//[::ffff:192.0.2.1]", map[string]string{"IPv6address": "::ffff:192.0.2.1"}},
		{"ipvfuture literal", "//[v1a.x:y]", map[string]string{"IPvFuture": "v1a.x:y"}},
		{"noscheme path", "a/b", map[string]string{"path-noscheme": "a/b"}},
		{"absolute path", "/", map[string]string{"path-absolute": "/"}},
		{"empty", "", map[string]string{"path-empty": ""}},
		{"query only", "?x=%41", map[string]string{"path-empty": "", "query": "x=%41"}},
		{"empty query and fragment", "a?#", map[string]string{"query": "", "fragment": ""}},
		{"empty authority", "http:///x", map[string]string{"authority": "", "path-abempty": "/x"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			node, err := grammar.ParseURIReference(c.input)
			if err != nil {
				t.Fatalf("grammar.ParseURIReference(%q) error = %v, want nil", c.input, err)
			}
			if got := node.String(); got != c.input {
				t.Errorf("grammar.ParseURIReference(%q) = %q, want %q", c.input, got, c.input)
			}
			for key, want := range c.want {
				n, ok := node.GetNode(key)
				if !ok {
					t.Errorf("grammar.ParseURIReference(%q) has no %q node", c.input, key)
					continue
				}
				if got := n.String(); got != want {
					t.Errorf("grammar.ParseURIReference(%q) %q node = %q, want %q", c.input, key, got, want)
				}
			}
		})
	}
}

func TestParseURIReference_Malformed(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
	}{
		{"space", "a b"},
		{"bad escape", "http://h/%zz"},
		{"ipv6 dangling colon", "http://[1:2:3:4:5:6:7:]/"},
		{"ipv6 too few groups", "//[1:2:3]"},
		{"ipv6 double compression", "//[1::2::3]"},
		{"unclosed literal", "//[::1"},
		{"port with letters", "http://h:8x"},
		{"second hash", "#a#b"},
		{"colon in first segment", "1http:"},
		{"at in userinfo", "//a@b@h"},
		{"non ascii", "/café"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if _, err := grammar.ParseURIReference([]byte(c.input)); !errors.Is(err, grammar.ErrMalformedInput) {
				t.Errorf("grammar.ParseURIReference(%q) error = %v, want %v", c.input, err, grammar.ErrMalformedInput)
			}
		})
	}
}

func BenchmarkParseURIReference(b *testing.B) {
	in := []byte("http://user@[2001:db8::7]:8080/this/is%20a/path?name=tom#page3")
	for b.Loop() {
		if _, err := grammar.ParseURIReference(in); err != nil {
			b.Fatal(err)
		}
	}
}
