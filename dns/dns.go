// Package dns resolves URI hosts to IP addresses.
package dns

//go:generate go tool errtrace -w .

import (
	"context"
	"log/slog"
	"net"
	"slices"
	"strings"
	"time"

	"braces.dev/errtrace"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/miekg/dns"

	"github.com/ghettovoice/gouri/internal/errorutil"
	"github.com/ghettovoice/gouri/internal/log"
	"github.com/ghettovoice/gouri/uri"
)

// ErrUnsupportedHost is returned when the host can not be resolved to an IP address,
// like IPvFuture literals or absent hosts.
const ErrUnsupportedHost errorutil.Error = "unsupported host"

// Resolver looks up A and AAAA records through a single name server.
type Resolver struct {
	// NameServer specifies the DNS server address (e.g., "8.8.8.8:53").
	// If empty, the first server from /etc/resolv.conf is used.
	NameServer string
	// Timeout specifies the timeout for DNS queries.
	// If zero, defaults to 5 seconds.
	Timeout time.Duration
	// Logger is used to log queries. If nil, nothing is logged.
	Logger *slog.Logger
	// Cache keeps successful lookups keyed by network and FQDN.
	// If nil, every lookup queries the name server.
	Cache *lru.Cache[string, []net.IP]
}

// NewCache creates a lookup cache holding up to size entries.
func NewCache(size int) (*lru.Cache[string, []net.IP], error) {
	return errtrace.Wrap2(lru.New[string, []net.IP](size))
}

// LookupIP looks up the host for the given network ("ip", "ip4" or "ip6").
// IPv4 addresses are returned in 4-byte form.
func (r *Resolver) LookupIP(ctx context.Context, network, host string) ([]net.IP, error) {
	var qtypes []uint16
	switch network {
	case "ip":
		qtypes = []uint16{dns.TypeA, dns.TypeAAAA}
	case "ip4":
		qtypes = []uint16{dns.TypeA}
	case "ip6":
		qtypes = []uint16{dns.TypeAAAA}
	default:
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("unknown network %q", network))
	}

	key := network + "/" + strings.ToLower(dns.Fqdn(host))
	if r.Cache != nil {
		if ips, ok := r.Cache.Get(key); ok {
			return slices.Clone(ips), nil
		}
	}

	nameserver, err := r.nameserver()
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	var ips []net.IP
	for _, qt := range qtypes {
		res, err := r.exchange(ctx, nameserver, host, qt)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		ips = append(ips, res...)
	}
	if len(ips) == 0 {
		return nil, errtrace.Wrap(&net.DNSError{
			Err:        "no such host",
			Name:       host,
			Server:     nameserver,
			IsNotFound: true,
		})
	}
	if r.Cache != nil {
		r.Cache.Add(key, slices.Clone(ips))
	}
	return ips, nil
}

func (r *Resolver) exchange(ctx context.Context, nameserver, host string, qtype uint16) ([]net.IP, error) {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(host), qtype)
	m.RecursionDesired = true

	client := &dns.Client{Timeout: r.timeout()}
	resp, rtt, err := client.ExchangeContext(ctx, m, nameserver)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	r.logger().LogAttrs(ctx, slog.LevelDebug, "dns query completed",
		slog.String("name", host),
		slog.String("type", dns.TypeToString[qtype]),
		slog.String("server", nameserver),
		slog.String("rcode", dns.RcodeToString[resp.Rcode]),
		slog.Int("answers", len(resp.Answer)),
		slog.Duration("rtt", rtt),
	)

	switch resp.Rcode {
	case dns.RcodeSuccess:
	case dns.RcodeNameError:
		// other record types of the same name are still queried
		return nil, nil
	default:
		return nil, errtrace.Wrap(&net.DNSError{
			Err:    dns.RcodeToString[resp.Rcode],
			Name:   host,
			Server: nameserver,
		})
	}

	ips := make([]net.IP, 0, len(resp.Answer))
	for _, ans := range resp.Answer {
		switch rr := ans.(type) {
		case *dns.A:
			ips = append(ips, rr.A.To4())
		case *dns.AAAA:
			ips = append(ips, rr.AAAA)
		}
	}
	return ips, nil
}

// LookupAuthority resolves the host of the authority.
//
// IP literal hosts and reg-names holding an IP address are returned as is without a query.
// It fails with [ErrUnsupportedHost] if the authority has no host or the host is an IPvFuture literal.
func (r *Resolver) LookupAuthority(ctx context.Context, a *uri.Authority) ([]net.IP, error) {
	host, ok := a.Host()
	if !ok {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrUnsupportedHost, "no host"))
	}
	if a.IsIPLiteral() {
		ip := net.ParseIP(strings.Trim(host, "[]"))
		if ip == nil {
			return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrUnsupportedHost, "%q", host))
		}
		return []net.IP{ip}, nil
	}
	if ip := net.ParseIP(host); ip != nil {
		if ip4 := ip.To4(); ip4 != nil {
			return []net.IP{ip4}, nil
		}
		return []net.IP{ip}, nil
	}
	return errtrace.Wrap2(r.LookupIP(ctx, "ip", host))
}

func (r *Resolver) timeout() time.Duration {
	if r.Timeout > 0 {
		return r.Timeout
	}
	return 5 * time.Second
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.Noop
}

func (r *Resolver) nameserver() (string, error) {
	if r.NameServer != "" {
		if _, _, err := net.SplitHostPort(r.NameServer); err != nil {
			return net.JoinHostPort(r.NameServer, "53"), nil //nolint:nilerr
		}
		return r.NameServer, nil
	}

	conf, err := dns.ClientConfigFromFile("/etc/resolv.conf")
	if err != nil {
		return "", errtrace.Wrap(err)
	}
	if len(conf.Servers) == 0 {
		return "", errtrace.Wrap(&net.DNSError{
			Err:  "no DNS servers configured",
			Name: "resolv.conf",
		})
	}
	return net.JoinHostPort(conf.Servers[0], conf.Port), nil
}

var defResolver = &Resolver{}

// DefaultResolver returns the resolver used by the package-level functions.
func DefaultResolver() *Resolver { return defResolver }

// LookupIP looks up the host using the default resolver.
func LookupIP(ctx context.Context, host string) ([]net.IP, error) {
	return errtrace.Wrap2(defResolver.LookupIP(ctx, "ip", host))
}

// LookupAuthority resolves the host of the authority using the default resolver.
func LookupAuthority(ctx context.Context, a *uri.Authority) ([]net.IP, error) {
	return errtrace.Wrap2(defResolver.LookupAuthority(ctx, a))
}
