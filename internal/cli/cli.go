// Package cli implements the urictl command line tool.
package cli

//go:generate go tool errtrace -w .
//go:generate go tool mockgen -destination=../testutil/dnsmock/resolver.go -package=dnsmock . HostResolver

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"net"
	"os"
	"strings"
	"time"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/gouri/dns"
	"github.com/ghettovoice/gouri/internal/errorutil"
	"github.com/ghettovoice/gouri/internal/log"
	"github.com/ghettovoice/gouri/uri"
)

// HostResolver resolves the host of a URI authority.
type HostResolver interface {
	LookupAuthority(ctx context.Context, a *uri.Authority) ([]net.IP, error)
}

// Config configures the command streams and dependencies.
// Zero fields are replaced by the process streams and [dns.Resolver].
type Config struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Resolver is used by --resolve.
	// If nil, a [dns.Resolver] configured with the --nameserver and --timeout flags is used.
	Resolver HostResolver
}

type rootParams struct {
	logLevel   string
	logFormat  string
	nameserver string
	timeout    time.Duration
	cacheSize  int
	strict     bool
}

type app struct {
	cfg    Config
	params rootParams
	logger *slog.Logger
}

// New creates the root urictl command.
func New(cfg Config) *cobra.Command {
	if cfg.Stdin == nil {
		cfg.Stdin = os.Stdin
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}

	a := &app{cfg: cfg, logger: log.Noop}
	root := &cobra.Command{
		Use:   "urictl",
		Short: "Parse, check and render RFC 3986 URI references",
		Long: `Parse, check and render RFC 3986 URI references.

URIs are taken from the arguments or, if there are none, line by line from the standard input.
Every flag can be set with the URICTL_<FLAG> environment variable, like URICTL_LOG_LEVEL=debug.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.SetIn(cfg.Stdin)
	root.SetOut(cfg.Stdout)
	root.SetErr(cfg.Stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.params.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	flags.StringVar(&a.params.logFormat, "log-format", log.FormatNone, "log format: console, dev or none")
	flags.StringVar(&a.params.nameserver, "nameserver", "", "DNS server used by --resolve, defaults to the first server of /etc/resolv.conf")
	flags.DurationVar(&a.params.timeout, "timeout", 5*time.Second, "DNS query timeout used by --resolve")
	flags.BoolVar(&a.params.strict, "strict", false, "match inputs against the complete RFC 3986 grammar before the component checks")
	flags.IntVar(&a.params.cacheSize, "cache-size", 256, "number of hosts cached by --resolve, 0 disables the cache")

	root.AddCommand(
		newParseCommand(a),
		newCheckCommand(a),
		newRenderCommand(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := checkEnvironmentVariables(cmd); err != nil {
		return errtrace.Wrap(err)
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(a.params.logLevel)); err != nil {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError(err))
	}
	logger, err := log.New(a.cfg.Stderr, a.params.logFormat, lvl)
	if err != nil {
		return errtrace.Wrap(err)
	}
	a.logger = logger

	if a.cfg.Resolver == nil {
		r := &dns.Resolver{
			NameServer: a.params.nameserver,
			Timeout:    a.params.timeout,
			Logger:     logger,
		}
		if a.params.cacheSize > 0 {
			if r.Cache, err = dns.NewCache(a.params.cacheSize); err != nil {
				return errtrace.Wrap(err)
			}
		}
		a.cfg.Resolver = r
	}
	return nil
}

// inputs returns the arguments or non-blank lines of the standard input.
func (a *app) inputs(cmd *cobra.Command, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	var lines []string
	sc := bufio.NewScanner(cmd.InOrStdin())
	for sc.Scan() {
		if ln := strings.TrimSpace(sc.Text()); ln != "" {
			lines = append(lines, ln)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return lines, nil
}

// parseURI parses in with [uri.ParseStrict] if --strict is set and with [uri.Parse] otherwise.
func (a *app) parseURI(in string) (*uri.URI, error) {
	if a.params.strict {
		return errtrace.Wrap2(uri.ParseStrict(in))
	}
	return errtrace.Wrap2(uri.Parse(in))
}

// resolve looks up the host of the URI authority.
// It returns nil if the URI has no host.
func (a *app) resolve(ctx context.Context, u *uri.URI) ([]string, error) {
	if _, ok := u.Host(); !ok {
		return nil, nil
	}

	ips, err := a.cfg.Resolver.LookupAuthority(ctx, u.Authority())
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	addrs := make([]string, len(ips))
	for i, ip := range ips {
		addrs[i] = ip.String()
	}
	a.logger.DebugContext(ctx, "host resolved", slog.Any("authority", u.Authority()), slog.Any("addrs", addrs))
	return addrs, nil
}
