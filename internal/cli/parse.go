package cli

import (
	"fmt"
	"log/slog"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/gouri/internal/errorutil"
	"github.com/ghettovoice/gouri/internal/log"
)

type parseParams struct {
	format  string
	resolve bool
}

func newParseCommand(a *app) *cobra.Command {
	var params parseParams
	cmd := &cobra.Command{
		Use:   "parse [uri...]",
		Short: "Parse URI references and print their components",
		Long: `Parse URI references and print their components.

Components are printed percent-decoded. An absent component is left blank in the text format
and omitted in the JSON and YAML formats.`,
		PreRunE: func(*cobra.Command, []string) error {
			return errtrace.Wrap(checkFormat(params.format))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return errtrace.Wrap(a.parse(cmd, args, &params))
		},
	}
	cmd.Flags().StringVarP(&params.format, "format", "f", formatText, "output format: text, json or yaml")
	cmd.Flags().BoolVar(&params.resolve, "resolve", false, "look up IP addresses of the hosts")
	return cmd
}

func (a *app) parse(cmd *cobra.Command, args []string, params *parseParams) error {
	ins, err := a.inputs(cmd, args)
	if err != nil {
		return errtrace.Wrap(err)
	}

	ctx := cmd.Context()
	views := make([]*uriView, 0, len(ins))
	var errs []error
	for _, in := range ins {
		u, err := a.parseURI(in)
		if err != nil {
			a.logger.DebugContext(ctx, "parse failed", slog.Any("input", log.StringValue(in)), slog.Any("error", err))
			errs = append(errs, fmt.Errorf("%q: %w", in, err)) //errtrace:skip
			continue
		}
		a.logger.DebugContext(ctx, "uri parsed", slog.Any("uri", u), slog.Any("fields", log.FmtValue(u, false)))

		v := newURIView(in, u)
		if params.resolve {
			if v.Addrs, err = a.resolve(ctx, u); err != nil {
				a.logger.WarnContext(ctx, "host lookup failed", slog.Any("uri", u), slog.Any("error", err))
			}
		}
		views = append(views, v)
	}

	if err := writeURIViews(cmd.OutOrStdout(), params.format, views, params.resolve); err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(errorutil.JoinPrefix("parse failed:", errs...))
}
