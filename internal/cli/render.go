package cli

import (
	"fmt"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/gouri/internal/errorutil"
	"github.com/ghettovoice/gouri/internal/grammar"
)

// uriChars holds every character allowed unescaped somewhere in a URI reference.
var uriChars = grammar.Reserved.Union("URI-reference", grammar.Unreserved)

type renderParams struct {
	escape   bool
	unescape bool
}

func newRenderCommand(a *app) *cobra.Command {
	var params renderParams
	cmd := &cobra.Command{
		Use:   "render [uri...]",
		Short: "Parse URI references and print them back",
		Long: `Parse URI references and print them back, one per line.

The output is the normalized form: the scheme is lowercased, percent-encoded triplets of
allowed characters are decoded and the rest are encoded with uppercase hex digits.

With --escape, characters that are never allowed in a URI, like spaces or a lone "%",
are percent-encoded before parsing. With --unescape, the output is printed with all
percent-encoded triplets decoded. Such output is meant for reading and may not parse back.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return errtrace.Wrap(a.render(cmd, args, &params))
		},
	}
	cmd.Flags().BoolVar(&params.escape, "escape", false, "percent-encode characters not allowed in a URI before parsing")
	cmd.Flags().BoolVar(&params.unescape, "unescape", false, "print the output with percent-encoded triplets decoded")
	return cmd
}

func (a *app) render(cmd *cobra.Command, args []string, params *renderParams) error {
	ins, err := a.inputs(cmd, args)
	if err != nil {
		return errtrace.Wrap(err)
	}

	w := cmd.OutOrStdout()
	var errs []error
	for _, in := range ins {
		src := in
		if params.escape {
			src = grammar.Escape(in, func(c byte) bool { return c == '%' || !uriChars.ContainsByte(c) })
		}

		u, err := a.parseURI(src)
		if err == nil {
			var s string
			if s, err = u.Stringify(); err == nil {
				if params.unescape {
					s = grammar.Unescape(s)
				}
				fmt.Fprintln(w, s)
				continue
			}
		}
		errs = append(errs, fmt.Errorf("%q: %w", in, err)) //errtrace:skip
	}
	return errtrace.Wrap(errorutil.JoinPrefix("render failed:", errs...))
}
