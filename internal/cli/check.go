package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/gouri/internal/errorutil"
	"github.com/ghettovoice/gouri/internal/util"
)

// Failure kinds.
const (
	kindSyntax  = "syntax"
	kindTimeout = "timeout"
	kindLookup  = "lookup"
)

func failureKind(err error) string {
	switch {
	case errorutil.IsGrammarErr(err):
		return kindSyntax
	case errorutil.IsTimeoutErr(err):
		return kindTimeout
	default:
		return kindLookup
	}
}

type checkParams struct {
	format  string
	resolve bool
}

// checkResult is the printable outcome of a single check.
type checkResult struct {
	Input string   `json:"input" yaml:"input"`
	OK    bool     `json:"ok" yaml:"ok"`
	Kind  string   `json:"kind,omitempty" yaml:"kind,omitempty"`
	Error string   `json:"error,omitempty" yaml:"error,omitempty"`
	Addrs []string `json:"addrs,omitempty" yaml:"addrs,omitempty"`
}

func newCheckCommand(a *app) *cobra.Command {
	var params checkParams
	cmd := &cobra.Command{
		Use:   "check [uri...]",
		Short: "Check URI references",
		Long: `Check URI references.

Prints "ok" or the kind and reason of the failure for every input and exits with a non-zero code
if any input fails. With --resolve an input also fails when its host can not be resolved.`,
		PreRunE: func(*cobra.Command, []string) error {
			return errtrace.Wrap(checkFormat(params.format))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return errtrace.Wrap(a.check(cmd, args, &params))
		},
	}
	cmd.Flags().StringVarP(&params.format, "format", "f", formatText, "output format: text, json or yaml")
	cmd.Flags().BoolVar(&params.resolve, "resolve", false, "also require the hosts to resolve")
	return cmd
}

func (a *app) check(cmd *cobra.Command, args []string, params *checkParams) error {
	ins, err := a.inputs(cmd, args)
	if err != nil {
		return errtrace.Wrap(err)
	}

	ctx := cmd.Context()
	results := make([]*checkResult, 0, len(ins))
	var errs []error
	for _, in := range ins {
		res := &checkResult{Input: in}
		results = append(results, res)

		u, err := a.parseURI(in)
		if err == nil && params.resolve {
			res.Addrs, err = a.resolve(ctx, u)
		}
		if err != nil {
			a.logger.DebugContext(ctx, "check failed", slog.String("input", in), slog.Any("error", err))
			res.Kind, res.Error = failureKind(err), err.Error()
			errs = append(errs, fmt.Errorf("%q: %w", in, err)) //errtrace:skip
			continue
		}
		res.OK = true
	}

	if err := writeCheckResults(cmd, params, results); err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(errorutil.JoinPrefix("check failed:", errs...))
}

func writeCheckResults(cmd *cobra.Command, params *checkParams, results []*checkResult) error {
	w := cmd.OutOrStdout()
	switch params.format {
	case formatJSON:
		return errtrace.Wrap(writeJSON(w, results))
	case formatYAML:
		return errtrace.Wrap(writeYAML(w, results))
	}

	header := []string{"INPUT", "RESULT"}
	if params.resolve {
		header = append(header, "ADDRS")
	}
	table := newTable(w, header...)
	for _, res := range results {
		row := []string{util.Ellipsis(res.Input, maxInputCell), "ok"}
		if !res.OK {
			row[1] = res.Kind + ": " + res.Error
		}
		if params.resolve {
			row = append(row, strings.Join(res.Addrs, ","))
		}
		table.Append(row)
	}
	table.Render()
	return nil
}
