package cli

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"braces.dev/errtrace"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/ghettovoice/gouri/internal/errorutil"
	"github.com/ghettovoice/gouri/internal/util"
	"github.com/ghettovoice/gouri/uri"
)

// Output formats.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// maxInputCell is the max number of runes of the input printed in a table cell.
const maxInputCell = 48

func checkFormat(f string) error {
	switch f {
	case formatText, formatJSON, formatYAML:
		return nil
	default:
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("unknown output format %q", f))
	}
}

// uriView is the printable form of a parsed URI.
// Absent components are nil.
type uriView struct {
	Input     string   `json:"input" yaml:"input"`
	Scheme    *string  `json:"scheme,omitempty" yaml:"scheme,omitempty"`
	Userinfo  *string  `json:"userinfo,omitempty" yaml:"userinfo,omitempty"`
	Host      *string  `json:"host,omitempty" yaml:"host,omitempty"`
	IPLiteral bool     `json:"ip_literal,omitempty" yaml:"ip_literal,omitempty"`
	Port      *uint16  `json:"port,omitempty" yaml:"port,omitempty"`
	Path      string   `json:"path" yaml:"path"`
	Query     *string  `json:"query,omitempty" yaml:"query,omitempty"`
	Fragment  *string  `json:"fragment,omitempty" yaml:"fragment,omitempty"`
	URI       string   `json:"uri" yaml:"uri"`
	Addrs     []string `json:"addrs,omitempty" yaml:"addrs,omitempty"`
}

func newURIView(in string, u *uri.URI) *uriView {
	v := &uriView{
		Input:     in,
		IPLiteral: u.Authority().IsIPLiteral(),
		Path:      u.Path(),
		URI:       u.String(),
	}
	if s, ok := u.Scheme(); ok {
		v.Scheme = &s
	}
	if s, ok := u.Userinfo(); ok {
		v.Userinfo = &s
	}
	if s, ok := u.Host(); ok {
		v.Host = &s
	}
	if p, ok := u.Port(); ok {
		v.Port = &p
	}
	if s, ok := u.Query(); ok {
		v.Query = &s
	}
	if s, ok := u.Fragment(); ok {
		v.Fragment = &s
	}
	return v
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return errtrace.Wrap(enc.Encode(v))
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(enc.Close())
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

// cell renders an optional component: absent is blank, present but empty is "".
func cell(v *string) string {
	switch {
	case v == nil:
		return ""
	case *v == "":
		return `""`
	default:
		return *v
	}
}

func writeURIViews(w io.Writer, format string, views []*uriView, withAddrs bool) error {
	switch format {
	case formatJSON:
		return errtrace.Wrap(writeJSON(w, views))
	case formatYAML:
		return errtrace.Wrap(writeYAML(w, views))
	}

	header := []string{"INPUT", "SCHEME", "USERINFO", "HOST", "PORT", "PATH", "QUERY", "FRAGMENT"}
	if withAddrs {
		header = append(header, "ADDRS")
	}
	table := newTable(w, header...)
	for _, v := range views {
		port := ""
		if v.Port != nil {
			port = strconv.FormatUint(uint64(*v.Port), 10)
		}
		row := []string{
			util.Ellipsis(v.Input, maxInputCell),
			cell(v.Scheme),
			cell(v.Userinfo),
			cell(v.Host),
			port,
			v.Path,
			cell(v.Query),
			cell(v.Fragment),
		}
		if withAddrs {
			row = append(row, strings.Join(v.Addrs, ","))
		}
		table.Append(row)
	}
	table.Render()
	return nil
}
