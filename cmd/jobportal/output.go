package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	pkgerrors "github.com/pkg/errors"
)

type outputFormat string

const (
	formatTabular outputFormat = "tabular"
	formatJSON    outputFormat = "json"
)

func (f *outputFormat) String() string { return string(*f) }

func (f *outputFormat) Set(value string) error {
	switch outputFormat(value) {
	case formatTabular, formatJSON:
		*f = outputFormat(value)
		return nil
	}
	return pkgerrors.Errorf("unknown format %q, expected tabular or json", value)
}

func (f *outputFormat) Type() string { return "format" }

// write prints value as indented JSON, or through tabular when the format is
// tabular.
func write(out io.Writer, format outputFormat, value interface{}, tabular func(tw *tabwriter.Writer)) error {
	if format == formatJSON {
		data, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return pkgerrors.Wrap(err, "failed to encode output")
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 1, 2, ' ', 0)
	tabular(tw)
	return tw.Flush()
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
