package report

import (
	"context"
	"io"
	"slices"
	"time"

	"github.com/matzehuels/depchecker/pkg/errors"
	"github.com/matzehuels/depchecker/pkg/observability"
)

// Format names an output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatDOT  Format = "dot"
	FormatSVG  Format = "svg"
)

// Formats lists the supported formats.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatDOT, FormatSVG}

// ParseFormat validates a format name. The empty string selects text.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatText, nil
	}
	if f := Format(s); slices.Contains(Formats, f) {
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want text, json, yaml, dot or svg)", s)
}

// Options configures report output.
type Options struct {
	// Styled colors the text format. Only set it for terminals.
	Styled bool
}

// Write renders r to w in the given format.
func Write(ctx context.Context, w io.Writer, r *Report, format Format, opts Options) (err error) {
	start := time.Now()
	defer func() {
		observability.Report().OnReport(ctx, string(format), r.Findings(), time.Since(start), err)
	}()

	switch format {
	case FormatText, "":
		return WriteText(w, r, opts)
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatYAML:
		return WriteYAML(w, r)
	case FormatDOT:
		return WriteDOT(w, r)
	case FormatSVG:
		return WriteSVG(ctx, w, r)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
}
