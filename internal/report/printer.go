package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/mpyw/concmut/internal/finding"
)

// Format selects the output encoding.
type Format string

// Output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown output format")

// Printer writes findings to an output stream.
type Printer struct {
	w      io.Writer
	format Format

	pos     *color.Color
	message *color.Color
	checker *color.Color
}

// NewPrinter creates a printer. Colors apply to the text format only.
func NewPrinter(w io.Writer, format Format, colored bool) (*Printer, error) {
	switch format {
	case FormatText, FormatJSON:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	p := &Printer{
		w:       w,
		format:  format,
		pos:     color.New(color.Bold),
		message: color.New(color.FgYellow),
		checker: color.New(color.FgCyan, color.Faint),
	}
	for _, c := range []*color.Color{p.pos, p.message, p.checker} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p, nil
}

// Print writes every finding.
func (p *Printer) Print(findings []finding.Finding) error {
	if p.format == FormatJSON {
		return p.printJSON(findings)
	}

	for _, f := range findings {
		if _, err := fmt.Fprintf(p.w, "%s: %s %s\n",
			p.pos.Sprint(f.Pos),
			p.message.Sprint(f.Message),
			p.checker.Sprintf("(%s)", f.Checker),
		); err != nil {
			return err
		}
	}
	return nil
}

type jsonReport struct {
	Findings []finding.Finding `json:"findings"`
	Count    int               `json:"count"`
}

func (p *Printer) printJSON(findings []finding.Finding) error {
	if findings == nil {
		findings = []finding.Finding{}
	}

	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{Findings: findings, Count: len(findings)})
}
