package mdinline

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
)

// Format names an output encoding for a parsed tree.
type Format string

const (
	// FormatJSON writes the node array as JSON.
	FormatJSON Format = "json"
	// FormatYAML writes the node array as YAML.
	FormatYAML Format = "yaml"
	// FormatOutline writes one indented line per node.
	FormatOutline Format = "outline"
	// FormatTokens writes the token stream, one token per line, without parsing.
	FormatTokens Format = "tokens"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatOutline, FormatTokens}
}

// ParseFormat resolves a format name, case-insensitively. Empty means JSON.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatYAML, FormatOutline, FormatTokens:
		return f, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownFormat, name)
	}
}

// EncodeOptions tunes encoder layout.
type EncodeOptions struct {
	// Indent is the number of spaces per nesting level for JSON and YAML.
	// Zero selects compact JSON and flow-style YAML.
	Indent int
	// Width limits outline lines; zero means unlimited.
	Width int
}

// EncodeNodes writes nodes to w in the given format. FormatTokens is not a
// tree encoding and is rejected here; use EncodeTokens.
func EncodeNodes(w io.Writer, nodes []Node, format Format, opts EncodeOptions) error {
	switch format {
	case FormatJSON, "":
		return encodeJSON(w, nodes, opts.Indent)
	case FormatYAML:
		return encodeYAML(w, nodes, opts.Indent)
	case FormatOutline:
		return encodeOutline(w, nodes, opts.Width)
	default:
		return fmt.Errorf("%w %q for nodes", ErrUnknownFormat, format)
	}
}

// EncodeTokens writes one token per line, e.g. Bold or Text("abc").
func EncodeTokens(w io.Writer, tokens []Token) error {
	bw := bufio.NewWriter(w)
	for _, tok := range tokens {
		if _, err := bw.WriteString(tok.String()); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func encodeJSON(w io.Writer, nodes []Node, indent int) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}
	return enc.Encode(toWireList(nodes))
}

func encodeYAML(w io.Writer, nodes []Node, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent), yaml.IndentSequence(true))
	} else {
		opts = append(opts, yaml.Flow(true))
	}
	data, err := yaml.MarshalWithOptions(toWireList(nodes), opts...)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

const (
	outlineIndent = "  "
	ellipsis      = "…"
)

func encodeOutline(w io.Writer, nodes []Node, width int) error {
	bw := bufio.NewWriter(w)
	err := Walk(nodes, func(n Node, depth int) (bool, error) {
		line := strings.Repeat(outlineIndent, depth) + n.Kind.String()
		if n.Kind == nodeText {
			line = fitLine(line+" ", strconv.Quote(n.Text), width)
		}
		if _, err := bw.WriteString(line); err != nil {
			return false, err
		}
		return true, bw.WriteByte('\n')
	})
	if err != nil {
		return err
	}
	return bw.Flush()
}

// fitLine appends text to prefix, truncating text with an ellipsis so the
// line stays within width printable cells. The prefix is never cut.
func fitLine(prefix, text string, width int) string {
	if width <= 0 {
		return prefix + text
	}
	room := width - ansi.PrintableRuneWidth(prefix)
	if ansi.PrintableRuneWidth(text) <= room {
		return prefix + text
	}
	if room <= 0 {
		return prefix
	}
	return prefix + truncate.StringWithTail(text, uint(room), ellipsis)
}
