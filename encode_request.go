package mdinline

import (
	"fmt"
	"io"
)

// EncodeRequest configures Encode.
type EncodeRequest struct {
	Reader  io.Reader
	Writer  io.Writer
	Format  Format
	Indent  int
	Width   int
	Options []ParseOption
}

// Encode reads all of Reader, parses it and writes the tree to Writer.
//
// Input is checked with ValidateInput first. Nothing is written when parsing
// fails.
func Encode(req EncodeRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("encode: Reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("encode: Writer is nil")
	}
	src, err := io.ReadAll(req.Reader)
	if err != nil {
		return fmt.Errorf("encode: read: %w", err)
	}
	if err := ValidateInput(src); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	tokens := Tokenize(string(src))
	if req.Format == FormatTokens {
		return EncodeTokens(req.Writer, tokens)
	}
	nodes, err := Parse(tokens, req.Options...)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return EncodeNodes(req.Writer, nodes, req.Format, EncodeOptions{Indent: req.Indent, Width: req.Width})
}
