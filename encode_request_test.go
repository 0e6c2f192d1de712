package mdinline

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestEncodeRejectsInvalidInput(t *testing.T) {
	var out bytes.Buffer
	err := Encode(EncodeRequest{
		Reader: bytes.NewReader([]byte{0xff, 0xfe}),
		Writer: &out,
	})
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}

func TestEncodeUnsupportedTokenWritesNothing(t *testing.T) {
	var out bytes.Buffer
	err := Encode(EncodeRequest{
		Reader: strings.NewReader("fine **until*** here"),
		Writer: &out,
		Format: FormatJSON,
	})
	var unsupported *UnsupportedTokenError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedTokenError, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "encode: parse: ") {
		t.Fatalf("unexpected error prefix: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}

func TestEncodeTokensFormatSkipsParser(t *testing.T) {
	var out bytes.Buffer
	err := Encode(EncodeRequest{
		Reader: strings.NewReader("***x***"),
		Writer: &out,
		Format: FormatTokens,
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := "BoldOrItalic\nText(\"x\")\nBoldOrItalic\n"
	if out.String() != want {
		t.Fatalf("Encode tokens = %q, want %q", out.String(), want)
	}
}

func TestEncodeWithLiteralOption(t *testing.T) {
	var out bytes.Buffer
	err := Encode(EncodeRequest{
		Reader:  strings.NewReader("***x***"),
		Writer:  &out,
		Options: []ParseOption{WithLiteralBoldOrItalic(true)},
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := `[{"type":"text","children":"***x***"}]` + "\n"
	if out.String() != want {
		t.Fatalf("Encode = %q, want %q", out.String(), want)
	}
}

func TestEncodeRequiresReaderAndWriter(t *testing.T) {
	if err := Encode(EncodeRequest{Writer: &bytes.Buffer{}}); err == nil {
		t.Fatalf("expected error for nil Reader")
	}
	if err := Encode(EncodeRequest{Reader: strings.NewReader("x")}); err == nil {
		t.Fatalf("expected error for nil Writer")
	}
}
