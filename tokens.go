package mdinline

import (
	"strconv"
	"strings"
)

// Token is a delimiter marker or a run of literal text.
type Token struct {
	Kind TokenKind
	// Text holds the literal run for TokenText and is empty otherwise.
	Text string
}

type tokenKind uint8

// TokenKind is the exported alias of tokenKind.
type TokenKind = tokenKind

const (
	tokenText tokenKind = iota
	tokenBold
	tokenItalic
	tokenBoldOrItalic
	tokenStrikethrough
	tokenSpoiler
)

const (
	// TokenText represents a run of literal characters.
	TokenText TokenKind = tokenText
	// TokenBold represents a ** delimiter.
	TokenBold TokenKind = tokenBold
	// TokenItalic represents a * delimiter.
	TokenItalic TokenKind = tokenItalic
	// TokenBoldOrItalic represents a *** delimiter, whose meaning is unresolved.
	TokenBoldOrItalic TokenKind = tokenBoldOrItalic
	// TokenStrikethrough represents a ~~ delimiter.
	TokenStrikethrough TokenKind = tokenStrikethrough
	// TokenSpoiler represents a || delimiter.
	TokenSpoiler TokenKind = tokenSpoiler
)

var tokenKindNames = [...]string{
	tokenText:          "Text",
	tokenBold:          "Bold",
	tokenItalic:        "Italic",
	tokenBoldOrItalic:  "BoldOrItalic",
	tokenStrikethrough: "Strikethrough",
	tokenSpoiler:       "Spoiler",
}

var tokenDelimiters = [...]string{
	tokenBold:          "**",
	tokenItalic:        "*",
	tokenBoldOrItalic:  "***",
	tokenStrikethrough: "~~",
	tokenSpoiler:       "||",
}

func (k tokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "TokenKind(" + strconv.Itoa(int(k)) + ")"
}

// IsDelimiter reports whether k is one of the delimiter kinds.
func (k tokenKind) IsDelimiter() bool {
	return k > tokenText && int(k) < len(tokenDelimiters)
}

// Literal returns the source characters the token was scanned from.
func (t Token) Literal() string {
	if t.Kind == tokenText {
		return t.Text
	}
	if t.Kind.IsDelimiter() {
		return tokenDelimiters[t.Kind]
	}
	return ""
}

func (t Token) String() string {
	if t.Kind == tokenText {
		return "Text(" + strconv.Quote(t.Text) + ")"
	}
	return t.Kind.String()
}

// JoinTokens reassembles the source text of a token sequence.
func JoinTokens(tokens []Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.Literal())
	}
	return b.String()
}
