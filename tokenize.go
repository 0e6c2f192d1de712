package mdinline

// Tokenize scans input into delimiter and text tokens. It never fails.
//
// Adjacent literal characters are coalesced, so the result never holds two
// consecutive TokenText tokens. Text tokens share memory with input.
func Tokenize(input string) []Token {
	return AppendTokens(nil, input)
}

// AppendTokens tokenizes input and appends the tokens to dst.
//
// Delimiters are ASCII, so scanning bytes is equivalent to scanning runes:
// multi-byte UTF-8 sequences never contain '*', '~' or '|'.
func AppendTokens(dst []Token, input string) []Token {
	start := 0 // first byte of the open text run
	for i := 0; i < len(input); {
		var (
			kind  tokenKind
			width int
		)
		switch input[i] {
		case '*':
			width = starRun(input, i)
			switch width {
			case 3:
				kind = tokenBoldOrItalic
			case 2:
				kind = tokenBold
			default:
				kind = tokenItalic
			}
		case '~':
			if !pairAt(input, i) {
				i++
				continue
			}
			kind, width = tokenStrikethrough, 2
		case '|':
			if !pairAt(input, i) {
				i++
				continue
			}
			kind, width = tokenSpoiler, 2
		default:
			i++
			continue
		}
		if start < i {
			dst = append(dst, Token{Kind: tokenText, Text: input[start:i]})
		}
		dst = append(dst, Token{Kind: kind})
		i += width
		start = i
	}
	if start < len(input) {
		dst = append(dst, Token{Kind: tokenText, Text: input[start:]})
	}
	return dst
}

// starRun returns the number of '*' at i, capped at three.
func starRun(s string, i int) int {
	n := 1
	for n < 3 && i+n < len(s) && s[i+n] == '*' {
		n++
	}
	return n
}

// pairAt reports whether s[i] is immediately followed by the same byte.
func pairAt(s string, i int) bool {
	return i+1 < len(s) && s[i+1] == s[i]
}
