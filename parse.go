package mdinline

// Parse builds the node forest for a token sequence.
//
// Each opening delimiter is matched with the next token of the same kind in
// the current range, ignoring other kinds. The tokens in between are parsed
// recursively as its children and the closer is dropped. An opener without a
// closer takes the rest of its range.
//
// A TokenBoldOrItalic anywhere in tokens fails the whole parse with
// *UnsupportedTokenError unless WithLiteralBoldOrItalic is set.
func Parse(tokens []Token, opts ...ParseOption) ([]Node, error) {
	p := parser{tokens: tokens, cfg: newParseConfig(opts)}
	return p.parseRange(0, len(tokens))
}

// ParseString tokenizes and parses input in one call.
func ParseString(input string, opts ...ParseOption) ([]Node, error) {
	return Parse(Tokenize(input), opts...)
}

type parser struct {
	tokens []Token
	cfg    parseConfig
}

// parseRange parses tokens[start:end]. An inner range never contains its own
// delimiter kind or that of any enclosing node, so recursion depth is bounded
// by the number of paired kinds.
func (p *parser) parseRange(start, end int) ([]Node, error) {
	nodes := []Node{}
	for i := start; i < end; {
		tok := p.tokens[i]
		i++
		switch tok.Kind {
		case tokenText:
			nodes = appendText(nodes, tok.Text)
		case tokenBold, tokenItalic, tokenStrikethrough, tokenSpoiler:
			closer := p.scanTo(tok.Kind, i, end)
			children, err := p.parseRange(i, closer)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, Node{Kind: pairedNodeKind(tok.Kind), Children: children})
			i = closer + 1
		case tokenBoldOrItalic:
			if p.cfg.literalTriple {
				nodes = appendText(nodes, tok.Literal())
				continue
			}
			return nil, &UnsupportedTokenError{Kind: tok.Kind, Index: i - 1}
		default:
			return nil, &UnsupportedTokenError{Kind: tok.Kind, Index: i - 1}
		}
	}
	return nodes, nil
}

// scanTo returns the index of the next token of kind in [from, end), or end.
func (p *parser) scanTo(kind tokenKind, from, end int) int {
	for j := from; j < end; j++ {
		if p.tokens[j].Kind == kind {
			return j
		}
	}
	return end
}

// appendText adds a text leaf, merging with a preceding leaf when the literal
// bold-or-italic policy has produced adjacent text.
func appendText(nodes []Node, text string) []Node {
	if n := len(nodes); n > 0 && nodes[n-1].Kind == nodeText {
		nodes[n-1].Text += text
		return nodes
	}
	return append(nodes, Node{Kind: nodeText, Text: text})
}

func pairedNodeKind(k tokenKind) nodeKind {
	switch k {
	case tokenBold:
		return nodeBold
	case tokenItalic:
		return nodeItalic
	case tokenStrikethrough:
		return nodeStrikethrough
	default:
		return nodeSpoiler
	}
}
