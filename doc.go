// Package mdinline parses inline chat-style markup into a typed tree.
//
// Input is a flat run of text using a small delimiter set:
//
//	**bold**  *italic*  ~~strikethrough~~  ||spoiler||
//
// Parsing happens in two pure stages. Tokenize scans the text once and emits
// delimiter and text tokens; Parse matches each opening delimiter with the next
// token of the same kind and recurses into the range between them. The result
// is a forest of Node values with no implicit root.
//
// Core properties:
//   - Tokenize is total; every input produces a token stream
//   - Delimiters match by kind only, without a cross-kind stack
//   - Unterminated delimiters absorb the rest of their range
//   - A triple delimiter (***) is rejected with *UnsupportedTokenError
//     unless WithLiteralBoldOrItalic is set
//
// Example:
//
//	nodes, err := mdinline.ParseString("*a* **b** ~~c~~ ||d||")
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = mdinline.EncodeNodes(os.Stdout, nodes, mdinline.FormatJSON, mdinline.EncodeOptions{Indent: 2})
//
// The tree serializes to objects with a "type" and a "children" field, see
// Node.MarshalJSON.
package mdinline
