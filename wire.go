package mdinline

import (
	"encoding/json"
	"fmt"
)

// wireNode is the serialized node shape shared by the JSON and YAML encoders.
// Children is a string for text nodes and a []wireNode otherwise.
type wireNode struct {
	Type     string `json:"type" yaml:"type"`
	Children any    `json:"children" yaml:"children"`
}

func toWire(n Node) wireNode {
	if n.Kind == nodeText {
		return wireNode{Type: n.Kind.String(), Children: n.Text}
	}
	return wireNode{Type: n.Kind.String(), Children: toWireList(n.Children)}
}

func toWireList(nodes []Node) []wireNode {
	out := make([]wireNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, toWire(n))
	}
	return out
}

// MarshalJSON encodes n as {"type": ..., "children": ...}. Text nodes carry
// their content as the children string; other nodes carry an array, which is
// never null.
func (n Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(toWire(n))
}

// UnmarshalJSON decodes the shape written by MarshalJSON.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type     string          `json:"type"`
		Children json.RawMessage `json:"children"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	kind, ok := ParseNodeKind(raw.Type)
	if !ok {
		return fmt.Errorf("node: unknown type %q", raw.Type)
	}
	if kind == nodeText {
		var text string
		if err := json.Unmarshal(raw.Children, &text); err != nil {
			return fmt.Errorf("node: text children: %w", err)
		}
		*n = Node{Kind: kind, Text: text}
		return nil
	}
	children := []Node{}
	if len(raw.Children) > 0 && string(raw.Children) != "null" {
		if err := json.Unmarshal(raw.Children, &children); err != nil {
			return fmt.Errorf("node: %s children: %w", kind, err)
		}
	}
	*n = Node{Kind: kind, Children: children}
	return nil
}
