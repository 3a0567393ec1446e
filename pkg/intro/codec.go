package intro

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Encode serializes a tree so a provider's introspection payload can be
// captured and replayed without the provider.
func Encode(tree *Tree) ([]byte, error) {
	data, err := msgpack.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("failed to encode introspection tree: %w", err)
	}
	return data, nil
}

// Decode parses a payload produced by Encode.
func Decode(data []byte) (*Tree, error) {
	var tree Tree
	if err := msgpack.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to decode introspection tree: %w", err)
	}
	return &tree, nil
}
