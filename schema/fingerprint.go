package schema

import (
	"encoding/hex"

	"github.com/goccy/go-json"
	"lukechampine.com/blake3"
)

// MarshalJSON serializes the tree as its plain document mapping.
// Map keys marshal in sorted order, so the output is canonical for a given
// tree regardless of property declaration order.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.ToMap())
}

// Fingerprint returns a stable content hash of the tree, usable as a
// snapshot identity: two trees with equal structure and constraints hash
// identically. Property declaration order does not affect the hash.
func (n *Node) Fingerprint() string {
	data, err := n.MarshalJSON()
	if err != nil {
		// ToMap only emits plain maps, slices, and scalars; marshaling them
		// cannot fail.
		panic("schema: fingerprint marshal: " + err.Error())
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
