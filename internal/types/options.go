package types

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"sort"
)

// Options holds the product options chosen for a line item (size, color, ...).
// Options participate in row identity: two items with the same product but
// different options are distinct rows.
type Options map[string]string

// Clone returns an independent copy so a cart item never aliases caller state.
func (o Options) Clone() Options {
	if o == nil {
		return Options{}
	}
	c := make(Options, len(o))
	for k, v := range o {
		c[k] = v
	}
	return c
}

// sortedKeys returns the option keys in lexicographic order. Row identity must
// not depend on map insertion order.
func (o Options) sortedKeys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RowID computes the stable row identifier for a product/options combination:
// a 128-bit digest over the product id and the key-sorted options. Identical
// (productID, options) pairs always produce the same id regardless of the
// order the options were supplied in, and distinct pairs never share one:
// every component is length-prefixed, so ids, keys, and values may contain
// any characters without two serializations colliding.
func RowID(productID string, options Options) string {
	h := md5.New()
	hashComponent(h, productID)
	for _, k := range options.sortedKeys() {
		hashComponent(h, k)
		hashComponent(h, options[k])
	}
	return hex.EncodeToString(h.Sum(nil))
}

func hashComponent(h hash.Hash, s string) {
	fmt.Fprintf(h, "%d:", len(s))
	io.WriteString(h, s)
}
