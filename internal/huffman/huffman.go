// Package huffman implements the Ut Video Histogram and HuffmanBuilder
// components (spec §4.4–§4.5): a 256-bucket symbol histogram and a
// package-merge-free canonical Huffman code builder driven by a
// weight-biased binary min-heap.
//
// The heap itself — a slice of 1-indexed node numbers ordered by a
// Len/Less/Swap/Push/Pop adaptor over container/heap — follows the same
// shape as deepteams/webp's internal/lossless/encode_huffman.go nodeHeap,
// which builds its own VP8L Huffman tree the same way. The weight-encoding
// and combining rule (§4.5.1–§4.5.2) are spec-mandated and have no
// analogue in that tree; they are implemented bit for bit as specified.
package huffman

import (
	"container/heap"
	"sort"

	"github.com/mewkiz/pkg/errutil"
)

// NumSymbols is the fixed alphabet size Ut Video codes over.
const NumSymbols = 256

// Histogram counts symbol occurrences over a residual plane, per spec
// §4.4. It returns [256]uint32 whose sum equals len(residual).
func Histogram(residual []byte) [NumSymbols]uint32 {
	var counts [NumSymbols]uint32
	for _, v := range residual {
		counts[v]++
	}
	return counts
}

// Entry is a HuffEntry (spec §3): the canonical (length, code) pair for
// one symbol.
type Entry struct {
	Sym  uint8
	Len  uint8
	Code uint32
}

// node is one leaf or internal node of the weight-biased tree. Nodes are
// 1-indexed; node 0 is an unused sentinel (spec §4.5.1).
type node struct {
	weight uint32
	parent int
}

// weightHeap is a binary min-heap of 1-indexed node numbers keyed by node
// weight (spec §4.5.3), implemented with container/heap the way deepteams/webp's
// nodeHeap drives its own tree construction.
type weightHeap struct {
	nodes   []node
	indices []int
}

func (h *weightHeap) Len() int { return len(h.indices) }
func (h *weightHeap) Less(i, j int) bool {
	return h.nodes[h.indices[i]].weight < h.nodes[h.indices[j]].weight
}
func (h *weightHeap) Swap(i, j int) { h.indices[i], h.indices[j] = h.indices[j], h.indices[i] }
func (h *weightHeap) Push(x any)    { h.indices = append(h.indices, x.(int)) }
func (h *weightHeap) Pop() any {
	old := h.indices
	n := len(old)
	idx := old[n-1]
	h.indices = old[:n-1]
	return idx
}

// addWeight combines two node weights per spec §4.5.2: frequency bits add,
// and the depth tie-break (low 8 bits) becomes 1 + max(depth1, depth2).
func addWeight(w1, w2 uint32) uint32 {
	freq := (w1 & 0xFFFFFF00) + (w2 & 0xFFFFFF00)
	d1, d2 := w1&0xFF, w2&0xFF
	depth := d1
	if d2 > depth {
		depth = d2
	}
	return freq | (1 + depth)
}

// Build constructs the 256-entry canonical code table for the given
// histogram, following spec §4.5.1–§4.5.6:
//  1. Seed one leaf weight per symbol, substituting weight 1 for unused
//     symbols so every symbol gets a length >= 1.
//  2. Repeatedly combine the two lightest nodes via a weight-biased heap
//     until one root remains.
//  3. Derive each symbol's code length by walking parent pointers.
//  4. Assign canonical codes from the longest length down.
func Build(counts [NumSymbols]uint32) [NumSymbols]Entry {
	// 1-indexed node pool: node 0 is the sentinel, 1..256 are leaves,
	// 257.. are internal nodes allocated during construction.
	h := &weightHeap{nodes: make([]node, 1, 2*NumSymbols), indices: make([]int, 0, NumSymbols)}
	h.nodes[0] = node{weight: 0, parent: -1}
	for sym := 0; sym < NumSymbols; sym++ {
		c := counts[sym]
		if c == 0 {
			c = 1
		}
		h.nodes = append(h.nodes, node{weight: c << 8, parent: -1})
		h.indices = append(h.indices, len(h.nodes)-1)
	}
	heap.Init(h)

	for h.Len() > 1 {
		min1 := heap.Pop(h).(int)
		min2 := heap.Pop(h).(int)
		w := addWeight(h.nodes[min1].weight, h.nodes[min2].weight)
		h.nodes = append(h.nodes, node{weight: w, parent: -1})
		newIdx := len(h.nodes) - 1
		h.nodes[min1].parent = newIdx
		h.nodes[min2].parent = newIdx
		heap.Push(h, newIdx)
	}

	var entries [NumSymbols]Entry
	for sym := 0; sym < NumSymbols; sym++ {
		leaf := sym + 1
		length := 0
		for p := h.nodes[leaf].parent; p != -1; p = h.nodes[p].parent {
			length++
		}
		entries[sym] = Entry{Sym: uint8(sym), Len: uint8(length)}
	}

	assignCodes(entries[:])
	return entries
}

// assignCodes fills in entries[i].Code following spec §4.5.6: sort by
// length ascending, walk from the longest length down assigning
// MSB-aligned canonical codes, then restore symbol order.
func assignCodes(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Len < entries[j].Len })

	last := len(entries) - 1
	for last >= 0 && entries[last].Len == 255 {
		last--
	}

	code := uint32(1)
	for i := last; i >= 0; i-- {
		l := entries[i].Len
		if l == 0 {
			continue
		}
		entries[i].Code = code >> (32 - l)
		code += 0x80000000 >> (l - 1)
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Sym < entries[j].Sym })
}

// Validate checks the invariants of spec §8.4–§8.5: every length in
// [1, 32], and the Kraft equality holding exactly over the full alphabet.
func Validate(entries [NumSymbols]Entry) error {
	var kraft uint64
	for _, e := range entries {
		if e.Len < 1 || e.Len > 32 {
			return errutil.Newf("huffman: symbol %d has invalid code length %d", e.Sym, e.Len)
		}
		kraft += uint64(1) << (32 - e.Len)
	}
	if kraft != 1<<32 {
		return errutil.Newf("huffman: Kraft equality violated: got %d, want %d", kraft, uint64(1)<<32)
	}
	return nil
}
