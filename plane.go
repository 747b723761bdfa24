package utvideo

import (
	"github.com/mewkiz/utvideo/internal/bitwriter"
	"github.com/mewkiz/utvideo/internal/byteio"
	"github.com/mewkiz/utvideo/internal/huffman"
	"github.com/pkg/errors"
)

// lengthTableSize is the fixed 256-byte code-length table written at the
// start of every plane's coded payload (spec §4.6).
const lengthTableSize = huffman.NumSymbols

// unusedLength is the sentinel length byte for a symbol that never
// appears in the degenerate single-symbol fast path (spec §4.6.1).
const unusedLength = 0xFF

// encodePlane drives Predictor -> Histogram -> HuffmanBuilder -> BitWriter
// for one plane (spec §4.6): predict has already been applied, residual
// holds width*height tightly packed residual bytes. slices splits the
// plane into that many horizontal strips, each independently coded.
//
// This orchestration mirrors enc_subframe.go's encodeSubframe: write a
// small header, then dispatch to the payload writer appropriate for the
// data (degenerate vs. Huffman-coded), the same way the teacher writes a
// subframe header before choosing constant/fixed/verbatim encoding.
func encodePlane(bs *byteio.Stream, sliceBits *bitwriter.Writer, residual []byte, width, height, slices int) error {
	counts := huffman.Histogram(residual)

	if sym, ok := degenerateSymbol(counts, width*height); ok {
		return writeDegeneratePlane(bs, sym, slices)
	}

	entries := huffman.Build(counts)
	if err := huffman.Validate(entries); err != nil {
		return errors.WithStack(err)
	}

	for _, e := range entries {
		if err := bs.PutU8(e.Len); err != nil {
			return wrap(err)
		}
	}

	offsetTablePos := bs.Tell()
	for i := 0; i < slices; i++ {
		if err := bs.PutLE32(0); err != nil {
			return wrap(err)
		}
	}
	payloadEnd := bs.Tell()

	var cumulative uint32
	for i := 0; i < slices; i++ {
		rowStart := height * i / slices
		rowEnd := height * (i + 1) / slices
		sliceBytes, err := encodeSliceBits(sliceBits, entries, residual, width, rowStart, rowEnd)
		if err != nil {
			return errors.WithStack(err)
		}

		if err := bs.PutBytes(sliceBytes); err != nil {
			return wrap(err)
		}
		payloadEnd = bs.Tell()
		cumulative += uint32(len(sliceBytes))

		slotPos := offsetTablePos + i*4
		if err := bs.SeekRelative(slotPos - bs.Tell()); err != nil {
			return wrap(err)
		}
		if err := bs.PutLE32(cumulative); err != nil {
			return wrap(err)
		}
		if err := bs.SeekRelative(payloadEnd - bs.Tell()); err != nil {
			return wrap(err)
		}
	}

	return nil
}

// degenerateSymbol reports whether counts has exactly one non-zero bucket
// whose value equals total, and if so which symbol it is (spec §4.6.1).
func degenerateSymbol(counts [huffman.NumSymbols]uint32, total int) (uint8, bool) {
	sym, nonZero := uint8(0), 0
	for s, c := range counts {
		if c == 0 {
			continue
		}
		nonZero++
		if nonZero > 1 {
			return 0, false
		}
		sym = uint8(s)
	}
	return sym, nonZero == 1 && counts[sym] == uint32(total)
}

// writeDegeneratePlane emits the fast-path plane header: 256 length
// bytes (0 for the unique symbol, 0xFF elsewhere) and slices zero
// end-offsets, with no payload.
func writeDegeneratePlane(bs *byteio.Stream, sym uint8, slices int) error {
	for s := 0; s < lengthTableSize; s++ {
		length := byte(unusedLength)
		if uint8(s) == sym {
			length = 0
		}
		if err := bs.PutU8(length); err != nil {
			return wrap(err)
		}
	}
	for i := 0; i < slices; i++ {
		if err := bs.PutLE32(0); err != nil {
			return wrap(err)
		}
	}
	return nil
}

// encodeSliceBits writes the Huffman-coded bits of residual rows
// [rowStart, rowEnd) into the encoder's reusable scratch BitWriter, pads
// to a 32-bit boundary, and byte-swaps the result in 32-bit words per
// spec §4.6.3.
func encodeSliceBits(bw *bitwriter.Writer, entries [huffman.NumSymbols]huffman.Entry, residual []byte, width, rowStart, rowEnd int) ([]byte, error) {
	rows := rowEnd - rowStart
	// Worst case every symbol needs the maximum 32-bit code; generous but
	// finite scratch capacity so BufferOverflow can never spuriously fire
	// on a well-formed code table.
	cap := rows*width*4 + 8
	bw.Reset(cap)
	for y := rowStart; y < rowEnd; y++ {
		row := residual[y*width : y*width+width]
		for _, v := range row {
			e := entries[v]
			if err := putCode(bw, e.Code, e.Len); err != nil {
				return nil, wrap(err)
			}
		}
	}
	out, err := bw.Flush()
	if err != nil {
		return nil, wrap(err)
	}
	bitwriter.Swap32(out)
	return out, nil
}

// putCode writes a canonical code of up to 32 bits MSB-first, splitting
// it across two Put calls when it exceeds bitwriter.MaxBits (spec §4.1):
// the high bits first, then the low MaxBits bits, preserving bit order.
func putCode(bw *bitwriter.Writer, code uint32, length uint8) error {
	if length > bitwriter.MaxBits {
		high := length - bitwriter.MaxBits
		if err := bw.Put(code>>bitwriter.MaxBits, high); err != nil {
			return err
		}
		return bw.Put(code&(1<<bitwriter.MaxBits-1), bitwriter.MaxBits)
	}
	return bw.Put(code, length)
}
