// Package bitwriter implements the Ut Video BitWriter component (spec
// §4.1): MSB-first variable-length code packing into an in-memory buffer,
// padded to a 32-bit boundary and byte-swapped in 32-bit words for the
// on-the-wire layout the decoder expects.
package bitwriter

import (
	"bytes"

	"github.com/icza/bitio"
	"github.com/mewkiz/pkg/errutil"
)

// MaxBits is the largest n accepted by a single Put call (spec §4.1).
const MaxBits = 25

// ErrBufferOverflow is returned when a write would exceed cap, mirroring
// spec §4.1's BufferOverflow condition.
var ErrBufferOverflow = errutil.Newf("bitwriter: buffer overflow")

// Writer accumulates MSB-first bits the way a FLAC subframe's bit writer
// does (see enc_subframe.go in the teacher package), but over an in-memory
// buffer instead of a streaming io.Writer, since the plane encoder needs
// to know the exact byte count before it byte-swaps and copies the result
// into the packet.
type Writer struct {
	buf         bytes.Buffer
	bw          *bitio.Writer
	bitsWritten int64
	cap         int
}

// New returns a Writer whose backing buffer will refuse to grow past cap
// bytes, returning ErrBufferOverflow instead.
func New(cap int) *Writer {
	w := &Writer{cap: cap}
	w.bw = bitio.NewWriter(&w.buf)
	return w
}

// Reset discards any bits written so far and rearms the Writer with a new
// cap, reusing the underlying buffer's storage (spec §5: slice_bits is
// owned by the encoder and grown monotonically across frames, never
// reallocated from scratch per call).
func (w *Writer) Reset(cap int) {
	w.buf.Reset()
	w.bw = bitio.NewWriter(&w.buf)
	w.bitsWritten = 0
	w.cap = cap
}

// Put writes the low n bits of v MSB-first, 1 <= n <= MaxBits.
func (w *Writer) Put(v uint32, n uint8) error {
	if n < 1 || n > MaxBits {
		return errutil.Newf("bitwriter: invalid bit count %d", n)
	}
	if w.buf.Len() >= w.cap {
		return ErrBufferOverflow
	}
	if err := w.bw.WriteBits(uint64(v), n); err != nil {
		return errutil.Err(err)
	}
	w.bitsWritten += int64(n)
	if w.buf.Len() > w.cap {
		return ErrBufferOverflow
	}
	return nil
}

// BitsWritten reports the number of payload bits written before flush
// padding, per spec §4.1.
func (w *Writer) BitsWritten() int64 {
	return w.bitsWritten
}

// Flush pads the bitstream with zero bits to the next 32-bit boundary (no
// padding is emitted if already aligned, per spec §9) and returns the
// raw MSB-first bytes. The returned slice is always a multiple of 4 bytes
// long.
func (w *Writer) Flush() ([]byte, error) {
	if rem := w.bitsWritten & 0x1F; rem != 0 {
		pad := uint8(32 - rem)
		for pad > MaxBits {
			if err := w.bw.WriteBits(0, MaxBits); err != nil {
				return nil, errutil.Err(err)
			}
			pad -= MaxBits
		}
		if err := w.bw.WriteBits(0, pad); err != nil {
			return nil, errutil.Err(err)
		}
	}
	if err := w.bw.Close(); err != nil {
		return nil, errutil.Err(err)
	}
	out := w.buf.Bytes()
	if len(out)%4 != 0 {
		return nil, errutil.Newf("bitwriter: flushed length %d not a multiple of 4", len(out))
	}
	if len(out) > w.cap {
		return nil, ErrBufferOverflow
	}
	return out, nil
}

// Swap32 byte-swaps buf in place in 32-bit words ([b0 b1 b2 b3] -> [b3 b2
// b1 b0]), the on-the-wire transform spec §4.6.3 requires before a slice's
// bits are copied into the packet. len(buf) must be a multiple of 4.
func Swap32(buf []byte) {
	for i := 0; i+4 <= len(buf); i += 4 {
		buf[i], buf[i+1], buf[i+2], buf[i+3] = buf[i+3], buf[i+2], buf[i+1], buf[i]
	}
}
