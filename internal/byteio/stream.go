// Package byteio implements the Ut Video ByteStream component (spec
// §4.2): a small cursor over a pre-sized packet buffer supporting
// sequential byte/word writes plus relative seeking, used by
// the plane encoder to back-fill the slice offset table.
package byteio

import (
	"encoding/binary"

	"github.com/mewkiz/pkg/errutil"
)

// Stream is a cursor over buf. Callers own buf's lifetime; Stream never
// reallocates it.
type Stream struct {
	buf []byte
	pos int
}

// New wraps buf, which must already be sized to the packet's worst-case
// upper bound (spec §3).
func New(buf []byte) *Stream {
	return &Stream{buf: buf}
}

// Tell reports the current cursor position.
func (s *Stream) Tell() int {
	return s.pos
}

// Bytes returns the portion of the backing buffer written so far.
func (s *Stream) Bytes() []byte {
	return s.buf[:s.pos]
}

func (s *Stream) ensure(n int) error {
	if s.pos+n > len(s.buf) {
		return errutil.Err(ErrBufferOverflow)
	}
	return nil
}

// ErrBufferOverflow is returned when a write would run past the end of
// the backing buffer.
var ErrBufferOverflow = errutil.Newf("byteio: buffer overflow")

// PutU8 appends a single byte and advances the cursor.
func (s *Stream) PutU8(v byte) error {
	if err := s.ensure(1); err != nil {
		return err
	}
	s.buf[s.pos] = v
	s.pos++
	return nil
}

// PutLE32 appends v as a little-endian 32-bit word and advances the
// cursor.
func (s *Stream) PutLE32(v uint32) error {
	if err := s.ensure(4); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(s.buf[s.pos:], v)
	s.pos += 4
	return nil
}

// PutBytes appends b verbatim and advances the cursor.
func (s *Stream) PutBytes(b []byte) error {
	if err := s.ensure(len(b)); err != nil {
		return err
	}
	copy(s.buf[s.pos:], b)
	s.pos += len(b)
	return nil
}

// SeekRelative moves the cursor by delta bytes, which may be negative. It
// fails with InvalidPosition (via the returned error) if the result would
// fall outside [0, len(buf)].
func (s *Stream) SeekRelative(delta int) error {
	next := s.pos + delta
	if next < 0 || next > len(s.buf) {
		return errutil.Err(ErrInvalidPosition)
	}
	s.pos = next
	return nil
}

// ErrInvalidPosition is returned by SeekRelative when the target offset
// falls outside the backing buffer.
var ErrInvalidPosition = errutil.Newf("byteio: invalid position")
