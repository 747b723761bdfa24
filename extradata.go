package utvideo

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// implementationID identifies this encoder lineage in the extradata
// version field (spec §4.8); the reference FFmpeg encoder uses 0xF0.
const implementationID = 0xF0

// compHuff is the only compression method this encoder emits.
const compHuff = 0

// interlacedFlag is the bit position of the interlaced flag within the
// extradata flags field (spec §4.8).
const interlacedFlag = 1 << 11

// ExtradataSize is the fixed size of the container-level header emitted
// once per stream.
const ExtradataSize = 16

// Extradata builds the 16-byte container header for cfg (spec §4.8). It
// is produced once at encoder initialization and is immutable thereafter.
func Extradata(cfg EncoderConfig) ([]byte, error) {
	fourCC, err := cfg.PixFmt.fourCC()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if cfg.Slices < 1 {
		return nil, errors.WithStack(InvalidDimensions)
	}

	buf := make([]byte, ExtradataSize)

	// Version: big-endian (0x01, 0x00, 0x00, implementationID).
	buf[0], buf[1], buf[2], buf[3] = 0x01, 0x00, 0x00, implementationID

	binary.LittleEndian.PutUint32(buf[4:8], fourCC)
	binary.LittleEndian.PutUint32(buf[8:12], 4)

	flags := uint32(cfg.Slices-1) << 24
	if cfg.Interlaced {
		flags |= interlacedFlag
	}
	flags |= compHuff
	binary.LittleEndian.PutUint32(buf[12:16], flags)

	return buf, nil
}
