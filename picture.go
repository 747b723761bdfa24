package utvideo

import "github.com/pkg/errors"

// PixFmt identifies the pixel layout of a picture handed to the encoder.
type PixFmt int

// Supported pixel formats.
const (
	// PixFmtRGB24 is RGB interleaved, step 3, channel order {G, B, R} once
	// mangled.
	PixFmtRGB24 PixFmt = iota
	// PixFmtRGBA is RGBA interleaved, step 4, channel order {G, B, R, A}
	// once mangled.
	PixFmtRGBA
	// PixFmtYUV422P is planar 4:2:2: chroma planes are W/2 x H. Requires
	// even width.
	PixFmtYUV422P
	// PixFmtYUV420P is planar 4:2:0: chroma planes are W/2 x H/2. Requires
	// even width and height.
	PixFmtYUV420P
)

// fourCC reports the container FourCC for pix, per spec §6.
func (pix PixFmt) fourCC() (uint32, error) {
	switch pix {
	case PixFmtRGB24:
		return fourCCULRG, nil
	case PixFmtRGBA:
		return fourCCULRA, nil
	case PixFmtYUV420P:
		return fourCCULY0, nil
	case PixFmtYUV422P:
		return fourCCULY2, nil
	default:
		return 0, errors.WithStack(InvalidPixelFormat)
	}
}

// FourCC values recognized by Ut Video decoders, stored little-endian in
// the extradata's "original format" field (spec §4.8).
const (
	fourCCULRG = 0x47524C55 // "ULRG"
	fourCCULRA = 0x41524C55 // "ULRA"
	fourCCULY0 = 0x30594C55 // "ULY0"
	fourCCULY2 = 0x32594C55 // "ULY2"
)

// rgbOrder maps a plane index to the byte offset of that channel within an
// interleaved RGB/RGBA pixel, after the mangle of §4.3.1 has been applied.
// Plane order is always {G, B, R, (A)}.
var (
	rgbOrder  = [3]int{1, 2, 0}
	rgbaOrder = [4]int{1, 2, 0, 3}
)

// planeCount returns the number of planes pix carries.
func (pix PixFmt) planeCount() int {
	switch pix {
	case PixFmtRGBA:
		return 4
	default:
		return 3
	}
}

// Picture is one raw input frame: per-plane pointers and linesizes,
// dimensions, and pixel format. For RGB24/RGBA the single interleaved
// buffer is given as Data[0] with Linesize[0] bytes per row; for the
// planar YUV formats Data[i]/Linesize[i] describe plane i independently.
type Picture struct {
	Width, Height int
	PixFmt        PixFmt
	Data          [4][]byte
	Linesize      [4]int
}

// validate checks that p's dimensions are legal for its pixel format, per
// spec §3 and §7 (InvalidDimensions).
func (p *Picture) validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return errors.WithStack(InvalidDimensions)
	}
	switch p.PixFmt {
	case PixFmtRGB24, PixFmtRGBA:
		return nil
	case PixFmtYUV422P:
		if p.Width%2 != 0 {
			return errors.WithStack(InvalidDimensions)
		}
	case PixFmtYUV420P:
		if p.Width%2 != 0 || p.Height%2 != 0 {
			return errors.WithStack(InvalidDimensions)
		}
	default:
		return errors.WithStack(InvalidPixelFormat)
	}
	return nil
}

// planeDims returns the (width, height) of plane i for p's pixel format.
func (p *Picture) planeDims(i int) (w, h int) {
	switch p.PixFmt {
	case PixFmtRGB24, PixFmtRGBA:
		return p.Width, p.Height
	case PixFmtYUV422P:
		if i == 0 {
			return p.Width, p.Height
		}
		return p.Width / 2, p.Height
	case PixFmtYUV420P:
		if i == 0 {
			return p.Width, p.Height
		}
		return p.Width / 2, p.Height / 2
	default:
		return 0, 0
	}
}
