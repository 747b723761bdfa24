package utvideo

import (
	"github.com/mewkiz/utvideo/internal/bitwriter"
	"github.com/mewkiz/utvideo/internal/byteio"
	"github.com/mewkiz/utvideo/internal/predict"
	"github.com/pkg/errors"
)

// EncoderConfig is the picture-format/option negotiation surface spec §1
// treats as an external collaborator. It is validated once, in
// NewEncoder, the way the teacher validates a meta.StreamInfo before
// writing it.
type EncoderConfig struct {
	// PixFmt is the pixel format of every picture this encoder will be
	// asked to encode.
	PixFmt PixFmt
	// Pred is the external prediction-method selector, 0=NONE, 1=LEFT,
	// 2=MEDIAN; 3 (GRADIENT) and 4 (PLANE) are rejected.
	Pred int
	// Slices is the number of horizontal strips each plane is split into.
	// The reference encoder always uses 1; this encoder accepts any
	// value >= 1.
	Slices int
	// Interlaced is carried through to the extradata flags field only;
	// interlaced encoding itself is out of scope (spec §1 Non-goals).
	Interlaced bool
}

// Packet is one encoded frame: the assembled byte payload (spec §6) and
// whether it is safe to use as a random-access point. Every Ut Video
// frame is an independent keyframe (spec §1), so Keyframe is always true
// on success.
type Packet struct {
	Data     []byte
	Keyframe bool
}

// Encoder converts successive Pictures of a fixed format into Packets. An
// Encoder is not safe for concurrent use, but independent Encoders share
// no mutable state (spec §5).
type Encoder struct {
	cfg       EncoderConfig
	method    predict.Method
	extradata []byte
	scratch   []byte
	sliceBits *bitwriter.Writer
}

// NewEncoder validates cfg and returns a ready Encoder. Its immutable
// stream-level extradata is built here and is available from Extradata.
func NewEncoder(cfg EncoderConfig) (*Encoder, error) {
	method, err := predict.Order(cfg.Pred)
	if err != nil {
		return nil, errors.WithStack(UnsupportedPrediction)
	}
	if cfg.Slices < 1 {
		cfg.Slices = 1
	}
	extradata, err := Extradata(cfg)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &Encoder{cfg: cfg, method: method, extradata: extradata, sliceBits: bitwriter.New(0)}, nil
}

// Extradata returns the 16-byte container header produced at
// initialization (spec §4.8).
func (enc *Encoder) Extradata() []byte {
	return enc.extradata
}

// Raw (pre-mangle) channel offsets within one interleaved RGB/RGBA pixel.
const (
	rawOffsetR = 0
	rawOffsetG = 1
	rawOffsetB = 2
)

// EncodeFrame implements the FrameEncoder component (spec §4.7): it
// mangles RGB/RGBA input on a private copy, predicts and encodes each
// plane in the pixel format's channel order, and appends the frame_info
// trailer.
func (enc *Encoder) EncodeFrame(pic *Picture) (*Packet, error) {
	if pic.PixFmt != enc.cfg.PixFmt {
		return nil, errors.WithStack(InvalidPixelFormat)
	}
	if err := pic.validate(); err != nil {
		return nil, err
	}

	planes := pic.PixFmt.planeCount()
	bufSize := (lengthTableSize+4*enc.cfg.Slices+pic.Width*pic.Height)*planes + 4
	packet := make([]byte, bufSize)
	bs := byteio.New(packet)

	var raw []byte
	var order []int
	switch pic.PixFmt {
	case PixFmtRGB24, PixFmtRGBA:
		n := pic.Linesize[0] * pic.Height
		raw = make([]byte, n)
		copy(raw, pic.Data[0][:n])
		predict.MangleRGB(raw, pic.Linesize[0], planes, pic.Width, pic.Height, rawOffsetR, rawOffsetG, rawOffsetB)
		if pic.PixFmt == PixFmtRGB24 {
			order = rgbOrder[:]
		} else {
			order = rgbaOrder[:]
		}
	}

	for i := 0; i < planes; i++ {
		w, h := pic.planeDims(i)
		var src []byte
		var stride, step int
		switch pic.PixFmt {
		case PixFmtRGB24, PixFmtRGBA:
			src = raw[order[i]:]
			stride = pic.Linesize[0]
			step = planes
		default:
			src = pic.Data[i]
			stride = pic.Linesize[i]
			step = 1
		}

		residual := enc.scratchFor(w * h)
		if err := predict.Apply(enc.method, src, stride, step, w, h, residual); err != nil {
			return nil, errors.WithStack(err)
		}
		if err := encodePlane(bs, enc.sliceBits, residual, w, h, enc.cfg.Slices); err != nil {
			return nil, errors.Wrapf(err, "plane %d", i)
		}
	}

	frameInfo := uint32(enc.method) << 8
	if err := bs.PutLE32(frameInfo); err != nil {
		return nil, wrap(err)
	}

	return &Packet{Data: bs.Bytes(), Keyframe: true}, nil
}

// scratchFor returns a reusable residual scratch buffer of exactly n
// bytes, growing the backing array monotonically (capacity doubles or
// matches need, never shrinks mid-stream) per spec §5.
func (enc *Encoder) scratchFor(n int) []byte {
	if cap(enc.scratch) < n {
		newCap := cap(enc.scratch) * 2
		if newCap < n {
			newCap = n
		}
		enc.scratch = make([]byte, newCap)
	}
	return enc.scratch[:n]
}
