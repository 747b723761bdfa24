// Package utvideo implements the encoder core of the Ut Video lossless
// video codec: converting one raw picture into one bit-exact compressed
// packet compatible with the ULRG/ULRA/ULY0/ULY2 FourCCs, plus the
// 16-byte container-level extradata decoders rely on.
//
// The codec registration shell, pixel-format/option negotiation beyond
// EncoderConfig, logging, packet allocation, and the decoder are external
// collaborators and out of scope for this package; see SPEC_FULL.md.
package utvideo
