// Package predict implements the Ut Video Predictor component (spec
// §4.3): the three pixel-domain transforms (none, left, median) that turn
// a source plane into a tightly packed residual plane, plus the
// ff_ut_pred_order-equivalent method mapping and the RGB channel mangle
// of §4.3.1.
//
// The shape of these routines — a small switch over predictor kind, each
// case a tight per-sample loop producing one residual per input sample —
// follows the fixed-predictor residual computation in analysis_fixed.go
// of the teacher package, generalized from FLAC's four linear fixed
// predictors to Ut Video's none/left/median set.
package predict

import "github.com/mewkiz/pkg/errutil"

// Method identifies a Ut Video prediction mode.
type Method int

// Supported prediction methods, matching spec §4.3/§6.
const (
	None Method = iota
	Left
	Median
)

// Order maps the external prediction-method integers {0..4} used by the
// picture/option negotiation layer onto the three methods this package
// implements. Integers 3 (GRADIENT) and 4 (PLANE) are rejected, mirroring
// ff_ut_pred_order in the reference encoder.
func Order(external int) (Method, error) {
	switch external {
	case 0:
		return None, nil
	case 1:
		return Left, nil
	case 2:
		return Median, nil
	default:
		return 0, errutil.Newf("predict: unsupported prediction method %d", external)
	}
}

// srcAt indexes a source plane of the given step and stride, reading the
// byte at (row, col) — one sample of one channel of one row.
func srcAt(src []byte, stride, step, row, col int) byte {
	return src[row*stride+col*step]
}

// Apply writes the residual of src (dimensions width x height, sample
// step and row stride as given) into dst, which must be at least
// width*height bytes and is always written tightly packed (stride =
// width).
func Apply(method Method, src []byte, stride, step, width, height int, dst []byte) error {
	switch method {
	case None:
		applyNone(src, stride, step, width, height, dst)
	case Left:
		applyLeft(src, stride, step, width, height, dst)
	case Median:
		applyMedian(src, stride, step, width, height, dst)
	default:
		return errutil.Newf("predict: unsupported prediction method %d", method)
	}
	return nil
}

func applyNone(src []byte, stride, step, width, height int, dst []byte) {
	for y := 0; y < height; y++ {
		row := dst[y*width : y*width+width]
		for x := 0; x < width; x++ {
			row[x] = srcAt(src, stride, step, y, x)
		}
	}
}

func applyLeft(src []byte, stride, step, width, height int, dst []byte) {
	prev := byte(0x80)
	for y := 0; y < height; y++ {
		row := dst[y*width : y*width+width]
		for x := 0; x < width; x++ {
			cur := srcAt(src, stride, step, y, x)
			row[x] = cur - prev
			prev = cur
		}
	}
}

// mid returns the median of three byte values, the MED/Paeth-lite
// predictor from JPEG-LS (spec glossary).
func mid(a, b, c byte) byte {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	if c < lo {
		return lo
	}
	if c > hi {
		return hi
	}
	return c
}

func applyMedian(src []byte, stride, step, width, height int, dst []byte) {
	if height == 0 {
		return
	}

	// Row 0: identical to Left, with the same prev = 0x80 seed.
	prev := byte(0x80)
	row0 := dst[0:width]
	for x := 0; x < width; x++ {
		cur := srcAt(src, stride, step, 0, x)
		row0[x] = cur - prev
		prev = cur
	}
	if height == 1 {
		return
	}

	var a byte
	for y := 1; y < height; y++ {
		row := dst[y*width : y*width+width]

		// Column 0: row 1 uses residual = src[1,0] - src[0,0]; later rows
		// use the median with A = src[y-1,width-1] and C = src[y-2,width-1]
		// carried over streamwise from the end of the previous row.
		above := srcAt(src, stride, step, y-1, 0)
		cur0 := srcAt(src, stride, step, y, 0)
		if y == 1 {
			row[0] = cur0 - above
		} else {
			C := srcAt(src, stride, step, y-2, width-1)
			row[0] = cur0 - mid(a, above, a+above-C)
		}
		a = cur0

		for x := 1; x < width; x++ {
			A := a
			B := srcAt(src, stride, step, y-1, x)
			C := srcAt(src, stride, step, y-1, x-1)
			pred := mid(A, B, A+B-C)
			cur := srcAt(src, stride, step, y, x)
			row[x] = cur - pred
			a = cur
		}
	}
}

// MangleRGB applies the reversible pre-prediction affine transform of
// spec §4.3.1 to an interleaved RGB or RGBA picture in place:
// R' = R-G+0x80, B' = B-G+0x80, G and A unchanged. step is 3 for RGB24
// and 4 for RGBA; rOff/gOff/bOff are the byte offsets of R, G, B within
// a pixel before the mangle (the raw {R,G,B} layout, not the post-mangle
// plane order).
func MangleRGB(data []byte, stride, step, width, height, rOff, gOff, bOff int) {
	for y := 0; y < height; y++ {
		base := y * stride
		for x := 0; x < width; x++ {
			p := base + x*step
			g := data[p+gOff]
			data[p+rOff] = data[p+rOff] - g + 0x80
			data[p+bOff] = data[p+bOff] - g + 0x80
		}
	}
}
