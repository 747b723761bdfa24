package utvideo

import (
	"github.com/mewkiz/pkg/errutil"
	"github.com/mewkiz/utvideo/internal/bitwriter"
	"github.com/mewkiz/utvideo/internal/byteio"
	"github.com/pkg/errors"
)

// Sentinel errors returned by this package. Call sites elsewhere in the
// package wrap them with github.com/pkg/errors so that a "%+v" format on
// the returned error carries a stack trace; callers that need to
// distinguish a failure mode should compare errors.Cause(err) against
// these.
var (
	// InvalidPixelFormat is returned when the picture's pixel format is not
	// one of RGB24, RGBA, YUV420P or YUV422P.
	InvalidPixelFormat = errutil.Newf("utvideo: invalid pixel format")

	// InvalidDimensions is returned when the picture dimensions are not
	// compatible with the chroma subsampling of the chosen pixel format
	// (YUV420P requires even width and height, YUV422P requires even width).
	InvalidDimensions = errutil.Newf("utvideo: invalid picture dimensions")

	// UnsupportedPrediction is returned when the configured prediction
	// method is out of range, or maps to GRADIENT or PLANE prediction.
	UnsupportedPrediction = errutil.Newf("utvideo: unsupported prediction method")

	// OutOfMemory denotes a failed scratch or extradata allocation. No
	// function in this package returns it: allocations use make, which
	// does not report failure as an error.
	OutOfMemory = errutil.Newf("utvideo: out of memory")

	// BufferOverflow is returned when a write would exceed the capacity of
	// the packet or scratch buffer the caller sized for this picture.
	BufferOverflow = errutil.Newf("utvideo: buffer overflow")

	// InvalidPosition is returned by ByteStream.SeekRelative when the
	// requested offset falls outside the buffer.
	InvalidPosition = errutil.Newf("utvideo: invalid stream position")
)

// wrap maps an internal/bitwriter or internal/byteio overflow or position
// error onto the matching package-level sentinel (with a stack trace
// attached), regardless of which internal component detected the failure.
// Any other error is returned with a stack trace attached but otherwise
// unchanged.
func wrap(err error) error {
	if err == nil {
		return nil
	}
	switch errors.Cause(err) {
	case bitwriter.ErrBufferOverflow, byteio.ErrBufferOverflow:
		return errors.WithStack(BufferOverflow)
	case byteio.ErrInvalidPosition:
		return errors.WithStack(InvalidPosition)
	default:
		return errors.WithStack(err)
	}
}
