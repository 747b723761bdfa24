// utvenc encodes a single still picture to a Ut Video packet, writing the
// 16-byte extradata followed by the packet payload to a ".utv" file next
// to the input. BMP stills are read directly; raw planar/interleaved
// picture files (no container, as produced by e.g. ffmpeg's rawvideo
// muxer) are read when -size and -pix_fmt are given.
package main

import (
	"bufio"
	"flag"
	"image"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/mewkiz/pkg/osutil"
	"github.com/mewkiz/pkg/pathutil"
	"github.com/mewkiz/utvideo"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
)

func main() {
	var (
		force  bool
		size   string
		pixFmt string
		pred   int
	)
	flag.BoolVar(&force, "f", false, "force overwrite")
	flag.StringVar(&size, "size", "", "WxH of the input, required for raw (non-BMP) input")
	flag.StringVar(&pixFmt, "pix_fmt", "", "rgb24, rgba, yuv420p or yuv422p; required for raw input")
	flag.IntVar(&pred, "pred", 1, "prediction method: 0=none, 1=left, 2=median")
	flag.Parse()
	for _, path := range flag.Args() {
		if err := encodeFile(path, size, pixFmt, pred, force); err != nil {
			log.Fatalf("%+v", err)
		}
	}
}

func encodeFile(path, size, pixFmt string, pred int, force bool) error {
	r, err := os.Open(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer r.Close()

	var pic *utvideo.Picture
	if strings.EqualFold(filepathExt(path), ".bmp") {
		pic, err = readBMP(r)
	} else {
		pic, err = readRaw(r, size, pixFmt)
	}
	if err != nil {
		return errors.WithStack(err)
	}

	utvPath := pathutil.TrimExt(path) + ".utv"
	if !force && osutil.Exists(utvPath) {
		return errors.Errorf("Ut Video file %q already present; use -f flag to force overwrite", utvPath)
	}
	w, err := os.Create(utvPath)
	if err != nil {
		return errors.WithStack(err)
	}
	defer w.Close()

	enc, err := utvideo.NewEncoder(utvideo.EncoderConfig{
		PixFmt: pic.PixFmt,
		Pred:   pred,
		Slices: 1,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	pkt, err := enc.EncodeFrame(pic)
	if err != nil {
		return errors.WithStack(err)
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(enc.Extradata()); err != nil {
		return errors.WithStack(err)
	}
	if _, err := bw.Write(pkt.Data); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(bw.Flush())
}

func filepathExt(path string) string {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return ""
	}
	return path[i:]
}

// readBMP decodes a BMP still into an interleaved RGB24 Picture.
func readBMP(r io.Reader) (*utvideo.Picture, error) {
	img, err := bmp.Decode(r)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return toRGB24(img), nil
}

// toRGB24 packs img into an interleaved 8-bit RGB Picture, the raw layout
// MangleRGB and the plane encoder expect before any Ut Video transform is
// applied.
func toRGB24(img image.Image) *utvideo.Picture {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	stride := width * 3
	data := make([]byte, stride*height)
	for y := 0; y < height; y++ {
		row := data[y*stride : (y+1)*stride]
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			row[x*3+0] = byte(r >> 8)
			row[x*3+1] = byte(g >> 8)
			row[x*3+2] = byte(b >> 8)
		}
	}

	return &utvideo.Picture{
		Width:    width,
		Height:   height,
		PixFmt:   utvideo.PixFmtRGB24,
		Data:     [4][]byte{data},
		Linesize: [4]int{stride},
	}
}

// readRaw reads a tightly packed planar (YUV420P/YUV422P) or interleaved
// (RGB24/RGBA) picture with no container framing, as produced by e.g.
// ffmpeg's rawvideo muxer.
func readRaw(r io.Reader, size, pixFmtName string) (*utvideo.Picture, error) {
	width, height, err := parseSize(size)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	pixFmt, err := parsePixFmt(pixFmtName)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	pic := &utvideo.Picture{Width: width, Height: height, PixFmt: pixFmt}
	switch pixFmt {
	case utvideo.PixFmtRGB24:
		pic.Linesize[0] = width * 3
	case utvideo.PixFmtRGBA:
		pic.Linesize[0] = width * 4
	case utvideo.PixFmtYUV420P:
		pic.Linesize[0], pic.Linesize[1], pic.Linesize[2] = width, width/2, width/2
	case utvideo.PixFmtYUV422P:
		pic.Linesize[0], pic.Linesize[1], pic.Linesize[2] = width, width/2, width/2
	}

	planes := 1
	if pixFmt == utvideo.PixFmtYUV420P || pixFmt == utvideo.PixFmtYUV422P {
		planes = 3
	}
	for i := 0; i < planes; i++ {
		_, h := planeDims(pixFmt, width, height, i)
		buf := make([]byte, pic.Linesize[i]*h)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, errors.Wrapf(err, "reading plane %d", i)
		}
		pic.Data[i] = buf
	}
	return pic, nil
}

func planeDims(pixFmt utvideo.PixFmt, width, height, i int) (w, h int) {
	switch pixFmt {
	case utvideo.PixFmtYUV420P:
		if i == 0 {
			return width, height
		}
		return width / 2, height / 2
	case utvideo.PixFmtYUV422P:
		if i == 0 {
			return width, height
		}
		return width / 2, height
	default:
		return width, height
	}
}

func parseSize(size string) (width, height int, err error) {
	parts := strings.SplitN(size, "x", 2)
	if len(parts) != 2 {
		return 0, 0, errors.Errorf("invalid -size %q, want WxH", size)
	}
	width, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, errors.Wrapf(err, "invalid -size %q", size)
	}
	height, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, errors.Wrapf(err, "invalid -size %q", size)
	}
	return width, height, nil
}

func parsePixFmt(name string) (utvideo.PixFmt, error) {
	switch strings.ToLower(name) {
	case "rgb24":
		return utvideo.PixFmtRGB24, nil
	case "rgba":
		return utvideo.PixFmtRGBA, nil
	case "yuv420p":
		return utvideo.PixFmtYUV420P, nil
	case "yuv422p":
		return utvideo.PixFmtYUV422P, nil
	default:
		return 0, errors.Errorf("unsupported -pix_fmt %q", name)
	}
}
