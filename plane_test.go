package utvideo

import (
	"testing"

	"github.com/mewkiz/utvideo/internal/bitwriter"
	"github.com/mewkiz/utvideo/internal/byteio"
	"github.com/mewkiz/utvideo/internal/huffman"
)

func TestDegenerateSymbolDetectsUniformPlane(t *testing.T) {
	residual := []byte{0x80, 0x80, 0x80, 0x80}
	counts := huffman.Histogram(residual)
	sym, ok := degenerateSymbol(counts, len(residual))
	if !ok {
		t.Fatal("degenerateSymbol() = false, want true for a uniform plane")
	}
	if sym != 0x80 {
		t.Fatalf("sym = 0x%02x, want 0x80", sym)
	}
}

func TestDegenerateSymbolRejectsMixedPlane(t *testing.T) {
	residual := []byte{0x80, 0x81, 0x80, 0x80}
	counts := huffman.Histogram(residual)
	if _, ok := degenerateSymbol(counts, len(residual)); ok {
		t.Fatal("degenerateSymbol() = true, want false for a mixed plane")
	}
}

func TestEncodePlaneDegenerateLayout(t *testing.T) {
	residual := []byte{0x80, 0x80, 0x80, 0x80} // 2x2, all one symbol
	buf := make([]byte, lengthTableSize+4+1)
	bs := byteio.New(buf)
	if err := encodePlane(bs, bitwriter.New(0), residual, 2, 2, 1); err != nil {
		t.Fatal(err)
	}
	out := bs.Bytes()
	if len(out) != lengthTableSize+4 {
		t.Fatalf("len(out) = %d, want %d", len(out), lengthTableSize+4)
	}
	for s := 0; s < lengthTableSize; s++ {
		want := byte(unusedLength)
		if s == 0x80 {
			want = 0
		}
		if out[s] != want {
			t.Fatalf("length[%d] = 0x%02x, want 0x%02x", s, out[s], want)
		}
	}
	for i := lengthTableSize; i < lengthTableSize+4; i++ {
		if out[i] != 0 {
			t.Fatalf("end_offsets byte[%d] = 0x%02x, want 0", i, out[i])
		}
	}
}

func TestPutCodeSplitsLongCodes(t *testing.T) {
	bw := bitwriter.New(8)
	code := uint32(0xABCD1234)
	if err := putCode(bw, code, 32); err != nil {
		t.Fatal(err)
	}
	out, err := bw.Flush()
	if err != nil {
		t.Fatal(err)
	}
	// A full 32-bit code packed MSB-first with no padding is the plain
	// big-endian encoding of the value.
	want := []byte{0xAB, 0xCD, 0x12, 0x34}
	if len(out) != 4 || out[0] != want[0] || out[1] != want[1] || out[2] != want[2] || out[3] != want[3] {
		t.Fatalf("Flush() = % x, want % x", out, want)
	}
}

func TestPutCodeShortCodeUnaffected(t *testing.T) {
	bw := bitwriter.New(8)
	if err := putCode(bw, 0x3, 2); err != nil {
		t.Fatal(err)
	}
	if got, want := bw.BitsWritten(), int64(2); got != want {
		t.Fatalf("BitsWritten() = %d, want %d", got, want)
	}
}

func TestEncodePlaneNonDegenerateEndOffsetIsPayloadLength(t *testing.T) {
	residual := make([]byte, 0, 256)
	for i := 0; i < 256; i++ {
		residual = append(residual, byte(i))
	}
	buf := make([]byte, (lengthTableSize+4+256)*2)
	bs := byteio.New(buf)
	if err := encodePlane(bs, bitwriter.New(0), residual, 256, 1, 1); err != nil {
		t.Fatal(err)
	}
	out := bs.Bytes()
	payloadLen := len(out) - lengthTableSize - 4
	endOffset := uint32(out[lengthTableSize]) | uint32(out[lengthTableSize+1])<<8 |
		uint32(out[lengthTableSize+2])<<16 | uint32(out[lengthTableSize+3])<<24
	if int(endOffset) != payloadLen {
		t.Fatalf("end_offsets[0] = %d, want %d", endOffset, payloadLen)
	}
	if payloadLen%4 != 0 {
		t.Fatalf("payload length %d is not a multiple of 4", payloadLen)
	}
}
