package byteio

import (
	"bytes"
	"testing"
)

func TestPutU8AndPutLE32(t *testing.T) {
	buf := make([]byte, 8)
	s := New(buf)
	if err := s.PutU8(0xAB); err != nil {
		t.Fatal(err)
	}
	if err := s.PutLE32(0x04030201); err != nil {
		t.Fatal(err)
	}
	want := []byte{0xAB, 0x01, 0x02, 0x03, 0x04}
	if !bytes.Equal(s.Bytes(), want) {
		t.Fatalf("Bytes() = % x, want % x", s.Bytes(), want)
	}
	if got, want := s.Tell(), 5; got != want {
		t.Fatalf("Tell() = %d, want %d", got, want)
	}
}

func TestPutBytesOverflow(t *testing.T) {
	buf := make([]byte, 2)
	s := New(buf)
	if err := s.PutBytes([]byte{1, 2, 3}); err == nil {
		t.Fatal("PutBytes() succeeded, want ErrBufferOverflow")
	}
}

func TestSeekRelativeBackfillsOffset(t *testing.T) {
	buf := make([]byte, 12)
	s := New(buf)
	slotPos := s.Tell()
	if err := s.PutLE32(0); err != nil {
		t.Fatal(err)
	}
	if err := s.PutBytes([]byte{1, 2, 3, 4}); err != nil {
		t.Fatal(err)
	}
	payloadEnd := s.Tell()

	if err := s.SeekRelative(slotPos - s.Tell()); err != nil {
		t.Fatal(err)
	}
	if err := s.PutLE32(4); err != nil {
		t.Fatal(err)
	}
	if err := s.SeekRelative(payloadEnd - s.Tell()); err != nil {
		t.Fatal(err)
	}

	want := []byte{4, 0, 0, 0, 1, 2, 3, 4}
	if !bytes.Equal(s.Bytes(), want) {
		t.Fatalf("Bytes() = % x, want % x", s.Bytes(), want)
	}
}

func TestSeekRelativeOutOfRange(t *testing.T) {
	buf := make([]byte, 4)
	s := New(buf)
	if err := s.SeekRelative(-1); err == nil {
		t.Fatal("SeekRelative(-1) succeeded, want ErrInvalidPosition")
	}
	if err := s.SeekRelative(5); err == nil {
		t.Fatal("SeekRelative(5) succeeded, want ErrInvalidPosition")
	}
}
