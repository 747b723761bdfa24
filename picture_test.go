package utvideo

import "testing"

func TestPictureValidateRejectsOddYUV420PWidth(t *testing.T) {
	p := &Picture{Width: 3, Height: 2, PixFmt: PixFmtYUV420P}
	if err := p.validate(); err == nil {
		t.Fatal("validate() succeeded with odd width on YUV420P, want InvalidDimensions")
	}
}

func TestPictureValidateAcceptsEvenYUV420P(t *testing.T) {
	p := &Picture{Width: 4, Height: 2, PixFmt: PixFmtYUV420P}
	if err := p.validate(); err != nil {
		t.Fatalf("validate() = %v, want nil", err)
	}
}

func TestPictureValidateYUV422POnlyRequiresEvenWidth(t *testing.T) {
	p := &Picture{Width: 4, Height: 3, PixFmt: PixFmtYUV422P}
	if err := p.validate(); err != nil {
		t.Fatalf("validate() = %v, want nil", err)
	}
}

func TestPlaneDimsChromaSubsampling(t *testing.T) {
	p := &Picture{Width: 8, Height: 4, PixFmt: PixFmtYUV420P}
	if w, h := p.planeDims(0); w != 8 || h != 4 {
		t.Fatalf("luma dims = %dx%d, want 8x4", w, h)
	}
	if w, h := p.planeDims(1); w != 4 || h != 2 {
		t.Fatalf("chroma dims = %dx%d, want 4x2", w, h)
	}
}

func TestFourCCValues(t *testing.T) {
	tests := []struct {
		pix  PixFmt
		want uint32
	}{
		{PixFmtRGB24, fourCCULRG},
		{PixFmtRGBA, fourCCULRA},
		{PixFmtYUV420P, fourCCULY0},
		{PixFmtYUV422P, fourCCULY2},
	}
	for _, tt := range tests {
		got, err := tt.pix.fourCC()
		if err != nil {
			t.Fatalf("fourCC() = %v", err)
		}
		if got != tt.want {
			t.Errorf("fourCC(%v) = 0x%08x, want 0x%08x", tt.pix, got, tt.want)
		}
	}
}
