package scratch

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

var opaqueGray = color.NRGBA{R: 128, G: 128, B: 128, A: 255}

func TestNewScaledPixmap(t *testing.T) {
	pm := NewScaledPixmap(100, 50, 2)
	if pm.Width() != 100 || pm.Height() != 50 {
		t.Errorf("logical size = %dx%d, want 100x50", pm.Width(), pm.Height())
	}
	if b := pm.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Errorf("device bounds = %v, want 200x100", b)
	}
	if pm.ClearedRatio() != 1 {
		t.Errorf("new pixmap ClearedRatio() = %v, want 1", pm.ClearedRatio())
	}

	if NewScaledPixmap(10, 10, 0).Scale() != 1 {
		t.Error("zero scale should fall back to 1")
	}
}

func TestPixmapClearRect(t *testing.T) {
	pm := NewPixmap(10, 10)
	pm.Fill(opaqueGray)
	if pm.ClearedRatio() != 0 {
		t.Fatalf("filled pixmap ClearedRatio() = %v, want 0", pm.ClearedRatio())
	}

	pm.ClearRect(2, 3, 4, 5)
	for y := range 10 {
		for x := range 10 {
			inside := x >= 2 && x < 6 && y >= 3 && y < 8
			if got := pm.AlphaAt(x, y) == 0; got != inside {
				t.Fatalf("pixel (%d, %d) cleared=%v, want %v", x, y, got, inside)
			}
		}
	}
	if got := pm.ClearedRatio(); got != 0.2 {
		t.Errorf("ClearedRatio() = %v, want 0.2", got)
	}

	pm.Clear()
	if pm.ClearedRatio() != 1 {
		t.Errorf("after Clear() ClearedRatio() = %v, want 1", pm.ClearedRatio())
	}
}

func TestPixmapClearRectClips(t *testing.T) {
	pm := NewPixmap(10, 10)
	pm.Fill(opaqueGray)

	pm.ClearRect(-5, -5, 7, 7)  // top-left 2x2
	pm.ClearRect(50, 50, 5, 5)  // fully outside
	pm.ClearRect(8, 0, 100, 1)  // top-right 2x1
	pm.ClearRect(0, 0, 0, 10)   // empty
	pm.ClearRect(0, 0, 10, -10) // negative

	if got, want := pm.ClearedRatio(), 0.06; got != want {
		t.Errorf("ClearedRatio() = %v, want %v", got, want)
	}
}

func TestScaledPixmapClearRect(t *testing.T) {
	pm := NewScaledPixmap(10, 10, 2)
	pm.Fill(opaqueGray)

	pm.ClearRect(1, 1, 2, 2)
	for y := range 20 {
		for x := range 20 {
			inside := x >= 2 && x < 6 && y >= 2 && y < 6
			if got := pm.AlphaAt(x, y) == 0; got != inside {
				t.Fatalf("device pixel (%d, %d) cleared=%v, want %v", x, y, got, inside)
			}
		}
	}
}

func TestPixmapDrawImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+3] = 255, 255
	}

	t.Run("natural size", func(t *testing.T) {
		pm := NewPixmap(10, 10)
		pm.DrawImage(src, 0, 0, 4, 4)
		if pm.AlphaAt(3, 3) != 255 || pm.AlphaAt(4, 4) != 0 {
			t.Errorf("alpha (3,3)=%d (4,4)=%d, want 255 and 0", pm.AlphaAt(3, 3), pm.AlphaAt(4, 4))
		}
	})

	t.Run("stretched", func(t *testing.T) {
		pm := NewScaledPixmap(10, 10, 2)
		pm.DrawImage(src, 0, 0, 10, 10)
		if pm.ClearedRatio() != 0 {
			t.Errorf("stretched opaque image left %v of the surface clear", pm.ClearedRatio())
		}
		r, _, _, _ := pm.At(10, 10).RGBA()
		if r>>8 < 250 {
			t.Errorf("center red = %d, want ~255", r>>8)
		}
	})

	t.Run("nil image", func(t *testing.T) {
		pm := NewPixmap(4, 4)
		pm.DrawImage(nil, 0, 0, 4, 4)
		if pm.ClearedRatio() != 1 {
			t.Error("nil image changed the pixmap")
		}
	})
}

func TestPixmapSavePNG(t *testing.T) {
	pm := NewPixmap(8, 6)
	pm.Fill(opaqueGray)
	pm.ClearRect(0, 0, 4, 6)

	path := filepath.Join(t.TempDir(), "out.png")
	if err := pm.SavePNG(path); err != nil {
		t.Fatalf("SavePNG() = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding saved PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Errorf("saved bounds = %v, want 8x6", b)
	}
	if _, _, _, a := img.At(1, 1).RGBA(); a != 0 {
		t.Errorf("cleared pixel alpha = %d, want 0", a)
	}
	if _, _, _, a := img.At(6, 1).RGBA(); a != 0xffff {
		t.Errorf("mask pixel alpha = %d, want opaque", a)
	}
}
