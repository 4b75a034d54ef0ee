package scratch

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func countColor(img *image.NRGBA, c color.Color) int {
	want := color.NRGBAModel.Convert(c).(color.NRGBA)
	n := 0
	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		for x := img.Rect.Min.X; x < img.Rect.Max.X; x++ {
			if img.NRGBAAt(x, y) == want {
				n++
			}
		}
	}
	return n
}

func TestNewCaptionMask(t *testing.T) {
	img, err := NewCaptionMask(300, 150, "scratch here", DefaultMaskStyle)
	if err != nil {
		t.Fatalf("NewCaptionMask() = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 150 {
		t.Errorf("bounds = %v, want 300x150", b)
	}
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 255 {
			t.Fatalf("pixel %d not opaque", i/4)
		}
	}
	if countColor(img, DefaultMaskStyle.Foreground) == 0 {
		t.Error("caption drew no foreground pixels")
	}
	if countColor(img, DefaultMaskStyle.Stripe) == 0 {
		t.Error("no stripe pixels")
	}
}

func TestNewCaptionMaskShrinksLongCaption(t *testing.T) {
	style := PrizeStyle
	img, err := NewCaptionMask(200, 40, "congratulations, you win", style)
	if err != nil {
		t.Fatalf("NewCaptionMask() = %v", err)
	}
	bg := color.NRGBAModel.Convert(style.Background).(color.NRGBA)
	// The outer columns stay background once the caption is shrunk to fit.
	for y := range 40 {
		if img.NRGBAAt(0, y) != bg || img.NRGBAAt(199, y) != bg {
			t.Fatalf("caption bleeds into the edge column at row %d", y)
		}
	}
}

func TestNewCaptionMaskEmptyCaption(t *testing.T) {
	img, err := NewCaptionMask(20, 10, "", PrizeStyle)
	if err != nil {
		t.Fatal(err)
	}
	if got := countColor(img, PrizeStyle.Background); got != 200 {
		t.Errorf("background pixels = %d, want 200", got)
	}
}

func TestNewCaptionMaskInvalidSize(t *testing.T) {
	if _, err := NewCaptionMask(0, 10, "x", DefaultMaskStyle); !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("NewCaptionMask(0, 10) = %v, want ErrInvalidDimension", err)
	}
}

func TestNewCaptionMaskNilColors(t *testing.T) {
	img, err := NewCaptionMask(120, 40, "hi", CaptionStyle{})
	if err != nil {
		t.Fatal(err)
	}
	if img.NRGBAAt(0, 0).A != 0 {
		t.Error("nil background is not transparent")
	}
	if countColor(img, color.Black) == 0 {
		t.Error("nil foreground drew no black text")
	}
}
