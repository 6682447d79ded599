package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestFromImage(t *testing.T) {
	tests := []struct {
		name  string
		img   image.Image
		x, y  int
		label int
	}{
		{
			name: "gray",
			img: func() image.Image {
				g := image.NewGray(image.Rect(0, 0, 3, 3))
				g.SetGray(2, 1, color.Gray{Y: 5})
				return g
			}(),
			x: 2, y: 1, label: 5,
		},
		{
			name: "gray16",
			img: func() image.Image {
				g := image.NewGray16(image.Rect(0, 0, 3, 3))
				g.SetGray16(0, 2, color.Gray16{Y: 300})
				return g
			}(),
			x: 0, y: 2, label: 300,
		},
		{
			name: "paletted",
			img: func() image.Image {
				pal := color.Palette{
					color.Gray{Y: 0}, color.Gray{Y: 1},
					color.Gray{Y: 2}, color.Gray{Y: 3},
				}
				p := image.NewPaletted(image.Rect(0, 0, 2, 2), pal)
				p.SetColorIndex(1, 1, 3)
				return p
			}(),
			x: 1, y: 1, label: 3,
		},
		{
			name: "rgba falls back to red channel",
			img: func() image.Image {
				r := image.NewRGBA(image.Rect(0, 0, 2, 2))
				r.SetRGBA(1, 0, color.RGBA{R: 9, A: 255})
				return r
			}(),
			x: 1, y: 0, label: 9,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lm := FromImage(tt.img)
			if got := lm.At(tt.x, tt.y); got != tt.label {
				t.Errorf("label at (%d,%d): got %d, want %d", tt.x, tt.y, got, tt.label)
			}
		})
	}
}

func TestFromImage_NonZeroOrigin(t *testing.T) {
	g := image.NewGray(image.Rect(10, 20, 14, 23))
	g.SetGray(10, 20, color.Gray{Y: 2})

	lm := FromImage(g)
	if lm.Width != 4 || lm.Height != 3 {
		t.Fatalf("dimensions: got %dx%d, want 4x3", lm.Width, lm.Height)
	}
	if got := lm.At(0, 0); got != 2 {
		t.Errorf("label at (0,0): got %d, want 2", got)
	}
}

func TestLabelMapSetAt(t *testing.T) {
	lm := NewLabelMap(3, 2)
	lm.Set(2, 1, 4)
	if got := lm.At(2, 1); got != 4 {
		t.Errorf("got %d, want 4", got)
	}
	if got := lm.At(0, 0); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
	if lm.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Errorf("bounds: got %v", lm.Bounds())
	}
}
