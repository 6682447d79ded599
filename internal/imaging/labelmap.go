package imaging

import (
	"image"
)

// LabelMap is an integer label raster produced by an external segmentation
// step. Label 0 is background and label 1 is reserved for boundary output;
// every cell region carries a label >= 2.
type LabelMap struct {
	Width  int
	Height int
	Labels []int // row-major, len == Width*Height
}

// NewLabelMap allocates a zeroed (all-background) label map.
func NewLabelMap(width, height int) *LabelMap {
	return &LabelMap{
		Width:  width,
		Height: height,
		Labels: make([]int, width*height),
	}
}

// Index returns the flat slice index of pixel (x, y).
func (lm *LabelMap) Index(x, y int) int {
	return y*lm.Width + x
}

// At returns the label at pixel (x, y).
func (lm *LabelMap) At(x, y int) int {
	return lm.Labels[y*lm.Width+x]
}

// Set writes the label at pixel (x, y).
func (lm *LabelMap) Set(x, y, label int) {
	lm.Labels[y*lm.Width+x] = label
}

// Bounds returns the raster rectangle.
func (lm *LabelMap) Bounds() image.Rectangle {
	return image.Rect(0, 0, lm.Width, lm.Height)
}

// FromImage converts a decoded image into a label map. Gray, Gray16 and
// Paletted images map directly (pixel value or palette index is the label);
// any other image type falls back to the red channel, matching how the
// segmentation output stores labels in its first channel.
func FromImage(img image.Image) *LabelMap {
	b := img.Bounds()
	lm := NewLabelMap(b.Dx(), b.Dy())

	switch src := img.(type) {
	case *image.Gray:
		for y := 0; y < lm.Height; y++ {
			for x := 0; x < lm.Width; x++ {
				lm.Labels[y*lm.Width+x] = int(src.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
			}
		}
	case *image.Gray16:
		for y := 0; y < lm.Height; y++ {
			for x := 0; x < lm.Width; x++ {
				lm.Labels[y*lm.Width+x] = int(src.Gray16At(b.Min.X+x, b.Min.Y+y).Y)
			}
		}
	case *image.Paletted:
		for y := 0; y < lm.Height; y++ {
			for x := 0; x < lm.Width; x++ {
				lm.Labels[y*lm.Width+x] = int(src.ColorIndexAt(b.Min.X+x, b.Min.Y+y))
			}
		}
	default:
		for y := 0; y < lm.Height; y++ {
			for x := 0; x < lm.Width; x++ {
				r, _, _, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
				lm.Labels[y*lm.Width+x] = int(r >> 8)
			}
		}
	}
	return lm
}
