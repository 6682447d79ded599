// Package morph produces dilated binary masks for cell regions. Dilation
// uses a fixed elliptical structuring element so that regions whose raw
// masks nearly touch acquire a measurable pixel overlap.
package morph

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/maax3v3/cellgraph/internal/region"
)

// Mask is a binary raster positioned in image coordinates. Rect is the
// raster's footprint in the source frame; Bits holds one byte per pixel,
// row-major, nonzero meaning set.
type Mask struct {
	Rect image.Rectangle
	Bits []uint8
}

// NewMask allocates an empty mask covering rect.
func NewMask(rect image.Rectangle) *Mask {
	return &Mask{Rect: rect, Bits: make([]uint8, rect.Dx()*rect.Dy())}
}

// Set marks pixel p (image coordinates) as part of the mask.
// p must lie within Rect.
func (m *Mask) Set(p image.Point) {
	m.Bits[(p.Y-m.Rect.Min.Y)*m.Rect.Dx()+(p.X-m.Rect.Min.X)] = 1
}

// Contains reports whether pixel p (image coordinates) is set.
func (m *Mask) Contains(p image.Point) bool {
	if !p.In(m.Rect) {
		return false
	}
	return m.Bits[(p.Y-m.Rect.Min.Y)*m.Rect.Dx()+(p.X-m.Rect.Min.X)] != 0
}

// Count returns the number of set pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.Bits {
		if b != 0 {
			n++
		}
	}
	return n
}

// OverlapCount returns the number of pixels set in both masks. Only the
// intersection of the two footprints is scanned.
func (m *Mask) OverlapCount(o *Mask) int {
	ovl := m.Rect.Intersect(o.Rect)
	if ovl.Empty() {
		return 0
	}
	n := 0
	for y := ovl.Min.Y; y < ovl.Max.Y; y++ {
		mi := (y-m.Rect.Min.Y)*m.Rect.Dx() + (ovl.Min.X - m.Rect.Min.X)
		oi := (y-o.Rect.Min.Y)*o.Rect.Dx() + (ovl.Min.X - o.Rect.Min.X)
		for x := 0; x < ovl.Dx(); x++ {
			if m.Bits[mi+x] != 0 && o.Bits[oi+x] != 0 {
				n++
			}
		}
	}
	return n
}

// Dilator dilates region masks with a fixed elliptical structuring element.
// The kernel size is independent of region size. A Dilator owns an OpenCV
// Mat and must be released with Close.
type Dilator struct {
	size   int
	frame  image.Rectangle
	kernel gocv.Mat
}

// NewDilator creates a Dilator with an elliptical kernel of the given size,
// clamping all dilated masks to the frame rectangle (pixels outside the
// frame do not exist, matching dilation of the full frame raster).
func NewDilator(size int, frame image.Rectangle) *Dilator {
	return &Dilator{
		size:   size,
		frame:  frame,
		kernel: gocv.GetStructuringElement(gocv.MorphEllipse, image.Pt(size, size)),
	}
}

// Close releases the structuring element.
func (d *Dilator) Close() error {
	return d.kernel.Close()
}

// Dilate returns the dilated binary mask of r. The region's pixels are
// rendered into a padded bounding-box raster, dilated, and read back; the
// padding is the kernel size, so no dilated pixel can fall outside the
// raster.
func (d *Dilator) Dilate(r *region.Region) (*Mask, error) {
	rect := r.Bounds.Inset(-d.size).Intersect(d.frame)
	w, h := rect.Dx(), rect.Dy()

	data := make([]uint8, w*h)
	for _, p := range r.Pixels {
		data[(p.Y-rect.Min.Y)*w+(p.X-rect.Min.X)] = 255
	}

	src, err := gocv.NewMatFromBytes(h, w, gocv.MatTypeCV8U, data)
	if err != nil {
		return nil, fmt.Errorf("building mask mat for region %d: %w", r.ID, err)
	}
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.Dilate(src, &dst, d.kernel)

	out := NewMask(rect)
	for i, b := range dst.ToBytes() {
		if b != 0 {
			out.Bits[i] = 1
		}
	}
	return out, nil
}

// DilateAll dilates every region in the catalog, keyed by region id.
func (d *Dilator) DilateAll(cat *region.Catalog) (map[int]*Mask, error) {
	masks := make(map[int]*Mask, cat.Len())
	for _, id := range cat.IDs() {
		m, err := d.Dilate(cat.Get(id))
		if err != nil {
			return nil, err
		}
		masks[id] = m
	}
	return masks, nil
}
