package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/tiff"
)

func writeGrayTIFF(t *testing.T, path string, src *image.Gray) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := tiff.Encode(f, src, nil); err != nil {
		f.Close()
		t.Fatal(err)
	}
	f.Close()
}

func TestLoadLabelMap_TIFF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labels.tif")

	src := image.NewGray(image.Rect(0, 0, 4, 3))
	src.Pix[0] = 2 // (0,0)
	src.Pix[5] = 3 // (1,1)
	writeGrayTIFF(t, path, src)

	lm, err := LoadLabelMap(path)
	if err != nil {
		t.Fatalf("LoadLabelMap: %v", err)
	}
	if lm.Width != 4 || lm.Height != 3 {
		t.Fatalf("dimensions: got %dx%d, want 4x3", lm.Width, lm.Height)
	}
	if got := lm.At(0, 0); got != 2 {
		t.Errorf("label at (0,0): got %d, want 2", got)
	}
	if got := lm.At(1, 1); got != 3 {
		t.Errorf("label at (1,1): got %d, want 3", got)
	}
	if got := lm.At(3, 2); got != 0 {
		t.Errorf("label at (3,2): got %d, want 0 (background)", got)
	}
}

func TestLoadLabelMap_PNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labels.png")

	src := image.NewGray(image.Rect(0, 0, 2, 2))
	src.SetGray(1, 0, color.Gray{Y: 7})

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		f.Close()
		t.Fatal(err)
	}
	f.Close()

	lm, err := LoadLabelMap(path)
	if err != nil {
		t.Fatalf("LoadLabelMap: %v", err)
	}
	if got := lm.At(1, 0); got != 7 {
		t.Errorf("label at (1,0): got %d, want 7", got)
	}
	if got := lm.At(0, 1); got != 0 {
		t.Errorf("label at (0,1): got %d, want 0", got)
	}
}

func TestLoad_NonexistentFile(t *testing.T) {
	_, err := Load("/nonexistent/path/image.tif")
	if err == nil {
		t.Fatal("expected error for nonexistent file")
	}
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.bmp")
	if err := os.WriteFile(path, []byte("not a real image"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestLoad_CorruptTIFF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corrupt.tif")
	if err := os.WriteFile(path, []byte("not a real tiff"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for corrupt TIFF")
	}
}
