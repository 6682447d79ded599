package imaging

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/image/tiff"
)

// Load reads a segmented label image from disk. Supports TIFF and PNG.
// The path is normalized: ~ is expanded to the user's home directory,
// and relative paths are resolved to absolute.
func Load(path string) (image.Image, error) {
	path = ExpandPath(path)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".tif", ".tiff":
		return tiff.Decode(f)
	case ".png":
		return png.Decode(f)
	default:
		return nil, fmt.Errorf("unsupported image format %q (supported: tif, tiff, png)", ext)
	}
}

// LoadLabelMap reads a segmented label image and converts it to a LabelMap.
func LoadLabelMap(path string) (*LabelMap, error) {
	img, err := Load(path)
	if err != nil {
		return nil, err
	}
	return FromImage(img), nil
}

// ExpandPath normalizes a file path by expanding ~ to the user's home
// directory and resolving relative paths to absolute.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	// Expand ~ and ~/ to home directory
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}

	// On Windows, also handle ~\
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "~\\") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	// Resolve relative paths to absolute
	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return filepath.Clean(path)
}
