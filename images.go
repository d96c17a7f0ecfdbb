package mdblog

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 1200
	jpegQuality   = 80
)

// imageTypes lists the image files that may sit next to posts. They never
// produce posts; they are served under /posts/ so relative references in a
// post body resolve.
var imageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
}

// ImageContentType returns the MIME type for an image file name, or "" when
// the name is not a supported image.
func ImageContentType(name string) string {
	return imageTypes[strings.ToLower(filepath.Ext(name))]
}

// Images lists the image files in the posts directory.
func (s *Source) Images() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("mdblog: list images: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || ImageContentType(e.Name()) == "" {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// ReadImage returns the processed bytes of a co-located image. Like post
// slugs, the name must be one of the files Images just listed.
func (s *Source) ReadImage(name string) ([]byte, error) {
	names, err := s.Images()
	if err != nil {
		return nil, err
	}
	found := false
	for _, n := range names {
		if n == name {
			found = true
			break
		}
	}
	if !found {
		return nil, unknownImageError(s.dir, name)
	}
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("mdblog: read image: %w", err)
	}
	return processImage(data, name)
}

// processImage downsizes JPEG and PNG images wider than maxImageWidth,
// keeping their format so references in posts stay valid. Other formats
// and images that already fit are returned unchanged.
func processImage(data []byte, name string) ([]byte, error) {
	ct := ImageContentType(name)
	if ct != "image/jpeg" && ct != "image/png" {
		return data, nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", name, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxImageWidth {
		return data, nil
	}

	newH := max(h*maxImageWidth/w, 1)
	dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	switch ct {
	case "image/png":
		err = png.Encode(&buf, dst)
	default:
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return nil, fmt.Errorf("encode image %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
