package mdblog

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestImageContentType(t *testing.T) {
	tests := []struct {
		name, want string
	}{
		{"a.png", "image/png"},
		{"a.JPG", "image/jpeg"},
		{"a.svg", "image/svg+xml"},
		{"a.md", ""},
		{"png", ""},
	}
	for _, tt := range tests {
		if got := ImageContentType(tt.name); got != tt.want {
			t.Errorf("ImageContentType(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestReadImageResizesWideImages(t *testing.T) {
	dir := writePosts(t, map[string]string{
		"wide.png":  string(encodePNG(t, 2400, 100)),
		"small.png": string(encodePNG(t, 10, 10)),
	})
	s := NewSource(dir)

	data, err := s.ReadImage("wide.png")
	if err != nil {
		t.Fatalf("ReadImage failed: %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("result is not a PNG: %v", err)
	}
	if cfg.Width != maxImageWidth || cfg.Height != 50 {
		t.Errorf("size = %dx%d, want %dx50", cfg.Width, cfg.Height, maxImageWidth)
	}

	small, err := s.ReadImage("small.png")
	if err != nil {
		t.Fatalf("ReadImage failed: %v", err)
	}
	if !bytes.Equal(small, encodePNG(t, 10, 10)) {
		t.Error("small image should be returned unchanged")
	}
}

func TestReadImageUnknown(t *testing.T) {
	dir := writePosts(t, map[string]string{"post.md": firstPost})
	s := NewSource(dir)

	for _, name := range []string{"missing.png", "../post.md", "post.md"} {
		if _, err := s.ReadImage(name); !IsNotFound(err) {
			t.Errorf("ReadImage(%q) err = %v, want not found", name, err)
		}
	}
}

func TestImagesListsOnlyImages(t *testing.T) {
	dir := writePosts(t, map[string]string{
		"post.md":  firstPost,
		"pic.gif":  "GIF89a",
		"note.txt": "x",
	})
	names, err := NewSource(dir).Images()
	if err != nil {
		t.Fatalf("Images failed: %v", err)
	}
	if len(names) != 1 || names[0] != "pic.gif" {
		t.Errorf("Images = %v, want [pic.gif]", names)
	}
}

func TestProcessImageExtremelyWide(t *testing.T) {
	data, err := processImage(encodePNG(t, maxImageWidth*3, 1), "strip.png")
	if err != nil {
		t.Fatalf("processImage failed: %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("result is not a PNG: %v", err)
	}
	if cfg.Width != maxImageWidth || cfg.Height != 1 {
		t.Errorf("size = %dx%d, want %dx1", cfg.Width, cfg.Height, maxImageWidth)
	}
}
