package media

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetectMediaType(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	tests := []struct {
		name     string
		file     string
		data     []byte
		expected string
	}{
		{"jpeg extension", "face.jpg", nil, "image/jpeg"},
		{"upper case extension", "FACE.PNG", nil, "image/png"},
		{"text file", "notes.txt", []byte("hello"), "text/plain"},
		{"no extension sniffed", "capture", png, "image/png"},
		{"no extension no data", "blob", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectMediaType(tt.file, tt.data)
			if got != tt.expected {
				t.Errorf("DetectMediaType(%q) = %q, want %q", tt.file, got, tt.expected)
			}
		})
	}
}

func TestImage_IsImage(t *testing.T) {
	tests := []struct {
		mediaType string
		want      bool
	}{
		{"image/jpeg", true},
		{"image/webp", true},
		{"IMAGE/PNG", true},
		{"text/plain", false},
		{"application/pdf", false},
		{"", false},
	}

	for _, tt := range tests {
		img := &Image{MediaType: tt.mediaType}
		if got := img.IsImage(); got != tt.want {
			t.Errorf("IsImage(%q) = %v, want %v", tt.mediaType, got, tt.want)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "smile.png")
	if err := os.WriteFile(path, []byte("\x89PNG\r\n\x1a\n"), 0o600); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if img.Name != "smile.png" {
		t.Errorf("Expected name smile.png, got %s", img.Name)
	}
	if img.MediaType != "image/png" {
		t.Errorf("Expected image/png, got %s", img.MediaType)
	}
	if img.Size() != 8 {
		t.Errorf("Expected 8 bytes, got %d", img.Size())
	}

	if _, err := Load(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("Expected error for missing file")
	}

	if _, err := Load(""); err != ErrEmptyPath {
		t.Errorf("Expected ErrEmptyPath, got %v", err)
	}
}

func TestCleanDroppedPath(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"/tmp/face.jpg", "/tmp/face.jpg"},
		{"  '/tmp/my face.jpg' ", "/tmp/my face.jpg"},
		{`"/tmp/face.jpg"`, "/tmp/face.jpg"},
		{`/tmp/my\ face.jpg`, "/tmp/my face.jpg"},
		{"file:///tmp/face%20two.png", "/tmp/face two.png"},
		{"/tmp/a.png\n/tmp/b.png", "/tmp/a.png"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := CleanDroppedPath(tt.raw); got != tt.want {
			t.Errorf("CleanDroppedPath(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
