package media

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ImagePrefix is the media type prefix every accepted selection must carry
const ImagePrefix = "image/"

// ErrEmptyPath is returned when a selection resolves to no path at all
var ErrEmptyPath = errors.New("no file selected")

// Image is a user-chosen file with its declared media type
type Image struct {
	Name      string
	MediaType string
	Data      []byte
}

// IsImage reports whether the declared media type is an image type
func (i *Image) IsImage() bool {
	return strings.HasPrefix(strings.ToLower(i.MediaType), ImagePrefix)
}

// Size returns the number of bytes held
func (i *Image) Size() int {
	return len(i.Data)
}

// Load reads a file from disk and declares its media type. The extension
// decides first, the way a browser file picker would; content sniffing only
// fills in when the extension is unknown.
func Load(path string) (*Image, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	// #nosec G304 - path comes from an explicit user selection
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return &Image{
		Name:      filepath.Base(path),
		MediaType: DetectMediaType(path, data),
		Data:      data,
	}, nil
}

// DetectMediaType returns the media type for a file name and its contents
func DetectMediaType(name string, data []byte) string {
	if ext := filepath.Ext(name); ext != "" {
		if mt := mime.TypeByExtension(strings.ToLower(ext)); mt != "" {
			if parsed, _, err := mime.ParseMediaType(mt); err == nil {
				return parsed
			}
			return mt
		}
	}

	if len(data) == 0 {
		return ""
	}

	sniffed := http.DetectContentType(data)
	if parsed, _, err := mime.ParseMediaType(sniffed); err == nil {
		return parsed
	}
	return sniffed
}

// CleanDroppedPath normalises a path pasted into the terminal by a file
// manager drag-and-drop
func CleanDroppedPath(raw string) string {
	p := strings.TrimSpace(raw)

	// Some terminals deliver several paths; only the first one is used
	if idx := strings.IndexAny(p, "\r\n"); idx >= 0 {
		p = strings.TrimSpace(p[:idx])
	}

	if len(p) >= 2 {
		if (p[0] == '\'' && p[len(p)-1] == '\'') || (p[0] == '"' && p[len(p)-1] == '"') {
			p = p[1 : len(p)-1]
		}
	}

	if strings.HasPrefix(p, "file://") {
		if u, err := url.Parse(p); err == nil {
			p = u.Path
		}
	}

	// Shell-style escapes: "my\ face.jpg" -> "my face.jpg"
	var b strings.Builder
	escaped := false
	for _, r := range p {
		if r == '\\' && !escaped {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}

	return b.String()
}
