// Package validation checks uploaded player images before they reach storage.
package validation

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp" // registers the webp decoder for image.DecodeConfig
)

// extensions accepted per sniffed content type
var extensionsByMime = map[string][]string{
	"image/jpeg": {".jpg", ".jpeg"},
	"image/png":  {".png"},
	"image/gif":  {".gif"},
	"image/webp": {".webp"},
}

// Image describes an upload that passed validation.
type Image struct {
	MimeType string
	Ext      string // canonical lower-case extension including the dot
	Width    int
	Height   int
	Size     int64
}

// ParseImageUpload limits the request body, parses the multipart form and
// returns the file under field. The caller closes the file.
func ParseImageUpload(w http.ResponseWriter, r *http.Request, field string, maxSize int64) (multipart.File, *multipart.FileHeader, error) {
	// multipart framing adds overhead on top of the file itself
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+(64<<10))
	if err := r.ParseMultipartForm(maxSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, nil, ErrPayloadTooLarge
		}
		return nil, nil, ErrMissingFile
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, nil, ErrMissingFile
	}
	if header.Size > maxSize {
		file.Close()
		return nil, nil, ErrPayloadTooLarge
	}
	return file, header, nil
}

// ValidateImage sniffs the content, checks it against the allowed MIME types
// and the file extension, and decodes the image header. file is rewound.
func ValidateImage(file io.ReadSeeker, filename string, size int64, maxSize int64, allowedMimes []string) (*Image, error) {
	if size > maxSize {
		return nil, ErrPayloadTooLarge
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		if errors.Is(err, io.EOF) {
			return nil, ErrNotAnImage
		}
		return nil, fmt.Errorf("read image header: %w", err)
	}
	mimeType := http.DetectContentType(head[:n])
	if !isAllowed(mimeType, allowedMimes) {
		return nil, ErrInvalidMimeType
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !extensionMatches(mimeType, ext) {
		return nil, ErrInvalidMimeType
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind image: %w", err)
	}
	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return nil, ErrNotAnImage
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind image: %w", err)
	}

	return &Image{
		MimeType: mimeType,
		Ext:      canonicalExt(ext),
		Width:    cfg.Width,
		Height:   cfg.Height,
		Size:     size,
	}, nil
}

func isAllowed(mimeType string, allowed []string) bool {
	for _, m := range allowed {
		if m == mimeType {
			return true
		}
	}
	return false
}

func extensionMatches(mimeType, ext string) bool {
	for _, e := range extensionsByMime[mimeType] {
		if e == ext {
			return true
		}
	}
	return false
}

func canonicalExt(ext string) string {
	if ext == ".jpeg" {
		return ".jpg"
	}
	return ext
}
