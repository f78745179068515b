package validation

import (
	"bytes"
	"encoding/base64"
	"fmt"

	apperrors "promptlens/internal/errors"
)

// MaxImageBytes is the largest upload or fetched image the service accepts.
const MaxImageBytes = 5 * 1024 * 1024

// Accepted image MIME types.
const (
	MimeJPEG = "image/jpeg"
	MimePNG  = "image/png"
	MimeWEBP = "image/webp"
)

var pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// ImageValidator checks raw image bytes against the size cap and the
// accepted format signatures. Filenames and client-declared content types
// are never consulted.
type ImageValidator struct{}

func NewImageValidator() *ImageValidator {
	return &ImageValidator{}
}

// Validate returns the detected MIME type of data. The size check runs
// first, so an oversized payload is rejected before any content
// inspection.
func (v *ImageValidator) Validate(data []byte) (string, error) {
	if len(data) > MaxImageBytes {
		return "", apperrors.NewPayloadTooLargeError(
			fmt.Sprintf("image exceeds the %d byte limit", MaxImageBytes), nil)
	}
	mime := sniffMime(data)
	if mime == "" {
		return "", apperrors.NewUnsupportedMediaError(
			"image must be a jpeg, png, or webp", nil)
	}
	return mime, nil
}

// sniffMime matches data against the magic bytes of the accepted formats
// and returns "" when none match.
func sniffMime(data []byte) string {
	switch {
	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xD8:
		return MimeJPEG
	case len(data) >= 8 && bytes.Equal(data[:8], pngSignature):
		return MimePNG
	case len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return MimeWEBP
	default:
		return ""
	}
}

// DataURL encodes data as a base64 data URL suitable for a vision model
// image part.
func DataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
