package validators

import (
	"errors"
	"mime/multipart"
	"path"
	"slices"
	"strings"
)

var (
	ErrImageMissing     = errors.New("no image provided")
	ErrImageBadType     = errors.New("unsupported image type")
	ErrImageNameMissing = errors.New("image has no file name")
)

var allowedImageExts = []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}

// ImageValidator rejects files that aren't plausibly images before
// anything is written to disk or pushed to the media host.
func ImageValidator(fh *multipart.FileHeader) error {
	if fh == nil {
		return ErrImageMissing
	}

	if fh.Filename == "" {
		return ErrImageNameMissing
	}

	ext := strings.ToLower(path.Ext(fh.Filename))
	if !slices.Contains(allowedImageExts, ext) {
		return ErrImageBadType
	}

	if ct := fh.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return ErrImageBadType
	}

	return nil
}
