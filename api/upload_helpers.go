package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"strings"

	"storekit/commerce-api/httpx"
	"storekit/commerce-api/util"
	"storekit/commerce-api/validators"

	"go.uber.org/zap"
)

// saveTempFile spools a multipart file to disk so the upload adapter
// can stream it. The adapter removes the temp file whatever happens.
func saveTempFile(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open multipart file, %w", err)
	}
	defer src.Close()

	temp, err := os.CreateTemp("", "upload-*"+path.Ext(fh.Filename))
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file, %w", err)
	}
	defer temp.Close()

	if _, err := io.Copy(temp, src); err != nil {
		os.Remove(temp.Name())
		return "", fmt.Errorf("failed to copy data to temporary file, %w", err)
	}

	return temp.Name(), nil
}

// uploadImage validates, spools and pushes a single form image and
// returns its durable URL. Failures come back as upload errors wearing
// the caller-facing label ("Avatar", "Category image", ...).
func (a *API) uploadImage(ctx context.Context, fh *multipart.FileHeader, keyPrefix, label string) (string, error) {
	if err := validators.ImageValidator(fh); err != nil {
		return "", httpx.BadRequest(label + ": " + err.Error())
	}

	temp, err := saveTempFile(fh)
	if err != nil {
		zap.L().Error("Failed to spool upload", zap.Error(err))
		return "", httpx.Internal("Internal server error")
	}

	ext := strings.ToLower(path.Ext(fh.Filename))
	key := keyPrefix + "/" + util.RandStr(10) + ext

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := a.Uploads.Upload(ctx, temp, key, contentType)
	if err != nil {
		zap.L().Error("Upload to media host failed", zap.Error(err), zap.String("key", key))
		return "", httpx.Upload(label + " upload failed")
	}

	return url, nil
}
