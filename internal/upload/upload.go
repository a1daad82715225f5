package upload

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"mime"
	"mime/multipart"
	"time"

	"github.com/gabriel-vasile/mimetype"

	apperr "nutritrack/internal/errors"
	"nutritrack/internal/storage"
)

// MaxProfileImageSize is the largest accepted profile image.
const MaxProfileImageSize = 2 << 20

const profilePrefix = "profiles"

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Uploader validates incoming images and hands them to an object store.
type Uploader struct {
	store   storage.ObjectStore
	maxSize int64
	now     func() time.Time
}

// New creates an uploader writing to store.
func New(store storage.ObjectStore) *Uploader {
	return &Uploader{store: store, maxSize: MaxProfileImageSize, now: time.Now}
}

// SaveProfileImage checks size, declared type and sniffed content, then
// stores the file and returns its relative path.
func (u *Uploader) SaveProfileImage(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	if fh.Size > u.maxSize {
		return "", apperr.ErrUploadTooLarge
	}

	declared, _, err := mime.ParseMediaType(fh.Header.Get("Content-Type"))
	if err != nil {
		return "", apperr.ErrUploadType
	}
	if _, ok := allowedTypes[declared]; !ok {
		return "", apperr.ErrUploadType
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	detected, err := mimetype.DetectReader(f)
	if err != nil {
		return "", fmt.Errorf("sniff upload: %w", err)
	}
	ext, ok := allowedTypes[detected.String()]
	if !ok {
		return "", apperr.ErrUploadType
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	key := fmt.Sprintf("%s/%d-%d%s", profilePrefix, u.now().UnixMilli(), rand.Int64N(1e9), ext)
	// The reader is capped so a lying Size header cannot exceed the limit.
	return u.store.Put(ctx, key, io.LimitReader(f, u.maxSize), fh.Size, detected.String())
}

// Remove deletes a file stored by SaveProfileImage.
func (u *Uploader) Remove(ctx context.Context, path string) error {
	return u.store.Delete(ctx, path)
}
