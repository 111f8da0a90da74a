package service

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/andy/invoicedesk/internal/domain"
)

// MaxSignatureBytes is the largest signature image accepted
const MaxSignatureBytes int64 = 5 << 20

var (
	ErrSignatureTooLarge = errors.New("signature image is too large")
	ErrSignatureNotImage = errors.New("signature file is not an image")
)

// ReadSignature loads an image file for use as a signature. The type is
// sniffed from the content, not the file name.
func ReadSignature(path string, maxBytes int64) (*domain.Signature, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read signature: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("failed to read signature: %s is a directory", path)
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrSignatureTooLarge, info.Size(), maxBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read signature: %w", err)
	}

	media, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	if !strings.HasPrefix(media, "image/") {
		return nil, fmt.Errorf("%w: detected %s", ErrSignatureNotImage, media)
	}

	return domain.NewSignature(media, data)
}
