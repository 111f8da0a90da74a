package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Signature is an uploaded signature image kept in memory
type Signature struct {
	MIME string
	Data []byte
}

// NewSignature validates the MIME type and wraps the image bytes
func NewSignature(mime string, data []byte) (*Signature, error) {
	if !strings.HasPrefix(mime, "image/") {
		return nil, fmt.Errorf("%w: type %q is not an image", ErrInvalidSignature, mime)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrInvalidSignature)
	}
	return &Signature{MIME: mime, Data: data}, nil
}

// DataURL encodes the image as a base64 data URL
func (s *Signature) DataURL() string {
	return "data:" + s.MIME + ";base64," + base64.StdEncoding.EncodeToString(s.Data)
}

// ParseDataURL decodes a base64 image data URL
func ParseDataURL(raw string) (*Signature, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(raw), "data:")
	if !ok {
		return nil, fmt.Errorf("%w: not a data URL", ErrInvalidSignature)
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("%w: missing payload", ErrInvalidSignature)
	}
	mime, ok := strings.CutSuffix(header, ";base64")
	if !ok {
		return nil, fmt.Errorf("%w: only base64 data URLs are supported", ErrInvalidSignature)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return NewSignature(mime, data)
}

func (s *Signature) clone() *Signature {
	data := make([]byte, len(s.Data))
	copy(data, s.Data)
	return &Signature{MIME: s.MIME, Data: data}
}
