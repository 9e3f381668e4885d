package utils

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	ErrEmptyFrame    = errors.New("empty frame")
	ErrFrameTooLarge = errors.New("frame exceeds size limit")
	ErrNotAnImage    = errors.New("frame is not an image")
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	ValidateImageFile(file *multipart.FileHeader) error
	ReadImageFile(file *multipart.FileHeader) ([]byte, error)
	DecodeBase64Frame(encoded string) ([]byte, error)
}

type utils struct {
	maxFrameSize int64
}

func New() IUtils {
	return &utils{
		maxFrameSize: 5 * 1024 * 1024,
	}
}

func NewWithLimit(maxFrameSize int64) IUtils {
	return &utils{
		maxFrameSize: maxFrameSize,
	}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

func (u *utils) ValidateImageFile(file *multipart.FileHeader) error {
	if file == nil {
		return ErrEmptyFrame
	}

	if file.Size > u.maxFrameSize {
		return ErrFrameTooLarge
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return ErrNotAnImage
	}

	return nil
}

func (u *utils) ReadImageFile(file *multipart.FileHeader) ([]byte, error) {
	if err := u.ValidateImageFile(file); err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return io.ReadAll(io.LimitReader(src, u.maxFrameSize))
}

// DecodeBase64Frame decodes a frame sent as base64 text. Data-URL prefixes
// ("data:image/jpeg;base64,") from browser canvases are accepted.
func (u *utils) DecodeBase64Frame(encoded string) ([]byte, error) {
	if i := strings.Index(encoded, ","); i >= 0 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[i+1:]
	}

	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, ErrEmptyFrame
	}

	if int64(base64.StdEncoding.DecodedLen(len(encoded))) > u.maxFrameSize {
		return nil, ErrFrameTooLarge
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}

	if !strings.HasPrefix(http.DetectContentType(data), "image/") {
		return nil, ErrNotAnImage
	}

	return data, nil
}
