package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// AvatarSize is the edge length of stored avatars in pixels.
const AvatarSize = 256

// MaxAvatarBytes bounds the accepted upload size.
const MaxAvatarBytes = 5 << 20

// MaxAvatarSide bounds the pixel dimensions of an upload. The byte limit
// alone does not, compressed images can decode to gigabytes.
const MaxAvatarSide = 4096

var (
	ErrInvalidImage   = errors.New("Please upload an image file (png, jpeg or webp)")
	ErrAvatarTooLarge = errors.New("Avatar must not exceed 5 MB")
)

var avatarContentTypes = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
}

func InArray[T comparable](val T, array []T) bool {
	for _, v := range array {
		if val == v {
			return true
		}
	}
	return false
}

// Upload stores an avatar upload in dir as a normalized png and returns the
// generated file name.
func Upload(file *multipart.FileHeader, dir string) (string, error) {
	if file == nil {
		return "", ErrInvalidImage
	}

	if file.Size > MaxAvatarBytes {
		return "", ErrAvatarTooLarge
	}

	// Other types are left to the decoder.
	if contentType := file.Header.Get("Content-Type"); strings.HasPrefix(contentType, "image/") && !InArray(contentType, avatarContentTypes) {
		return "", ErrInvalidImage
	}

	src, err := file.Open()
	if err != nil {
		return "", errors.Wrap(err, "opening upload")
	}
	defer src.Close()

	var buf bytes.Buffer
	if err = NormalizeAvatar(src, &buf); err != nil {
		return "", err
	}

	if err = os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", errors.Wrap(err, "creating upload dir")
	}

	name := fmt.Sprintf("avatar-%s.png", uuid.NewString())
	if err = os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0o644); err != nil {
		return "", errors.Wrap(err, "writing avatar")
	}

	return name, nil
}

// NormalizeAvatar decodes a png, jpeg or webp image, crops it to a centered
// square and writes it to w as an AvatarSize png.
func NormalizeAvatar(r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(io.LimitReader(r, MaxAvatarBytes+1))
	if err != nil {
		return errors.Wrap(err, "reading avatar")
	}
	if len(data) > MaxAvatarBytes {
		return ErrAvatarTooLarge
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width > MaxAvatarSide || cfg.Height > MaxAvatarSide {
		return ErrInvalidImage
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return ErrInvalidImage
	}

	b := src.Bounds()
	side := b.Dx()
	if b.Dy() < side {
		side = b.Dy()
	}
	if side == 0 {
		return ErrInvalidImage
	}

	x0 := b.Min.X + (b.Dx()-side)/2
	y0 := b.Min.Y + (b.Dy()-side)/2
	crop := image.Rect(x0, y0, x0+side, y0+side)

	dst := image.NewRGBA(image.Rect(0, 0, AvatarSize, AvatarSize))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, draw.Over, nil)

	return errors.Wrap(png.Encode(w, dst), "encoding avatar")
}
