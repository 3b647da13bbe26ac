package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"log"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/linkgrove/linkgrove-v2/backend/config"
)

var ErrEmptyShareURL = errors.New("share url is empty")

const (
	shareCodeSize = 512
	// logo edge length relative to the code; small enough that the
	// QR error correction absorbs the covered modules.
	logoFraction = 5
)

// ShareService produces shareable QR codes for profile URLs: a base
// code with a best-effort centered logo overlay. Overlay failure of
// any kind falls back to the plain code; generation itself only fails
// on an empty URL.
type ShareService struct {
	logoPath string
	s3Config *config.S3Config
}

// Ensure ShareService implements IShareService
var _ IShareService = (*ShareService)(nil)

// NewShareService creates a new ShareService instance. logoPath may be
// empty to skip the overlay; s3Config may be nil to disable uploads.
func NewShareService(logoPath string, s3Config *config.S3Config) *ShareService {
	return &ShareService{logoPath: logoPath, s3Config: s3Config}
}

// GenerateShareCode renders a QR code PNG for the given URL. The
// result is always a usable image for a non-empty URL: every overlay
// step guards its own failure and degrades to the unmodified code.
func (s *ShareService) GenerateShareCode(ctx context.Context, profileURL string) ([]byte, error) {
	if profileURL == "" {
		return nil, ErrEmptyShareURL
	}

	code, err := qrcode.New(profileURL, qrcode.High)
	if err != nil {
		return nil, fmt.Errorf("failed to build share code: %w", err)
	}

	base := code.Image(shareCodeSize)
	composite, err := s.overlayLogo(base)
	if err != nil {
		log.Printf("[ShareService] logo overlay failed, using plain code: %v", err)
		composite = base
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, composite); err != nil {
		// fall back to the library's own encoder
		return code.PNG(shareCodeSize)
	}
	return buf.Bytes(), nil
}

func (s *ShareService) overlayLogo(base image.Image) (image.Image, error) {
	if s.logoPath == "" {
		return base, nil
	}
	f, err := os.Open(s.logoPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	logo, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}

	bounds := base.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, base, bounds.Min, draw.Src)

	side := bounds.Dx() / logoFraction
	lb := logo.Bounds()
	if lb.Dx() == 0 || lb.Dy() == 0 {
		return nil, errors.New("logo image is empty")
	}
	// nearest-neighbor resample of the logo into a centered square
	offset := image.Pt(bounds.Min.X+(bounds.Dx()-side)/2, bounds.Min.Y+(bounds.Dy()-side)/2)
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			sx := lb.Min.X + x*lb.Dx()/side
			sy := lb.Min.Y + y*lb.Dy()/side
			out.Set(offset.X+x, offset.Y+y, logo.At(sx, sy))
		}
	}
	return out, nil
}

// UploadShareCode stores a generated code in the asset bucket and
// returns a presigned URL for it. Callers treat any error as "serve
// the PNG inline instead".
func (s *ShareService) UploadShareCode(ctx context.Context, username string, code []byte) (string, error) {
	if s.s3Config == nil {
		return "", errors.New("share code uploads not configured")
	}
	key := fmt.Sprintf("share-codes/%s.png", username)
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(code),
		ContentType: aws.String("image/png"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload share code: %w", err)
	}
	return s.s3Config.GeneratePresignedURL(ctx, key, 24*time.Hour)
}
