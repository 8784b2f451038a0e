package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/GlintPay/storefront/config"
	"github.com/GlintPay/storefront/utils"
	"github.com/rs/zerolog/log"
)

var (
	ErrNoFile         = errors.New("no file uploaded")
	ErrTooLarge       = errors.New("file too large")
	ErrStorageMissing = errors.New("storage configuration missing")
)

// KeyPrefix is where uploads live, both in a bucket and under the public URL of a local directory
const KeyPrefix = "uploads"

// Uploader stores one file under name and returns the URL it can be fetched from
type Uploader interface {
	Put(ctx context.Context, name string, contentType string, body io.Reader) (string, error)
}

type Service struct {
	Uploader Uploader
	Now      func() time.Time
}

// New picks object storage when it is configured, otherwise a local directory where allowed. With
// neither the service is still usable but every upload fails with ErrStorageMissing.
func New(ctx context.Context, appConfig config.ApplicationConfiguration) (*Service, error) {
	svc := &Service{Now: time.Now}
	cfg := appConfig.Upload

	switch {
	case cfg.S3.IsConfigured():
		uploader, err := NewS3(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		log.Info().Msgf("Uploading to bucket %s", cfg.S3.Bucket)
		svc.Uploader = uploader
	case !appConfig.Server.IsProduction() || cfg.AllowLocal:
		log.Info().Msgf("Uploading to %s", utils.FriendlyFileName(cfg.LocalDir))
		svc.Uploader = &LocalUploader{Dir: cfg.LocalDir}
	default:
		log.Warn().Msg("No upload storage configured")
	}

	return svc, nil
}

// Store saves an uploaded file under a time-based name that keeps the original extension
func (s *Service) Store(ctx context.Context, fileName string, contentType string, body io.Reader) (string, error) {
	if body == nil {
		return "", ErrNoFile
	}
	if s.Uploader == nil {
		return "", ErrStorageMissing
	}

	ext := utils.FileExtension(fileName)
	if ext == "" {
		ext = "jpg"
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}

	name := fmt.Sprintf("%d.%s", s.Now().UnixMilli(), ext)

	url, err := s.Uploader.Put(ctx, name, contentType, body)
	if err != nil {
		return "", err
	}

	log.Info().Msgf("Stored upload %s", url)
	return url, nil
}
