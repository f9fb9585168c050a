package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mealweek/backend/config"
)

// ImageService stores pantry snapshot photos and resolves hero image URLs.
type ImageService struct {
	s3Config *config.S3Config
	logger   zerolog.Logger
}

func NewImageService(s3Config *config.S3Config, logger zerolog.Logger) *ImageService {
	return &ImageService{s3Config: s3Config, logger: logger}
}

// UploadPantryPhoto stores a snapshot photo under the user's prefix and
// returns its public URL. The photo is a reference; item extraction happens
// separately.
func (s *ImageService) UploadPantryPhoto(ctx context.Context, userID uuid.UUID, data []byte, contentType string) (string, error) {
	ext := extensionFor(contentType)
	key := fmt.Sprintf("pantry-photos/%s/%s%s", userID, uuid.New().String(), ext)

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key)
	s.logger.Info().Str("key", key).Msg("uploaded pantry photo")
	return publicURL, nil
}

// UploadMenuCard stores a generated menu card image keyed by menu id.
func (s *ImageService) UploadMenuCard(ctx context.Context, menuID string, data []byte) (string, error) {
	key := fmt.Sprintf("menu-cards/%s.png", menuID)

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/png"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key), nil
}

// PresignHeroImage turns a stored hero image URL into a time-limited signed
// URL. URLs that do not point at our bucket pass through unchanged.
func (s *ImageService) PresignHeroImage(ctx context.Context, rawURL string) (string, error) {
	prefix := fmt.Sprintf("https://%s.s3.amazonaws.com/", s.s3Config.BucketName)
	if !strings.HasPrefix(rawURL, prefix) {
		return rawURL, nil
	}
	key := strings.TrimPrefix(rawURL, prefix)
	return s.s3Config.GeneratePresignedURL(ctx, key, 15*time.Minute)
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
