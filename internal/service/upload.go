package service

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/google/uuid"

	"ayitichat/internal/config"
	"ayitichat/internal/domain"
	"ayitichat/internal/domain/models"
	"ayitichat/internal/domain/services"
	"ayitichat/internal/storage"
)

const attachmentBucket = "attachments"

// uploadService implements the UploadService interface
type uploadService struct {
	uploader storage.Uploader
	logger   *slog.Logger
}

// NewUploadService creates a new upload service
func NewUploadService(uploader storage.Uploader, logger *slog.Logger) services.UploadService {
	return &uploadService{
		uploader: uploader,
		logger:   logger,
	}
}

// Upload stores an attachment under the user's folder and returns the
// url/name/mime triple messages carry. Object names are uuid-prefixed so
// re-uploading the same filename never clobbers an earlier attachment.
func (s *uploadService) Upload(ctx context.Context, userID, filename, contentType string, data []byte) (*models.Attachment, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", domain.ErrValidation)
	}
	if len(data) > config.MaxUploadBytes {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", domain.ErrValidation, config.MaxUploadBytes)
	}

	name := sanitizeFilename(filename)
	if name == "" {
		return nil, fmt.Errorf("%w: filename is required", domain.ErrValidation)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectPath := fmt.Sprintf("%s/%s-%s", userID, uuid.NewString(), name)

	url, err := s.uploader.Upload(ctx, attachmentBucket, objectPath, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("upload attachment: %w", err)
	}

	s.logger.Info("attachment uploaded", "user_id", userID, "name", name, "bytes", len(data))

	return &models.Attachment{
		URL:  url,
		Name: name,
		Type: contentType,
	}, nil
}

// sanitizeFilename strips any path components and characters that would
// break a storage object key.
func sanitizeFilename(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	if name == "." || name == ".." {
		return ""
	}
	return name
}
