package services

import (
	"context"

	"ayitichat/internal/domain/models"
)

// UploadService stores message attachments and returns their public URLs.
type UploadService interface {
	Upload(ctx context.Context, userID, filename, contentType string, data []byte) (*models.Attachment, error)
}
