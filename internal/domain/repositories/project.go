package repositories

import (
	"context"

	"ayitichat/internal/domain/models"
)

// ProjectRepository persists project rows and their status transitions.
type ProjectRepository interface {
	CreateProject(ctx context.Context, project *models.Project) error
	GetProject(ctx context.Context, projectID, userID string) (*models.Project, error)
	ListProjects(ctx context.Context, userID string) ([]models.Project, error)
	// UpdateStatus moves a project through the generation lifecycle and
	// optionally replaces its description (the generator writes the model's
	// explanation there on success).
	UpdateStatus(ctx context.Context, projectID, status string, description *string) error
	DeleteProject(ctx context.Context, projectID, userID string) error
}

// ProjectFileRepository persists generated file rows.
type ProjectFileRepository interface {
	// BulkInsert writes all files for one generation call.
	BulkInsert(ctx context.Context, files []models.ProjectFile) error
	ListFiles(ctx context.Context, projectID string) ([]models.ProjectFile, error)
}
