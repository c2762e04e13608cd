package services

import (
	"context"

	"ayitichat/internal/domain/models"
)

// GenerateProjectRequest is the POST /api/projects/generate body.
type GenerateProjectRequest struct {
	ProjectType string `json:"project_type"`
	Description string `json:"description"`
	Title       string `json:"title,omitempty"`
}

// GenerationResult bundles what the generate endpoint returns.
type GenerationResult struct {
	Project     *models.Project      `json:"project"`
	Files       []models.ProjectFile `json:"files"`
	Explanation string               `json:"explanation"`
}

// ProjectService owns the generation lifecycle and project reads.
type ProjectService interface {
	// Generate creates the project row, calls the completion endpoint, and
	// persists the generated files. The returned project is in status ready;
	// failures after row creation leave it in status error.
	Generate(ctx context.Context, userID string, req *GenerateProjectRequest) (*GenerationResult, error)

	GetProject(ctx context.Context, projectID, userID string) (*models.Project, error)
	ListProjects(ctx context.Context, userID string) ([]models.Project, error)
	ListFiles(ctx context.Context, projectID, userID string) ([]models.ProjectFile, error)
	DeleteProject(ctx context.Context, projectID, userID string) error
}
