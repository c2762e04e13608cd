package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"ayitichat/internal/config"
	"ayitichat/internal/domain"
	"ayitichat/internal/domain/models"
	"ayitichat/internal/domain/repositories"
	"ayitichat/internal/domain/services"
	"ayitichat/internal/llm"
)

const (
	generationTemperature = 0.7
	generationMaxTokens   = 8000
)

// projectService implements the ProjectService interface
type projectService struct {
	projectRepo  repositories.ProjectRepository
	fileRepo     repositories.ProjectFileRepository
	txManager    repositories.TransactionManager
	completions  llm.CompletionClient
	projectCache repositories.ProjectCache
	projectModel string
	logger       *slog.Logger
}

// NewProjectService creates a new project service
func NewProjectService(
	projectRepo repositories.ProjectRepository,
	fileRepo repositories.ProjectFileRepository,
	txManager repositories.TransactionManager,
	completions llm.CompletionClient,
	projectCache repositories.ProjectCache,
	projectModel string,
	logger *slog.Logger,
) services.ProjectService {
	return &projectService{
		projectRepo:  projectRepo,
		fileRepo:     fileRepo,
		txManager:    txManager,
		completions:  completions,
		projectCache: projectCache,
		projectModel: projectModel,
		logger:       logger,
	}
}

// Generate runs the full generation lifecycle. The project row is created in
// status generating before the upstream call; once the row exists, any
// failure marks it error instead of leaving it stuck.
func (s *projectService) Generate(ctx context.Context, userID string, req *services.GenerateProjectRequest) (*services.GenerationResult, error) {
	if err := s.validateGenerateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	title := req.Title
	if title == "" {
		title = req.ProjectType + " Project"
	}
	description := req.Description
	if description == "" {
		description = "A new " + req.ProjectType + " project"
	}

	now := time.Now()
	project := &models.Project{
		UserID:      userID,
		Title:       title,
		Description: description,
		ProjectType: req.ProjectType,
		Status:      models.StatusGenerating,
		Model:       s.projectModel,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.projectRepo.CreateProject(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project generation started",
		"id", project.ID,
		"user_id", userID,
		"project_type", req.ProjectType,
	)

	result, err := s.runGeneration(ctx, project, req)
	if err != nil {
		s.markFailed(ctx, project.ID)
		return nil, err
	}

	return result, nil
}

func (s *projectService) runGeneration(ctx context.Context, project *models.Project, req *services.GenerateProjectRequest) (*services.GenerationResult, error) {
	temperature := generationTemperature
	maxTokens := generationMaxTokens

	reply, err := s.completions.Complete(ctx, llm.CompletionRequest{
		Model: s.projectModel,
		Messages: []llm.ChatMessage{
			{Role: models.RoleSystem, Content: buildSystemPrompt(req.ProjectType)},
			{Role: models.RoleUser, Content: buildUserPrompt(req.ProjectType, req.Description)},
		},
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		return nil, err
	}

	payload := parseGeneration(reply)

	if len(payload.Files) > config.MaxGeneratedFiles {
		payload.Files = payload.Files[:config.MaxGeneratedFiles]
	}

	now := time.Now()
	files := make([]models.ProjectFile, len(payload.Files))
	for i, f := range payload.Files {
		language := f.Language
		if language == "" {
			language = inferLanguage(f.Path)
		}
		files[i] = models.ProjectFile{
			ProjectID: project.ID,
			Path:      f.Path,
			Content:   f.Content,
			Language:  language,
			CreatedAt: now,
		}
	}

	explanation := payload.Explanation
	if explanation == "" {
		explanation = project.Description
	}

	// Files and the ready flip land together or not at all.
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.fileRepo.BulkInsert(txCtx, files); err != nil {
			return err
		}
		return s.projectRepo.UpdateStatus(txCtx, project.ID, models.StatusReady, &explanation)
	})
	if err != nil {
		return nil, fmt.Errorf("persist generation: %w", err)
	}

	project.Status = models.StatusReady
	project.Description = explanation
	s.projectCache.Invalidate(ctx, project.ID)

	s.logger.Info("project generation complete",
		"id", project.ID,
		"files", len(files),
	)

	return &services.GenerationResult{
		Project:     project,
		Files:       files,
		Explanation: explanation,
	}, nil
}

// markFailed is the compensating update after the project row exists. It runs
// on a fresh context so a cancelled request can still record the failure.
func (s *projectService) markFailed(ctx context.Context, projectID string) {
	updateCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if err := s.projectRepo.UpdateStatus(updateCtx, projectID, models.StatusError, nil); err != nil {
		s.logger.Error("failed to mark project as errored", "id", projectID, "error", err)
		return
	}
	s.projectCache.Invalidate(updateCtx, projectID)
	s.logger.Warn("project generation failed", "id", projectID)
}

func (s *projectService) validateGenerateRequest(req *services.GenerateProjectRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.ProjectType, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Description, validation.Required, validation.Length(1, config.MaxProjectDescriptionLength)),
		validation.Field(&req.Title, validation.Length(0, config.MaxProjectTitleLength)),
	)
}

func buildSystemPrompt(projectType string) string {
	return fmt.Sprintf(`You are an expert software engineer. Generate a complete, production-ready %s project based on the user's description.

CRITICAL REQUIREMENTS:
1. Generate ALL necessary files for a complete project
2. Include package.json, configuration files, and dependencies
3. Use modern best practices and latest syntax
4. Generate real, functional code - NO placeholders or TODOs
5. Include proper file structure with folders
6. Add comments explaining key parts
7. Make it production-ready and deployable

Return your response in this EXACT JSON format:
{
  "files": [
    {
      "path": "package.json",
      "content": "...",
      "language": "json"
    },
    {
      "path": "src/index.js",
      "content": "...",
      "language": "javascript"
    }
  ],
  "explanation": "Brief explanation of what was built and how to use it"
}`, projectType)
}

func buildUserPrompt(projectType, description string) string {
	return fmt.Sprintf(`Create a %s project: %s

Requirements:
- Project type: %s
- Must be production-ready
- Include all necessary files and dependencies
- Use modern best practices`, projectType, description, projectType)
}

// GetProject reads through the cache
func (s *projectService) GetProject(ctx context.Context, projectID, userID string) (*models.Project, error) {
	if cached, ok := s.projectCache.Get(ctx, projectID); ok {
		// Cache hits still enforce ownership.
		if cached.UserID != userID {
			return nil, fmt.Errorf("project %s: %w", projectID, domain.ErrNotFound)
		}
		return cached, nil
	}

	project, err := s.projectRepo.GetProject(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}

	s.projectCache.Set(ctx, project)
	return project, nil
}

// ListProjects returns the user's projects
func (s *projectService) ListProjects(ctx context.Context, userID string) ([]models.Project, error) {
	return s.projectRepo.ListProjects(ctx, userID)
}

// ListFiles returns a project's generated files after an ownership check
func (s *projectService) ListFiles(ctx context.Context, projectID, userID string) ([]models.ProjectFile, error) {
	if _, err := s.GetProject(ctx, projectID, userID); err != nil {
		return nil, err
	}
	return s.fileRepo.ListFiles(ctx, projectID)
}

// DeleteProject removes a project (files cascade in the schema)
func (s *projectService) DeleteProject(ctx context.Context, projectID, userID string) error {
	if err := s.projectRepo.DeleteProject(ctx, projectID, userID); err != nil {
		return err
	}
	s.projectCache.Invalidate(ctx, projectID)
	s.logger.Info("project deleted", "id", projectID, "user_id", userID)
	return nil
}
