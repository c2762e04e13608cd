package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"ayitichat/internal/domain"
	"ayitichat/internal/domain/models"
	"ayitichat/internal/domain/repositories"
)

// PostgresProjectRepository implements the ProjectRepository interface using PostgreSQL
type PostgresProjectRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewProjectRepository creates a new PostgresProjectRepository
func NewProjectRepository(config *RepositoryConfig) repositories.ProjectRepository {
	return &PostgresProjectRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// CreateProject inserts a project row, normally in the generating state
func (r *PostgresProjectRepository) CreateProject(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, title, description, project_type, status, model, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		project.UserID,
		project.Title,
		project.Description,
		project.ProjectType,
		project.Status,
		project.Model,
		project.CreatedAt,
		project.UpdatedAt,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}

	return nil
}

// GetProject retrieves a project by ID scoped to its owner
func (r *PostgresProjectRepository) GetProject(ctx context.Context, projectID, userID string) (*models.Project, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, title, description, project_type, status, model,
		       github_repo, publish_url, created_at, updated_at
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Projects)

	var project models.Project
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, projectID, userID).Scan(
		&project.ID,
		&project.UserID,
		&project.Title,
		&project.Description,
		&project.ProjectType,
		&project.Status,
		&project.Model,
		&project.GithubRepo,
		&project.PublishURL,
		&project.CreatedAt,
		&project.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("project %s: %w", projectID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	return &project, nil
}

// ListProjects retrieves all projects for a user, newest first
func (r *PostgresProjectRepository) ListProjects(ctx context.Context, userID string) ([]models.Project, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, title, description, project_type, status, model,
		       github_repo, publish_url, created_at, updated_at
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var project models.Project
		err := rows.Scan(
			&project.ID,
			&project.UserID,
			&project.Title,
			&project.Description,
			&project.ProjectType,
			&project.Status,
			&project.Model,
			&project.GithubRepo,
			&project.PublishURL,
			&project.CreatedAt,
			&project.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	if projects == nil {
		projects = []models.Project{}
	}

	return projects, nil
}

// UpdateStatus moves a project through the generation lifecycle. The
// description is replaced only when a new one is supplied (the generator
// writes the model's explanation on success).
func (r *PostgresProjectRepository) UpdateStatus(ctx context.Context, projectID, status string, description *string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $1, description = COALESCE($2, description), updated_at = $3
		WHERE id = $4
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, status, description, time.Now(), projectID)
	if err != nil {
		return fmt.Errorf("update project status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", projectID, domain.ErrNotFound)
	}

	return nil
}

// DeleteProject removes a project; file rows go with it via ON DELETE CASCADE
func (r *PostgresProjectRepository) DeleteProject(ctx context.Context, projectID, userID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, projectID, userID)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", projectID, domain.ErrNotFound)
	}

	return nil
}
