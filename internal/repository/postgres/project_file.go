package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ayitichat/internal/domain/models"
	"ayitichat/internal/domain/repositories"
)

// PostgresProjectFileRepository implements the ProjectFileRepository interface using PostgreSQL
type PostgresProjectFileRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewProjectFileRepository creates a new PostgresProjectFileRepository
func NewProjectFileRepository(config *RepositoryConfig) repositories.ProjectFileRepository {
	return &PostgresProjectFileRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// BulkInsert writes all files for one generation call. Callers run this
// inside a transaction so a partial insert never becomes visible.
func (r *PostgresProjectFileRepository) BulkInsert(ctx context.Context, files []models.ProjectFile) error {
	if len(files) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (project_id, file_path, file_content, language, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, r.tables.ProjectFiles)

	executor := GetExecutor(ctx, r.pool)

	batch := &pgx.Batch{}
	for _, f := range files {
		batch.Queue(query, f.ProjectID, f.Path, f.Content, f.Language, f.CreatedAt)
	}

	var results pgx.BatchResults
	switch ex := executor.(type) {
	case pgx.Tx:
		results = ex.SendBatch(ctx, batch)
	case *pgxpool.Pool:
		results = ex.SendBatch(ctx, batch)
	default:
		return fmt.Errorf("bulk insert files: executor does not support batches")
	}
	defer results.Close()

	for range files {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("bulk insert files: %w", err)
		}
	}

	return nil
}

// ListFiles returns a project's generated files in path order
func (r *PostgresProjectFileRepository) ListFiles(ctx context.Context, projectID string) ([]models.ProjectFile, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, file_path, file_content, language, created_at
		FROM %s
		WHERE project_id = $1
		ORDER BY file_path ASC
	`, r.tables.ProjectFiles)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list project files: %w", err)
	}
	defer rows.Close()

	var files []models.ProjectFile
	for rows.Next() {
		var f models.ProjectFile
		err := rows.Scan(
			&f.ID,
			&f.ProjectID,
			&f.Path,
			&f.Content,
			&f.Language,
			&f.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan project file: %w", err)
		}
		files = append(files, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate project files: %w", err)
	}

	if files == nil {
		files = []models.ProjectFile{}
	}

	return files, nil
}
