package models

import "time"

// Project generation lifecycle. A project is inserted as StatusGenerating,
// flipped to StatusReady when its files land, and marked StatusError when
// generation fails after the row exists. No other transitions occur.
const (
	StatusGenerating = "generating"
	StatusReady      = "ready"
	StatusError      = "error"
)

// Project is a user-initiated request to scaffold a multi-file code artifact.
type Project struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	ProjectType string    `json:"project_type" db:"project_type"`
	Status      string    `json:"status" db:"status"`
	Model       string    `json:"model" db:"model"`
	GithubRepo  *string   `json:"github_repo,omitempty" db:"github_repo"`
	PublishURL  *string   `json:"publish_url,omitempty" db:"publish_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ProjectFile is one generated source file. Files are bulk-inserted once per
// generation call; no versioning.
type ProjectFile struct {
	ID        string    `json:"id" db:"id"`
	ProjectID string    `json:"project_id" db:"project_id"`
	Path      string    `json:"path" db:"file_path"`
	Content   string    `json:"content" db:"file_content"`
	Language  string    `json:"language" db:"language"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
