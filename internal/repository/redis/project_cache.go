package redis

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"ayitichat/internal/domain/models"
	"ayitichat/internal/domain/repositories"
)

const projectCacheTTL = 5 * time.Minute

// RedisProjectCache caches project rows by id. Reads during generation poll
// the same project repeatedly, so even a short TTL takes most of that load
// off Postgres. Cache misses and Redis failures both fall through to the
// database; the cache never gates correctness.
type RedisProjectCache struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

// NewProjectCache creates a new RedisProjectCache
func NewProjectCache(client *redis.Client, prefix string, logger *slog.Logger) repositories.ProjectCache {
	return &RedisProjectCache{
		client: client,
		prefix: prefix,
		logger: logger,
	}
}

func (c *RedisProjectCache) key(projectID string) string {
	return c.prefix + "project:" + projectID
}

// Get returns the cached project, or ok=false on miss or any Redis error.
func (c *RedisProjectCache) Get(ctx context.Context, projectID string) (*models.Project, bool) {
	data, err := c.client.Get(ctx, c.key(projectID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("project cache read failed", "project_id", projectID, "error", err)
		}
		return nil, false
	}

	var project models.Project
	if err := json.Unmarshal(data, &project); err != nil {
		c.logger.Warn("project cache entry corrupt", "project_id", projectID, "error", err)
		return nil, false
	}

	return &project, true
}

// Set stores the project with a short TTL. Failures are logged and ignored.
func (c *RedisProjectCache) Set(ctx context.Context, project *models.Project) {
	data, err := json.Marshal(project)
	if err != nil {
		c.logger.Warn("project cache marshal failed", "project_id", project.ID, "error", err)
		return
	}

	if err := c.client.Set(ctx, c.key(project.ID), data, projectCacheTTL).Err(); err != nil {
		c.logger.Warn("project cache write failed", "project_id", project.ID, "error", err)
	}
}

// Invalidate drops the cached entry after a status or metadata change.
func (c *RedisProjectCache) Invalidate(ctx context.Context, projectID string) {
	if err := c.client.Del(ctx, c.key(projectID)).Err(); err != nil {
		c.logger.Warn("project cache invalidate failed", "project_id", projectID, "error", err)
	}
}
