package service

import (
	"context"
	"errors"
	"testing"

	"ayitichat/internal/domain"
	"ayitichat/internal/domain/models"
	"ayitichat/internal/domain/services"
)

type projectFixture struct {
	projectRepo *fakeProjectRepo
	fileRepo    *fakeFileRepo
	completions *fakeCompletions
	cache       *fakeProjectCache
	svc         services.ProjectService
}

func newProjectFixture(reply string) *projectFixture {
	f := &projectFixture{
		projectRepo: newFakeProjectRepo(),
		fileRepo:    &fakeFileRepo{},
		completions: &fakeCompletions{reply: reply},
		cache:       newFakeProjectCache(),
	}
	f.svc = NewProjectService(f.projectRepo, f.fileRepo, &fakeTxManager{}, f.completions, f.cache, "test-model", testLogger)
	return f
}

func TestGenerateHappyPath(t *testing.T) {
	reply := "```json\n" + `{"files":[{"path":"package.json","content":"{}","language":"json"},{"path":"src/app.js","content":"code","language":""}],"explanation":"A todo app"}` + "\n```"
	f := newProjectFixture(reply)

	result, err := f.svc.Generate(context.Background(), "user-1", &services.GenerateProjectRequest{
		ProjectType: "react",
		Description: "a todo app",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if result.Project.Status != models.StatusReady {
		t.Errorf("status = %q, want ready", result.Project.Status)
	}
	if result.Project.Title != "react Project" {
		t.Errorf("title = %q, want default title from project type", result.Project.Title)
	}
	if result.Project.Model != "test-model" {
		t.Errorf("model = %q, want the configured generation model", result.Project.Model)
	}
	if result.Explanation != "A todo app" {
		t.Errorf("explanation = %q", result.Explanation)
	}

	if len(f.fileRepo.files) != 2 {
		t.Fatalf("persisted files = %d, want 2", len(f.fileRepo.files))
	}
	// Missing language is inferred from the extension.
	if f.fileRepo.files[1].Language != "javascript" {
		t.Errorf("inferred language = %q, want javascript", f.fileRepo.files[1].Language)
	}

	stored := f.projectRepo.projects[result.Project.ID]
	if stored.Status != models.StatusReady {
		t.Errorf("stored status = %q, want ready", stored.Status)
	}
	if stored.Description != "A todo app" {
		t.Errorf("stored description = %q, want the explanation", stored.Description)
	}

	if len(f.completions.requests) != 1 {
		t.Fatalf("upstream calls = %d, want 1", len(f.completions.requests))
	}
	req := f.completions.requests[0]
	if req.Temperature == nil || *req.Temperature != 0.7 {
		t.Errorf("temperature = %v, want 0.7", req.Temperature)
	}
	if req.MaxTokens == nil || *req.MaxTokens != 8000 {
		t.Errorf("max_tokens = %v, want 8000", req.MaxTokens)
	}
}

func TestGenerateUnparseableReplyFallsBack(t *testing.T) {
	f := newProjectFixture("I'd suggest building it with Vue.")

	result, err := f.svc.Generate(context.Background(), "user-1", &services.GenerateProjectRequest{
		ProjectType: "vue",
		Description: "a blog",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if result.Project.Status != models.StatusReady {
		t.Errorf("status = %q, want ready even on fallback", result.Project.Status)
	}
	if len(result.Files) != 1 || result.Files[0].Path != "index.html" {
		t.Fatalf("files = %+v, want single index.html fallback", result.Files)
	}
	if result.Files[0].Content != "I'd suggest building it with Vue." {
		t.Errorf("fallback content = %q, want the raw reply", result.Files[0].Content)
	}
}

func TestGenerateUpstreamFailureMarksError(t *testing.T) {
	f := newProjectFixture("")
	f.completions.err = &domain.UpstreamError{Status: 502, Body: "bad gateway"}

	_, err := f.svc.Generate(context.Background(), "user-1", &services.GenerateProjectRequest{
		ProjectType: "react",
		Description: "a todo app",
	})
	if err == nil {
		t.Fatal("expected error")
	}

	if len(f.projectRepo.projects) != 1 {
		t.Fatalf("projects = %d, want the row to survive the failure", len(f.projectRepo.projects))
	}
	for _, p := range f.projectRepo.projects {
		if p.Status != models.StatusError {
			t.Errorf("status = %q, want error", p.Status)
		}
	}
	if len(f.fileRepo.files) != 0 {
		t.Errorf("files = %d, want 0", len(f.fileRepo.files))
	}
}

func TestGeneratePersistFailureMarksError(t *testing.T) {
	reply := `{"files":[{"path":"a.js","content":"x"}],"explanation":"ok"}`
	f := newProjectFixture(reply)
	f.fileRepo.insertErr = errors.New("disk full")

	_, err := f.svc.Generate(context.Background(), "user-1", &services.GenerateProjectRequest{
		ProjectType: "react",
		Description: "a todo app",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	for _, p := range f.projectRepo.projects {
		if p.Status != models.StatusError {
			t.Errorf("status = %q, want error after persist failure", p.Status)
		}
	}
}

func TestGenerateValidation(t *testing.T) {
	f := newProjectFixture("unused")

	_, err := f.svc.Generate(context.Background(), "user-1", &services.GenerateProjectRequest{
		ProjectType: "",
		Description: "a todo app",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
	if len(f.projectRepo.projects) != 0 {
		t.Errorf("projects = %d, want 0 on validation failure", len(f.projectRepo.projects))
	}
}

func TestGetProjectCacheHitEnforcesOwnership(t *testing.T) {
	f := newProjectFixture("unused")

	project := &models.Project{UserID: "owner", Title: "Mine", Status: models.StatusReady}
	f.projectRepo.CreateProject(context.Background(), project)
	f.cache.Set(context.Background(), project)

	if _, err := f.svc.GetProject(context.Background(), project.ID, "intruder"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound on a foreign cache hit", err)
	}

	got, err := f.svc.GetProject(context.Background(), project.ID, "owner")
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if got.ID != project.ID {
		t.Errorf("got project %q, want %q", got.ID, project.ID)
	}
}

func TestGetProjectMissPopulatesCache(t *testing.T) {
	f := newProjectFixture("unused")

	project := &models.Project{UserID: "owner", Title: "Mine", Status: models.StatusReady}
	f.projectRepo.CreateProject(context.Background(), project)

	if _, err := f.svc.GetProject(context.Background(), project.ID, "owner"); err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if f.cache.sets != 1 {
		t.Errorf("cache sets = %d, want 1", f.cache.sets)
	}

	if _, err := f.svc.GetProject(context.Background(), project.ID, "owner"); err != nil {
		t.Fatalf("GetProject (second): %v", err)
	}
	if f.cache.hits != 1 {
		t.Errorf("cache hits = %d, want 1", f.cache.hits)
	}
}

func TestDeleteProjectInvalidatesCache(t *testing.T) {
	f := newProjectFixture("unused")

	project := &models.Project{UserID: "owner", Title: "Mine"}
	f.projectRepo.CreateProject(context.Background(), project)
	f.cache.Set(context.Background(), project)

	if err := f.svc.DeleteProject(context.Background(), project.ID, "owner"); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
	if len(f.cache.invalidated) != 1 || f.cache.invalidated[0] != project.ID {
		t.Errorf("invalidated = %v, want [%s]", f.cache.invalidated, project.ID)
	}
}
