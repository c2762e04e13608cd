package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"ayitichat/internal/auth"
	"ayitichat/internal/domain"
	"ayitichat/internal/domain/models"
	"ayitichat/internal/domain/services"
)

// fakeAdminRepo tracks admin rows in memory.
type fakeAdminRepo struct {
	admins map[string]*models.AdminUser
	roles  []models.Role
}

func newFakeAdminRepo(adminIDs ...string) *fakeAdminRepo {
	r := &fakeAdminRepo{admins: make(map[string]*models.AdminUser)}
	for _, id := range adminIDs {
		r.admins[id] = &models.AdminUser{UserID: id}
	}
	return r
}

func (r *fakeAdminRepo) IsAdmin(ctx context.Context, userID string) (bool, error) {
	_, ok := r.admins[userID]
	return ok, nil
}

func (r *fakeAdminRepo) ListAdmins(ctx context.Context) ([]models.AdminUser, error) {
	out := []models.AdminUser{}
	for _, a := range r.admins {
		out = append(out, *a)
	}
	return out, nil
}

func (r *fakeAdminRepo) GrantAdmin(ctx context.Context, admin *models.AdminUser) error {
	if _, ok := r.admins[admin.UserID]; ok {
		return fmt.Errorf("admin %s: %w", admin.UserID, domain.ErrConflict)
	}
	cp := *admin
	r.admins[admin.UserID] = &cp
	return nil
}

func (r *fakeAdminRepo) RevokeAdmin(ctx context.Context, userID string) error {
	if _, ok := r.admins[userID]; !ok {
		return fmt.Errorf("admin %s: %w", userID, domain.ErrNotFound)
	}
	delete(r.admins, userID)
	return nil
}

func (r *fakeAdminRepo) ListRoles(ctx context.Context) ([]models.Role, error) {
	return r.roles, nil
}

func (r *fakeAdminRepo) ListPermissions(ctx context.Context, roleID string) ([]models.Permission, error) {
	return []models.Permission{}, nil
}

func (r *fakeAdminRepo) ListUserRoles(ctx context.Context, userID string) ([]models.UserRole, error) {
	return []models.UserRole{}, nil
}

// supabaseAdminStub serves the admin users endpoint the way Supabase does.
func supabaseAdminStub(t *testing.T, users []models.PlatformUser) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/admin/users" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"users": users})
	}))
}

func newAdminFixture(t *testing.T, repo *fakeAdminRepo, users []models.PlatformUser) services.AdminService {
	t.Helper()
	server := supabaseAdminStub(t, users)
	t.Cleanup(server.Close)
	client := auth.NewAdminClientWithHTTPClient(server.URL, "service-key", server.Client())
	return NewAdminService(repo, client, testLogger)
}

func TestRequireAdmin(t *testing.T) {
	svc := newAdminFixture(t, newFakeAdminRepo("admin-1"), nil)

	if err := svc.RequireAdmin(context.Background(), "admin-1"); err != nil {
		t.Errorf("RequireAdmin(admin) = %v, want nil", err)
	}
	if err := svc.RequireAdmin(context.Background(), "pleb-1"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("RequireAdmin(non-admin) = %v, want ErrForbidden", err)
	}
}

func TestListPlatformUsersGated(t *testing.T) {
	users := []models.PlatformUser{{ID: "u-1", Email: "moun@example.com"}}
	svc := newAdminFixture(t, newFakeAdminRepo("admin-1"), users)

	if _, err := svc.ListPlatformUsers(context.Background(), "pleb-1"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}

	got, err := svc.ListPlatformUsers(context.Background(), "admin-1")
	if err != nil {
		t.Fatalf("ListPlatformUsers: %v", err)
	}
	if len(got) != 1 || got[0].Email != "moun@example.com" {
		t.Errorf("users = %+v", got)
	}
}

func TestGrantAdminByEmail(t *testing.T) {
	repo := newFakeAdminRepo("admin-1")
	users := []models.PlatformUser{{ID: "u-9", Email: "nouvo@example.com"}}
	svc := newAdminFixture(t, repo, users)

	admin, err := svc.GrantAdmin(context.Background(), "admin-1", &services.GrantAdminRequest{Email: "nouvo@example.com"})
	if err != nil {
		t.Fatalf("GrantAdmin: %v", err)
	}
	if admin.UserID != "u-9" {
		t.Errorf("user_id = %q, want resolved from email", admin.UserID)
	}
	if admin.CreatedBy == nil || *admin.CreatedBy != "admin-1" {
		t.Errorf("created_by = %v, want the granting admin", admin.CreatedBy)
	}
	if _, ok := repo.admins["u-9"]; !ok {
		t.Error("admin row not written")
	}
}

func TestGrantAdminUnknownEmail(t *testing.T) {
	svc := newAdminFixture(t, newFakeAdminRepo("admin-1"), nil)

	_, err := svc.GrantAdmin(context.Background(), "admin-1", &services.GrantAdminRequest{Email: "pesonn@example.com"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestGrantAdminBadEmail(t *testing.T) {
	svc := newAdminFixture(t, newFakeAdminRepo("admin-1"), nil)

	_, err := svc.GrantAdmin(context.Background(), "admin-1", &services.GrantAdminRequest{Email: "not-an-email"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestRevokeAdminRejectsSelf(t *testing.T) {
	repo := newFakeAdminRepo("admin-1", "admin-2")
	svc := newAdminFixture(t, repo, nil)

	if err := svc.RevokeAdmin(context.Background(), "admin-1", "admin-1"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("self-revoke err = %v, want ErrValidation", err)
	}

	if err := svc.RevokeAdmin(context.Background(), "admin-1", "admin-2"); err != nil {
		t.Fatalf("RevokeAdmin: %v", err)
	}
	if _, ok := repo.admins["admin-2"]; ok {
		t.Error("admin row still present after revoke")
	}
}
