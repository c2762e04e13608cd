package service

import (
	"context"
	"errors"
	"testing"

	"ayitichat/internal/domain"
	"ayitichat/internal/domain/services"
)

func newSettingsFixture() (*fakePrefsRepo, *fakeFamilyRepo, services.SettingsService) {
	prefsRepo := newFakePrefsRepo()
	familyRepo := &fakeFamilyRepo{}
	svc := NewSettingsService(prefsRepo, familyRepo, &fakeOrderRepo{}, testLogger)
	return prefsRepo, familyRepo, svc
}

func TestGetPreferencesReturnsDefaultsWithoutWriting(t *testing.T) {
	prefsRepo, _, svc := newSettingsFixture()

	prefs, err := svc.GetPreferences(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetPreferences: %v", err)
	}
	if prefs.UserID != "user-1" {
		t.Errorf("user_id = %q", prefs.UserID)
	}
	if prefs.Appearance != "system" {
		t.Errorf("appearance = %q, want system default", prefs.Appearance)
	}
	if prefsRepo.upserts != 0 {
		t.Errorf("upserts = %d, reads must not create rows", prefsRepo.upserts)
	}
}

func TestUpdatePreferencesPatchesOverDefaults(t *testing.T) {
	prefsRepo, _, svc := newSettingsFixture()

	dark := "dark"
	webSearch := true
	prefs, err := svc.UpdatePreferences(context.Background(), "user-1", &services.UpdatePreferencesRequest{
		Appearance: &dark,
		WebSearch:  &webSearch,
	})
	if err != nil {
		t.Fatalf("UpdatePreferences: %v", err)
	}

	if prefs.Appearance != "dark" {
		t.Errorf("appearance = %q, want dark", prefs.Appearance)
	}
	if !prefs.WebSearch {
		t.Error("web_search not applied")
	}
	// Untouched fields keep their defaults.
	if prefs.Voice != "ember" {
		t.Errorf("voice = %q, want default ember", prefs.Voice)
	}
	if prefsRepo.upserts != 1 {
		t.Errorf("upserts = %d, want 1", prefsRepo.upserts)
	}
}

func TestUpdatePreferencesValidation(t *testing.T) {
	_, _, svc := newSettingsFixture()

	bad := "neon"
	_, err := svc.UpdatePreferences(context.Background(), "user-1", &services.UpdatePreferencesRequest{
		Appearance: &bad,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("appearance err = %v, want ErrValidation", err)
	}

	carrier := "pigeon"
	_, err = svc.UpdatePreferences(context.Background(), "user-1", &services.UpdatePreferencesRequest{
		NotifTasks: &carrier,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("notif err = %v, want ErrValidation", err)
	}
}

func TestUpdatePreferencesPatchesExistingRow(t *testing.T) {
	prefsRepo, _, svc := newSettingsFixture()

	light := "light"
	if _, err := svc.UpdatePreferences(context.Background(), "user-1", &services.UpdatePreferencesRequest{Appearance: &light}); err != nil {
		t.Fatalf("first update: %v", err)
	}

	nickname := "Ti Joe"
	prefs, err := svc.UpdatePreferences(context.Background(), "user-1", &services.UpdatePreferencesRequest{AboutYouNickname: &nickname})
	if err != nil {
		t.Fatalf("second update: %v", err)
	}

	if prefs.Appearance != "light" {
		t.Errorf("appearance = %q, earlier patch lost", prefs.Appearance)
	}
	if prefs.AboutYouNickname == nil || *prefs.AboutYouNickname != "Ti Joe" {
		t.Errorf("nickname = %v, want Ti Joe", prefs.AboutYouNickname)
	}
	if prefsRepo.upserts != 2 {
		t.Errorf("upserts = %d, want 2", prefsRepo.upserts)
	}
}

func TestAddFamilyMember(t *testing.T) {
	_, familyRepo, svc := newSettingsFixture()

	email := "manman@example.com"
	member, err := svc.AddFamilyMember(context.Background(), "user-1", &services.CreateFamilyMemberRequest{
		Email: &email,
		Role:  "parent",
	})
	if err != nil {
		t.Fatalf("AddFamilyMember: %v", err)
	}
	if member.Status != "pending" {
		t.Errorf("status = %q, want pending", member.Status)
	}
	if len(familyRepo.members) != 1 {
		t.Errorf("members = %d, want 1", len(familyRepo.members))
	}
}

func TestAddFamilyMemberValidation(t *testing.T) {
	_, _, svc := newSettingsFixture()

	tests := []struct {
		name string
		req  *services.CreateFamilyMemberRequest
	}{
		{"neither email nor phone", &services.CreateFamilyMemberRequest{Role: "parent"}},
		{"bad email", &services.CreateFamilyMemberRequest{Email: strPtr("not-an-email"), Role: "parent"}},
		{"bad role", &services.CreateFamilyMemberRequest{Email: strPtr("a@b.com"), Role: "cousin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.AddFamilyMember(context.Background(), "user-1", tt.req); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestUpdateFamilyMemberStatus(t *testing.T) {
	_, familyRepo, svc := newSettingsFixture()

	email := "pitit@example.com"
	member, err := svc.AddFamilyMember(context.Background(), "user-1", &services.CreateFamilyMemberRequest{
		Email: &email,
		Role:  "child",
	})
	if err != nil {
		t.Fatalf("AddFamilyMember: %v", err)
	}

	if err := svc.UpdateFamilyMemberStatus(context.Background(), member.ID, "user-1", "accepted"); err != nil {
		t.Fatalf("UpdateFamilyMemberStatus: %v", err)
	}
	if familyRepo.members[0].Status != "accepted" {
		t.Errorf("status = %q, want accepted", familyRepo.members[0].Status)
	}

	if err := svc.UpdateFamilyMemberStatus(context.Background(), member.ID, "user-1", "ghosted"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation for unknown status", err)
	}
}

func strPtr(s string) *string { return &s }
