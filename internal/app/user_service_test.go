package app

import (
	"errors"
	"testing"

	"askmynotes/internal/model"
)

func TestSyncUpsertsUser(t *testing.T) {
	db := newTestDB(t)
	repos := newTestRepos(db)
	svc := NewUserService(repos.users, repos.subjects, repos.notes)

	first, err := svc.Sync("clerk_abc", "ada@example.com")
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if first.User.ID == 0 {
		t.Fatal("sync did not assign an id")
	}
	if first.HasSubjects {
		t.Error("fresh user reported as set up")
	}

	second, err := svc.Sync("clerk_abc", "ada@new.example.com")
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if second.User.ID != first.User.ID {
		t.Errorf("second sync created a new user: %d vs %d", second.User.ID, first.User.ID)
	}
	if second.User.Email != "ada@new.example.com" {
		t.Errorf("email not refreshed: %q", second.User.Email)
	}

	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 1 {
		t.Errorf("%d user rows after two syncs, want 1", count)
	}
}

func TestSyncRejectsBlankExternalID(t *testing.T) {
	db := newTestDB(t)
	repos := newTestRepos(db)
	svc := NewUserService(repos.users, repos.subjects, repos.notes)

	if _, err := svc.Sync("  ", ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("got %v, want ErrInvalidInput", err)
	}
}

func TestInitSubjectsRequiresExactlyThree(t *testing.T) {
	tests := []struct {
		name  string
		names []string
	}{
		{"too few", []string{"Biology", "Chemistry"}},
		{"too many", []string{"Biology", "Chemistry", "Physics", "Maths"}},
		{"none", nil},
		{"blank name", []string{"Biology", "  ", "Physics"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newTestDB(t)
			repos := newTestRepos(db)
			svc := NewUserService(repos.users, repos.subjects, repos.notes)

			if _, err := svc.InitSubjects("clerk_abc", tt.names); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("got %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestInitSubjectsRunsOnce(t *testing.T) {
	db := newTestDB(t)
	repos := newTestRepos(db)
	svc := NewUserService(repos.users, repos.subjects, repos.notes)

	names := []string{"Biology", "Chemistry", "Physics"}
	subjects, err := svc.InitSubjects("clerk_abc", names)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if len(subjects) != 3 {
		t.Fatalf("created %d subjects, want 3", len(subjects))
	}
	for i, subject := range subjects {
		if subject.Name != names[i] {
			t.Errorf("subject %d = %q, want %q", i, subject.Name, names[i])
		}
	}

	if _, err := svc.InitSubjects("clerk_abc", names); !errors.Is(err, ErrSubjectsInitialized) {
		t.Errorf("rerun: got %v, want ErrSubjectsInitialized", err)
	}

	var count int64
	if err := db.Model(&model.Subject{}).Count(&count).Error; err != nil {
		t.Fatalf("count subjects: %v", err)
	}
	if count != 3 {
		t.Errorf("%d subject rows after rerun, want 3", count)
	}
}

func TestSyncReportsSetupAfterInit(t *testing.T) {
	db := newTestDB(t)
	repos := newTestRepos(db)
	svc := NewUserService(repos.users, repos.subjects, repos.notes)

	if _, err := svc.InitSubjects("clerk_abc", []string{"Biology", "Chemistry", "Physics"}); err != nil {
		t.Fatalf("init: %v", err)
	}
	result, err := svc.Sync("clerk_abc", "")
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if !result.HasSubjects {
		t.Error("HasSubjects false after setup")
	}
}

func TestListSubjectsCountsNotes(t *testing.T) {
	db := newTestDB(t)
	repos := newTestRepos(db)
	svc := NewUserService(repos.users, repos.subjects, repos.notes)

	subjects, err := svc.InitSubjects("clerk_abc", []string{"Biology", "Chemistry", "Physics"})
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	mustSeedNote(t, repos, subjects[0].ID, "cells.txt", "Mitochondria.")
	mustSeedNote(t, repos, subjects[0].ID, "dna.txt", "Base pairs.")

	summaries, err := svc.ListSubjects("clerk_abc")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("listed %d subjects, want 3", len(summaries))
	}
	counts := map[string]int64{}
	for _, summary := range summaries {
		counts[summary.Subject.Name] = summary.NoteCount
	}
	if counts["Biology"] != 2 || counts["Chemistry"] != 0 {
		t.Errorf("note counts = %v", counts)
	}
}

func TestListSubjectsUnknownUser(t *testing.T) {
	db := newTestDB(t)
	repos := newTestRepos(db)
	svc := NewUserService(repos.users, repos.subjects, repos.notes)

	if _, err := svc.ListSubjects("clerk_nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("got %v, want ErrUserNotFound", err)
	}
}
