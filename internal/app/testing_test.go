package app

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"askmynotes/internal/model"
	"askmynotes/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.Subject{},
		&model.Note{},
		&model.ConversationTurn{},
		&model.StudySet{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

type testRepos struct {
	users    *repository.UserRepository
	subjects *repository.SubjectRepository
	notes    *repository.NoteRepository
	turns    *repository.TurnRepository
	sets     *repository.StudySetRepository
}

func newTestRepos(db *gorm.DB) testRepos {
	return testRepos{
		users:    repository.NewUserRepository(db),
		subjects: repository.NewSubjectRepository(db),
		notes:    repository.NewNoteRepository(db),
		turns:    repository.NewTurnRepository(db),
		sets:     repository.NewStudySetRepository(db),
	}
}

// stubGenerator is a canned TextGenerator. When echoLine is non-empty, the
// response is the first prompt line containing that substring, exercising the
// "answer comes from the assembled context" path.
type stubGenerator struct {
	response string
	err      error
	echoLine string

	calls      int
	lastPrompt string
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.calls++
	g.lastPrompt = prompt
	if g.err != nil {
		return "", g.err
	}
	if g.echoLine != "" {
		for _, line := range strings.Split(prompt, "\n") {
			if strings.Contains(line, g.echoLine) {
				return line, nil
			}
		}
		return "", nil
	}
	return g.response, nil
}

func mustSeedSubject(t *testing.T, repos testRepos, externalID, name string) *model.Subject {
	t.Helper()
	user := &model.User{ExternalID: externalID}
	if err := repos.users.Create(user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	subject := &model.Subject{UserID: user.ID, Name: name}
	if err := repos.subjects.Create(subject); err != nil {
		t.Fatalf("seed subject: %v", err)
	}
	return subject
}

func mustSeedNote(t *testing.T, repos testRepos, subjectID uint, filename, content string) {
	t.Helper()
	if err := repos.notes.Create(&model.Note{
		SubjectID: subjectID,
		Filename:  filename,
		Content:   content,
	}); err != nil {
		t.Fatalf("seed note: %v", err)
	}
}
