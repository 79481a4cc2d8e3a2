package app

import (
	"fmt"
	"strings"

	"askmynotes/internal/model"
	"askmynotes/internal/repository"
)

// setupSubjectCount is the number of subjects a student picks at setup.
const setupSubjectCount = 3

// UserService handles identity-provider sync and subject setup.
type UserService struct {
	userRepo    *repository.UserRepository
	subjectRepo *repository.SubjectRepository
	noteRepo    *repository.NoteRepository
}

func NewUserService(
	userRepo *repository.UserRepository,
	subjectRepo *repository.SubjectRepository,
	noteRepo *repository.NoteRepository,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		subjectRepo: subjectRepo,
		noteRepo:    noteRepo,
	}
}

type SyncResult struct {
	User        *model.User `json:"user"`
	HasSubjects bool        `json:"has_subjects"`
}

// Sync upserts the user from the identity provider's id and reports whether
// subject setup has already happened.
func (s *UserService) Sync(externalID, email string) (*SyncResult, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, ErrInvalidInput
	}

	user := &model.User{ExternalID: externalID, Email: strings.TrimSpace(email)}
	if err := s.userRepo.Upsert(user); err != nil {
		return nil, err
	}

	count, err := s.subjectRepo.CountByUserID(user.ID)
	if err != nil {
		return nil, err
	}
	return &SyncResult{User: user, HasSubjects: count >= setupSubjectCount}, nil
}

// InitSubjects creates the user's initial subjects. Exactly three names are
// required and setup runs only once per user.
func (s *UserService) InitSubjects(externalID string, names []string) ([]model.Subject, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, ErrInvalidInput
	}
	if len(names) != setupSubjectCount {
		return nil, fmt.Errorf("%w: exactly %d subjects required", ErrInvalidInput, setupSubjectCount)
	}
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: subject name must not be empty", ErrInvalidInput)
		}
	}

	user := &model.User{ExternalID: externalID}
	if err := s.userRepo.Upsert(user); err != nil {
		return nil, err
	}

	existing, err := s.subjectRepo.CountByUserID(user.ID)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrSubjectsInitialized
	}

	subjects := make([]model.Subject, len(names))
	for i, name := range names {
		subjects[i] = model.Subject{UserID: user.ID, Name: strings.TrimSpace(name)}
	}
	if err := s.subjectRepo.CreateBatch(subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

type SubjectSummary struct {
	Subject   model.Subject `json:"subject"`
	NoteCount int64         `json:"note_count"`
}

// ListSubjects returns the user's subjects with their note counts.
func (s *UserService) ListSubjects(externalID string) ([]SubjectSummary, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.userRepo.GetByExternalID(externalID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	subjects, err := s.subjectRepo.ListByUserID(user.ID)
	if err != nil {
		return nil, err
	}

	summaries := make([]SubjectSummary, 0, len(subjects))
	for _, subject := range subjects {
		count, err := s.noteRepo.CountBySubjectID(subject.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, SubjectSummary{Subject: subject, NoteCount: count})
	}
	return summaries, nil
}
