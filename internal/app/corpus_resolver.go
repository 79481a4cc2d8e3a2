package app

import (
	"strings"

	"askmynotes/internal/model"
	"askmynotes/internal/repository"
)

// ResolvePolicy controls what Resolve does when the subject does not exist.
type ResolvePolicy string

const (
	// ResolveStrict fails with ErrSubjectNotFound when the subject is missing.
	ResolveStrict ResolvePolicy = "strict"
	// ResolveUpsert lazily creates the subject (and a placeholder user) on
	// first reference.
	ResolveUpsert ResolvePolicy = "upsert"
)

// CorpusResolver maps (external user id, subject name) to the Subject row that
// scopes every grounding query.
type CorpusResolver struct {
	userRepo    *repository.UserRepository
	subjectRepo *repository.SubjectRepository
	policy      ResolvePolicy
}

func NewCorpusResolver(
	userRepo *repository.UserRepository,
	subjectRepo *repository.SubjectRepository,
	policy ResolvePolicy,
) *CorpusResolver {
	if policy != ResolveStrict {
		policy = ResolveUpsert
	}
	return &CorpusResolver{
		userRepo:    userRepo,
		subjectRepo: subjectRepo,
		policy:      policy,
	}
}

func (r *CorpusResolver) Policy() ResolvePolicy {
	return r.policy
}

// Resolve looks up the subject uniquely keyed by (user, name). In upsert mode
// a uniqueness violation on create is treated as "already exists" and the row
// is re-fetched, so concurrent first references never fail.
func (r *CorpusResolver) Resolve(externalUserID, subjectName string) (*model.Subject, error) {
	externalUserID = strings.TrimSpace(externalUserID)
	subjectName = strings.TrimSpace(subjectName)
	if externalUserID == "" || subjectName == "" {
		return nil, ErrInvalidInput
	}

	user, err := r.userRepo.GetByExternalID(externalUserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		if r.policy == ResolveStrict {
			return nil, ErrUserNotFound
		}
		user = &model.User{ExternalID: externalUserID}
		if createErr := r.userRepo.Create(user); createErr != nil {
			// Lost a create race; the row must exist now.
			user, err = r.userRepo.GetByExternalID(externalUserID)
			if err != nil {
				return nil, err
			}
			if user == nil {
				return nil, createErr
			}
		}
	}

	subject, err := r.subjectRepo.GetByUserIDAndName(user.ID, subjectName)
	if err != nil {
		return nil, err
	}
	if subject != nil {
		return subject, nil
	}
	if r.policy == ResolveStrict {
		return nil, ErrSubjectNotFound
	}

	subject = &model.Subject{UserID: user.ID, Name: subjectName}
	if createErr := r.subjectRepo.Create(subject); createErr != nil {
		subject, err = r.subjectRepo.GetByUserIDAndName(user.ID, subjectName)
		if err != nil {
			return nil, err
		}
		if subject == nil {
			return nil, createErr
		}
	}
	return subject, nil
}
