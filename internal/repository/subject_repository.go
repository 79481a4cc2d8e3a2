package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"askmynotes/internal/model"
)

type SubjectRepository struct {
	db *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

func (r *SubjectRepository) Create(subject *model.Subject) error {
	if err := r.db.Create(subject).Error; err != nil {
		return fmt.Errorf("create subject failed: %w", err)
	}
	return nil
}

// CreateBatch inserts all subjects in one transaction; none are created if any
// insert fails.
func (r *SubjectRepository) CreateBatch(subjects []model.Subject) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for i := range subjects {
			if err := tx.Create(&subjects[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("create subjects failed: %w", err)
	}
	return nil
}

func (r *SubjectRepository) GetByUserIDAndName(userID uint, name string) (*model.Subject, error) {
	var subject model.Subject
	if err := r.db.Where("user_id = ? AND name = ?", userID, name).First(&subject).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query subject failed: %w", err)
	}
	return &subject, nil
}

func (r *SubjectRepository) ListByUserID(userID uint) ([]model.Subject, error) {
	var subjects []model.Subject
	if err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&subjects).Error; err != nil {
		return nil, fmt.Errorf("list subjects failed: %w", err)
	}
	return subjects, nil
}

func (r *SubjectRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Subject{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count subjects failed: %w", err)
	}
	return count, nil
}

func (r *SubjectRepository) UpdateChatTitle(subjectID uint, title string) error {
	if err := r.db.Model(&model.Subject{}).Where("id = ?", subjectID).Update("chat_title", title).Error; err != nil {
		return fmt.Errorf("update subject chat title failed: %w", err)
	}
	return nil
}
