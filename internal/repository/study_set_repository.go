package repository

import (
	"fmt"

	"gorm.io/gorm"

	"askmynotes/internal/model"
)

type StudySetRepository struct {
	db *gorm.DB
}

func NewStudySetRepository(db *gorm.DB) *StudySetRepository {
	return &StudySetRepository{db: db}
}

func (r *StudySetRepository) Create(set *model.StudySet) error {
	if err := r.db.Create(set).Error; err != nil {
		return fmt.Errorf("create study set failed: %w", err)
	}
	return nil
}

func (r *StudySetRepository) ListBySubjectID(subjectID uint) ([]model.StudySet, error) {
	var sets []model.StudySet
	if err := r.db.Where("subject_id = ?", subjectID).Order("created_at DESC").Find(&sets).Error; err != nil {
		return nil, fmt.Errorf("list study sets failed: %w", err)
	}
	return sets, nil
}

func (r *StudySetRepository) CountBySubjectID(subjectID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&model.StudySet{}).Where("subject_id = ?", subjectID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count study sets failed: %w", err)
	}
	return count, nil
}
