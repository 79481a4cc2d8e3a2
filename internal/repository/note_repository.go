package repository

import (
	"fmt"

	"gorm.io/gorm"

	"askmynotes/internal/model"
)

type NoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Create(note *model.Note) error {
	if err := r.db.Create(note).Error; err != nil {
		return fmt.Errorf("create note failed: %w", err)
	}
	return nil
}

// ListBySubjectID returns notes in upload order, oldest first, so context
// assembly sees them in the order the student added them.
func (r *NoteRepository) ListBySubjectID(subjectID uint) ([]model.Note, error) {
	var notes []model.Note
	if err := r.db.Where("subject_id = ?", subjectID).Order("created_at ASC, id ASC").Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("list notes failed: %w", err)
	}
	return notes, nil
}

func (r *NoteRepository) CountBySubjectID(subjectID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Note{}).Where("subject_id = ?", subjectID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count notes failed: %w", err)
	}
	return count, nil
}
