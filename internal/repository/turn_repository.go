package repository

import (
	"fmt"
	"sort"

	"gorm.io/gorm"

	"askmynotes/internal/model"
)

type TurnRepository struct {
	db *gorm.DB
}

func NewTurnRepository(db *gorm.DB) *TurnRepository {
	return &TurnRepository{db: db}
}

// AppendBatch writes all turns in one transaction, preserving slice order.
// Either every turn is persisted or none are.
func (r *TurnRepository) AppendBatch(turns []model.ConversationTurn) error {
	if len(turns) == 0 {
		return nil
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for i := range turns {
			if err := tx.Create(&turns[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("append turns failed: %w", err)
	}
	return nil
}

// ListRecentBySubjectID fetches the limit newest turns and returns them
// oldest-first, so callers always see correct chronology.
func (r *TurnRepository) ListRecentBySubjectID(subjectID uint, limit int) ([]model.ConversationTurn, error) {
	if limit <= 0 {
		limit = 10
	}
	var turns []model.ConversationTurn
	if err := r.db.Where("subject_id = ?", subjectID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&turns).Error; err != nil {
		return nil, fmt.Errorf("list recent turns failed: %w", err)
	}
	sort.SliceStable(turns, func(i, j int) bool {
		if turns[i].CreatedAt.Equal(turns[j].CreatedAt) {
			return turns[i].ID < turns[j].ID
		}
		return turns[i].CreatedAt.Before(turns[j].CreatedAt)
	})
	return turns, nil
}

func (r *TurnRepository) ListBySubjectID(subjectID uint, limit int) ([]model.ConversationTurn, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	var turns []model.ConversationTurn
	if err := r.db.Where("subject_id = ?", subjectID).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Find(&turns).Error; err != nil {
		return nil, fmt.Errorf("list turns failed: %w", err)
	}
	return turns, nil
}

func (r *TurnRepository) CountBySubjectID(subjectID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&model.ConversationTurn{}).Where("subject_id = ?", subjectID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count turns failed: %w", err)
	}
	return count, nil
}
