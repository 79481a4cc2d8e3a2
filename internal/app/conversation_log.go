package app

import (
	"context"

	"askmynotes/internal/model"
	"askmynotes/internal/repository"
)

// TurnWriter persists a question/answer pair. Implementations must be
// all-or-nothing for the pair: either both turns end up stored, or neither.
type TurnWriter interface {
	AppendPair(ctx context.Context, user, assistant model.ConversationTurn) error
}

// HistoryCache is an optional read-through cache for a subject's history,
// with a dirty marker to bridge asynchronous persistence.
type HistoryCache interface {
	GetHistory(ctx context.Context, subjectID uint) ([]model.ConversationTurn, bool, error)
	SetHistory(ctx context.Context, subjectID uint, turns []model.ConversationTurn) error
	DeleteHistory(ctx context.Context, subjectID uint) error
	MarkDirty(ctx context.Context, subjectID uint) error
	IsDirty(ctx context.Context, subjectID uint) (bool, error)
}

// ConversationLog is the append-only record of turns per subject.
type ConversationLog struct {
	repo   *repository.TurnRepository
	writer TurnWriter
	cache  HistoryCache
}

// NewConversationLog builds the log. writer may be nil, in which case pairs
// are written directly through the repository. cache may be nil.
func NewConversationLog(repo *repository.TurnRepository, writer TurnWriter, cache HistoryCache) *ConversationLog {
	if writer == nil {
		writer = &directTurnWriter{repo: repo}
	}
	return &ConversationLog{repo: repo, writer: writer, cache: cache}
}

// AppendPair stores the user turn and the assistant turn as one atomic batch
// and invalidates any cached history for the subject.
func (l *ConversationLog) AppendPair(ctx context.Context, user, assistant model.ConversationTurn) error {
	if l.cache != nil {
		_ = l.cache.MarkDirty(ctx, user.SubjectID)
		_ = l.cache.DeleteHistory(ctx, user.SubjectID)
	}
	return l.writer.AppendPair(ctx, user, assistant)
}

// Recent returns up to limit of the newest turns, oldest first. Used for
// prompt history replay; reads the store directly so prompts never see a
// stale cache.
func (l *ConversationLog) Recent(subjectID uint, limit int) ([]model.ConversationTurn, error) {
	return l.repo.ListRecentBySubjectID(subjectID, limit)
}

// History returns turns ascending for display, served from the cache when it
// is present and clean.
func (l *ConversationLog) History(ctx context.Context, subjectID uint, limit int) ([]model.ConversationTurn, error) {
	if l.cache != nil {
		dirty, err := l.cache.IsDirty(ctx, subjectID)
		if err == nil && !dirty {
			if cached, hit, cacheErr := l.cache.GetHistory(ctx, subjectID); cacheErr == nil && hit {
				return trimTurns(cached, limit), nil
			}
		}
	}

	turns, err := l.repo.ListBySubjectID(subjectID, limit)
	if err != nil {
		return nil, err
	}
	if l.cache != nil {
		if dirty, dirtyErr := l.cache.IsDirty(ctx, subjectID); dirtyErr == nil && !dirty {
			_ = l.cache.SetHistory(ctx, subjectID, turns)
		}
	}
	return turns, nil
}

func (l *ConversationLog) Count(subjectID uint) (int64, error) {
	return l.repo.CountBySubjectID(subjectID)
}

func trimTurns(turns []model.ConversationTurn, limit int) []model.ConversationTurn {
	if limit <= 0 || limit >= len(turns) {
		return turns
	}
	return turns[len(turns)-limit:]
}

// directTurnWriter writes the pair synchronously in one transaction.
type directTurnWriter struct {
	repo *repository.TurnRepository
}

func (w *directTurnWriter) AppendPair(_ context.Context, user, assistant model.ConversationTurn) error {
	return w.repo.AppendBatch([]model.ConversationTurn{user, assistant})
}
