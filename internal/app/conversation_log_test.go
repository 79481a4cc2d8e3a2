package app

import (
	"context"
	"fmt"
	"testing"
	"time"

	"askmynotes/internal/model"
)

func seedTurnPairs(t *testing.T, log *ConversationLog, subjectID uint, pairs int) {
	t.Helper()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < pairs; i++ {
		user := model.ConversationTurn{
			SubjectID: subjectID,
			Role:      model.RoleUser,
			Content:   fmt.Sprintf("question %d", i),
			CreatedAt: base.Add(time.Duration(2*i) * time.Second),
		}
		assistant := model.ConversationTurn{
			SubjectID: subjectID,
			Role:      model.RoleAssistant,
			Content:   fmt.Sprintf("answer %d", i),
			CreatedAt: base.Add(time.Duration(2*i+1) * time.Second),
		}
		if err := log.AppendPair(context.Background(), user, assistant); err != nil {
			t.Fatalf("append pair %d: %v", i, err)
		}
	}
}

func TestAppendPairWritesBothTurns(t *testing.T) {
	db := newTestDB(t)
	repos := newTestRepos(db)
	subject := mustSeedSubject(t, repos, "clerk_abc", "Biology")
	log := NewConversationLog(repos.turns, nil, nil)

	seedTurnPairs(t, log, subject.ID, 1)

	count, err := log.Count(subject.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("stored %d turns, want 2", count)
	}
}

func TestRecentReturnsNewestOldestFirst(t *testing.T) {
	db := newTestDB(t)
	repos := newTestRepos(db)
	subject := mustSeedSubject(t, repos, "clerk_abc", "Biology")
	log := NewConversationLog(repos.turns, nil, nil)

	seedTurnPairs(t, log, subject.ID, 8)

	turns, err := log.Recent(subject.ID, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(turns) != 10 {
		t.Fatalf("got %d turns, want 10", len(turns))
	}
	for i := 1; i < len(turns); i++ {
		if turns[i].CreatedAt.Before(turns[i-1].CreatedAt) {
			t.Fatalf("turns not ascending at index %d", i)
		}
	}
	// 16 turns exist; the window must be the newest 10, dropping pairs 0-2.
	if turns[0].Content != "question 3" {
		t.Errorf("window starts at %q, want question 3", turns[0].Content)
	}
	if turns[len(turns)-1].Content != "answer 7" {
		t.Errorf("window ends at %q, want the newest turn", turns[len(turns)-1].Content)
	}
}

func TestRecentUnderLimitReturnsAll(t *testing.T) {
	db := newTestDB(t)
	repos := newTestRepos(db)
	subject := mustSeedSubject(t, repos, "clerk_abc", "Biology")
	log := NewConversationLog(repos.turns, nil, nil)

	seedTurnPairs(t, log, subject.ID, 2)

	turns, err := log.Recent(subject.ID, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(turns) != 4 {
		t.Fatalf("got %d turns, want 4", len(turns))
	}
	if turns[0].Content != "question 0" {
		t.Errorf("first turn = %q, want the oldest", turns[0].Content)
	}
}

func TestHistoryIsScopedPerSubject(t *testing.T) {
	db := newTestDB(t)
	repos := newTestRepos(db)
	biology := mustSeedSubject(t, repos, "clerk_abc", "Biology")
	chemistry := &model.Subject{UserID: biology.UserID, Name: "Chemistry"}
	if err := repos.subjects.Create(chemistry); err != nil {
		t.Fatalf("seed second subject: %v", err)
	}
	log := NewConversationLog(repos.turns, nil, nil)

	seedTurnPairs(t, log, biology.ID, 3)
	seedTurnPairs(t, log, chemistry.ID, 1)

	turns, err := log.History(context.Background(), chemistry.ID, 50)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("got %d turns, want only the 2 from the second subject", len(turns))
	}
	for _, turn := range turns {
		if turn.SubjectID != chemistry.ID {
			t.Errorf("turn %d leaked from subject %d", turn.ID, turn.SubjectID)
		}
	}
}
