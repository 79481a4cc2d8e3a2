package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"askmynotes/internal/ai"
	"askmynotes/internal/model"
	"askmynotes/internal/platform/logger"
	"askmynotes/internal/repository"
)

// NoMaterialMessage is the fixed response for questions against a subject
// with no uploaded notes. No model call is made and nothing is persisted.
const NoMaterialMessage = "No notes found for this subject yet. Please upload some files first."

const (
	defaultHistoryLimit = 10
	chatTitleMaxLen     = 30
)

// TextGenerator is the black-box completion collaborator: a prompt in, the
// model's text out.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// AnswerService runs the grounded Q&A pipeline: resolve corpus, assemble
// context, build the prompt, call the model, persist the turn pair.
type AnswerService struct {
	resolver     *CorpusResolver
	subjectRepo  *repository.SubjectRepository
	noteRepo     *repository.NoteRepository
	log          *ConversationLog
	assembler    *ContextAssembler
	generator    TextGenerator
	logger       *logger.Logger
	historyLimit int
}

func NewAnswerService(
	resolver *CorpusResolver,
	subjectRepo *repository.SubjectRepository,
	noteRepo *repository.NoteRepository,
	log *ConversationLog,
	assembler *ContextAssembler,
	generator TextGenerator,
	lg *logger.Logger,
	historyLimit int,
) *AnswerService {
	if historyLimit <= 0 {
		historyLimit = defaultHistoryLimit
	}
	if lg == nil {
		lg = logger.NewNop()
	}
	return &AnswerService{
		resolver:     resolver,
		subjectRepo:  subjectRepo,
		noteRepo:     noteRepo,
		log:          log,
		assembler:    assembler,
		generator:    generator,
		logger:       lg,
		historyLimit: historyLimit,
	}
}

type AskInput struct {
	UserID      string
	SubjectName string
	Question    string
}

type AskResult struct {
	Answer   string `json:"answer"`
	Grounded bool   `json:"grounded"`
}

// Ask answers a question from the subject's notes. On an empty corpus it
// returns the fixed no-material message without calling the model or writing
// any turns. On success exactly two turns are appended, user then assistant.
func (s *AnswerService) Ask(ctx context.Context, input AskInput) (*AskResult, error) {
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return nil, ErrInvalidInput
	}

	subject, err := s.resolver.Resolve(input.UserID, input.SubjectName)
	if err != nil {
		return nil, err
	}

	notes, err := s.noteRepo.ListBySubjectID(subject.ID)
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return &AskResult{Answer: NoMaterialMessage, Grounded: false}, nil
	}

	history, err := s.log.Recent(subject.ID, s.historyLimit)
	if err != nil {
		return nil, err
	}

	contextBlock := s.assembler.Assemble(notes)
	prompt := BuildAskPrompt(contextBlock, history, question)

	answer, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("model call failed", "subject_id", subject.ID, "error", err)
		if errors.Is(err, ai.ErrRateLimited) {
			return nil, fmt.Errorf("%w: %v", ErrUpstreamRateLimit, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailure, err)
	}
	answer = strings.TrimSpace(answer)

	userAt := time.Now()
	assistantAt := time.Now()
	if !assistantAt.After(userAt) {
		assistantAt = userAt.Add(time.Millisecond)
	}
	userTurn := model.ConversationTurn{
		SubjectID: subject.ID,
		Role:      model.RoleUser,
		Content:   question,
		CreatedAt: userAt,
	}
	assistantTurn := model.ConversationTurn{
		SubjectID: subject.ID,
		Role:      model.RoleAssistant,
		Content:   answer,
		CreatedAt: assistantAt,
	}
	if err := s.log.AppendPair(ctx, userTurn, assistantTurn); err != nil {
		return nil, err
	}

	// First exchange names the chat after the question.
	if len(history) == 0 {
		if err := s.subjectRepo.UpdateChatTitle(subject.ID, truncateTitle(question)); err != nil {
			s.logger.Warn("set chat title failed", "subject_id", subject.ID, "error", err)
		}
	}

	return &AskResult{Answer: answer, Grounded: true}, nil
}

// History returns the subject's turns oldest first, for display.
func (s *AnswerService) History(ctx context.Context, userID, subjectName string, limit int) ([]model.ConversationTurn, error) {
	subject, err := s.resolver.Resolve(userID, subjectName)
	if err != nil {
		return nil, err
	}
	return s.log.History(ctx, subject.ID, limit)
}

func truncateTitle(question string) string {
	runes := []rune(question)
	if len(runes) <= chatTitleMaxLen {
		return question
	}
	return string(runes[:chatTitleMaxLen]) + "..."
}
