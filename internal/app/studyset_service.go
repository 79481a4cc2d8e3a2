package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"askmynotes/internal/ai"
	"askmynotes/internal/model"
	"askmynotes/internal/platform/logger"
	"askmynotes/internal/repository"
)

// MCQ is one multiple-choice question. Answer is the index (0-3) of the
// correct option.
type MCQ struct {
	Question    string   `json:"q"`
	Options     []string `json:"options"`
	Answer      int      `json:"answer"`
	Explanation string   `json:"explanation,omitempty"`
}

// ShortAnswer pairs a conceptual question with a model answer that cites its
// source file.
type ShortAnswer struct {
	Question    string `json:"q"`
	ModelAnswer string `json:"model"`
}

// StudySet is the structured payload the model must produce.
type StudySet struct {
	MCQs         []MCQ         `json:"mcqs"`
	ShortAnswers []ShortAnswer `json:"shortAnswers"`
}

// StudySetService generates practice sets grounded in a subject's notes.
type StudySetService struct {
	resolver  *CorpusResolver
	noteRepo  *repository.NoteRepository
	setRepo   *repository.StudySetRepository
	assembler *ContextAssembler
	generator TextGenerator
	logger    *logger.Logger
}

func NewStudySetService(
	resolver *CorpusResolver,
	noteRepo *repository.NoteRepository,
	setRepo *repository.StudySetRepository,
	assembler *ContextAssembler,
	generator TextGenerator,
	lg *logger.Logger,
) *StudySetService {
	if lg == nil {
		lg = logger.NewNop()
	}
	return &StudySetService{
		resolver:  resolver,
		noteRepo:  noteRepo,
		setRepo:   setRepo,
		assembler: assembler,
		generator: generator,
		logger:    lg,
	}
}

type GenerateInput struct {
	UserID      string
	SubjectName string
}

// Generate builds a study set from the subject's notes. An empty corpus is a
// caller error (ErrEmptyCorpus); a model response that does not parse into
// the required shape is ErrMalformedGeneration. The validated payload is
// persisted as one StudySet row before being returned.
func (s *StudySetService) Generate(ctx context.Context, input GenerateInput) (*StudySet, error) {
	subject, err := s.resolver.Resolve(input.UserID, input.SubjectName)
	if err != nil {
		return nil, err
	}

	notes, err := s.noteRepo.ListBySubjectID(subject.ID)
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, ErrEmptyCorpus
	}

	contextBlock := s.assembler.Assemble(notes)
	prompt := BuildStudyTasksPrompt(subject.Name, contextBlock)

	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("study set generation failed", "subject_id", subject.ID, "error", err)
		if errors.Is(err, ai.ErrRateLimited) {
			return nil, fmt.Errorf("%w: %v", ErrUpstreamRateLimit, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailure, err)
	}

	cleaned := StripCodeFence(raw)
	set, err := ParseStudySet(cleaned)
	if err != nil {
		s.logger.Warn("study set parse failed", "subject_id", subject.ID, "error", err)
		return nil, err
	}

	row := &model.StudySet{SubjectID: subject.ID, Data: cleaned}
	if err := s.setRepo.Create(row); err != nil {
		return nil, err
	}
	return set, nil
}

// ListSets returns previously generated study sets for the subject, newest
// first.
func (s *StudySetService) ListSets(userID, subjectName string) ([]model.StudySet, error) {
	subject, err := s.resolver.Resolve(userID, subjectName)
	if err != nil {
		return nil, err
	}
	return s.setRepo.ListBySubjectID(subject.ID)
}

// StripCodeFence removes an optional surrounding markdown fence from a model
// response: a leading "```json" or "```" line and a trailing "```". The match
// is case- and whitespace-tolerant.
func StripCodeFence(raw string) string {
	text := strings.TrimSpace(raw)

	lower := strings.ToLower(text)
	switch {
	case strings.HasPrefix(lower, "```json"):
		text = strings.TrimSpace(text[len("```json"):])
	case strings.HasPrefix(lower, "```"):
		text = strings.TrimSpace(text[len("```"):])
	}
	if strings.HasSuffix(text, "```") {
		text = strings.TrimSpace(text[:len(text)-len("```")])
	}
	return text
}

// ParseStudySet decodes and validates the study-set JSON. Empty question
// arrays are valid; each present MCQ must carry 4 options and an answer index
// in [0,3].
func ParseStudySet(text string) (*StudySet, error) {
	var set StudySet
	if err := json.Unmarshal([]byte(text), &set); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedGeneration, err)
	}
	for i, m := range set.MCQs {
		if strings.TrimSpace(m.Question) == "" {
			return nil, fmt.Errorf("%w: mcq %d has no question", ErrMalformedGeneration, i)
		}
		if len(m.Options) != 4 {
			return nil, fmt.Errorf("%w: mcq %d has %d options, want 4", ErrMalformedGeneration, i, len(m.Options))
		}
		if m.Answer < 0 || m.Answer > 3 {
			return nil, fmt.Errorf("%w: mcq %d answer index %d out of range", ErrMalformedGeneration, i, m.Answer)
		}
	}
	for i, sa := range set.ShortAnswers {
		if strings.TrimSpace(sa.Question) == "" {
			return nil, fmt.Errorf("%w: short answer %d has no question", ErrMalformedGeneration, i)
		}
	}
	if set.MCQs == nil {
		set.MCQs = []MCQ{}
	}
	if set.ShortAnswers == nil {
		set.ShortAnswers = []ShortAnswer{}
	}
	return &set, nil
}
