package app

import (
	"context"
	"strings"

	"askmynotes/internal/model"
	"askmynotes/internal/pkg/extract"
	"askmynotes/internal/platform/logger"
	"askmynotes/internal/repository"
)

// NoteService is the only write path that creates notes: extract text from an
// uploaded document, then append exactly one immutable Note row.
type NoteService struct {
	resolver  *CorpusResolver
	noteRepo  *repository.NoteRepository
	extractor *extract.Extractor
	logger    *logger.Logger
}

func NewNoteService(
	resolver *CorpusResolver,
	noteRepo *repository.NoteRepository,
	extractor *extract.Extractor,
	lg *logger.Logger,
) *NoteService {
	if lg == nil {
		lg = logger.NewNop()
	}
	return &NoteService{
		resolver:  resolver,
		noteRepo:  noteRepo,
		extractor: extractor,
		logger:    lg,
	}
}

type IngestInput struct {
	UserID      string
	SubjectName string
	Filename    string
	Data        []byte
	MimeType    string
}

type IngestResult struct {
	NoteID    uint `json:"note_id"`
	SubjectID uint `json:"subject_id"`
}

// Ingest extracts plain text from the document and stores it as a note under
// the resolved subject. A document that yields no text is rejected rather
// than stored as an empty note.
func (s *NoteService) Ingest(ctx context.Context, input IngestInput) (*IngestResult, error) {
	filename := strings.TrimSpace(input.Filename)
	if filename == "" || len(input.Data) == 0 {
		return nil, ErrInvalidInput
	}

	subject, err := s.resolver.Resolve(input.UserID, input.SubjectName)
	if err != nil {
		return nil, err
	}

	content, err := s.extractor.ExtractBytes(input.Data, input.MimeType, filename)
	if err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrNoExtractableText
	}

	note := &model.Note{
		SubjectID: subject.ID,
		Filename:  filename,
		Content:   content,
	}
	if err := s.noteRepo.Create(note); err != nil {
		return nil, err
	}

	s.logger.Info("note ingested",
		"subject_id", subject.ID,
		"note_id", note.ID,
		"filename", filename,
		"chars", len(content),
	)
	return &IngestResult{NoteID: note.ID, SubjectID: subject.ID}, nil
}
