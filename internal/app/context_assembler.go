package app

import (
	"strings"

	"askmynotes/internal/model"
)

const (
	noteSeparator       = "\n\n---\n\n"
	defaultContextChars = 30000
)

// ContextAssembler concatenates note contents into one bounded text blob.
// Each note becomes a "[File: <name>]\n<content>" block so the model can cite
// its sources. The result never exceeds maxChars; overflow is cut from the
// tail, so later notes may be dropped.
type ContextAssembler struct {
	maxChars int
}

func NewContextAssembler(maxChars int) *ContextAssembler {
	if maxChars <= 0 {
		maxChars = defaultContextChars
	}
	return &ContextAssembler{maxChars: maxChars}
}

func (a *ContextAssembler) MaxChars() int {
	return a.maxChars
}

func (a *ContextAssembler) Assemble(notes []model.Note) string {
	if len(notes) == 0 {
		return ""
	}

	blocks := make([]string, 0, len(notes))
	for _, n := range notes {
		blocks = append(blocks, "[File: "+n.Filename+"]\n"+n.Content)
	}
	joined := strings.Join(blocks, noteSeparator)

	runes := []rune(joined)
	if len(runes) <= a.maxChars {
		return joined
	}
	return string(runes[:a.maxChars])
}
