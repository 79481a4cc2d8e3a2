package app

import (
	"strings"
	"testing"

	"askmynotes/internal/model"
)

func TestAssembleEmpty(t *testing.T) {
	a := NewContextAssembler(100)
	if got := a.Assemble(nil); got != "" {
		t.Errorf("empty note list should assemble to empty string, got %q", got)
	}
}

func TestAssembleIncludesProvenanceTags(t *testing.T) {
	a := NewContextAssembler(1000)
	notes := []model.Note{
		{Filename: "algo.pdf", Content: "Binary search halves the range."},
		{Filename: "sorting.txt", Content: "Merge sort is stable."},
	}
	got := a.Assemble(notes)

	for _, n := range notes {
		tag := "[File: " + n.Filename + "]"
		if !strings.Contains(got, tag+"\n"+n.Content) {
			t.Errorf("assembled context missing block for %s:\n%s", n.Filename, got)
		}
	}
	if !strings.Contains(got, "\n\n---\n\n") {
		t.Errorf("assembled context missing separator:\n%s", got)
	}
}

func TestAssemblePreservesNoteOrder(t *testing.T) {
	a := NewContextAssembler(1000)
	notes := []model.Note{
		{Filename: "first.txt", Content: "aaa"},
		{Filename: "second.txt", Content: "bbb"},
		{Filename: "third.txt", Content: "ccc"},
	}
	got := a.Assemble(notes)

	prev := -1
	for _, n := range notes {
		idx := strings.Index(got, "[File: "+n.Filename+"]")
		if idx <= prev {
			t.Fatalf("note %s out of order in assembled context", n.Filename)
		}
		prev = idx
	}
}

func TestAssembleNeverExceedsBudget(t *testing.T) {
	tests := []struct {
		name   string
		budget int
		notes  []model.Note
	}{
		{
			name:   "one oversized note",
			budget: 50,
			notes:  []model.Note{{Filename: "big.txt", Content: strings.Repeat("x", 500)}},
		},
		{
			name:   "many notes overflow",
			budget: 80,
			notes: []model.Note{
				{Filename: "a.txt", Content: strings.Repeat("a", 60)},
				{Filename: "b.txt", Content: strings.Repeat("b", 60)},
				{Filename: "c.txt", Content: strings.Repeat("c", 60)},
			},
		},
		{
			name:   "multibyte content",
			budget: 40,
			notes:  []model.Note{{Filename: "jp.txt", Content: strings.Repeat("本", 100)}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewContextAssembler(tt.budget)
			got := a.Assemble(tt.notes)
			if n := len([]rune(got)); n > tt.budget {
				t.Errorf("assembled context is %d chars, budget %d", n, tt.budget)
			}
		})
	}
}

func TestAssembleTruncatesFromTheTail(t *testing.T) {
	a := NewContextAssembler(60)
	notes := []model.Note{
		{Filename: "kept.txt", Content: "early material"},
		{Filename: "dropped.txt", Content: strings.Repeat("z", 200)},
	}
	got := a.Assemble(notes)

	if !strings.HasPrefix(got, "[File: kept.txt]\nearly material") {
		t.Errorf("head of context should survive truncation, got %q", got)
	}
	if strings.Contains(got, strings.Repeat("z", 100)) {
		t.Errorf("tail should have been cut, got %q", got)
	}
}
