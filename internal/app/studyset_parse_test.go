package app

import (
	"errors"
	"reflect"
	"testing"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "no fence", in: `{"mcqs":[]}`, want: `{"mcqs":[]}`},
		{name: "json fence", in: "```json\n{\"mcqs\":[]}\n```", want: `{"mcqs":[]}`},
		{name: "bare fence", in: "```\n{\"mcqs\":[]}\n```", want: `{"mcqs":[]}`},
		{name: "uppercase fence", in: "```JSON\n{\"mcqs\":[]}\n```", want: `{"mcqs":[]}`},
		{name: "surrounding whitespace", in: "  ```json\n{\"mcqs\":[]}\n```  ", want: `{"mcqs":[]}`},
		{name: "leading fence only", in: "```json\n{\"mcqs\":[]}", want: `{"mcqs":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFence(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseStudySetRoundTrip(t *testing.T) {
	wrapped := "```json\n{\"mcqs\":[{\"q\":\"Q1\",\"options\":[\"a\",\"b\",\"c\",\"d\"],\"answer\":2,\"explanation\":\"see notes\"}],\"shortAnswers\":[{\"q\":\"Why?\",\"model\":\"Because (algo.txt).\"}]}\n```"
	bare := `{"mcqs":[{"q":"Q1","options":["a","b","c","d"],"answer":2,"explanation":"see notes"}],"shortAnswers":[{"q":"Why?","model":"Because (algo.txt)."}]}`

	fromWrapped, err := ParseStudySet(StripCodeFence(wrapped))
	if err != nil {
		t.Fatalf("parse wrapped: %v", err)
	}
	fromBare, err := ParseStudySet(bare)
	if err != nil {
		t.Fatalf("parse bare: %v", err)
	}

	if len(fromWrapped.MCQs) != 1 || len(fromBare.MCQs) != 1 {
		t.Fatalf("expected one mcq each, got %d and %d", len(fromWrapped.MCQs), len(fromBare.MCQs))
	}
	if !reflect.DeepEqual(fromWrapped.MCQs[0], fromBare.MCQs[0]) ||
		fromWrapped.ShortAnswers[0] != fromBare.ShortAnswers[0] {
		t.Error("fenced and bare responses should parse identically")
	}
	if fromWrapped.MCQs[0].Answer != 2 {
		t.Errorf("answer index = %d, want 2", fromWrapped.MCQs[0].Answer)
	}
}

func TestParseStudySetAcceptsEmptyArrays(t *testing.T) {
	set, err := ParseStudySet(StripCodeFence("```json\n{\"mcqs\":[],\"shortAnswers\":[]}\n```"))
	if err != nil {
		t.Fatalf("empty arrays should be valid: %v", err)
	}
	if set.MCQs == nil || set.ShortAnswers == nil {
		t.Error("empty arrays should stay non-nil")
	}
	if len(set.MCQs) != 0 || len(set.ShortAnswers) != 0 {
		t.Errorf("got %d mcqs and %d short answers, want 0 and 0", len(set.MCQs), len(set.ShortAnswers))
	}
}

func TestParseStudySetRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "not json", in: "I could not generate questions."},
		{name: "truncated json", in: `{"mcqs":[{"q":"Q1"`},
		{name: "mcq missing question", in: `{"mcqs":[{"q":"","options":["a","b","c","d"],"answer":0}]}`},
		{name: "mcq with three options", in: `{"mcqs":[{"q":"Q1","options":["a","b","c"],"answer":0}]}`},
		{name: "answer index too large", in: `{"mcqs":[{"q":"Q1","options":["a","b","c","d"],"answer":4}]}`},
		{name: "negative answer index", in: `{"mcqs":[{"q":"Q1","options":["a","b","c","d"],"answer":-1}]}`},
		{name: "short answer missing question", in: `{"shortAnswers":[{"q":"","model":"m"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStudySet(tt.in)
			if !errors.Is(err, ErrMalformedGeneration) {
				t.Errorf("got %v, want ErrMalformedGeneration", err)
			}
		})
	}
}
