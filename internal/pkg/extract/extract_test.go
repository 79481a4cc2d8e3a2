package extract

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestIsPDF(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		filename string
		want     bool
	}{
		{"pdf mime", "application/pdf", "notes.bin", true},
		{"pdf mime with params", "application/pdf; charset=binary", "notes.bin", true},
		{"pdf mime uppercase", "APPLICATION/PDF", "notes.bin", true},
		{"plain mime wins over pdf extension", "text/plain", "notes.pdf", false},
		{"octet stream falls back to extension", "application/octet-stream", "notes.pdf", true},
		{"octet stream non pdf", "application/octet-stream", "notes.txt", false},
		{"no mime pdf extension", "", "lecture.PDF", true},
		{"no mime no extension", "", "lecture", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isPDF(tt.mimeType, tt.filename); got != tt.want {
				t.Errorf("isPDF(%q, %q) = %v, want %v", tt.mimeType, tt.filename, got, tt.want)
			}
		})
	}
}

func TestExtractBytesPlainText(t *testing.T) {
	ex := NewExtractor()
	text, err := ex.ExtractBytes([]byte("Binary search runs in O(log n) time.\n"), "text/plain", "algo.txt")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if text != "Binary search runs in O(log n) time.\n" {
		t.Errorf("text = %q", text)
	}
}

func TestExtractBytesInvalidUTF8(t *testing.T) {
	ex := NewExtractor()
	content := append([]byte("valid "), 0xff, 0xfe)
	text, err := ex.ExtractBytes(content, "text/plain", "weird.txt")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !utf8.ValidString(text) {
		t.Error("output is not valid UTF-8")
	}
	if !strings.HasPrefix(text, "valid ") {
		t.Errorf("valid prefix lost: %q", text)
	}
}

func TestExtractBytesBrokenPDF(t *testing.T) {
	ex := NewExtractor()
	if _, err := ex.ExtractBytes([]byte("not a pdf at all"), "application/pdf", "fake.pdf"); err == nil {
		t.Error("expected an error for malformed pdf bytes")
	}
}
