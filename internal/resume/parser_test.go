package resume

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int64
		wantErr  bool
	}{
		{"pdf ok", "resume.pdf", 1024, false},
		{"docx ok", "resume.docx", 1024, false},
		{"doc ok", "resume.DOC", 1024, false},
		{"txt rejected", "resume.txt", 1024, true},
		{"exe rejected", "malware.exe", 1024, true},
		{"no extension rejected", "resume", 1024, true},
		{"too large", "resume.pdf", MaxFileSize + 1, true},
		{"at cap ok", "resume.pdf", MaxFileSize, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.filename, tt.size)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q, %d) error = %v, wantErr %v", tt.filename, tt.size, err, tt.wantErr)
			}
		})
	}
}

func TestStoredFilename(t *testing.T) {
	a := storedFilename("resume.pdf")
	b := storedFilename("resume.pdf")

	if a == b {
		t.Error("stored names must not collide for identical uploads")
	}
	if filepath.Ext(a) != ".pdf" {
		t.Errorf("extension not preserved: %s", a)
	}
	if strings.Contains(a, "resume") {
		t.Errorf("original name should not leak into stored name: %s", a)
	}

	upper := storedFilename("CV.DOCX")
	if filepath.Ext(upper) != ".docx" {
		t.Errorf("extension should be lowercased: %s", upper)
	}
}

func TestStore_RejectsBeforeWriting(t *testing.T) {
	p := NewParser(t.TempDir())

	if _, err := p.Store("notes.txt", 10, strings.NewReader("hello")); err == nil {
		t.Fatal("expected rejection for unsupported type")
	}
	if _, err := p.Store("resume.pdf", MaxFileSize+1, strings.NewReader("x")); err == nil {
		t.Fatal("expected rejection for declared oversize")
	}
}
