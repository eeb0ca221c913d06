// Package resume stores uploaded resume files and extracts their plain text
// for scoring. Only PDF and Word documents are accepted, capped at 10MB;
// both limits are checked before any byte is written.
package resume

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
	"github.com/google/uuid"
)

// MaxFileSize caps uploads at 10MB.
const MaxFileSize = 10 << 20

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

type Parser struct {
	uploadsDir string
}

type Stored struct {
	Filename string // name under the uploads dir
	URL      string // publicly resolvable reference
	FileSize int64
	Text     string // extracted plain text, empty when extraction failed
}

func NewParser(uploadsDir string) *Parser {
	return &Parser{uploadsDir: uploadsDir}
}

// Validate rejects unsupported types and oversized uploads before storage.
func Validate(filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return fmt.Errorf("unsupported file type %q (allowed: PDF, DOC, DOCX)", ext)
	}
	if size > MaxFileSize {
		return fmt.Errorf("file too large: %d bytes (max %d)", size, MaxFileSize)
	}
	return nil
}

// Store saves the upload under a collision-free name and extracts its text.
// Extraction failures are not fatal: the file is kept and scored later from
// whatever text the applicant pasted.
func (p *Parser) Store(originalName string, size int64, reader io.Reader) (*Stored, error) {
	if err := Validate(originalName, size); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(p.uploadsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}

	stored := storedFilename(originalName)
	path := filepath.Join(p.uploadsDir, stored)

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	defer file.Close()

	written, err := io.Copy(file, io.LimitReader(reader, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("save file: %w", err)
	}
	if written > MaxFileSize {
		os.Remove(path)
		return nil, fmt.Errorf("file too large: exceeds %d bytes", int64(MaxFileSize))
	}

	text := ""
	if res, err := docconv.ConvertPath(path); err == nil {
		text = res.Body
	}

	return &Stored{
		Filename: stored,
		URL:      "/uploads/" + stored,
		FileSize: written,
		Text:     text,
	}, nil
}

// storedFilename keeps the extension and replaces the rest with a uuid so
// concurrent uploads of identically named files never collide.
func storedFilename(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return uuid.New().String() + ext
}
