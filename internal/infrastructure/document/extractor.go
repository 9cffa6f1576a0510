package document

import (
	"bytes"
	"fmt"
	"mime"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"skill-sync-resume/internal/domain/resume"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MimeText = "text/plain"
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var extensionTypes = map[string]string{
	".txt":  MimeText,
	".text": MimeText,
	".md":   MimeText,
	".pdf":  MimePDF,
	".docx": MimeDOCX,
}

// Extractor converts uploaded resume files to plain text. Every failure is
// reported as resume.ErrUnreadableDocument.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) ExtractText(contentType, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file", resume.ErrUnreadableDocument)
	}

	var (
		text string
		err  error
	)
	switch ResolveContentType(contentType, filename) {
	case MimeText:
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: text is not valid utf-8", resume.ErrUnreadableDocument)
		}
		text = string(data)
	case MimePDF:
		text, err = extractPDFText(data)
	case MimeDOCX:
		text, err = extractDocxText(data)
	default:
		return "", fmt.Errorf("%w: unsupported file type %q", resume.ErrUnreadableDocument, contentType)
	}
	if err != nil {
		return "", err
	}
	return stripNUL(text), nil
}

// stripNUL drops 0x00 bytes; postgres TEXT columns reject them.
func stripNUL(s string) string {
	if !strings.ContainsRune(s, 0) {
		return s
	}
	return strings.ReplaceAll(s, "\x00", "")
}

// ResolveContentType prefers the declared media type and falls back to the
// file extension when the client sent a generic one.
func ResolveContentType(contentType, filename string) string {
	mt := ""
	if strings.TrimSpace(contentType) != "" {
		if parsed, _, err := mime.ParseMediaType(contentType); err == nil {
			mt = strings.ToLower(parsed)
		}
	}
	if mt != "" && mt != "application/octet-stream" {
		return mt
	}
	return extensionTypes[strings.ToLower(filepath.Ext(filename))]
}

func extractPDFText(data []byte) (text string, err error) {
	// The pdf reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: malformed pdf: %v", resume.ErrUnreadableDocument, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: failed to read pdf: %v", resume.ErrUnreadableDocument, err)
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		t, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(t)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

var xmlTagRe = regexp.MustCompile(`<[^>]+>`)

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: failed to parse docx: %v", resume.ErrUnreadableDocument, err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	return strings.TrimSpace(xmlTagRe.ReplaceAllString(content, " ")), nil
}
