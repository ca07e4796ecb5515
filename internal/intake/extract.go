// Package intake accepts resume files and turns them into plain text ready
// for analysis.
package intake

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ErrUnsupportedType is returned for files that are not PDF, DOCX, or plain
// text.
var ErrUnsupportedType = errors.New("unsupported file type")

// FromBytes extracts resume text from an uploaded file. The declared mime
// type is advisory; zip containers are probed for DOCX and unknown types are
// sniffed from content.
func FromBytes(data []byte, mimeType, fileName string) (string, error) {
	switch normalizeMimeType(mimeType, fileName, data) {
	case mimePDF:
		return extractPDF(data)
	case mimeDOCX:
		return extractDOCX(data)
	case "text/plain":
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: not valid utf-8 text", ErrUnsupportedType)
		}
		return strings.TrimSpace(string(data)), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}
}

func extractPDF(data []byte) (string, error) {
	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("pdf text: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}
	defer doc.Close()

	return flattenDocumentXML(doc.Editable().GetContent()), nil
}

// flattenDocumentXML reduces word/document.xml markup to text, emitting a
// newline at paragraph and line break boundaries.
func flattenDocumentXML(raw string) string {
	var buf strings.Builder
	inTag := false
	tagName := strings.Builder{}
	for _, r := range raw {
		switch {
		case r == '<':
			inTag = true
			tagName.Reset()
		case r == '>':
			inTag = false
			name := tagName.String()
			if name == "/w:p" || name == "w:br/" || name == "w:br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		case inTag:
			tagName.WriteRune(r)
		default:
			buf.WriteRune(r)
		}
	}
	return strings.TrimSpace(buf.String())
}

// normalizeMimeType resolves the effective type from the declared type, the
// file extension, and the bytes themselves. Browsers report DOCX uploads as
// generic zip often enough that the container has to be probed.
func normalizeMimeType(mimeType, fileName string, data []byte) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))

	if clean == "" || clean == "application/octet-stream" {
		clean = strings.ToLower(strings.Split(http.DetectContentType(data), ";")[0])
	}

	if clean == "application/zip" {
		if zipContainsDocument(data) {
			return mimeDOCX
		}
		if strings.EqualFold(filepath.Ext(fileName), ".docx") {
			return mimeDOCX
		}
	}

	if clean == "text/plain" || strings.HasPrefix(clean, "text/") {
		return "text/plain"
	}
	return clean
}

func zipContainsDocument(data []byte) bool {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false
	}
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			return true
		}
	}
	return false
}
