package document

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// ErrNoText means the file was read but contained no extractable text.
var ErrNoText = errors.New("no readable text found")

// ErrUnsupportedFormat means the file extension is not one we can read.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ExtractText reads the document at path and returns its plain text. Supported
// formats are .txt, .pdf and .docx, selected by extension.
func ExtractText(path string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(filepath.Ext(path))) {
	case ".txt":
		content, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read text file: %w", err)
		}
		text := string(content)
		if strings.TrimSpace(text) == "" {
			return "", ErrNoText
		}
		return text, nil
	case ".pdf":
		return extractPDFText(path)
	case ".docx":
		return extractDocxText(path)
	default:
		return "", ErrUnsupportedFormat
	}
}

func extractPDFText(path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return "", ErrNoText
	}

	var pages []string
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from page %d: %w", i+1, err)
		}
		pages = append(pages, text)
	}

	text := strings.Join(pages, " ")
	if strings.TrimSpace(text) == "" {
		return "", ErrNoText
	}
	return text, nil
}

// docx is a zip archive; the body lives in word/document.xml. We only need
// the character data of <w:t> runs, joined with spaces at paragraph breaks.
func extractDocxText(path string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("failed to open docx: %w", err)
	}
	defer archive.Close()

	var body io.ReadCloser
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			body, err = f.Open()
			if err != nil {
				return "", fmt.Errorf("failed to open docx body: %w", err)
			}
			break
		}
	}
	if body == nil {
		return "", fmt.Errorf("docx has no word/document.xml")
	}
	defer body.Close()

	decoder := xml.NewDecoder(body)
	var sb strings.Builder
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse docx body: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				var run string
				if err := decoder.DecodeElement(&run, &t); err != nil {
					return "", fmt.Errorf("failed to decode docx run: %w", err)
				}
				sb.WriteString(run)
			}
		case xml.EndElement:
			if t.Name.Local == "p" {
				sb.WriteString(" ")
			}
		}
	}

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", ErrNoText
	}
	return text, nil
}
