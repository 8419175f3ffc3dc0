package extraction

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/markdave123-py/Metadoc/internal/core"
)

var _ core.DocumentExtractor = (*DocxExtractor)(nil)

// maxDocumentXMLSize caps the decompressed size of word/document.xml.
const maxDocumentXMLSize = 100 << 20

// DocxExtractor reads the body paragraphs of a Word document by streaming
// the OOXML tokens of word/document.xml.
type DocxExtractor struct{}

func NewDocxExtractor() *DocxExtractor { return &DocxExtractor{} }

// Extract returns one line per body paragraph, empty paragraphs included.
// Tabs stay inside their paragraph as '\t' and explicit breaks become '\n'.
// Paragraphs inside tables are not part of the body and are skipped.
func (e *DocxExtractor) Extract(_ context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty docx content", core.ErrExtraction)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: open docx: %v", core.ErrExtraction, err)
	}
	doc, err := readDocumentXML(zr)
	if err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrExtraction, err)
	}

	paragraphs, err := bodyParagraphs(doc)
	if err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrExtraction, err)
	}
	return strings.Join(paragraphs, "\n"), nil
}

func readDocumentXML(zr *zip.Reader) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open document.xml: %w", err)
		}
		defer rc.Close()

		b, err := io.ReadAll(io.LimitReader(rc, maxDocumentXMLSize+1))
		if err != nil {
			return nil, fmt.Errorf("read document.xml: %w", err)
		}
		if len(b) > maxDocumentXMLSize {
			return nil, fmt.Errorf("document.xml exceeds %d bytes", maxDocumentXMLSize)
		}
		return b, nil
	}
	return nil, errors.New("missing word/document.xml")
}

// bodyParagraphs walks the document tokens. Only top-level paragraphs
// outside tables are collected; text comes from w:t inside runs.
func bodyParagraphs(doc []byte) ([]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(doc))

	var (
		out        []string
		current    strings.Builder
		tableDepth int
		paraDepth  int
		runDepth   int
		inText     bool
	)
	collecting := func() bool { return tableDepth == 0 && paraDepth == 1 && runDepth > 0 }

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth++
			case "p":
				paraDepth++
				if paraDepth == 1 {
					current.Reset()
				}
			case "r":
				runDepth++
			case "t":
				inText = true
			case "tab":
				if collecting() {
					current.WriteByte('\t')
				}
			case "br", "cr":
				if collecting() {
					current.WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth--
			case "p":
				if paraDepth == 1 && tableDepth == 0 {
					out = append(out, current.String())
				}
				paraDepth--
			case "r":
				runDepth--
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText && collecting() {
				current.Write(t)
			}
		}
	}
	return out, nil
}
