// Package textsource turns the request payload (pasted text or a base64 PDF)
// into the article text the evaluator scores.
package textsource

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/lbt00001-beep/mbainative-website-sub000/internal/evaluation"
)

const (
	SourceManual       = "manual"
	SourcePDF          = "pdf"
	SourcePDFOCRNeeded = "pdf-ocr-needed"

	// Below this many characters a PDF is treated as scanned.
	minPDFTextLen = 100
)

var (
	ErrNoInput         = evaluation.NewInputError("se requiere articleText o pdfBase64")
	ErrNoTextExtracted = evaluation.NewInputError("no se pudo extraer texto del PDF")
)

type Input struct {
	ArticleText string
	PDFBase64   string
}

type Article struct {
	Text    string
	Source  string
	OCRHint bool
}

// PDFText extracts plain text from PDF bytes.
type PDFText interface {
	Text(ctx context.Context, data []byte) (string, error)
}

type Extractor struct {
	pdf     PDFText
	ocrHint bool
}

type Option func(*Extractor)

func WithPDFText(p PDFText) Option { return func(e *Extractor) { e.pdf = p } }

// WithOCRHint controls whether near-empty PDFs are reported as needing OCR
// instead of failing.
func WithOCRHint(b bool) Option { return func(e *Extractor) { e.ocrHint = b } }

func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{pdf: LedongthucPDF{}, ocrHint: true}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Extractor) Extract(ctx context.Context, in Input) (Article, error) {
	if t := strings.TrimSpace(in.ArticleText); t != "" {
		return Article{Text: in.ArticleText, Source: SourceManual}, nil
	}
	if strings.TrimSpace(in.PDFBase64) == "" {
		return Article{}, ErrNoInput
	}

	data, err := decodeBase64(in.PDFBase64)
	if err != nil {
		return Article{}, &evaluation.InputError{Msg: "pdfBase64 no es base64 válido", Err: err}
	}
	text, err := e.pdf.Text(ctx, data)
	if err != nil {
		return Article{}, &evaluation.InputError{Msg: "no se pudo leer el PDF", Err: err}
	}
	text = collapseWhitespace(text)

	if len([]rune(text)) < minPDFTextLen && e.ocrHint {
		return Article{Text: text, Source: SourcePDFOCRNeeded, OCRHint: true}, nil
	}
	if text == "" {
		return Article{}, ErrNoTextExtracted
	}
	return Article{Text: text, Source: SourcePDF}, nil
}

func decodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ","); i >= 0 {
			s = s[i+1:]
		}
	}
	s = strings.Join(strings.Fields(s), "")
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}

var (
	spaceRunRe   = regexp.MustCompile(`[ \t\f\v\r]+`)
	newlineRunRe = regexp.MustCompile(`\n{3,}`)
)

func collapseWhitespace(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = spaceRunRe.ReplaceAllString(s, " ")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	s = strings.Join(lines, "\n")
	s = newlineRunRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// LedongthucPDF reads the plain text layer of a PDF. Scanned documents
// without a text layer come back empty.
type LedongthucPDF struct{}

func (LedongthucPDF) Text(_ context.Context, data []byte) (out string, err error) {
	if !bytes.HasPrefix(bytes.TrimLeft(data, "\x00\t\r\n "), []byte("%PDF-")) {
		return "", errors.New("missing %PDF header")
	}
	// the parser panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			out, err = "", fmt.Errorf("pdf parse: %v", r)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf plaintext: %w", err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("pdf read: %w", err)
	}
	return string(b), nil
}
