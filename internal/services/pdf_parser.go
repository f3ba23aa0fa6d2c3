package services

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"alfredoptarigan/resume-shortlister/internal/logger"
	"alfredoptarigan/resume-shortlister/internal/models"
)

// DocumentExtractor turns uploaded resume bytes into a ResumeDocument.
type DocumentExtractor interface {
	// Extract never fails the batch: unreadable input yields a document with
	// empty text and ExtractionFailed set, together with an *ExtractionError
	// describing why.
	Extract(file models.ResumeFile) (*models.ResumeDocument, error)
}

type PDFContent struct {
	Text      string
	PageCount int
}

type pdfParserService struct {
	logger *zap.Logger
}

func NewPDFParserService(log *zap.Logger) DocumentExtractor {
	return &pdfParserService{logger: logger.OrNop(log)}
}

func (p *pdfParserService) Extract(file models.ResumeFile) (*models.ResumeDocument, error) {
	doc := &models.ResumeDocument{
		SourceID: file.SourceID,
		Filename: file.Filename,
	}

	content, err := ExtractPDFText(file.Data)
	if err != nil {
		doc.ExtractionFailed = true
		return doc, &ExtractionError{SourceID: file.SourceID, Err: err}
	}

	doc.RawText = content.Text
	doc.PageCount = content.PageCount

	contact := ExtractContactInfo(content.Text)
	doc.Name = contact.Name
	doc.Phone = contact.Phone
	doc.Email = contact.Email

	p.logger.Debug("resume extracted",
		zap.String("source_id", file.SourceID),
		zap.String("filename", file.Filename),
		zap.Int("pages", content.PageCount),
		zap.Int("text_length", len(content.Text)),
		zap.Bool("name_found", contact.Name != ""),
		zap.Bool("phone_found", contact.Phone != ""),
		zap.Bool("email_found", contact.Email != ""),
	)

	return doc, nil
}

// ExtractPDFText concatenates page text in page order. A page that fails to
// decode contributes nothing; only an unreadable document is an error.
func ExtractPDFText(data []byte) (content *PDFContent, err error) {
	if len(data) == 0 {
		return nil, errors.New("empty file")
	}

	// The pdf package panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			content = nil
			err = fmt.Errorf("failed to parse PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		textBuilder.WriteString(pageText(func() (string, error) {
			page := r.Page(pageIndex)
			if page.V.IsNull() {
				return "", nil
			}
			return page.GetPlainText(nil)
		}))
		textBuilder.WriteString("\n")
	}

	return &PDFContent{
		Text:      CleanText(textBuilder.String()),
		PageCount: totalPage,
	}, nil
}

// pageText runs one page decode. A page that errors or panics yields "".
func pageText(decode func() (string, error)) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()

	text, err := decode()
	if err != nil {
		return ""
	}

	return text
}

// CleanText trims every line, drops blank lines and strips control and
// other non-printable runes.
func CleanText(text string) string {
	text = strings.Map(func(r rune) rune {
		if r == '\n' {
			return r
		}
		if unicode.IsSpace(r) {
			return ' '
		}
		if r == unicode.ReplacementChar || !unicode.IsPrint(r) {
			return -1
		}
		return r
	}, text)

	lines := strings.Split(text, "\n")
	cleanedLines := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
