package services

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/require"
)

// buildPDF renders one text line per cell on a single page.
func buildPDF(t *testing.T, lines ...string) []byte {
	t.Helper()
	return buildPagedPDF(t, lines)
}

// buildPagedPDF renders each slice of lines on its own page.
func buildPagedPDF(t *testing.T, pages ...[]string) []byte {
	t.Helper()

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCompression(false)
	for _, lines := range pages {
		doc.AddPage()
		doc.SetFont("Helvetica", "", 12)
		for _, line := range lines {
			doc.CellFormat(0, 8, line, "", 1, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

// stubGenerator answers every prompt through respond and records what it saw.
type stubGenerator struct {
	mu      sync.Mutex
	respond func(ctx context.Context, system, prompt string) (string, error)
	prompts []string
	systems []string
}

func (s *stubGenerator) GenerateText(ctx context.Context, system, prompt string) (string, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.systems = append(s.systems, system)
	s.mu.Unlock()

	return s.respond(ctx, system, prompt)
}

func (s *stubGenerator) Model() string {
	return "stub-model"
}

func (s *stubGenerator) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}

func fixedResponse(text string) func(context.Context, string, string) (string, error) {
	return func(context.Context, string, string) (string, error) {
		return text, nil
	}
}
