package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-shortlister/internal/models"
	"alfredoptarigan/resume-shortlister/internal/services"
)

type fakeShortlister struct {
	requests []services.RunRequest
	result   *models.ShortlistReport
	err      error
}

func (f *fakeShortlister) Run(_ context.Context, req services.RunRequest) (*models.ShortlistReport, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func newTestApp(shortlister services.Shortlister, maxFileSize int64) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	RegisterRoutes(app, NewShortlistHandler(services.NewUploadReader(maxFileSize, nil), shortlister, nil))
	return app
}

type formFile struct {
	name string
	data []byte
}

func multipartBody(t *testing.T, fields map[string]string, files ...formFile) (io.Reader, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	for _, f := range files {
		part, err := writer.CreateFormFile("resumes", f.name)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	return &body, writer.FormDataContentType()
}

func post(t *testing.T, app *fiber.App, body io.Reader, contentType string) (int, []byte) {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodPost, "/shortlist-resumes/", body)
	req.Header.Set(fiber.HeaderContentType, contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func TestRootLiveness(t *testing.T) {
	app := newTestApp(&fakeShortlister{}, 1024)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Resume Shortlisting API is running!", body["status"])
}

func TestShortlistReturnsMarkdownReport(t *testing.T) {
	shortlister := &fakeShortlister{result: &models.ShortlistReport{
		RunID: "run-1",
		Entries: []*models.CandidateEvaluation{
			{SourceID: "a", Name: "Jane Doe", Phone: "+15551234567", Score: 9, Reasoning: "Strong fit.", InterviewQuestions: []string{"Q1?", "Q2?"}},
		},
		ThresholdApplied: 7,
		TotalProcessed:   1,
	}}
	app := newTestApp(shortlister, 1024)

	body, contentType := multipartBody(t,
		map[string]string{"job_description": "  Backend engineer  ", "score_threshold": "6.5", "filter": "true"},
		formFile{name: "jane.pdf", data: []byte("%PDF-jane")},
		formFile{name: "sam.pdf", data: []byte("%PDF-sam")},
	)
	status, raw := post(t, app, body, contentType)
	require.Equal(t, fiber.StatusOK, status, string(raw))

	var resp models.ShortlistResponse
	require.NoError(t, json.Unmarshal(raw, &resp))
	assert.True(t, strings.HasPrefix(resp.FinalReport, "| Name | Mobile | Score | Questions for Interview | Reasoning |\n"))
	assert.Contains(t, resp.FinalReport, "| Jane Doe | +15551234567 | 9 | 1. Q1?<br>2. Q2? | Strong fit. |")
	require.NotNil(t, resp.Report)
	assert.Equal(t, "run-1", resp.Report.RunID)

	require.Len(t, shortlister.requests, 1)
	req := shortlister.requests[0]
	assert.Equal(t, "Backend engineer", req.JobDescription)
	require.Len(t, req.Files, 2)
	assert.Equal(t, "jane.pdf", req.Files[0].Filename)
	assert.Equal(t, []byte("%PDF-sam"), req.Files[1].Data)
	require.NotNil(t, req.ScoreThreshold)
	assert.InDelta(t, 6.5, *req.ScoreThreshold, 1e-9)
	require.NotNil(t, req.FilterBelowThreshold)
	assert.True(t, *req.FilterBelowThreshold)
}

func TestShortlistErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{name: "validation", err: &services.ValidationError{Field: "resumes", Message: "batch of 11 exceeds the maximum of 10 resumes"}, status: fiber.StatusBadRequest},
		{name: "model", err: &services.ModelInvocationError{Stage: "requirement interpretation", Err: errors.New("unauthorized")}, status: fiber.StatusBadGateway},
		{name: "unexpected", err: errors.New("boom"), status: fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(&fakeShortlister{err: tc.err}, 1024)

			body, contentType := multipartBody(t, map[string]string{"job_description": "Go developer"}, formFile{name: "a.pdf", data: []byte("%PDF")})
			status, raw := post(t, app, body, contentType)

			var resp models.ErrorResponse
			require.NoError(t, json.Unmarshal(raw, &resp))
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.status, resp.Code)
			assert.Equal(t, tc.err.Error(), resp.Detail)
		})
	}
}

func TestShortlistRejectsBadOverrides(t *testing.T) {
	shortlister := &fakeShortlister{}
	app := newTestApp(shortlister, 1024)

	body, contentType := multipartBody(t, map[string]string{"job_description": "Go developer", "score_threshold": "high"}, formFile{name: "a.pdf", data: []byte("%PDF")})
	status, raw := post(t, app, body, contentType)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, string(raw), "score_threshold")
	assert.Empty(t, shortlister.requests)
}

func TestShortlistRejectsNonFiniteThreshold(t *testing.T) {
	for _, value := range []string{"NaN", "Inf", "-Inf"} {
		t.Run(value, func(t *testing.T) {
			shortlister := &fakeShortlister{}
			app := newTestApp(shortlister, 1024)

			body, contentType := multipartBody(t, map[string]string{"job_description": "Go developer", "score_threshold": value}, formFile{name: "a.pdf", data: []byte("%PDF")})
			status, raw := post(t, app, body, contentType)

			var resp models.ErrorResponse
			require.NoError(t, json.Unmarshal(raw, &resp))
			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.Contains(t, resp.Detail, "score_threshold")
			assert.Empty(t, shortlister.requests)
		})
	}
}

func TestShortlistRejectsOversizedFile(t *testing.T) {
	shortlister := &fakeShortlister{}
	app := newTestApp(shortlister, 8)

	body, contentType := multipartBody(t, map[string]string{"job_description": "Go developer"}, formFile{name: "big.pdf", data: bytes.Repeat([]byte("x"), 64)})
	status, _ := post(t, app, body, contentType)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Empty(t, shortlister.requests)
}

func TestShortlistRequiresMultipart(t *testing.T) {
	app := newTestApp(&fakeShortlister{}, 1024)

	status, raw := post(t, app, strings.NewReader(`{"job_description": "x"}`), fiber.MIMEApplicationJSON)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, string(raw), "multipart")
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, fiber.StatusRequestEntityTooLarge, StatusFor(fiber.ErrRequestEntityTooLarge))
	wrapped := errors.Join(errors.New("context"), &services.ValidationError{Field: "x", Message: "y"})
	assert.Equal(t, fiber.StatusBadRequest, StatusFor(wrapped))
}
