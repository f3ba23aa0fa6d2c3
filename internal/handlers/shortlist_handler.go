package handlers

import (
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-shortlister/internal/logger"
	"alfredoptarigan/resume-shortlister/internal/models"
	"alfredoptarigan/resume-shortlister/internal/report"
	"alfredoptarigan/resume-shortlister/internal/services"
)

type ShortlistHandler struct {
	uploads     services.UploadReader
	shortlister services.Shortlister
	logger      *zap.Logger
}

func NewShortlistHandler(
	uploads services.UploadReader,
	shortlister services.Shortlister,
	log *zap.Logger,
) *ShortlistHandler {
	return &ShortlistHandler{
		uploads:     uploads,
		shortlister: shortlister,
		logger:      logger.OrNop(log),
	}
}

func (h *ShortlistHandler) HandleShortlist(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "failed to parse multipart form")
	}

	req := services.RunRequest{
		JobDescription: firstValue(form.Value["job_description"]),
	}
	if id, ok := c.Locals("requestid").(string); ok {
		req.RunID = id
	}

	if raw := firstValue(form.Value["score_threshold"]); raw != "" {
		threshold, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(threshold) || math.IsInf(threshold, 0) {
			return h.fail(c, &services.ValidationError{Field: "score_threshold", Message: "must be a number"})
		}
		req.ScoreThreshold = &threshold
	}
	if raw := firstValue(form.Value["filter"]); raw != "" {
		filter, err := strconv.ParseBool(raw)
		if err != nil {
			return h.fail(c, &services.ValidationError{Field: "filter", Message: "must be true or false"})
		}
		req.FilterBelowThreshold = &filter
	}

	req.Files, err = h.uploads.ReadUploads(form.File["resumes"])
	if err != nil {
		return h.fail(c, err)
	}

	result, err := h.shortlister.Run(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(models.ShortlistResponse{
		FinalReport: report.Markdown(report.Assemble(result)),
		Report:      result,
	})
}

func (h *ShortlistHandler) fail(c *fiber.Ctx, err error) error {
	status := StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		h.logger.Error("shortlist request failed", zap.Int("status", status), zap.Error(err))
	} else {
		h.logger.Info("shortlist request rejected", zap.Error(err))
	}
	return writeError(c, status, err.Error())
}

func firstValue(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}
