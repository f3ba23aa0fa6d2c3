package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-shortlister/internal/models"
	"alfredoptarigan/resume-shortlister/internal/services"
)

// StatusFor maps pipeline errors onto HTTP status codes.
func StatusFor(err error) int {
	var validationErr *services.ValidationError
	var modelErr *services.ModelInvocationError
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest
	case errors.As(err, &modelErr):
		return fiber.StatusBadGateway
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler is the fiber fallback for errors returned by handlers and
// middleware, such as an oversized body.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return writeError(c, StatusFor(err), err.Error())
}

func writeError(c *fiber.Ctx, status int, detail string) error {
	return c.Status(status).JSON(models.ErrorResponse{
		Detail: detail,
		Code:   status,
	})
}
