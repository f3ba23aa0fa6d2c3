package handlers

import "github.com/gofiber/fiber/v2"

func HandleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "Resume Shortlisting API is running!",
	})
}
