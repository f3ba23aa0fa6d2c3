package handlers

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, shortlist *ShortlistHandler) {
	app.Get("/", HandleRoot)
	app.Post("/shortlist-resumes/", shortlist.HandleShortlist)
}
