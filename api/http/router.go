package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/cvbuilder/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(
	app *fiber.App,
	auth *handlers.AuthHandler,
	health *handlers.HealthHandler,
	authMW fiber.Handler,
	profile *handlers.ProfileHandler,
	documents *handlers.DocumentsHandler,
	render *handlers.RenderHandler,
	jobs *handlers.JobsHandler,
	tailorings *handlers.TailoringsHandler,
	assist *handlers.AssistHandler,
) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", auth.Register)
	a.Post("/login", auth.Login)

	// Канонический профиль и импорт
	p := v1.Group("/profile", authMW)
	p.Get("/", profile.Get)
	p.Put("/", profile.Save)
	p.Post("/reset", profile.Reset)
	p.Post("/import", profile.Import)
	p.Post("/import/file", profile.ImportFile)
	p.Post("/import/text", profile.ImportText)
	p.Post("/import/extension", profile.ImportExtension)

	// Документы резюме и экспорт в PDF
	r := v1.Group("/resumes", authMW)
	r.Post("/", documents.Create)
	r.Get("/", documents.List)
	r.Get("/:id", documents.Get)
	r.Put("/:id", documents.Update)
	r.Delete("/:id", documents.Delete)
	r.Get("/:id/pdf", render.Export)

	// Вакансии
	j := v1.Group("/jobs", authMW)
	j.Post("/", jobs.Create)
	j.Get("/", jobs.List)
	j.Get("/:id", jobs.Get)
	j.Put("/:id/keywords", jobs.UpdateKeywords)
	j.Delete("/:id", jobs.Delete)

	// Подгонка резюме под вакансию
	t := v1.Group("/tailorings", authMW)
	t.Post("/", tailorings.Create)
	t.Get("/", tailorings.List)
	t.Get("/:id", tailorings.Get)
	t.Delete("/:id", tailorings.Delete)

	// LLM-ассистент
	as := v1.Group("/assist", authMW)
	as.Post("/experience-bullets", assist.Bullets)
	as.Post("/cover-letter", assist.CoverLetter)
	as.Post("/score", assist.Score)
}
