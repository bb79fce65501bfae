package handlers

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/cvbuilder/api/http/presenter"
	"github.com/artem13815/cvbuilder/pkg/assist"
	"github.com/artem13815/cvbuilder/pkg/profile"
	"github.com/artem13815/cvbuilder/pkg/resume"
)

// AssistHandler — LLM-генерация контента: буллеты опыта, сопроводительные
// письма, оценка резюме.
type AssistHandler struct {
	useCase   assist.UseCase
	documents resume.UseCase
}

func NewAssistHandler(useCase assist.UseCase, documents resume.UseCase) *AssistHandler {
	return &AssistHandler{useCase: useCase, documents: documents}
}

type bulletsRequest struct {
	Experience     profile.WorkExperience `json:"experience"`
	JobDescription string                 `json:"jobDescription"`
}

// Bullets переписывает описание опыта в сильные буллеты.
// @Summary Сгенерировать буллеты опыта
// @Tags    Ассистент
// @Accept  json
// @Produce json
// @Param   input body bulletsRequest true "запись опыта и (опционально) описание вакансии"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 502 {object} presenter.ErrorResponse
// @Router  /assist/experience-bullets [post]
func (h *AssistHandler) Bullets(c *fiber.Ctx) error {
	var req bulletsRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	bullets, err := h.useCase.ExperienceBullets(c.Context(), req.Experience, req.JobDescription)
	if err != nil {
		return presenter.Error(c, http.StatusBadGateway, fmt.Sprintf("generation failed: %v", err))
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"bullets": bullets})
}

type coverLetterRequest struct {
	ResumeID       string `json:"resumeId"`
	JobTitle       string `json:"jobTitle"`
	Company        string `json:"company"`
	JobDescription string `json:"jobDescription"`
}

// CoverLetter пишет сопроводительное письмо по документу резюме.
// @Summary Сгенерировать сопроводительное письмо
// @Tags    Ассистент
// @Accept  json
// @Produce json
// @Param   input body coverLetterRequest true "резюме и вакансия"
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 502 {object} presenter.ErrorResponse
// @Router  /assist/cover-letter [post]
func (h *AssistHandler) CoverLetter(c *fiber.Ctx) error {
	uid, isAdmin := actor(c)
	var req coverLetterRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	id, err := uuid.Parse(req.ResumeID)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid resumeId")
	}
	d, err := h.documents.Get(c.Context(), uid, isAdmin, id)
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "resume not found")
	}
	letter, err := h.useCase.CoverLetter(c.Context(), d, req.JobTitle, req.Company, req.JobDescription)
	if err != nil {
		return presenter.Error(c, http.StatusBadGateway, fmt.Sprintf("generation failed: %v", err))
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"letter": letter})
}

type scoreRequest struct {
	ResumeID string `json:"resumeId"`
}

// Score оценивает документ резюме по стобалльной шкале.
// @Summary Оценить резюме
// @Tags    Ассистент
// @Accept  json
// @Produce json
// @Param   input body scoreRequest true "идентификатор резюме"
// @Security BearerAuth
// @Success 200 {object} assist.Score
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 502 {object} presenter.ErrorResponse
// @Router  /assist/score [post]
func (h *AssistHandler) Score(c *fiber.Ctx) error {
	uid, isAdmin := actor(c)
	var req scoreRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	id, err := uuid.Parse(req.ResumeID)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid resumeId")
	}
	d, err := h.documents.Get(c.Context(), uid, isAdmin, id)
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "resume not found")
	}
	score, err := h.useCase.ScoreResume(c.Context(), d)
	if err != nil {
		return presenter.Error(c, http.StatusBadGateway, fmt.Sprintf("scoring failed: %v", err))
	}
	return presenter.JSON(c, http.StatusOK, score)
}
