package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/cvbuilder/api/http/presenter"
	"github.com/artem13815/cvbuilder/pkg/tailor"
)

// TailoringsHandler обслуживает подгонку резюме под вакансии.
type TailoringsHandler struct {
	useCase tailor.UseCase
}

func NewTailoringsHandler(useCase tailor.UseCase) *TailoringsHandler {
	return &TailoringsHandler{useCase: useCase}
}

type createTailoringRequest struct {
	ResumeID string `json:"resumeId"`
	JobID    string `json:"jobId"`
}

// Create сопоставляет резюме с вакансией и сохраняет отчёт.
// @Summary Подогнать резюме под вакансию
// @Description Детерминированное сопоставление ключевых слов плюс рекомендации LLM. При недоступности LLM остаётся детерминированная часть отчёта.
// @Tags    Подгонка
// @Accept  json
// @Produce json
// @Param   input body createTailoringRequest true "идентификаторы резюме и вакансии"
// @Security BearerAuth
// @Success 201 {object} tailor.Tailoring
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /tailorings [post]
func (h *TailoringsHandler) Create(c *fiber.Ctx) error {
	uid, isAdmin := actor(c)
	var req createTailoringRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	resumeID, err := uuid.Parse(req.ResumeID)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid resumeId")
	}
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid jobId")
	}
	t, err := h.useCase.Create(c.Context(), uid, isAdmin, resumeID, jobID)
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, err.Error())
	}
	return presenter.JSON(c, http.StatusCreated, t)
}

// List возвращает подгонки пользователя, опционально по вакансии.
// @Summary Список подгонок
// @Tags    Подгонка
// @Produce json
// @Param   jobId query string false "фильтр по вакансии (UUID)"
// @Security BearerAuth
// @Success 200 {array} tailor.Tailoring
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /tailorings [get]
func (h *TailoringsHandler) List(c *fiber.Ctx) error {
	uid, isAdmin := actor(c)
	limit, offset := parseLimitOffset(c, 50)
	var items []tailor.Tailoring
	var err error
	if q := strings.TrimSpace(c.Query("jobId")); q != "" {
		jobID, perr := uuid.Parse(q)
		if perr != nil {
			return presenter.Error(c, http.StatusBadRequest, "invalid jobId")
		}
		items, err = h.useCase.ListByJob(c.Context(), uid, isAdmin, jobID, limit, offset)
	} else {
		items, err = h.useCase.List(c.Context(), uid, isAdmin, limit, offset)
	}
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list tailorings")
	}
	if items == nil {
		items = []tailor.Tailoring{}
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// Get возвращает подгонку по идентификатору.
// @Summary Получить подгонку
// @Tags    Подгонка
// @Produce json
// @Param   id path string true "ID подгонки (UUID)"
// @Security BearerAuth
// @Success 200 {object} tailor.Tailoring
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /tailorings/{id} [get]
func (h *TailoringsHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	uid, isAdmin := actor(c)
	t, err := h.useCase.Get(c.Context(), uid, isAdmin, id)
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "tailoring not found")
	}
	return presenter.JSON(c, http.StatusOK, t)
}

// Delete удаляет подгонку.
// @Summary Удалить подгонку
// @Tags    Подгонка
// @Param   id path string true "ID подгонки (UUID)"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /tailorings/{id} [delete]
func (h *TailoringsHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	uid, isAdmin := actor(c)
	if err := h.useCase.Delete(c.Context(), uid, isAdmin, id); err != nil {
		return presenter.Error(c, http.StatusNotFound, "tailoring not found")
	}
	return c.SendStatus(http.StatusNoContent)
}
