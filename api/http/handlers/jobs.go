package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/cvbuilder/api/http/presenter"
	"github.com/artem13815/cvbuilder/pkg/job"
)

// JobsHandler обслуживает вакансии, под которые подгоняются резюме.
type JobsHandler struct {
	useCase job.UseCase
}

func NewJobsHandler(useCase job.UseCase) *JobsHandler {
	return &JobsHandler{useCase: useCase}
}

type createJobRequest struct {
	Title       string              `json:"title"`
	Company     string              `json:"company"`
	Description string              `json:"description"`
	URL         string              `json:"url"`
	Keywords    []job.KeywordWeight `json:"keywords"`
}

// Create создаёт вакансию.
// @Summary Создать вакансию
// @Tags    Вакансии
// @Accept  json
// @Produce json
// @Param   input body createJobRequest true "вакансия"
// @Security BearerAuth
// @Success 201 {object} job.Job
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /jobs [post]
func (h *JobsHandler) Create(c *fiber.Ctx) error {
	uid, _ := actor(c)
	var req createJobRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	j, err := h.useCase.Create(c.Context(), job.Job{
		OwnerID:     uid,
		Title:       req.Title,
		Company:     req.Company,
		Description: req.Description,
		URL:         req.URL,
		Keywords:    req.Keywords,
	})
	if err != nil {
		var ev job.ErrValidation
		if errors.As(err, &ev) {
			return presenter.Error(c, http.StatusBadRequest, ev.Error())
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to create job")
	}
	return presenter.JSON(c, http.StatusCreated, j)
}

// List возвращает вакансии пользователя (или все, если админ).
// @Summary Список вакансий
// @Tags    Вакансии
// @Produce json
// @Security BearerAuth
// @Success 200 {array} job.Job
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /jobs [get]
func (h *JobsHandler) List(c *fiber.Ctx) error {
	uid, isAdmin := actor(c)
	limit, offset := parseLimitOffset(c, 50)
	items, err := h.useCase.List(c.Context(), uid, isAdmin, limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list jobs")
	}
	if items == nil {
		items = []job.Job{}
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// Get возвращает вакансию по идентификатору.
// @Summary Получить вакансию
// @Tags    Вакансии
// @Produce json
// @Param   id path string true "ID вакансии (UUID)"
// @Security BearerAuth
// @Success 200 {object} job.Job
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id} [get]
func (h *JobsHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	uid, isAdmin := actor(c)
	j, err := h.useCase.Get(c.Context(), uid, isAdmin, id)
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "job not found")
	}
	return presenter.JSON(c, http.StatusOK, j)
}

type updateKeywordsRequest struct {
	Keywords []job.KeywordWeight `json:"keywords"`
}

// UpdateKeywords заменяет набор ключевых слов вакансии.
// @Summary Обновить ключевые слова вакансии
// @Tags    Вакансии
// @Accept  json
// @Produce json
// @Param   id path string true "ID вакансии (UUID)"
// @Param   input body updateKeywordsRequest true "ключевые слова с весами"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id}/keywords [put]
func (h *JobsHandler) UpdateKeywords(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	uid, _ := actor(c)
	var req updateKeywordsRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if err := h.useCase.UpdateKeywords(c.Context(), uid, id, req.Keywords); err != nil {
		return presenter.Error(c, http.StatusNotFound, "job not found")
	}
	return c.SendStatus(http.StatusNoContent)
}

// Delete удаляет вакансию.
// @Summary Удалить вакансию
// @Tags    Вакансии
// @Param   id path string true "ID вакансии (UUID)"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id} [delete]
func (h *JobsHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	uid, isAdmin := actor(c)
	if err := h.useCase.Delete(c.Context(), uid, isAdmin, id); err != nil {
		return presenter.Error(c, http.StatusNotFound, "job not found")
	}
	return c.SendStatus(http.StatusNoContent)
}
