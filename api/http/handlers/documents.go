package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/cvbuilder/api/http/presenter"
	"github.com/artem13815/cvbuilder/pkg/profile"
	"github.com/artem13815/cvbuilder/pkg/resume"
)

// DocumentsHandler обслуживает CRUD документов резюме. Новый документ
// создаётся со снимком текущего профиля: дальнейшие правки профиля
// документ не трогают.
type DocumentsHandler struct {
	useCase  resume.UseCase
	profiles profile.UseCase
}

func NewDocumentsHandler(useCase resume.UseCase, profiles profile.UseCase) *DocumentsHandler {
	return &DocumentsHandler{useCase: useCase, profiles: profiles}
}

type createDocumentRequest struct {
	Title string `json:"title"`
}

// Create создаёт документ со снимком текущего профиля.
// @Summary Создать резюме
// @Tags    Резюме
// @Accept  json
// @Produce json
// @Param   input body createDocumentRequest true "название"
// @Security BearerAuth
// @Success 201 {object} resume.Document
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /resumes [post]
func (h *DocumentsHandler) Create(c *fiber.Ctx) error {
	uid, _ := actor(c)
	var req createDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	snapshot, err := h.profiles.Get(c.Context(), uid)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to load profile")
	}
	d, err := h.useCase.Create(c.Context(), uid, req.Title, snapshot)
	if err != nil {
		var ev resume.ErrValidation
		if errors.As(err, &ev) {
			return presenter.Error(c, http.StatusBadRequest, ev.Error())
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to create resume")
	}
	return presenter.JSON(c, http.StatusCreated, d)
}

// List возвращает документы пользователя (или все, если админ).
// @Summary Список резюме
// @Tags    Резюме
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resume.Document
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /resumes [get]
func (h *DocumentsHandler) List(c *fiber.Ctx) error {
	uid, isAdmin := actor(c)
	limit, offset := parseLimitOffset(c, 50)
	items, err := h.useCase.List(c.Context(), uid, isAdmin, limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list resumes")
	}
	if items == nil {
		items = []resume.Document{}
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// Get возвращает документ по идентификатору.
// @Summary Получить резюме
// @Tags    Резюме
// @Produce json
// @Param   id path string true "ID резюме (UUID)"
// @Security BearerAuth
// @Success 200 {object} resume.Document
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id} [get]
func (h *DocumentsHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	uid, isAdmin := actor(c)
	d, err := h.useCase.Get(c.Context(), uid, isAdmin, id)
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "resume not found")
	}
	return presenter.JSON(c, http.StatusOK, d)
}

// Update обновляет название, снимок профиля и настройки оформления.
// @Summary Обновить резюме
// @Tags    Резюме
// @Accept  json
// @Produce json
// @Param   id path string true "ID резюме (UUID)"
// @Param   input body resume.Document true "документ"
// @Security BearerAuth
// @Success 200 {object} resume.Document
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id} [put]
func (h *DocumentsHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	uid, isAdmin := actor(c)
	var d resume.Document
	if err := c.BodyParser(&d); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	d.ID = id
	updated, err := h.useCase.Update(c.Context(), uid, isAdmin, d)
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "resume not found")
	}
	return presenter.JSON(c, http.StatusOK, updated)
}

// Delete удаляет документ.
// @Summary Удалить резюме
// @Tags    Резюме
// @Param   id path string true "ID резюме (UUID)"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id} [delete]
func (h *DocumentsHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	uid, isAdmin := actor(c)
	if err := h.useCase.Delete(c.Context(), uid, isAdmin, id); err != nil {
		return presenter.Error(c, http.StatusNotFound, "resume not found")
	}
	return c.SendStatus(http.StatusNoContent)
}
