package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artem13815/cvbuilder/api/http/presenter"
	"github.com/artem13815/cvbuilder/pkg/render"
	"github.com/artem13815/cvbuilder/pkg/resume"
)

// RenderHandler отдаёт PDF документа. Артефакты кешируются по ключу
// содержимого: повторный экспорт неизменённого документа браузер не
// запускает.
type RenderHandler struct {
	documents resume.UseCase
	renderer  render.Renderer
	cache     *render.ArtifactCache
	logger    *zap.Logger
}

func NewRenderHandler(documents resume.UseCase, renderer render.Renderer, cache *render.ArtifactCache, logger *zap.Logger) *RenderHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RenderHandler{documents: documents, renderer: renderer, cache: cache, logger: logger}
}

// Export рендерит документ в PDF.
// @Summary Экспорт резюме в PDF
// @Tags    Резюме
// @Produce application/pdf
// @Param   id path string true "ID резюме (UUID)"
// @Security BearerAuth
// @Success 200 {file} file
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /resumes/{id}/pdf [get]
func (h *RenderHandler) Export(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	uid, isAdmin := actor(c)
	d, err := h.documents.Get(c.Context(), uid, isAdmin, id)
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "resume not found")
	}

	key := resume.ContentKey(d)
	data, err := h.cache.GetOrRender(c.Context(), key, func(ctx context.Context) ([]byte, error) {
		html, err := render.RenderHTML(d)
		if err != nil {
			return nil, err
		}
		return h.renderer.RenderHTMLToPDF(ctx, html, render.PageSizeFor(d.Settings.DocumentSize))
	})
	if err != nil {
		if render.IsUnsupportedFont(err) {
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		}
		h.logger.Error("pdf render failed",
			zap.String("resumeId", id.String()),
			zap.String("contentKey", key),
			zap.Error(err),
		)
		return presenter.Error(c, http.StatusInternalServerError, "failed to render pdf")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+d.Title+`.pdf"`)
	return c.Status(http.StatusOK).Send(data)
}
