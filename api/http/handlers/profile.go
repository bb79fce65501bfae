package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/cvbuilder/api/http/presenter"
	"github.com/artem13815/cvbuilder/pkg/importer"
	"github.com/artem13815/cvbuilder/pkg/profile"
)

// ProfileHandler обслуживает канонический профиль пользователя и все
// источники импорта: файл резюме, свободный текст, браузерное расширение.
type ProfileHandler struct {
	useCase   profile.UseCase
	extractor *importer.Extractor
	maxBytes  int64
}

func NewProfileHandler(useCase profile.UseCase, extractor *importer.Extractor) *ProfileHandler {
	return &ProfileHandler{useCase: useCase, extractor: extractor, maxBytes: 15 << 20} // 15MB
}

// Get возвращает профиль текущего пользователя.
// @Summary Получить профиль
// @Tags    Профиль
// @Produce json
// @Security BearerAuth
// @Success 200 {object} profile.Profile
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /profile [get]
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	uid, _ := actor(c)
	p, err := h.useCase.Get(c.Context(), uid)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to load profile")
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// Save сохраняет профиль целиком и возвращает предупреждения о дубликатах.
// @Summary Сохранить профиль
// @Description Пустые записи удаляются перед сохранением. Предупреждения о дубликатах не блокируют сохранение.
// @Tags    Профиль
// @Accept  json
// @Produce json
// @Param   input body profile.Profile true "профиль"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /profile [put]
func (h *ProfileHandler) Save(c *fiber.Ctx) error {
	uid, _ := actor(c)
	var p profile.Profile
	if err := c.BodyParser(&p); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	saved, warns, err := h.useCase.Save(c.Context(), uid, p)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to save profile")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"profile":  saved,
		"warnings": warns,
	})
}

// Reset очищает профиль, не удаляя его.
// @Summary Сбросить профиль
// @Tags    Профиль
// @Produce json
// @Security BearerAuth
// @Success 200 {object} profile.Profile
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /profile/reset [post]
func (h *ProfileHandler) Reset(c *fiber.Ctx) error {
	uid, _ := actor(c)
	p, err := h.useCase.Reset(c.Context(), uid)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to reset profile")
	}
	return presenter.JSON(c, http.StatusOK, p)
}

type importRequest struct {
	Candidate       profile.PartialProfile  `json:"candidate"`
	ApprovedScalars profile.ApprovedScalars `json:"approvedScalars"`
}

// Import сливает кандидата в профиль: в коллекции добавляется только новое,
// скаляры перезаписываются лишь одобренными значениями.
// @Summary Импортировать кандидата в профиль
// @Tags    Профиль
// @Accept  json
// @Produce json
// @Param   input body importRequest true "кандидат и одобренные скаляры"
// @Security BearerAuth
// @Success 200 {object} profile.Profile
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /profile/import [post]
func (h *ProfileHandler) Import(c *fiber.Ctx) error {
	uid, _ := actor(c)
	var req importRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	importer.Sanitize(&req.Candidate)
	p, err := h.useCase.Import(c.Context(), uid, req.Candidate, req.ApprovedScalars)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to import profile")
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// ImportFile извлекает кандидата из файла резюме (PDF/DOCX). Слияние не
// выполняется: кандидат возвращается клиенту на ревью.
// @Summary Извлечь кандидата из файла резюме
// @Tags    Профиль
// @Accept  multipart/form-data
// @Produce json
// @Param   file formData file true "Файл резюме (PDF/DOCX)"
// @Security BearerAuth
// @Success 200 {object} profile.PartialProfile
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /profile/import/file [post]
func (h *ProfileHandler) ImportFile(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return presenter.Error(c, http.StatusBadRequest, "file is required (pdf or docx)")
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext != ".pdf" && ext != ".docx" {
		return presenter.Error(c, http.StatusBadRequest, "unsupported file format: only pdf and docx are allowed")
	}
	file, err := fh.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()
	data, err := readAtMost(file, h.maxBytes)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	text, err := importer.ParseResumeText(fh.Filename, data)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, fmt.Sprintf("failed to parse resume: %v", err))
	}
	candidate, err := h.extractor.ExtractProfile(c.Context(), text)
	if err != nil {
		return presenter.Error(c, http.StatusBadGateway, fmt.Sprintf("extraction failed: %v", err))
	}
	return presenter.JSON(c, http.StatusOK, candidate)
}

type importTextRequest struct {
	Text string `json:"text"`
}

// ImportText извлекает кандидата из свободного текста.
// @Summary Извлечь кандидата из текста
// @Tags    Профиль
// @Accept  json
// @Produce json
// @Param   input body importTextRequest true "текст резюме"
// @Security BearerAuth
// @Success 200 {object} profile.PartialProfile
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /profile/import/text [post]
func (h *ProfileHandler) ImportText(c *fiber.Ctx) error {
	var req importTextRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Text) == "" {
		return presenter.Error(c, http.StatusBadRequest, "text is required")
	}
	candidate, err := h.extractor.ExtractProfile(c.Context(), req.Text)
	if err != nil {
		return presenter.Error(c, http.StatusBadGateway, fmt.Sprintf("extraction failed: %v", err))
	}
	return presenter.JSON(c, http.StatusOK, candidate)
}

type extensionRequest struct {
	Profile         json.RawMessage         `json:"profile"`
	ApprovedScalars profile.ApprovedScalars `json:"approvedScalars"`
}

// ImportExtension принимает структурированный профиль от браузерного
// расширения и сразу сливает его с текущим профилем.
// @Summary Импорт из браузерного расширения
// @Tags    Профиль
// @Accept  json
// @Produce json
// @Param   input body extensionRequest true "профиль со страницы и одобренные скаляры"
// @Security BearerAuth
// @Success 200 {object} profile.Profile
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /profile/import/extension [post]
func (h *ProfileHandler) ImportExtension(c *fiber.Ctx) error {
	uid, _ := actor(c)
	var req extensionRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if len(req.Profile) == 0 {
		return presenter.Error(c, http.StatusBadRequest, "profile is required")
	}
	candidate, err := importer.DecodeExtensionPayload(req.Profile)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	p, err := h.useCase.Import(c.Context(), uid, candidate, req.ApprovedScalars)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to import profile")
	}
	return presenter.JSON(c, http.StatusOK, p)
}
