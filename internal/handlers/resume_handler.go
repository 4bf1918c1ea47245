package handlers

import (
	"errors"
	"net/http"

	"webresume_backend/internal/services"
	"webresume_backend/internal/services/dto"
	"webresume_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ResumeHandler struct {
	*BaseHandler
	resumeService services.ResumeService
}

func NewResumeHandler(base *BaseHandler, resumeService services.ResumeService) *ResumeHandler {
	return &ResumeHandler{
		BaseHandler:   base,
		resumeService: resumeService,
	}
}

// RegisterRoutes - чтение открыто, запись проходит через WriteGate (ставится группой)
func (h *ResumeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	resumes := rg.Group("/resumes")
	{
		resumes.GET("/", h.List)
		resumes.POST("/", h.Create)
		resumes.GET("/latest/", h.Latest)
		resumes.POST("/clear_cache/", h.ClearCache)
		resumes.GET("/:id/", h.Get)
		resumes.PUT("/:id/", h.Update)
		resumes.PATCH("/:id/", h.Update)
		resumes.DELETE("/:id/", h.Delete)
	}
}

// List godoc
// @Summary Список резюме
// @Description Все резюме, новые первыми. Ответ кешируется на короткое время.
// @Tags resumes
// @Produce json
// @Success 200 {array} dto.ResumeResponse
// @Failure 500 {object} ErrorResponse
// @Router /resumes/ [get]
func (h *ResumeHandler) List(c *gin.Context) {
	payload, err := h.resumeService.List(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	writeJSONBytes(c, http.StatusOK, payload)
}

// Get godoc
// @Summary Получить резюме
// @Tags resumes
// @Produce json
// @Param id path string true "ID резюме"
// @Success 200 {object} dto.ResumeResponse
// @Failure 404 {object} ErrorResponse
// @Router /resumes/{id}/ [get]
func (h *ResumeHandler) Get(c *gin.Context) {
	payload, err := h.resumeService.Get(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	writeJSONBytes(c, http.StatusOK, payload)
}

// Latest godoc
// @Summary Последнее резюме
// @Description Самое свежее по updated_at. 404 {"error": "No resume found"}, если резюме нет.
// @Tags resumes
// @Produce json
// @Success 200 {object} dto.ResumeResponse
// @Failure 404 {object} MessageErrorResponse
// @Router /resumes/latest/ [get]
func (h *ResumeHandler) Latest(c *gin.Context) {
	payload, err := h.resumeService.Latest(c.Request.Context(), h.GetDB(c))
	if err != nil {
		// клиенты ждут плоскую строку, а не конверт AppError
		if errors.Is(err, apperrors.ErrNoResume) {
			c.JSON(http.StatusNotFound, MessageErrorResponse{Error: apperrors.ErrNoResume.Message})
			return
		}
		h.HandleServiceError(c, err)
		return
	}
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	writeJSONBytes(c, http.StatusOK, payload)
}

// Create godoc
// @Summary Создать резюме
// @Tags resumes
// @Accept json
// @Produce json
// @Param resume body dto.ResumeRequest true "Резюме"
// @Success 201 {object} dto.ResumeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /resumes/ [post]
func (h *ResumeHandler) Create(c *gin.Context) {
	var req dto.ResumeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.resumeService.Create(c.Request.Context(), h.GetDB(c), h.OptionalUserID(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Update godoc
// @Summary Обновить резюме (частично)
// @Description PUT и PATCH одинаково частичные: отсутствующие поля не меняются.
// @Tags resumes
// @Accept json
// @Produce json
// @Param id path string true "ID резюме"
// @Param resume body dto.ResumeRequest true "Изменяемые поля"
// @Success 200 {object} dto.ResumeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /resumes/{id}/ [patch]
func (h *ResumeHandler) Update(c *gin.Context) {
	var req dto.ResumeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.resumeService.Update(c.Request.Context(), h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary Удалить резюме
// @Tags resumes
// @Param id path string true "ID резюме"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /resumes/{id}/ [delete]
func (h *ResumeHandler) Delete(c *gin.Context) {
	if err := h.resumeService.Delete(c.Request.Context(), h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearCache godoc
// @Summary Очистить кеш резюме
// @Tags resumes
// @Produce json
// @Success 200 {object} StatusResponse
// @Failure 500 {object} ErrorResponse
// @Router /resumes/clear_cache/ [post]
func (h *ResumeHandler) ClearCache(c *gin.Context) {
	if err := h.resumeService.ClearCache(c.Request.Context()); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	statusOK(c, "success", "Cache cleared successfully")
}
