package handlers

import (
	"net/http"

	"webresume_backend/internal/services"
	"webresume_backend/internal/services/dto"
	"webresume_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
	}
}

// RegisterRoutes - все маршруты требуют аутентификации
func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup, authRequired ...gin.HandlerFunc) {
	profiles := rg.Group("/profiles", authRequired...)
	{
		profiles.GET("/", h.List)
		profiles.POST("/", h.Create)
		profiles.GET("/:id/", h.Get)
		profiles.PUT("/:id/", h.Update)
		profiles.PATCH("/:id/", h.Update)
		profiles.DELETE("/:id/", h.Delete)
		profiles.POST("/:id/resume_pdf/", h.UploadResumePDF)
	}
}

func (h *ProfileHandler) List(c *gin.Context) {
	resp, err := h.profileService.List(c.Request.Context(), h.GetDB(c), h.Requester(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) Get(c *gin.Context) {
	resp, err := h.profileService.Get(c.Request.Context(), h.GetDB(c), h.Requester(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary Создать профиль
// @Description telegram_token сохраняется зашифрованным и никогда не возвращается (has_telegram_token).
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body dto.ProfileRequest true "Профиль"
// @Success 201 {object} dto.ProfileResponse
// @Failure 409 {object} ErrorResponse
// @Router /profiles/ [post]
func (h *ProfileHandler) Create(c *gin.Context) {
	var req dto.ProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.profileService.Create(c.Request.Context(), h.GetDB(c), h.Requester(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	var req dto.ProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.profileService.Update(c.Request.Context(), h.GetDB(c), h.Requester(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) Delete(c *gin.Context) {
	if err := h.profileService.Delete(c.Request.Context(), h.GetDB(c), h.Requester(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadResumePDF godoc
// @Summary Загрузить PDF резюме
// @Tags profiles
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID профиля"
// @Param resume_pdf formData file true "PDF"
// @Success 200 {object} dto.ProfileResponse
// @Failure 415 {object} ErrorResponse
// @Router /profiles/{id}/resume_pdf/ [post]
func (h *ProfileHandler) UploadResumePDF(c *gin.Context) {
	file, err := c.FormFile("resume_pdf")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("resume_pdf file is required"))
		return
	}

	resp, err := h.profileService.UploadResumePDF(c.Request.Context(), h.GetDB(c), h.Requester(c), c.Param("id"), file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
