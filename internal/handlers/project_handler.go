package handlers

import (
	"net/http"

	"webresume_backend/internal/services"
	"webresume_backend/internal/services/dto"
	"webresume_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	*BaseHandler
	projectService services.ProjectService
}

func NewProjectHandler(base *BaseHandler, projectService services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		BaseHandler:    base,
		projectService: projectService,
	}
}

func (h *ProjectHandler) RegisterRoutes(rg *gin.RouterGroup) {
	projects := rg.Group("/projects")
	{
		projects.GET("/", h.List)
		projects.POST("/", h.Create)
		projects.GET("/:id/", h.Get)
		projects.PUT("/:id/", h.Update)
		projects.PATCH("/:id/", h.Update)
		projects.DELETE("/:id/", h.Delete)
		projects.POST("/:id/image/", h.UploadImage)
	}
}

func (h *ProjectHandler) List(c *gin.Context) {
	resp, err := h.projectService.List(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	resp, err := h.projectService.Get(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req dto.CreateProjectRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.projectService.Create(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	var req dto.UpdateProjectRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.projectService.Update(c.Request.Context(), h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.projectService.Delete(c.Request.Context(), h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadImage godoc
// @Summary Загрузить изображение проекта
// @Description Изображение уменьшается до максимального размера стороны перед сохранением.
// @Tags projects
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "ID проекта"
// @Param image formData file true "Изображение"
// @Success 200 {object} dto.ProjectResponse
// @Failure 413 {object} ErrorResponse
// @Failure 415 {object} ErrorResponse
// @Router /projects/{id}/image/ [post]
func (h *ProjectHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("image file is required"))
		return
	}

	resp, err := h.projectService.UploadImage(c.Request.Context(), h.GetDB(c), c.Param("id"), file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
