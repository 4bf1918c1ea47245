package handlers

import (
	"net/http"
	"strconv"

	"webresume_backend/internal/services"
	"webresume_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	*BaseHandler
	messageService services.MessageService
}

func NewMessageHandler(base *BaseHandler, messageService services.MessageService) *MessageHandler {
	return &MessageHandler{
		BaseHandler:    base,
		messageService: messageService,
	}
}

// CreateMessageResponse - ответ контактной формы
type CreateMessageResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Data    *dto.MessageResponse `json:"data"`
}

// RegisterRoutes: создание открыто, остальное только для staff
func (h *MessageHandler) RegisterRoutes(rg *gin.RouterGroup, staff ...gin.HandlerFunc) {
	messages := rg.Group("/messages")
	{
		messages.POST("/", h.Create)

		admin := messages.Group("", staff...)
		admin.GET("/", h.List)
		admin.GET("/:id/", h.Get)
		admin.DELETE("/:id/", h.Delete)
		admin.POST("/:id/mark_as_read/", h.MarkAsRead)
	}
}

// Create godoc
// @Summary Отправить сообщение с сайта
// @Description Сохраняет сообщение и пересылает его в Telegram. Ответ 201 не зависит от результата пересылки.
// @Tags messages
// @Accept json
// @Produce json
// @Param message body dto.CreateMessageRequest true "Сообщение"
// @Success 201 {object} CreateMessageResponse
// @Failure 400 {object} ErrorResponse
// @Router /messages/ [post]
func (h *MessageHandler) Create(c *gin.Context) {
	var req dto.CreateMessageRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.messageService.Create(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreateMessageResponse{
		Success: true,
		Message: "Message sent successfully",
		Data:    resp,
	})
}

// List godoc
// @Summary Список сообщений
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.MessageResponse
// @Header 200 {integer} X-Unread-Count "Количество непрочитанных"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /messages/ [get]
func (h *MessageHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	db := h.GetDB(c)

	resp, err := h.messageService.List(ctx, db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	unread, err := h.messageService.UnreadCount(ctx, db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Header("X-Unread-Count", strconv.FormatInt(unread, 10))
	c.JSON(http.StatusOK, resp)
}

func (h *MessageHandler) Get(c *gin.Context) {
	resp, err := h.messageService.Get(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MessageHandler) Delete(c *gin.Context) {
	if err := h.messageService.Delete(c.Request.Context(), h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkAsRead godoc
// @Summary Отметить сообщение прочитанным
// @Description Идемпотентно.
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID сообщения"
// @Success 200 {object} StatusResponse
// @Failure 404 {object} ErrorResponse
// @Router /messages/{id}/mark_as_read/ [post]
func (h *MessageHandler) MarkAsRead(c *gin.Context) {
	if err := h.messageService.MarkAsRead(c.Request.Context(), h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	statusOK(c, "message marked as read", "")
}
