package handlers

import (
	"net/http"
	"strings"

	"webresume_backend/internal/logger"
	"webresume_backend/internal/services"
	"webresume_backend/internal/services/dto"
	"webresume_backend/internal/validator"

	"github.com/gin-gonic/gin"
)

// ContactHandler - старый эндпоинт формы /send-message/ с плоским ответом {success, message}
type ContactHandler struct {
	*BaseHandler
	messageService services.MessageService
}

func NewContactHandler(base *BaseHandler, messageService services.MessageService) *ContactHandler {
	return &ContactHandler{
		BaseHandler:    base,
		messageService: messageService,
	}
}

type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *ContactHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/send-message/", h.Send)
}

// Send godoc
// @Summary Отправить сообщение (упрощенная форма)
// @Tags messages
// @Accept json
// @Produce json
// @Param message body dto.ContactRequest true "Сообщение"
// @Success 200 {object} ContactResponse
// @Failure 400 {object} ContactResponse
// @Router /send-message/ [post]
func (h *ContactHandler) Send(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ContactResponse{Message: "Invalid data format: " + err.Error()})
		return
	}

	if missing := req.MissingFields(); len(missing) > 0 {
		logger.CtxWarn(ctx, "contact form missing fields", "fields", missing)
		c.JSON(http.StatusBadRequest, ContactResponse{Message: "Missing required fields: " + strings.Join(missing, ", ")})
		return
	}

	create := req.ToCreate()
	if err := h.validator.Validate(create); err != nil {
		msg := "Invalid data"
		if vErr, ok := err.(*validator.ValidationError); ok {
			msg = vErr.Error()
		}
		c.JSON(http.StatusBadRequest, ContactResponse{Message: msg})
		return
	}

	if _, err := h.messageService.Create(ctx, h.GetDB(c), create); err != nil {
		logger.CtxWithError(ctx, "contact form save failed", err)
		c.JSON(http.StatusInternalServerError, ContactResponse{Message: "Failed to save message"})
		return
	}

	c.JSON(http.StatusOK, ContactResponse{Success: true, Message: "Message sent successfully"})
}
