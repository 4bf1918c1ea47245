package handlers

import (
	"fmt"
	"net/http"

	"webresume_backend/internal/auth"
	"webresume_backend/internal/logger"
	"webresume_backend/internal/services"
	"webresume_backend/internal/validator"
	"webresume_backend/pkg/apperrors"
	"webresume_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ============================================================================
// 1. Базовая структура обработчика
// ============================================================================

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{
		validator: v,
	}
}

// ============================================================================
// 2. Доступ к БД
// ============================================================================

// GetDB извлекает *gorm.DB (пул или транзакцию) из gin.Context.
// Без DBMiddleware приложение сконфигурировано неверно - паника.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	dbKey := string(contextkeys.DBContextKey)

	val, ok := c.Get(dbKey)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db key not found in context", "key", dbKey)
		panic("critical error: DBMiddleware did not set the db key")
	}

	db, ok := val.(*gorm.DB)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db in context is not *gorm.DB", "key", dbKey, "type", fmt.Sprintf("%T", val))
		panic("critical error: db in context has incorrect type")
	}

	return db
}

// ============================================================================
// 3. Привязка и валидация
// ============================================================================

func (h *BaseHandler) BindAndValidate_JSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindJSON(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind JSON body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.CtxWarn(ctx, "Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// ============================================================================
// 4. Обработчики ошибок
// ============================================================================

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		logger.CtxWarn(ctx, "Service error",
			"error", appErr.Message,
			"details", appErr.Details,
			"path", c.Request.URL.Path,
		)
		apperrors.HandleError(c, appErr)
	} else {
		logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
}

// ============================================================================
// 5. Идентичность запроса
// ============================================================================

// Requester - идентичность из JWT (пустая, если токена нет)
func (h *BaseHandler) Requester(c *gin.Context) services.Requester {
	return services.Requester{
		UserID:   c.GetString(string(contextkeys.UserIDKey)),
		Username: c.GetString(string(contextkeys.UsernameKey)),
		IsStaff:  auth.IsStaff(c.GetString(string(contextkeys.RoleKey))),
	}
}

// OptionalUserID - id пользователя для записи владельца или nil
func (h *BaseHandler) OptionalUserID(c *gin.Context) *string {
	userID := c.GetString(string(contextkeys.UserIDKey))
	if userID == "" {
		return nil
	}
	return &userID
}

// writeJSONBytes отдает заранее сериализованный ответ без повторного кодирования
func writeJSONBytes(c *gin.Context, status int, payload []byte) {
	c.Data(status, "application/json; charset=utf-8", payload)
}

// ErrorResponse - для swagger
type ErrorResponse struct {
	Error apperrors.AppError `json:"error"`
}

// MessageErrorResponse - плоская форма {"error": "..."}
type MessageErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse - {"status": "...", "message": "..."}
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func statusOK(c *gin.Context, status, message string) {
	c.JSON(http.StatusOK, StatusResponse{Status: status, Message: message})
}
