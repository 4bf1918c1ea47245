package apperrors

import (
	"log/slog"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

var debug atomic.Bool

func init() {
	debug.Store(true)
}

// SetDebug переключает вывод деталей внутренних ошибок (из config.Server.Env)
func SetDebug(on bool) {
	debug.Store(on)
}

// HandleError - основная функция-помощник для Gin
func HandleError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
		if debug.Load() && err != nil {
			appErr.Message = "Internal server error: " + err.Error()
		}
	}

	if appErr.HTTPCode >= 500 {
		slog.ErrorContext(c.Request.Context(), "server error", "code", appErr.Code, "error", appErr.Unwrap())
		if !debug.Load() && appErr.Code == CodeDatabaseError {
			appErr = New(appErr.Code, appErr.Domain, "Database error", appErr.HTTPCode)
		}
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

// AsAppError - пытается преобразовать error в *AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
