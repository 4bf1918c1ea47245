package middleware

import (
	"strings"

	"webresume_backend/internal/auth"
	"webresume_backend/internal/logger"
	"webresume_backend/pkg/apperrors"
	"webresume_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// Identify - необязательная аутентификация: валидный Bearer-токен кладет
// userID/role/username в контекст, отсутствие токена не ошибка.
// Невалидный токен - 401, чтобы клиент не думал, что он вошел.
func Identify(tokens *auth.TokenManager, trusted auth.TrustedHeader) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(contextkeys.TrustedKey), trusted.Matches(c.Request))

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			c.Abort()
			return
		}

		claims, err := tokens.Parse(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrInvalidToken.WithError(err))
			c.Abort()
			return
		}

		c.Set(string(contextkeys.UserIDKey), claims.UserID)
		c.Set(string(contextkeys.RoleKey), claims.Role)
		c.Set(string(contextkeys.UsernameKey), claims.Username)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))

		c.Next()
	}
}

// RequireAuth - нужен валидный JWT
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(string(contextkeys.UserIDKey)) == "" {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authentication required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireStaff - нужен JWT администратора
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(string(contextkeys.UserIDKey)) == "" {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authentication required"))
			c.Abort()
			return
		}
		if !auth.IsStaff(c.GetString(string(contextkeys.RoleKey))) {
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			c.Abort()
			return
		}
		c.Next()
	}
}

// WriteGate - чтение открыто, запись только для staff или по доверенному заголовку.
// Должен стоять после Identify.
func WriteGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(string(contextkeys.RoleKey))
		trusted := c.GetBool(string(contextkeys.TrustedKey))

		if !auth.WriteGate(c.Request.Method, role, trusted) {
			logger.CtxWarn(c.Request.Context(), "write rejected by gate", "method", c.Request.Method, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.NewForbiddenError("You do not have permission to perform this action."))
			c.Abort()
			return
		}
		c.Next()
	}
}
