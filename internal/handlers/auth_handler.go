package handlers

import (
	"net/http"

	"webresume_backend/internal/services"
	"webresume_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

// RegisterRoutes регистрирует маршруты аутентификации
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login/", h.Login)
		auth.POST("/logout/", h.Logout)
		auth.GET("/status/", h.Status)
	}
}

// Login godoc
// @Summary Вход
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Логин и пароль"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login/ [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout - токены stateless, клиент просто забывает токен
func (h *AuthHandler) Logout(c *gin.Context) {
	statusOK(c, "success", "Logged out")
}

func (h *AuthHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.authService.Status(h.Requester(c)))
}
