package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler    *AuthHandler
	ResumeHandler  *ResumeHandler
	ProjectHandler *ProjectHandler
	MessageHandler *MessageHandler
	ContactHandler *ContactHandler
	ProfileHandler *ProfileHandler
	HealthHandler  *HealthHandler
}
