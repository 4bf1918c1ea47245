package services

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService    AuthService
	ResumeService  ResumeService
	ProjectService ProjectService
	MessageService MessageService
	ProfileService ProfileService
}
