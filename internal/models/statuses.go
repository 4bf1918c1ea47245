package models

type UserRole string

const (
	// UserRoleAdmin - staff: пишет резюме/проекты, читает сообщения
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
)
