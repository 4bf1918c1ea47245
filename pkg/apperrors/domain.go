package apperrors

import (
	"net/http"
)

// =========================================================================
// Фабрики
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404)
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// =========================================================================
// Резюме
// =========================================================================

// ErrNoResume - в базе нет ни одного резюме (latest)
var ErrNoResume = New(CodeNotFound, "resume", "No resume found", http.StatusNotFound)

// ErrResumeNotFound - резюме с таким id нет
var ErrResumeNotFound = New(CodeNotFound, "resume", "Resume not found", http.StatusNotFound)

// ErrResumeAlreadyExists - у пользователя уже есть резюме (связь 1:1)
var ErrResumeAlreadyExists = New(CodeAlreadyExists, "resume", "Resume already exists for this user", http.StatusConflict)

// ErrCacheClearFailed - бэкенд кеша не смог очиститься
var ErrCacheClearFailed = New(CodeCacheError, "cache", "Failed to clear cache", http.StatusInternalServerError)

// =========================================================================
// Проекты и сообщения
// =========================================================================

var ErrProjectNotFound = New(CodeNotFound, "project", "Project not found", http.StatusNotFound)

var ErrMessageNotFound = New(CodeNotFound, "message", "Message not found", http.StatusNotFound)

// =========================================================================
// Профили
// =========================================================================

var ErrProfileNotFound = New(CodeNotFound, "profile", "Profile not found", http.StatusNotFound)

// ErrProfileAlreadyExists - профиль 1:1 с пользователем
var ErrProfileAlreadyExists = New(CodeAlreadyExists, "profile", "Profile already exists for this user", http.StatusConflict)

// ErrCredentialEncryption - не удалось зашифровать токен бота перед записью
var ErrCredentialEncryption = New(CodeInternalError, "profile", "Failed to encrypt credential", http.StatusInternalServerError)

// =========================================================================
// Файлы
// =========================================================================

// ErrFileTooLarge - файл превышает максимальный размер
var ErrFileTooLarge = New(CodeLimitExceeded, "validation", "File size exceeds the allowed limit", http.StatusRequestEntityTooLarge)

// ErrInvalidFileType - MIME-тип файла не разрешен
var ErrInvalidFileType = New(CodeValidationFailed, "validation", "The provided file type is not allowed", http.StatusUnsupportedMediaType)

// =========================================================================
// Аутентификация
// =========================================================================

// ErrInsufficientPermissions - не-админ пытается выполнить админ-действие
var ErrInsufficientPermissions = New(CodeForbidden, "auth", "Insufficient permissions", http.StatusForbidden)

// ErrInvalidCredentials - неверный логин или пароль
var ErrInvalidCredentials = New(CodeInvalidCredentials, "auth", "Invalid username or password", http.StatusUnauthorized)

// ErrInvalidToken - неверный или просроченный JWT
var ErrInvalidToken = New(CodeInvalidToken, "auth", "Invalid or expired token", http.StatusUnauthorized)
