package services

import (
	"mime/multipart"

	"webresume_backend/pkg/apperrors"
)

// openUpload проверяет размер до чтения содержимого
func openUpload(file *multipart.FileHeader, maxSize int64) (multipart.File, error) {
	if file == nil {
		return nil, apperrors.NewBadRequestError("file is required")
	}
	if maxSize > 0 && file.Size > maxSize {
		return nil, apperrors.ErrFileTooLarge
	}

	f, err := file.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return f, nil
}
