package repositories

import (
	"errors"

	"webresume_backend/internal/models"

	"gorm.io/gorm"
)

var ErrMessageNotFound = errors.New("message not found")

type MessageRepository interface {
	List(db *gorm.DB) ([]models.Message, error)
	FindByID(db *gorm.DB, id string) (*models.Message, error)
	Create(db *gorm.DB, message *models.Message) error
	MarkAsRead(db *gorm.DB, id string) error
	Delete(db *gorm.DB, id string) error
	CountUnread(db *gorm.DB) (int64, error)
}

type MessageRepositoryImpl struct{}

func NewMessageRepository() MessageRepository {
	return &MessageRepositoryImpl{}
}

func (r *MessageRepositoryImpl) List(db *gorm.DB) ([]models.Message, error) {
	messages := []models.Message{}
	err := db.Order("created_at DESC").Find(&messages).Error
	return messages, err
}

func (r *MessageRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Message, error) {
	var message models.Message
	err := db.First(&message, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &message, nil
}

func (r *MessageRepositoryImpl) Create(db *gorm.DB, message *models.Message) error {
	message.IsRead = false
	return db.Create(message).Error
}

// MarkAsRead идемпотентен: повторный вызов ничего не меняет.
// RowsAffected не проверяется, MySQL возвращает 0 для уже прочитанной строки.
func (r *MessageRepositoryImpl) MarkAsRead(db *gorm.DB, id string) error {
	return db.Model(&models.Message{}).Where("id = ?", id).Update("is_read", true).Error
}

func (r *MessageRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Message{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (r *MessageRepositoryImpl) CountUnread(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Message{}).Where("is_read = ?", false).Count(&count).Error
	return count, err
}
