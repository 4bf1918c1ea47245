package models

// Profile - привязка пользователя к Telegram-боту.
// TelegramToken хранится только в зашифрованном виде (см. internal/cryptox).
type Profile struct {
	BaseModel
	UserID           string `gorm:"type:varchar(36);uniqueIndex;not null"`
	TelegramToken    string `gorm:"type:text"`
	TelegramUsername string `gorm:"type:varchar(100)"`
	TelegramChatID   *int64
	ResumePDF        string `gorm:"type:varchar(500)"`

	User *User `gorm:"foreignKey:UserID"`
}
