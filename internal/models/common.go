package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel - uuid-ключ генерируется в Go, чтобы не зависеть от расширений СУБД
type BaseModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// All - список моделей для AutoMigrate
func All() []interface{} {
	return []interface{}{
		&User{},
		&Profile{},
		&Resume{},
		&Project{},
		&Message{},
	}
}
