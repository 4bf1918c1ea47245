package models

type User struct {
	BaseModel
	Username     string   `gorm:"type:varchar(150);uniqueIndex;not null"`
	Email        string   `gorm:"type:varchar(254)"`
	PasswordHash string   `gorm:"not null"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'user'"`
}
