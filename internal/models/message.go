package models

// Message - заявка из контактной формы. IsRead меняется только через MarkAsRead.
type Message struct {
	BaseModel
	SenderName  string `gorm:"type:varchar(100);not null"`
	SenderEmail string `gorm:"type:varchar(254);not null"`
	Message     string `gorm:"type:text;not null"`
	IsRead      bool   `gorm:"not null;default:false"`
}
