package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Project struct {
	BaseModel
	Title        string `gorm:"type:varchar(200);not null"`
	Description  string `gorm:"type:text"`
	Image        string `gorm:"type:varchar(500)"`
	Technologies datatypes.JSONSlice[string]
	GithubURL    string `gorm:"type:varchar(500)"`
	LiveURL      string `gorm:"type:varchar(500)"`
	VideoURL     string `gorm:"type:varchar(500)"`
}

func (p *Project) BeforeSave(tx *gorm.DB) error {
	if p.Technologies == nil {
		p.Technologies = datatypes.JSONSlice[string]{}
	}
	return nil
}

func (p *Project) AfterFind(tx *gorm.DB) error {
	return p.BeforeSave(tx)
}
