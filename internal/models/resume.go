package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type LanguageEntry struct {
	Language string `json:"language" validate:"max=100"`
	Level    string `json:"level" validate:"max=100"`
}

type SkillGroup struct {
	Category string   `json:"category" validate:"max=100"`
	Items    []string `json:"items" validate:"dive,max=200"`
}

type SkillRow struct {
	Skill string `json:"skill" validate:"max=200"`
	Level string `json:"level" validate:"max=50"`
}

type ExperienceEntry struct {
	Period      string   `json:"period" validate:"max=100"`
	Title       string   `json:"title" validate:"max=200"`
	Company     string   `json:"company" validate:"max=200"`
	Description []string `json:"description"`
}

type ResumeProject struct {
	Name         string   `json:"name" validate:"max=200"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies" validate:"dive,max=100"`
	Status       string   `json:"status" validate:"max=50"`
}

type Testimonial struct {
	Name     string `json:"name" validate:"max=200"`
	Position string `json:"position" validate:"max=200"`
	Company  string `json:"company" validate:"max=200"`
	Text     string `json:"text"`
	Rating   int    `json:"rating" validate:"min=0,max=5"`
}

type PDFFile struct {
	Name string `json:"name" validate:"max=255"`
	URL  string `json:"url" validate:"max=500"`
}

// Resume - единственная (по смыслу) запись резюме. Порядок элементов в коллекциях значим.
type Resume struct {
	BaseModel
	UserID      *string `gorm:"type:varchar(36);uniqueIndex"`
	Name        string  `gorm:"type:varchar(255)"`
	Location    string  `gorm:"type:varchar(255)"`
	DateOfBirth string  `gorm:"type:varchar(100)"`
	Phone       string  `gorm:"type:varchar(50)"`
	Email       string  `gorm:"type:varchar(254)"`
	Photo       string  `gorm:"type:varchar(500)"`
	About       string  `gorm:"type:text"`

	Languages      datatypes.JSONSlice[LanguageEntry]
	Skills         datatypes.JSONSlice[SkillGroup]
	SkillsTable    datatypes.JSONSlice[SkillRow]
	Experience     datatypes.JSONSlice[ExperienceEntry]
	ResumeProjects datatypes.JSONSlice[ResumeProject]
	Testimonials   datatypes.JSONSlice[Testimonial]
	VideoURLs      datatypes.JSONSlice[string] `gorm:"column:video_urls"`
	PDFFiles       datatypes.JSONSlice[PDFFile] `gorm:"column:pdf_files"`

	User *User `gorm:"foreignKey:UserID"`
}

// Normalize гарантирует, что ни одна коллекция не станет null (ни в БД, ни в JSON)
func (r *Resume) Normalize() {
	if r.Languages == nil {
		r.Languages = datatypes.JSONSlice[LanguageEntry]{}
	}
	if r.Skills == nil {
		r.Skills = datatypes.JSONSlice[SkillGroup]{}
	}
	for i := range r.Skills {
		if r.Skills[i].Items == nil {
			r.Skills[i].Items = []string{}
		}
	}
	if r.SkillsTable == nil {
		r.SkillsTable = datatypes.JSONSlice[SkillRow]{}
	}
	if r.Experience == nil {
		r.Experience = datatypes.JSONSlice[ExperienceEntry]{}
	}
	for i := range r.Experience {
		if r.Experience[i].Description == nil {
			r.Experience[i].Description = []string{}
		}
	}
	if r.ResumeProjects == nil {
		r.ResumeProjects = datatypes.JSONSlice[ResumeProject]{}
	}
	for i := range r.ResumeProjects {
		if r.ResumeProjects[i].Technologies == nil {
			r.ResumeProjects[i].Technologies = []string{}
		}
	}
	if r.Testimonials == nil {
		r.Testimonials = datatypes.JSONSlice[Testimonial]{}
	}
	if r.VideoURLs == nil {
		r.VideoURLs = datatypes.JSONSlice[string]{}
	}
	if r.PDFFiles == nil {
		r.PDFFiles = datatypes.JSONSlice[PDFFile]{}
	}
}

func (r *Resume) BeforeSave(tx *gorm.DB) error {
	r.Normalize()
	return nil
}

func (r *Resume) AfterFind(tx *gorm.DB) error {
	r.Normalize()
	return nil
}
