package dto

import (
	"time"

	"webresume_backend/internal/models"
)

// ResumeRequest - создание и частичное обновление (PUT и PATCH).
// nil-поле означает "не менять".
type ResumeRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Location    *string `json:"location" validate:"omitempty,max=255"`
	DateOfBirth *string `json:"date_of_birth" validate:"omitempty,max=100"`
	Phone       *string `json:"phone" validate:"omitempty,max=50"`
	Email       *string `json:"email" validate:"omitempty,max=254,email"`
	Photo       *string `json:"photo" validate:"omitempty,max=500"`
	About       *string `json:"about"`

	Languages      *[]models.LanguageEntry   `json:"languages" validate:"omitempty,dive"`
	Skills         *[]models.SkillGroup      `json:"skills" validate:"omitempty,dive"`
	SkillsTable    *[]models.SkillRow        `json:"skills_table" validate:"omitempty,dive"`
	Experience     *[]models.ExperienceEntry `json:"experience" validate:"omitempty,dive"`
	ResumeProjects *[]models.ResumeProject   `json:"resume_projects" validate:"omitempty,dive"`
	Testimonials   *[]models.Testimonial     `json:"testimonials" validate:"omitempty,dive"`
	VideoURLs      *[]string                 `json:"video_urls" validate:"omitempty,dive,max=500"`
	PDFFiles       *[]models.PDFFile         `json:"pdf_files" validate:"omitempty,dive"`
}

// Apply переносит заданные поля запроса в модель
func (r *ResumeRequest) Apply(resume *models.Resume) {
	setString(&resume.Name, r.Name)
	setString(&resume.Location, r.Location)
	setString(&resume.DateOfBirth, r.DateOfBirth)
	setString(&resume.Phone, r.Phone)
	setString(&resume.Email, r.Email)
	setString(&resume.Photo, r.Photo)
	setString(&resume.About, r.About)

	if r.Languages != nil {
		resume.Languages = *r.Languages
	}
	if r.Skills != nil {
		resume.Skills = *r.Skills
	}
	if r.SkillsTable != nil {
		resume.SkillsTable = *r.SkillsTable
	}
	if r.Experience != nil {
		resume.Experience = *r.Experience
	}
	if r.ResumeProjects != nil {
		resume.ResumeProjects = *r.ResumeProjects
	}
	if r.Testimonials != nil {
		resume.Testimonials = *r.Testimonials
	}
	if r.VideoURLs != nil {
		resume.VideoURLs = *r.VideoURLs
	}
	if r.PDFFiles != nil {
		resume.PDFFiles = *r.PDFFiles
	}
	resume.Normalize()
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

type ResumeResponse struct {
	ID          string        `json:"id"`
	User        *UserResponse `json:"user"`
	Name        string        `json:"name"`
	Location    string        `json:"location"`
	DateOfBirth string        `json:"date_of_birth"`
	Phone       string        `json:"phone"`
	Email       string        `json:"email"`
	Photo       string        `json:"photo"`
	About       string        `json:"about"`

	Languages      []models.LanguageEntry   `json:"languages"`
	Skills         []models.SkillGroup      `json:"skills"`
	SkillsTable    []models.SkillRow        `json:"skills_table"`
	Experience     []models.ExperienceEntry `json:"experience"`
	ResumeProjects []models.ResumeProject   `json:"resume_projects"`
	Testimonials   []models.Testimonial     `json:"testimonials"`
	VideoURLs      []string                 `json:"video_urls"`
	PDFFiles       []models.PDFFile         `json:"pdf_files"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewResumeResponse(r *models.Resume) *ResumeResponse {
	r.Normalize()
	resp := &ResumeResponse{
		ID:             r.ID,
		Name:           r.Name,
		Location:       r.Location,
		DateOfBirth:    r.DateOfBirth,
		Phone:          r.Phone,
		Email:          r.Email,
		Photo:          r.Photo,
		About:          r.About,
		Languages:      r.Languages,
		Skills:         r.Skills,
		SkillsTable:    r.SkillsTable,
		Experience:     r.Experience,
		ResumeProjects: r.ResumeProjects,
		Testimonials:   r.Testimonials,
		VideoURLs:      r.VideoURLs,
		PDFFiles:       r.PDFFiles,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	if r.User != nil {
		resp.User = NewUserResponse(r.User)
	}
	return resp
}
