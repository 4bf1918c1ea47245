package dto

import (
	"time"

	"webresume_backend/internal/models"
)

type CreateProjectRequest struct {
	Title        string   `json:"title" validate:"notblank,max=200"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies" validate:"omitempty,dive,max=100"`
	GithubURL    string   `json:"github_url" validate:"max=500,optional_url"`
	LiveURL      string   `json:"live_url" validate:"max=500,optional_url"`
	VideoURL     string   `json:"video_url" validate:"max=500,optional_url"`
}

type UpdateProjectRequest struct {
	Title        *string   `json:"title" validate:"omitempty,max=200"`
	Description  *string   `json:"description"`
	Technologies *[]string `json:"technologies" validate:"omitempty,dive,max=100"`
	GithubURL    *string   `json:"github_url" validate:"omitempty,max=500,optional_url"`
	LiveURL      *string   `json:"live_url" validate:"omitempty,max=500,optional_url"`
	VideoURL     *string   `json:"video_url" validate:"omitempty,max=500,optional_url"`
}

func (r *UpdateProjectRequest) Apply(p *models.Project) {
	setString(&p.Title, r.Title)
	setString(&p.Description, r.Description)
	if r.Technologies != nil {
		p.Technologies = *r.Technologies
	}
	setString(&p.GithubURL, r.GithubURL)
	setString(&p.LiveURL, r.LiveURL)
	setString(&p.VideoURL, r.VideoURL)
}

type ProjectResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Image        string    `json:"image"`
	ImageURL     string    `json:"image_url,omitempty"`
	Technologies []string  `json:"technologies"`
	GithubURL    string    `json:"github_url"`
	LiveURL      string    `json:"live_url"`
	VideoURL     string    `json:"video_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewProjectResponse(p *models.Project) *ProjectResponse {
	technologies := []string(p.Technologies)
	if technologies == nil {
		technologies = []string{}
	}
	return &ProjectResponse{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Image:        p.Image,
		Technologies: technologies,
		GithubURL:    p.GithubURL,
		LiveURL:      p.LiveURL,
		VideoURL:     p.VideoURL,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
